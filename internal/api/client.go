package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gyazo/gyazo-cli/internal/debug"
)

const (
	// DefaultAPIBaseURL is the origin for all metadata operations.
	DefaultAPIBaseURL = "https://api.gyazo.com"
	// DefaultUploadBaseURL is the origin for image uploads. Gyazo serves
	// uploads from a dedicated host, so the two origins are configured
	// independently.
	DefaultUploadBaseURL = "https://upload.gyazo.com"

	DefaultTimeout = 30 * time.Second
)

// uploadPath is the one endpoint served from the upload origin.
const uploadPath = "/api/upload"

// unreadableBody substitutes for the response body when reading it fails
// on a non-success status.
const unreadableBody = "Unknown error"

// Client is the Gyazo API client.
//
// A Client is logically immutable once requests begin: the token and both
// origins never change, so concurrent use from multiple goroutines needs
// no locking. The client performs exactly one request per call; it never
// retries or caches responses, and it does not track rate limits.
// Transport-level concerns such as timeouts belong to HTTP, which callers
// may tune before first use.
type Client struct {
	APIBaseURL    string
	UploadBaseURL string
	AccessToken   string
	HTTP          *http.Client
	UserAgent     string

	skipURLValidation bool // internal flag for testing only
}

// Compile-time interface implementation checks
var (
	_ Requester    = (*Client)(nil)
	_ PathResolver = (*Client)(nil)
	_ HTTPExecutor = (*Client)(nil)
)

// New creates a Gyazo API client against the production origins.
func New(token string) *Client {
	baseTransport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		baseTransport = &http.Transport{}
	}
	transport := baseTransport.Clone()
	if transport.TLSClientConfig == nil {
		transport.TLSClientConfig = &tls.Config{}
	} else {
		transport.TLSClientConfig = transport.TLSClientConfig.Clone()
	}
	transport.TLSClientConfig.MinVersion = tls.VersionTLS12
	transport.TLSClientConfig.InsecureSkipVerify = false

	return &Client{
		APIBaseURL:    DefaultAPIBaseURL,
		UploadBaseURL: DefaultUploadBaseURL,
		AccessToken:   token,
		HTTP: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: transport,
		},
	}
}

// NewWithOrigins creates a client with custom origins. An empty string
// keeps the corresponding default. Origins are fixed at construction;
// an unparsable origin is a programmer error and panics rather than
// producing a client that fails every request.
func NewWithOrigins(token, apiBaseURL, uploadBaseURL string) *Client {
	c := New(token)
	if apiBaseURL != "" {
		c.APIBaseURL = mustOrigin("API base URL", apiBaseURL)
	}
	if uploadBaseURL != "" {
		c.UploadBaseURL = mustOrigin("upload base URL", uploadBaseURL)
	}
	return c
}

func mustOrigin(name, raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		panic(fmt.Sprintf("api: %s %q is not a valid URL", name, raw))
	}
	return strings.TrimSuffix(u.String(), "/")
}

// newTestClient creates a client pointed at a test server for both
// origins, with download URL validation disabled.
func newTestClient(baseURL, token string) *Client {
	c := NewWithOrigins(token, baseURL, baseURL)
	c.skipURLValidation = true
	return c
}

// apiURL returns the absolute URL for a metadata endpoint.
func (c *Client) apiURL(path string) string {
	if path != "" && path[0] != '/' {
		path = "/" + path
	}
	return c.APIBaseURL + path
}

// uploadURL returns the absolute URL for an upload endpoint.
func (c *Client) uploadURL(path string) string {
	if path != "" && path[0] != '/' {
		path = "/" + path
	}
	return c.UploadBaseURL + path
}

// do performs an HTTP request and decodes the JSON response into result.
func (c *Client) do(ctx context.Context, method, url string, result any) error {
	respBody, _, _, err := c.execute(ctx, method, url, nil, "")
	if err != nil {
		return err
	}
	return decodeResult(respBody, result)
}

// doRaw performs an HTTP request and returns the raw response body.
func (c *Client) doRaw(ctx context.Context, method, url string) ([]byte, error) {
	respBody, _, _, err := c.execute(ctx, method, url, nil, "")
	return respBody, err
}

func decodeResult(respBody []byte, result any) error {
	if result == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

// execute is the single dispatch routine shared by every operation. It
// attaches the bearer credential, sends exactly one request, and
// classifies the response: 200/201/204 succeed with the body returned
// for decoding, the recognized failure statuses map to their named
// error, and anything else becomes a catch-all APIError carrying the
// literal status and body text.
func (c *Client) execute(ctx context.Context, method, rawURL string, body []byte, contentType string) ([]byte, http.Header, int, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, bodyReader)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	outboundID := uuid.NewString()
	req.Header.Set("X-Request-Id", outboundID)

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		if debug.IsEnabled(ctx) {
			slog.Debug("request failed", "method", method, "url", rawURL, "request_id", outboundID, "error", err)
		}
		return nil, nil, 0, &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if debug.IsEnabled(ctx) {
		slog.Debug("request complete", "method", method, "url", rawURL, "status", resp.StatusCode, "request_id", outboundID, "duration", time.Since(start))
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("failed to read response: %w", err)
		}
		return respBody, resp.Header, resp.StatusCode, nil
	}

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		RequestID:  requestIDFromHeader(resp.Header, outboundID),
	}
	if _, named := statusMessages[resp.StatusCode]; named {
		// Named statuses classify on the code alone; drain the body so
		// the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, resp.Header, resp.StatusCode, apiErr
	}

	apiErr.Body = unreadableBody
	if raw, err := io.ReadAll(resp.Body); err == nil {
		apiErr.Body = string(raw)
	}
	return nil, resp.Header, resp.StatusCode, apiErr
}

// DoRaw performs a request against an arbitrary path, returning the raw
// response body, headers, and status code. It routes the same way the
// typed operations do: the upload path goes to the upload origin,
// everything else to the API origin. This backs the raw API passthrough
// command.
func (c *Client) DoRaw(ctx context.Context, method, path string, query url.Values) ([]byte, http.Header, int, error) {
	if path != "" && path[0] != '/' {
		path = "/" + path
	}
	target := c.apiURL(path)
	if path == uploadPath {
		target = c.uploadURL(path)
	}
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return c.execute(ctx, method, target, nil, "")
}

// postMultipart performs a multipart POST carrying the image bytes plus
// text fields. The image part name and file name are fixed by the API
// contract.
func (c *Client) postMultipart(ctx context.Context, url string, fields map[string]string, imageData []byte, result any) error {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile(imagePartName, imagePartFileName)
	if err != nil {
		return fmt.Errorf("failed to create image part: %w", err)
	}
	if _, err := part.Write(imageData); err != nil {
		return fmt.Errorf("failed to write image data: %w", err)
	}

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("failed to write field %s: %w", key, err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close multipart writer: %w", err)
	}

	respBody, _, _, err := c.execute(ctx, http.MethodPost, url, body.Bytes(), writer.FormDataContentType())
	if err != nil {
		return err
	}
	return decodeResult(respBody, result)
}

func requestIDFromHeader(header http.Header, fallback string) string {
	if header != nil {
		if id := header.Get("X-Request-Id"); id != "" {
			return id
		}
	}
	return fallback
}
