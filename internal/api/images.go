package api

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/gyazo/gyazo-cli/internal/validation"
)

// maxDownloadBytes caps a single content download.
const maxDownloadBytes = int64(100 << 20)

// maxEmbeddedImageBytes caps captures rendered inline as data URIs.
const maxEmbeddedImageBytes = int64(5 << 20)

// Get retrieves a capture by ID.
func (s ImagesService) Get(ctx context.Context, id string) (*Image, error) {
	return getImage(ctx, s, id)
}

func getImage(ctx context.Context, r Requester, id string) (*Image, error) {
	if id == "" {
		return nil, &ValidationError{Field: "image_id", Message: "image ID is required"}
	}
	var result Image
	p := fmt.Sprintf("/api/images/%s", url.PathEscape(id))
	if err := r.do(ctx, http.MethodGet, r.apiURL(p), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// List retrieves the authenticated user's captures, most recent first.
func (s ImagesService) List(ctx context.Context) ([]Image, error) {
	return listImages(ctx, s)
}

func listImages(ctx context.Context, r Requester) ([]Image, error) {
	var result []Image
	if err := r.do(ctx, http.MethodGet, r.apiURL("/api/images"), &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a capture. The response echoes the ID and type of the
// deleted capture.
func (s ImagesService) Delete(ctx context.Context, id string) (*DeleteResult, error) {
	return deleteImage(ctx, s, id)
}

func deleteImage(ctx context.Context, r Requester, id string) (*DeleteResult, error) {
	if id == "" {
		return nil, &ValidationError{Field: "image_id", Message: "image ID is required"}
	}
	var result DeleteResult
	p := fmt.Sprintf("/api/images/%s", url.PathEscape(id))
	if err := r.do(ctx, http.MethodDelete, r.apiURL(p), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Download fetches capture content from its direct URL. The content host
// takes no bearer credential, so the request goes out bare. Returns the
// bytes and the reported content type.
func (c *Client) Download(ctx context.Context, rawURL string) ([]byte, string, error) {
	if !c.skipURLValidation {
		if err := validation.ValidateDownloadURL(rawURL); err != nil {
			return nil, "", &InvalidURLError{URL: rawURL, Message: err.Error()}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", err
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, "", &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, "", fmt.Errorf("download failed: status %d", resp.StatusCode)
	}

	if resp.ContentLength > maxDownloadBytes {
		return nil, "", fmt.Errorf("content too large: %d bytes exceeds %d", resp.ContentLength, maxDownloadBytes)
	}

	limited := io.LimitReader(resp.Body, maxDownloadBytes+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, "", err
	}
	if int64(len(data)) > maxDownloadBytes {
		return nil, "", fmt.Errorf("content too large: exceeds %d bytes", maxDownloadBytes)
	}

	return data, downloadMimeType(rawURL, resp.Header.Get("Content-Type")), nil
}

// EmbedDataURI downloads capture content and returns it as a base64 data
// URI. Content above the embed limit is rejected rather than truncated.
func (c *Client) EmbedDataURI(ctx context.Context, rawURL string) (string, error) {
	data, mimeType, err := c.Download(ctx, rawURL)
	if err != nil {
		return "", err
	}
	if int64(len(data)) > maxEmbeddedImageBytes {
		return "", fmt.Errorf("content too large to embed: %d bytes exceeds %d", len(data), maxEmbeddedImageBytes)
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	return fmt.Sprintf("data:%s;base64,%s", mimeType, encoded), nil
}

func downloadMimeType(rawURL, contentType string) string {
	if contentType != "" && (strings.HasPrefix(contentType, "image/") || strings.HasPrefix(contentType, "video/")) {
		return contentType
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "application/octet-stream"
	}
	switch strings.ToLower(path.Ext(u.Path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".mp4":
		return "video/mp4"
	default:
		return "application/octet-stream"
	}
}
