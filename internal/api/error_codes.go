package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents machine-readable error codes for agent error handling.
type ErrorCode string

const (
	// ErrBadRequest indicates a malformed request (HTTP 400).
	ErrBadRequest ErrorCode = "bad_request"
	// ErrUnauthorized indicates authentication is required or failed (HTTP 401).
	ErrUnauthorized ErrorCode = "unauthorized"
	// ErrForbidden indicates the token lacks permission (HTTP 403).
	ErrForbidden ErrorCode = "forbidden"
	// ErrNotFound indicates the capture does not exist (HTTP 404).
	ErrNotFound ErrorCode = "not_found"
	// ErrUnprocessable indicates the server cannot process the request (HTTP 422).
	ErrUnprocessable ErrorCode = "unprocessable"
	// ErrRateLimited indicates too many requests (HTTP 429).
	ErrRateLimited ErrorCode = "rate_limited"
	// ErrServerError indicates an internal server error (HTTP 500).
	ErrServerError ErrorCode = "server_error"
	// ErrInvalidInput indicates client-side input validation failed.
	ErrInvalidInput ErrorCode = "invalid_input"
	// ErrInvalidURL indicates a URL failed a client-side precondition.
	ErrInvalidURL ErrorCode = "invalid_url"
	// ErrDecodeFailed indicates a success response with an undecodable body.
	ErrDecodeFailed ErrorCode = "decode_failed"
	// ErrNetwork indicates the request never produced a classified response.
	ErrNetwork ErrorCode = "network"
	// ErrUnknown indicates an unknown or unclassified error.
	ErrUnknown ErrorCode = "unknown"
)

// IsRetryable returns true if errors with this code may succeed on retry.
// The client itself never retries; this informs callers.
func (c ErrorCode) IsRetryable() bool {
	switch c {
	case ErrRateLimited, ErrServerError, ErrNetwork:
		return true
	default:
		return false
	}
}

// Suggestion returns a human-readable suggestion for resolving this error.
func (c ErrorCode) Suggestion() string {
	switch c {
	case ErrUnauthorized:
		return "Run 'gz auth login' to configure your access token"
	case ErrForbidden:
		return "Check that your token has the required scope"
	case ErrNotFound:
		return "Verify the capture ID exists"
	case ErrUnprocessable:
		return "Check the upload contents and field values"
	case ErrRateLimited:
		return "Wait a moment and retry"
	case ErrInvalidInput:
		return "Check the input values"
	case ErrInvalidURL:
		return "Pass a gyazo.com capture URL"
	case ErrBadRequest:
		return "Check the request format and parameters"
	case ErrServerError:
		return "The server encountered an error; try again later"
	case ErrDecodeFailed:
		return "The API returned an unexpected payload; retry with --debug to inspect it"
	case ErrNetwork:
		return "Check network connectivity and the configured origins"
	default:
		return ""
	}
}

// ErrorCodeFromStatus maps an HTTP status code to an ErrorCode. Only the
// seven recognized statuses get named codes; everything else is unknown,
// with the literal status preserved on the APIError itself.
func ErrorCodeFromStatus(statusCode int) ErrorCode {
	switch statusCode {
	case 400:
		return ErrBadRequest
	case 401:
		return ErrUnauthorized
	case 403:
		return ErrForbidden
	case 404:
		return ErrNotFound
	case 422:
		return ErrUnprocessable
	case 429:
		return ErrRateLimited
	case 500:
		return ErrServerError
	default:
		return ErrUnknown
	}
}

// StructuredError provides machine-readable error information for agents.
type StructuredError struct {
	Code          ErrorCode      `json:"code"`
	Message       string         `json:"message"`
	Retryable     bool           `json:"retryable"`
	Suggestion    string         `json:"suggestion,omitempty"`
	Context       map[string]any `json:"context,omitempty"`
	AllowedValues []string       `json:"allowed_values,omitempty"`
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// MarshalJSON implements custom JSON marshaling.
func (e *StructuredError) MarshalJSON() ([]byte, error) {
	type Alias StructuredError
	return json.Marshal((*Alias)(e))
}

// NewStructuredError creates a StructuredError from an ErrorCode and message.
func NewStructuredError(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Code:       code,
		Message:    message,
		Retryable:  code.IsRetryable(),
		Suggestion: code.Suggestion(),
	}
}

// NewValidationError creates a StructuredError for input validation failures,
// including the list of allowed values so agents can self-correct.
func NewValidationError(field string, got string, allowed []string) *StructuredError {
	return &StructuredError{
		Code:          ErrInvalidInput,
		Message:       fmt.Sprintf("invalid %s %q: must be one of %s", field, got, strings.Join(allowed, ", ")),
		Retryable:     false,
		Suggestion:    fmt.Sprintf("Use one of: %s", strings.Join(allowed, ", ")),
		AllowedValues: allowed,
		Context:       map[string]any{"field": field, "got": got},
	}
}

// StructuredErrorFromAPIError converts an APIError to a StructuredError.
func StructuredErrorFromAPIError(apiErr *APIError) *StructuredError {
	code := ErrorCodeFromStatus(apiErr.StatusCode)
	ctx := map[string]any{
		"status_code": apiErr.StatusCode,
	}
	if apiErr.RequestID != "" {
		ctx["request_id"] = apiErr.RequestID
	}
	return &StructuredError{
		Code:       code,
		Message:    apiErr.Error(),
		Retryable:  code.IsRetryable(),
		Suggestion: code.Suggestion(),
		Context:    ctx,
	}
}

// StructuredErrorFromError attempts to convert any error to a StructuredError.
// It handles StructuredError, APIError, the client-side validation kinds,
// transport and decode failures, and generic errors.
func StructuredErrorFromError(err error) *StructuredError {
	if err == nil {
		return nil
	}

	var se *StructuredError
	if errors.As(err, &se) {
		return se
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return StructuredErrorFromAPIError(apiErr)
	}

	var valErr *ValidationError
	if errors.As(err, &valErr) {
		structured := NewStructuredError(ErrInvalidInput, valErr.Error())
		structured.Context = map[string]any{"field": valErr.Field}
		return structured
	}

	var urlErr *InvalidURLError
	if errors.As(err, &urlErr) {
		structured := NewStructuredError(ErrInvalidURL, urlErr.Error())
		if urlErr.URL != "" {
			structured.Context = map[string]any{"url": urlErr.URL}
		}
		return structured
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return NewStructuredError(ErrNetwork, transportErr.Error())
	}

	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return NewStructuredError(ErrDecodeFailed, decodeErr.Error())
	}

	// Generic error - classify as unknown
	return &StructuredError{
		Code:      ErrUnknown,
		Message:   err.Error(),
		Retryable: false,
	}
}
