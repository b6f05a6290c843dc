package api

import (
	"errors"
	"fmt"
)

// statusMessages holds the fixed message for each recognized failure
// status. Responses with these codes classify on the code alone; the
// body is never inspected.
var statusMessages = map[int]string{
	400: "Bad Request: Invalid request parameters",
	401: "Unauthorized: Authentication required",
	403: "Forbidden: Access denied",
	404: "Not Found",
	422: "Unprocessable Entity: Server cannot process the request",
	429: "Too Many Requests: Rate limit exceeded",
	500: "Internal Server Error: Unexpected error occurred",
}

// APIError represents a non-success response from the API. Recognized
// statuses (400, 401, 403, 404, 422, 429, 500) render a fixed message;
// any other status carries the literal code and raw body text.
type APIError struct {
	StatusCode int
	Body       string
	RequestID  string
}

func (e *APIError) Error() string {
	if msg, ok := statusMessages[e.StatusCode]; ok {
		return msg
	}
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
}

// TransportError wraps a failure that happened before any response was
// classified: connection refused, TLS handshake, timeout.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError reports a nominally successful response whose body could
// not be decoded into the expected record shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unexpected API response format (JSON decode failed): %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ValidationError reports client-side rejection of an input value. No
// request is sent when validation fails.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Message)
}

// InvalidURLError reports a URL that failed the client-side precondition
// of an operation, before any network call was attempted.
type InvalidURLError struct {
	URL     string
	Message string
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid url: %s", e.Message)
}

// IsTransportError checks if the error originated below the HTTP layer.
func IsTransportError(err error) bool {
	var e *TransportError
	return errors.As(err, &e)
}

// IsDecodeError checks if the error came from JSON decoding a success response.
func IsDecodeError(err error) bool {
	var e *DecodeError
	return errors.As(err, &e)
}

// IsValidationError checks if the error is a client-side input rejection.
func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// IsInvalidURLError checks if the error is a client-side URL rejection.
func IsInvalidURLError(err error) bool {
	var e *InvalidURLError
	return errors.As(err, &e)
}

// IsNotFoundError checks if the error indicates the capture does not exist.
func IsNotFoundError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}

// IsAuthError checks if the error indicates a rejected credential.
func IsAuthError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && (apiErr.StatusCode == 401 || apiErr.StatusCode == 403)
}

// IsRateLimitError checks if the error indicates the API rate limit was hit.
func IsRateLimitError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 429
}
