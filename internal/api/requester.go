package api

import "context"

// PathResolver provides methods for resolving absolute endpoint URLs.
// Upload traffic goes to a different origin than everything else, and
// services build URLs through this interface so they never hard-code
// either origin.
type PathResolver interface {
	// apiURL returns the absolute URL for a metadata endpoint.
	// Example: apiURL("/api/images") -> "https://api.gyazo.com/api/images"
	apiURL(path string) string

	// uploadURL returns the absolute URL for an upload endpoint.
	// Example: uploadURL("/api/upload") -> "https://upload.gyazo.com/api/upload"
	uploadURL(path string) string
}

// HTTPExecutor provides methods for executing HTTP requests. It hides
// the bearer credential, response classification, and JSON decoding
// from the operation helpers, and allows mocking network traffic in
// tests.
type HTTPExecutor interface {
	// do executes a request and decodes the JSON response into result
	// when result is non-nil.
	do(ctx context.Context, method, url string, result any) error

	// doRaw executes a request and returns the raw response bytes.
	doRaw(ctx context.Context, method, url string) ([]byte, error)

	// postMultipart performs a multipart/form-data POST carrying the
	// image bytes part plus one text part per field.
	postMultipart(ctx context.Context, url string, fields map[string]string, imageData []byte, result any) error
}

// Requester combines PathResolver and HTTPExecutor into the complete
// request surface the operation helpers depend on. Helpers that need
// only one half can depend on the smaller interface.
type Requester interface {
	PathResolver
	HTTPExecutor
}
