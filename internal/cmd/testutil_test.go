// Package cmd provides test utilities for the gyazo CLI commands.
//
// # Test Infrastructure Overview
//
// This file provides utilities for testing CLI commands against mock HTTP servers.
// The main components are:
//
//   - routeHandler: A chainable HTTP handler for routing requests to mock responses
//   - setupTestEnv / setupTestEnvWithHandler: Environment setup with automatic cleanup
//   - captureStdout / captureStderr: Output capture utilities
//   - jsonResponse: Helper for creating JSON response handlers
//
// # Quick Start
//
// Here's a minimal example of testing a command:
//
//	func TestMyCommand(t *testing.T) {
//	    handler := newRouteHandler().
//	        On("GET", "/api/images/0123456789abcdef", jsonResponse(200, `{"image_id": "0123456789abcdef"}`))
//
//	    setupTestEnvWithHandler(t, handler)
//
//	    output := captureStdout(t, func() {
//	        err := Execute(context.Background(), []string{"get", "0123456789abcdef"})
//	        if err != nil {
//	            t.Fatalf("command failed: %v", err)
//	        }
//	    })
//
//	    // Assert on output...
//	}
//
// # Route Handler Pattern
//
// The routeHandler allows you to define mock responses for specific HTTP methods and paths.
// It uses a fluent/chainable API for readability:
//
//	handler := newRouteHandler().
//	    On("GET", "/api/images", jsonResponse(200, `[...]`)).
//	    On("POST", "/api/upload", jsonResponse(200, `{"image_id": "0123456789abcdef"}`)).
//	    On("DELETE", "/api/images/0123456789abcdef", jsonResponse(200, `{}`))
//
// Both the API and the upload origin point at the same test server, so upload
// routes live on the same handler as everything else.
//
// For more complex scenarios (e.g., inspecting request bodies), use a custom handler:
//
//	var gotQuery url.Values
//	handler := newRouteHandler().
//	    On("GET", "/api/oembed", func(w http.ResponseWriter, r *http.Request) {
//	        gotQuery = r.URL.Query()
//	        w.Header().Set("Content-Type", "application/json")
//	        w.WriteHeader(http.StatusOK)
//	        _, _ = w.Write([]byte(`{"version": "1.0"}`))
//	    })
//
// # Common Patterns
//
// Testing list commands with JSON output:
//
//	func TestListJSON(t *testing.T) {
//	    handler := newRouteHandler().
//	        On("GET", "/api/images", jsonResponse(200, `[
//	            {"image_id": "1111111111111111"}, {"image_id": "2222222222222222"}
//	        ]`))
//
//	    setupTestEnvWithHandler(t, handler)
//
//	    output := captureStdout(t, func() {
//	        if err := Execute(context.Background(), []string{"list", "-o", "json"}); err != nil {
//	            t.Fatalf("failed: %v", err)
//	        }
//	    })
//
//	    items := decodeItems(t, output)  // Returns []map[string]any from {"items": [...]}
//	    if len(items) != 2 {
//	        t.Errorf("expected 2 items, got %d", len(items))
//	    }
//	}
//
// Testing error responses:
//
//	func TestCaptureNotFound(t *testing.T) {
//	    handler := newRouteHandler().
//	        On("GET", "/api/images/ffffffffffffffff", jsonResponse(404, `{"message": "Not found"}`))
//
//	    setupTestEnvWithHandler(t, handler)
//
//	    err := Execute(context.Background(), []string{"get", "ffffffffffffffff"})
//	    if err == nil {
//	        t.Error("expected error for not found")
//	    }
//	}
package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// captureStdout executes a function and captures its stdout output.
// Use this to capture and verify command output in tests.
//
// Example:
//
//	output := captureStdout(t, func() {
//	    err := Execute(context.Background(), []string{"list"})
//	    if err != nil {
//	        t.Fatalf("failed: %v", err)
//	    }
//	})
//	if !strings.Contains(output, "expected text") {
//	    t.Error("missing expected text")
//	}
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// captureStderr executes a function and captures its stderr output.
// Use this to capture error messages or "no results" messages.
//
// Example:
//
//	output := captureStderr(t, func() {
//	    _ = Execute(context.Background(), []string{"list"})
//	})
//	if !strings.Contains(output, "No captures found") {
//	    t.Error("expected empty list message")
//	}
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	fn()

	_ = w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// testEnv holds the original environment variables and restores them on cleanup.
// It also provides access to the mock test server.
type testEnv struct {
	t          *testing.T
	server     *httptest.Server
	origAPI    string
	origUpload string
	origToken  string
}

// setupTestEnv creates a mock server with a simple handler and sets up the environment.
// Use this when you only need a single response handler for all requests.
// For routing multiple endpoints, use setupTestEnvWithHandler with a routeHandler instead.
//
// Example:
//
//	env := setupTestEnv(t, jsonResponse(200, `{"image_id": "0123456789abcdef"}`))
//	// env.server.URL contains the test server URL
func setupTestEnv(t *testing.T, handler http.HandlerFunc) *testEnv {
	t.Helper()
	return setupTestEnvWithHandler(t, handler)
}

// setupTestEnvWithHandler creates a mock server with any http.Handler and sets up the environment.
// This is the preferred method for most tests as it works with routeHandler for multi-endpoint routing.
//
// The function automatically:
//   - Creates a test HTTP server
//   - Points GYAZO_API_URL and GYAZO_UPLOAD_URL at the test server
//   - Sets GYAZO_ACCESS_TOKEN to "test-token"
//   - Sets GYAZO_TESTING to suppress browser launches
//   - Redirects the settings file and cache dir into a temp dir
//   - Restores all original values on test cleanup
//
// Example with routeHandler:
//
//	handler := newRouteHandler().
//	    On("GET", "/api/images", jsonResponse(200, `[]`))
//	setupTestEnvWithHandler(t, handler)
//	// Now execute commands that will hit the mock server
func setupTestEnvWithHandler(t *testing.T, handler http.Handler) *testEnv {
	t.Helper()

	server := httptest.NewServer(handler)

	env := &testEnv{
		t:          t,
		server:     server,
		origAPI:    os.Getenv("GYAZO_API_URL"),
		origUpload: os.Getenv("GYAZO_UPLOAD_URL"),
		origToken:  os.Getenv("GYAZO_ACCESS_TOKEN"),
	}

	_ = os.Setenv("GYAZO_API_URL", server.URL)
	_ = os.Setenv("GYAZO_UPLOAD_URL", server.URL)
	_ = os.Setenv("GYAZO_ACCESS_TOKEN", "test-token")
	t.Setenv("GYAZO_TESTING", "1")      // Suppress browser launches
	t.Setenv("GYAZO_OUTPUT", "text")    // Ensure tests use text output by default
	t.Setenv("GYAZO_PROFILE", "")       // Ignore any profile selected in the shell
	t.Setenv("GYAZO_ALLOW_PRIVATE", "") // Loopback is always allowed; keep the warning quiet

	// Keep every filesystem side effect inside the test's temp dir.
	tmp := t.TempDir()
	t.Setenv("GYAZO_SETTINGS_PATH", filepath.Join(tmp, "settings.toml"))
	t.Setenv("GYAZO_CACHE_DIR", filepath.Join(tmp, "cache"))

	t.Cleanup(func() {
		server.Close()
		_ = os.Setenv("GYAZO_API_URL", env.origAPI)
		_ = os.Setenv("GYAZO_UPLOAD_URL", env.origUpload)
		_ = os.Setenv("GYAZO_ACCESS_TOKEN", env.origToken)
	})

	return env
}

// jsonResponse creates an http.HandlerFunc that returns a JSON response with the given status and body.
// This is the most common way to create mock responses.
//
// Example:
//
//	// Simple success response
//	jsonResponse(200, `{"image_id": "0123456789abcdef", "type": "png"}`)
//
//	// List response (the captures endpoint returns a bare array)
//	jsonResponse(200, `[{"image_id": "1111111111111111"}, {"image_id": "2222222222222222"}]`)
//
//	// Error response
//	jsonResponse(404, `{"message": "Not found"}`)
func jsonResponse(statusCode int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(body))
	}
}

// routeHandler is a test HTTP handler that routes requests based on method and path.
// It provides a fluent API for defining mock responses for different API endpoints.
//
// Routes are matched by exact "METHOD PATH" combination. If no route matches,
// it returns 404 Not Found.
//
// Example:
//
//	handler := newRouteHandler().
//	    On("GET", "/api/images", jsonResponse(200, `[]`)).
//	    On("POST", "/api/upload", jsonResponse(200, `{"image_id": "0123456789abcdef"}`))
type routeHandler struct {
	routes map[string]http.HandlerFunc
}

// newRouteHandler creates a new routeHandler for defining mock API responses.
// Always use this with setupTestEnvWithHandler.
func newRouteHandler() *routeHandler {
	return &routeHandler{routes: make(map[string]http.HandlerFunc)}
}

// On registers a handler for the given HTTP method and path.
// Returns the routeHandler to allow method chaining.
//
// Parameters:
//   - method: HTTP method (GET, POST, PUT, DELETE)
//   - path: The request path, e.g. /api/images/{id}
//   - handler: An http.HandlerFunc (use jsonResponse() for simple cases)
func (rh *routeHandler) On(method, path string, handler http.HandlerFunc) *routeHandler {
	rh.routes[method+" "+path] = handler
	return rh
}

// ServeHTTP implements http.Handler. It looks up the handler for the request's
// method and path combination. Returns 404 if no matching route is found.
func (rh *routeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	if handler, ok := rh.routes[key]; ok {
		handler(w, r)
		return
	}
	http.NotFound(w, r)
}

// TestTestInfrastructure validates that the test infrastructure works correctly
func TestTestInfrastructure(t *testing.T) {
	t.Run("setupTestEnv sets environment variables", func(t *testing.T) {
		env := setupTestEnv(t, jsonResponse(200, `{"status": "ok"}`))

		if os.Getenv("GYAZO_API_URL") != env.server.URL {
			t.Error("GYAZO_API_URL not set correctly")
		}
		if os.Getenv("GYAZO_UPLOAD_URL") != env.server.URL {
			t.Error("GYAZO_UPLOAD_URL not set correctly")
		}
		if os.Getenv("GYAZO_ACCESS_TOKEN") != "test-token" {
			t.Error("GYAZO_ACCESS_TOKEN not set correctly")
		}
	})

	t.Run("routeHandler routes requests correctly", func(t *testing.T) {
		handler := newRouteHandler().
			On("GET", "/api/test", jsonResponse(200, `{"method": "get"}`)).
			On("POST", "/api/test", jsonResponse(201, `{"method": "post"}`))

		env := setupTestEnvWithHandler(t, handler)

		// Test GET request
		resp, err := http.Get(env.server.URL + "/api/test")
		if err != nil {
			t.Fatalf("GET request failed: %v", err)
		}
		_ = resp.Body.Close()
		if resp.StatusCode != 200 {
			t.Errorf("expected status 200, got %d", resp.StatusCode)
		}

		// Test POST request
		resp, err = http.Post(env.server.URL+"/api/test", "application/json", nil)
		if err != nil {
			t.Fatalf("POST request failed: %v", err)
		}
		_ = resp.Body.Close()
		if resp.StatusCode != 201 {
			t.Errorf("expected status 201, got %d", resp.StatusCode)
		}

		// Test 404 for unknown route
		resp, err = http.Get(env.server.URL + "/api/unknown")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		_ = resp.Body.Close()
		if resp.StatusCode != 404 {
			t.Errorf("expected status 404 for unknown route, got %d", resp.StatusCode)
		}
	})
}

// decodeItems parses JSON output from list commands and returns the items array.
// CLI list commands with -o json output use the format: {"items": [...], "total": N}
// This helper extracts just the items array for easy assertion.
//
// Example:
//
//	output := captureStdout(t, func() {
//	    _ = Execute(context.Background(), []string{"list", "-o", "json"})
//	})
//	items := decodeItems(t, output)
//	if len(items) != 2 {
//	    t.Errorf("expected 2 items, got %d", len(items))
//	}
func decodeItems(t *testing.T, output string) []map[string]any {
	t.Helper()
	var wrapper struct {
		Items []map[string]any `json:"items"`
	}
	if err := json.Unmarshal([]byte(output), &wrapper); err != nil {
		t.Fatalf("output is not valid JSON: %v, output: %s", err, output)
	}
	return wrapper.Items
}
