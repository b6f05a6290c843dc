// internal/update/update_test.go
package update

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// setupTestServer creates a test server and overrides GitHubReleasesURL.
// Returns a cleanup function that restores the original URL.
func setupTestServer(handler http.HandlerFunc) (*httptest.Server, func()) {
	server := httptest.NewServer(handler)
	originalURL := GitHubReleasesURL
	GitHubReleasesURL = server.URL
	cleanup := func() {
		server.Close()
		GitHubReleasesURL = originalURL
	}
	return server, cleanup
}

func serveRelease(tagName, htmlURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(Release{TagName: tagName, HTMLURL: htmlURL})
	}
}

func TestNormalizeVersion(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1.0.0", "v1.0.0"},
		{"v1.0.0", "v1.0.0"},
		{"0.1.0", "v0.1.0"},
		{"v10.20.30", "v10.20.30"},
		{"", "v"},
		{"v", "v"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := normalizeVersion(tt.input)
			if got != tt.expected {
				t.Errorf("normalizeVersion(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCheckForUpdate_DevVersion(t *testing.T) {
	result := CheckForUpdate(context.Background(), "dev")
	if result != nil {
		t.Error("Expected nil for dev version, got result")
	}
}

func TestCheckForUpdate_EmptyVersion(t *testing.T) {
	result := CheckForUpdate(context.Background(), "")
	if result != nil {
		t.Error("Expected nil for empty version, got result")
	}
}

func TestCheckForUpdate_Success_UpdateAvailable(t *testing.T) {
	_, cleanup := setupTestServer(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET request, got %s", r.Method)
		}
		if r.Header.Get("Accept") != "application/vnd.github.v3+json" {
			t.Error("Expected GitHub API accept header")
		}
		serveRelease("v2.0.0", "https://github.com/gyazo/gyazo-cli/releases/tag/v2.0.0")(w, r)
	})
	defer cleanup()

	result := CheckForUpdate(context.Background(), "1.0.0")
	if result == nil {
		t.Fatal("Expected result, got nil")
	}
	if !result.UpdateAvailable {
		t.Error("Expected update to be available")
	}
	if result.CurrentVersion != "1.0.0" {
		t.Errorf("Expected current version 1.0.0, got %s", result.CurrentVersion)
	}
	if result.LatestVersion != "2.0.0" {
		t.Errorf("Expected latest version 2.0.0, got %s", result.LatestVersion)
	}
	if result.UpdateURL != "https://github.com/gyazo/gyazo-cli/releases/tag/v2.0.0" {
		t.Errorf("Unexpected update URL: %s", result.UpdateURL)
	}
}

func TestCheckForUpdate_Success_NoUpdateNeeded(t *testing.T) {
	_, cleanup := setupTestServer(serveRelease("v1.0.0", "https://example.com"))
	defer cleanup()

	result := CheckForUpdate(context.Background(), "1.0.0")
	if result == nil {
		t.Fatal("Expected result, got nil")
	}
	if result.UpdateAvailable {
		t.Error("Expected no update to be available")
	}
}

func TestCheckForUpdate_Success_CurrentVersionNewer(t *testing.T) {
	_, cleanup := setupTestServer(serveRelease("v1.0.0", "https://example.com"))
	defer cleanup()

	result := CheckForUpdate(context.Background(), "2.0.0")
	if result == nil {
		t.Fatal("Expected result, got nil")
	}
	if result.UpdateAvailable {
		t.Error("Expected no update to be available when current is newer")
	}
}

func TestCheckForUpdate_Success_VersionWithPrefix(t *testing.T) {
	_, cleanup := setupTestServer(serveRelease("v2.0.0", "https://example.com"))
	defer cleanup()

	result := CheckForUpdate(context.Background(), "v1.0.0")
	if result == nil {
		t.Fatal("Expected result, got nil")
	}
	if !result.UpdateAvailable {
		t.Error("Expected update to be available")
	}
	if result.CurrentVersion != "v1.0.0" {
		t.Errorf("Expected current version v1.0.0, got %s", result.CurrentVersion)
	}
}

func TestCheckForUpdate_PreReleaseVersion(t *testing.T) {
	_, cleanup := setupTestServer(serveRelease("v2.0.0-beta.1", "https://example.com"))
	defer cleanup()

	result := CheckForUpdate(context.Background(), "1.0.0")
	if result == nil {
		t.Fatal("Expected result, got nil")
	}
	if !result.UpdateAvailable {
		t.Error("Expected pre-release update to be available")
	}
}

func TestCheckForUpdate_EmptyTagName(t *testing.T) {
	_, cleanup := setupTestServer(serveRelease("", "https://example.com"))
	defer cleanup()

	result := CheckForUpdate(context.Background(), "1.0.0")
	if result == nil {
		t.Fatal("Expected result, got nil")
	}
	if result.UpdateAvailable {
		t.Error("Expected no update available for empty tag")
	}
}

func TestCheckForUpdate_InvalidSemverCurrent(t *testing.T) {
	_, cleanup := setupTestServer(serveRelease("v2.0.0", "https://example.com"))
	defer cleanup()

	result := CheckForUpdate(context.Background(), "not-a-version")
	if result == nil {
		t.Fatal("Expected result, got nil")
	}
	if result.UpdateAvailable {
		t.Error("Expected UpdateAvailable to be false for invalid semver")
	}
}

func TestCheckForUpdate_ServerError(t *testing.T) {
	_, cleanup := setupTestServer(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer cleanup()

	result := CheckForUpdate(context.Background(), "1.0.0")
	if result != nil {
		t.Error("Expected nil on server error, got result")
	}
}

func TestCheckForUpdate_RateLimited(t *testing.T) {
	_, cleanup := setupTestServer(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	defer cleanup()

	result := CheckForUpdate(context.Background(), "1.0.0")
	if result != nil {
		t.Error("Expected nil on 429 rate limit, got result")
	}
}

func TestCheckForUpdate_InvalidJSON(t *testing.T) {
	_, cleanup := setupTestServer(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("invalid json"))
	})
	defer cleanup()

	result := CheckForUpdate(context.Background(), "1.0.0")
	if result != nil {
		t.Error("Expected nil on invalid JSON, got result")
	}
}

func TestCheckForUpdate_ContextCanceled(t *testing.T) {
	_, cleanup := setupTestServer(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		serveRelease("v2.0.0", "https://example.com")(w, r)
	})
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := CheckForUpdate(ctx, "1.0.0")
	if result != nil {
		t.Error("Expected nil on canceled context, got result")
	}
}

func TestCheckForUpdate_ConnectionError(t *testing.T) {
	originalURL := GitHubReleasesURL
	GitHubReleasesURL = "http://localhost:1"
	defer func() { GitHubReleasesURL = originalURL }()

	result := CheckForUpdate(context.Background(), "1.0.0")
	if result != nil {
		t.Error("Expected nil on connection error, got result")
	}
}

func TestCheckForUpdate_LatestVersionStripsPrefix(t *testing.T) {
	_, cleanup := setupTestServer(serveRelease("v2.0.0", "https://example.com"))
	defer cleanup()

	result := CheckForUpdate(context.Background(), "1.0.0")
	if result == nil {
		t.Fatal("Expected result, got nil")
	}
	if result.LatestVersion != "2.0.0" {
		t.Errorf("Expected latest version without v prefix, got %s", result.LatestVersion)
	}
}
