package cmd

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
)

func TestCompletionsCaptures(t *testing.T) {
	var listCalls int64
	handler := newRouteHandler().
		On("GET", "/api/images", func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt64(&listCalls, 1)
			jsonResponse(200, listFixture)(w, r)
		})

	setupTestEnvWithHandler(t, handler)

	output := captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"completions", "captures"}); err != nil {
			t.Errorf("completions captures failed: %v", err)
		}
	})

	if !strings.Contains(output, "1111111111111111") {
		t.Errorf("missing capture ID: %s", output)
	}
	if !strings.Contains(output, "Invoice page") {
		t.Errorf("missing capture title: %s", output)
	}

	// Second invocation is served from the file cache.
	captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"completions", "captures"}); err != nil {
			t.Errorf("completions captures failed: %v", err)
		}
	})

	if got := atomic.LoadInt64(&listCalls); got != 1 {
		t.Errorf("expected 1 API call with a warm cache, got %d", got)
	}
}

func TestCompletionsCaptures_NoCache(t *testing.T) {
	var listCalls int64
	handler := newRouteHandler().
		On("GET", "/api/images", func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt64(&listCalls, 1)
			jsonResponse(200, listFixture)(w, r)
		})

	setupTestEnvWithHandler(t, handler)

	for i := 0; i < 2; i++ {
		captureStdout(t, func() {
			err := Execute(context.Background(), []string{"completions", "captures", "--no-cache"})
			if err != nil {
				t.Errorf("completions captures --no-cache failed: %v", err)
			}
		})
	}

	if got := atomic.LoadInt64(&listCalls); got != 2 {
		t.Errorf("--no-cache should skip the cache, got %d API calls", got)
	}
}

func TestCompletionsCaptures_JSON(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/api/images", jsonResponse(200, listFixture))

	setupTestEnvWithHandler(t, handler)

	output := captureStdout(t, func() {
		err := Execute(context.Background(), []string{"completions", "captures", "-o", "json"})
		if err != nil {
			t.Errorf("completions captures -o json failed: %v", err)
		}
	})

	var items []map[string]any
	if err := json.Unmarshal([]byte(output), &items); err != nil {
		t.Fatalf("output is not a JSON array: %v, output: %s", err, output)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0]["value"] != "1111111111111111" {
		t.Errorf("wrong value: %v", items[0]["value"])
	}
	if items[0]["label"] != "Invoice page" {
		t.Errorf("wrong label: %v", items[0]["label"])
	}
}

func TestCompletionsAccessPolicies(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler())

	output := captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"completions", "access-policies"}); err != nil {
			t.Errorf("completions access-policies failed: %v", err)
		}
	})

	if !strings.Contains(output, "anyone") || !strings.Contains(output, "only_me") {
		t.Errorf("missing policies: %s", output)
	}
}

func TestCompletionsCopyFormats(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler())

	output := captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"completions", "copy-formats"}); err != nil {
			t.Errorf("completions copy-formats failed: %v", err)
		}
	})

	for _, format := range []string{"url", "markdown", "html"} {
		if !strings.Contains(output, format) {
			t.Errorf("missing format %s: %s", format, output)
		}
	}
}

func TestCompletionsProfiles(t *testing.T) {
	handler := newRouteHandler().
		On("GET", "/api/users/me", jsonResponse(200, userFixture))

	setupTestEnvWithHandler(t, handler)
	withSharedKeyring(t)

	loginProfile(t, "work", "tok_workwork1234work")

	output := captureStdout(t, func() {
		if err := Execute(context.Background(), []string{"completions", "profiles"}); err != nil {
			t.Errorf("completions profiles failed: %v", err)
		}
	})

	if !strings.Contains(output, "work") {
		t.Errorf("missing profile: %s", output)
	}
}
