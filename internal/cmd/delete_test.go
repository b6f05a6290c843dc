package cmd

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCommand_Single(t *testing.T) {
	deleteCalled := false
	handler := newRouteHandler().
		On("DELETE", "/api/images/a1b2c3d4e5f67890a1b2c3d4e5f67890", func(w http.ResponseWriter, r *http.Request) {
			deleteCalled = true
			jsonResponse(200, `{"image_id": "a1b2c3d4e5f67890a1b2c3d4e5f67890", "type": "png"}`)(w, r)
		})

	setupTestEnvWithHandler(t, handler)

	output := captureStdout(t, func() {
		err := Execute(context.Background(), []string{"delete", "a1b2c3d4e5f67890a1b2c3d4e5f67890", "--yes"})
		assert.NoError(t, err)
	})

	assert.True(t, deleteCalled, "delete endpoint should be called")
	assert.Contains(t, output, "Deleted a1b2c3d4e5f67890a1b2c3d4e5f67890")
}

func TestDeleteCommand_CancelledWithoutConfirmation(t *testing.T) {
	deleteCalled := false
	handler := newRouteHandler().
		On("DELETE", "/api/images/a1b2c3d4e5f67890a1b2c3d4e5f67890", func(w http.ResponseWriter, r *http.Request) {
			deleteCalled = true
			jsonResponse(200, `{}`)(w, r)
		})

	setupTestEnvWithHandler(t, handler)

	// Stdin is not a terminal in tests, so the prompt reads EOF and cancels.
	output := captureStdout(t, func() {
		err := Execute(context.Background(), []string{"delete", "a1b2c3d4e5f67890a1b2c3d4e5f67890"})
		assert.NoError(t, err)
	})

	assert.False(t, deleteCalled, "cancelled delete must not reach the API")
	assert.Contains(t, output, "Deletion cancelled.")
}

func TestDeleteCommand_JSONRequiresForce(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler())

	err := Execute(context.Background(), []string{"delete", "a1b2c3d4e5f67890a1b2c3d4e5f67890", "-o", "json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force flag is required when using --output json")
}

func TestDeleteCommand_DryRun(t *testing.T) {
	deleteCalled := false
	handler := newRouteHandler().
		On("DELETE", "/api/images/a1b2c3d4e5f67890a1b2c3d4e5f67890", func(w http.ResponseWriter, r *http.Request) {
			deleteCalled = true
			jsonResponse(200, `{}`)(w, r)
		})

	setupTestEnvWithHandler(t, handler)

	output := captureStdout(t, func() {
		err := Execute(context.Background(), []string{"delete", "a1b2c3d4e5f67890a1b2c3d4e5f67890", "--dry-run"})
		assert.NoError(t, err)
	})

	assert.False(t, deleteCalled, "dry run must not reach the API")
	assert.Contains(t, output, "delete")
	assert.Contains(t, output, "Deletion is permanent and cannot be undone.")
}

func TestDeleteCommand_Multiple(t *testing.T) {
	var calls int64
	countingDelete := func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		id := strings.TrimPrefix(r.URL.Path, "/api/images/")
		jsonResponse(200, `{"image_id": "`+id+`", "type": "png"}`)(w, r)
	}
	handler := newRouteHandler().
		On("DELETE", "/api/images/1111111111111111", countingDelete).
		On("DELETE", "/api/images/2222222222222222", countingDelete)

	setupTestEnvWithHandler(t, handler)

	output := captureStdout(t, func() {
		err := Execute(context.Background(), []string{
			"delete", "1111111111111111", "2222222222222222", "--yes", "--no-progress",
		})
		assert.NoError(t, err)
	})

	assert.Equal(t, int64(2), atomic.LoadInt64(&calls), "should delete both captures")
	assert.Contains(t, output, "Deleted 2 captures (0 failed)")
}

func TestDeleteCommand_MultipleJSON(t *testing.T) {
	handler := newRouteHandler().
		On("DELETE", "/api/images/1111111111111111", jsonResponse(200, `{"image_id": "1111111111111111", "type": "png"}`)).
		On("DELETE", "/api/images/2222222222222222", jsonResponse(404, `{"message": "Not found"}`))

	setupTestEnvWithHandler(t, handler)

	var execErr error
	output := captureStdout(t, func() {
		execErr = Execute(context.Background(), []string{
			"delete", "1111111111111111", "2222222222222222", "--yes", "--force", "-o", "json",
		})
	})

	require.Error(t, execErr, "partial failure should surface as an error")
	assert.Contains(t, execErr.Error(), "1 of 2 deletions failed")

	var doc struct {
		Items        []map[string]any `json:"items"`
		SuccessCount int              `json:"success_count"`
		FailCount    int              `json:"fail_count"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &doc), "output: %s", output)
	assert.Len(t, doc.Items, 2)
	assert.Equal(t, 1, doc.SuccessCount)
	assert.Equal(t, 1, doc.FailCount)
}

func TestDeleteCommand_DeduplicatesReferences(t *testing.T) {
	var calls int64
	handler := newRouteHandler().
		On("DELETE", "/api/images/1111111111111111", func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt64(&calls, 1)
			jsonResponse(200, `{"image_id": "1111111111111111", "type": "png"}`)(w, r)
		})

	setupTestEnvWithHandler(t, handler)

	captureStdout(t, func() {
		err := Execute(context.Background(), []string{
			"delete", "1111111111111111", "https://gyazo.com/1111111111111111", "--yes",
		})
		assert.NoError(t, err)
	})

	assert.Equal(t, int64(1), atomic.LoadInt64(&calls), "same capture referenced twice should delete once")
}

func TestDeleteCommand_RequiresArg(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler())

	err := Execute(context.Background(), []string{"delete"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
	assert.Equal(t, exitUsage, ExitCode(err))
}
