package resolve_test

import (
	"strings"
	"testing"

	"github.com/gyazo/gyazo-cli/internal/resolve"
)

func TestAmbiguousErrorString(t *testing.T) {
	err := &resolve.AmbiguousError{
		Query: "error",
		Matches: []resolve.Match{
			{ID: "abc123", Name: "Error screenshot"},
			{ID: "def456", Name: "Error screencast"},
		},
	}

	msg := err.Error()
	if !strings.Contains(msg, `ambiguous match for "error"`) {
		t.Fatalf("missing query in error message: %q", msg)
	}
	if !strings.Contains(msg, "abc123: Error screenshot") || !strings.Contains(msg, "def456: Error screencast") {
		t.Fatalf("missing candidates in error message: %q", msg)
	}
}
