package heuristics

import (
	"strings"
	"testing"
	"time"

	"github.com/gyazo/gyazo-cli/internal/api"
)

func strPtr(s string) *string { return &s }

func TestAnalyzeCapture_RecentScreenshotWithText(t *testing.T) {
	img := &api.Image{
		ImageID:   "a1b2c3d4e5f6a7b8",
		Type:      "png",
		CreatedAt: time.Now().Add(-2 * time.Hour).Format(time.RFC3339),
		Metadata: api.ImageMetadata{
			App:   strPtr("Firefox"),
			Title: strPtr("checkout page"),
			URL:   strPtr("https://example.com/checkout"),
		},
		OCR: &api.ImageOCR{Locale: "en", Description: "Pay now"},
	}

	analysis := AnalyzeCapture(img)

	if analysis.Kind != "screenshot" {
		t.Errorf("expected kind 'screenshot', got '%s'", analysis.Kind)
	}
	if !analysis.HasText {
		t.Error("expected has_text for a capture with OCR")
	}
	if analysis.Freshness != "recent" {
		t.Errorf("expected freshness 'recent', got '%s'", analysis.Freshness)
	}
	if !containsNote(analysis.Notes, "locale en") {
		t.Errorf("expected OCR locale note, got %v", analysis.Notes)
	}
	if !strings.Contains(analysis.Context, "Firefox") || !strings.Contains(analysis.Context, "example.com") {
		t.Errorf("expected context naming app and page, got %q", analysis.Context)
	}
}

func TestAnalyzeCapture_KindFromType(t *testing.T) {
	tests := []struct {
		fileType string
		want     string
	}{
		{"png", "screenshot"},
		{"jpg", "screenshot"},
		{"gif", "animation"},
		{"mp4", "video"},
		{"", "screenshot"},
	}

	for _, tt := range tests {
		img := &api.Image{ImageID: "x", Type: tt.fileType}
		if got := AnalyzeCapture(img).Kind; got != tt.want {
			t.Errorf("type %q: expected kind %q, got %q", tt.fileType, tt.want, got)
		}
	}
}

func TestAnalyzeCapture_StaleUntitled(t *testing.T) {
	img := &api.Image{
		ImageID:   "deadbeefdeadbeef",
		Type:      "png",
		CreatedAt: time.Now().Add(-200 * 24 * time.Hour).Format(time.RFC3339),
	}

	analysis := AnalyzeCapture(img)

	if analysis.Freshness != "stale" {
		t.Errorf("expected freshness 'stale', got '%s'", analysis.Freshness)
	}
	if !containsNote(analysis.Notes, "No title") {
		t.Errorf("expected untitled note, got %v", analysis.Notes)
	}
	if analysis.Context != "" {
		t.Errorf("expected empty context without metadata, got %q", analysis.Context)
	}
}

func TestAnalyzeCapture_AgedFreshness(t *testing.T) {
	img := &api.Image{
		ImageID:   "x",
		Type:      "png",
		CreatedAt: time.Now().Add(-45 * 24 * time.Hour).Format(time.RFC3339),
	}

	if got := AnalyzeCapture(img).Freshness; got != "aged" {
		t.Errorf("expected freshness 'aged', got '%s'", got)
	}
}

func TestAnalyzeCapture_UnknownFreshness(t *testing.T) {
	img := &api.Image{ImageID: "x", Type: "png", CreatedAt: "garbage"}

	if got := AnalyzeCapture(img).Freshness; got != "unknown" {
		t.Errorf("expected freshness 'unknown' for unparsable timestamp, got '%s'", got)
	}
}

func TestAnalyzeCapture_Nil(t *testing.T) {
	analysis := AnalyzeCapture(nil)
	if analysis == nil {
		t.Fatal("expected non-nil analysis for nil capture")
	}
	if analysis.Freshness != "unknown" {
		t.Errorf("expected freshness 'unknown', got '%s'", analysis.Freshness)
	}
}

func TestSuggestActions_Untitled(t *testing.T) {
	img := &api.Image{
		ImageID:   "x",
		Type:      "png",
		CreatedAt: time.Now().Format(time.RFC3339),
	}

	actions := SuggestActions(img)

	annotate := findAction(actions, "annotate")
	if annotate == nil {
		t.Fatalf("expected annotate suggestion, got %v", actions)
	}
	if annotate.Priority != "medium" {
		t.Errorf("expected medium priority when nothing identifies the capture, got '%s'", annotate.Priority)
	}
}

func TestSuggestActions_UntitledWithOCRIsLowPriority(t *testing.T) {
	img := &api.Image{
		ImageID:   "x",
		Type:      "png",
		CreatedAt: time.Now().Format(time.RFC3339),
		OCR:       &api.ImageOCR{Locale: "en", Description: "Pay now"},
	}

	actions := SuggestActions(img)

	annotate := findAction(actions, "annotate")
	if annotate == nil {
		t.Fatalf("expected annotate suggestion, got %v", actions)
	}
	if annotate.Priority != "low" {
		t.Errorf("expected low priority when OCR identifies the capture, got '%s'", annotate.Priority)
	}
	if findAction(actions, "copy_text") == nil {
		t.Errorf("expected copy_text suggestion for OCR capture, got %v", actions)
	}
}

func TestSuggestActions_TitledSharable(t *testing.T) {
	img := &api.Image{
		ImageID:      "x",
		Type:         "png",
		PermalinkURL: strPtr("https://gyazo.com/x"),
		CreatedAt:    time.Now().Format(time.RFC3339),
		Metadata:     api.ImageMetadata{Title: strPtr("release notes")},
	}

	actions := SuggestActions(img)

	if findAction(actions, "annotate") != nil {
		t.Errorf("titled capture should not suggest annotate, got %v", actions)
	}
	if findAction(actions, "share") == nil {
		t.Errorf("expected share suggestion for capture with permalink, got %v", actions)
	}
}

func TestSuggestActions_StaleCleanup(t *testing.T) {
	img := &api.Image{
		ImageID:   "x",
		Type:      "png",
		CreatedAt: time.Now().Add(-200 * 24 * time.Hour).Format(time.RFC3339),
	}

	actions := SuggestActions(img)

	cleanup := findAction(actions, "cleanup")
	if cleanup == nil {
		t.Fatalf("expected cleanup suggestion for stale untitled capture, got %v", actions)
	}
	if cleanup.Priority != "medium" {
		t.Errorf("expected medium cleanup priority, got '%s'", cleanup.Priority)
	}
}

func TestSuggestActions_Nil(t *testing.T) {
	if actions := SuggestActions(nil); len(actions) != 0 {
		t.Errorf("expected no suggestions for nil capture, got %v", actions)
	}
}

func TestFormatAge(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{3 * time.Hour, "3h"},
		{26 * time.Hour, "1d"},
		{45 * 24 * time.Hour, "45d"},
		{90 * 24 * time.Hour, "3 months"},
		{800 * 24 * time.Hour, "2 years"},
	}

	for _, tt := range tests {
		if got := formatAge(tt.d); got != tt.want {
			t.Errorf("formatAge(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func containsNote(notes []string, substr string) bool {
	for _, n := range notes {
		if strings.Contains(n, substr) {
			return true
		}
	}
	return false
}

func findAction(actions []SuggestedAction, name string) *SuggestedAction {
	for i := range actions {
		if actions[i].Action == name {
			return &actions[i]
		}
	}
	return nil
}
