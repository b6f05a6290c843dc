// Package heuristics provides capture analysis for agent assistance.
package heuristics

import (
	"fmt"
	"strings"
	"time"

	"github.com/gyazo/gyazo-cli/internal/api"
)

// Analysis contains the results of capture analysis.
type Analysis struct {
	Kind      string   `json:"kind"`      // "screenshot", "animation", "video"
	HasText   bool     `json:"has_text"`  // OCR text is attached
	Freshness string   `json:"freshness"` // "recent", "aged", "stale", "unknown"
	Notes     []string `json:"notes"`     // observations about the capture
	Context   string   `json:"context"`   // where the capture came from
}

// SuggestedAction represents a recommended action for a capture.
type SuggestedAction struct {
	Action   string `json:"action"`   // action type: "annotate", "copy_text", "share", "cleanup"
	Reason   string `json:"reason"`   // explanation of why this action is suggested
	Priority string `json:"priority"` // "high", "medium", "low"
}

const (
	agedAfter  = 30 * 24 * time.Hour
	staleAfter = 180 * 24 * time.Hour
)

// AnalyzeCapture inspects a capture and returns insights.
func AnalyzeCapture(img *api.Image) *Analysis {
	analysis := &Analysis{
		Kind:      "screenshot",
		Freshness: "unknown",
		Notes:     []string{},
	}

	if img == nil {
		return analysis
	}

	analysis.Kind = captureKind(img.Type)
	analysis.HasText = img.OCR != nil && strings.TrimSpace(img.OCR.Description) != ""
	if analysis.HasText {
		note := "Recognized text is attached"
		if img.OCR.Locale != "" {
			note = fmt.Sprintf("Recognized text is attached (locale %s)", img.OCR.Locale)
		}
		analysis.Notes = append(analysis.Notes, note)
	}

	if created := img.CreatedAtTime(); !created.IsZero() {
		age := time.Since(created)
		switch {
		case age > staleAfter:
			analysis.Freshness = "stale"
			analysis.Notes = append(analysis.Notes, fmt.Sprintf("Captured %s ago", formatAge(age)))
		case age > agedAfter:
			analysis.Freshness = "aged"
			analysis.Notes = append(analysis.Notes, fmt.Sprintf("Captured %s ago", formatAge(age)))
		default:
			analysis.Freshness = "recent"
		}
	}

	if untitled(img) {
		analysis.Notes = append(analysis.Notes, "No title or description set")
	}

	analysis.Context = captureContext(img)

	return analysis
}

// SuggestActions suggests actions based on capture state.
func SuggestActions(img *api.Image) []SuggestedAction {
	var actions []SuggestedAction

	if img == nil {
		return actions
	}

	if untitled(img) {
		priority := "low"
		if img.OCR == nil {
			// Nothing at all identifies this capture.
			priority = "medium"
		}
		actions = append(actions, SuggestedAction{
			Action:   "annotate",
			Reason:   "Capture has no title or description",
			Priority: priority,
		})
	}

	if img.OCR != nil && strings.TrimSpace(img.OCR.Description) != "" {
		actions = append(actions, SuggestedAction{
			Action:   "copy_text",
			Reason:   "Recognized text can be copied instead of re-typing",
			Priority: "low",
		})
	}

	if img.PermalinkURL != nil && *img.PermalinkURL != "" {
		actions = append(actions, SuggestedAction{
			Action:   "share",
			Reason:   "Capture has a shareable page URL",
			Priority: "low",
		})
	}

	if created := img.CreatedAtTime(); !created.IsZero() {
		if age := time.Since(created); age > staleAfter && untitled(img) {
			actions = append(actions, SuggestedAction{
				Action:   "cleanup",
				Reason:   fmt.Sprintf("Unannotated capture is %s old", formatAge(age)),
				Priority: "medium",
			})
		}
	}

	return actions
}

func captureKind(fileType string) string {
	switch strings.ToLower(fileType) {
	case "gif":
		return "animation"
	case "mp4":
		return "video"
	default:
		return "screenshot"
	}
}

func untitled(img *api.Image) bool {
	if img.Metadata.Title != nil && strings.TrimSpace(*img.Metadata.Title) != "" {
		return false
	}
	if img.Metadata.Desc != nil && strings.TrimSpace(*img.Metadata.Desc) != "" {
		return false
	}
	return true
}

func captureContext(img *api.Image) string {
	app := ""
	if img.Metadata.App != nil {
		app = strings.TrimSpace(*img.Metadata.App)
	}
	pageURL := ""
	if img.Metadata.URL != nil {
		pageURL = strings.TrimSpace(*img.Metadata.URL)
	}

	switch {
	case app != "" && pageURL != "":
		return fmt.Sprintf("Captured from %s on %s", app, pageURL)
	case app != "":
		return fmt.Sprintf("Captured from %s", app)
	case pageURL != "":
		return fmt.Sprintf("Captured on %s", pageURL)
	default:
		return ""
	}
}

// formatAge formats a capture age in human-readable form.
func formatAge(d time.Duration) string {
	days := int(d.Hours()) / 24
	if days < 1 {
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	if days < 60 {
		return fmt.Sprintf("%dd", days)
	}
	months := days / 30
	if months < 24 {
		return fmt.Sprintf("%d months", months)
	}
	return fmt.Sprintf("%d years", days/365)
}
