package cmd

import (
	"github.com/gyazo/gyazo-cli/internal/agentfmt"
	"github.com/gyazo/gyazo-cli/internal/api"
	"github.com/gyazo/gyazo-cli/internal/heuristics"
)

// enrichedCapture is the agent-mode detail payload: the capture plus
// derived analysis so agents do not have to re-implement the heuristics.
type enrichedCapture struct {
	agentfmt.CaptureDetail
	Analysis         *heuristics.Analysis         `json:"analysis,omitempty"`
	SuggestedActions []heuristics.SuggestedAction `json:"suggested_actions,omitempty"`
}

func newEnrichedCapture(img *api.Image, embed string) enrichedCapture {
	detail := agentfmt.CaptureDetailFromImage(*img)
	detail.Embed = embed
	return enrichedCapture{
		CaptureDetail:    detail,
		Analysis:         heuristics.AnalyzeCapture(img),
		SuggestedActions: heuristics.SuggestActions(img),
	}
}
