package agentfmt

import (
	"strings"
	"time"

	"github.com/gyazo/gyazo-cli/internal/api"
)

// Payload marks a value as already agent-formatted.
type Payload interface {
	AgentPayload() any
}

// Timestamp provides both Unix and ISO-8601 representations.
type Timestamp struct {
	Unix int64  `json:"unix"`
	ISO  string `json:"iso"`
}

// CaptureSummary is a compact, agent-friendly view of a capture.
type CaptureSummary struct {
	ImageID      string     `json:"image_id"`
	Type         string     `json:"type,omitempty"`
	Title        string     `json:"title,omitempty"`
	App          string     `json:"app,omitempty"`
	PermalinkURL string     `json:"permalink_url,omitempty"`
	ThumbURL     string     `json:"thumb_url,omitempty"`
	HasText      bool       `json:"has_text,omitempty"`
	CreatedAt    *Timestamp `json:"created_at,omitempty"`
	// CreatedAtRaw carries the server's literal timestamp string when it
	// does not parse into a Timestamp.
	CreatedAtRaw string `json:"created_at_raw,omitempty"`
}

// CaptureDetail expands the summary with the full annotation set.
type CaptureDetail struct {
	CaptureSummary
	PageURL    string `json:"page_url,omitempty"`
	Desc       string `json:"desc,omitempty"`
	OCRLocale  string `json:"ocr_locale,omitempty"`
	OCRText    string `json:"ocr_text,omitempty"`
	ContentURL string `json:"content_url,omitempty"`
	// Embed holds an inline base64 data URI when the caller requested
	// embedded content.
	Embed string `json:"embed,omitempty"`
}

// UploadSummary is a compact view of an upload result.
type UploadSummary struct {
	ImageID      string `json:"image_id"`
	Type         string `json:"type,omitempty"`
	PermalinkURL string `json:"permalink_url,omitempty"`
	ContentURL   string `json:"content_url,omitempty"`
	ThumbURL     string `json:"thumb_url,omitempty"`
}

// DeleteSummary echoes a deletion.
type DeleteSummary struct {
	ImageID string `json:"image_id"`
	Type    string `json:"type,omitempty"`
	Deleted bool   `json:"deleted"`
}

// OembedSummary is a compact view of embed metadata.
type OembedSummary struct {
	Type         string `json:"type"`
	ProviderName string `json:"provider_name,omitempty"`
	URL          string `json:"url"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
}

// UserSummary is a compact view of the account profile.
type UserSummary struct {
	UID          string `json:"uid"`
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	ProfileImage string `json:"profile_image,omitempty"`
}

// ListEnvelope wraps list outputs.
type ListEnvelope struct {
	Kind    string         `json:"kind"`
	Items   any            `json:"items"`
	HasMore *bool          `json:"has_more,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// ItemEnvelope wraps single-item outputs.
type ItemEnvelope struct {
	Kind string `json:"kind"`
	Item any    `json:"item"`
}

// SearchEnvelope wraps filtered list outputs.
type SearchEnvelope struct {
	Kind    string         `json:"kind"`
	Query   string         `json:"query"`
	Results any            `json:"results"`
	Summary map[string]int `json:"summary,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// DataEnvelope wraps untyped outputs.
type DataEnvelope struct {
	Kind string `json:"kind"`
	Data any    `json:"data"`
}

// ErrorEnvelope wraps structured errors in agent mode.
type ErrorEnvelope struct {
	Kind  string               `json:"kind"`
	Error *api.StructuredError `json:"error"`
}

func (e ListEnvelope) AgentPayload() any   { return e }
func (e ItemEnvelope) AgentPayload() any   { return e }
func (e SearchEnvelope) AgentPayload() any { return e }
func (e DataEnvelope) AgentPayload() any   { return e }
func (e ErrorEnvelope) AgentPayload() any  { return e }

// KindFromCommandPath converts a cobra CommandPath to a dotted kind string.
func KindFromCommandPath(path string) string {
	path = strings.TrimSpace(path)
	path = strings.TrimPrefix(path, "gz ")
	parts := strings.Fields(path)
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, ".")
}

// Transform wraps known API types into agent-friendly structures.
func Transform(kind string, v any) any {
	if payload, ok := v.(Payload); ok {
		return payload.AgentPayload()
	}

	switch val := v.(type) {
	case api.StructuredError:
		return ErrorEnvelope{Kind: kind, Error: &val}
	case *api.StructuredError:
		return ErrorEnvelope{Kind: kind, Error: val}
	case api.Image:
		return ItemEnvelope{Kind: kind, Item: CaptureDetailFromImage(val)}
	case *api.Image:
		if val == nil {
			return ItemEnvelope{Kind: kind, Item: nil}
		}
		return ItemEnvelope{Kind: kind, Item: CaptureDetailFromImage(*val)}
	case []api.Image:
		return ListEnvelope{Kind: kind, Items: CaptureSummaries(val)}
	case api.UploadResult:
		return ItemEnvelope{Kind: kind, Item: UploadSummaryFromResult(val)}
	case *api.UploadResult:
		if val == nil {
			return ItemEnvelope{Kind: kind, Item: nil}
		}
		return ItemEnvelope{Kind: kind, Item: UploadSummaryFromResult(*val)}
	case []api.UploadResult:
		return ListEnvelope{Kind: kind, Items: UploadSummaries(val)}
	case api.DeleteResult:
		return ItemEnvelope{Kind: kind, Item: DeleteSummaryFromResult(val)}
	case *api.DeleteResult:
		if val == nil {
			return ItemEnvelope{Kind: kind, Item: nil}
		}
		return ItemEnvelope{Kind: kind, Item: DeleteSummaryFromResult(*val)}
	case api.Oembed:
		return ItemEnvelope{Kind: kind, Item: OembedSummaryFromOembed(val)}
	case *api.Oembed:
		if val == nil {
			return ItemEnvelope{Kind: kind, Item: nil}
		}
		return ItemEnvelope{Kind: kind, Item: OembedSummaryFromOembed(*val)}
	case api.User:
		return ItemEnvelope{Kind: kind, Item: UserSummaryFromUser(val)}
	case *api.User:
		if val == nil {
			return ItemEnvelope{Kind: kind, Item: nil}
		}
		return ItemEnvelope{Kind: kind, Item: UserSummaryFromUser(*val)}
	default:
		return DataEnvelope{Kind: kind, Data: v}
	}
}

// TransformListItems converts list item slices to agent summaries when supported.
func TransformListItems(items any) any {
	switch val := items.(type) {
	case []api.Image:
		return CaptureSummaries(val)
	case []api.UploadResult:
		return UploadSummaries(val)
	default:
		return items
	}
}

func CaptureSummaries(images []api.Image) []CaptureSummary {
	if len(images) == 0 {
		return nil
	}
	out := make([]CaptureSummary, 0, len(images))
	for _, img := range images {
		out = append(out, CaptureSummaryFromImage(img))
	}
	return out
}

func CaptureSummaryFromImage(img api.Image) CaptureSummary {
	summary := CaptureSummary{
		ImageID:      img.ImageID,
		Type:         img.Type,
		PermalinkURL: img.Permalink(),
		HasText:      img.OCR != nil && img.OCR.Description != "",
	}
	if title := img.DisplayTitle(); title != img.ImageID {
		summary.Title = title
	}
	if img.Metadata.App != nil {
		summary.App = *img.Metadata.App
	}
	if img.ThumbURL != nil {
		summary.ThumbURL = *img.ThumbURL
	}
	summary.CreatedAt, summary.CreatedAtRaw = timestampFromCapture(img)
	return summary
}

func CaptureDetailFromImage(img api.Image) CaptureDetail {
	detail := CaptureDetail{
		CaptureSummary: CaptureSummaryFromImage(img),
		ContentURL:     img.ContentURL(),
	}
	if img.Metadata.URL != nil {
		detail.PageURL = *img.Metadata.URL
	}
	if img.Metadata.Desc != nil {
		detail.Desc = *img.Metadata.Desc
	}
	if img.OCR != nil {
		detail.OCRLocale = img.OCR.Locale
		detail.OCRText = img.OCR.Description
	}
	return detail
}

func UploadSummaries(results []api.UploadResult) []UploadSummary {
	if len(results) == 0 {
		return nil
	}
	out := make([]UploadSummary, 0, len(results))
	for _, res := range results {
		out = append(out, UploadSummaryFromResult(res))
	}
	return out
}

func UploadSummaryFromResult(res api.UploadResult) UploadSummary {
	return UploadSummary{
		ImageID:      res.ImageID,
		Type:         res.Type,
		PermalinkURL: res.PermalinkURL,
		ContentURL:   res.URL,
		ThumbURL:     res.ThumbURL,
	}
}

func DeleteSummaryFromResult(res api.DeleteResult) DeleteSummary {
	return DeleteSummary{
		ImageID: res.ImageID,
		Type:    res.Type,
		Deleted: true,
	}
}

func OembedSummaryFromOembed(o api.Oembed) OembedSummary {
	return OembedSummary{
		Type:         o.Type,
		ProviderName: o.ProviderName,
		URL:          o.URL,
		Width:        o.Width,
		Height:       o.Height,
	}
}

func UserSummaryFromUser(u api.User) UserSummary {
	return UserSummary{
		UID:          u.UID,
		Name:         u.Name,
		Email:        u.Email,
		ProfileImage: u.ProfileImage,
	}
}

// timestampFromCapture converts a capture's created_at string. Unparsable
// values come back as the raw string so no information is dropped.
func timestampFromCapture(img api.Image) (*Timestamp, string) {
	t := img.CreatedAtTime()
	if t.IsZero() {
		return nil, img.CreatedAt
	}
	return &Timestamp{
		Unix: t.Unix(),
		ISO:  t.UTC().Format(time.RFC3339),
	}, ""
}
