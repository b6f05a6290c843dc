package api

import (
	"path"
	"strings"
	"time"
)

// Image is a capture record as returned by the metadata endpoints.
// Optional fields are pointers: a null or absent field stays nil rather
// than collapsing to an empty string.
type Image struct {
	ImageID      string        `json:"image_id"`
	PermalinkURL *string       `json:"permalink_url"`
	ThumbURL     *string       `json:"thumb_url"`
	Type         string        `json:"type"`
	CreatedAt    string        `json:"created_at"`
	Metadata     ImageMetadata `json:"metadata"`
	OCR          *ImageOCR     `json:"ocr"`
}

// ImageMetadata carries the optional capture annotations. All fields may
// be null server-side.
type ImageMetadata struct {
	App   *string `json:"app"`
	Title *string `json:"title"`
	URL   *string `json:"url"`
	Desc  *string `json:"desc"`
}

// ImageOCR is the recognized-text record attached to captures processed
// by the OCR pipeline.
type ImageOCR struct {
	Locale      string `json:"locale"`
	Description string `json:"description"`
}

// UploadResult is returned after a successful upload.
type UploadResult struct {
	ImageID      string `json:"image_id"`
	PermalinkURL string `json:"permalink_url"`
	ThumbURL     string `json:"thumb_url"`
	URL          string `json:"url"`
	Type         string `json:"type"`
}

// DeleteResult is returned after a successful delete.
type DeleteResult struct {
	ImageID string `json:"image_id"`
	Type    string `json:"type"`
}

// Oembed is the embed-metadata descriptor for a capture page.
type Oembed struct {
	Version      string `json:"version"`
	Type         string `json:"type"`
	ProviderName string `json:"provider_name"`
	ProviderURL  string `json:"provider_url"`
	URL          string `json:"url"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
}

// User is the authenticated account profile.
type User struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	UID          string `json:"uid"`
	ProfileImage string `json:"profile_image"`
}

// createdAtLayouts covers the timestamp shapes the API has been observed
// to return.
var createdAtLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05",
}

// CreatedAtTime parses CreatedAt best-effort. It returns the zero time
// when the value is empty or unparsable; callers render the raw string
// in that case.
func (i *Image) CreatedAtTime() time.Time {
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, i.CreatedAt); err == nil {
			return t
		}
	}
	return time.Time{}
}

// DisplayTitle returns the best human label for a capture: the title
// when set, then the app name, then the capture ID.
func (i *Image) DisplayTitle() string {
	if i.Metadata.Title != nil && strings.TrimSpace(*i.Metadata.Title) != "" {
		return *i.Metadata.Title
	}
	if i.Metadata.App != nil && strings.TrimSpace(*i.Metadata.App) != "" {
		return *i.Metadata.App
	}
	return i.ImageID
}

// Permalink returns the capture page URL, deriving it from the ID when
// the record omits it.
func (i *Image) Permalink() string {
	if i.PermalinkURL != nil && *i.PermalinkURL != "" {
		return *i.PermalinkURL
	}
	if i.ImageID == "" {
		return ""
	}
	return "https://gyazo.com/" + i.ImageID
}

// ContentURL returns the direct image URL when it can be derived. The
// list and get endpoints do not return it, but it follows from the ID
// and type for publicly accessible captures.
func (i *Image) ContentURL() string {
	if i.ImageID == "" {
		return ""
	}
	ext := i.Type
	if ext == "" {
		ext = "png"
	}
	return "https://i.gyazo.com/" + i.ImageID + "." + ext
}

// FileName returns a reasonable local file name for a capture's content.
func (i *Image) FileName() string {
	return path.Base(i.ContentURL())
}
