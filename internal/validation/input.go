package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Input limits applied before a request goes out.
const (
	MaxImageIDLength = 64
	MaxTitleLength   = 255
	MaxDescLength    = 10000
	MaxAppLength     = 255
	MaxURLLength     = 2048
)

// ValidateImageID checks a capture ID: non-empty, within length, and
// alphanumeric. IDs embed into URL paths, so anything else is rejected
// up front.
func ValidateImageID(id string) error {
	if id == "" {
		return fmt.Errorf("image ID cannot be empty")
	}
	if len(id) > MaxImageIDLength {
		return fmt.Errorf("image ID exceeds maximum length of %d characters (got %d)", MaxImageIDLength, len(id))
	}
	for _, r := range id {
		if r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			continue
		}
		return fmt.Errorf("image ID contains invalid character %q", r)
	}
	return nil
}

// ValidateTitle checks an upload title length. Empty titles are allowed;
// the field is optional.
func ValidateTitle(title string) error {
	if title == "" {
		return nil
	}
	length := utf8.RuneCountInString(title)
	if length > MaxTitleLength {
		return fmt.Errorf("title exceeds maximum length of %d characters (got %d)", MaxTitleLength, length)
	}
	return nil
}

// ValidateDesc checks an upload description length. Empty descriptions
// are allowed.
func ValidateDesc(desc string) error {
	if desc == "" {
		return nil
	}
	length := utf8.RuneCountInString(desc)
	if length > MaxDescLength {
		return fmt.Errorf("description exceeds maximum length of %d characters (got %d)", MaxDescLength, length)
	}
	return nil
}

// ValidateApp checks an application-name annotation length.
func ValidateApp(app string) error {
	if app == "" {
		return nil
	}
	length := utf8.RuneCountInString(app)
	if length > MaxAppLength {
		return fmt.Errorf("app name exceeds maximum length of %d characters (got %d)", MaxAppLength, length)
	}
	return nil
}

// ValidateRefererURL checks a referer annotation: length plus the same
// scheme and host screening as any outbound URL. Empty is allowed.
func ValidateRefererURL(rawURL string) error {
	if rawURL == "" {
		return nil
	}
	if len(rawURL) > MaxURLLength {
		return fmt.Errorf("URL exceeds maximum length of %d characters (got %d)", MaxURLLength, len(rawURL))
	}
	if _, err := parseHTTPURL(rawURL); err != nil {
		return err
	}
	return nil
}

// createdAtInputLayouts are the timestamp forms accepted on input, tried
// in order.
var createdAtInputLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseCreatedAt normalizes a capture timestamp to the unix-seconds
// string the upload endpoint expects. It accepts unix seconds directly
// or any of the supported date layouts, interpreted in local time when
// the layout carries no zone.
func ParseCreatedAt(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("timestamp cannot be empty")
	}

	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		if secs <= 0 {
			return "", fmt.Errorf("timestamp must be after the unix epoch")
		}
		return strconv.FormatInt(secs, 10), nil
	}

	for _, layout := range createdAtInputLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return strconv.FormatInt(t.Unix(), 10), nil
		}
	}
	return "", fmt.Errorf("unrecognized timestamp %q (want unix seconds or e.g. 2006-01-02T15:04:05)", s)
}
