// Package urlparse extracts capture IDs from the URL forms Gyazo hands
// out: page links, direct content links on i.gyazo.com, plus thumbnail
// URLs.
package urlparse

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ParsedURL is a capture reference recovered from a URL.
type ParsedURL struct {
	Host      string
	ImageID   string
	Extension string // without the dot, empty for page URLs
}

// captureHosts are the hosts whose paths carry a capture ID.
var captureHosts = map[string]bool{
	"gyazo.com":       true,
	"i.gyazo.com":     true,
	"thumb.gyazo.com": true,
}

// idPattern matches the hex capture ID, optionally with a file
// extension. Thumbnail paths prefix the ID with sizing segments, so only
// the last path element is matched.
var idPattern = regexp.MustCompile(`^([0-9a-f]{16,64})(?:\.([a-z0-9]+))?$`)

// Parse extracts the capture ID from a Gyazo URL. Accepted forms:
//
//	https://gyazo.com/27a9dca98bcecbd9d99e0ba121b6ed4e
//	https://i.gyazo.com/27a9dca98bcecbd9d99e0ba121b6ed4e.png
//	https://thumb.gyazo.com/thumb/200/27a9dca98bcecbd9d99e0ba121b6ed4e.jpg
func Parse(rawURL string) (*ParsedURL, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("URL cannot be empty")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme == "" {
		return nil, fmt.Errorf("invalid URL: missing scheme (expected https://...)")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid URL scheme %q: expected http or https", parsed.Scheme)
	}

	host := strings.ToLower(parsed.Hostname())
	if !captureHosts[host] {
		return nil, fmt.Errorf("unsupported host %q: expected gyazo.com, i.gyazo.com, or thumb.gyazo.com", host)
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	last := segments[len(segments)-1]
	matches := idPattern.FindStringSubmatch(strings.ToLower(last))
	if matches == nil {
		return nil, fmt.Errorf("no capture ID in URL path %q", parsed.Path)
	}

	return &ParsedURL{
		Host:      host,
		ImageID:   matches[1],
		Extension: matches[2],
	}, nil
}

// IsCaptureURL reports whether rawURL looks like any supported capture
// URL form.
func IsCaptureURL(rawURL string) bool {
	_, err := Parse(rawURL)
	return err == nil
}

// ExtractID returns the capture ID from either a URL or a bare ID.
// Command arguments accept both forms interchangeably.
func ExtractID(arg string) (string, error) {
	if arg == "" {
		return "", fmt.Errorf("capture reference cannot be empty")
	}
	if strings.Contains(arg, "://") {
		parsed, err := Parse(arg)
		if err != nil {
			return "", err
		}
		return parsed.ImageID, nil
	}
	return arg, nil
}

// PageURL returns the capture page link for the parsed reference.
func (p *ParsedURL) PageURL() string {
	return "https://gyazo.com/" + p.ImageID
}

// ContentURL returns the direct content link, defaulting to png when the
// source URL had no extension.
func (p *ParsedURL) ContentURL() string {
	ext := p.Extension
	if ext == "" {
		ext = "png"
	}
	return "https://i.gyazo.com/" + p.ImageID + "." + ext
}
