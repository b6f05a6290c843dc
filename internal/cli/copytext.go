package cli

import "fmt"

// CopyText renders a capture reference in the requested clipboard
// format. "url" yields the capture page URL; "markdown" and "html"
// yield an inline image tag pointing at the direct content URL.
// Unknown formats fall back to the page URL.
func CopyText(format, title, pageURL, contentURL string) string {
	switch format {
	case "markdown":
		return fmt.Sprintf("![%s](%s)", title, contentURL)
	case "html":
		return fmt.Sprintf("<img src=%q alt=%q>", contentURL, title)
	default:
		return pageURL
	}
}
