package cmd

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gyazo/gyazo-cli/internal/api"
	"github.com/gyazo/gyazo-cli/internal/resolve"
	"github.com/gyazo/gyazo-cli/internal/urlparse"
)

// captureIDPattern matches bare capture IDs: hex, in the length range the
// service has issued over the years.
var captureIDPattern = regexp.MustCompile(`^[0-9a-f]{16,64}$`)

// resolveCaptureID turns a user-supplied capture reference into an image ID.
// Accepts a bare ID, a gyazo.com page URL, an i.gyazo.com content URL, or a
// title to fuzzy-match against recent captures.
func resolveCaptureID(ctx context.Context, client *api.Client, identifier string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return "", fmt.Errorf("capture reference is required")
	}

	if strings.Contains(identifier, "://") {
		return urlparse.ExtractID(identifier)
	}
	if lowered := strings.ToLower(identifier); captureIDPattern.MatchString(lowered) {
		return lowered, nil
	}

	// Not ID-shaped: fall back to a title search over recent captures.
	images, err := client.Images().List(ctx)
	if err != nil {
		return "", err
	}
	items := make([]resolve.Named, 0, len(images))
	for i := range images {
		items = append(items, resolve.Named{ID: images[i].ImageID, Name: images[i].DisplayTitle()})
	}
	id, err := resolve.FuzzyMatch(identifier, items)
	if err != nil {
		var ambiguous *resolve.AmbiguousError
		if errors.As(err, &ambiguous) {
			return "", ambiguous
		}
		return "", fmt.Errorf("no capture matching %q (pass the capture ID or URL)", identifier)
	}
	return id, nil
}

// resolveCaptureIDs maps each reference through resolveCaptureID, stopping
// at the first failure so a typo doesn't half-run a bulk operation.
func resolveCaptureIDs(ctx context.Context, client *api.Client, identifiers []string) ([]string, error) {
	ids := make([]string, 0, len(identifiers))
	seen := make(map[string]bool, len(identifiers))
	for _, ref := range identifiers {
		id, err := resolveCaptureID(ctx, client, ref)
		if err != nil {
			return nil, err
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}
