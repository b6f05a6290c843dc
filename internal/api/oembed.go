package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// OembedURLPrefix is the only accepted prefix for capture page URLs
// passed to the embed-metadata endpoint.
const OembedURLPrefix = "https://gyazo.com/"

// Get retrieves embed metadata for a capture page URL. URLs outside
// OembedURLPrefix are rejected before any request is made.
func (s OembedService) Get(ctx context.Context, pageURL string) (*Oembed, error) {
	return getOembed(ctx, s, pageURL)
}

func getOembed(ctx context.Context, r Requester, pageURL string) (*Oembed, error) {
	if !strings.HasPrefix(pageURL, OembedURLPrefix) {
		return nil, &InvalidURLError{URL: pageURL, Message: "URL must start with 'https://gyazo.com/'"}
	}

	query := url.Values{}
	query.Set("url", pageURL)

	var result Oembed
	if err := r.do(ctx, http.MethodGet, r.apiURL("/api/oembed?"+query.Encode()), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
