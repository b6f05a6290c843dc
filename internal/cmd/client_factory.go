package cmd

import (
	"fmt"
	"net/url"
	"time"

	"github.com/gyazo/gyazo-cli/internal/api"
	"github.com/gyazo/gyazo-cli/internal/config"
)

type clientFactory struct {
	timeout   time.Duration
	userAgent string
}

func newClientFactory() *clientFactory {
	return &clientFactory{
		timeout:   flags.Timeout,
		userAgent: fmt.Sprintf("gyazo-cli/%s", version),
	}
}

func (f *clientFactory) client() (*api.Client, error) {
	if err := validateOriginFlag("--api-url", flags.APIURL); err != nil {
		return nil, err
	}
	if err := validateOriginFlag("--upload-url", flags.UploadURL); err != nil {
		return nil, err
	}

	cfg, err := config.ResolveClientConfig(flags.Token, flags.APIURL, flags.UploadURL)
	if err != nil {
		return nil, err
	}

	client := api.NewWithOrigins(cfg.Token, cfg.APIBaseURL, cfg.UploadBaseURL)
	if f.timeout > 0 {
		client.HTTP.Timeout = f.timeout
	}
	if f.userAgent != "" {
		client.UserAgent = f.userAgent
	}
	return client, nil
}

// validateOriginFlag rejects malformed origin overrides before they reach
// the client constructor, which treats bad origins as programmer error.
func validateOriginFlag(flagName, raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid %s %q: must be an absolute URL (e.g. https://api.gyazo.com)", flagName, raw)
	}
	return nil
}
