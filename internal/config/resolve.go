package config

import (
	"fmt"
	"os"
	"strings"
)

// ClientConfig contains resolved API client settings.
type ClientConfig struct {
	Token         string
	APIBaseURL    string
	UploadBaseURL string
}

// ResolveClientConfig layers client settings: stored profile or
// environment first, then origin env vars, then explicit flag
// overrides. Origins left empty mean the production hosts. Only the
// token is mandatory.
func ResolveClientConfig(tokenOverride, apiURLOverride, uploadURLOverride string) (ClientConfig, error) {
	var cfg ClientConfig

	if account, err := LoadAccount(); err == nil {
		cfg.Token = account.AccessToken
		cfg.APIBaseURL = account.APIBaseURL
		cfg.UploadBaseURL = account.UploadBaseURL
	}

	// Origin env vars apply even when the token came from the keychain.
	if envURL := strings.TrimSpace(os.Getenv(envAPIBaseURL)); envURL != "" {
		cfg.APIBaseURL = strings.TrimSuffix(envURL, "/")
	}
	if envURL := strings.TrimSpace(os.Getenv(envUploadURL)); envURL != "" {
		cfg.UploadBaseURL = strings.TrimSuffix(envURL, "/")
	}

	if tokenOverride != "" {
		cfg.Token = tokenOverride
	}
	if apiURLOverride != "" {
		cfg.APIBaseURL = strings.TrimSuffix(apiURLOverride, "/")
	}
	if uploadURLOverride != "" {
		cfg.UploadBaseURL = strings.TrimSuffix(uploadURLOverride, "/")
	}

	if cfg.Token == "" {
		return ClientConfig{}, fmt.Errorf("access token not configured (set %s, run 'gz auth login', or pass --token)", envAccessToken)
	}

	return cfg, nil
}

// TokenFromEnv reports whether the access token currently comes from the
// environment rather than the keychain.
func TokenFromEnv() bool {
	return strings.TrimSpace(os.Getenv(envAccessToken)) != ""
}
