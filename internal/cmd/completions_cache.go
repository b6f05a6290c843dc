package cmd

import (
	"fmt"
	"os"

	"github.com/gyazo/gyazo-cli/internal/api"
	"github.com/gyazo/gyazo-cli/internal/cache"
)

func completionsCacheDisabled() bool {
	return completionsNoCache || os.Getenv("GYAZO_COMPLETIONS_NO_CACHE") != "" || os.Getenv("GYAZO_NO_CACHE") != ""
}

func completionsCacheDir() (string, error) {
	if dir := os.Getenv("GYAZO_COMPLETIONS_CACHE_DIR"); dir != "" {
		return dir, nil
	}
	dir := resolveCacheDir()
	if dir == "" {
		return "", fmt.Errorf("could not determine cache directory")
	}
	return dir, nil
}

// completionsStore scopes a cache file to the candidate kind, the API
// origin, and the active profile.
func completionsStore(client *api.Client, key string) (*cache.Store, error) {
	dir, err := completionsCacheDir()
	if err != nil {
		return nil, err
	}
	return cache.NewStore(dir, key, client.APIBaseURL, activeProfileName()), nil
}

func loadCompletionsCache(client *api.Client, key string) ([]CompletionItem, bool) {
	if completionsCacheDisabled() {
		return nil, false
	}
	store, err := completionsStore(client, key)
	if err != nil {
		return nil, false
	}
	var items []CompletionItem
	if !store.Get(&items) {
		return nil, false
	}
	return items, true
}

func saveCompletionsCache(client *api.Client, key string, items []CompletionItem) {
	if completionsCacheDisabled() {
		return
	}
	store, err := completionsStore(client, key)
	if err != nil {
		return
	}
	store.Put(items)
}
