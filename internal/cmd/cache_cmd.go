package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/gyazo/gyazo-cli/internal/cache"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local completion cache",
		Long: "The CLI caches capture IDs on disk so shell completion stays fast. " +
			"Cached data expires after a few minutes; clear it to force a refresh.",
	}

	cmd.AddCommand(newCacheClearCmd())
	cmd.AddCommand(newCacheStatusCmd())
	return cmd
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached data",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			dir := resolveCacheDir()
			if dir == "" {
				return fmt.Errorf("could not determine cache directory")
			}
			cache.ClearAll(dir)

			if isJSON(cmd) {
				return printJSON(cmd, map[string]any{"cleared": true, "dir": dir})
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Cache cleared: %s\n", dir)
			return nil
		}),
	}
}

func newCacheStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the cache location and contents",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			dir := resolveCacheDir()
			if dir == "" {
				return fmt.Errorf("could not determine cache directory")
			}
			enabled := !completionsCacheDisabled()
			files, totalBytes := cacheInventory(dir)

			if isJSON(cmd) {
				items := make([]map[string]any, 0, len(files))
				for _, f := range files {
					items = append(items, map[string]any{
						"name":        f.name,
						"bytes":       f.size,
						"age_seconds": int(f.age.Seconds()),
					})
				}
				return printJSON(cmd, map[string]any{
					"dir":         dir,
					"enabled":     enabled,
					"entries":     items,
					"total_bytes": totalBytes,
				})
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Directory: %s\n", dir)
			state := "enabled"
			if !enabled {
				state = "disabled"
			}
			_, _ = fmt.Fprintf(out, "Cache: %s (TTL %s)\n", state, cache.DefaultTTL)
			if len(files) == 0 {
				_, _ = fmt.Fprintln(out, "No cached entries.")
				return nil
			}
			_, _ = fmt.Fprintf(out, "Entries: %d (%d bytes)\n", len(files), totalBytes)
			for _, f := range files {
				_, _ = fmt.Fprintf(out, "  %s (%d bytes, age %s)\n", f.name, f.size, f.age.Round(time.Second))
			}
			return nil
		}),
	}
}

type cacheFile struct {
	name string
	size int64
	age  time.Duration
}

func cacheInventory(dir string) ([]cacheFile, int64) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0
	}
	var files []cacheFile
	var total int64
	now := time.Now()
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, cacheFile{
			name: e.Name(),
			size: info.Size(),
			age:  now.Sub(info.ModTime()),
		})
		total += info.Size()
	}
	return files, total
}
