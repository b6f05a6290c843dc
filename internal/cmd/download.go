package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

type downloadOutcome struct {
	Path  string `json:"path"`
	Bytes int    `json:"bytes"`
	Mime  string `json:"mime,omitempty"`
}

func newDownloadCmd() *cobra.Command {
	var (
		outputFile  string
		dir         string
		concurrency int
		progress    bool
		noProgress  bool
	)

	cmd := &cobra.Command{
		Use:     "download <id|url|title>...",
		Aliases: []string{"dl"},
		Short:   "Download capture content",
		Long: strings.TrimSpace(`
Download the image or video bytes for one or more captures. Files are
named after the capture by default; use --output-file for a single
capture or --dir to collect several into a directory.
`),
		Example: strings.TrimSpace(`
  gz download a1b2c3d4e5f67890a1b2c3d4e5f67890
  gz download https://gyazo.com/a1b2c3d4e5f67890a1b2c3d4e5f67890 -O shot.png
  gz download id1 id2 id3 --dir ./captures
`),
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeCaptureIDs,
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			if outputFile != "" && len(args) > 1 {
				return fmt.Errorf("--output-file only applies to a single capture (use --dir for several)")
			}
			if outputFile != "" && dir != "" {
				return fmt.Errorf("--output-file and --dir are mutually exclusive")
			}
			if dir != "" {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("creating %s: %w", dir, err)
				}
			}

			client, err := getClient()
			if err != nil {
				return err
			}

			ids, err := resolveCaptureIDs(ctx, client, args)
			if err != nil {
				return err
			}

			downloadOne := func(ctx context.Context, id string) (*downloadOutcome, error) {
				img, err := client.Images().Get(ctx, id)
				if err != nil {
					return nil, err
				}
				data, mime, err := client.Download(ctx, img.ContentURL())
				if err != nil {
					return nil, err
				}
				path := outputFile
				if path == "" {
					path = img.FileName()
					if dir != "" {
						path = filepath.Join(dir, path)
					}
				}
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return nil, fmt.Errorf("writing %s: %w", path, err)
				}
				return &downloadOutcome{Path: path, Bytes: len(data), Mime: mime}, nil
			}

			if len(ids) == 1 {
				outcome, err := downloadOne(ctx, ids[0])
				if err != nil {
					return err
				}
				if isJSON(cmd) {
					return printJSON(cmd, map[string]any{
						"id":    ids[0],
						"path":  outcome.Path,
						"bytes": outcome.Bytes,
						"mime":  outcome.Mime,
					})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", outcome.Path)
				return nil
			}

			showProgress := bulkProgressEnabled(cmd, progress, noProgress)
			results := runBulkOperation(ctx, ids, int64(concurrency), showProgress, cmd.ErrOrStderr(), downloadOne)

			succeeded, failed := countResults(results)
			if isJSON(cmd) {
				items := make([]map[string]any, 0, len(results))
				for _, r := range results {
					item := map[string]any{
						"id":      r.ID,
						"success": r.Success,
					}
					if r.Error != nil {
						item["error"] = r.Error.Error()
					}
					if outcome, ok := r.Data.(*downloadOutcome); ok && outcome != nil {
						item["path"] = outcome.Path
						item["bytes"] = outcome.Bytes
					}
					items = append(items, item)
				}
				if err := printJSON(cmd, map[string]any{
					"items":         items,
					"success_count": succeeded,
					"fail_count":    failed,
				}); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				for _, r := range results {
					if r.Success {
						if outcome, ok := r.Data.(*downloadOutcome); ok {
							fmt.Fprintf(out, "Saved %s\n", outcome.Path)
						}
					} else {
						fmt.Fprintf(cmd.ErrOrStderr(), "Failed to download %s: %v\n", r.ID, r.Error)
					}
				}
				printIfNotQuiet(cmd, "Downloaded %d captures (%d failed)\n", succeeded, failed)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d downloads failed", failed, len(ids))
			}
			return nil
		}),
	}

	cmd.Flags().StringVarP(&outputFile, "output-file", "O", "", "Write a single capture to this path")
	cmd.Flags().StringVar(&dir, "dir", "", "Directory to write downloads into")
	cmd.Flags().IntVar(&concurrency, "concurrency", DefaultConcurrency, "Concurrent downloads for multiple captures")
	cmd.Flags().BoolVar(&progress, "progress", true, "Show progress for multiple captures")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress indicator")
	flagAlias(cmd.Flags(), "output-file", "of")
	flagAlias(cmd.Flags(), "dir", "dd")

	return cmd
}
