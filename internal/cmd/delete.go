package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gyazo/gyazo-cli/internal/api"
	"github.com/gyazo/gyazo-cli/internal/dryrun"
)

func newDeleteCmd() *cobra.Command {
	var (
		force       bool
		concurrency int
		progress    bool
		noProgress  bool
	)

	cmd := &cobra.Command{
		Use:     "delete <id|url|title>...",
		Aliases: []string{"rm"},
		Short:   "Delete captures",
		Long:    "Delete one or more captures. Deletion is permanent.",
		Example: strings.TrimSpace(`
  gz delete a1b2c3d4e5f67890a1b2c3d4e5f67890
  gz delete https://gyazo.com/a1b2c3d4e5f67890a1b2c3d4e5f67890 --yes
  gz delete id1 id2 id3 --yes --json --force
`),
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeCaptureIDs,
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			client, err := getClient()
			if err != nil {
				return err
			}

			ids, err := resolveCaptureIDs(ctx, client, args)
			if err != nil {
				return err
			}

			preview := &dryrun.Preview{
				Operation: "delete",
				Target:    strings.Join(ids, ", "),
				Warnings:  []string{"Deletion is permanent and cannot be undone."},
			}
			preview.AddField("count", len(ids))
			if done, err := maybeDryRun(cmd, preview); done || err != nil {
				return err
			}

			prompt := fmt.Sprintf("Delete capture %s? [y/N] ", ids[0])
			if len(ids) > 1 {
				prompt = fmt.Sprintf("Delete %d captures? [y/N] ", len(ids))
			}
			confirmed, err := confirmAction(cmd, confirmOptions{
				Prompt:              prompt,
				CancelMessage:       "Deletion cancelled.",
				Force:               force,
				RequireForceForJSON: true,
			})
			if err != nil || !confirmed {
				return err
			}

			if len(ids) == 1 {
				result, err := client.Images().Delete(ctx, ids[0])
				if err != nil {
					return err
				}
				if isJSON(cmd) {
					return printJSON(cmd, result)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", result.ImageID)
				return nil
			}

			ioStreams := cmd.ErrOrStderr()
			showProgress := bulkProgressEnabled(cmd, progress, noProgress)
			results := runBulkOperation(ctx, ids, int64(concurrency), showProgress, ioStreams,
				func(ctx context.Context, id string) (*api.DeleteResult, error) {
					return client.Images().Delete(ctx, id)
				})

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
						fmt.Fprintf(out, "Deleted %s\n", r.ID)
					} else {
						fmt.Fprintf(cmd.ErrOrStderr(), "Failed to delete %s: %v\n", r.ID, r.Error)
					}
				}
				printIfNotQuiet(cmd, "Deleted %d captures (%d failed)\n", succeeded, failed)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d deletions failed", failed, len(ids))
			}
			return nil
		}),
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation (required with --output json)")
	cmd.Flags().IntVar(&concurrency, "concurrency", DefaultConcurrency, "Concurrent deletions for multiple captures")
	cmd.Flags().BoolVar(&progress, "progress", true, "Show progress for multiple captures")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress indicator")
	flagAlias(cmd.Flags(), "force", "fo")
	flagAlias(cmd.Flags(), "concurrency", "cw")

	return cmd
}
