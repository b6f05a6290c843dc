package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gyazo/gyazo-cli/internal/browse"
	"github.com/gyazo/gyazo-cli/internal/outfmt"
)

func newBrowseCmd() *cobra.Command {
	var pageSize int

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse captures interactively",
		Long: "Browse your captures in an interactive terminal UI. " +
			"Navigate with j/k or the arrow keys, press enter for details, " +
			"o to open in the browser, y to copy the URL, d to delete, r to refresh, q to quit.",
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			ctx := cmdContext(cmd)
			if outfmt.ModeFromContext(ctx) != outfmt.Text {
				return fmt.Errorf("browse is interactive and only supports text output")
			}
			if !isInteractive() {
				return fmt.Errorf("browse requires an interactive terminal")
			}

			client, err := getClient()
			if err != nil {
				return err
			}

			cfg := loadCLISettings()
			size := pageSize
			if size <= 0 {
				size = cfg.BrowsePageSize
			}

			return browse.Run(browse.Options{
				Context:    ctx,
				Client:     client,
				PageSize:   size,
				CopyFormat: cfg.CopyFormat,
			})
		}),
	}

	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Rows per page (defaults to the configured browse page size)")
	flagAlias(cmd.Flags(), "page-size", "ps")

	return cmd
}
