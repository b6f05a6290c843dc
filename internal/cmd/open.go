package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gyazo/gyazo-cli/internal/browser"
)

func newOpenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open <id|url|title>",
		Short: "Open a capture page in the browser",
		Example: strings.TrimSpace(`
  gz open a1b2c3d4e5f67890a1b2c3d4e5f67890
  gz open "invoice screenshot"
`),
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeCaptureIDs,
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			client, err := getClient()
			if err != nil {
				return err
			}

			id, err := resolveCaptureID(ctx, client, args[0])
			if err != nil {
				return err
			}
			pageURL := "https://gyazo.com/" + id

			if browser.Suppressed() {
				fmt.Fprintln(cmd.OutOrStdout(), pageURL)
				return nil
			}
			printIfNotQuiet(cmd, "Opening %s in your browser.\n", pageURL)
			if err := browser.Open(pageURL); err != nil {
				return fmt.Errorf("opening browser: %w (visit %s manually)", err, pageURL)
			}
			return nil
		}),
	}

	return cmd
}
