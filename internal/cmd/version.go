// internal/cmd/version.go
package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/gyazo/gyazo-cli/internal/update"
)

// version is set at build time via ldflags
var version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			if isJSON(cmd) || isAgent(cmd) {
				_ = printJSON(cmd, map[string]any{
					"version":    version,
					"go_version": runtime.Version(),
					"os":         runtime.GOOS,
					"arch":       runtime.GOARCH,
				})
				return
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "gyazo-cli version %s\n", version)

			// Check for updates (non-blocking, fails silently)
			result := update.CheckForUpdate(cmd.Context(), version)
			if result != nil && result.UpdateAvailable {
				errOut := cmd.ErrOrStderr()
				_, _ = fmt.Fprintf(errOut, "\nUpdate available: %s -> %s\n", result.CurrentVersion, result.LatestVersion) //nolint:errcheck
				_, _ = fmt.Fprintf(errOut, "Download: %s\n", result.UpdateURL)                                            //nolint:errcheck
			}
		},
	}
}
