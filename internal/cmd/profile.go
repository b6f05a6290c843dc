package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gyazo/gyazo-cli/internal/config"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage named credential profiles",
		Long: strings.TrimSpace(`
Profiles hold separate credentials in the keychain, e.g. one per Gyazo
account. Create one with 'gz auth login --profile NAME'; most commands
also accept --profile for a one-off switch.
`),
	}
	cmd.AddCommand(newProfileListCmd())
	cmd.AddCommand(newProfileUseCmd())
	cmd.AddCommand(newProfileShowCmd())
	return cmd
}

func newProfileListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored profiles",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			profiles, err := config.ListProfiles()
			if err != nil {
				return err
			}
			current, err := config.CurrentProfile()
			if err != nil {
				return err
			}

			if isJSON(cmd) {
				return printJSON(cmd, map[string]any{
					"profiles": profiles,
					"current":  current,
				})
			}

			if len(profiles) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No stored profiles. Run 'gz auth login' to create one.")
				return nil
			}
			out := cmd.OutOrStdout()
			for _, profile := range profiles {
				marker := " "
				if profile == current {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s\n", marker, profile)
			}
			return nil
		}),
	}
	return cmd
}

func newProfileUseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "use <name>",
		Short:             "Switch the active profile",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProfileNames,
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if _, err := config.LoadProfile(name); err != nil {
				if errors.Is(err, config.ErrNotConfigured) {
					return fmt.Errorf("no stored profile %q (run 'gz auth login --profile %s')", name, name)
				}
				return err
			}
			if err := config.SetCurrentProfile(name); err != nil {
				return err
			}

			if isJSON(cmd) {
				return printJSON(cmd, map[string]any{"current": name})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Switched to profile %q\n", name)
			return nil
		}),
	}
	return cmd
}

func newProfileShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Show a profile's stored settings",
		Args:  cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return completeProfileNames(cmd, args, toComplete)
		},
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			name := activeProfileName()
			if len(args) == 1 {
				name = args[0]
			}

			account, err := config.LoadProfile(name)
			if err != nil {
				if errors.Is(err, config.ErrNotConfigured) {
					return fmt.Errorf("no stored profile %q", name)
				}
				return err
			}

			if isJSON(cmd) {
				doc := map[string]any{
					"profile": name,
					"token":   maskToken(account.AccessToken),
				}
				if account.APIBaseURL != "" {
					doc["api_base_url"] = account.APIBaseURL
				}
				if account.UploadBaseURL != "" {
					doc["upload_base_url"] = account.UploadBaseURL
				}
				return printJSON(cmd, doc)
			}

			w := newTabWriterFromCmd(cmd)
			fmt.Fprintf(w, "Profile:\t%s\n", name)
			fmt.Fprintf(w, "Token:\t%s\n", maskToken(account.AccessToken))
			if account.APIBaseURL != "" {
				fmt.Fprintf(w, "API:\t%s\n", account.APIBaseURL)
			}
			if account.UploadBaseURL != "" {
				fmt.Fprintf(w, "Upload:\t%s\n", account.UploadBaseURL)
			}
			return w.Flush()
		}),
	}
	return cmd
}

func completeProfileNames(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	profiles, err := config.ListProfiles()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	matches := make([]string, 0, len(profiles))
	for _, profile := range profiles {
		if strings.HasPrefix(profile, toComplete) {
			matches = append(matches, profile)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}
