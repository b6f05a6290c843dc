package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gyazo/gyazo-cli/internal/settings"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI settings",
		Long: strings.TrimSpace(`
Non-secret defaults stored in a TOML file: the default access policy for
uploads, the default output format, the clipboard copy format, and the
browse page size. Credentials live in the keychain, not here.
`),
	}
	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigListCmd())
	cmd.AddCommand(newConfigPathCmd())
	return cmd
}

func newConfigGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "get <key>",
		Short:             "Print one setting",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSettingKeys,
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			cfg, _ := loadCLISettingsWarn(cmd)
			value, err := cfg.Get(args[0])
			if err != nil {
				return err
			}
			if isJSON(cmd) {
				return printJSON(cmd, map[string]any{"key": args[0], "value": value})
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		}),
	}
	return cmd
}

func newConfigSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Example: strings.TrimSpace(`
  gz config set default_access_policy only_me
  gz config set copy_format markdown
  gz config set browse_page_size 50
`),
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeSettingKeys,
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			path, err := settingsPath()
			if err != nil {
				return err
			}
			cfg, loadErr := settings.Load(path)
			if loadErr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: rewriting unreadable settings file: %v\n", loadErr)
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := settings.Save(path, cfg); err != nil {
				return err
			}

			value, _ := cfg.Get(args[0])
			if isJSON(cmd) {
				return printJSON(cmd, map[string]any{"key": args[0], "value": value})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], value)
			return nil
		}),
	}
	return cmd
}

func newConfigListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print all settings",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			cfg, _ := loadCLISettingsWarn(cmd)

			if isJSON(cmd) {
				doc := map[string]any{}
				for _, key := range settings.Keys() {
					value, err := cfg.Get(key)
					if err != nil {
						return err
					}
					doc[key] = value
				}
				return printJSON(cmd, doc)
			}

			w := newTabWriterFromCmd(cmd)
			for _, key := range settings.Keys() {
				value, err := cfg.Get(key)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\n", key, value)
			}
			return w.Flush()
		}),
	}
	return cmd
}

func newConfigPathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			path, err := settingsPath()
			if err != nil {
				return err
			}
			if isJSON(cmd) {
				return printJSON(cmd, map[string]any{"path": path})
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		}),
	}
	return cmd
}

// settingsPath resolves the settings file location, honoring the test
// override.
func settingsPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv("GYAZO_SETTINGS_PATH")); p != "" {
		return p, nil
	}
	return settings.DefaultPath()
}

// loadCLISettings returns the stored settings, falling back to defaults
// when the file is missing or unreadable. Commands that only read
// settings use this; 'config set' surfaces load problems instead.
func loadCLISettings() settings.Settings {
	path, err := settingsPath()
	if err != nil {
		return settings.Default()
	}
	cfg, err := settings.Load(path)
	if err != nil {
		return settings.Default()
	}
	return cfg
}

// loadCLISettingsWarn is loadCLISettings plus a stderr warning when the
// file exists but cannot be parsed.
func loadCLISettingsWarn(cmd *cobra.Command) (settings.Settings, error) {
	path, err := settingsPath()
	if err != nil {
		return settings.Default(), nil
	}
	cfg, err := settings.Load(path)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v (using defaults)\n", err)
	}
	return cfg, err
}

func completeSettingKeys(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	matches := make([]string, 0, 4)
	for _, key := range settings.Keys() {
		if strings.HasPrefix(key, toComplete) {
			matches = append(matches, key)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}
