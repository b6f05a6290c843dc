package cmd

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gyazo/gyazo-cli/internal/api"
	"github.com/gyazo/gyazo-cli/internal/debug"
	"github.com/gyazo/gyazo-cli/internal/dryrun"
	"github.com/gyazo/gyazo-cli/internal/iocontext"
	"github.com/gyazo/gyazo-cli/internal/outfmt"
	"github.com/gyazo/gyazo-cli/internal/settings"
	"github.com/gyazo/gyazo-cli/internal/validation"
)

// rootFlags holds global CLI flags
type rootFlags struct {
	Output       string
	JSON         bool
	JSONL        bool
	Agent        bool
	Query        string
	Template     string
	Debug        bool
	DryRun       bool
	Quiet        bool
	NoInput      bool
	Yes          bool
	Profile      string
	Token        string
	APIURL       string
	UploadURL    string
	Timeout      time.Duration
	AllowPrivate bool

	Compact bool
}

// flags holds the global command flags. This is package-level mutable state
// that MUST be reset at the start of every Execute() call. Tests depend on
// this reset to get clean state; any code that reads flags outside of a
// command's RunE is reading stale data from the previous Execute() call.
var flags = rootFlags{
	Output:  defaultOutput(),
	Timeout: api.DefaultTimeout,
}

func defaultOutput() string {
	value := strings.TrimSpace(os.Getenv("GYAZO_OUTPUT"))
	if value != "" {
		return normalizeOutputFormat(value)
	}
	if path, err := settingsPath(); err == nil {
		if cfg, err := settings.Load(path); err == nil && cfg.DefaultOutput != "" {
			return normalizeOutputFormat(cfg.DefaultOutput)
		}
	}
	return "text"
}

func parseBoolEnv(key string) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return false
	}
	switch strings.ToLower(value) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return false
	}
}

func normalizeOutputFormat(value string) string {
	value = strings.TrimSpace(value)
	if value == "ndjson" {
		return "jsonl"
	}
	return value
}

//go:embed help.txt
var helpText string

// loadGyazoEnv loads environment variables from the gyazo-cli config
// directory's .env file if it exists. Variables already set in the
// environment are not overwritten, so explicit exports always take
// precedence.
func loadGyazoEnv() {
	base, err := os.UserConfigDir()
	if err != nil {
		return
	}
	path := filepath.Join(base, "gyazo-cli", ".env")
	if _, err := os.Stat(path); err != nil {
		return
	}
	_ = godotenv.Load(path)
}

// Execute runs the root command
func Execute(ctx context.Context, args []string) error {
	// Auto-load credentials from the config dir's .env when present. This
	// runs before the flag-default reset so that GYAZO_OUTPUT and other
	// env-driven defaults pick up the values.
	loadGyazoEnv()

	// Reset flags to defaults for each execution. Tests rely on this; see
	// the invariant comment on the flags declaration above.
	flags = rootFlags{
		Output:       defaultOutput(),
		AllowPrivate: parseBoolEnv("GYAZO_ALLOW_PRIVATE"),
		Timeout:      api.DefaultTimeout,
	}
	completionsNoCache = false

	root := &cobra.Command{
		Use:                "gz",
		Short:              "CLI for the Gyazo screenshot service",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true, // We provide our own did-you-mean via enhanceUnknownError
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: false,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			flags.Output = normalizeOutputFormat(flags.Output)

			// Desire path: -y/--yes implies non-interactive mode and should satisfy
			// force requirements for confirmations.
			if flags.Yes {
				flags.NoInput = true
			}

			// Resolve the shorthand mode flags against the explicit --output value.
			shorthand := ""
			count := 0
			for _, m := range []struct {
				set  bool
				mode string
			}{{flags.JSON, "json"}, {flags.JSONL, "jsonl"}, {flags.Agent, "agent"}} {
				if m.set {
					shorthand = m.mode
					count++
				}
			}
			if count > 1 {
				return fmt.Errorf("--json, --jsonl, and --agent are mutually exclusive")
			}
			if shorthand != "" {
				if flagOrAliasChanged(cmd, "output") && flags.Output != shorthand {
					return fmt.Errorf("--%s conflicts with --output %s", shorthand, flags.Output)
				}
				flags.Output = shorthand
			}
			needsJSON := flags.Query != "" || flags.Template != ""
			if needsJSON && flags.Output != "json" && flags.Output != "jsonl" && flags.Output != "agent" {
				if flagOrAliasChanged(cmd, "output") {
					return fmt.Errorf("--query/--template require --output json, jsonl/ndjson, or agent (or --json)")
				}
				flags.Output = "json"
			}

			// Set up output mode
			mode, err := outfmt.Parse(flags.Output)
			if err != nil {
				return err
			}
			ctx = outfmt.WithMode(ctx, mode)
			ctx = outfmt.WithCompact(ctx, flags.Compact)

			// Set up IO streams (allow quiet to suppress chatter)
			ioStreams := iocontext.DefaultIO()
			if flags.Quiet {
				ioStreams.ErrOut = io.Discard
			}
			if flags.Quiet && mode == outfmt.Text {
				ioStreams.Out = io.Discard
			}
			ctx = iocontext.WithIO(ctx, ioStreams)
			cmd.SetOut(ioStreams.Out)
			cmd.SetErr(ioStreams.ErrOut)

			allowPrivate := parseBoolEnv("GYAZO_ALLOW_PRIVATE") || flags.AllowPrivate
			validation.SetAllowPrivate(allowPrivate)
			if allowPrivate && !flags.Quiet {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Warning: allowing private/localhost URLs (use only with trusted targets).") //nolint:errcheck
			}

			// Set up debug logging
			debugEnabled := flags.Debug || debug.FromEnv()
			debug.SetupLogger(debugEnabled)
			ctx = debug.WithDebug(ctx, debugEnabled)

			// Set up dry-run mode
			ctx = dryrun.WithDryRun(ctx, flags.DryRun)

			// Set up JQ query
			if flags.Query != "" {
				ctx = outfmt.WithQuery(ctx, flags.Query)
			}

			// Set up template output
			if flags.Template != "" {
				tmpl, err := loadTemplate(flags.Template)
				if err != nil {
					return err
				}
				ctx = outfmt.WithTemplate(ctx, tmpl)
			}

			// The profile selection travels through the environment because
			// keyring lookups resolve the active profile from GYAZO_PROFILE.
			if flags.Profile != "" {
				if err := os.Setenv("GYAZO_PROFILE", flags.Profile); err != nil {
					return fmt.Errorf("failed to select profile %q: %w", flags.Profile, err)
				}
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetContext(ctx)
	root.SetArgs(args)
	defaultHelp := root.HelpFunc()
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd.Name() == root.Name() && !cmd.HasParent() {
			fmt.Print(helpText)
			return
		}
		defaultHelp(cmd, args)
	})
	root.PersistentFlags().StringVarP(&flags.Output, "output", "o", flags.Output, "Output format: text|json|jsonl|ndjson|agent (env GYAZO_OUTPUT)")
	root.PersistentFlags().BoolVarP(&flags.JSON, "json", "j", false, "Shorthand for --output json")
	root.PersistentFlags().BoolVar(&flags.JSONL, "jsonl", false, "Shorthand for --output jsonl")
	root.PersistentFlags().BoolVar(&flags.Agent, "agent", false, "Shorthand for --output agent")
	root.PersistentFlags().StringVarP(&flags.Query, "query", "q", "", "JQ expression to filter JSON output")
	root.PersistentFlags().StringVar(&flags.Template, "template", "", "Go template string (or @path) to render JSON output")
	root.PersistentFlags().BoolVar(&flags.Compact, "compact-json", false, "Compact JSON output (no indentation)")
	root.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "Enable debug logging (env GYAZO_DEBUG)")
	root.PersistentFlags().BoolVar(&flags.DryRun, "dry-run", false, "Preview changes without executing")
	root.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "Q", false, "Suppress non-essential output")
	root.PersistentFlags().BoolVar(&flags.NoInput, "no-input", false, "Disable interactive prompts")
	root.PersistentFlags().BoolVarP(&flags.Yes, "yes", "y", false, "Skip confirmation prompts")
	root.PersistentFlags().StringVar(&flags.Profile, "profile", "", "Named credential profile to use (env GYAZO_PROFILE)")
	root.PersistentFlags().StringVar(&flags.Token, "token", "", "API access token for this invocation (env GYAZO_ACCESS_TOKEN)")
	root.PersistentFlags().StringVar(&flags.APIURL, "api-url", "", "API origin override (env GYAZO_API_URL)")
	root.PersistentFlags().StringVar(&flags.UploadURL, "upload-url", "", "Upload origin override (env GYAZO_UPLOAD_URL)")
	root.PersistentFlags().DurationVar(&flags.Timeout, "timeout", flags.Timeout, "HTTP request timeout (e.g., 30s, 2m)")
	root.PersistentFlags().BoolVar(&flags.AllowPrivate, "allow-private", flags.AllowPrivate, "Allow private/localhost URLs (unsafe)")

	// Short aliases for persistent flags
	flagAlias(root.PersistentFlags(), "output", "out")
	flagAlias(root.PersistentFlags(), "query", "qr")
	flagAlias(root.PersistentFlags(), "template", "tpl")
	flagAlias(root.PersistentFlags(), "compact-json", "cj")
	flagAlias(root.PersistentFlags(), "dry-run", "dr")
	flagAlias(root.PersistentFlags(), "debug", "dbg")
	flagAlias(root.PersistentFlags(), "no-input", "ni")
	flagAlias(root.PersistentFlags(), "timeout", "to")
	flagAlias(root.PersistentFlags(), "allow-private", "ap")
	flagAlias(root.PersistentFlags(), "profile", "pf")

	// Add subcommands
	root.AddCommand(newAuthCmd())
	root.AddCommand(newUploadCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newGetCmd())
	root.AddCommand(newDeleteCmd())
	root.AddCommand(newOembedCmd())
	root.AddCommand(newDownloadCmd())
	root.AddCommand(newOpenCmd())
	root.AddCommand(newBrowseCmd())
	root.AddCommand(newAPICmd())
	root.AddCommand(newProfileCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())
	root.AddCommand(newSchemaCmd())
	root.AddCommand(newCompletionsCmd())
	root.AddCommand(newCacheCmd())

	if len(args) > 0 {
		if _, _, findErr := root.Find(args); findErr != nil {
			if handled, execErr := tryExecExtension(args); handled {
				return execErr
			}
		}
	}

	targetCmd, err := root.ExecuteC()
	if err != nil {
		if !errors.Is(err, errAlreadyHandled) {
			enhanced := enhanceUnknownError(err, root, targetCmd)
			_, _ = fmt.Fprintln(root.ErrOrStderr(), enhanced) //nolint:errcheck
		}
		return err
	}
	return nil
}

// enhanceUnknownError adds "did you mean?" suggestions to unknown command/flag errors.
// targetCmd is the command Cobra resolved before the error (may be root itself).
func enhanceUnknownError(err error, root *cobra.Command, targetCmd *cobra.Command) string {
	msg := err.Error()

	// Unknown command: "unknown command "foo" for "gz""
	if strings.Contains(msg, "unknown command") {
		unknown := extractQuoted(msg)
		if unknown != "" {
			var names []string
			for _, c := range root.Commands() {
				if c.IsAvailableCommand() || c.Name() == "help" {
					names = append(names, c.Name())
					names = append(names, c.Aliases...)
				}
			}
			if suggestion := suggestCommand(unknown, names); suggestion != "" {
				return fmt.Sprintf("%s\n\nDid you mean %q?", msg, suggestion)
			}
		}
	}

	// Unknown flag: "--foo", shorthand "-f", or similarly malformed flag usage.
	if strings.Contains(msg, "unknown flag") || strings.Contains(msg, "flag provided but not defined") || strings.Contains(msg, "unknown shorthand flag") {
		unknown := extractFlag(msg)
		if unknown != "" {
			// Collect flags from the target command (not root) so subcommand
			// flags like --since on "list" are included.
			seen := make(map[string]bool)
			var flagNames []string
			addFlags := func(fs *pflag.FlagSet) {
				fs.VisitAll(func(f *pflag.Flag) {
					name := "--" + f.Name
					if !seen[name] {
						seen[name] = true
						flagNames = append(flagNames, name)
					}
					if f.Shorthand != "" {
						short := "-" + f.Shorthand
						if !seen[short] {
							seen[short] = true
							flagNames = append(flagNames, short)
						}
					}
				})
			}
			if targetCmd != nil {
				addFlags(targetCmd.Flags())
				addFlags(targetCmd.InheritedFlags())
			} else {
				addFlags(root.Flags())
				addFlags(root.PersistentFlags())
			}
			helpCmd := "gz --help"
			if targetCmd != nil {
				if commandPath := strings.TrimSpace(targetCmd.CommandPath()); commandPath != "" {
					helpCmd = commandPath + " --help"
				}
			}
			if suggestion := suggestFlag(unknown, flagNames); suggestion != "" {
				return fmt.Sprintf("%s\n\nDid you mean %q?\nRun %q to see supported flags.", msg, suggestion, helpCmd)
			}
			return fmt.Sprintf("%s\n\nRun %q to see supported flags.", msg, helpCmd)
		}
	}

	return msg
}

// extractQuoted extracts the first double-quoted substring from s.
func extractQuoted(s string) string {
	start := strings.IndexByte(s, '"')
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(s[start+1:], '"')
	if end < 0 {
		return ""
	}
	return s[start+1 : start+1+end]
}

// extractFlag extracts a flag name (e.g., "--foo") from an error message.
func extractFlag(s string) string {
	// Look for --something pattern
	idx := strings.Index(s, "--")
	if idx < 0 {
		// Fallback for shorthand errors like:
		// "unknown shorthand flag: 'a' in -a"
		idx = strings.LastIndex(s, " -")
		if idx < 0 {
			return ""
		}
		rest := strings.TrimSpace(s[idx+1:])
		end := strings.IndexByte(rest, ' ')
		if end >= 0 {
			rest = rest[:end]
		}
		rest = strings.TrimRight(rest, ".,;:!?\"'")
		if strings.HasPrefix(rest, "-") && len(rest) > 1 {
			return rest
		}
		return ""
	}
	rest := s[idx:]
	// Take until space or end
	end := strings.IndexByte(rest, ' ')
	if end < 0 {
		end = len(rest)
	}
	return strings.TrimRight(rest[:end], ".,;:!?\"'")
}

// extensionAliases maps short names to canonical extension names.
// When `gz <alias>` doesn't match a built-in command, the CLI tries
// to exec `gz-<alias>` first, then `gz-<canonical>`.
var extensionAliases = map[string]string{
	"cap": "capture",
}

func extensionExecCandidates(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	candidates := []string{name}
	if canonical, ok := extensionAliases[name]; ok && canonical != "" && canonical != name {
		candidates = append(candidates, canonical)
	}
	return candidates
}

func tryExecExtension(args []string) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}
	name := args[0]
	if strings.HasPrefix(name, "-") {
		return false, nil
	}
	for _, candidate := range extensionExecCandidates(name) {
		bin := "gz-" + candidate
		path, err := exec.LookPath(bin)
		if err != nil {
			continue
		}
		cmd := exec.Command(path, args[1:]...)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return true, cmd.Run()
	}
	return false, nil
}

func loadTemplate(value string) (string, error) {
	if strings.HasPrefix(value, "@") {
		path := strings.TrimPrefix(value, "@")
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read template file: %w", err)
		}
		return string(data), nil
	}
	return value, nil
}
