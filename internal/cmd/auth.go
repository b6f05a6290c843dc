package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gyazo/gyazo-cli/internal/api"
	"github.com/gyazo/gyazo-cli/internal/auth"
	"github.com/gyazo/gyazo-cli/internal/config"
	"github.com/gyazo/gyazo-cli/internal/iocontext"
	"github.com/gyazo/gyazo-cli/internal/skill"
)

// browserLoginTimeout bounds how long the localhost setup form waits for
// the user to finish.
const browserLoginTimeout = 5 * time.Minute

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage authentication",
	}
	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthStatusCmd())
	cmd.AddCommand(newAuthLogoutCmd())
	cmd.AddCommand(newAuthSkillCmd())
	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var (
		withToken bool
		envFile   string
		noSkill   bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with Gyazo",
		Long: strings.TrimSpace(`
Store an access token in the OS keychain. Without options this opens a
local setup page in your browser. For scripted setups, pass the token
directly (--token, --with-token on stdin, or --env-file pointing at a
dotenv file with GYAZO_ACCESS_TOKEN).
`),
		Example: strings.TrimSpace(`
  gz auth login
  gz auth login --token ${GYAZO_ACCESS_TOKEN}
  gz auth login --with-token < token.txt
  gz auth login --env-file ~/.config/gyazo/.env
  gz auth login --profile work
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			ctx := cmdContext(cmd)
			profile := activeProfileName()

			token, origins, err := loginToken(cmd, withToken, envFile)
			if err != nil {
				return err
			}

			if token == "" {
				if !isInteractive() {
					return fmt.Errorf("no terminal available for the browser flow (pass --token, --with-token, or --env-file)")
				}
				return browserLogin(ctx, cmd, profile, noSkill)
			}

			client, err := loginClient(token, origins)
			if err != nil {
				return err
			}
			user, err := client.Users().Me(ctx)
			if err != nil {
				return fmt.Errorf("token validation failed: %w", err)
			}

			account := config.Account{
				AccessToken:   token,
				APIBaseURL:    origins.api,
				UploadBaseURL: origins.upload,
			}
			if err := config.SaveProfile(profile, account); err != nil {
				return err
			}

			if !noSkill {
				regenerateSkill(ctx, cmd, client, user.Name)
			}

			if isJSON(cmd) {
				return printJSON(cmd, map[string]any{
					"profile": profile,
					"email":   user.Email,
					"name":    user.Name,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (profile %q)\n", userLabel(user), profile)
			return nil
		}),
	}

	cmd.Flags().BoolVar(&withToken, "with-token", false, "Read the access token from standard input")
	cmd.Flags().StringVar(&envFile, "env-file", "", "Read GYAZO_ACCESS_TOKEN (and origins) from a dotenv file")
	cmd.Flags().BoolVar(&noSkill, "no-skill", false, "Skip regenerating the agent workspace skill")
	flagAlias(cmd.Flags(), "with-token", "wt")
	flagAlias(cmd.Flags(), "env-file", "ef")

	return cmd
}

// loginOrigins carries explicit origin overrides that should be stored
// with the profile. Environment-derived origins stay in the environment.
type loginOrigins struct {
	api    string
	upload string
}

// loginToken collects the token from the non-browser sources, most
// explicit first. An empty token with nil error selects the browser flow.
func loginToken(cmd *cobra.Command, withToken bool, envFile string) (string, loginOrigins, error) {
	origins := loginOrigins{
		api:    strings.TrimSuffix(strings.TrimSpace(flags.APIURL), "/"),
		upload: strings.TrimSuffix(strings.TrimSpace(flags.UploadURL), "/"),
	}

	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		if err != nil {
			return "", origins, fmt.Errorf("reading %s: %w", envFile, err)
		}
		token := strings.TrimSpace(vars["GYAZO_ACCESS_TOKEN"])
		if token == "" {
			return "", origins, fmt.Errorf("no GYAZO_ACCESS_TOKEN in %s", envFile)
		}
		if origins.api == "" {
			origins.api = strings.TrimSuffix(strings.TrimSpace(vars["GYAZO_API_URL"]), "/")
		}
		if origins.upload == "" {
			origins.upload = strings.TrimSuffix(strings.TrimSpace(vars["GYAZO_UPLOAD_URL"]), "/")
		}
		return token, origins, nil
	}

	if withToken {
		ioStreams := iocontext.GetIO(cmd.Context())
		data, err := io.ReadAll(ioStreams.In)
		if err != nil {
			return "", origins, fmt.Errorf("reading token from stdin: %w", err)
		}
		token := strings.TrimSpace(string(data))
		if token == "" {
			return "", origins, fmt.Errorf("no token on stdin")
		}
		return token, origins, nil
	}

	return strings.TrimSpace(flags.Token), origins, nil
}

// loginClient builds a validation client for the token. Environment
// origins apply so token validation hits the same host later commands
// will.
func loginClient(token string, origins loginOrigins) (*api.Client, error) {
	if err := validateOriginFlag("--api-url", origins.api); err != nil {
		return nil, err
	}
	if err := validateOriginFlag("--upload-url", origins.upload); err != nil {
		return nil, err
	}
	apiURL := origins.api
	if apiURL == "" {
		apiURL = strings.TrimSuffix(strings.TrimSpace(os.Getenv("GYAZO_API_URL")), "/")
	}
	uploadURL := origins.upload
	if uploadURL == "" {
		uploadURL = strings.TrimSuffix(strings.TrimSpace(os.Getenv("GYAZO_UPLOAD_URL")), "/")
	}
	if err := validateOriginFlag("GYAZO_API_URL", apiURL); err != nil {
		return nil, err
	}
	if err := validateOriginFlag("GYAZO_UPLOAD_URL", uploadURL); err != nil {
		return nil, err
	}
	return api.NewWithOrigins(token, apiURL, uploadURL), nil
}

func browserLogin(ctx context.Context, cmd *cobra.Command, profile string, noSkill bool) error {
	server, err := auth.NewSetupServer(profile)
	if err != nil {
		return err
	}

	loginCtx, cancel := context.WithTimeout(ctx, browserLoginTimeout)
	defer cancel()

	result, err := server.Start(loginCtx)
	if err != nil {
		if loginCtx.Err() != nil {
			return fmt.Errorf("login timed out after %s", browserLoginTimeout)
		}
		return err
	}
	if result.Error != nil {
		return result.Error
	}

	if !noSkill {
		client := api.NewWithOrigins(result.Account.AccessToken, result.Account.APIBaseURL, result.Account.UploadBaseURL)
		regenerateSkill(ctx, cmd, client, result.Email)
	}

	if isJSON(cmd) {
		return printJSON(cmd, map[string]any{
			"profile": profile,
			"email":   result.Email,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (profile %q)\n", result.Email, profile)
	return nil
}

// regenerateSkill refreshes the agent workspace skill. Login succeeded
// at this point, so failures only warn.
func regenerateSkill(ctx context.Context, cmd *cobra.Command, client *api.Client, accountName string) {
	if err := skill.GenerateWorkspaceSkill(ctx, client, accountName); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not write workspace skill: %v\n", err)
	}
}

func newAuthStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show authentication status",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			ctx := cmdContext(cmd)
			profile := activeProfileName()

			client, err := getClient()
			if err != nil {
				return err
			}

			source := fmt.Sprintf("keychain profile %q", profile)
			switch {
			case flags.Token != "":
				source = "--token flag"
			case config.TokenFromEnv():
				source = "environment (GYAZO_ACCESS_TOKEN)"
			}

			user, err := client.Users().Me(ctx)
			if err != nil {
				return fmt.Errorf("stored token is not valid: %w", err)
			}

			if isJSON(cmd) {
				return printJSON(cmd, map[string]any{
					"profile": profile,
					"source":  source,
					"token":   maskToken(client.AccessToken),
					"email":   user.Email,
					"name":    user.Name,
				})
			}

			w := newTabWriterFromCmd(cmd)
			fmt.Fprintf(w, "Profile:\t%s\n", profile)
			fmt.Fprintf(w, "Source:\t%s\n", source)
			fmt.Fprintf(w, "Token:\t%s\n", maskToken(client.AccessToken))
			fmt.Fprintf(w, "Account:\t%s\n", userLabel(user))
			if client.APIBaseURL != api.DefaultAPIBaseURL {
				fmt.Fprintf(w, "API:\t%s\n", client.APIBaseURL)
			}
			return w.Flush()
		}),
	}
	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove stored credentials",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			profile := activeProfileName()

			if err := config.DeleteProfile(profile); err != nil {
				return err
			}
			if config.TokenFromEnv() {
				fmt.Fprintln(cmd.ErrOrStderr(), "Note: GYAZO_ACCESS_TOKEN is set in the environment and still takes effect.")
			}

			if isJSON(cmd) {
				return printJSON(cmd, map[string]any{"profile": profile, "logged_out": true})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged out (profile %q)\n", profile)
			return nil
		}),
	}
	return cmd
}

func newAuthSkillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skill",
		Short: "Regenerate the agent workspace skill",
		Long: "Write a workspace skill file describing this account's captures " +
			"for coding agents. Runs automatically after login.",
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			ctx := cmdContext(cmd)
			client, err := getClient()
			if err != nil {
				return err
			}
			if err := skill.GenerateWorkspaceSkill(ctx, client, ""); err != nil {
				return err
			}
			path, err := skill.SkillPath()
			if err != nil {
				return err
			}
			if isJSON(cmd) {
				return printJSON(cmd, map[string]any{"path": path})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Workspace skill written to %s\n", path)
			return nil
		}),
	}
	return cmd
}

// activeProfileName resolves which profile auth operations act on:
// the --profile flag, then GYAZO_PROFILE, then the stored selection.
func activeProfileName() string {
	if p := strings.TrimSpace(flags.Profile); p != "" {
		return p
	}
	if p := strings.TrimSpace(os.Getenv("GYAZO_PROFILE")); p != "" {
		return p
	}
	if current, err := config.CurrentProfile(); err == nil && current != "" {
		return current
	}
	return "default"
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "****" + token[len(token)-4:]
}

func userLabel(user *api.User) string {
	if user.Name != "" && user.Email != "" {
		return fmt.Sprintf("%s <%s>", user.Name, user.Email)
	}
	if user.Name != "" {
		return user.Name
	}
	if user.Email != "" {
		return user.Email
	}
	return user.UID
}
