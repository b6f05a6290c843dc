package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gyazo/gyazo-cli/internal/api"
	"github.com/gyazo/gyazo-cli/internal/config"
)

var completionsNoCache bool

// CompletionItem represents an autocomplete suggestion
type CompletionItem struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

func outputCompletionItems(cmd *cobra.Command, items []CompletionItem) error {
	if isJSON(cmd) {
		return printJSON(cmd, items)
	}

	w := newTabWriterFromCmd(cmd)
	for _, item := range items {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", item.Value, item.Label, item.Description)
	}
	return w.Flush()
}

func newCompletionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completions",
		Short: "Get autocomplete values",
		Long:  "Retrieve valid values for arguments and flags to help with command completion (capture IDs, access policies, copy formats, profiles)",
	}

	cmd.PersistentFlags().BoolVar(&completionsNoCache, "no-cache", false, "Disable completions cache")

	cmd.AddCommand(newCompletionsCapturesCmd())
	cmd.AddCommand(newCompletionsAccessPoliciesCmd())
	cmd.AddCommand(newCompletionsCopyFormatsCmd())
	cmd.AddCommand(newCompletionsProfilesCmd())

	return cmd
}

func newCompletionsCapturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "captures",
		Short: "List recent capture IDs with titles",
		Long:  "List recent captures with their IDs and titles for autocomplete",
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			client, err := getClient()
			if err != nil {
				return err
			}

			if items, ok := loadCompletionsCache(client, "captures"); ok {
				return outputCompletionItems(cmd, items)
			}

			images, err := client.Images().List(cmdContext(cmd))
			if err != nil {
				return fmt.Errorf("failed to list captures: %w", err)
			}

			items := captureCompletionItems(images)
			saveCompletionsCache(client, "captures", items)
			return outputCompletionItems(cmd, items)
		}),
	}
}

func newCompletionsAccessPoliciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "access-policies",
		Short: "List valid access policies",
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			return outputCompletionItems(cmd, []CompletionItem{
				{Value: "anyone", Label: "anyone", Description: "Anyone with the link can view"},
				{Value: "only_me", Label: "only_me", Description: "Only the owner can view"},
			})
		}),
	}
}

func newCompletionsCopyFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "copy-formats",
		Short: "List valid clipboard copy formats",
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			return outputCompletionItems(cmd, []CompletionItem{
				{Value: "url", Label: "url", Description: "Capture page URL"},
				{Value: "markdown", Label: "markdown", Description: "Markdown image reference"},
				{Value: "html", Label: "html", Description: "HTML img tag"},
			})
		}),
	}
}

func newCompletionsProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List stored credential profiles",
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			profiles, err := config.ListProfiles()
			if err != nil {
				return err
			}
			items := make([]CompletionItem, len(profiles))
			for i, profile := range profiles {
				items[i] = CompletionItem{Value: profile, Label: profile}
			}
			return outputCompletionItems(cmd, items)
		}),
	}
}

func captureCompletionItems(images []api.Image) []CompletionItem {
	items := make([]CompletionItem, len(images))
	for i := range images {
		img := &images[i]
		desc := ""
		if img.Metadata.App != nil {
			desc = *img.Metadata.App
		}
		if t := img.CreatedAtTime(); !t.IsZero() {
			if desc != "" {
				desc += ", "
			}
			desc += t.Local().Format("2006-01-02")
		}
		items[i] = CompletionItem{
			Value:       img.ImageID,
			Label:       img.DisplayTitle(),
			Description: desc,
		}
	}
	return items
}

// completionTimeout keeps tab completion snappy even when the API is
// slow; a miss just means no suggestions.
const completionTimeout = 3 * time.Second

// completeCaptureIDs backs shell completion for capture arguments,
// serving from the file cache when it is fresh.
func completeCaptureIDs(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	client, err := getClient()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	items, ok := loadCompletionsCache(client, "captures")
	if !ok {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, cancel := context.WithTimeout(ctx, completionTimeout)
		defer cancel()

		images, err := client.Images().List(ctx)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		items = captureCompletionItems(images)
		saveCompletionsCache(client, "captures", items)
	}

	completions := make([]string, 0, len(items))
	for _, item := range items {
		if !strings.HasPrefix(item.Value, toComplete) {
			continue
		}
		completion := item.Value
		if item.Label != "" && item.Label != item.Value {
			completion += "\t" + item.Label
		}
		completions = append(completions, completion)
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
