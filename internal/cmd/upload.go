package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/gyazo/gyazo-cli/internal/api"
	"github.com/gyazo/gyazo-cli/internal/browser"
	"github.com/gyazo/gyazo-cli/internal/cli"
	"github.com/gyazo/gyazo-cli/internal/dryrun"
	"github.com/gyazo/gyazo-cli/internal/validation"
)

func newUploadCmd() *cobra.Command {
	var (
		title            string
		desc             string
		app              string
		refererURL       string
		createdAt        string
		collection       string
		accessPolicy     string
		metadataIsPublic bool
		copyLink         bool
		copyFormat       string
		openAfter        bool
		concurrency      int
		progress         bool
		noProgress       bool
	)

	cmd := &cobra.Command{
		Use:     "upload <file>...",
		Aliases: []string{"up"},
		Short:   "Upload images to Gyazo",
		Long:    "Upload one or more image files and print the capture page URLs.\nUse '-' to read image data from stdin.",
		Example: strings.TrimSpace(`
  # Upload a screenshot
  gz upload screenshot.png

  # Upload with metadata
  gz upload shot.png --title "Build failure" --app "CI" --desc @notes.txt

  # Upload from stdin and copy a markdown link
  import png:- | gz upload - --copy --copy-format markdown

  # Private upload
  gz upload secret.png --access-policy only_me
`),
		Args: cobra.MinimumNArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			cfg := loadCLISettings()

			if !flagOrAliasChanged(cmd, "access-policy") {
				accessPolicy = cfg.DefaultAccessPolicy
			}
			policy, err := normalizeEnum("--access-policy", accessPolicy, []string{api.AccessPolicyAnyone, api.AccessPolicyOnlyMe})
			if err != nil {
				return err
			}
			if !flagOrAliasChanged(cmd, "copy-format") {
				copyFormat = cfg.CopyFormat
			}
			format, err := normalizeEnum("--copy-format", copyFormat, []string{"url", "markdown", "html"})
			if err != nil {
				return err
			}

			description, err := loadAtValue(desc)
			if err != nil {
				return err
			}
			if err := validation.ValidateTitle(title); err != nil {
				return err
			}
			if err := validation.ValidateDesc(description); err != nil {
				return err
			}
			if err := validation.ValidateApp(app); err != nil {
				return err
			}
			if err := validation.ValidateRefererURL(refererURL); err != nil {
				return err
			}
			created := ""
			if createdAt != "" {
				created, err = validation.ParseCreatedAt(createdAt)
				if err != nil {
					return err
				}
			}

			stdinCount := 0
			for _, arg := range args {
				if arg == "-" {
					stdinCount++
				}
			}
			if stdinCount > 1 {
				return fmt.Errorf("'-' (stdin) can appear at most once")
			}

			base := api.UploadParams{
				AccessPolicy: policy,
				RefererURL:   refererURL,
				App:          app,
				Title:        title,
				Desc:         description,
				CreatedAt:    created,
				CollectionID: collection,
			}
			if metadataIsPublic {
				base.MetadataIsPublic = "true"
			}

			preview := &dryrun.Preview{Operation: "upload", Target: strings.Join(args, ", ")}
			preview.AddField("access_policy", policy)
			if title != "" {
				preview.AddField("title", title)
			}
			if app != "" {
				preview.AddField("app", app)
			}
			if collection != "" {
				preview.AddField("collection_id", collection)
			}
			if policy == api.AccessPolicyOnlyMe {
				preview.Warnings = append(preview.Warnings, "capture will only be visible to you")
			}
			if done, err := maybeDryRun(cmd, preview); done {
				return err
			}

			client, err := getClient()
			if err != nil {
				return err
			}

			uploadOne := func(ctx context.Context, source string) (*api.UploadResult, error) {
				data, err := readUploadSource(source)
				if err != nil {
					return nil, err
				}
				params := base
				params.ImageData = data
				if params.Title == "" && source != "-" {
					params.Title = filepath.Base(source)
				}
				return client.Images().Upload(ctx, params)
			}

			if len(args) == 1 {
				result, err := uploadOne(ctx, args[0])
				if err != nil {
					return err
				}
				if err := afterUpload(cmd, result, title, copyLink, format, openAfter); err != nil {
					return err
				}
				if isJSON(cmd) || isAgent(cmd) {
					return printJSON(cmd, result)
				}
				line := cli.CopyText(format, uploadCopyTitle(title, args[0]), result.PermalinkURL, result.URL)
				printIfNotQuiet(cmd, "%s\n", line)
				return nil
			}

			results := runBulkOperation(
				ctx,
				args,
				int64(concurrency),
				bulkProgressEnabled(cmd, progress, noProgress),
				cmd.ErrOrStderr(),
				uploadOne,
			)
			successCount, failCount := countResults(results)

			var copyTexts []string
			if isJSON(cmd) || isAgent(cmd) {
				items := make([]map[string]any, 0, len(results))
				for _, r := range results {
					item := map[string]any{"file": r.ID, "success": r.Success}
					if r.Error != nil {
						item["error"] = r.Error.Error()
					}
					if result, ok := r.Data.(*api.UploadResult); ok && result != nil {
						item["result"] = result
						copyTexts = append(copyTexts, cli.CopyText(format, uploadCopyTitle(title, r.ID), result.PermalinkURL, result.URL))
					}
					items = append(items, item)
				}
				if err := maybeCopy(cmd, copyLink, copyTexts); err != nil {
					return err
				}
				return printJSON(cmd, map[string]any{
					"items":         items,
					"success_count": successCount,
					"fail_count":    failCount,
				})
			}

			out := cmd.OutOrStdout()
			for _, r := range results {
				if result, ok := r.Data.(*api.UploadResult); ok && result != nil {
					line := cli.CopyText(format, uploadCopyTitle(title, r.ID), result.PermalinkURL, result.URL)
					_, _ = fmt.Fprintf(out, "%s\t%s\n", r.ID, line)
					copyTexts = append(copyTexts, line)
					continue
				}
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Failed to upload %s: %v\n", r.ID, r.Error)
			}
			if err := maybeCopy(cmd, copyLink, copyTexts); err != nil {
				return err
			}
			printIfNotQuiet(cmd, "Uploaded %d captures (%d failed)\n", successCount, failCount)
			if failCount > 0 {
				return fmt.Errorf("%d of %d uploads failed", failCount, len(results))
			}
			return nil
		}),
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Capture title (defaults to the file name)")
	cmd.Flags().StringVarP(&desc, "desc", "d", "", "Capture description (or @path / @- for stdin)")
	cmd.Flags().StringVar(&app, "app", "", "Application name annotation")
	cmd.Flags().StringVar(&refererURL, "referer-url", "", "Source page URL annotation")
	cmd.Flags().StringVar(&createdAt, "created-at", "", "Capture timestamp (unix seconds or e.g. 2006-01-02T15:04:05)")
	cmd.Flags().StringVar(&collection, "collection", "", "Collection ID to add the capture to")
	cmd.Flags().StringVar(&accessPolicy, "access-policy", "", "Who can view the capture: anyone|only_me (default from config)")
	cmd.Flags().BoolVar(&metadataIsPublic, "metadata-public", false, "Expose title and URL metadata on the capture page")
	cmd.Flags().BoolVarP(&copyLink, "copy", "c", false, "Copy the capture link to the clipboard")
	cmd.Flags().StringVar(&copyFormat, "copy-format", "", "Clipboard format: url|markdown|html (default from config)")
	cmd.Flags().BoolVar(&openAfter, "open", false, "Open the capture page after upload")
	cmd.Flags().IntVar(&concurrency, "concurrency", DefaultConcurrency, "Max concurrent uploads")
	cmd.Flags().BoolVar(&progress, "progress", true, "Show progress while running")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable progress output")
	flagAlias(cmd.Flags(), "title", "ti")
	flagAlias(cmd.Flags(), "access-policy", "policy")
	flagAlias(cmd.Flags(), "referer-url", "referer")
	flagAlias(cmd.Flags(), "concurrency", "cc")
	registerStaticCompletions(cmd, "access-policy", []string{api.AccessPolicyAnyone, api.AccessPolicyOnlyMe})
	registerStaticCompletions(cmd, "copy-format", []string{"url", "markdown", "html"})

	return cmd
}

// readUploadSource reads image bytes from a file path or stdin ('-').
func readUploadSource(source string) ([]byte, error) {
	var data []byte
	var err error
	if source == "-" {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read image from stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", source, err)
		}
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s is empty", sourceLabel(source))
	}
	return data, nil
}

func sourceLabel(source string) string {
	if source == "-" {
		return "stdin"
	}
	return source
}

func uploadCopyTitle(title, source string) string {
	if title != "" {
		return title
	}
	if source == "-" {
		return "capture"
	}
	return filepath.Base(source)
}

// afterUpload handles the single-file conveniences: clipboard copy and
// opening the capture page.
func afterUpload(cmd *cobra.Command, result *api.UploadResult, title string, copyLink bool, format string, openAfter bool) error {
	if copyLink {
		text := cli.CopyText(format, uploadCopyTitle(title, result.ImageID), result.PermalinkURL, result.URL)
		if err := maybeCopy(cmd, true, []string{text}); err != nil {
			return err
		}
	}
	if openAfter {
		if err := browser.Open(result.PermalinkURL); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to open browser: %v\n", err)
		}
	}
	return nil
}

// maybeCopy writes the given texts to the clipboard when requested.
// Clipboard failures warn instead of failing the upload: the capture is
// already on the server at that point.
func maybeCopy(cmd *cobra.Command, copyLink bool, texts []string) error {
	if !copyLink || len(texts) == 0 {
		return nil
	}
	if err := clipboard.WriteAll(strings.Join(texts, "\n")); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: clipboard copy failed: %v\n", err)
		return nil
	}
	if !flags.Quiet {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Copied to clipboard.")
	}
	return nil
}
