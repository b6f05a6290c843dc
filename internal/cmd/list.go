package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gyazo/gyazo-cli/internal/api"
	"github.com/gyazo/gyazo-cli/internal/cli"
	"github.com/gyazo/gyazo-cli/internal/filter"
	"github.com/gyazo/gyazo-cli/internal/iocontext"
	"github.com/gyazo/gyazo-cli/internal/outfmt"
)

func newListCmd() *cobra.Command {
	var (
		limit      int
		appName    string
		since      string
		until      string
		filterExpr string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your captures",
		Long:    "List recent captures for the authenticated account, newest first.",
		Example: strings.TrimSpace(`
  # Latest captures
  gz list

  # Captures from one application, last week
  gz list --app Safari --since 7d

  # Structured output for scripts
  gz list --jsonl
  gz list --filter '.metadata.app == "Safari"' --json
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			ctx := cmdContext(cmd)
			if limit < 0 {
				return fmt.Errorf("--limit must be >= 0")
			}

			now := time.Now()
			var sinceTime, untilTime time.Time
			var err error
			if since != "" {
				sinceTime, err = cli.ParseTimeFilter(since, now)
				if err != nil {
					return fmt.Errorf("invalid --since: %w", err)
				}
			}
			if until != "" {
				untilTime, err = cli.ParseTimeFilter(until, now)
				if err != nil {
					return fmt.Errorf("invalid --until: %w", err)
				}
			}

			client, err := getClient()
			if err != nil {
				return err
			}

			images, err := client.Images().List(ctx)
			if err != nil {
				return err
			}

			images = filterCaptures(images, appName, sinceTime, untilTime)
			if filterExpr != "" {
				images, err = applyCaptureFilter(images, filterExpr)
				if err != nil {
					return err
				}
			}
			if limit > 0 && len(images) > limit {
				images = images[:limit]
			}

			ioStreams := iocontext.GetIO(ctx)
			mode := outfmt.ModeFromContext(ctx)

			if mode == outfmt.JSONL {
				query := outfmt.GetQuery(ctx)
				tmpl := outfmt.GetTemplate(ctx)
				for _, img := range images {
					if err := writeJSONLItem(ioStreams.Out, img, query, tmpl); err != nil {
						return err
					}
				}
				return nil
			}
			if mode == outfmt.Agent {
				return printJSON(cmd, images)
			}
			if mode == outfmt.JSON {
				return printJSON(cmd, map[string]any{
					"items": images,
					"total": len(images),
				})
			}

			f := outfmt.NewFormatter(ctx, ioStreams.Out, ioStreams.ErrOut)
			if len(images) == 0 {
				f.Empty("No captures found")
				return nil
			}
			f.StartTable([]string{"ID", "CREATED", "APP", "TITLE"})
			for i := range images {
				f.Row(captureRow(&images[i])...)
			}
			return f.EndTable()
		}),
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum captures to show (0 = all returned by the API)")
	cmd.Flags().StringVar(&appName, "app", "", "Only captures taken with this application")
	cmd.Flags().StringVar(&since, "since", "", "Only captures after this time (e.g. 7d, yesterday, 2026-01-02)")
	cmd.Flags().StringVar(&until, "until", "", "Only captures before this time")
	cmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "JQ predicate over captures (e.g. '.metadata.app == \"Safari\"')")
	flagAlias(cmd.Flags(), "limit", "lim")
	flagAlias(cmd.Flags(), "filter", "fl")

	return cmd
}

// writeJSONLItem emits one list element per line, honoring --query and
// --template the same way the single-document path does.
func writeJSONLItem(w io.Writer, item any, query, tmpl string) error {
	if query != "" {
		filtered, err := outfmt.ApplyQuery(item, query)
		if err != nil {
			return err
		}
		item = filtered
	}

	if tmpl != "" {
		if err := outfmt.WriteTemplate(w, item, tmpl); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w)
		return err
	}

	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n"))
	return err
}

func captureRow(img *api.Image) []string {
	created := img.CreatedAt
	if t := img.CreatedAtTime(); !t.IsZero() {
		created = t.Local().Format("2006-01-02 15:04")
	}
	app := ""
	if img.Metadata.App != nil {
		app = *img.Metadata.App
	}
	return []string{img.ImageID, created, app, img.DisplayTitle()}
}

// filterCaptures applies the client-side list filters. Captures whose
// timestamp cannot be parsed are dropped only when a time filter is
// active, since they cannot be compared.
func filterCaptures(images []api.Image, appName string, since, until time.Time) []api.Image {
	if appName == "" && since.IsZero() && until.IsZero() {
		return images
	}
	filtered := make([]api.Image, 0, len(images))
	for _, img := range images {
		if appName != "" {
			app := ""
			if img.Metadata.App != nil {
				app = *img.Metadata.App
			}
			if !strings.EqualFold(app, appName) {
				continue
			}
		}
		if !since.IsZero() || !until.IsZero() {
			t := img.CreatedAtTime()
			if t.IsZero() {
				continue
			}
			if !since.IsZero() && t.Before(since) {
				continue
			}
			if !until.IsZero() && t.After(until) {
				continue
			}
		}
		filtered = append(filtered, img)
	}
	return filtered
}

// applyCaptureFilter runs a user-supplied jq predicate over each capture
// and keeps the ones where it evaluates truthy.
func applyCaptureFilter(images []api.Image, expr string) ([]api.Image, error) {
	data, err := json.Marshal(images)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, err
	}

	wrapped := fmt.Sprintf("[.[] | select(%s)]", filter.NormalizeExpression(expr))
	result, err := filter.Apply(generic, wrapped)
	if err != nil {
		return nil, fmt.Errorf("invalid --filter: %w", err)
	}

	out, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	var filtered []api.Image
	if err := json.Unmarshal(out, &filtered); err != nil {
		return nil, fmt.Errorf("--filter must be a predicate over captures (e.g. '.metadata.app == \"Safari\"')")
	}
	return filtered, nil
}
