package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gyazo/gyazo-cli/internal/agentfmt"
	"github.com/gyazo/gyazo-cli/internal/api"
)

func newGetCmd() *cobra.Command {
	var embed bool

	cmd := &cobra.Command{
		Use:     "get <id|url|title>",
		Aliases: []string{"show"},
		Short:   "Show capture details",
		Long: strings.TrimSpace(`
Show the metadata for one capture. The argument may be a capture ID, any
gyazo.com URL (permalink, i.gyazo.com content URL, thumbnail), or a title
to match against your recent captures.
`),
		Example: strings.TrimSpace(`
  gz get a1b2c3d4e5f67890a1b2c3d4e5f67890
  gz get https://gyazo.com/a1b2c3d4e5f67890a1b2c3d4e5f67890
  gz get "invoice screenshot"
  gz get a1b2c3d4e5f67890a1b2c3d4e5f67890 --embed --json
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

			img, err := client.Images().Get(ctx, id)
			if err != nil {
				return err
			}

			var dataURI string
			if embed {
				dataURI, err = client.EmbedDataURI(ctx, img.ContentURL())
				if err != nil {
					return fmt.Errorf("embedding capture content: %w", err)
				}
			}

			if isAgent(cmd) {
				return printJSON(cmd, agentfmt.ItemEnvelope{
					Kind: agentfmt.KindFromCommandPath(cmd.CommandPath()),
					Item: newEnrichedCapture(img, dataURI),
				})
			}
			if isJSON(cmd) {
				if embed {
					doc, err := embedJSON(img, dataURI)
					if err != nil {
						return err
					}
					return printJSON(cmd, doc)
				}
				return printJSON(cmd, img)
			}

			if embed {
				fmt.Fprintln(cmd.OutOrStdout(), dataURI)
				return nil
			}
			return printCaptureDetail(cmd, img)
		}),
	}

	cmd.Flags().BoolVar(&embed, "embed", false, "Inline the capture content as a base64 data URI")
	flagAlias(cmd.Flags(), "embed", "em")

	return cmd
}

func printCaptureDetail(cmd *cobra.Command, img *api.Image) error {
	w := newTabWriterFromCmd(cmd)
	fmt.Fprintf(w, "ID:\t%s\n", img.ImageID)
	if img.Type != "" {
		fmt.Fprintf(w, "Type:\t%s\n", img.Type)
	}
	if img.Metadata.Title != nil && *img.Metadata.Title != "" {
		fmt.Fprintf(w, "Title:\t%s\n", *img.Metadata.Title)
	}
	if img.Metadata.App != nil && *img.Metadata.App != "" {
		fmt.Fprintf(w, "App:\t%s\n", *img.Metadata.App)
	}
	if created := formatCreatedAt(img); created != "" {
		fmt.Fprintf(w, "Created:\t%s\n", created)
	}
	fmt.Fprintf(w, "Permalink:\t%s\n", img.Permalink())
	fmt.Fprintf(w, "Content:\t%s\n", img.ContentURL())
	if img.Metadata.URL != nil && *img.Metadata.URL != "" {
		fmt.Fprintf(w, "Page URL:\t%s\n", *img.Metadata.URL)
	}
	if img.Metadata.Desc != nil && *img.Metadata.Desc != "" {
		fmt.Fprintf(w, "Desc:\t%s\n", *img.Metadata.Desc)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if img.OCR != nil && img.OCR.Description != "" {
		label := "Recognized text"
		if img.OCR.Locale != "" {
			label = fmt.Sprintf("Recognized text (%s)", img.OCR.Locale)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s:\n%s\n", label, img.OCR.Description)
	}
	return nil
}

func formatCreatedAt(img *api.Image) string {
	if t := img.CreatedAtTime(); !t.IsZero() {
		return t.Local().Format("2006-01-02 15:04:05")
	}
	return img.CreatedAt
}

// embedJSON returns the capture document with the data URI attached, so
// plain JSON consumers get both without a shape change for other fields.
func embedJSON(img *api.Image, dataURI string) (map[string]any, error) {
	data, err := json.Marshal(img)
	if err != nil {
		return nil, err
	}
	doc := map[string]any{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	doc["embed"] = dataURI
	return doc, nil
}
