package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gyazo/gyazo-cli/internal/api"
	"github.com/gyazo/gyazo-cli/internal/urlparse"
)

func newOembedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "oembed <id|url>",
		Short: "Show embed metadata for a capture",
		Long: strings.TrimSpace(`
Look up oEmbed metadata (provider, dimensions, content URL) for a capture
page. Accepts a capture ID or any gyazo.com URL; the page URL is derived
when needed.
`),
		Example: strings.TrimSpace(`
  gz oembed a1b2c3d4e5f67890a1b2c3d4e5f67890
  gz oembed https://gyazo.com/a1b2c3d4e5f67890a1b2c3d4e5f67890 --json
`),
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeCaptureIDs,
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			client, err := getClient()
			if err != nil {
				return err
			}

			pageURL, err := oembedPageURL(args[0])
			if err != nil {
				return err
			}
			result, err := client.Oembed().Get(ctx, pageURL)
			if err != nil {
				return err
			}

			if isJSON(cmd) {
				return printJSON(cmd, result)
			}

			w := newTabWriterFromCmd(cmd)
			fmt.Fprintf(w, "Type:\t%s\n", result.Type)
			if result.ProviderName != "" {
				fmt.Fprintf(w, "Provider:\t%s\n", result.ProviderName)
			}
			fmt.Fprintf(w, "URL:\t%s\n", result.URL)
			if result.Width > 0 || result.Height > 0 {
				fmt.Fprintf(w, "Size:\t%dx%d\n", result.Width, result.Height)
			}
			return w.Flush()
		}),
	}

	return cmd
}

// oembedPageURL normalizes an argument to the capture page URL the embed
// endpoint expects. Content and thumbnail URLs are converted to the page
// form; unsupported hosts surface the parse error.
func oembedPageURL(arg string) (string, error) {
	if strings.HasPrefix(arg, api.OembedURLPrefix) {
		return arg, nil
	}
	id, err := urlparse.ExtractID(arg)
	if err != nil {
		return "", err
	}
	return api.OembedURLPrefix + id, nil
}
