package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var apiMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
	http.MethodHead:   true,
}

func newAPICmd() *cobra.Command {
	var (
		fields  []string
		include bool
	)

	cmd := &cobra.Command{
		Use:   "api <method> <path>",
		Short: "Make an authenticated API request",
		Long: strings.TrimSpace(`
Send a raw authenticated request to the API and print the response body.
Useful for endpoints the CLI does not cover yet. Query parameters are
passed with repeated --field key=value flags.
`),
		Example: strings.TrimSpace(`
  gz api GET /api/images
  gz api GET /api/images -f per_page=10
  gz api DELETE /api/images/a1b2c3d4e5f67890a1b2c3d4e5f67890
  gz api GET /api/users/me --include
`),
		Args: cobra.ExactArgs(2),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			method := strings.ToUpper(args[0])
			if !apiMethods[method] {
				return fmt.Errorf("invalid argument %q: expected one of GET, POST, PUT, PATCH, DELETE, HEAD", args[0])
			}

			query := url.Values{}
			for _, field := range fields {
				key, value, ok := strings.Cut(field, "=")
				if !ok || key == "" {
					return fmt.Errorf("invalid argument %q for --field: expected key=value", field)
				}
				query.Add(key, value)
			}

			client, err := getClient()
			if err != nil {
				return err
			}

			body, headers, status, err := client.DoRaw(ctx, method, args[1], query)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if include {
				fmt.Fprintf(out, "HTTP %d\n", status)
				names := make([]string, 0, len(headers))
				for name := range headers {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					for _, value := range headers[name] {
						fmt.Fprintf(out, "%s: %s\n", name, value)
					}
				}
				fmt.Fprintln(out)
			}

			if len(body) == 0 {
				return nil
			}
			var decoded any
			if err := json.Unmarshal(body, &decoded); err == nil {
				return printJSON(cmd, decoded)
			}
			_, err = out.Write(body)
			return err
		}),
	}

	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "Query parameter as key=value (repeatable)")
	cmd.Flags().BoolVarP(&include, "include", "i", false, "Print the response status and headers")
	flagAlias(cmd.Flags(), "field", "fd")

	return cmd
}
