package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gyazo/gyazo-cli/internal/schema"
)

func newSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "schema",
		Aliases: []string{"sc"},
		Short:   "Discover API record schemas",
		Long:    "List and show schema definitions for the record shapes this CLI prints",
		Example: strings.TrimSpace(`
  # List available schemas
  gz schema list

  # Show the capture schema
  gz schema show capture

  # Show schema as JSON (for programmatic use)
  gz schema show capture -o json
`),
	}

	cmd.AddCommand(newSchemaListCmd())
	cmd.AddCommand(newSchemaShowCmd())

	return cmd
}

func newSchemaListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List available schemas",
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			names := schema.List()

			if isJSON(cmd) {
				type schemaSummary struct {
					Name        string `json:"name"`
					Description string `json:"description"`
				}
				summaries := make([]schemaSummary, 0, len(names))
				for _, name := range names {
					s, _ := schema.Get(name)
					summaries = append(summaries, schemaSummary{
						Name:        name,
						Description: s.Description,
					})
				}
				return printJSON(cmd, summaries)
			}

			if len(names) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No schemas registered")
				return nil
			}

			w := newTabWriterFromCmd(cmd)
			_, _ = fmt.Fprintln(w, "RECORD\tDESCRIPTION")
			for _, name := range names {
				s, _ := schema.Get(name)
				desc := s.Description
				if len(desc) > 60 {
					desc = desc[:57] + "..."
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\n", name, desc)
			}
			return w.Flush()
		}),
	}
}

func newSchemaShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <record>",
		Short: "Show schema for a record type",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			matches := make([]string, 0, 5)
			for _, name := range schema.List() {
				if strings.HasPrefix(name, toComplete) {
					matches = append(matches, name)
				}
			}
			return matches, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			name := args[0]

			s, err := schema.Get(name)
			if err != nil {
				return fmt.Errorf("schema %q not found; available: %s", name, strings.Join(schema.List(), ", "))
			}

			if isJSON(cmd) {
				return printJSON(cmd, s)
			}

			printSchemaText(cmd.OutOrStdout(), name, s)
			return nil
		}),
	}
}

func printSchemaText(out io.Writer, name string, s *schema.Schema) {
	_, _ = fmt.Fprintf(out, "Schema: %s\n", name)
	_, _ = fmt.Fprintf(out, "Type: %s\n", s.Type)
	if s.Description != "" {
		_, _ = fmt.Fprintf(out, "Description: %s\n", s.Description)
	}
	_, _ = fmt.Fprintln(out)

	if len(s.Properties) > 0 {
		_, _ = fmt.Fprintln(out, "Fields:")

		propNames := make([]string, 0, len(s.Properties))
		for propName := range s.Properties {
			propNames = append(propNames, propName)
		}
		sort.Strings(propNames)

		requiredSet := make(map[string]bool)
		for _, req := range s.Required {
			requiredSet[req] = true
		}

		for _, propName := range propNames {
			printSchemaField(out, propName, s.Properties[propName], requiredSet[propName], "  ")
		}
	}

	if len(s.Required) > 0 {
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintf(out, "Required: %s\n", strings.Join(s.Required, ", "))
	}
}

func printSchemaField(out io.Writer, name string, s *schema.Schema, required bool, indent string) {
	reqMarker := ""
	if required {
		reqMarker = " (required)"
	}

	typeName := s.Type
	if s.Items != nil {
		typeName = fmt.Sprintf("array<%s>", s.Items.Type)
	}

	_, _ = fmt.Fprintf(out, "%s%s: %s%s\n", indent, name, typeName, reqMarker)

	if s.Description != "" {
		_, _ = fmt.Fprintf(out, "%s  %s\n", indent, s.Description)
	}

	if len(s.Enum) > 0 {
		_, _ = fmt.Fprintf(out, "%s  Allowed values: %s\n", indent, strings.Join(s.Enum, ", "))
	}
}
