// Package dryrun lets mutating commands describe what they would do
// instead of doing it.
package dryrun

import (
	"context"
	"fmt"
	"io"
)

type dryRunKey struct{}

// WithDryRun returns a context with dry-run mode enabled or disabled.
func WithDryRun(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, dryRunKey{}, enabled)
}

// IsEnabled reports whether dry-run mode is on in ctx.
func IsEnabled(ctx context.Context) bool {
	enabled, ok := ctx.Value(dryRunKey{}).(bool)
	return ok && enabled
}

// Field is one name/value pair of a previewed request. Fields keep their
// insertion order so previews render deterministically.
type Field struct {
	Name  string
	Value any
}

// Preview describes a mutation that was skipped under dry-run mode.
type Preview struct {
	Operation string
	Target    string
	Fields    []Field
	Warnings  []string
}

// AddField appends a name/value pair to the preview.
func (p *Preview) AddField(name string, value any) {
	p.Fields = append(p.Fields, Field{Name: name, Value: value})
}

// Write renders the preview.
func (p *Preview) Write(w io.Writer) {
	_, _ = fmt.Fprintf(w, "\n[DRY-RUN] Would %s %s\n", p.Operation, p.Target)

	for _, f := range p.Fields {
		_, _ = fmt.Fprintf(w, "  %s: %v\n", f.Name, f.Value)
	}

	for _, warning := range p.Warnings {
		_, _ = fmt.Fprintf(w, "  ! %s\n", warning)
	}

	_, _ = fmt.Fprintln(w, "No changes made (dry-run mode)")
}
