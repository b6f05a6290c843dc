package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestNormalizeEnum(t *testing.T) {
	policies := []string{"anyone", "only_me"}

	tests := []struct {
		input string
		want  string
	}{
		{"anyone", "anyone"},
		{"only_me", "only_me"},
		{"only", "only_me"},
		{"a", "anyone"},
		{" ANYONE ", "anyone"},
	}

	for _, tt := range tests {
		got, err := normalizeEnum("access policy", tt.input, policies)
		if err != nil {
			t.Errorf("normalizeEnum(%q) returned error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("normalizeEnum(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeEnumInvalid(t *testing.T) {
	policies := []string{"anyone", "only_me"}

	_, err := normalizeEnum("access policy", "everyone", policies)
	if err == nil {
		t.Fatal("expected error for unknown value")
	}
	if !strings.Contains(err.Error(), `invalid access policy "everyone"`) {
		t.Errorf("unexpected error: %v", err)
	}
	if !strings.Contains(err.Error(), "must be one of anyone, only_me") {
		t.Errorf("expected allowed values in error, got: %v", err)
	}

	_, err = normalizeEnum("access policy", "", policies)
	if err == nil {
		t.Error("expected error for empty value")
	}
}

func TestNormalizeEnumAmbiguous(t *testing.T) {
	_, err := normalizeEnum("output", "js", []string{"json", "jsonl"})
	if err == nil {
		t.Fatal("expected error for ambiguous prefix")
	}
	if !strings.Contains(err.Error(), `ambiguous output "js": matches json, jsonl`) {
		t.Errorf("unexpected error: %v", err)
	}

	// An exact match wins even when it prefixes another value.
	got, err := normalizeEnum("output", "json", []string{"json", "jsonl"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "json" {
		t.Errorf("expected exact match json, got %q", got)
	}
}

func TestLoadAtValue(t *testing.T) {
	got, err := loadAtValue("plain value")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "plain value" {
		t.Errorf("expected passthrough, got %q", got)
	}

	path := filepath.Join(t.TempDir(), "desc.txt")
	if err := os.WriteFile(path, []byte("from a file"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	got, err = loadAtValue("@" + path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "from a file" {
		t.Errorf("expected file contents, got %q", got)
	}

	_, err = loadAtValue("@/no/such/file.txt")
	if err == nil {
		t.Error("expected error for missing file")
	} else if !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("unexpected error: %v", err)
	}

	_, err = loadAtValue("@")
	if err == nil {
		t.Error("expected error for bare @")
	} else if !strings.Contains(err.Error(), "missing path") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFlagAlias(t *testing.T) {
	cmd := &cobra.Command{Use: "x", Run: func(*cobra.Command, []string) {}}
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	var output string
	cmd.Flags().StringVar(&output, "output", "text", "")
	flagAlias(cmd.Flags(), "output", "out")

	alias := cmd.Flags().Lookup("out")
	if alias == nil {
		t.Fatal("alias flag not registered")
	}
	if !alias.Hidden {
		t.Error("alias should be hidden")
	}
	if ann := alias.Annotations["alias-of"]; len(ann) != 1 || ann[0] != "output" {
		t.Errorf("alias annotation = %v, want [output]", ann)
	}

	cmd.SetArgs([]string{"--out", "json"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if output != "json" {
		t.Errorf("alias did not set canonical value, got %q", output)
	}
	if !flagOrAliasChanged(cmd, "output") {
		t.Error("flagOrAliasChanged should report the alias as a change")
	}
	if !anyFlagChanged(cmd, "limit", "output") {
		t.Error("anyFlagChanged should find the changed flag")
	}
}

func TestFlagOrAliasChangedUntouched(t *testing.T) {
	cmd := &cobra.Command{Use: "x", Run: func(*cobra.Command, []string) {}}
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	var output string
	cmd.Flags().StringVar(&output, "output", "text", "")
	flagAlias(cmd.Flags(), "output", "out")

	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if flagOrAliasChanged(cmd, "output") {
		t.Error("untouched flag should not report as changed")
	}
	if anyFlagChanged(cmd, "output", "limit") {
		t.Error("anyFlagChanged should be false when nothing was set")
	}
}

func TestResolveCacheDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GYAZO_CACHE_DIR", dir)

	if got := resolveCacheDir(); got != dir {
		t.Errorf("resolveCacheDir() = %q, want %q", got, dir)
	}
}
