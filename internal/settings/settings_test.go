package settings_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gyazo/gyazo-cli/internal/settings"
)

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")

	s, err := settings.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != settings.Default() {
		t.Fatalf("missing file should yield defaults, got %+v", s)
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")

	want := settings.Settings{
		DefaultAccessPolicy: "only_me",
		DefaultOutput:       "json",
		CopyFormat:          "markdown",
		BrowsePageSize:      50,
	}
	if err := settings.Save(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := settings.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	content := "default_access_policy = \"only_me\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := settings.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.DefaultAccessPolicy != "only_me" {
		t.Errorf("DefaultAccessPolicy = %q", s.DefaultAccessPolicy)
	}
	if s.DefaultOutput != "text" || s.CopyFormat != "url" || s.BrowsePageSize != 20 {
		t.Errorf("unset keys should keep defaults: %+v", s)
	}
}

func TestLoad_UnknownKeysIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	content := "copy_format = \"html\"\nfrom_the_future = true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := settings.Load(path)
	if err != nil {
		t.Fatalf("unknown keys must not fail the load: %v", err)
	}
	if s.CopyFormat != "html" {
		t.Errorf("CopyFormat = %q", s.CopyFormat)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte("copy_format = ["), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := settings.Load(path)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if s != settings.Default() {
		t.Fatalf("malformed file should still yield usable defaults, got %+v", s)
	}
}

func TestLoad_InvalidValuesNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	content := "default_output = \"yaml\"\nbrowse_page_size = -3\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := settings.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.DefaultOutput != "text" {
		t.Errorf("unrecognized output should fall back, got %q", s.DefaultOutput)
	}
	if s.BrowsePageSize != 20 {
		t.Errorf("out-of-range page size should fall back, got %d", s.BrowsePageSize)
	}
}

func TestSave_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "settings.toml")

	if err := settings.Save(path, settings.Default()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("settings file not created: %v", err)
	}
}

func TestSettings_SetAndGet(t *testing.T) {
	s := settings.Default()

	tests := []struct {
		key   string
		value string
	}{
		{settings.KeyDefaultAccessPolicy, "only_me"},
		{settings.KeyDefaultOutput, "agent"},
		{settings.KeyCopyFormat, "markdown"},
		{settings.KeyBrowsePageSize, "35"},
	}

	for _, tt := range tests {
		if err := s.Set(tt.key, tt.value); err != nil {
			t.Fatalf("Set(%s, %s): %v", tt.key, tt.value, err)
		}
		got, err := s.Get(tt.key)
		if err != nil {
			t.Fatalf("Get(%s): %v", tt.key, err)
		}
		if got != tt.value {
			t.Errorf("Get(%s) = %q, want %q", tt.key, got, tt.value)
		}
	}
}

func TestSettings_SetRejectsBadValues(t *testing.T) {
	s := settings.Default()

	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{"bad policy", settings.KeyDefaultAccessPolicy, "everyone", "allowed: anyone, only_me"},
		{"bad output", settings.KeyDefaultOutput, "xml", "allowed: text, json, jsonl, agent"},
		{"bad copy format", settings.KeyCopyFormat, "bbcode", "allowed: url, markdown, html"},
		{"page size not a number", settings.KeyBrowsePageSize, "lots", "not a number"},
		{"page size zero", settings.KeyBrowsePageSize, "0", "allowed: 1-100"},
		{"page size too big", settings.KeyBrowsePageSize, "500", "allowed: 1-100"},
		{"unknown key", "theme", "dark", "unknown setting"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Set(tt.key, tt.value)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.want)
			}
		})
	}

	if s != settings.Default() {
		t.Errorf("failed sets must not mutate settings: %+v", s)
	}
}

func TestKeys_StableAndComplete(t *testing.T) {
	keys := settings.Keys()
	if len(keys) != 4 {
		t.Fatalf("expected 4 keys, got %v", keys)
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Fatalf("keys not sorted: %v", keys)
		}
	}

	s := settings.Default()
	for _, key := range keys {
		if _, err := s.Get(key); err != nil {
			t.Errorf("Get(%s): %v", key, err)
		}
	}
}
