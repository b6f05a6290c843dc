// Package settings persists non-secret CLI defaults.
//
// Settings live in settings.toml under the user config directory,
// separate from credentials: this file is safe to copy between machines
// and edit by hand. A missing file means defaults; unknown keys are
// ignored.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Settings holds the tunable CLI defaults.
type Settings struct {
	DefaultAccessPolicy string `toml:"default_access_policy"`
	DefaultOutput       string `toml:"default_output"`
	CopyFormat          string `toml:"copy_format"`
	BrowsePageSize      int    `toml:"browse_page_size"`
}

const (
	KeyDefaultAccessPolicy = "default_access_policy"
	KeyDefaultOutput       = "default_output"
	KeyCopyFormat          = "copy_format"
	KeyBrowsePageSize      = "browse_page_size"
)

var allowedValues = map[string][]string{
	KeyDefaultAccessPolicy: {"anyone", "only_me"},
	KeyDefaultOutput:       {"text", "json", "jsonl", "agent"},
	KeyCopyFormat:          {"url", "markdown", "html"},
}

const maxBrowsePageSize = 100

// Default returns the settings used when no file exists.
func Default() Settings {
	return Settings{
		DefaultAccessPolicy: "anyone",
		DefaultOutput:       "text",
		CopyFormat:          "url",
		BrowsePageSize:      20,
	}
}

// DefaultPath returns the settings file location under the user config
// directory.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "gyazo-cli", "settings.toml"), nil
}

// Load reads settings from path. A missing file yields defaults with a
// nil error; a malformed file yields defaults with the parse error so
// callers can warn without losing a working configuration.
func Load(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("read settings: %w", err)
	}

	if err := toml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parse settings: %w", err)
	}

	s.normalize()
	return s, nil
}

// Save writes settings to path, creating parent directories as needed.
func Save(path string, s Settings) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// normalize replaces blank or out-of-range values with defaults so a
// partially filled file still behaves.
func (s *Settings) normalize() {
	def := Default()
	if !isAllowed(KeyDefaultAccessPolicy, s.DefaultAccessPolicy) {
		s.DefaultAccessPolicy = def.DefaultAccessPolicy
	}
	if !isAllowed(KeyDefaultOutput, s.DefaultOutput) {
		s.DefaultOutput = def.DefaultOutput
	}
	if !isAllowed(KeyCopyFormat, s.CopyFormat) {
		s.CopyFormat = def.CopyFormat
	}
	if s.BrowsePageSize < 1 || s.BrowsePageSize > maxBrowsePageSize {
		s.BrowsePageSize = def.BrowsePageSize
	}
}

func isAllowed(key, value string) bool {
	for _, v := range allowedValues[key] {
		if v == value {
			return true
		}
	}
	return false
}

// Keys returns the known setting keys in stable order.
func Keys() []string {
	keys := []string{
		KeyDefaultAccessPolicy,
		KeyDefaultOutput,
		KeyCopyFormat,
		KeyBrowsePageSize,
	}
	sort.Strings(keys)
	return keys
}

// Get returns the current value of key as a string.
func (s Settings) Get(key string) (string, error) {
	switch key {
	case KeyDefaultAccessPolicy:
		return s.DefaultAccessPolicy, nil
	case KeyDefaultOutput:
		return s.DefaultOutput, nil
	case KeyCopyFormat:
		return s.CopyFormat, nil
	case KeyBrowsePageSize:
		return strconv.Itoa(s.BrowsePageSize), nil
	default:
		return "", unknownKeyError(key)
	}
}

// Set validates and assigns value to key.
func (s *Settings) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case KeyDefaultAccessPolicy, KeyDefaultOutput, KeyCopyFormat:
		if !isAllowed(key, value) {
			return fmt.Errorf("invalid value %q for %s (allowed: %s)",
				value, key, strings.Join(allowedValues[key], ", "))
		}
	case KeyBrowsePageSize:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value %q for %s: not a number", value, key)
		}
		if n < 1 || n > maxBrowsePageSize {
			return fmt.Errorf("invalid value %d for %s (allowed: 1-%d)", n, key, maxBrowsePageSize)
		}
		s.BrowsePageSize = n
		return nil
	default:
		return unknownKeyError(key)
	}

	switch key {
	case KeyDefaultAccessPolicy:
		s.DefaultAccessPolicy = value
	case KeyDefaultOutput:
		s.DefaultOutput = value
	case KeyCopyFormat:
		s.CopyFormat = value
	}
	return nil
}

func unknownKeyError(key string) error {
	return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(Keys(), ", "))
}
