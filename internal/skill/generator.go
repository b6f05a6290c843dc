// Package skill provides workspace skill file generation for Claude agents.
package skill

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/gyazo/gyazo-cli/internal/api"
)

const skillTemplate = `---
name: gyazo-workspace
description: Workspace-specific context for the {{.AccountName}} Gyazo library
---

# {{.AccountName}} Gyazo Library

Auto-generated skill with library-specific context.

## Recent Captures

| ID | Title | Type | Captured |
|----|-------|------|----------|
{{- range .Captures}}
| {{.ImageID}} | {{.Title}} | {{.Type}} | {{.CreatedAt}} |
{{- end}}

## Capture Sources

Applications seen in this library: {{.AppsList}}

## Quick Commands

` + "```" + `bash
# Upload a screenshot with a title
gz upload shot.png --title "checkout bug"

# List recent captures
gz list --limit 20

# Get capture details (accepts URL or ID)
gz get {{if .FirstImageID}}{{.FirstImageID}}{{else}}<capture-id-or-url>{{end}}

# Download capture content
gz download <capture-id-or-url> -o shot.png

# Delete a capture without prompting
gz delete <capture-id> --yes
` + "```" + `
`

// captureRow is one line of the recent-captures table.
type captureRow struct {
	ImageID   string
	Title     string
	Type      string
	CreatedAt string
}

// WorkspaceData holds the data needed to generate a workspace skill.
type WorkspaceData struct {
	AccountName  string
	Captures     []captureRow
	AppsList     string
	FirstImageID string
}

// maxSkillCaptures caps the recent-captures table.
const maxSkillCaptures = 10

// GenerateWorkspaceSkill creates a workspace-specific skill file.
// It fetches library data from the API and writes a skill file to
// ~/.claude/skills/gyazo-workspace/SKILL.md
func GenerateWorkspaceSkill(ctx context.Context, client *api.Client, accountName string) error {
	data := WorkspaceData{AccountName: accountName}

	// Prefer the profile name over whatever the caller passed.
	if user, err := client.Users().Me(ctx); err == nil && user.Name != "" {
		data.AccountName = user.Name
	}
	if data.AccountName == "" {
		data.AccountName = "Gyazo"
	}

	// Fetch recent captures
	if images, err := client.Images().List(ctx); err == nil {
		apps := make(map[string]bool)
		for i, img := range images {
			if i < maxSkillCaptures {
				data.Captures = append(data.Captures, captureRow{
					ImageID:   img.ImageID,
					Title:     img.DisplayTitle(),
					Type:      img.Type,
					CreatedAt: img.CreatedAt,
				})
			}
			if img.Metadata.App != nil && strings.TrimSpace(*img.Metadata.App) != "" {
				apps[strings.TrimSpace(*img.Metadata.App)] = true
			}
		}
		if len(data.Captures) > 0 {
			data.FirstImageID = data.Captures[0].ImageID
		}
		names := make([]string, 0, len(apps))
		for name := range apps {
			names = append(names, name)
		}
		sort.Strings(names)
		data.AppsList = strings.Join(names, ", ")
	}
	if data.AppsList == "" {
		data.AppsList = "(none)"
	}

	// Generate skill file
	tmpl, err := template.New("skill").Parse(skillTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	// Create skill directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	skillDir := filepath.Join(homeDir, ".claude", "skills", "gyazo-workspace")
	if err := os.MkdirAll(skillDir, 0o755); err != nil {
		return fmt.Errorf("failed to create skill directory: %w", err)
	}

	// Write skill file
	skillPath := filepath.Join(skillDir, "SKILL.md")
	f, err := os.Create(skillPath)
	if err != nil {
		return fmt.Errorf("failed to create skill file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("failed to write skill: %w", err)
	}

	return nil
}

// SkillPath returns the path where the workspace skill is stored.
func SkillPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".claude", "skills", "gyazo-workspace", "SKILL.md"), nil
}
