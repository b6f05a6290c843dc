package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Nightfox palette.
var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#719cd6"))
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#719cd6"))
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("#2b3b51")).Foreground(lipgloss.Color("#cdcecf"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#738091"))
	dangerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#c94f6d"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#dbc074"))
	spinnerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#719cd6"))
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.showDetail {
		b.WriteString(m.renderDetail())
	} else {
		b.WriteString(m.renderList())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	parts := []string{headerStyle.Render(" Gyazo")}
	switch {
	case m.loading:
		parts = append(parts, m.spinner.View()+mutedStyle.Render(" fetching captures"))
	case m.loadErr != nil:
		parts = append(parts, dangerStyle.Render("ERROR")+" "+truncate(m.loadErr.Error(), 60))
	default:
		parts = append(parts, mutedStyle.Render(fmt.Sprintf("%d captures", len(m.captures))))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderList() string {
	if m.loading {
		return mutedStyle.Render("  Fetching captures...")
	}
	if m.loadErr != nil {
		return dangerStyle.Render("  Could not load captures.") + "\n" +
			mutedStyle.Render("  Press r to retry.")
	}
	if len(m.captures) == 0 {
		return mutedStyle.Render("  No captures in your library.")
	}

	var b strings.Builder
	end := m.offset + m.pageSize
	if end > len(m.captures) {
		end = len(m.captures)
	}
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(i))
		b.WriteString("\n")
	}
	if end < len(m.captures) {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  ... %d more", len(m.captures)-end)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderRow(i int) string {
	img := &m.captures[i]

	created := img.CreatedAt
	if t := img.CreatedAtTime(); !t.IsZero() {
		created = t.Local().Format("2006-01-02 15:04")
	}

	line := fmt.Sprintf(" %-12s  %-4s  %-44s  %s",
		truncate(img.ImageID, 12), img.Type, truncate(img.DisplayTitle(), 44), created)

	if i == m.selected {
		return selectedStyle.Render("▌" + line)
	}
	return " " + line
}

type detailRow struct {
	label string
	value string
}

func (m Model) renderDetail() string {
	img := m.currentCapture()
	if img == nil {
		return mutedStyle.Render("  Nothing selected.")
	}

	var b strings.Builder
	b.WriteString(accentStyle.Render("  " + img.DisplayTitle()))
	b.WriteString("\n\n")

	rows := []detailRow{
		{"ID", img.ImageID},
		{"Type", img.Type},
		{"Created", img.CreatedAt},
		{"Permalink", img.Permalink()},
		{"Content", img.ContentURL()},
	}
	if img.Metadata.App != nil && *img.Metadata.App != "" {
		rows = append(rows, detailRow{"App", *img.Metadata.App})
	}
	if img.Metadata.URL != nil && *img.Metadata.URL != "" {
		rows = append(rows, detailRow{"Source", *img.Metadata.URL})
	}
	if img.Metadata.Desc != nil && *img.Metadata.Desc != "" {
		rows = append(rows, detailRow{"Desc", *img.Metadata.Desc})
	}

	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %s %s\n", mutedStyle.Render(fmt.Sprintf("%-10s", row.label)), row.value))
	}

	if img.OCR != nil && img.OCR.Description != "" {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("  Recognized text"))
		b.WriteString("\n  ")
		b.WriteString(truncate(strings.ReplaceAll(img.OCR.Description, "\n", " "), 200))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderFooter() string {
	if m.status != "" {
		return statusStyle.Render(" " + m.status)
	}

	type hint struct{ key, desc string }
	var hints []hint
	if m.showDetail {
		hints = []hint{
			{"esc", "Back"},
			{"o", "Open"},
			{"y", "Copy"},
		}
	} else {
		hints = []hint{
			{"j/k", "Move"},
			{"enter", "Detail"},
			{"o", "Open"},
			{"y", "Copy"},
			{"d", "Delete"},
			{"r", "Refresh"},
			{"q", "Quit"},
		}
	}

	segments := make([]string, 0, len(hints))
	for _, h := range hints {
		segments = append(segments, accentStyle.Render(h.key)+mutedStyle.Render(":"+h.desc))
	}
	return " " + strings.Join(segments, "  ")
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
