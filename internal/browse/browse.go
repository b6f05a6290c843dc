// Package browse provides the interactive capture picker TUI.
package browse

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gyazo/gyazo-cli/internal/api"
	"github.com/gyazo/gyazo-cli/internal/browser"
	"github.com/gyazo/gyazo-cli/internal/cli"
)

// requestTimeout bounds each API call issued from the picker.
const requestTimeout = 30 * time.Second

// Options configures the picker.
type Options struct {
	Context    context.Context
	Client     *api.Client
	PageSize   int
	CopyFormat string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx        context.Context
	client     *api.Client
	pageSize   int
	copyFormat string

	// UI state
	spinner spinner.Model
	width   int
	height  int
	ready   bool

	// Data state
	loading  bool
	loadErr  error
	captures []api.Image

	// List state
	selected int
	offset   int

	// Detail and transient state
	showDetail    bool
	pendingDelete string
	status        string
}

// New creates a new picker model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pageSize := opts.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	copyFormat := opts.CopyFormat
	if copyFormat == "" {
		copyFormat = "url"
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return Model{
		ctx:        ctx,
		client:     opts.Client,
		pageSize:   pageSize,
		copyFormat: copyFormat,
		spinner:    sp,
		loading:    true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.spinner.Tick,
		fetchCapturesCmd(m.ctx, m.client),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case capturesMsg:
		m.loading = false
		m.loadErr = nil
		m.captures = msg
		m.clampSelection()
		return m, nil

	case fetchErrMsg:
		m.loading = false
		m.loadErr = msg.err
		return m, nil

	case deletedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Delete failed: %v", msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("Deleted %s", msg.id)
		m.removeCapture(msg.id)
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Copy failed: %v", msg.err)
		} else {
			m.status = "Copied to clipboard"
		}
		return m, nil

	case openedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Open failed: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Opened %s", msg.url)
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// A pending delete survives only an immediate second d.
	if m.pendingDelete != "" && key != "d" {
		m.pendingDelete = ""
	}
	m.status = ""

	if m.showDetail {
		switch key {
		case "ctrl+c":
			return m, tea.Quit
		case "q", "esc", "enter":
			m.showDetail = false
		case "o":
			return m.openSelected()
		case "y":
			return m.copySelected()
		}
		return m, nil
	}

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "j", "down":
		m.moveSelection(1)

	case "k", "up":
		m.moveSelection(-1)

	case "g", "home":
		m.selected = 0
		m.offset = 0

	case "G", "end":
		if len(m.captures) > 0 {
			m.selected = len(m.captures) - 1
			m.ensureVisible()
		}

	case "enter":
		if m.currentCapture() != nil {
			m.showDetail = true
		}

	case "o":
		return m.openSelected()

	case "y":
		return m.copySelected()

	case "d":
		return m.deleteSelected()

	case "r":
		if !m.loading {
			m.loading = true
			m.loadErr = nil
			return m, tea.Batch(m.spinner.Tick, fetchCapturesCmd(m.ctx, m.client))
		}
	}

	return m, nil
}

// openSelected launches the browser on the selected capture's page.
func (m Model) openSelected() (tea.Model, tea.Cmd) {
	img := m.currentCapture()
	if img == nil {
		return m, nil
	}
	return m, openCmd(img.Permalink())
}

// copySelected puts the selected capture on the clipboard in the
// configured copy format.
func (m Model) copySelected() (tea.Model, tea.Cmd) {
	img := m.currentCapture()
	if img == nil {
		return m, nil
	}
	text := cli.CopyText(m.copyFormat, img.DisplayTitle(), img.Permalink(), img.ContentURL())
	return m, copyCmd(text)
}

// deleteSelected arms deletion on first press and deletes on the second.
func (m Model) deleteSelected() (tea.Model, tea.Cmd) {
	img := m.currentCapture()
	if img == nil {
		return m, nil
	}
	if m.pendingDelete != img.ImageID {
		m.pendingDelete = img.ImageID
		m.status = fmt.Sprintf("Press d again to delete %s", img.ImageID)
		return m, nil
	}
	m.pendingDelete = ""
	m.status = fmt.Sprintf("Deleting %s...", img.ImageID)
	return m, deleteCaptureCmd(m.ctx, m.client, img.ImageID)
}

// currentCapture returns the selected capture, or nil when the list is
// empty.
func (m Model) currentCapture() *api.Image {
	if m.selected < 0 || m.selected >= len(m.captures) {
		return nil
	}
	return &m.captures[m.selected]
}

func (m *Model) moveSelection(delta int) {
	if len(m.captures) == 0 {
		return
	}
	m.selected += delta
	m.clampSelection()
}

func (m *Model) clampSelection() {
	if len(m.captures) == 0 {
		m.selected = 0
		m.offset = 0
		return
	}
	if m.selected < 0 {
		m.selected = 0
	}
	if m.selected >= len(m.captures) {
		m.selected = len(m.captures) - 1
	}
	m.ensureVisible()
}

// ensureVisible scrolls the window so the selection stays on screen.
func (m *Model) ensureVisible() {
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+m.pageSize {
		m.offset = m.selected - m.pageSize + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) removeCapture(id string) {
	for i := range m.captures {
		if m.captures[i].ImageID == id {
			m.captures = append(m.captures[:i], m.captures[i+1:]...)
			break
		}
	}
	m.clampSelection()
	if len(m.captures) == 0 {
		m.showDetail = false
	}
}

// Messages

type capturesMsg []api.Image

type fetchErrMsg struct{ err error }

type deletedMsg struct {
	id  string
	err error
}

type copiedMsg struct{ err error }

type openedMsg struct {
	url string
	err error
}

// Commands

func fetchCapturesCmd(ctx context.Context, client *api.Client) tea.Cmd {
	return func() tea.Msg {
		fetchCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		images, err := client.Images().List(fetchCtx)
		if err != nil {
			return fetchErrMsg{err: err}
		}
		return capturesMsg(images)
	}
}

func deleteCaptureCmd(ctx context.Context, client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		deleteCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		_, err := client.Images().Delete(deleteCtx, id)
		return deletedMsg{id: id, err: err}
	}
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(text)}
	}
}

func openCmd(url string) tea.Cmd {
	return func() tea.Msg {
		return openedMsg{url: url, err: browser.Open(url)}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
