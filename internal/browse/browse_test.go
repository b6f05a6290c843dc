package browse

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gyazo/gyazo-cli/internal/api"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return next, cmd
}

func testCaptures(n int) []api.Image {
	images := make([]api.Image, 0, n)
	for i := 0; i < n; i++ {
		images = append(images, api.Image{
			ImageID:   fmt.Sprintf("cap%02d", i),
			Type:      "png",
			CreatedAt: "2024-03-10T12:00:00+0000",
		})
	}
	return images
}

func readyModel(t *testing.T, n int) Model {
	t.Helper()
	m := New(Options{PageSize: 10})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, capturesMsg(testCaptures(n)))
	return m
}

func TestNewDefaults(t *testing.T) {
	m := New(Options{})
	if m.pageSize != 20 {
		t.Errorf("pageSize = %d, want 20", m.pageSize)
	}
	if m.copyFormat != "url" {
		t.Errorf("copyFormat = %q, want url", m.copyFormat)
	}
	if !m.loading {
		t.Error("new model should start loading")
	}
}

func TestCapturesMsgStopsLoading(t *testing.T) {
	m := New(Options{})
	m, _ = update(t, m, capturesMsg(testCaptures(3)))
	if m.loading {
		t.Error("loading should be false after captures arrive")
	}
	if len(m.captures) != 3 {
		t.Errorf("captures = %d, want 3", len(m.captures))
	}
}

func TestNavigationClamps(t *testing.T) {
	m := readyModel(t, 3)

	m, _ = update(t, m, key("k"))
	if m.selected != 0 {
		t.Errorf("selected = %d after k at top, want 0", m.selected)
	}

	for i := 0; i < 5; i++ {
		m, _ = update(t, m, key("j"))
	}
	if m.selected != 2 {
		t.Errorf("selected = %d after j past end, want 2", m.selected)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.selected != 1 {
		t.Errorf("selected = %d after up, want 1", m.selected)
	}
}

func TestScrollWindow(t *testing.T) {
	m := New(Options{PageSize: 2})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, capturesMsg(testCaptures(5)))

	for i := 0; i < 3; i++ {
		m, _ = update(t, m, key("j"))
	}
	if m.selected != 3 || m.offset != 2 {
		t.Errorf("selected/offset = %d/%d, want 3/2", m.selected, m.offset)
	}

	m, _ = update(t, m, key("G"))
	if m.selected != 4 || m.offset != 3 {
		t.Errorf("selected/offset after G = %d/%d, want 4/3", m.selected, m.offset)
	}

	m, _ = update(t, m, key("g"))
	if m.selected != 0 || m.offset != 0 {
		t.Errorf("selected/offset after g = %d/%d, want 0/0", m.selected, m.offset)
	}
}

func TestEnterOpensDetailAndEscCloses(t *testing.T) {
	m := readyModel(t, 2)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.showDetail {
		t.Fatal("enter should open the detail pane")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showDetail {
		t.Error("esc should close the detail pane")
	}
}

func TestEnterOnEmptyList(t *testing.T) {
	m := readyModel(t, 0)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.showDetail {
		t.Error("enter with no captures should not open detail")
	}
}

func TestDeleteRequiresSecondPress(t *testing.T) {
	m := readyModel(t, 2)

	m, cmd := update(t, m, key("d"))
	if cmd != nil {
		t.Fatal("first d should not issue a delete")
	}
	if m.pendingDelete != "cap00" {
		t.Errorf("pendingDelete = %q, want cap00", m.pendingDelete)
	}
	if !strings.Contains(m.status, "Press d again") {
		t.Errorf("status = %q, want confirmation hint", m.status)
	}

	// Any other key disarms.
	m, _ = update(t, m, key("j"))
	if m.pendingDelete != "" {
		t.Errorf("pendingDelete = %q after j, want empty", m.pendingDelete)
	}

	m, _ = update(t, m, key("d"))
	m, cmd = update(t, m, key("d"))
	if cmd == nil {
		t.Fatal("second d should issue the delete")
	}
	if m.pendingDelete != "" {
		t.Errorf("pendingDelete = %q after confirm, want empty", m.pendingDelete)
	}
}

func TestDeletedMsgRemovesCapture(t *testing.T) {
	m := readyModel(t, 2)
	m, _ = update(t, m, key("j"))

	m, _ = update(t, m, deletedMsg{id: "cap01"})
	if len(m.captures) != 1 {
		t.Fatalf("captures = %d after delete, want 1", len(m.captures))
	}
	if m.selected != 0 {
		t.Errorf("selected = %d after deleting last row, want 0", m.selected)
	}
	if m.status != "Deleted cap01" {
		t.Errorf("status = %q, want Deleted cap01", m.status)
	}
}

func TestDeleteFailureKeepsCapture(t *testing.T) {
	m := readyModel(t, 2)

	m, _ = update(t, m, deletedMsg{id: "cap00", err: errors.New("boom")})
	if len(m.captures) != 2 {
		t.Errorf("captures = %d after failed delete, want 2", len(m.captures))
	}
	if !strings.Contains(m.status, "Delete failed") {
		t.Errorf("status = %q, want delete failure", m.status)
	}
}

func TestCopyStatusMessages(t *testing.T) {
	m := readyModel(t, 1)

	m, _ = update(t, m, copiedMsg{})
	if m.status != "Copied to clipboard" {
		t.Errorf("status = %q, want copy confirmation", m.status)
	}

	m, _ = update(t, m, copiedMsg{err: errors.New("no clipboard")})
	if !strings.Contains(m.status, "Copy failed") {
		t.Errorf("status = %q, want copy failure", m.status)
	}
}

func TestFetchErrorShowsRetryHint(t *testing.T) {
	m := New(Options{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, fetchErrMsg{err: errors.New("connection refused")})

	if m.loading {
		t.Error("loading should stop on fetch error")
	}
	view := m.View()
	if !strings.Contains(view, "Press r to retry") {
		t.Errorf("view missing retry hint:\n%s", view)
	}
}

func TestRefreshKeyReloads(t *testing.T) {
	m := readyModel(t, 1)
	m, cmd := update(t, m, key("r"))
	if !m.loading {
		t.Error("r should set loading")
	}
	if cmd == nil {
		t.Error("r should issue a fetch")
	}
}

func TestOpenKeyProducesOpenedMsg(t *testing.T) {
	m := readyModel(t, 1)
	_, cmd := update(t, m, key("o"))
	if cmd == nil {
		t.Fatal("o should issue an open")
	}

	// Browser launch is suppressed under go test, so the command is safe
	// to execute directly.
	raw := cmd()
	msg, ok := raw.(openedMsg)
	if !ok {
		t.Fatalf("open command returned %T, want openedMsg", raw)
	}
	if msg.err != nil {
		t.Errorf("openedMsg.err = %v", msg.err)
	}
	if msg.url != "https://gyazo.com/cap00" {
		t.Errorf("openedMsg.url = %q", msg.url)
	}
}

func TestViewRendersSelection(t *testing.T) {
	m := readyModel(t, 3)
	view := m.View()

	if !strings.Contains(view, "cap00") {
		t.Errorf("view missing first capture:\n%s", view)
	}
	if !strings.Contains(view, "▌") {
		t.Errorf("view missing selection marker:\n%s", view)
	}
	if !strings.Contains(view, "3 captures") {
		t.Errorf("view missing capture count:\n%s", view)
	}
}

func TestViewDetailPane(t *testing.T) {
	m := readyModel(t, 1)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	view := m.View()
	if !strings.Contains(view, "https://gyazo.com/cap00") {
		t.Errorf("detail view missing permalink:\n%s", view)
	}
	if !strings.Contains(view, "Permalink") {
		t.Errorf("detail view missing field label:\n%s", view)
	}
}

func TestQuitKeys(t *testing.T) {
	m := readyModel(t, 1)
	_, cmd := update(t, m, key("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("q returned %T, want tea.QuitMsg", cmd())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"this is a longer string", 10, "this is..."},
		{"abc", 2, "ab"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
