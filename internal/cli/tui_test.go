package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cutstack/cutstack/pkg/imposition"
)

func mustPlan(t *testing.T, pages, perSide int) *imposition.Plan {
	t.Helper()
	plan, err := imposition.Impose(pages, perSide)
	if err != nil {
		t.Fatalf("Impose(%d, %d): %v", pages, perSide, err)
	}
	return plan
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSheetModelNavigation(t *testing.T) {
	m := NewSheetModel(mustPlan(t, 8, 2))

	// Right moves forward, bounded by the sheet count.
	next, _ := m.Update(keyMsg("l"))
	m = next.(SheetModel)
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.Cursor)
	}
	next, _ = m.Update(keyMsg("l"))
	m = next.(SheetModel)
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1 (clamped at last sheet)", m.Cursor)
	}

	// Left moves back, bounded at zero.
	next, _ = m.Update(keyMsg("h"))
	m = next.(SheetModel)
	next, _ = m.Update(keyMsg("h"))
	m = next.(SheetModel)
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.Cursor)
	}
}

func TestSheetModelFlipSide(t *testing.T) {
	m := NewSheetModel(mustPlan(t, 8, 2))

	next, _ := m.Update(keyMsg("f"))
	m = next.(SheetModel)
	if !m.Back {
		t.Error("flip should show the back side")
	}

	view := m.View()
	if !strings.Contains(view, "back") {
		t.Error("view should name the back side")
	}
}

func TestSheetModelViewShowsPages(t *testing.T) {
	m := NewSheetModel(mustPlan(t, 8, 2))
	view := m.View()

	// Sheet 1 front of an 8-page 2-up plan holds pages 1 and 3.
	for _, page := range []string{"1", "3"} {
		if !strings.Contains(view, page) {
			t.Errorf("view missing page %s", page)
		}
	}
	if !strings.Contains(view, "1×2") {
		t.Error("view should show the grid")
	}
}

func TestSheetModelBlankCell(t *testing.T) {
	m := NewSheetModel(mustPlan(t, 7, 2))
	m.Cursor = 1
	m.Back = true

	if !strings.Contains(m.View(), "—") {
		t.Error("padded slot should render as a dash")
	}
}

func TestSheetModelQuit(t *testing.T) {
	m := NewSheetModel(mustPlan(t, 4, 2))

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
}
