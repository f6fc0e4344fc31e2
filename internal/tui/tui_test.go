package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gersh-io/gersh/internal/gerrit"
)

func testReviews() []*gerrit.Review {
	return []*gerrit.Review{
		{
			Project:       "tools/gersh",
			Branch:        "master",
			Number:        101,
			Subject:       "Add resumable pagination",
			Owner:         gerrit.Account{Name: "Ann Author", Email: "ann@example.com"},
			Status:        "NEW",
			URL:           "https://review.example.com/101",
			CommitMessage: "Add resumable pagination\n\nPage through results.",
			LastUpdated:   time.Date(2016, 3, 7, 12, 0, 0, 0, time.UTC),
			SortKey:       "sk101",
		},
		{
			Project:     "tools/gersh",
			Branch:      "master",
			Number:      102,
			Subject:     "Fix option rendering",
			Owner:       gerrit.Account{Username: "bob"},
			Status:      "MERGED",
			LastUpdated: time.Date(2016, 3, 8, 12, 0, 0, 0, time.UTC),
			SortKey:     "sk102",
		},
	}
}

func setupModel(t *testing.T) Model {
	t.Helper()
	m := New(testReviews())
	newM, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return newM.(Model)
}

func TestModelInit(t *testing.T) {
	m := setupModel(t)

	if m.index != 0 {
		t.Errorf("expected index 0, got %d", m.index)
	}
	if len(m.lines) == 0 {
		t.Error("expected detail lines to be rendered")
	}
	if m.width != 120 || m.height != 40 {
		t.Errorf("expected window size to be recorded, got %dx%d", m.width, m.height)
	}
}

func TestNavigation(t *testing.T) {
	m := setupModel(t)

	newM, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = newM.(Model)
	if m.index != 1 {
		t.Errorf("expected index 1 after down, got %d", m.index)
	}

	// Past the end — should stay
	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = newM.(Model)
	if m.index != 1 {
		t.Errorf("expected index 1 at end, got %d", m.index)
	}

	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	m = newM.(Model)
	if m.index != 0 {
		t.Errorf("expected index 0 after up, got %d", m.index)
	}

	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	m = newM.(Model)
	if m.index != 1 {
		t.Errorf("expected index 1 after G, got %d", m.index)
	}

	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	m = newM.(Model)
	if m.index != 0 {
		t.Errorf("expected index 0 after g, got %d", m.index)
	}
}

func TestSelectionResetsScroll(t *testing.T) {
	m := setupModel(t)

	newM, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = newM.(Model)
	if m.scrollOffset != 1 {
		t.Errorf("expected scrollOffset 1 after space, got %d", m.scrollOffset)
	}

	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = newM.(Model)
	if m.scrollOffset != 0 {
		t.Errorf("expected scrollOffset reset on selection, got %d", m.scrollOffset)
	}
}

func TestViewRenders(t *testing.T) {
	m := setupModel(t)

	view := m.View()
	if view == "" {
		t.Error("expected non-empty view")
	}
	if !strings.Contains(view, "Add resumable pagination") {
		t.Error("expected view to contain the selected subject")
	}
	if !strings.Contains(view, "tools/gersh") {
		t.Error("expected view to contain the project")
	}
	if !strings.Contains(view, "1/2 reviews") {
		t.Error("expected status bar with review count")
	}
}

func TestHelpToggle(t *testing.T) {
	m := setupModel(t)

	newM, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = newM.(Model)
	if !m.showHelp {
		t.Error("expected help to be shown")
	}

	view := m.View()
	if !strings.Contains(view, "Keys") {
		t.Error("expected help view to list key bindings")
	}

	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = newM.(Model)
	if m.showHelp {
		t.Error("expected help hidden after second toggle")
	}
}

func TestQuit(t *testing.T) {
	m := setupModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
