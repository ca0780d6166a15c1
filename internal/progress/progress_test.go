package progress

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestUpdateAppendsLines(t *testing.T) {
	m := New("build", make(chan string))
	next, cmd := m.Update(lineMsg("pass 8: 100 positions generated"))
	model := next.(Model)
	if len(model.history) != 1 {
		t.Fatalf("expected 1 line in history, got %d", len(model.history))
	}
	if model.history[0] != "pass 8: 100 positions generated" {
		t.Errorf("unexpected history line: %q", model.history[0])
	}
	if cmd == nil {
		t.Error("expected a follow-up command to keep waiting for lines")
	}
}

func TestUpdateTrimsHistory(t *testing.T) {
	m := New("build", make(chan string))
	for i := 0; i < maxHistory+5; i++ {
		next, _ := m.Update(lineMsg("line"))
		m = next.(Model)
	}
	if len(m.history) != maxHistory {
		t.Errorf("expected history capped at %d, got %d", maxHistory, len(m.history))
	}
}

func TestUpdateDoneQuits(t *testing.T) {
	m := New("build", make(chan string))
	next, cmd := m.Update(doneMsg{})
	model := next.(Model)
	if !model.done {
		t.Error("expected done flag set after doneMsg")
	}
	if cmd == nil {
		t.Error("expected tea.Quit command after doneMsg")
	}
}

func TestUpdateQuitKey(t *testing.T) {
	m := New("build", make(chan string))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Error("expected tea.Quit command after 'q' key")
	}
}

func TestViewRendersTitleAndHistory(t *testing.T) {
	m := New("build", make(chan string))
	next, _ := m.Update(lineMsg("seed pass 1: 6 positions generated"))
	model := next.(Model)
	view := model.View()
	if !containsAll(view, "build", "seed pass 1: 6 positions generated") {
		t.Errorf("view missing expected content: %q", view)
	}
}

func containsAll(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if !contains(s, sub) {
			return false
		}
	}
	return true
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
