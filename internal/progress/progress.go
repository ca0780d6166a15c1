// Package progress renders live depth-table build progress as a small
// bubbletea program, one line per BFS pass as it completes.
package progress

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	lineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	doneStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// maxHistory bounds how many lines the view keeps on screen; a full build
// emits one line per pass (a couple dozen total), but this keeps the
// program well-behaved if fed something chattier.
const maxHistory = 20

type lineMsg string
type doneMsg struct{}

// Model displays lines arriving on a channel until it closes, then shows a
// completion banner and exits.
type Model struct {
	title   string
	lines   <-chan string
	history []string
	done    bool
}

// New returns a Model that displays lines as they arrive on lines, until
// the channel is closed.
func New(title string, lines <-chan string) Model {
	return Model{title: title, lines: lines}
}

func (m Model) Init() tea.Cmd {
	return m.waitForLine()
}

func (m Model) waitForLine() tea.Cmd {
	lines := m.lines
	return func() tea.Msg {
		line, ok := <-lines
		if !ok {
			return doneMsg{}
		}
		return lineMsg(line)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case lineMsg:
		m.history = append(m.history, string(msg))
		if len(m.history) > maxHistory {
			m.history = m.history[len(m.history)-maxHistory:]
		}
		return m, m.waitForLine()
	case doneMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	for _, line := range m.history {
		b.WriteString(lineStyle.Render(line))
		b.WriteString("\n")
	}
	if m.done {
		b.WriteString("\n")
		b.WriteString(doneStyle.Render("build complete"))
		b.WriteString("\n")
	} else {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("q to quit"))
		b.WriteString("\n")
	}
	return b.String()
}

// Run starts a bubbletea program showing build's progress lines as they
// arrive, running build in its own goroutine, and blocks until the program
// exits (either build finishes or the user quits).
func Run(title string, build func(logf func(line string))) error {
	lines := make(chan string, 64)
	go func() {
		build(func(line string) { lines <- line })
		close(lines)
	}()

	p := tea.NewProgram(New(title, lines))
	_, err := p.Run()
	return err
}
