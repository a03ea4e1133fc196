// Package ui provides the optional terminal interface.
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tasktrack/internal/todo"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

// Run starts the interactive task list on the manager.
func Run(manager *todo.Manager) error {
	m := &model{manager: manager, tasks: manager.ListTasks()}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

type model struct {
	manager *todo.Manager
	tasks   []*todo.Task
	cursor  int
	err     error
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.tasks)-1 {
				m.cursor++
			}
		case "enter", " ":
			if m.cursor < len(m.tasks) {
				_, err := m.manager.MarkTaskCompleted(m.tasks[m.cursor].ID)
				m.err = err
				m.tasks = m.manager.ListTasks()
			}
		}
	}
	return m, nil
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Tasks"))
	b.WriteString("\n\n")
	if len(m.tasks) == 0 {
		b.WriteString("No tasks available.\n")
	}
	for i, t := range m.tasks {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		fmt.Fprintf(&b, "%s%s\n", cursor, t)
	}
	if m.err != nil {
		fmt.Fprintf(&b, "\nerror: %v\n", m.err)
	}
	b.WriteString("\n" + helpStyle.Render("enter/space complete, j/k move, q quit"))
	return b.String()
}
