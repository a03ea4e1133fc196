// Package todo defines the core domain model and the storage contract.
// The Storage interface allows swapping backends (flat file, SQLite,
// in-memory) without changing any other layer.
package todo

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Priority levels for a task. The set is closed: anything outside it is
// coerced to PriorityMedium at the construction edges (add, load).
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority normalizes raw input to a member of the priority set.
// Matching is case-insensitive. Empty input means "unspecified" and maps to
// medium with ok=true; any other unknown value maps to medium with ok=false
// so the caller can emit a warning.
func ParsePriority(raw string) (Priority, bool) {
	switch Priority(strings.ToLower(raw)) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(strings.ToLower(raw)), true
	case "":
		return PriorityMedium, true
	}
	return PriorityMedium, false
}

// Weight returns the numeric rank used for sort ordering.
// Unrecognized values rank as medium.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityLow:
		return 1
	default:
		return 2
	}
}

var (
	highStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	mediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	lowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// Indicator returns the styled marker shown next to the priority tag.
// Each level has its own glyph so the levels stay distinct without color.
func (p Priority) Indicator() string {
	switch p {
	case PriorityHigh:
		return highStyle.Render("▲")
	case PriorityLow:
		return lowStyle.Render("▼")
	default:
		return mediumStyle.Render("●")
	}
}

// Task is the central domain object. ID is assigned by the Manager and is
// immutable; Completed is the only field that changes after creation.
type Task struct {
	ID          int
	Description string
	DueDate     string // empty when the task has no due date
	Completed   bool
	Priority    Priority
}

// MarkCompleted flips the task to completed. Idempotent.
func (t *Task) MarkCompleted() {
	t.Completed = true
}

// String renders the task as a single display line, for example:
//
//	[✓] 3. Buy milk (Due: 2024-01-01) [▲ HIGH]
func (t *Task) String() string {
	status := " "
	if t.Completed {
		status = "✓"
	}
	due := ""
	if t.DueDate != "" {
		due = fmt.Sprintf(" (Due: %s)", t.DueDate)
	}
	return fmt.Sprintf("[%s] %d. %s%s [%s %s]",
		status, t.ID, t.Description, due,
		t.Priority.Indicator(), strings.ToUpper(string(t.Priority)))
}
