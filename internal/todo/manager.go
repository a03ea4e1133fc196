package todo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// Storage is the persistence contract. Any backend (flat file, SQLite,
// in-memory) must satisfy this interface; the Manager never depends on a
// concrete type.
type Storage interface {
	// LoadTasks returns every task in the backing store, in store order.
	// A missing store is not an error: implementations return an empty
	// collection and signal that a fresh store is being started.
	LoadTasks() ([]*Task, error)
	// SaveTasks replaces the entire store contents with tasks, in the
	// given order. Write failures propagate to the caller.
	SaveTasks(tasks []*Task) error
}

// Manager owns the in-memory task collection and coordinates persistence.
// Every mutation persists the full collection before returning; reads are
// served from memory.
type Manager struct {
	storage Storage
	logger  *log.Logger
	tasks   []*Task
	nextID  int
}

// NewManager loads the collection from storage and derives the next free ID
// (one past the highest loaded ID, or 1 for an empty store).
func NewManager(storage Storage, logger *log.Logger) (*Manager, error) {
	tasks, err := storage.LoadTasks()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	nextID := 1
	for _, t := range tasks {
		if t.ID >= nextID {
			nextID = t.ID + 1
		}
	}
	logger.Info("loaded tasks", "count", len(tasks), "next_id", nextID)
	return &Manager{storage: storage, logger: logger, tasks: tasks, nextID: nextID}, nil
}

// AddTask creates a task with the next free ID, appends it to the collection
// and persists everything. An unrecognized priority is coerced to medium
// with a warning. There is no duplicate-description check.
func (m *Manager) AddTask(description, dueDate, priority string) (*Task, error) {
	p, ok := ParsePriority(priority)
	if !ok {
		m.logger.Warn("invalid priority, using medium", "priority", priority)
	}
	t := &Task{ID: m.nextID, Description: description, DueDate: dueDate, Priority: p}
	m.tasks = append(m.tasks, t)
	m.nextID++
	if err := m.storage.SaveTasks(m.tasks); err != nil {
		return nil, fmt.Errorf("save tasks: %w", err)
	}
	m.logger.Info("task added", "id", t.ID, "description", t.Description, "priority", t.Priority)
	return t, nil
}

// Tasks returns the collection in insertion order.
func (m *Manager) Tasks() []*Task {
	out := make([]*Task, len(m.tasks))
	copy(out, m.tasks)
	return out
}

// ListTasks returns the collection in display order: incomplete tasks
// before completed ones, then by priority weight descending. The sort is
// stable, so ties keep insertion order.
func (m *Manager) ListTasks() []*Task {
	out := m.Tasks()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Completed != out[j].Completed {
			return !out[i].Completed
		}
		return out[i].Priority.Weight() > out[j].Priority.Weight()
	})
	return out
}

// GetTaskByID returns the task with the given ID, or nil if none matches.
func (m *Manager) GetTaskByID(id int) *Task {
	for _, t := range m.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// MarkTaskCompleted marks the task and persists the collection. The bool
// reports whether the ID was found; an unknown ID is not an error. A save
// failure propagates and leaves the in-memory state changed.
func (m *Manager) MarkTaskCompleted(id int) (bool, error) {
	t := m.GetTaskByID(id)
	if t == nil {
		m.logger.Info("task not found", "id", id)
		return false, nil
	}
	t.MarkCompleted()
	m.logger.Info("task completed", "id", t.ID, "description", t.Description)
	if err := m.storage.SaveTasks(m.tasks); err != nil {
		return true, fmt.Errorf("save tasks: %w", err)
	}
	return true, nil
}

// TasksByPriority returns the tasks whose priority equals the
// case-normalized argument, in insertion order. A value outside the
// priority set matches nothing.
func (m *Manager) TasksByPriority(priority string) []*Task {
	want := Priority(strings.ToLower(priority))
	var out []*Task
	for _, t := range m.tasks {
		if t.Priority == want {
			out = append(out, t)
		}
	}
	return out
}
