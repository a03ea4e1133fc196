// Package store provides the concrete todo.Storage backends: a flat-file
// store and a SQLite store.
package store

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"tasktrack/internal/todo"
)

// noneDueDate is the literal written for a task without a due date.
const noneDueDate = "None"

// FileStore persists tasks as one human-readable line per task:
//
//	id,description,due_date,completed,priority
//
// due_date is the literal None when absent; completed is True or False.
type FileStore struct {
	path   string
	logger *log.Logger
}

func NewFileStore(path string, logger *log.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// LoadTasks reads every task line from the file, in file order. A missing
// file is not an error: the store is simply starting fresh. Lines with
// fewer than four comma-separated fields are skipped; a missing fifth
// field defaults the priority to medium (files written before the
// priority column existed).
func (s *FileStore) LoadTasks() ([]*todo.Task, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Info("no existing task file, starting fresh", "path", s.path)
			return nil, nil
		}
		return nil, fmt.Errorf("open task file: %w", err)
	}
	defer f.Close()

	var tasks []*todo.Task
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if t := s.parseLine(strings.TrimSpace(scanner.Text())); t != nil {
			tasks = append(tasks, t)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read task file: %w", err)
	}
	return tasks, nil
}

// parseLine reconstructs one task, or nil for a malformed line.
func (s *FileStore) parseLine(line string) *todo.Task {
	parts := strings.Split(line, ",")
	if len(parts) < 4 {
		return nil
	}
	id, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil
	}
	due := parts[2]
	if due == noneDueDate {
		due = ""
	}
	raw := ""
	if len(parts) > 4 {
		raw = parts[4]
	}
	priority, ok := todo.ParsePriority(raw)
	if !ok {
		s.logger.Warn("invalid priority, using medium", "priority", raw, "id", id)
	}
	return &todo.Task{
		ID:          id,
		Description: parts[1],
		DueDate:     due,
		Completed:   parts[3] == "True",
		Priority:    priority,
	}
}

// SaveTasks rewrites the whole file with one line per task, in the given
// order. Write and close errors propagate to the caller.
func (s *FileStore) SaveTasks(tasks []*todo.Task) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create task file: %w", err)
	}
	w := bufio.NewWriter(f)
	for _, t := range tasks {
		due := t.DueDate
		if due == "" {
			due = noneDueDate
		}
		completed := "False"
		if t.Completed {
			completed = "True"
		}
		if _, err := fmt.Fprintf(w, "%d,%s,%s,%s,%s\n",
			t.ID, t.Description, due, completed, t.Priority); err != nil {
			f.Close()
			return fmt.Errorf("write task file: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write task file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close task file: %w", err)
	}
	s.logger.Info("tasks saved", "path", s.path, "count", len(tasks))
	return nil
}
