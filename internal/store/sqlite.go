package store

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite" // pure-Go SQLite driver, no CGO required

	"tasktrack/internal/todo"
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id          INTEGER NOT NULL,
	description TEXT    NOT NULL,
	due_date    TEXT    NOT NULL DEFAULT '',
	completed   INTEGER NOT NULL DEFAULT 0,
	priority    TEXT    NOT NULL DEFAULT 'medium'
);`

// SQLiteStore implements todo.Storage on a SQLite database. Task IDs stay
// manager-assigned; rowid only preserves insertion order.
type SQLiteStore struct {
	db     *sql.DB
	logger *log.Logger
}

// NewSQLiteStore opens (or creates) the database at path and ensures the
// schema exists.
func NewSQLiteStore(path string, logger *log.Logger) (*SQLiteStore, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info("no existing task database, starting fresh", "path", path)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteStore{db: db, logger: logger}, nil
}

// LoadTasks returns every stored task in insertion order.
func (s *SQLiteStore) LoadTasks() ([]*todo.Task, error) {
	rows, err := s.db.Query(
		`SELECT id, description, due_date, completed, priority
		 FROM tasks ORDER BY rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*todo.Task
	for rows.Next() {
		t := &todo.Task{}
		var completed int
		var priority string
		if err := rows.Scan(&t.ID, &t.Description, &t.DueDate, &completed, &priority); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t.Completed = completed != 0
		p, ok := todo.ParsePriority(priority)
		if !ok {
			s.logger.Warn("invalid priority, using medium", "priority", priority, "id", t.ID)
		}
		t.Priority = p
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// SaveTasks replaces the table contents with tasks, in the given order,
// inside a single transaction.
func (s *SQLiteStore) SaveTasks(tasks []*todo.Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear tasks: %w", err)
	}
	for _, t := range tasks {
		if _, err := tx.Exec(
			`INSERT INTO tasks (id, description, due_date, completed, priority)
			 VALUES (?, ?, ?, ?, ?)`,
			t.ID, t.Description, t.DueDate, boolToInt(t.Completed), string(t.Priority),
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert task %d: %w", t.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	s.logger.Info("tasks saved", "count", len(tasks))
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
