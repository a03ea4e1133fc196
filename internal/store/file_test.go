package store

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"tasktrack/internal/todo"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func tempFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.txt")
	return NewFileStore(path, testLogger()), path
}

func TestFileStoreRoundTrip(t *testing.T) {
	s, _ := tempFileStore(t)
	tasks := []*todo.Task{
		{ID: 1, Description: "Write spec", DueDate: "2024-01-01", Completed: false, Priority: todo.PriorityHigh},
		{ID: 2, Description: "Clean desk", DueDate: "", Completed: true, Priority: todo.PriorityMedium},
		{ID: 3, Description: "Water plants", DueDate: "2024-02-02", Completed: false, Priority: todo.PriorityLow},
	}
	if err := s.SaveTasks(tasks); err != nil {
		t.Fatalf("SaveTasks: %v", err)
	}
	loaded, err := s.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	if len(loaded) != len(tasks) {
		t.Fatalf("loaded %d tasks, want %d", len(loaded), len(tasks))
	}
	for i, want := range tasks {
		got := loaded[i]
		if *got != *want {
			t.Errorf("task %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestFileStoreSaveFormat(t *testing.T) {
	s, path := tempFileStore(t)
	tasks := []*todo.Task{
		{ID: 1, Description: "Write spec", DueDate: "2024-01-01", Priority: todo.PriorityHigh},
		{ID: 2, Description: "Clean desk", Completed: true, Priority: todo.PriorityMedium},
	}
	if err := s.SaveTasks(tasks); err != nil {
		t.Fatalf("SaveTasks: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "1,Write spec,2024-01-01,False,high\n2,Clean desk,None,True,medium\n"
	if string(data) != want {
		t.Errorf("file contents:\n%q\nwant:\n%q", data, want)
	}
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nope.txt"), testLogger())
	tasks, err := s.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("loaded %d tasks from missing file, want 0", len(tasks))
	}
}

func TestFileStoreLoadTolerance(t *testing.T) {
	tests := []struct {
		name string
		line string
		want *todo.Task // nil means the line is skipped
	}{
		{
			"four fields defaults priority",
			"5,Buy milk,None,False",
			&todo.Task{ID: 5, Description: "Buy milk", Priority: todo.PriorityMedium},
		},
		{
			"five fields",
			"6,Call mom,2024-03-03,True,high",
			&todo.Task{ID: 6, Description: "Call mom", DueDate: "2024-03-03", Completed: true, Priority: todo.PriorityHigh},
		},
		{
			"completed only on exact literal",
			"7,x,None,true,low",
			&todo.Task{ID: 7, Description: "x", Priority: todo.PriorityLow},
		},
		{
			"invalid priority coerced",
			"8,x,None,False,urgent",
			&todo.Task{ID: 8, Description: "x", Priority: todo.PriorityMedium},
		},
		{"single field", "abc", nil},
		{"three fields", "1,too,short", nil},
		{"blank line", "", nil},
		{"non-numeric id", "one,x,None,False", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tasks.txt")
			if err := os.WriteFile(path, []byte(tt.line+"\n"), 0644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			tasks, err := NewFileStore(path, testLogger()).LoadTasks()
			if err != nil {
				t.Fatalf("LoadTasks: %v", err)
			}
			if tt.want == nil {
				if len(tasks) != 0 {
					t.Fatalf("loaded %d tasks, want line skipped", len(tasks))
				}
				return
			}
			if len(tasks) != 1 {
				t.Fatalf("loaded %d tasks, want 1", len(tasks))
			}
			if *tasks[0] != *tt.want {
				t.Errorf("got %+v, want %+v", tasks[0], tt.want)
			}
		})
	}
}

func TestFileStoreLoadSkipsOnlyBadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	content := "abc\n1,good task,None,False,low\nx,y\n2,another,None,True\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	tasks, err := NewFileStore(path, testLogger()).LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("loaded %d tasks, want 2", len(tasks))
	}
	if tasks[0].ID != 1 || tasks[1].ID != 2 {
		t.Errorf("ids = %d, %d, want 1, 2", tasks[0].ID, tasks[1].ID)
	}
	if tasks[1].Priority != todo.PriorityMedium {
		t.Errorf("four-field line priority = %q, want medium", tasks[1].Priority)
	}
}
