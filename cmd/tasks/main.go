// Command tasks is a thin command-line surface over the task manager.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"tasktrack/internal/config"
	"tasktrack/internal/store"
	"tasktrack/internal/todo"
	"tasktrack/internal/ui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("tasks", flag.ContinueOnError)
	fs.Usage = func() { printUsage(os.Stderr) }
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *help {
		printUsage(os.Stdout)
		return nil
	}

	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level, Prefix: "tasks"})

	storage, cleanup, err := openStorage(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	manager, err := todo.NewManager(storage, logger)
	if err != nil {
		return err
	}

	subcommand := "list"
	rest := fs.Args()
	if len(rest) > 0 {
		subcommand = rest[0]
		rest = rest[1:]
	}

	switch subcommand {
	case "add":
		return addCommand(manager, rest)
	case "list":
		return listCommand(manager)
	case "priority":
		return priorityCommand(manager, rest)
	case "done":
		return doneCommand(manager, rest)
	case "show":
		return showCommand(manager, rest)
	case "tui":
		return ui.Run(manager)
	case "help":
		printUsage(os.Stdout)
		return nil
	default:
		printUsage(os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

func openStorage(cfg *config.Config, logger *log.Logger) (todo.Storage, func(), error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		s, err := store.NewSQLiteStore(cfg.DBFile, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	default:
		return store.NewFileStore(cfg.TasksFile, logger), func() {}, nil
	}
}

func addCommand(manager *todo.Manager, args []string) error {
	fs := flag.NewFlagSet("tasks add", flag.ContinueOnError)
	due := fs.String("due", "", "Due date, e.g. 2024-08-15")
	priority := fs.String("priority", "", "Priority (low|medium|high)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	description := strings.Join(fs.Args(), " ")
	if description == "" {
		return fmt.Errorf("add: description required")
	}
	task, err := manager.AddTask(description, *due, *priority)
	if err != nil {
		return err
	}
	fmt.Println(task)
	return nil
}

func listCommand(manager *todo.Manager) error {
	tasks := manager.ListTasks()
	if len(tasks) == 0 {
		fmt.Println("No tasks available.")
		return nil
	}
	for _, t := range tasks {
		fmt.Println(t)
	}
	return nil
}

func priorityCommand(manager *todo.Manager, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("priority: expected one argument (low|medium|high)")
	}
	tasks := manager.TasksByPriority(args[0])
	if len(tasks) == 0 {
		fmt.Printf("No %s priority tasks found.\n", strings.ToLower(args[0]))
		return nil
	}
	for _, t := range tasks {
		fmt.Println(t)
	}
	return nil
}

func doneCommand(manager *todo.Manager, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("done: expected one task id")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("done: invalid task id %q", args[0])
	}
	ok, err := manager.MarkTaskCompleted(id)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Printf("Task %d not found.\n", id)
	}
	return nil
}

func showCommand(manager *todo.Manager, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("show: expected one task id")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("show: invalid task id %q", args[0])
	}
	t := manager.GetTaskByID(id)
	if t == nil {
		fmt.Printf("Task %d not found.\n", id)
		return nil
	}
	fmt.Println(t)
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: tasks [flags] <command> [args]

Commands:
  add [-due DATE] [-priority LEVEL] <description>
        Add a task
  list
        List all tasks, incomplete and high priority first (default)
  priority <low|medium|high>
        List tasks with the given priority
  done <id>
        Mark a task as completed
  show <id>
        Show a single task
  tui
        Interactive task list

Flags:
  -h, -help   Show help

Configuration is read from tasktrack.toml (project or user config dir)
and TASKTRACK_* environment variables.
`)
}
