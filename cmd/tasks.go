package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskmatrix/internal/board"
	"github.com/nibzard/taskmatrix/internal/config"
	"github.com/nibzard/taskmatrix/internal/hooks"
	"github.com/nibzard/taskmatrix/internal/todo"
)

// shortIDLen is how many id characters ls prints.
const shortIDLen = 8

// addCommand creates a task in a quadrant.
func addCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: taskmatrix add <quadrant> <text...>")
	}
	category, err := todo.ParseCategory(args[0])
	if err != nil {
		return err
	}
	b, err := openBoard(cfg, logger)
	if err != nil {
		return err
	}
	t, err := b.AddTask(strings.Join(args[1:], " "), category)
	if err != nil {
		return err
	}
	fmt.Printf("Added %s to %s\n", shortID(t.ID), category.Label())
	afterChange(ctx, cfg, logger, "add", t.ID)
	return nil
}

// lsCommand lists tasks grouped by quadrant.
func lsCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	dayFilter := fs.String("day", "", "Only tasks planned on this day (or \"none\" for unplanned)")
	categoryFilter := fs.String("category", "", "Only tasks in this quadrant")
	asJSON := fs.Bool("json", false, "Print the matching records as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}

	match, err := taskFilter(*dayFilter, *categoryFilter)
	if err != nil {
		return err
	}
	var tasks []todo.Task
	for _, t := range store.Tasks() {
		if match(t) {
			tasks = append(tasks, t)
		}
	}

	if *asJSON {
		if tasks == nil {
			tasks = []todo.Task{}
		}
		data, err := todo.Encode(tasks)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks.")
		return nil
	}
	printTasksByCategory(tasks)
	return nil
}

// taskFilter builds the ls predicate from the -day and -category values.
func taskFilter(dayArg, categoryArg string) (func(todo.Task) bool, error) {
	var (
		day       todo.Day
		unplanned bool
		category  todo.Category
	)
	switch strings.ToLower(strings.TrimSpace(dayArg)) {
	case "":
	case "none", "-":
		unplanned = true
	default:
		d, err := todo.ParseDay(dayArg)
		if err != nil {
			return nil, err
		}
		day = d
	}
	if categoryArg != "" {
		c, err := todo.ParseCategory(categoryArg)
		if err != nil {
			return nil, err
		}
		category = c
	}
	return func(t todo.Task) bool {
		if unplanned && t.DayAssignment != "" {
			return false
		}
		if day != "" && t.DayAssignment != day {
			return false
		}
		if category != "" && t.OriginalCategory != category {
			return false
		}
		return true
	}, nil
}

// printTasksByCategory prints tasks grouped by quadrant in display order.
// Records with an unknown quadrant are listed last.
func printTasksByCategory(tasks []todo.Task) {
	groups := make(map[todo.Category][]todo.Task)
	var unfiled []todo.Task
	for _, t := range tasks {
		if !t.OriginalCategory.Valid() {
			unfiled = append(unfiled, t)
			continue
		}
		groups[t.OriginalCategory] = append(groups[t.OriginalCategory], t)
	}

	first := true
	printGroup := func(title string, group []todo.Task) {
		if len(group) == 0 {
			return
		}
		if !first {
			fmt.Println()
		}
		first = false
		fmt.Printf("%s (%d)\n", title, len(group))
		for _, t := range group {
			fmt.Println(formatTaskLine(t))
		}
	}
	for i, c := range todo.Categories {
		printGroup(fmt.Sprintf("%d. %s", i+1, c.Label()), groups[c])
	}
	printGroup("Unfiled", unfiled)
}

func formatTaskLine(t todo.Task) string {
	var sb strings.Builder
	sb.WriteString("  ")
	sb.WriteString(shortID(t.ID))
	sb.WriteString("  ")
	sb.WriteString(formatMarkers(t.MarkerStates))
	sb.WriteString("  ")
	sb.WriteString(t.Text)
	if t.DayAssignment != "" {
		sb.WriteString("  @")
		sb.WriteString(string(t.DayAssignment))
	}
	return sb.String()
}

func formatMarkers(markers []bool) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for _, m := range markers {
		if m {
			sb.WriteByte('x')
		} else {
			sb.WriteByte(' ')
		}
	}
	for i := len(markers); i < todo.MaxMarkers; i++ {
		sb.WriteByte('.')
	}
	sb.WriteByte(']')
	return sb.String()
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

// toggleCommand flips one marker. Markers are numbered from 1.
func toggleCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: taskmatrix toggle <id> <n>")
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid marker number %q", args[1])
	}
	b, id, err := openTask(cfg, logger, args[0])
	if err != nil {
		return err
	}
	markers, _ := b.Markers(id)
	if n < 1 || n > len(markers) {
		return fmt.Errorf("marker %d out of range: task %s has %d markers", n, shortID(id), len(markers))
	}
	if err := b.ToggleMarker(id, n-1); err != nil {
		return err
	}
	markers, _ = b.Markers(id)
	fmt.Printf("%s %s\n", shortID(id), formatMarkers(markers))
	afterChange(ctx, cfg, logger, "toggle", id)
	return nil
}

// markCommand appends an unticked marker.
func markCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: taskmatrix mark <id>")
	}
	b, id, err := openTask(cfg, logger, args[0])
	if err != nil {
		return err
	}
	markers, _ := b.Markers(id)
	if len(markers) >= todo.MaxMarkers {
		fmt.Printf("%s already has %d markers\n", shortID(id), todo.MaxMarkers)
		return nil
	}
	if err := b.AddMarker(id); err != nil {
		return err
	}
	markers, _ = b.Markers(id)
	fmt.Printf("%s %s\n", shortID(id), formatMarkers(markers))
	afterChange(ctx, cfg, logger, "mark", id)
	return nil
}

// assignCommand plans a task onto a weekday.
func assignCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: taskmatrix assign <id> <day>")
	}
	day, err := todo.ParseDay(args[1])
	if err != nil {
		return err
	}
	if day == "" {
		return fmt.Errorf("day is required, use unassign to clear it")
	}
	b, id, err := openTask(cfg, logger, args[0])
	if err != nil {
		return err
	}
	t, _ := b.Task(id)
	if _, err := b.UpsertDayAssignment(todo.Ref{ID: id, Text: t.Text, Category: t.OriginalCategory}, day); err != nil {
		return err
	}
	fmt.Printf("Planned %s on %s\n", shortID(id), day)
	afterChange(ctx, cfg, logger, "assign", id)
	return nil
}

// unassignCommand clears the weekday of a task.
func unassignCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: taskmatrix unassign <id>")
	}
	b, id, err := openTask(cfg, logger, args[0])
	if err != nil {
		return err
	}
	t, _ := b.Task(id)
	if t.DayAssignment == "" {
		fmt.Printf("%s is not planned\n", shortID(id))
		return nil
	}
	if _, err := b.UpsertDayAssignment(todo.Ref{ID: id}, ""); err != nil {
		return err
	}
	fmt.Printf("Unplanned %s\n", shortID(id))
	afterChange(ctx, cfg, logger, "unassign", id)
	return nil
}

// moveCommand changes the quadrant of a task.
func moveCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: taskmatrix move <id> <quadrant>")
	}
	category, err := todo.ParseCategory(args[1])
	if err != nil {
		return err
	}
	b, id, err := openTask(cfg, logger, args[0])
	if err != nil {
		return err
	}
	if err := b.MoveTask(id, category); err != nil {
		return err
	}
	fmt.Printf("Moved %s to %s\n", shortID(id), category.Label())
	afterChange(ctx, cfg, logger, "move", id)
	return nil
}

// renameCommand replaces the text of a task.
func renameCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: taskmatrix rename <id> <text...>")
	}
	text := strings.TrimSpace(strings.Join(args[1:], " "))
	if text == "" {
		return fmt.Errorf("task text is empty")
	}
	b, id, err := openTask(cfg, logger, args[0])
	if err != nil {
		return err
	}
	if err := b.RenameTask(id, text); err != nil {
		return err
	}
	fmt.Printf("Renamed %s\n", shortID(id))
	afterChange(ctx, cfg, logger, "rename", id)
	return nil
}

// rmCommand deletes a task everywhere.
func rmCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: taskmatrix rm <id>")
	}
	b, id, err := openTask(cfg, logger, args[0])
	if err != nil {
		return err
	}
	if err := b.DeleteGlobal(id); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", shortID(id))
	afterChange(ctx, cfg, logger, "rm", id)
	return nil
}

// openTask opens the board and resolves an id prefix against it.
func openTask(cfg *config.Config, logger *log.Logger, prefix string) (*board.Board[string], string, error) {
	b, err := openBoard(cfg, logger)
	if err != nil {
		return nil, "", err
	}
	id, err := b.Store().Resolve(prefix)
	if err != nil {
		return nil, "", err
	}
	return b, id, nil
}

// afterChange runs the configured change hook. A failing hook is reported
// but does not fail the command; the change is already saved.
func afterChange(ctx context.Context, cfg *config.Config, logger *log.Logger, event, taskID string) {
	if cfg.OnChange == "" {
		return
	}
	result, err := hooks.Invoke(ctx, hooks.Options{
		Command:  cfg.OnChange,
		Event:    event,
		TaskID:   taskID,
		DataFile: cfg.DataFile,
		Stdout:   os.Stderr,
	})
	if err != nil {
		logger.Warn("change hook failed", "command", cfg.OnChange, "exit", result.ExitCode, "err", err)
		return
	}
	logger.Debug("change hook ran", "command", result.Command)
}
