// Package cmd provides tests for CLI command handlers.
package cmd

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/nibzard/taskmatrix/internal/config"
	"github.com/nibzard/taskmatrix/internal/todo"
)

// isolate points every config and data lookup at a temp dir and returns the
// task file path to use with --data.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", filepath.Join(dir, "home"))
	t.Setenv("USERPROFILE", filepath.Join(dir, "home"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("APPDATA", filepath.Join(dir, "appdata"))
	t.Setenv("LOCALAPPDATA", filepath.Join(dir, "localappdata"))
	for _, name := range []string{
		"TASKMATRIX_CONFIG", "TASKMATRIX_DATA", "TASKMATRIX_SCHEMA", "TASKMATRIX_LOG_DIR",
		"TASKMATRIX_STRICT", "TASKMATRIX_WATCH", "TASKMATRIX_LOG_LEVEL", "TASKMATRIX_LOG_FORMAT",
		"TASKMATRIX_LOG_TIMESTAMPS", "TASKMATRIX_LOG_CALLER", "TASKMATRIX_ON_CHANGE",
	} {
		t.Setenv(name, "")
	}
	work := filepath.Join(dir, "work")
	if err := os.MkdirAll(work, 0o755); err != nil {
		t.Fatal(err)
	}
	prevWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(work); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prevWD) })
	return filepath.Join(dir, "tasks.json")
}

// run invokes Run against dataFile and returns its stdout.
func run(t *testing.T, dataFile string, args ...string) (string, error) {
	t.Helper()
	return captureStdout(t, func() error {
		return Run(context.Background(), append([]string{"--data", dataFile}, args...))
	})
}

func mustRun(t *testing.T, dataFile string, args ...string) string {
	t.Helper()
	out, err := run(t, dataFile, args...)
	if err != nil {
		t.Fatalf("Run(%v) error = %v", args, err)
	}
	return out
}

func loadTasks(t *testing.T, path string) []todo.Task {
	t.Helper()
	tasks, err := todo.Load(path)
	if err != nil {
		t.Fatalf("todo.Load() error = %v", err)
	}
	return tasks
}

// TestRun tests the main Run function.
func TestRun(t *testing.T) {
	isolate(t)

	for _, args := range [][]string{{"--help"}, {"-h"}, {"--version"}, {"-v"}, {"help"}, {"version"}} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			if _, err := captureStdout(t, func() error {
				return Run(context.Background(), args)
			}); err != nil {
				t.Errorf("expected no error with %v, got %v", args, err)
			}
		})
	}

	t.Run("version output", func(t *testing.T) {
		out, err := captureStdout(t, func() error {
			return Run(context.Background(), []string{"version"})
		})
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out, "taskmatrix version "+Version) {
			t.Errorf("version output = %q", out)
		}
	})

	t.Run("unknown command returns error", func(t *testing.T) {
		err := Run(context.Background(), []string{"unknown-command"})
		if err == nil {
			t.Fatal("expected error for unknown command, got nil")
		}
		if !strings.Contains(err.Error(), "unknown command") {
			t.Errorf("expected 'unknown command' error, got %v", err)
		}
	})

	t.Run("invalid log level is a config error", func(t *testing.T) {
		err := Run(context.Background(), []string{"--log-level", "loud", "version"})
		if err == nil || !strings.Contains(err.Error(), "loading config") {
			t.Errorf("expected config error, got %v", err)
		}
	})
}

func TestTaskCommands(t *testing.T) {
	data := isolate(t)

	out := mustRun(t, data, "add", "do", "Pay", "rent")
	if !strings.Contains(out, "Added") || !strings.Contains(out, "Do first") {
		t.Errorf("add output = %q", out)
	}
	tasks := loadTasks(t, data)
	if len(tasks) != 1 {
		t.Fatalf("tasks = %d, want 1", len(tasks))
	}
	task := tasks[0]
	if task.Text != "Pay rent" || task.OriginalCategory != todo.CategoryMostImportantUrgent {
		t.Errorf("added task = %+v", task)
	}
	if len(task.MarkerStates) != 1 || task.MarkerStates[0] {
		t.Errorf("new task markers = %v, want [false]", task.MarkerStates)
	}
	prefix := task.ID[:8]

	mustRun(t, data, "toggle", prefix, "1")
	if got := loadTasks(t, data)[0].MarkerStates; len(got) != 1 || !got[0] {
		t.Errorf("after toggle markers = %v, want [true]", got)
	}

	mustRun(t, data, "mark", prefix)
	mustRun(t, data, "mark", prefix)
	out = mustRun(t, data, "mark", prefix)
	if !strings.Contains(out, "already has") {
		t.Errorf("fourth marker output = %q", out)
	}
	if got := loadTasks(t, data)[0].MarkerStates; len(got) != todo.MaxMarkers {
		t.Errorf("markers = %v, want %d", got, todo.MaxMarkers)
	}

	if _, err := run(t, data, "toggle", prefix, "4"); err == nil {
		t.Error("expected error for out of range marker")
	}
	if _, err := run(t, data, "toggle", prefix, "x"); err == nil {
		t.Error("expected error for non-numeric marker")
	}

	mustRun(t, data, "assign", prefix, "tue")
	if got := loadTasks(t, data)[0].DayAssignment; got != todo.Tuesday {
		t.Errorf("DayAssignment = %q, want Tuesday", got)
	}
	out = mustRun(t, data, "ls", "-day", "tuesday")
	if !strings.Contains(out, "Pay rent") || !strings.Contains(out, "@Tuesday") {
		t.Errorf("ls -day output = %q", out)
	}
	out = mustRun(t, data, "ls", "-day", "none")
	if strings.Contains(out, "Pay rent") {
		t.Errorf("planned task listed as unplanned: %q", out)
	}

	mustRun(t, data, "unassign", prefix)
	if got := loadTasks(t, data)[0].DayAssignment; got != "" {
		t.Errorf("DayAssignment after unassign = %q", got)
	}

	mustRun(t, data, "move", prefix, "3")
	mustRun(t, data, "rename", prefix, "Pay", "the", "rent")
	got := loadTasks(t, data)[0]
	if got.OriginalCategory != todo.CategoryUrgentNotImportant || got.Text != "Pay the rent" {
		t.Errorf("after move and rename = %+v", got)
	}

	mustRun(t, data, "rm", prefix)
	if tasks := loadTasks(t, data); len(tasks) != 0 {
		t.Errorf("tasks after rm = %v", tasks)
	}
	out = mustRun(t, data, "ls")
	if !strings.Contains(out, "No tasks.") {
		t.Errorf("ls on empty file = %q", out)
	}
}

func TestTaskCommandErrors(t *testing.T) {
	data := isolate(t)
	mustRun(t, data, "add", "schedule", "Plan")

	tests := []struct {
		name string
		args []string
	}{
		{"add without text", []string{"add", "do"}},
		{"add unknown quadrant", []string{"add", "someday", "x"}},
		{"toggle unknown id", []string{"toggle", "nope", "1"}},
		{"assign bad day", []string{"assign", "x", "funday"}},
		{"move bad quadrant", []string{"move", "x", "5"}},
		{"rm without id", []string{"rm"}},
		{"ls bad day filter", []string{"ls", "-day", "funday"}},
		{"tui with arguments", []string{"tui", "extra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, data, tt.args...); err == nil {
				t.Errorf("Run(%v) expected error", tt.args)
			}
		})
	}
}

func TestLsGroupsAndJSON(t *testing.T) {
	data := isolate(t)
	if err := todo.Save(data, []todo.Task{
		{ID: "aaaa1111", Text: "Later", OriginalCategory: todo.CategoryNotImportantNotUrgent, MarkerStates: []bool{}},
		{ID: "bbbb2222", Text: "Now", OriginalCategory: todo.CategoryMostImportantUrgent, MarkerStates: []bool{true, false}},
		{ID: "cccc3333", Text: "Orphan", MarkerStates: []bool{false}},
	}); err != nil {
		t.Fatal(err)
	}

	out := mustRun(t, data, "ls")
	now := strings.Index(out, "Now")
	later := strings.Index(out, "Later")
	orphan := strings.Index(out, "Orphan")
	if now < 0 || later < 0 || orphan < 0 || !(now < later && later < orphan) {
		t.Errorf("ls order wrong:\n%s", out)
	}
	if !strings.Contains(out, "[x .]") {
		t.Errorf("marker rendering missing in:\n%s", out)
	}

	out = mustRun(t, data, "ls", "-category", "do", "-json")
	tasks, err := todo.Decode([]byte(out))
	if err != nil {
		t.Fatalf("ls -json output does not decode: %v\n%s", err, out)
	}
	if len(tasks) != 1 || tasks[0].ID != "bbbb2222" {
		t.Errorf("ls -json -category do = %+v", tasks)
	}

	out = mustRun(t, data, "ls", "-day", "mon", "-json")
	if strings.TrimSpace(out) != "[]" {
		t.Errorf("empty ls -json = %q, want []", out)
	}
}

func TestStrictSchema(t *testing.T) {
	data := isolate(t)
	// Text is null: the decoder accepts it, the schema does not.
	if err := os.WriteFile(data, []byte(`[{"ID":"t1","Text":null,"OriginalCategory":"ImportantNotUrgent","DayAssignment":"","MarkerStates":[false]}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, data, "ls"); err != nil {
		t.Errorf("non-strict ls error = %v", err)
	}
	_, err := run(t, data, "--strict", "ls")
	if err == nil || !strings.Contains(err.Error(), "failed validation") {
		t.Errorf("strict ls error = %v, want validation failure", err)
	}
}

func TestDoctor(t *testing.T) {
	data := isolate(t)

	out, err := run(t, data, "doctor")
	if err != nil {
		t.Fatalf("doctor on missing file error = %v", err)
	}
	if !strings.Contains(out, "task file not found") || !strings.Contains(out, "no run logs yet") {
		t.Errorf("doctor output = %q", out)
	}

	mustRun(t, data, "add", "1", "Check")
	out = mustRun(t, data, "doctor")
	if !strings.Contains(out, "ok: 1 tasks, 0 planned") {
		t.Errorf("doctor output = %q", out)
	}

	if err := os.WriteFile(data, []byte(`[{"ID":""}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, data, "doctor"); err == nil {
		t.Error("expected doctor to report problems")
	}
}

func TestConfigCommand(t *testing.T) {
	data := isolate(t)

	out := mustRun(t, data, "config")
	if !strings.Contains(out, "data_file") || !strings.Contains(out, string(config.SourceFlag)) {
		t.Errorf("config output = %q", out)
	}
	if !strings.Contains(out, string(config.SourceDefault)) {
		t.Errorf("config output missing default sources: %q", out)
	}

	out = mustRun(t, data, "config", "-example")
	if out != config.ExampleConfig() {
		t.Error("config -example does not match example config")
	}
}

func TestTailCommand(t *testing.T) {
	data := isolate(t)
	logDir := filepath.Join(t.TempDir(), "logs")

	if _, err := run(t, data, "--log-dir", logDir, "tail"); err == nil {
		t.Error("expected error when no run logs exist")
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		t.Fatal(err)
	}
	logPath := filepath.Join(logDir, "20260101-120000-1.log")
	if err := os.WriteFile(logPath, []byte("one\ntwo\nthree\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out := mustRun(t, data, "--log-dir", logDir, "tail", "-n", "2")
	if out != "two\nthree\n" {
		t.Errorf("tail -n 2 = %q", out)
	}
	out = mustRun(t, data, "--log-dir", logDir, "tail", "-list")
	if !strings.Contains(out, "20260101-120000-1") {
		t.Errorf("tail -list = %q", out)
	}
}

func TestCLILoggerQuietByDefault(t *testing.T) {
	isolate(t)
	fs := newTestFlagSet()
	cws, err := config.LoadWithSources(fs, nil)
	if err != nil {
		t.Fatal(err)
	}
	var buf strings.Builder
	logger := cliLogger(cws, &buf)
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("default cli logger output = %q", buf.String())
	}

	fs = newTestFlagSet()
	cws, err = config.LoadWithSources(fs, []string{"--log-level", "debug"})
	if err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	logger = cliLogger(cws, &buf)
	logger.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("explicit debug level ignored: %q", buf.String())
	}
}

func TestChangeHook(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("hook script uses /bin/sh")
	}
	data := isolate(t)
	dir := t.TempDir()
	record := filepath.Join(dir, "events")
	hook := filepath.Join(dir, "hook.sh")
	script := "#!/bin/sh\necho \"$1 $2 $3\" >> " + record + "\n"
	if err := os.WriteFile(hook, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}

	mustRun(t, data, "--on-change", hook, "add", "2", "Write report")
	id := loadTasks(t, data)[0].ID
	mustRun(t, data, "--on-change", hook, "assign", id, "fri")
	mustRun(t, data, "--on-change", hook, "ls")

	events, err := os.ReadFile(record)
	if err != nil {
		t.Fatal(err)
	}
	want := "add " + id + " " + data + "\nassign " + id + " " + data + "\n"
	if string(events) != want {
		t.Errorf("hook events = %q, want %q", events, want)
	}

	failing := filepath.Join(dir, "fail.sh")
	if err := os.WriteFile(failing, []byte("#!/bin/sh\nexit 3\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, data, "--on-change", failing, "unassign", id); err != nil {
		t.Errorf("failing hook should not fail the command: %v", err)
	}
	if got := loadTasks(t, data)[0].DayAssignment; got != "" {
		t.Errorf("unassign not saved: %q", got)
	}
}
