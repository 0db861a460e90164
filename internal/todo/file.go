package todo

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// PersistenceError reports a failure to read or write the task file.
type PersistenceError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s task file %s: %s", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Load reads and parses the task file at path.
// A missing file yields an empty list. A file that cannot be decoded, or
// whose records carry more than MaxMarkers markers, yields a
// *PersistenceError. Records with a missing ID or an unrecognised label are
// kept as they are; Validate reports them.
func Load(path string) ([]Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Task{}, nil
		}
		return nil, &PersistenceError{Op: "load", Path: path, Err: err}
	}

	tasks, err := Decode(data)
	if err != nil {
		return nil, &PersistenceError{Op: "load", Path: path, Err: err}
	}
	return tasks, nil
}

// Decode parses a task document and checks the marker count of each record.
func Decode(data []byte) ([]Task, error) {
	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parse task file: %w", err)
	}
	if tasks == nil {
		// A literal "null" document.
		tasks = []Task{}
	}
	for i := range tasks {
		if tasks[i].MarkerStates == nil {
			tasks[i].MarkerStates = []bool{}
		}
		if err := checkMarkerCount(&tasks[i], fmt.Sprintf("[%d]", i)); err != nil {
			return nil, err
		}
	}
	return tasks, nil
}

// Encode renders tasks with 2-space indentation and a trailing newline.
func Encode(tasks []Task) ([]byte, error) {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal task file: %w", err)
	}

	// Add trailing newline
	return append(data, '\n'), nil
}

// Save writes tasks to path, creating parent directories as needed.
// The content goes to a temp file in the same directory which is then
// renamed over path, so readers never observe a partial file.
func Save(path string, tasks []Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}
	if err := writeFileAtomic(path, data); err != nil {
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
