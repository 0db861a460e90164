package todo

import (
	"fmt"
	"strings"
)

// Store is the in-memory task list bound to its file. Every mutating
// method persists the full list before returning.
type Store struct {
	path  string
	tasks []Task
}

// Open loads the task file at path into a new Store.
func Open(path string) (*Store, error) {
	tasks, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, tasks: tasks}, nil
}

// NewStore returns a Store over tasks without touching the disk.
func NewStore(path string, tasks []Task) *Store {
	s := &Store{path: path}
	s.Replace(tasks)
	return s
}

// Path returns the file the store persists to.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of task records.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Tasks returns a deep copy of the task list in file order.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Get returns a copy of the task with id.
func (s *Store) Get(id string) (Task, bool) {
	if i := s.index(id); i >= 0 {
		return s.tasks[i].Clone(), true
	}
	return Task{}, false
}

// Resolve expands an id or unique id prefix to a full task id.
func (s *Store) Resolve(prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("empty task id")
	}
	if s.index(prefix) >= 0 {
		return prefix, nil
	}
	var match string
	for _, t := range s.tasks {
		if !strings.HasPrefix(t.ID, prefix) || t.ID == match {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("task id prefix %q is ambiguous", prefix)
		}
		match = t.ID
	}
	if match == "" {
		return "", fmt.Errorf("task %q: %w", prefix, ErrTaskNotFound)
	}
	return match, nil
}

// Replace swaps the in-memory list, e.g. after a reload.
func (s *Store) Replace(tasks []Task) {
	s.tasks = make([]Task, len(tasks))
	for i, t := range tasks {
		s.tasks[i] = t.Clone()
	}
}

// Reload re-reads the file and replaces the in-memory list.
func (s *Store) Reload() error {
	tasks, err := Load(s.path)
	if err != nil {
		return err
	}
	s.tasks = tasks
	return nil
}

// Save persists the current list.
func (s *Store) Save() error {
	return Save(s.path, s.tasks)
}

// AddTask creates a task in category with a single unticked marker.
func (s *Store) AddTask(text string, category Category) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, &ValidationError{Path: "Text", Err: fmt.Errorf("missing required field")}
	}
	if !category.Valid() {
		return Task{}, &ValidationError{
			Path: "OriginalCategory",
			Err:  fmt.Errorf("invalid category %q, must be one of: %s", category, joinCategories()),
		}
	}

	task := Task{
		ID:               NewID(),
		Text:             text,
		OriginalCategory: category,
		MarkerStates:     []bool{false},
	}
	s.tasks = append(s.tasks, task)
	if err := s.Save(); err != nil {
		return Task{}, err
	}
	return task.Clone(), nil
}

// RemoveTask deletes every record with id. An unknown id still persists
// and succeeds.
func (s *Store) RemoveTask(id string) error {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	return s.Save()
}

// UpsertDayAssignment plans the task ref.ID onto day. When no record exists
// yet, one is inserted from ref with the given markers (a single unticked
// marker when markers is nil). An empty day clears the assignment.
func (s *Store) UpsertDayAssignment(ref Ref, day Day, markers []bool) (Task, error) {
	if ref.ID == "" {
		return Task{}, &ValidationError{Path: "ID", Err: fmt.Errorf("missing required field")}
	}
	if day != "" && !day.Valid() {
		return Task{}, &ValidationError{Path: "DayAssignment", Err: fmt.Errorf("invalid day %q", day)}
	}

	i := s.index(ref.ID)
	if i >= 0 {
		s.tasks[i].DayAssignment = day
	} else {
		if ref.Category != "" && !ref.Category.Valid() {
			return Task{}, &ValidationError{
				Path: "OriginalCategory",
				Err:  fmt.Errorf("invalid category %q, must be one of: %s", ref.Category, joinCategories()),
			}
		}
		if markers == nil {
			markers = []bool{false}
		}
		if len(markers) > MaxMarkers {
			markers = markers[:MaxMarkers]
		}
		s.tasks = append(s.tasks, Task{
			ID:               ref.ID,
			Text:             ref.Text,
			OriginalCategory: ref.Category,
			DayAssignment:    day,
			MarkerStates:     CopyMarkers(markers),
		})
		i = len(s.tasks) - 1
	}

	if err := s.Save(); err != nil {
		return Task{}, err
	}
	return s.tasks[i].Clone(), nil
}

// SetCategory moves the task to another quadrant.
func (s *Store) SetCategory(id string, category Category) error {
	if !category.Valid() {
		return &ValidationError{
			Path: "OriginalCategory",
			Err:  fmt.Errorf("invalid category %q, must be one of: %s", category, joinCategories()),
		}
	}
	return s.update(id, func(t *Task) { t.OriginalCategory = category })
}

// SetText replaces the task text.
func (s *Store) SetText(id, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return &ValidationError{Path: "Text", Err: fmt.Errorf("missing required field")}
	}
	return s.update(id, func(t *Task) { t.Text = text })
}

// SetMarkers replaces the marker list in memory only. Callers persist with
// Save once their own state is consistent.
func (s *Store) SetMarkers(id string, markers []bool) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	for ; i < len(s.tasks); i++ {
		if s.tasks[i].ID == id {
			s.tasks[i].MarkerStates = CopyMarkers(markers)
		}
	}
	return true
}

func (s *Store) update(id string, updater func(*Task)) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("task %q: %w", id, ErrTaskNotFound)
	}
	for ; i < len(s.tasks); i++ {
		if s.tasks[i].ID == id {
			updater(&s.tasks[i])
		}
	}
	return s.Save()
}

func (s *Store) index(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
