// Package board keeps every visual clone of a task consistent with one
// shared marker state and persists each change through the task store.
//
// A presentation layer builds one clone per place a task is shown (its
// quadrant, the pool, a day panel) and registers each with the Board under
// a handle of its choosing. Marker edits made through any clone are applied
// to the shared state and pushed back to every clone through the render
// callback. Deleting through a clone removes either every clone and the task
// itself (DeleteGlobal) or just that clone (DeleteLocal).
//
// A Board is not safe for concurrent use. All calls are expected from the
// single goroutine that owns the presentation event loop.
package board

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskmatrix/internal/todo"
)

// RenderFunc redraws clone h of taskID from a snapshot of its markers.
// allTicked is true when there is at least one marker and all are ticked.
type RenderFunc[H comparable] func(h H, taskID string, markers []bool, allTicked bool)

// RemoveFunc detaches clone h from the presentation layer.
type RemoveFunc[H comparable] func(h H)

// Option configures a Board.
type Option[H comparable] func(*Board[H])

// WithRenderer sets the render callback.
func WithRenderer[H comparable](fn RenderFunc[H]) Option[H] {
	return func(b *Board[H]) {
		b.render = fn
	}
}

// WithRemover sets the clone removal callback.
func WithRemover[H comparable](fn RemoveFunc[H]) Option[H] {
	return func(b *Board[H]) {
		b.remove = fn
	}
}

// WithLogger routes board events to logger.
func WithLogger[H comparable](logger *log.Logger) Option[H] {
	return func(b *Board[H]) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Board owns the clone registry and the marker state for every task.
type Board[H comparable] struct {
	store   *todo.Store
	clones  map[string][]H
	markers map[string][]bool
	render  RenderFunc[H]
	remove  RemoveFunc[H]
	logger  *log.Logger
}

// New builds a Board over store and seeds marker state from its records.
func New[H comparable](store *todo.Store, opts ...Option[H]) *Board[H] {
	b := &Board[H]{
		store:  store,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.reset()
	return b
}

// reset drops every clone and rebuilds marker state from the store. The
// first record for an id wins when the file holds duplicates.
func (b *Board[H]) reset() {
	b.clones = make(map[string][]H)
	b.markers = make(map[string][]bool)
	for _, t := range b.store.Tasks() {
		if _, ok := b.markers[t.ID]; ok {
			continue
		}
		b.markers[t.ID] = todo.CopyMarkers(t.MarkerStates)
	}
}

// Reload re-reads the task file and resets all in-memory state. Registered
// clones are forgotten without calling the removal callback; the caller is
// rebuilding its view anyway.
func (b *Board[H]) Reload() error {
	if err := b.store.Reload(); err != nil {
		return err
	}
	b.reset()
	b.logger.Debug("reloaded task file", "path", b.store.Path(), "tasks", b.store.Len())
	return nil
}

// Flush writes current marker state into the store and saves it.
func (b *Board[H]) Flush() error {
	return b.persist()
}

// Store returns the underlying task store.
func (b *Board[H]) Store() *todo.Store {
	return b.store
}

// Tasks returns the task list with current marker state applied.
func (b *Board[H]) Tasks() []todo.Task {
	b.syncMarkers()
	return b.store.Tasks()
}

// Task returns one task with current marker state applied.
func (b *Board[H]) Task(id string) (todo.Task, bool) {
	t, ok := b.store.Get(id)
	if !ok {
		return t, false
	}
	if m, ok := b.markers[id]; ok {
		t.MarkerStates = todo.CopyMarkers(m)
	}
	return t, true
}

// Markers returns a copy of the marker state for id.
func (b *Board[H]) Markers(id string) ([]bool, bool) {
	m, ok := b.markers[id]
	if !ok {
		return nil, false
	}
	return todo.CopyMarkers(m), true
}

// AllTicked reports whether id has markers and all are ticked.
func (b *Board[H]) AllTicked(id string) bool {
	return todo.AllTicked(b.markers[id])
}

// Clones returns the registered handles for id in registration order.
func (b *Board[H]) Clones(id string) []H {
	out := make([]H, len(b.clones[id]))
	copy(out, b.clones[id])
	return out
}

// CloneCount returns the number of registered handles for id.
func (b *Board[H]) CloneCount(id string) int {
	return len(b.clones[id])
}

// RegisterClone adds h to the clones of taskID and renders it once. A task
// with no marker state yet starts with a single unticked marker; state
// loaded from disk is kept as is, even when empty.
func (b *Board[H]) RegisterClone(taskID string, h H) {
	if _, ok := b.markers[taskID]; !ok {
		b.markers[taskID] = []bool{false}
	}
	if b.indexOf(taskID, h) < 0 {
		b.clones[taskID] = append(b.clones[taskID], h)
	}
	b.renderOne(taskID, h)
}

// UnregisterClone forgets h. Marker state is left alone since other clones
// may still read it.
func (b *Board[H]) UnregisterClone(taskID string, h H) {
	i := b.indexOf(taskID, h)
	if i < 0 {
		return
	}
	list := b.clones[taskID]
	list = append(list[:i], list[i+1:]...)
	if len(list) == 0 {
		delete(b.clones, taskID)
		return
	}
	b.clones[taskID] = list
}

// ToggleMarker flips marker index of taskID, re-renders every clone, and
// saves. An unknown task or out-of-range index is ignored.
func (b *Board[H]) ToggleMarker(taskID string, index int) error {
	m, ok := b.markers[taskID]
	if !ok || index < 0 || index >= len(m) {
		return nil
	}
	m[index] = !m[index]
	b.logger.Debug("toggled marker", "task", taskID, "index", index, "ticked", m[index])
	b.RenderAll(taskID)
	return b.persist()
}

// AddMarker appends an unticked marker while taskID has fewer than
// todo.MaxMarkers, then re-renders and saves. Otherwise it does nothing.
func (b *Board[H]) AddMarker(taskID string) error {
	m, ok := b.markers[taskID]
	if !ok || len(m) >= todo.MaxMarkers {
		return nil
	}
	b.markers[taskID] = append(m, false)
	b.logger.Debug("added marker", "task", taskID, "count", len(m)+1)
	b.RenderAll(taskID)
	return b.persist()
}

// RenderAll pushes the current marker snapshot of taskID to every clone.
func (b *Board[H]) RenderAll(taskID string) {
	for _, h := range b.Clones(taskID) {
		b.renderOne(taskID, h)
	}
}

// DeleteGlobal removes every clone of taskID, its marker state, and the
// task record, then saves.
func (b *Board[H]) DeleteGlobal(taskID string) error {
	for _, h := range b.Clones(taskID) {
		if b.remove != nil {
			b.remove(h)
		}
	}
	delete(b.clones, taskID)
	delete(b.markers, taskID)
	b.syncMarkers()
	b.logger.Info("deleted task", "task", taskID)
	return b.store.RemoveTask(taskID)
}

// DeleteLocal removes clone h only. The task record, its marker state, and
// its other clones stay.
func (b *Board[H]) DeleteLocal(taskID string, h H) {
	if b.indexOf(taskID, h) < 0 {
		return
	}
	if b.remove != nil {
		b.remove(h)
	}
	b.UnregisterClone(taskID, h)
	b.logger.Debug("removed clone", "task", taskID, "remaining", b.CloneCount(taskID))
}

// AddTask creates and persists a task with a single unticked marker.
func (b *Board[H]) AddTask(text string, category todo.Category) (todo.Task, error) {
	b.syncMarkers()
	t, err := b.store.AddTask(text, category)
	if err != nil {
		return todo.Task{}, err
	}
	b.markers[t.ID] = todo.CopyMarkers(t.MarkerStates)
	b.logger.Info("added task", "task", t.ID, "category", t.OriginalCategory)
	return t, nil
}

// RemoveTask deletes the task record and its marker state. Clones are left
// to the caller; use DeleteGlobal to detach them as well.
func (b *Board[H]) RemoveTask(taskID string) error {
	delete(b.markers, taskID)
	b.syncMarkers()
	return b.store.RemoveTask(taskID)
}

// UpsertDayAssignment plans ref onto day, inserting a record from ref when
// the task was never persisted. The inserted record takes the current
// marker state.
func (b *Board[H]) UpsertDayAssignment(ref todo.Ref, day todo.Day) (todo.Task, error) {
	b.syncMarkers()
	var markers []bool
	if m, ok := b.markers[ref.ID]; ok {
		markers = todo.CopyMarkers(m)
	}
	t, err := b.store.UpsertDayAssignment(ref, day, markers)
	if err != nil {
		return todo.Task{}, err
	}
	if _, ok := b.markers[t.ID]; !ok {
		b.markers[t.ID] = todo.CopyMarkers(t.MarkerStates)
	}
	b.logger.Debug("assigned day", "task", t.ID, "day", day)
	return t, nil
}

// MoveTask changes the quadrant of taskID.
func (b *Board[H]) MoveTask(taskID string, category todo.Category) error {
	b.syncMarkers()
	return b.store.SetCategory(taskID, category)
}

// RenameTask replaces the text of taskID.
func (b *Board[H]) RenameTask(taskID, text string) error {
	b.syncMarkers()
	return b.store.SetText(taskID, text)
}

func (b *Board[H]) renderOne(taskID string, h H) {
	if b.render == nil {
		return
	}
	m := b.markers[taskID]
	b.render(h, taskID, todo.CopyMarkers(m), todo.AllTicked(m))
}

func (b *Board[H]) indexOf(taskID string, h H) int {
	for i, c := range b.clones[taskID] {
		if c == h {
			return i
		}
	}
	return -1
}

// syncMarkers copies marker state into the store records.
func (b *Board[H]) syncMarkers() {
	for id, m := range b.markers {
		b.store.SetMarkers(id, m)
	}
}

func (b *Board[H]) persist() error {
	b.syncMarkers()
	if err := b.store.Save(); err != nil {
		b.logger.Error("save failed", "path", b.store.Path(), "err", err)
		return err
	}
	return nil
}
