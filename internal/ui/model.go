// Package ui provides the terminal board: four quadrants, the pool of
// unplanned tasks, and a week of day panels, all kept in sync through
// board.Board.
package ui

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/taskmatrix/internal/board"
	"github.com/nibzard/taskmatrix/internal/todo"
)

type mode int

const (
	modeNormal mode = iota
	modeAdd
	modeRename
	modeAssign
	modeMove
)

// cardView is the last snapshot the board rendered into a card.
type cardView struct {
	markers   []bool
	allTicked bool
}

// Option configures a Model.
type Option func(*Model)

// WithLogger routes UI and board events to logger.
func WithLogger(logger *log.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithChanges sets the channel signalling that the task file changed on
// disk.
func WithChanges(ch <-chan struct{}) Option {
	return func(m *Model) {
		m.changes = ch
	}
}

// WithWatch enables reloading when the task file changes on disk. Run
// creates the watcher.
func WithWatch(enabled bool) Option {
	return func(m *Model) {
		m.watch = enabled
	}
}

// Model is the bubbletea model of the board.
type Model struct {
	board   *board.Board[Card]
	logger  *log.Logger
	keys    KeyMap
	help    help.Model
	input   textinput.Model
	changes <-chan struct{}
	watch   bool

	panels [numPanels][]Card
	views  map[Card]cardView
	refs   map[string]todo.Ref
	focus  Panel
	cursor [numPanels]int

	mode     mode
	status   string
	err      error
	width    int
	height   int
	quitting bool
	flushErr error
}

type fileChangedMsg struct{}

// New builds the model over store and lays out every task.
func New(store *todo.Store, opts ...Option) *Model {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Prompt = "> "

	m := &Model{
		logger: log.New(io.Discard),
		keys:   DefaultKeyMap(),
		help:   help.New(),
		input:  ti,
		views:  make(map[Card]cardView),
		refs:   make(map[string]todo.Ref),
		width:  120,
		height: 40,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.board = board.New(store,
		board.WithRenderer[Card](m.renderCard),
		board.WithRemover[Card](m.removeCard),
		board.WithLogger[Card](m.logger),
	)
	m.rebuild()
	return m
}

// Board returns the synchronizer behind the model.
func (m *Model) Board() *board.Board[Card] {
	return m.board
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.changes != nil {
		return waitForChange(m.changes)
	}
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case fileChangedMsg:
		m.handleFileChanged()
		return m, waitForChange(m.changes)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeAdd, modeRename:
		return m.handleInputKey(msg)
	case modeAssign:
		m.mode = modeNormal
		if key.Matches(msg, m.keys.Cancel) {
			m.setStatus("")
			return m, nil
		}
		day, err := todo.ParseDay(msg.String())
		if err != nil || day == "" {
			m.setStatus("plan cancelled: press 1-7 for Monday-Sunday")
			return m, nil
		}
		m.assignDay(day)
		return m, nil
	case modeMove:
		m.mode = modeNormal
		if key.Matches(msg, m.keys.Cancel) {
			m.setStatus("")
			return m, nil
		}
		category, err := todo.ParseCategory(msg.String())
		if err != nil {
			m.setStatus("move cancelled: press 1-4 for a quadrant")
			return m, nil
		}
		m.moveTo(category)
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Left):
		m.focus = m.focus.left()
	case key.Matches(msg, m.keys.Right):
		m.focus = m.focus.right()
	case key.Matches(msg, m.keys.NextPanel):
		m.focus = (m.focus + 1) % numPanels
	case key.Matches(msg, m.keys.Up):
		if m.cursor[m.focus] > 0 {
			m.cursor[m.focus]--
		} else {
			m.focus = m.focus.up()
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor[m.focus] < len(m.panels[m.focus])-1 {
			m.cursor[m.focus]++
		} else {
			m.focus = m.focus.down()
		}
	case key.Matches(msg, m.keys.Toggle):
		m.toggle(0)
	case key.Matches(msg, m.keys.Marker):
		m.toggle(int(msg.String()[0] - '1'))
	case key.Matches(msg, m.keys.AddMarker):
		m.addMarker()
	case key.Matches(msg, m.keys.Delete):
		m.deleteSelected()
	case key.Matches(msg, m.keys.Assign):
		if _, ok := m.selected(); ok {
			m.mode = modeAssign
			m.setStatus("plan on which day? 1=Mon .. 7=Sun, esc cancels")
		}
	case key.Matches(msg, m.keys.Unassign):
		m.unassign()
	case key.Matches(msg, m.keys.Move):
		if _, ok := m.selected(); ok {
			m.mode = modeMove
			m.setStatus("move to which quadrant? 1-4, esc cancels")
		}
	case key.Matches(msg, m.keys.Add):
		if _, ok := m.focus.Category(); !ok {
			m.setStatus("focus a quadrant to add a task")
			return m, nil
		}
		m.mode = modeAdd
		m.input.SetValue("")
		m.input.Placeholder = "New task"
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Rename):
		card, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.mode = modeRename
		m.input.SetValue(m.refs[card.TaskID].Text)
		m.input.CursorEnd()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Reload):
		m.reload("reloaded")
	}
	return m, nil
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeNormal
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		text := m.input.Value()
		editing := m.mode
		m.mode = modeNormal
		m.input.Blur()
		if editing == modeAdd {
			m.addTask(text)
		} else {
			m.renameSelected(text)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	if err := m.board.Flush(); err != nil {
		m.flushErr = err
		m.logger.Error("flush on quit failed", "err", err)
	}
	return tea.Quit
}

// rebuild clears every panel and lays out the tasks from the store. A task
// without a day gets a card in its quadrant and one in the pool; a planned
// task gets a card in its day panel only. Unrecognised days and categories
// count as unset, so such records still land in the pool.
func (m *Model) rebuild() {
	for p := range m.panels {
		m.panels[p] = nil
	}
	clear(m.views)
	clear(m.refs)

	for _, t := range m.board.Tasks() {
		if _, seen := m.refs[t.ID]; !seen {
			m.refs[t.ID] = todo.Ref{ID: t.ID, Text: t.Text, Category: t.OriginalCategory}
		}
		if t.DayAssignment.Valid() {
			m.addCard(Card{Panel: DayPanel(t.DayAssignment), TaskID: t.ID})
			continue
		}
		if t.OriginalCategory.Valid() {
			m.addCard(Card{Panel: QuadrantPanel(t.OriginalCategory), TaskID: t.ID})
		}
		m.addCard(Card{Panel: PanelPool, TaskID: t.ID})
	}
	m.clampCursors()
}

// addCard shows c and registers it with the board, which renders it once.
func (m *Model) addCard(c Card) {
	for _, existing := range m.panels[c.Panel] {
		if existing == c {
			return
		}
	}
	m.panels[c.Panel] = append(m.panels[c.Panel], c)
	m.board.RegisterClone(c.TaskID, c)
}

func (m *Model) renderCard(c Card, _ string, markers []bool, allTicked bool) {
	m.views[c] = cardView{markers: markers, allTicked: allTicked}
}

func (m *Model) removeCard(c Card) {
	list := m.panels[c.Panel]
	for i, existing := range list {
		if existing == c {
			m.panels[c.Panel] = append(list[:i], list[i+1:]...)
			break
		}
	}
	delete(m.views, c)
	m.clampCursors()
}

func (m *Model) clampCursors() {
	for p := range m.panels {
		n := len(m.panels[p])
		if m.cursor[p] >= n {
			m.cursor[p] = max(n-1, 0)
		}
	}
}

func (m *Model) selected() (Card, bool) {
	list := m.panels[m.focus]
	i := m.cursor[m.focus]
	if i < 0 || i >= len(list) {
		return Card{}, false
	}
	return list[i], true
}

// cardsOf returns every card currently shown for taskID.
func (m *Model) cardsOf(taskID string) []Card {
	var out []Card
	for p := range m.panels {
		for _, c := range m.panels[p] {
			if c.TaskID == taskID {
				out = append(out, c)
			}
		}
	}
	return out
}

func (m *Model) toggle(index int) {
	card, ok := m.selected()
	if !ok {
		return
	}
	m.report(m.board.ToggleMarker(card.TaskID, index), "")
}

func (m *Model) addMarker() {
	card, ok := m.selected()
	if !ok {
		return
	}
	if markers, _ := m.board.Markers(card.TaskID); len(markers) >= todo.MaxMarkers {
		m.setStatus(fmt.Sprintf("a task has at most %d markers", todo.MaxMarkers))
		return
	}
	m.report(m.board.AddMarker(card.TaskID), "")
}

// deleteSelected removes only the focused card in a day panel and the whole
// task everywhere else.
func (m *Model) deleteSelected() {
	card, ok := m.selected()
	if !ok {
		return
	}
	if card.Panel.IsDay() {
		m.board.DeleteLocal(card.TaskID, card)
		m.setStatus("removed from " + card.Panel.Title())
		return
	}
	text := m.refs[card.TaskID].Text
	err := m.board.DeleteGlobal(card.TaskID)
	delete(m.refs, card.TaskID)
	m.report(err, fmt.Sprintf("deleted %q", text))
}

func (m *Model) addTask(text string) {
	category, ok := m.focus.Category()
	if !ok {
		return
	}
	t, err := m.board.AddTask(text, category)
	if err != nil {
		m.report(err, "")
		return
	}
	m.refs[t.ID] = todo.Ref{ID: t.ID, Text: t.Text, Category: t.OriginalCategory}
	m.addCard(Card{Panel: QuadrantPanel(category), TaskID: t.ID})
	m.addCard(Card{Panel: PanelPool, TaskID: t.ID})
	m.cursor[m.focus] = len(m.panels[m.focus]) - 1
	m.setStatus(fmt.Sprintf("added %q", t.Text))
}

func (m *Model) renameSelected(text string) {
	card, ok := m.selected()
	if !ok {
		return
	}
	if err := m.board.RenameTask(card.TaskID, text); err != nil {
		m.report(err, "")
		return
	}
	if t, ok := m.board.Task(card.TaskID); ok {
		ref := m.refs[card.TaskID]
		ref.Text = t.Text
		m.refs[card.TaskID] = ref
	}
	m.setStatus("renamed")
}

// assignDay plans the focused task on day. Its quadrant, pool, and other
// day cards are replaced by a single card in the day panel.
func (m *Model) assignDay(day todo.Day) {
	card, ok := m.selected()
	if !ok {
		return
	}
	ref, ok := m.refs[card.TaskID]
	if !ok {
		ref = todo.Ref{ID: card.TaskID}
	}
	if _, err := m.board.UpsertDayAssignment(ref, day); err != nil {
		m.report(err, "")
		return
	}
	target := Card{Panel: DayPanel(day), TaskID: card.TaskID}
	for _, c := range m.cardsOf(card.TaskID) {
		if c != target {
			m.board.DeleteLocal(c.TaskID, c)
		}
	}
	m.addCard(target)
	m.setStatus(fmt.Sprintf("planned %q on %s", ref.Text, day))
}

// unassign clears the day of the focused task and returns it to its
// quadrant and the pool.
func (m *Model) unassign() {
	card, ok := m.selected()
	if !ok {
		return
	}
	t, ok := m.board.Task(card.TaskID)
	if !ok || !t.DayAssignment.Valid() {
		m.setStatus("task is not planned")
		return
	}
	if _, err := m.board.UpsertDayAssignment(m.refs[card.TaskID], ""); err != nil {
		m.report(err, "")
		return
	}
	for _, c := range m.cardsOf(card.TaskID) {
		if c.Panel.IsDay() {
			m.board.DeleteLocal(c.TaskID, c)
		}
	}
	if t.OriginalCategory.Valid() {
		m.addCard(Card{Panel: QuadrantPanel(t.OriginalCategory), TaskID: t.ID})
	}
	m.addCard(Card{Panel: PanelPool, TaskID: t.ID})
	m.setStatus(fmt.Sprintf("unplanned %q", t.Text))
}

// moveTo changes the quadrant of the focused task. An unplanned task's
// quadrant card follows it.
func (m *Model) moveTo(category todo.Category) {
	card, ok := m.selected()
	if !ok {
		return
	}
	if err := m.board.MoveTask(card.TaskID, category); err != nil {
		m.report(err, "")
		return
	}
	ref := m.refs[card.TaskID]
	ref.Category = category
	m.refs[card.TaskID] = ref

	moved := false
	for _, c := range m.cardsOf(card.TaskID) {
		if _, isQuadrant := c.Panel.Category(); isQuadrant {
			m.board.DeleteLocal(c.TaskID, c)
			moved = true
		}
	}
	if moved {
		m.addCard(Card{Panel: QuadrantPanel(category), TaskID: card.TaskID})
	}
	m.setStatus("moved to " + category.Label())
}

func (m *Model) reload(status string) {
	if err := m.board.Reload(); err != nil {
		m.report(err, "")
		return
	}
	m.rebuild()
	m.setStatus(status)
}

// handleFileChanged reloads when the file on disk differs from what this
// process last wrote.
func (m *Model) handleFileChanged() {
	changed, err := m.externalChange()
	if err != nil {
		m.logger.Warn("checking task file failed", "err", err)
		return
	}
	if !changed {
		return
	}
	m.logger.Info("task file changed on disk", "path", m.board.Store().Path())
	m.reload("reloaded: task file changed on disk")
}

func (m *Model) externalChange() (bool, error) {
	data, err := os.ReadFile(m.board.Store().Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return m.board.Store().Len() > 0, nil
		}
		return false, err
	}
	want, err := todo.Encode(m.board.Tasks())
	if err != nil {
		return false, err
	}
	return !bytes.Equal(data, want), nil
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.err = nil
}

// report shows err in the status line, or ok when there is no error. The
// board keeps running either way.
func (m *Model) report(err error, ok string) {
	if err != nil {
		m.err = err
		m.status = ""
		m.logger.Error("operation failed", "err", err)
		return
	}
	m.setStatus(ok)
}
