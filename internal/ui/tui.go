package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/taskmatrix/internal/todo"
)

// Run starts the board on store and blocks until the user quits or ctx is
// cancelled. Marker state is flushed to disk on the way out.
func Run(ctx context.Context, store *todo.Store, opts ...Option) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := New(store, opts...)
	if model.watch && model.changes == nil {
		w, err := NewWatcher(store.Path(), model.logger)
		if err != nil {
			model.logger.Warn("file watching disabled", "err", err)
		} else {
			defer w.Close()
			model.changes = w.Changes()
		}
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if !model.quitting {
		if flushErr := model.board.Flush(); flushErr != nil {
			return flushErr
		}
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return model.flushErr
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
