// Package ui implements a command-line user interface using [tea], showing
// the progress of a generation run next to its log output.
package ui

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertwitch/protogen/internal/queue"
)

type progressProvider interface {
	Progress() queue.Progress
}

// Handler is the principal implementation of a user interface [Handler].
type Handler struct {
	progressHandler progressProvider
	program         *tea.Program

	LogWriter *TeaLogWriter

	Initialized atomic.Bool
	Failed      atomic.Bool
}

// NewHandler returns a pointer to a new user interface [Handler]. The cancel
// function is called when the user asks to abort the run.
func NewHandler(ctx context.Context, cancel context.CancelFunc, progressHandler progressProvider) *Handler {
	handler := &Handler{
		progressHandler: progressHandler,
	}

	model := NewTeaModel(handler, cancel)
	handler.program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	handler.LogWriter = NewTeaLogWriter(handler.program)

	return handler
}

// Launch starts the command-line user interface (the [tea.Program]) and
// blocks until it has exited.
func (uiHandler *Handler) Launch() error {
	defer uiHandler.LogWriter.Stop()

	if _, err := uiHandler.program.Run(); err != nil {
		uiHandler.Failed.Store(true)

		return fmt.Errorf("(ui) %w", err)
	}

	return nil
}

// Quit asks the [tea.Program] to exit, e.g. once a run has finished.
func (uiHandler *Handler) Quit() {
	uiHandler.program.Quit()
}

// Writer returns the [io.Writer] feeding the log panel.
func (uiHandler *Handler) Writer() io.Writer {
	return uiHandler.LogWriter
}

// Started returns whether the [tea.Program] is up and running, or has failed
// to come up at all.
func (uiHandler *Handler) Started() bool {
	return uiHandler.Initialized.Load() || uiHandler.Failed.Load()
}
