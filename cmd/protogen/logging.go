package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
)

const (
	logDirPerms  = 0o755
	logFilePerms = 0o644
)

// SlogManager is a [slog.Handler] fanning records out to a set of named
// handlers. Attributes and groups added to the manager are also applied to
// handlers that are added later on.
type SlogManager struct {
	sync.RWMutex
	handlers map[string]slog.Handler
	attrs    []slog.Attr
	groups   []string
}

// NewSlogManager returns a pointer to a new, empty [SlogManager].
func NewSlogManager() *SlogManager {
	return &SlogManager{
		handlers: make(map[string]slog.Handler),
	}
}

func (m *SlogManager) Enabled(ctx context.Context, level slog.Level) bool {
	m.RLock()
	defer m.RUnlock()

	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

// Handle passes the record to every handler enabled for its level. Errors of
// single handlers are not returned, so a broken sink does not silence the
// others.
func (m *SlogManager) Handle(ctx context.Context, r slog.Record) error {
	m.RLock()
	defer m.RUnlock()

	for _, h := range m.handlers {
		if h.Enabled(ctx, r.Level) {
			_ = h.Handle(ctx, r.Clone())
		}
	}

	return nil
}

func (m *SlogManager) WithAttrs(attrs []slog.Attr) slog.Handler {
	m.RLock()
	defer m.RUnlock()

	newLm := &SlogManager{
		handlers: make(map[string]slog.Handler, len(m.handlers)),
		attrs:    append(append([]slog.Attr{}, m.attrs...), attrs...),
		groups:   append([]string{}, m.groups...),
	}

	for name, h := range m.handlers {
		newLm.handlers[name] = h.WithAttrs(attrs)
	}

	return newLm
}

func (m *SlogManager) WithGroup(name string) slog.Handler {
	if name == "" {
		return m
	}

	m.RLock()
	defer m.RUnlock()

	newLm := &SlogManager{
		handlers: make(map[string]slog.Handler, len(m.handlers)),
		attrs:    append([]slog.Attr{}, m.attrs...),
		groups:   append(append([]string{}, m.groups...), name),
	}

	for handlerName, h := range m.handlers {
		newLm.handlers[handlerName] = h.WithGroup(name)
	}

	return newLm
}

// AddHandler adds (or replaces) the handler with the given name.
func (m *SlogManager) AddHandler(name string, handler slog.Handler) {
	m.Lock()
	defer m.Unlock()

	h := handler
	if len(m.attrs) > 0 {
		h = h.WithAttrs(m.attrs)
	}

	for _, group := range m.groups {
		h = h.WithGroup(group)
	}

	m.handlers[name] = h
}

// consoleWriter is the console destination of a run. It can be pointed at the
// user interface while it is shown and back at the terminal afterwards.
type consoleWriter struct {
	sync.RWMutex
	w io.Writer
}

func newConsoleWriter(w io.Writer) *consoleWriter {
	return &consoleWriter{w: w}
}

func (c *consoleWriter) Set(w io.Writer) {
	c.Lock()
	defer c.Unlock()

	c.w = w
}

func (c *consoleWriter) current() io.Writer {
	c.RLock()
	defer c.RUnlock()

	return c.w
}

func (c *consoleWriter) Write(p []byte) (int, error) {
	c.RLock()
	defer c.RUnlock()

	return c.w.Write(p) //nolint:wrapcheck
}

// runLogging holds the loggers of a generation run.
type runLogging struct {
	// Logger receives the driver events, both on the console and in the log
	// file.
	Logger *slog.Logger

	// LineLogger receives the captured compiler lines, which only go to the
	// log file since the console shows them unchanged.
	LineLogger *slog.Logger

	closers []io.Closer
}

// Close closes the log file of the run.
func (l *runLogging) Close() error {
	var err error
	for _, c := range l.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}

	return err
}

func parseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return l, fmt.Errorf("(log-level) %w: %q", ErrInvalidLogLevel, level)
	}

	return l, nil
}

// setupConsoleLogging sets the default logger to a tint console handler, for
// anything happening outside of a generation run.
func setupConsoleLogging(w io.Writer, level slog.Level) {
	slog.SetDefault(slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	))
}

// setupRunLogging opens (appends to) the log file, creating its parent
// directory if needed, and returns the loggers of the run. Every record in
// the file carries the run ID. The file always records informational events, so that
// no captured compiler line is lost to a stricter console level.
func setupRunLogging(logFile string, level string, runID string, console io.Writer) (*runLogging, error) {
	consoleLevel, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(logFile), logDirPerms); err != nil {
		return nil, fmt.Errorf("(log-setup) %w", err)
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, logFilePerms)
	if err != nil {
		return nil, fmt.Errorf("(log-setup) %w", err)
	}

	fileHandler := slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: min(consoleLevel, slog.LevelInfo),
	})

	manager := NewSlogManager()
	manager.AddHandler("console", tint.NewHandler(console, &tint.Options{
		Level:      consoleLevel,
		TimeFormat: time.Kitchen,
	}))
	manager.AddHandler("file", fileHandler.WithAttrs([]slog.Attr{slog.String("run_id", runID)}))

	return &runLogging{
		Logger:     slog.New(manager),
		LineLogger: slog.New(fileHandler).With("run_id", runID),
		closers:    []io.Closer{f},
	}, nil
}
