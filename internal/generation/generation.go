// Package generation implements the generation driver. A run discovers all
// schema files below the input root, mirrors every visited directory below
// the output root and invokes the compiler once per schema file, streaming
// the compiler output to the log sink and the console.
package generation

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/desertwitch/protogen/internal/compiler"
	"github.com/desertwitch/protogen/internal/queue"
	"github.com/desertwitch/protogen/internal/schema"
)

type fsProvider interface {
	Enumerate(ctx context.Context, inputRoot string, outputRoot string, ext string) ([]*schema.Directory, error)
	EnsureDirectory(path string) ([]string, error)
	Open(name string) (*os.File, error)
}

type compilerProvider interface {
	Invocation(job *schema.Job) schema.Invocation
	Run(ctx context.Context, inv schema.Invocation, onLine func(string)) (*compiler.Outcome, error)
}

// Settings are the settings of a single generation run.
type Settings struct {
	RunID        string
	InputRoot    string
	OutputRoot   string
	Extension    string
	Jobs         int
	Incremental  bool
	ManifestPath string
	DryRun       bool
}

// Sinks are the destinations of a run's output. Logger receives the driver's
// events, LineLogger receives one record per compiler output line and Echo
// receives the raw compiler output lines.
type Sinks struct {
	Logger     *slog.Logger
	LineLogger *slog.Logger
	Echo       io.Writer
}

// Handler is the principal implementation of the generation driver.
type Handler struct {
	fsHandler       fsProvider
	compilerHandler compilerProvider

	logger     *slog.Logger
	lineLogger *slog.Logger

	echoLock sync.Mutex
	echo     io.Writer

	current atomic.Pointer[queue.GenericQueue[*schema.Job]]
	now     func() time.Time
}

// NewHandler returns a pointer to a new generation [Handler]. Unset sinks
// fall back to [slog.Default] for the loggers and [io.Discard] for the echo.
func NewHandler(fsHandler fsProvider, compilerHandler compilerProvider, sinks Sinks) *Handler {
	if sinks.Logger == nil {
		sinks.Logger = slog.Default()
	}

	if sinks.LineLogger == nil {
		sinks.LineLogger = sinks.Logger
	}

	if sinks.Echo == nil {
		sinks.Echo = io.Discard
	}

	return &Handler{
		fsHandler:       fsHandler,
		compilerHandler: compilerHandler,
		logger:          sinks.Logger,
		lineLogger:      sinks.LineLogger,
		echo:            sinks.Echo,
		now:             time.Now,
	}
}

// Progress returns the [queue.Progress] of the currently running (or the last)
// run, or an empty one if no jobs were queued yet.
func (g *Handler) Progress() queue.Progress {
	q := g.current.Load()
	if q == nil {
		return queue.Progress{}
	}

	return q.Progress()
}
