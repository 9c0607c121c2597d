package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/desertwitch/protogen/internal/compiler"
	"github.com/desertwitch/protogen/internal/filesystem"
	"github.com/desertwitch/protogen/internal/generation"
	"github.com/desertwitch/protogen/internal/schema"
	"github.com/desertwitch/protogen/internal/ui"
	"github.com/desertwitch/protogen/internal/validation"
	"github.com/google/uuid"
)

const uiPollInterval = 10 * time.Millisecond

// generationRunner is the part of a [generation.Handler] driven by the
// command.
type generationRunner interface {
	Run(ctx context.Context, s generation.Settings) (*generation.Report, error)
}

// settings resolves the command's flags into absolute generation settings.
func (g *GenerateCmd) settings(runID string) (generation.Settings, error) {
	input, err := filepath.Abs(g.Input)
	if err != nil {
		return generation.Settings{}, fmt.Errorf("(generate-input) %w", err)
	}

	output, err := filepath.Abs(g.Output)
	if err != nil {
		return generation.Settings{}, fmt.Errorf("(generate-output) %w", err)
	}

	var manifestPath string
	if g.Manifest != "" {
		if manifestPath, err = filepath.Abs(g.Manifest); err != nil {
			return generation.Settings{}, fmt.Errorf("(generate-manifest) %w", err)
		}
	}

	return generation.Settings{
		RunID:        runID,
		InputRoot:    input,
		OutputRoot:   output,
		Extension:    g.Ext,
		Jobs:         g.Jobs,
		Incremental:  g.Incremental,
		ManifestPath: manifestPath,
		DryRun:       g.DryRun,
	}, nil
}

// Run runs a generation with the command's flags.
func (g *GenerateCmd) Run(ctx context.Context, cancel context.CancelFunc, globals *Globals) error {
	runID := uuid.NewString()

	s, err := g.settings(runID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSetup, err)
	}

	console := newConsoleWriter(os.Stdout)

	logs, err := setupRunLogging(globals.LogFile, globals.LogLevel, runID, console)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSetup, err)
	}
	defer logs.Close()

	logger := logs.Logger

	osProvider := &schema.OS{}
	unixProvider := &schema.Unix{}
	execProvider := &schema.Exec{}

	validator := validation.NewHandler(osProvider, unixProvider, execProvider)

	warnings, err := validator.Validate(validation.Settings{
		InputRoot:    s.InputRoot,
		OutputRoot:   s.OutputRoot,
		CompilerPath: g.Protoc,
		Language:     g.Lang,
		Extension:    g.Ext,
		Jobs:         g.Jobs,
		Timeout:      g.Timeout,
	})
	for _, w := range warnings {
		logger.Warn("Compiler is not usable, schema files will fail.", "err", w)
	}
	if err != nil {
		logger.Error("Invalid configuration.", "err", err)

		return fmt.Errorf("%w: %w", ErrSetup, err)
	}

	fsHandler := filesystem.NewHandler(osProvider, unixProvider, &schema.FileWalker{}, logger)
	compilerHandler := compiler.NewHandler(execProvider, compiler.Settings{
		CompilerPath: g.Protoc,
		InputRoot:    s.InputRoot,
		Language:     g.Lang,
		ExtraArgs:    g.ExtraArg,
		Timeout:      g.Timeout,
	})
	genHandler := generation.NewHandler(fsHandler, compilerHandler, generation.Sinks{
		Logger:     logger,
		LineLogger: logs.LineLogger,
		Echo:       console,
	})

	var report *generation.Report
	if g.UI {
		uiHandler := ui.NewHandler(ctx, cancel, genHandler)
		report, err = runWithUI(ctx, genHandler, uiHandler, console, s, logger)
	} else {
		report, err = genHandler.Run(ctx, s)
	}

	return g.finish(logger, report, err)
}

// finish decides whether a run failed.
func (g *GenerateCmd) finish(logger *slog.Logger, report *generation.Report, err error) error {
	if err == nil {
		return nil
	}

	if g.IgnoreFailures && report != nil && onlyCompilerFailures(err) {
		logger.Warn("Ignoring failed schema files.", "failed", report.Failed)

		return nil
	}

	return fmt.Errorf("(generate) %w", err)
}

// onlyCompilerFailures returns whether a run completed and only compiler
// invocations failed, as opposed to a cancelled or aborted run.
func onlyCompilerFailures(err error) bool {
	return errors.Is(err, generation.ErrGenerationFailed) &&
		!errors.Is(err, generation.ErrManifestSave) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}

// uiRunner is the part of a [ui.Handler] driven by [runWithUI].
type uiRunner interface {
	Launch() error
	Quit()
	Writer() io.Writer
	Started() bool
}

// runWithUI runs the generation while the user interface is shown. The console
// output goes to the user interface until it exits, either on its own or once
// the run has finished. Should the user interface fail, the run continues on
// the terminal.
func runWithUI(ctx context.Context, runner generationRunner, uiHandler uiRunner, console *consoleWriter, s generation.Settings, logger *slog.Logger) (*generation.Report, error) {
	var wg sync.WaitGroup

	var report *generation.Report
	var runErr error

	terminal := console.current()
	console.Set(uiHandler.Writer())

	wg.Add(1)
	go func() {
		defer wg.Done()

		err := uiHandler.Launch()
		console.Set(terminal)

		if err != nil {
			logger.Error("UI failure: falling back to terminal.", "err", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()

		waitForUI(ctx, uiHandler)

		report, runErr = runner.Run(ctx, s)
		uiHandler.Quit()
	}()

	wg.Wait()

	return report, runErr
}

func waitForUI(ctx context.Context, uiHandler uiRunner) {
	ticker := time.NewTicker(uiPollInterval)
	defer ticker.Stop()

	for !uiHandler.Started() {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
