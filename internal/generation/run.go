package generation

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/desertwitch/protogen/internal/compiler"
	"github.com/desertwitch/protogen/internal/manifest"
	"github.com/desertwitch/protogen/internal/queue"
	"github.com/desertwitch/protogen/internal/schema"
	"github.com/google/uuid"
)

// Run executes a generation run with the given [Settings].
//
// Enumeration errors and failures to mirror a directory abort the run. Failing
// compiler invocations do not: every schema file is attempted, and the
// failures are returned joined with [ErrGenerationFailed] at the end. A
// cancelled context stops the running compiler, starts no further jobs and
// is returned as the error. The [Report] is returned in every case but the
// aborted ones.
func (g *Handler) Run(ctx context.Context, s Settings) (*Report, error) {
	if s.RunID == "" {
		s.RunID = uuid.NewString()
	}

	if s.ManifestPath == "" {
		s.ManifestPath = filepath.Join(s.OutputRoot, manifest.DefaultName)
	}

	report := &Report{
		RunID:     s.RunID,
		StartTime: g.now(),
	}

	g.logger.Info("Discovering schema files...", "input", s.InputRoot, "output", s.OutputRoot, "ext", s.Extension)

	dirs, err := g.fsHandler.Enumerate(ctx, s.InputRoot, s.OutputRoot, s.Extension)
	if err != nil {
		return nil, fmt.Errorf("(generation) %w", err)
	}

	q := queue.NewGenericQueue[*schema.Job]()
	discovered := make(map[string]struct{})

	for _, dir := range dirs {
		report.Directories++

		if err := g.mirror(dir, s.DryRun, report); err != nil {
			return nil, err
		}

		for _, job := range dir.Files {
			discovered[job.RelPath] = struct{}{}
			report.Discovered++
			report.SchemaBytes += job.Size
		}

		q.Enqueue(dir.Files...)
	}

	g.logger.Info("Discovered schema files.",
		"files", report.Discovered,
		"dirs", report.Directories,
		"created", report.DirsCreated,
	)

	var m *manifest.Manifest
	if s.Incremental {
		m = g.loadManifest(s.ManifestPath)
	}

	g.current.Store(q)

	var resultsLock sync.Mutex
	results := make(map[*schema.Job]*schema.Result, q.Len())

	processFunc := func(job *schema.Job) int {
		res := g.processJob(ctx, s, m, job)

		resultsLock.Lock()
		results[job] = res
		resultsLock.Unlock()

		switch res.Status {
		case schema.StatusFailed:
			return queue.DecisionFailed
		case schema.StatusUpToDate, schema.StatusDryRun:
			return queue.DecisionSkipped
		case schema.StatusGenerated, schema.StatusPending:
		}

		return queue.DecisionSuccess
	}

	var procErr error
	if s.Jobs > 1 {
		procErr = q.DequeueAndProcessConc(ctx, s.Jobs, processFunc)
	} else {
		procErr = q.DequeueAndProcess(ctx, processFunc)
	}

	var failures []error

	for _, dir := range dirs {
		for _, job := range dir.Files {
			res, ok := results[job]
			if !ok {
				continue
			}

			report.add(res)

			if res.Status == schema.StatusFailed && (ctx.Err() == nil || !errors.Is(res.Err, ctx.Err())) {
				failures = append(failures, fmt.Errorf("%s: %w", job.RelPath, res.Err))
			}
		}
	}

	if m != nil && !s.DryRun {
		if err := g.saveManifest(m, s, discovered); err != nil {
			failures = append(failures, err)
		}
	}

	report.FinishTime = g.now()

	if procErr != nil {
		g.logger.Warn("Generation was interrupted.", "summary", report.Summary())

		return report, fmt.Errorf("(generation) %w", procErr)
	}

	if len(failures) > 0 {
		g.logger.Error("Generation finished with failures.", "summary", report.Summary())

		return report, fmt.Errorf("(generation) %w", errors.Join(append([]error{ErrGenerationFailed}, failures...)...))
	}

	g.logger.Info("Generation finished.", "summary", report.Summary())

	return report, nil
}

// mirror ensures the congruent output directory of a visited input directory
// exists. A dry run only reports what would be created.
func (g *Handler) mirror(dir *schema.Directory, dryRun bool, report *Report) error {
	if dryRun {
		g.logger.Debug("Would mirror directory.", "dir", dir.RelPath, "path", dir.DestPath)

		return nil
	}

	created, err := g.fsHandler.EnsureDirectory(dir.DestPath)
	if err != nil {
		g.logger.Error("Failed to mirror directory.", "dir", dir.RelPath, "path", dir.DestPath, "err", err)

		return fmt.Errorf("(generation) %w: %s: %w", ErrMirrorFailed, dir.RelPath, err)
	}

	report.DirsCreated += len(created)

	for _, path := range created {
		g.logger.Debug("Created directory.", "path", path)
	}

	return nil
}

func (g *Handler) loadManifest(path string) *manifest.Manifest {
	m, err := manifest.Load(path)
	if err != nil {
		g.logger.Warn("Unusable manifest, regenerating all schema files.", "path", path, "err", err)

		return manifest.New()
	}

	g.logger.Debug("Loaded manifest.", "path", path, "entries", m.Len(), "lastRun", m.LastRun())

	return m
}

func (g *Handler) saveManifest(m *manifest.Manifest, s Settings, discovered map[string]struct{}) error {
	for _, rel := range m.Prune(discovered) {
		g.logger.Debug("Removed vanished schema file from manifest.", "file", rel)
	}

	m.SetLastRun(s.RunID)

	if err := m.Save(s.ManifestPath); err != nil {
		g.logger.Error("Failed to save manifest.", "path", s.ManifestPath, "err", err)

		return fmt.Errorf("%w: %w", ErrManifestSave, err)
	}

	return nil
}

// processJob handles a single schema file and never returns without a
// [schema.Result].
func (g *Handler) processJob(ctx context.Context, s Settings, m *manifest.Manifest, job *schema.Job) *schema.Result {
	res := &schema.Result{Job: job, ExitCode: -1}

	inv := g.compilerHandler.Invocation(job)
	key := compiler.InvocationKey(inv)

	if m != nil {
		digest, err := manifest.Digest(g.fsHandler, job.SchemaPath)
		if err != nil {
			res.Status = schema.StatusFailed
			res.Err = err
			g.logger.Error("Failed to read schema file.", "file", job.RelPath, "err", err)

			return res
		}
		job.Digest = digest

		if m.IsUpToDate(job.RelPath, digest, key) {
			res.Status = schema.StatusUpToDate
			g.logger.Info("Up to date.", "file", job.RelPath)

			return res
		}
	}

	if s.DryRun {
		res.Status = schema.StatusDryRun
		g.logger.Info("Would generate.", "file", job.RelPath, "cmd", key)

		return res
	}

	g.logger.Info("Generating...", "file", job.RelPath, "out", job.OutputDir, "cmd", key)

	outcome, err := g.compilerHandler.Run(ctx, inv, func(line string) {
		g.emit(job, line, s.Jobs > 1)
	})
	if outcome != nil {
		res.ExitCode = outcome.ExitCode
		res.Lines = outcome.Lines
		res.Duration = outcome.Duration
	}

	if err != nil {
		res.Status = schema.StatusFailed
		res.Err = err

		if ctx.Err() == nil {
			g.logger.Error("Generation failed.", "file", job.RelPath, "exitCode", res.ExitCode, "err", err)
		}
	} else {
		res.Status = schema.StatusGenerated
		g.logger.Info("Generated.", "file", job.RelPath, "duration", res.Duration.Round(time.Millisecond))
	}

	if m != nil && ctx.Err() == nil {
		m.Put(job.RelPath, manifest.Entry{
			Digest:      job.Digest,
			Invocation:  key,
			Succeeded:   err == nil,
			GeneratedAt: g.now().UTC(),
		})
	}

	return res
}

// emit writes a compiler output line to the line log and echoes it. Lines
// are prefixed with their schema file when jobs run concurrently.
func (g *Handler) emit(job *schema.Job, line string, tagged bool) {
	g.lineLogger.Info("output", "file", job.RelPath, "line", line)

	g.echoLock.Lock()
	defer g.echoLock.Unlock()

	if tagged {
		fmt.Fprintf(g.echo, "%s: %s\n", job.RelPath, line)
	} else {
		fmt.Fprintln(g.echo, line)
	}
}
