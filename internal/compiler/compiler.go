// Package compiler builds and runs the external schema compiler invocations,
// streaming the compiler's combined output line by line.
package compiler

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/desertwitch/protogen/internal/schema"
)

type execProvider interface {
	CommandContext(ctx context.Context, name string, arg ...string) *exec.Cmd
}

// Settings are the invocation settings shared by all jobs of a run.
type Settings struct {
	CompilerPath string
	InputRoot    string
	Language     string
	ExtraArgs    []string
	Timeout      time.Duration
}

// Handler is the principal implementation for the compiler services.
type Handler struct {
	execHandler execProvider
	settings    Settings
}

// NewHandler returns a pointer to a new compiler [Handler].
func NewHandler(execHandler execProvider, settings Settings) *Handler {
	return &Handler{
		execHandler: execHandler,
		settings:    settings,
	}
}

// Invocation returns the [schema.Invocation] for a [schema.Job]: the search
// path pointing at the input root, the language output flag pointing at the
// job's mirrored output directory, any extra arguments and the schema file.
func (c *Handler) Invocation(job *schema.Job) schema.Invocation {
	return BuildInvocation(c.settings, job)
}

// BuildInvocation is the [Handler]-less variant of [Handler.Invocation].
func BuildInvocation(settings Settings, job *schema.Job) schema.Invocation {
	args := make([]string, 0, 3+len(settings.ExtraArgs)) //nolint:mnd

	args = append(args,
		"--proto_path="+settings.InputRoot,
		"--"+settings.Language+"_out="+job.OutputDir,
	)
	args = append(args, settings.ExtraArgs...)
	args = append(args, job.SchemaPath)

	return schema.Invocation{
		Path: settings.CompilerPath,
		Args: args,
	}
}

// InvocationKey returns a stable textual key for an invocation, used to
// detect changed settings between incremental runs.
func InvocationKey(inv schema.Invocation) string {
	return strings.Join(inv.Argv(), " ")
}
