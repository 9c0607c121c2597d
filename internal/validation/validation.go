// Package validation checks a generation configuration before any directory
// is created or any compiler is started.
package validation

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"
)

var languagePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

type osProvider interface {
	Stat(name string) (os.FileInfo, error)
}

type unixProvider interface {
	Access(path string, mode uint32) error
}

type execProvider interface {
	LookPath(file string) (string, error)
}

// Settings are the values of a generation run that are validated.
type Settings struct {
	InputRoot    string
	OutputRoot   string
	CompilerPath string
	Language     string
	Extension    string
	Jobs         int
	Timeout      time.Duration
}

// Handler is the principal implementation for the validation services.
type Handler struct {
	osHandler   osProvider
	unixHandler unixProvider
	execHandler execProvider
}

// NewHandler returns a pointer to a new validation [Handler].
func NewHandler(osHandler osProvider, unixHandler unixProvider, execHandler execProvider) *Handler {
	return &Handler{
		osHandler:   osHandler,
		unixHandler: unixHandler,
		execHandler: execHandler,
	}
}

// Validate checks the given [Settings]. Errors make a run impossible and are
// returned joined together. Problems with the compiler are only returned as
// warnings, since the run then still visits and reports every schema file.
func (v *Handler) Validate(s Settings) (warnings []error, err error) {
	var errs []error

	if err := v.validateRoots(s.InputRoot, s.OutputRoot); err != nil {
		errs = append(errs, err)
	}

	if !strings.HasPrefix(s.Extension, ".") || s.Extension == "." {
		errs = append(errs, fmt.Errorf("(validation) %w: %q", ErrInvalidExtension, s.Extension))
	}

	if !languagePattern.MatchString(s.Language) {
		errs = append(errs, fmt.Errorf("(validation) %w: %q", ErrInvalidLanguage, s.Language))
	}

	if s.Jobs < 1 {
		errs = append(errs, fmt.Errorf("(validation) %w: %d", ErrInvalidJobs, s.Jobs))
	}

	if s.Timeout < 0 {
		errs = append(errs, fmt.Errorf("(validation) %w: %s", ErrInvalidTimeout, s.Timeout))
	}

	if _, err := v.CheckCompiler(s.CompilerPath); err != nil {
		warnings = append(warnings, err)
	}

	return warnings, errors.Join(errs...)
}
