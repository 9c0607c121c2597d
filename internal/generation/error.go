package generation

import "errors"

var (
	// ErrGenerationFailed occurs when at least one schema file could not be
	// generated. It is joined with the individual failures.
	ErrGenerationFailed = errors.New("generation failed for one or more schema files")

	// ErrMirrorFailed occurs when the output directory structure could not be
	// established, which aborts a run.
	ErrMirrorFailed = errors.New("failed to mirror directory")

	// ErrManifestSave occurs when the incremental manifest could not be
	// written at the end of a run.
	ErrManifestSave = errors.New("failed to save manifest")
)
