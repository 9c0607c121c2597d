package schema

// Directory is a directory visited below the input root. Its DestPath is the
// congruent directory below the output root, which must exist before any of
// its Files are handed to the compiler. It is meant to be passed by
// reference (pointer).
type Directory struct {
	SourcePath string
	DestPath   string
	RelPath    string
	Files      []*Job
}
