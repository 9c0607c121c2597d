// Package schema provides the principal schematics for all other packages. It
// defines the directory and job structures moving through a generation run
// and provides implementations for handling (Unix-based) operating system
// syscalls. The package serves as a foundational layer for filesystem and
// process interactions throughout the codebase.
package schema
