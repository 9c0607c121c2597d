package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
)

func version() string {
	if Version != "" {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}

	return "(devel)"
}

// Run prints the version of the program.
func (*VersionCmd) Run() error {
	_, err := fmt.Fprintf(os.Stdout, "protogen %s (%s, %s/%s)\n", version(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return fmt.Errorf("(version) %w", err)
	}

	return nil
}
