package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/desertwitch/protogen/internal/configuration"
)

const (
	stackTraceBufMax = 1 << 24

	exitSuccess  = 0
	exitFailures = 1
	exitSetup    = 2
)

//nolint:gochecknoglobals
var (
	ExitCode = exitSuccess
	Version  string

	osExit = os.Exit
)

func setupSignalHandlers(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		<-sigChan
		cancel()
	}()

	sigChan2 := make(chan os.Signal, 1)
	signal.Notify(sigChan2, syscall.SIGUSR1)
	go func() {
		for range sigChan2 {
			buf := make([]byte, stackTraceBufMax)
			stacklen := runtime.Stack(buf, true)
			os.Stderr.Write(buf[:stacklen])
		}
	}()
}

// loadResolvers returns the configuration sources that fill in flags not given
// on the command line, in ascending priority: configuration files found in the
// working directory, the one named by --config and the dotenv file. The
// process environment is not a resolver, kong applies it by itself.
func loadResolvers(args []string, workDir string) ([]kong.Resolver, error) {
	userCfg := configuration.FindFlagValue(args, "config", configuration.EnvPrefix+"CONFIG")
	yamlPaths, tomlPaths := configuration.ConfigCandidatePaths(workDir, userCfg)

	candidates := make([]string, 0, len(yamlPaths)+len(tomlPaths))
	for _, path := range append(yamlPaths, tomlPaths...) {
		if path != userCfg {
			candidates = append(candidates, path)
		}
	}
	if userCfg != "" {
		candidates = append(candidates, userCfg)
	}

	resolvers, err := configuration.LoadFileResolvers(userCfg, candidates...)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	configHandler := configuration.NewHandler(&configuration.GodotenvProvider{})

	var envMap map[string]string
	if envFile := configuration.FindFlagValue(args, "env-file", configuration.EnvPrefix+"ENV_FILE"); envFile != "" {
		envMap, err = configHandler.ReadGeneric(envFile)
	} else {
		envMap, err = configHandler.ReadOptional(filepath.Join(workDir, configuration.DefaultEnvFile))
	}
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return append(resolvers, configuration.DotenvResolver(envMap)), nil
}

// exitCodeFor maps the error of a command to the exit status of the program.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, ErrSetup):
		return exitSetup
	default:
		return exitFailures
	}
}

func main() {
	defer func() {
		osExit(ExitCode)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setupConsoleLogging(os.Stdout, slog.LevelInfo)
	setupSignalHandlers(cancel)

	workDir, err := os.Getwd()
	if err != nil {
		slog.Error("Failed to establish the working directory.", "err", err)
		ExitCode = exitSetup

		return
	}

	resolvers, err := loadResolvers(os.Args[1:], workDir)
	if err != nil {
		slog.Error("Failed to load the configuration.", "err", err)
		ExitCode = exitSetup

		return
	}

	var cli CLI

	parser, err := newParser(&cli, resolvers)
	if err != nil {
		slog.Error("Failed to establish the command line.", "err", err)
		ExitCode = exitSetup

		return
	}

	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.Bind(cancel, &cli.Globals)

	if err := kctx.Run(); err != nil {
		slog.Error("Command failed.", "err", err)
		ExitCode = exitCodeFor(err)
	}
}
