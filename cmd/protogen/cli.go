package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/alecthomas/kong"
	"github.com/desertwitch/protogen/internal/configuration"
)

// Globals are the flags shared by all commands.
type Globals struct {
	LogFile    string `help:"Append-mode log file of the run." default:"${default_log_file}" env:"PROTOGEN_LOG_FILE"`
	LogLevel   string `help:"Minimum level of logged events." default:"${default_log_level}" enum:"debug,info,warn,error" env:"PROTOGEN_LOG_LEVEL"`
	EnvFile    string `help:"Dotenv file holding PROTOGEN_* settings (default: ${default_env_file})." env:"PROTOGEN_ENV_FILE" placeholder:"FILE"`
	ConfigFile string `name:"config" help:"YAML or TOML configuration file." env:"PROTOGEN_CONFIG" placeholder:"FILE"`
}

// CLI is the command line grammar of the program.
type CLI struct {
	Globals

	Generate GenerateCmd `cmd:"" default:"withargs" help:"Mirror the schema tree and run the compiler once per schema file."`
	Config   ConfigCmd   `cmd:"" help:"Configuration helpers."`
	Version  VersionCmd  `cmd:"" help:"Print the version and exit."`
}

// GenerateCmd runs a generation.
type GenerateCmd struct {
	Input          string        `help:"Root directory holding the schema files." default:"${default_input}" env:"PROTOGEN_INPUT"`
	Output         string        `help:"Root directory receiving the mirrored tree and generated code." default:"${default_output}" env:"PROTOGEN_OUTPUT"`
	Protoc         string        `help:"Schema compiler executable." default:"${default_protoc}" env:"PROTOGEN_PROTOC"`
	Lang           string        `help:"Target language, passed as --<lang>_out." default:"${default_lang}" env:"PROTOGEN_LANG"`
	Ext            string        `help:"Extension identifying schema files." default:"${default_ext}" env:"PROTOGEN_EXT"`
	ExtraArg       []string      `help:"Extra compiler argument, inserted before the schema file (repeatable)." env:"PROTOGEN_EXTRA_ARG" sep:"none"`
	Jobs           int           `help:"Maximum number of concurrent compiler processes." default:"1" env:"PROTOGEN_JOBS"`
	Timeout        time.Duration `help:"Timeout per compiler invocation (0 disables)." default:"0s" env:"PROTOGEN_TIMEOUT"`
	Incremental    bool          `help:"Skip schema files unchanged since their last successful generation." env:"PROTOGEN_INCREMENTAL"`
	Manifest       string        `help:"Manifest file for incremental runs (default: <output>/.protogen-manifest.yaml)." env:"PROTOGEN_MANIFEST" placeholder:"FILE"`
	DryRun         bool          `help:"Log what would be done without creating directories or running the compiler." env:"PROTOGEN_DRY_RUN"`
	IgnoreFailures bool          `help:"Exit successfully even if compiler invocations failed." env:"PROTOGEN_IGNORE_FAILURES"`
	UI             bool          `name:"ui" help:"Show a terminal user interface while generating." env:"PROTOGEN_UI"`
}

// ConfigCmd groups the configuration helpers.
type ConfigCmd struct {
	Init ConfigInitCmd `cmd:"" help:"Write a configuration template with the default values."`
}

// VersionCmd prints the version.
type VersionCmd struct{}

// vars are the interpolation variables of the grammar.
func vars() kong.Vars {
	return kong.Vars{
		"default_input":     configuration.DefaultInputRoot,
		"default_output":    configuration.DefaultOutputRoot,
		"default_protoc":    configuration.DefaultCompilerPath(runtime.GOOS),
		"default_lang":      configuration.DefaultLanguage,
		"default_ext":       configuration.DefaultExtension,
		"default_log_file":  configuration.DefaultLogFile,
		"default_log_level": configuration.DefaultLogLevel,
		"default_env_file":  configuration.DefaultEnvFile,
	}
}

// newParser returns the [kong.Kong] parser for the given [CLI]. Later options
// override earlier ones.
func newParser(cli *CLI, resolvers []kong.Resolver, options ...kong.Option) (*kong.Kong, error) {
	opts := []kong.Option{
		kong.Name("protogen"),
		kong.Description("Mirror a tree of schema files and run the schema compiler once per file."),
		kong.UsageOnError(),
		vars(),
		kong.Resolvers(resolvers...),
		kong.Exit(func(code int) {
			if code != 0 {
				code = exitSetup
			}
			osExit(code)
		}),
	}

	parser, err := kong.New(cli, append(opts, options...)...)
	if err != nil {
		return nil, fmt.Errorf("(cli) %w", err)
	}

	return parser, nil
}
