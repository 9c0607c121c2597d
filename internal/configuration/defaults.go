package configuration

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// EnvPrefix prefixes all environment variables (and dotenv keys).
	EnvPrefix = "PROTOGEN_"

	DefaultInputRoot  = "protos"
	DefaultOutputRoot = "gen"
	DefaultLanguage   = "csharp"
	DefaultExtension  = ".proto"
	DefaultLogFile    = ".godot/editor/protobuf_gen.log"
	DefaultLogLevel   = "info"
	DefaultEnvFile    = ".protogen.env"

	darwinCompilerPath  = "/opt/homebrew/bin/protoc"
	genericCompilerPath = "/usr/local/bin/protoc"
)

// DefaultCompilerPath returns the compiler location for the given operating
// system. Hosts that start the generator often do not expose a usable search
// path, so an absolute location is returned instead of a bare name.
func DefaultCompilerPath(goos string) string {
	if goos == "darwin" {
		return darwinCompilerPath
	}

	return genericCompilerPath
}

// ConfigCandidatePaths returns the YAML and TOML configuration files to try,
// in ascending priority. A userPath is routed to the loader matching its
// extension and placed last so that it wins over the working directory files.
func ConfigCandidatePaths(workDir string, userPath string) (yamlPaths, tomlPaths []string) {
	for _, base := range []string{"protogen", ".protogen"} {
		yamlPaths = append(yamlPaths, filepath.Join(workDir, base+".yaml"), filepath.Join(workDir, base+".yml"))
		tomlPaths = append(tomlPaths, filepath.Join(workDir, base+".toml"))
	}

	if userPath != "" {
		switch strings.ToLower(filepath.Ext(userPath)) {
		case ".toml":
			tomlPaths = append(tomlPaths, userPath)
		default:
			yamlPaths = append(yamlPaths, userPath)
		}
	}

	return yamlPaths, tomlPaths
}

// FindFlagValue scans raw command line arguments for the value of a flag in
// either "--name value" or "--name=value" form, falling back to the given
// environment variable. It is needed for flags that decide which files the
// remaining flags are resolved from, before the command line is parsed.
func FindFlagValue(args []string, name string, env string) string {
	long := "--" + name
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			break
		}
		if strings.HasPrefix(a, long+"=") {
			return a[len(long)+1:]
		}
		if a == long && i+1 < len(args) {
			return args[i+1]
		}
	}

	if v := os.Getenv(env); v != "" {
		return v
	}

	return ""
}
