package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"time"

	"github.com/alecthomas/kong"
	"github.com/desertwitch/protogen/internal/configuration"
	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

const templatePerms = 0o644

// bootstrapFlags decide where the configuration is read from, so they are
// never part of a template.
//
//nolint:gochecknoglobals
var bootstrapFlags = map[string]struct{}{
	"config":   {},
	"env-file": {},
}

// ConfigInitCmd writes a configuration template.
type ConfigInitCmd struct {
	Format string `help:"Template format." enum:"env,yaml,toml" default:"yaml"`
	Output string `help:"Destination file (default: protogen.yaml, protogen.toml or ${default_env_file})." placeholder:"FILE"`
	Force  bool   `help:"Overwrite an existing destination file."`
}

func (c *ConfigInitCmd) destination() string {
	if c.Output != "" {
		return c.Output
	}

	switch c.Format {
	case "env":
		return configuration.DefaultEnvFile
	case "toml":
		return "protogen.toml"
	default:
		return "protogen.yaml"
	}
}

// Run writes the template with the defaults of the global and the generate
// flags. The generate flags are nested below "generate" for YAML and TOML,
// while the dotenv form uses the flat environment variable names.
func (c *ConfigInitCmd) Run(kctx *kong.Context) error {
	dest := c.destination()

	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return fmt.Errorf("(config-init) %w: %s", ErrConfigExists, dest)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("(config-init) %w", err)
		}
	}

	data, err := renderTemplate(kctx.Model.Node, c.Format)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dest), logDirPerms); err != nil {
		return fmt.Errorf("(config-init) %w", err)
	}

	if err := os.WriteFile(dest, data, templatePerms); err != nil {
		return fmt.Errorf("(config-init) %w", err)
	}

	slog.Info("Wrote configuration template.", "file", dest, "format", c.Format)

	return nil
}

// renderTemplate renders the defaults of the application's flags in the given
// format.
func renderTemplate(app *kong.Node, format string) ([]byte, error) {
	var generate *kong.Node
	for _, child := range app.Children {
		if child.Name == "generate" {
			generate = child
		}
	}

	if format == "env" {
		envMap := make(map[string]string)
		addEnvDefaults(envMap, app.Flags)
		if generate != nil {
			addEnvDefaults(envMap, generate.Flags)
		}

		out, err := (&configuration.GodotenvProvider{}).Marshal(envMap)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}

		return []byte(out + "\n"), nil
	}

	root := flagDefaults(app.Flags)
	if generate != nil {
		root["generate"] = flagDefaults(generate.Flags)
	}

	switch format {
	case "toml":
		data, err := toml.Marshal(root)
		if err != nil {
			return nil, fmt.Errorf("(config-toml) %w", err)
		}

		return data, nil
	default:
		data, err := yaml.Marshal(root)
		if err != nil {
			return nil, fmt.Errorf("(config-yaml) %w", err)
		}

		return data, nil
	}
}

func templateFlag(flag *kong.Flag) bool {
	if flag.Hidden || len(flag.Envs) == 0 {
		return false
	}

	_, bootstrap := bootstrapFlags[flag.Name]

	return !bootstrap
}

func addEnvDefaults(envMap map[string]string, flags []*kong.Flag) {
	for _, flag := range flags {
		if templateFlag(flag) {
			envMap[flag.Envs[0]] = flag.Default
		}
	}
}

func flagDefaults(flags []*kong.Flag) map[string]any {
	out := make(map[string]any)

	for _, flag := range flags {
		if templateFlag(flag) {
			out[flag.Name] = typedDefault(flag.Target.Type(), flag.Default)
		}
	}

	return out
}

// typedDefault converts a flag's default into a value of the flag's kind, so
// that the template holds numbers and booleans instead of strings.
func typedDefault(t reflect.Type, def string) any {
	if t == reflect.TypeOf(time.Duration(0)) {
		if def == "" {
			return "0s"
		}

		return def
	}

	switch t.Kind() { //nolint:exhaustive
	case reflect.Bool:
		b, _ := strconv.ParseBool(def)

		return b
	case reflect.Int, reflect.Int64:
		n, _ := strconv.Atoi(def)

		return n
	case reflect.Slice:
		return []string{}
	default:
		return def
	}
}
