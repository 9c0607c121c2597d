package configuration

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
	toml "github.com/pelletier/go-toml"
)

// envAware is a [kong.Resolver] that leaves flags alone whenever one of their
// environment variables is set. Kong applies environment variables before
// resolvers run, so without this a file value would replace them.
type envAware struct {
	resolver kong.Resolver
}

// EnvAware wraps a [kong.Resolver] so that the process environment keeps
// precedence over it.
func EnvAware(resolver kong.Resolver) kong.Resolver {
	return &envAware{resolver: resolver}
}

func (e *envAware) Validate(app *kong.Application) error {
	return e.resolver.Validate(app) //nolint:wrapcheck
}

func (e *envAware) Resolve(ctx *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
	for _, env := range flag.Envs {
		if _, ok := os.LookupEnv(env); ok {
			return nil, nil //nolint:nilnil
		}
	}

	return e.resolver.Resolve(ctx, parent, flag) //nolint:wrapcheck
}

// DotenvResolver returns a [kong.Resolver] looking up flags in a map read from
// a dotenv file, keyed by the flags' environment variable names. Empty values
// leave a flag unset.
func DotenvResolver(envMap map[string]string) kong.Resolver {
	return EnvAware(kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		for _, env := range flag.Envs {
			if value, ok := envMap[env]; ok && value != "" {
				return value, nil
			}
		}

		return nil, nil //nolint:nilnil
	}))
}

// LoadFileResolver loads a TOML or YAML configuration file, chosen by its
// extension, as a [kong.Resolver]. Anything not ending in ".toml" is read as
// YAML, which also covers JSON.
func LoadFileResolver(path string) (kong.Resolver, error) {
	isTOML := strings.ToLower(filepath.Ext(path)) == ".toml"

	loader := kong.ConfigurationLoader(kongyaml.Loader)
	if isTOML {
		loader = kongtoml.Loader
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("(config-load) %w", err)
	}

	resolver, err := loader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("(config-load) %s: %w", path, err)
	}

	if isTOML {
		if resolver, err = newTOMLResolver(path, data, resolver); err != nil {
			return nil, err
		}
	}

	return EnvAware(resolver), nil
}

// tomlResolver accepts the flags of a command nested below a table named
// after the command, e.g. [generate] for "generate --input". Resolution is
// left to kong-toml, which already looks flags up below their command path.
type tomlResolver struct {
	kong.Resolver
	path string
	keys []string
}

func newTOMLResolver(path string, data []byte, resolver kong.Resolver) (*tomlResolver, error) {
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("(config-load) %s: %w", path, err)
	}

	keys := []string{}
	flattenKeys("", tree.ToMap(), &keys)

	return &tomlResolver{Resolver: resolver, path: path, keys: keys}, nil
}

func flattenKeys(prefix string, value any, keys *[]string) {
	table, ok := value.(map[string]any)
	if !ok {
		*keys = append(*keys, prefix)

		return
	}

	for k, v := range table {
		if prefix != "" {
			k = prefix + "-" + k
		}
		flattenKeys(k, v, keys)
	}
}

// Validate fails for keys that neither name a flag nor a flag below the
// table of its command.
func (r *tomlResolver) Validate(app *kong.Application) error {
	known := make(map[string]struct{})
	collectFlagKeys(app.Node, known)

	unknown := []string{}
	for _, k := range r.keys {
		if _, ok := known[k]; !ok {
			unknown = append(unknown, k)
		}
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)

		return fmt.Errorf("(config-validate) %w in %s: %s", ErrUnknownKeys, r.path, strings.Join(unknown, ", "))
	}

	return nil
}

func collectFlagKeys(node *kong.Node, known map[string]struct{}) {
	prefix := ""
	if node.Type == kong.CommandNode {
		prefix = strings.Join(strings.Fields(node.Path()), "-") + "-"
	}

	for _, flag := range node.Flags {
		known[flag.Name] = struct{}{}
		known[prefix+flag.Name] = struct{}{}
	}

	for _, child := range node.Children {
		collectFlagKeys(child, known)
	}
}

// LoadFileResolvers loads all existing files out of the given candidates, in
// order. Missing candidates are skipped, except for the required one which
// must exist when it is not empty.
func LoadFileResolvers(required string, candidates ...string) ([]kong.Resolver, error) {
	resolvers := []kong.Resolver{}

	for _, path := range candidates {
		resolver, err := LoadFileResolver(path)
		if errors.Is(err, fs.ErrNotExist) {
			if path == required {
				return nil, fmt.Errorf("(config-load) %w: %s", ErrConfigMissing, path)
			}

			continue
		} else if err != nil {
			return nil, err
		}

		resolvers = append(resolvers, resolver)
	}

	return resolvers, nil
}
