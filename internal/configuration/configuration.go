// Package configuration reads dotenv-style configuration files and exposes
// them, together with YAML and TOML configuration files, as flag resolvers.
package configuration

import (
	"errors"
	"fmt"
	"io/fs"
)

type genericConfigProvider interface {
	Read(filenames ...string) (envMap map[string]string, err error)
}

// Handler is the principal implementation for the configuration services.
type Handler struct {
	GenericHandler genericConfigProvider
}

// NewHandler returns a pointer to a new configuration [Handler].
func NewHandler(genericHandler genericConfigProvider) *Handler {
	return &Handler{
		GenericHandler: genericHandler,
	}
}

// ReadGeneric reads the given configuration files into a map (map[key]value).
func (c *Handler) ReadGeneric(filenames ...string) (map[string]string, error) {
	envMap, err := c.GenericHandler.Read(filenames...)
	if err != nil {
		return nil, fmt.Errorf("(config-read) %w", err)
	}

	return envMap, nil
}

// ReadOptional reads a configuration file that is allowed to not exist, in
// which case an empty map is returned. Any other error is returned.
func (c *Handler) ReadOptional(filename string) (map[string]string, error) {
	envMap, err := c.ReadGeneric(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	} else if err != nil {
		return nil, err
	}

	return envMap, nil
}
