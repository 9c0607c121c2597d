// Package manifest records the schema files of successful generation runs,
// allowing unchanged files to be skipped by incremental runs. A file counts
// as unchanged when both its blake3 digest and its compiler invocation match
// the recorded entry. Imports between schema files are not tracked.
package manifest

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"
)

// Version is the current on-disk format version of a [Manifest].
const Version = 1

// DefaultName is the file name of a [Manifest] below the output root.
const DefaultName = ".protogen-manifest.yaml"

// Entry is the record for a single schema file.
type Entry struct {
	Digest      string    `yaml:"digest"`
	Invocation  string    `yaml:"invocation"`
	Succeeded   bool      `yaml:"succeeded"`
	GeneratedAt time.Time `yaml:"generated_at"`
}

// Manifest holds the [Entry] records, keyed by input-root relative path.
// It is safe for concurrent use.
type Manifest struct {
	sync.RWMutex
	version int
	lastRun string
	entries map[string]Entry
}

type fileFormat struct {
	Version int              `yaml:"version"`
	LastRun string           `yaml:"last_run,omitempty"`
	Entries map[string]Entry `yaml:"entries"`
}

// New returns a pointer to a new, empty [Manifest].
func New() *Manifest {
	return &Manifest{
		version: Version,
		entries: make(map[string]Entry),
	}
}

// Load reads a [Manifest] from path. A missing file results in an empty
// [Manifest], not an error.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(), nil
		}

		return nil, fmt.Errorf("(manifest-load) failed to read: %w", err)
	}

	var ff fileFormat
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("(manifest-load) %w: %w", ErrCorrupt, err)
	}

	if ff.Version != Version {
		return nil, fmt.Errorf("(manifest-load) %w: %d", ErrUnsupportedVersion, ff.Version)
	}

	m := New()
	m.lastRun = ff.LastRun

	for k, v := range ff.Entries {
		m.entries[k] = v
	}

	return m, nil
}

// Save writes the [Manifest] to path, replacing any previous file only once
// the new content has been written completely.
func (m *Manifest) Save(path string) error {
	m.RLock()
	ff := fileFormat{
		Version: m.version,
		LastRun: m.lastRun,
		Entries: make(map[string]Entry, len(m.entries)),
	}
	for k, v := range m.entries {
		ff.Entries[k] = v
	}
	m.RUnlock()

	data, err := yaml.Marshal(&ff)
	if err != nil {
		return fmt.Errorf("(manifest-save) failed to marshal: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("(manifest-save) failed to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()

		return fmt.Errorf("(manifest-save) failed to write: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("(manifest-save) failed to close: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("(manifest-save) failed to rename: %w", err)
	}

	return nil
}

// Get returns the [Entry] for a relative schema path.
func (m *Manifest) Get(relPath string) (Entry, bool) {
	m.RLock()
	defer m.RUnlock()

	e, ok := m.entries[relPath]

	return e, ok
}

// Put records an [Entry] for a relative schema path.
func (m *Manifest) Put(relPath string, entry Entry) {
	m.Lock()
	defer m.Unlock()

	m.entries[relPath] = entry
}

// IsUpToDate returns if a successful [Entry] with matching digest and
// invocation exists for a relative schema path.
func (m *Manifest) IsUpToDate(relPath string, digest string, invocation string) bool {
	e, ok := m.Get(relPath)
	if !ok {
		return false
	}

	return e.Succeeded && e.Digest == digest && e.Invocation == invocation
}

// Prune removes all entries not contained in keep, returning the removed
// relative paths in sorted order.
func (m *Manifest) Prune(keep map[string]struct{}) []string {
	m.Lock()
	defer m.Unlock()

	removed := []string{}

	for k := range m.entries {
		if _, ok := keep[k]; !ok {
			delete(m.entries, k)
			removed = append(removed, k)
		}
	}

	sort.Strings(removed)

	return removed
}

// Len returns the amount of entries.
func (m *Manifest) Len() int {
	m.RLock()
	defer m.RUnlock()

	return len(m.entries)
}

// SetLastRun records the identifier of the run that last saved the
// [Manifest].
func (m *Manifest) SetLastRun(id string) {
	m.Lock()
	defer m.Unlock()

	m.lastRun = id
}

// LastRun returns the identifier of the run that last saved the [Manifest].
func (m *Manifest) LastRun() string {
	m.RLock()
	defer m.RUnlock()

	return m.lastRun
}

type fileOpener interface {
	Open(name string) (*os.File, error)
}

// Digest returns the hex-encoded blake3 digest of the file at path.
func Digest(opener fileOpener, path string) (string, error) {
	f, err := opener.Open(path)
	if err != nil {
		return "", fmt.Errorf("(manifest-digest) failed to open: %w", err)
	}
	defer f.Close()

	hasher := blake3.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", fmt.Errorf("(manifest-digest) failed to read: %w", err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
