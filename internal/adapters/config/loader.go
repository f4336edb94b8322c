// Package config loads maek.yaml, the engine-level override file, the way
// the teacher's internal/adapters/config loads bob.yaml: a yaml.v3-decoded
// struct with defaults applied underneath it.
package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"maek/internal/core/ports"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a Loader that logs diagnostics through log.
func NewLoader(log ports.Logger) *Loader {
	return &Loader{logger: log}
}

// Load reads the maek.yaml at path, applying its overrides on top of
// defaults. A missing file is not an error: the caller's defaults pass
// through unchanged (spec.md §6 describes no mandatory config file).
func (l *Loader) Load(path string, defaults ports.Options) (ports.Options, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is operator-configured
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaults, nil
		}
		return ports.Options{}, zerr.Wrap(err, "reading maek.yaml")
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		return ports.Options{}, zerr.With(zerr.Wrap(err, "parsing maek.yaml"), "path", path)
	}

	opts := defaults
	if f.Jobs != nil {
		opts.Jobs = *f.Jobs
	}
	if f.CacheFile != nil {
		opts.CacheFile = *f.CacheFile
	}
	if f.DefaultTarget != nil {
		opts.DefaultTarget = *f.DefaultTarget
	}

	if l.logger != nil {
		l.logger.Info("loaded maek.yaml overrides from " + path)
	}

	return opts, nil
}
