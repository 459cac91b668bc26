// Package api serves the log store over a read-only HTTP API.
package api

import (
	xe "github.com/opst/confusionflow/pkg/errors"
	"github.com/opst/confusionflow/pkg/logstore"
)

// Config is a configuration of the API service. It is immutable once created.
type Config struct {
	logdir         string
	staticDir      string
	strictNotFound bool
}

type ConfigOption func(*Config) *Config

// WithStaticDir serves files in dir at "/" as the web UI.
//
// Empty dir means no web UI.
func WithStaticDir(dir string) ConfigOption {
	return func(c *Config) *Config {
		c.staticDir = dir
		return c
	}
}

// WithStrictNotFound answers 404 for missing resources, instead of 200.
//
// Message bodies are same in both cases.
func WithStrictNotFound(strict bool) ConfigOption {
	return func(c *Config) *Config {
		c.strictNotFound = strict
		return c
	}
}

// NewConfig creates Config serving logdir.
//
// It fails with ErrInvalidLogDir when logdir (or the static directory, if given)
// is missing or not a directory.
func NewConfig(logdir string, opts ...ConfigOption) (Config, error) {
	c := &Config{}
	for _, opt := range opts {
		c = opt(c)
	}

	root, err := logstore.CheckFolderpath(logdir)
	if err != nil {
		return Config{}, err
	}
	c.logdir = root

	if c.staticDir != "" {
		static, err := logstore.CheckFolderpath(c.staticDir)
		if err != nil {
			return Config{}, xe.WrapWithNote("static files", err)
		}
		c.staticDir = static
	}
	return *c, nil
}

// Logdir is the resolved path of the log store.
func (c Config) Logdir() string {
	return c.logdir
}

// StaticDir is the resolved path of the web UI. Empty if not set.
func (c Config) StaticDir() string {
	return c.staticDir
}

func (c Config) StrictNotFound() bool {
	return c.strictNotFound
}
