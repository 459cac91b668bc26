// Package server is the configuration file of `confusionflow serve`.
//
//	logdir: ~/confusionflow/logs  # relative to this file
//	host: localhost
//	port: 8080
//	loglevel: info                # debug|info|warn|error|off
//	static: ./ui                  # relative to this file. optional.
//	strictNotFound: false
package server

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/opst/confusionflow/pkg/echoutil"
	xe "github.com/opst/confusionflow/pkg/errors"
	kpath "github.com/opst/confusionflow/pkg/utils/path"
	"gopkg.in/yaml.v3"
)

const (
	DefaultHost     = "localhost"
	DefaultPort     = 8080
	DefaultLogLevel = "info"
)

type ServerConfig struct {
	Logdir         string `yaml:"logdir"`
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	LogLevel       string `yaml:"loglevel"`
	Static         string `yaml:"static"`
	StrictNotFound bool   `yaml:"strictNotFound"`
}

// Default is the configuration used when no config file is given.
func Default() *ServerConfig {
	return &ServerConfig{
		Host:     DefaultHost,
		Port:     DefaultPort,
		LogLevel: DefaultLogLevel,
	}
}

// LoadServerConfig reads a config file.
//
// Relative paths in the file are resolved from the directory of the file.
//
// It fails with ErrConfigNotFound when the file is missing,
// and with ErrMalformedConfig when the content is invalid.
func LoadServerConfig(path string) (*ServerConfig, error) {
	real, err := kpath.RealPath(path)
	if err != nil {
		return nil, xe.Because(xe.ErrConfigNotFound, err, "can not resolve %s", path)
	}
	content, err := os.ReadFile(real)
	if err != nil {
		return nil, xe.Because(xe.ErrConfigNotFound, err, "can not read %s", real)
	}
	conf, err := Unmarshal(content)
	if err != nil {
		return nil, xe.WrapWithNote(real, err)
	}

	base := filepath.Dir(real)
	if conf.Logdir, err = resolveFrom(base, conf.Logdir); err != nil {
		return nil, err
	}
	if conf.Static, err = resolveFrom(base, conf.Static); err != nil {
		return nil, err
	}
	return conf, nil
}

// Unmarshal parses a config. Missing keys are filled with values of Default.
//
// Unknown keys are errors.
func Unmarshal(conf []byte) (*ServerConfig, error) {
	out := Default()
	dec := yaml.NewDecoder(bytes.NewReader(conf))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return nil, xe.Because(xe.ErrMalformedConfig, err, "can not parse server config")
	}

	if out.Host == "" {
		out.Host = DefaultHost
	}
	if out.Port < 0 || 65535 < out.Port {
		return nil, xe.Wrapf(xe.ErrMalformedConfig, "port %d is out of range", out.Port)
	}
	out.LogLevel = strings.ToLower(out.LogLevel)
	if out.LogLevel == "" {
		out.LogLevel = DefaultLogLevel
	}
	if !slices.Contains(echoutil.LogLevels, out.LogLevel) {
		return nil, xe.Wrapf(
			xe.ErrMalformedConfig, "unknown loglevel %q: should be one of %s",
			out.LogLevel, strings.Join(echoutil.LogLevels, "|"),
		)
	}
	return out, nil
}

func resolveFrom(base string, p string) (string, error) {
	if p == "" {
		return "", nil
	}
	if !strings.HasPrefix(p, "~") && !filepath.IsAbs(p) {
		p = filepath.Join(base, p)
	}
	return kpath.Resolve(p)
}
