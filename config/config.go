// Package config loads the YAML configuration of the marshal tools.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/rapier-go/errors"
)

// Backend selects the native engine implementation.
type Backend string

const (
	// BackendReference runs the built-in reference guest under wazero.
	BackendReference Backend = "reference"
	// BackendWasm runs a WebAssembly engine build under wazero.
	BackendWasm Backend = "wasm"
	// BackendDylib loads a native engine shared library.
	BackendDylib Backend = "dylib"
)

// maxPages is the wasm32 memory ceiling.
const maxPages = 65536

// Config describes which engine to load and how.
type Config struct {
	Backend          Backend `yaml:"backend"`
	Module           string  `yaml:"module,omitempty"`
	Library          string  `yaml:"library,omitempty"`
	Log              Log     `yaml:"log"`
	MemoryLimitPages uint32  `yaml:"memory_limit_pages,omitempty"`
	Checked          bool    `yaml:"checked"`
}

// Log configures the zap logger.
type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Backend: BackendReference,
		Checked: true,
		Log:     Log{Level: "info"},
	}
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Config("open "+path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Parse decodes and validates configuration from data.
func Parse(data []byte) (*Config, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads YAML from r on top of the defaults and validates the result.
// Unknown keys are rejected. Empty input yields the defaults.
func Decode(r io.Reader) (*Config, error) {
	c := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return nil, errors.Config("decode yaml", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that the backend has what it needs.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendReference:
	case BackendWasm:
		if c.Module == "" {
			return errors.Config("backend wasm requires module", nil)
		}
	case BackendDylib:
		if c.Library == "" {
			return errors.Config("backend dylib requires library", nil)
		}
	default:
		return errors.Config(fmt.Sprintf("unknown backend %q", c.Backend), nil)
	}

	if c.MemoryLimitPages > maxPages {
		return errors.Config(fmt.Sprintf("memory_limit_pages %d exceeds %d", c.MemoryLimitPages, maxPages), nil)
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return errors.Config("log.level", err)
	}
	return nil
}

// Logger builds the zap logger described by c.Log.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, errors.Config("log.level", err)
	}

	zc := zap.NewProductionConfig()
	if c.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	l, err := zc.Build()
	if err != nil {
		return nil, errors.Config("build logger", err)
	}
	return l, nil
}

// Marshal encodes c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
