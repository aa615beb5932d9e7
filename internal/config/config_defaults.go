package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "scribble"

var defaults Config

func init() {
	cfg, err := newDefault()
	if err != nil {
		panic(err)
	}
	defaults = *cfg
}

func newDefault() (*Config, error) {
	yaml := []byte(`version: v1alpha1

# Notes are plain Markdown files. When dir is empty, notes are kept
# in the user data directory.
notes:
  include:
    - "**/*.md"
  exclude:
    - ".trash/**"
    - "**/.*"

# Which notes get an identity assigned: "all", "note" or "none".
identity: all

format:
  concurrency: 8

preview:
  width: 80

log:
  enabled: false
  verbose: false
`)

	cfg, err := ParseYAML(yaml)
	if err != nil {
		return nil, err
	}
	if cfg.Notes.Dir == "" {
		cfg.Notes.Dir = DefaultNotesDir()
	}
	if cfg.Log.Path == "" {
		cfg.Log.Path = filepath.Join(xdg.StateHome, appName, appName+".log")
	}
	return cfg, nil
}

// Default returns a copy of the default configuration.
func Default() *Config {
	cfg := defaults
	cfg.Notes.Include = append([]string(nil), defaults.Notes.Include...)
	cfg.Notes.Exclude = append([]string(nil), defaults.Notes.Exclude...)
	return &cfg
}

// DefaultConfigDir is where the root configuration file is looked up.
func DefaultConfigDir() string {
	return filepath.Join(xdg.ConfigHome, appName)
}

func DefaultNotesDir() string {
	return filepath.Join(xdg.DataHome, appName, "notes")
}
