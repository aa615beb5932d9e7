package config

import (
	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const currentVersion = "v1alpha1"

// Config is the configuration of scribble.
type Config struct {
	Version  string        `yaml:"version"`
	Notes    ConfigNotes   `yaml:"notes"`
	Identity string        `yaml:"identity,omitempty"`
	Format   ConfigFormat  `yaml:"format"`
	Log      ConfigLog     `yaml:"log"`
	Preview  ConfigPreview `yaml:"preview"`
}

type ConfigNotes struct {
	// Dir is the directory holding note files.
	Dir string `yaml:"dir,omitempty"`
	// Include and Exclude are doublestar patterns relative to Dir.
	Include []string `yaml:"include,omitempty"`
	Exclude []string `yaml:"exclude,omitempty"`
}

type ConfigFormat struct {
	// Concurrency limits the number of notes formatted at once.
	Concurrency int `yaml:"concurrency,omitempty"`
}

type ConfigLog struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"`
	Verbose bool   `yaml:"verbose"`
}

type ConfigPreview struct {
	Width int `yaml:"width,omitempty"`
}

func ParseYAML(data []byte) (*Config, error) {
	version, err := parseVersionFromYAML(data)
	if err != nil {
		return nil, err
	}
	switch version {
	case currentVersion:
		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse v1alpha1 config")
		}
		if err := validateConfig(&cfg); err != nil {
			return nil, errors.Wrap(err, "failed to validate v1alpha1 config")
		}
		return &cfg, nil
	default:
		return nil, errors.Errorf("unknown version: %s", version)
	}
}

type versionOnly struct {
	Version string `yaml:"version"`
}

func parseVersionFromYAML(data []byte) (string, error) {
	var result versionOnly

	if err := yaml.Unmarshal(data, &result); err != nil {
		return "", errors.Wrap(err, "failed to unmarshal version")
	}

	return result.Version, nil
}

func validateConfig(cfg *Config) error {
	for _, patterns := range [][]string{cfg.Notes.Include, cfg.Notes.Exclude} {
		for _, pattern := range patterns {
			if !doublestar.ValidatePattern(pattern) {
				return errors.Errorf("notes: invalid pattern %q", pattern)
			}
		}
	}

	switch cfg.Identity {
	case "", "all", "note", "none":
	default:
		return errors.Errorf("identity: invalid value %q", cfg.Identity)
	}

	if cfg.Format.Concurrency < 0 {
		return errors.New("format.concurrency: must not be negative")
	}

	return nil
}

// merge fills the unset fields of cfg from base.
func merge(cfg, base *Config) *Config {
	result := *cfg
	if result.Notes.Dir == "" {
		result.Notes.Dir = base.Notes.Dir
	}
	if len(result.Notes.Include) == 0 {
		result.Notes.Include = base.Notes.Include
	}
	if len(result.Notes.Exclude) == 0 {
		result.Notes.Exclude = base.Notes.Exclude
	}
	if result.Identity == "" {
		result.Identity = base.Identity
	}
	if result.Format.Concurrency == 0 {
		result.Format.Concurrency = base.Format.Concurrency
	}
	if result.Log.Path == "" {
		result.Log.Path = base.Log.Path
	}
	if result.Preview.Width == 0 {
		result.Preview.Width = base.Preview.Width
	}
	return &result
}
