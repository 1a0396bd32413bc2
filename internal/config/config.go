// Package config loads rcfind's user settings from ~/.rcfind/config.yaml.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds user defaults for the CLI.
type Config struct {
	LogLevel string        `yaml:"log_level,omitempty" json:"log_level,omitempty" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,description=Logger level"`
	OutDir   string        `yaml:"out_dir,omitempty" json:"out_dir,omitempty" jsonschema:"description=Default output directory for compiled resources"`
	Prefix   string        `yaml:"prefix,omitempty" json:"prefix,omitempty" jsonschema:"description=Default output name; the resource file name when empty"`
	VsWhere  string        `yaml:"vswhere,omitempty" json:"vswhere,omitempty" jsonschema:"description=Path to vswhere.exe"`
	Registry string        `yaml:"registry,omitempty" json:"registry,omitempty" jsonschema:"description=YAML registry fixture consulted before the host registry"`
	Debounce time.Duration `yaml:"debounce,omitempty" json:"debounce,omitempty" jsonschema:"type=string,description=Quiet period before watch recompiles (e.g. 200ms)"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel: "info",
		OutDir:   ".",
		Debounce: 200 * time.Millisecond,
	}
}

// Load reads the config file. A missing file yields Default() and no error.
func Load() (Config, error) {
	p, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFile(p)
}

// LoadFile reads config from p, filling unset fields from Default().
func LoadFile(p string) (Config, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), errors.Wrapf(err, "read %s", p)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Default(), errors.Wrapf(err, "parse %s", p)
	}
	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	d := Default()
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if strings.TrimSpace(c.OutDir) == "" {
		c.OutDir = d.OutDir
	}
	if c.Debounce <= 0 {
		c.Debounce = d.Debounce
	}
	return c
}

// Save writes cfg to the config path, creating parent dirs.
func Save(cfg Config) (string, error) {
	p, err := Path()
	if err != nil {
		return "", err
	}
	return p, SaveFile(p, cfg)
}

// SaveFile writes cfg as yaml to p.
func SaveFile(p string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return errors.Wrap(err, "create config dir")
	}
	b, err := yaml.Marshal(cfg.withDefaults())
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	return errors.Wrapf(os.WriteFile(p, b, 0o644), "write %s", p)
}
