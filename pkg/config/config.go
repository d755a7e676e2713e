// Package config loads optional defaults from a yaml file. Command-line flags
// always win over file values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Color modes accepted by the "color" key and the -color handling in cmd.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// File mirrors the yaml document. Zero values mean "not set" and leave the
// built-in defaults alone.
type File struct {
	Top      int      `yaml:"top"`
	Duration Duration `yaml:"duration"`
	ByDevice *bool    `yaml:"by_device"`
	JSON     *bool    `yaml:"json"`
	Color    string   `yaml:"color"`
}

// Duration accepts Go duration strings ("2s", "500ms") in yaml.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string like \"2s\": %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/iowhy/config.yaml, falling back to
// ~/.config/iowhy/config.yaml. Empty when no home directory is known.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "iowhy", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "iowhy", "config.yaml")
}

// Load reads the file at path. A missing file is not an error, it simply
// yields an empty File; malformed yaml or an unknown color mode is.
func Load(path string) (File, error) {
	if path == "" {
		return File{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := f.validate(); err != nil {
		return File{}, fmt.Errorf("config %s: %w", path, err)
	}
	return f, nil
}

func (f File) validate() error {
	switch f.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("unknown color mode %q (want auto, always, or never)", f.Color)
	}
	if f.Top < 0 {
		return fmt.Errorf("top must be positive, got %d", f.Top)
	}
	if f.Duration < 0 {
		return fmt.Errorf("duration must be non-negative, got %v", time.Duration(f.Duration))
	}
	return nil
}
