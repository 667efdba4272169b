package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileName is the config file searched for in the working and user config directories.
const FileName = "minirace.yaml"

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the demo cannot start with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Camera.Projection != "perspective" && c.Camera.Projection != "orthographic" {
		return fmt.Errorf("unknown camera projection %q", c.Camera.Projection)
	}
	if c.Physics.TimeStep <= 0 {
		return fmt.Errorf("physics time step %v must be positive", c.Physics.TimeStep)
	}
	if len(c.Garage.Cars) == 0 {
		return fmt.Errorf("garage has no cars")
	}
	if c.Garage.Selected < 0 || c.Garage.Selected >= len(c.Garage.Cars) {
		return fmt.Errorf("selected car %d out of range [0, %d)", c.Garage.Selected, len(c.Garage.Cars))
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		filepath.Join(".", FileName),
		filepath.Join(ConfigDir(), FileName),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "minirace")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "minirace")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "minirace")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "minirace")
	}
}

// loadFromFile merges a YAML file over the values already in cfg.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
