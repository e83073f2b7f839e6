package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Overrides carries command-line settings, applied after the file.
type Overrides struct {
	Debug      bool
	FPS        int
	LogFile    string
	NoPhysics  bool
	NoTextures bool
	Lines      bool
}

// Load loads configuration with priority: defaults < file < flags. An empty
// path searches the standard locations.
func Load(path string, o Overrides) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
	}

	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	o.Apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Apply applies the overrides to cfg.
func (o Overrides) Apply(cfg *Config) {
	if o.Debug {
		cfg.Logging.Level = "debug"
	}
	if o.FPS > 0 {
		cfg.Display.FPS = o.FPS
	}
	if o.LogFile != "" {
		cfg.Logging.LogFile = o.LogFile
	}
	if o.NoPhysics {
		cfg.Physics.Enabled = false
	}
	if o.NoTextures {
		cfg.Render.Textures = false
	}
	if o.Lines {
		cfg.Render.Lines = true
	}
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./tumble.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
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
		return filepath.Join(home, "Library", "Application Support", "Tumble")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Tumble")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "tumble")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "tumble")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
// A figure list in the file replaces the default scene.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
