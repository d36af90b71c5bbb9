package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over the standard locations
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

// Validate checks that settings are usable.
func (c *Config) Validate() error {
	if c.Parser.MaxLineLength <= 0 {
		return fmt.Errorf("parser.max_line_length must be positive, got %d", c.Parser.MaxLineLength)
	}
	if c.Output.Format != FormatText && c.Output.Format != FormatYAML {
		return fmt.Errorf("output.format must be %q or %q, got %q", FormatText, FormatYAML, c.Output.Format)
	}
	if c.Output.Precision < 0 || c.Output.Precision > 9 {
		return fmt.Errorf("output.precision must be between 0 and 9, got %d", c.Output.Precision)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./objtool.yaml",
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
		return filepath.Join(home, "Library", "Application Support", "objmesh")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "objmesh")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "objmesh")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "objmesh")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
