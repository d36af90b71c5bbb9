// Package config handles objtool configuration loading and management.
package config

import "github.com/Faultbox/objmesh/pkg/formats"

// Output formats for summary commands.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Config holds all objtool settings.
type Config struct {
	Parser  ParserConfig  `yaml:"parser"`
	Data    DataConfig    `yaml:"data"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// ParserConfig holds OBJ parser limits.
type ParserConfig struct {
	MaxLineLength int `yaml:"max_line_length"`
}

// DataConfig holds model file locations.
type DataConfig struct {
	SearchPaths []string `yaml:"search_paths"` // Directories searched for relative model paths
}

// OutputConfig holds command output settings.
type OutputConfig struct {
	Precision int    `yaml:"precision"` // Decimals printed for floats
	Format    string `yaml:"format"`    // text or yaml
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Parser: ParserConfig{
			MaxLineLength: formats.DefaultMaxLineLength,
		},
		Data: DataConfig{
			SearchPaths: []string{"."},
		},
		Output: OutputConfig{
			Precision: 4,
			Format:    FormatText,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// OBJOptions returns the parser options described by the config.
func (c *Config) OBJOptions() formats.OBJOptions {
	return formats.OBJOptions{MaxLineLength: c.Parser.MaxLineLength}
}
