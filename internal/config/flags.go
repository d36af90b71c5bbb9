package config

import (
	"flag"
	"strings"
)

var (
	flagConfig        = flag.String("config", "", "Path to config file")
	flagDebug         = flag.Bool("debug", false, "Enable debug logging")
	flagMaxLineLength = flag.Int("max-line-length", 0, "Longest OBJ line accepted")
	flagFormat        = flag.String("format", "", "Summary output format (text, yaml)")
	flagPrecision     = flag.Int("precision", -1, "Decimals printed for floats")
	flagData          = flag.String("data", "", "Comma-separated model search paths")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments (command and its arguments).
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagMaxLineLength > 0 {
		cfg.Parser.MaxLineLength = *flagMaxLineLength
	}
	if *flagFormat != "" {
		cfg.Output.Format = *flagFormat
	}
	if *flagPrecision >= 0 {
		cfg.Output.Precision = *flagPrecision
	}
	if *flagData != "" {
		var paths []string
		for _, p := range strings.Split(*flagData, ",") {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
		cfg.Data.SearchPaths = paths
	}
}
