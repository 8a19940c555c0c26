// Package config loads the server's configuration: defaults, overlaid by
// a TOML file if present, overlaid by environment variables — the same
// three-tier precedence hopper's internal/config/config.go uses for its
// provider settings, applied here to the Apex language server's own
// settings (spec.md §6, SPEC_FULL.md §A.3).
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the server's full runtime configuration.
type Config struct {
	// LogLevel is a zapcore.Level name ("debug", "info", "warn", "error").
	LogLevel string `toml:"log_level"`
	// Environment selects zap's development (human-readable) vs production
	// (JSON) encoder; "development" or "production".
	Environment string `toml:"environment"`
	// TreeSitterLibraryPath overrides TS_SFAPEX_LIB when set in the file;
	// the environment variable always wins if also set (spec.md §6).
	TreeSitterLibraryPath string `toml:"tree_sitter_library_path"`
	// IndexTimeout is a time.ParseDuration string, parsed by Load into
	// IndexTimeoutDuration (an invalid value falls back to 2m). The indexer
	// does not read it: indexing passes run without a time limit.
	IndexTimeout string `toml:"index_timeout"`

	IndexTimeoutDuration time.Duration `toml:"-"`
}

const appName = "apex-lsp"

var defaultConfig = Config{
	LogLevel:     "info",
	Environment:  "production",
	IndexTimeout: "2m",
}

// Load reads <user config dir>/apex-lsp/config.toml if present, overlays it
// on the defaults, then applies environment variable overrides. A missing
// config file is not an error (spec.md §4.5's "non-fatal, best effort"
// posture extends to configuration as well as workspace discovery).
func Load() (*Config, error) {
	cfg := defaultConfig

	if dir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(dir, appName, "config.toml")
		if _, statErr := os.Stat(path); statErr == nil {
			if _, decodeErr := toml.DecodeFile(path, &cfg); decodeErr != nil {
				return nil, fmt.Errorf("config: decoding %s: %w", path, decodeErr)
			}
		}
	} else {
		log.Printf("config: could not determine user config directory: %v", err)
	}

	if v := os.Getenv("APEX_LSP_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("APEX_LSP_ENV"); v != "" {
		cfg.Environment = v
	}
	if v := os.Getenv("TS_SFAPEX_LIB"); v != "" {
		cfg.TreeSitterLibraryPath = v
	}

	dur, err := time.ParseDuration(cfg.IndexTimeout)
	if err != nil {
		log.Printf("config: invalid index_timeout %q, using default 2m: %v", cfg.IndexTimeout, err)
		dur = 2 * time.Minute
	}
	cfg.IndexTimeoutDuration = dur

	return &cfg, nil
}
