// Package config provides configuration types and defaults for the vimgolf evaluator.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vimgolf-core/vimgolf/internal/log"
)

// EditorConfig mirrors the subset of Vim options the core respects.
type EditorConfig struct {
	IgnoreCase bool `mapstructure:"ignore_case"`
	SmartCase  bool `mapstructure:"smart_case"`
	AutoIndent bool `mapstructure:"auto_indent"`
	IncSearch  bool `mapstructure:"inc_search"`
	ShiftWidth int  `mapstructure:"shift_width"`
}

// CacheConfig tunes the in-memory result cache.
type CacheConfig struct {
	TTLSeconds     int `mapstructure:"ttl_seconds"`
	CleanupSeconds int `mapstructure:"cleanup_seconds"`
}

// StoreConfig locates the persisted run-record store.
type StoreConfig struct {
	DBPath string `mapstructure:"db_path"`
}

// TracingConfig toggles span export for scored runs.
type TracingConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Exporter string `mapstructure:"exporter"` // "stdout" or "otlp"
}

// Config holds all configuration options for the evaluator CLI.
type Config struct {
	ChallengeDirs []string      `mapstructure:"challenge_dirs"`
	MaxTokens     int           `mapstructure:"max_tokens"`
	Editor        EditorConfig  `mapstructure:"editor"`
	Cache         CacheConfig   `mapstructure:"cache"`
	Store         StoreConfig   `mapstructure:"store"`
	Tracing       TracingConfig `mapstructure:"tracing"`
}

// Defaults returns the configuration used when no config file is found.
func Defaults() Config {
	return Config{
		ChallengeDirs: []string{".vimgolf/challenges"},
		MaxTokens:     200000,
		Editor: EditorConfig{
			IgnoreCase: false,
			SmartCase:  true,
			AutoIndent: true,
			IncSearch:  true,
			ShiftWidth: 2,
		},
		Cache: CacheConfig{
			TTLSeconds:     300,
			CleanupSeconds: 60,
		},
		Store: StoreConfig{
			DBPath: DefaultDBPath(),
		},
		Tracing: TracingConfig{
			Enabled:  false,
			Exporter: "stdout",
		},
	}
}

// DefaultDBPath returns the default location of the run-record sqlite file.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vimgolf/runs.db"
	}
	return filepath.Join(home, ".local", "share", "vimgolf", "runs.db")
}

// ValidateChallengeDirs rejects an empty or malformed directory list.
func ValidateChallengeDirs(dirs []string) error {
	if len(dirs) == 0 {
		return fmt.Errorf("at least one challenge directory is required")
	}
	for i, d := range dirs {
		if d == "" {
			return fmt.Errorf("challenge_dirs[%d]: empty path", i)
		}
	}
	return nil
}

// ValidateTracing rejects an unknown exporter name.
func ValidateTracing(t TracingConfig) error {
	if !t.Enabled {
		return nil
	}
	switch t.Exporter {
	case "stdout", "otlp":
		return nil
	default:
		return fmt.Errorf("tracing.exporter: unknown exporter %q", t.Exporter)
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# vimgolf evaluator configuration

# Directories scanned for .golf challenge fixtures (start/keys/expected).
challenge_dirs:
  - .vimgolf/challenges

# Upper bound on tokens accepted by a single scored run.
max_tokens: 200000

editor:
  ignore_case: false
  smart_case: true
  auto_indent: true
  inc_search: true
  shift_width: 2

cache:
  ttl_seconds: 300
  cleanup_seconds: 60

store:
  db_path: ""  # empty means use the XDG data dir

tracing:
  enabled: false
  exporter: stdout
`
}

// WriteDefaultConfig writes the default config template to configPath,
// creating parent directories as needed.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "created default config", "path", configPath)
	return nil
}
