// Package config loads runtime settings for the IMC server and CLI.
//
// Precedence, lowest to highest: DefaultConfig, the YAML file, IMC_*
// environment variables, then command-line flags (applied by cmd/imc).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HendryAvila/imc/internal/storage"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up inside the data directory.
const FileName = "config.yaml"

// Config holds every tunable setting.
type Config struct {
	// DataDir holds the database, JSON files and config.yaml.
	DataDir string `yaml:"data_dir"`
	// Backend selects the blob store: sqlite, file or memory.
	Backend string `yaml:"backend"`
	// StorageKey is the key the history array is stored under.
	StorageKey string `yaml:"storage_key"`
	// ResultDelay is the cosmetic pause before a calculation is shown.
	ResultDelay time.Duration `yaml:"result_delay"`
	// LogLevel is a zap level name: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir:     filepath.Join(home, ".imc"),
		Backend:     storage.KindSQLite,
		StorageKey:  "imc-history",
		ResultDelay: 0,
		LogLevel:    "info",
	}
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	return filepath.Join(DefaultConfig().DataDir, FileName)
}

// Load reads a YAML file over the defaults and applies environment
// overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// defaults
	default:
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes the config as YAML, creating parent directories.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ApplyEnv overrides fields from IMC_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("IMC_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("IMC_BACKEND"); v != "" {
		c.Backend = v
	}
	if v := os.Getenv("IMC_STORAGE_KEY"); v != "" {
		c.StorageKey = v
	}
	if v := os.Getenv("IMC_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("IMC_RESULT_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("IMC_RESULT_DELAY: %w", err)
		}
		c.ResultDelay = d
	}
	return nil
}

// Validate checks the settings are usable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" && !strings.EqualFold(c.Backend, storage.KindMemory) {
		return fmt.Errorf("data_dir is required for the %q backend", c.Backend)
	}
	if !storage.ValidKind(c.Backend) {
		return fmt.Errorf("invalid backend %q: must be one of: sqlite, file, memory", c.Backend)
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		return fmt.Errorf("storage_key is required")
	}
	if c.ResultDelay < 0 {
		return fmt.Errorf("result_delay must not be negative, got %s", c.ResultDelay)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q: must be one of: debug, info, warn, error", c.LogLevel)
	}
	return nil
}
