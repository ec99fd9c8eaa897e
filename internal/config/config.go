// Package config manages application-level configuration.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/shini4i/trafic/internal/fileutil"
)

const (
	// AppName is the application identifier used for XDG paths.
	AppName = "trafic"
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "config.json"

	// DefaultPollIntervalSeconds is the default time between counter
	// polls (5 minutes).
	DefaultPollIntervalSeconds = 300
)

// Config represents the application configuration.
type Config struct {
	// PollIntervalSeconds is the time between counter polls.
	PollIntervalSeconds int `json:"poll_interval_seconds"`
	// DataDir overrides the directory holding the ledger and lock file.
	DataDir string `json:"data_dir,omitempty"`
	// InstallID identifies this installation in diagnostics. Minted on
	// first run.
	InstallID string `json:"install_id"`
}

// DefaultConfig returns a configuration with sensible defaults and a fresh
// install ID.
func DefaultConfig() *Config {
	return &Config{
		PollIntervalSeconds: DefaultPollIntervalSeconds,
		InstallID:           uuid.NewString(),
	}
}

// Paths holds the resolved per-user directories.
type Paths struct {
	ConfigDir  string
	ConfigFile string
	DataDir    string
}

// GetPaths returns the configuration and data paths following the XDG Base
// Directory spec.
func GetPaths() (*Paths, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(homeDir, ".config")
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}

	configDir := filepath.Join(configHome, AppName)
	return &Paths{
		ConfigDir:  configDir,
		ConfigFile: filepath.Join(configDir, ConfigFileName),
		DataDir:    filepath.Join(dataHome, AppName),
	}, nil
}

// EnsurePaths creates the configuration and data directories.
func (p *Paths) EnsurePaths() error {
	if err := os.MkdirAll(p.ConfigDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.MkdirAll(p.DataDir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// Load reads the configuration from disk. A missing file yields defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to disk atomically.
func Save(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := fileutil.AtomicWrite(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration. A sub-minute poll interval is legal
// but warned about: the ledger keys records by minute, so same-minute
// ticks are silently dropped.
func (c *Config) Validate() error {
	if c.PollIntervalSeconds <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}
	if c.PollIntervalSeconds < 60 {
		slog.Warn("Poll interval is below one minute; same-minute records are silently dropped",
			"poll_interval_seconds", c.PollIntervalSeconds)
	}
	return nil
}

// LoadOrCreate resolves paths, ensures directories exist, loads the
// configuration and persists it when the file did not exist yet, so the
// minted install ID survives restarts.
func LoadOrCreate() (*Config, *Paths, error) {
	paths, err := GetPaths()
	if err != nil {
		return nil, nil, err
	}
	if err := paths.EnsurePaths(); err != nil {
		return nil, nil, err
	}

	cfg, err := Load(paths.ConfigFile)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	if _, err := os.Stat(paths.ConfigFile); os.IsNotExist(err) {
		if err := Save(paths.ConfigFile, cfg); err != nil {
			return nil, nil, err
		}
	}
	return cfg, paths, nil
}
