// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config manages Parley configuration.
//
// Configuration lives in ~/.parley/config.toml. Load order: defaults,
// then the TOML file, then environment overrides, then validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/parley-tui/internal/util"
)

// =============================================================================
// CONFIGURATION TYPES
// =============================================================================

// Config is the root configuration.
type Config struct {
	// ServerURL is the base URL of the chat backend.
	ServerURL string `toml:"server_url"`

	// UI configuration
	UI UIConfig `toml:"ui"`

	// Log configuration
	Log LogConfig `toml:"log"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme"`
	// ShowTimestamps renders a timestamp next to each message.
	ShowTimestamps bool `toml:"show_timestamps"`
	// ShowReasoning expands agent reasoning blocks by default.
	ShowReasoning bool `toml:"show_reasoning"`
	// SidebarWidth is the chat list width in columns.
	SidebarWidth int `toml:"sidebar_width"`
}

// LogConfig controls the debug log.
type LogConfig struct {
	// Enabled turns file logging on.
	Enabled bool `toml:"enabled"`
	// Path overrides the default log location (~/.parley/parley.log).
	Path string `toml:"path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		ServerURL: "http://localhost:8000",
		UI: UIConfig{
			Theme:          "dark",
			ShowTimestamps: false,
			ShowReasoning:  false,
			SidebarWidth:   28,
		},
		Log: LogConfig{
			Enabled: false,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the Parley configuration directory (~/.parley).
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".parley"), nil
}

// ConfigPath returns the configuration file path.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LogPath returns the effective log file path.
func (c *Config) LogPath() (string, error) {
	if c.Log.Path != "" {
		return c.Log.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "parley.log"), nil
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads the configuration: defaults, TOML file if present, env
// overrides, validation. A missing file is not an error.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific file.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration atomically.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveToPath(cfg, path)
}

// SaveToPath writes the configuration to a specific file.
func SaveToPath(cfg *Config, path string) error {
	var buf strings.Builder
	buf.WriteString("# Parley configuration\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(path, []byte(buf.String()), 0600)
}

// ApplyEnvOverrides applies environment variable overrides.
func (c *Config) ApplyEnvOverrides() {
	// PARLEY_SERVER
	if server := os.Getenv("PARLEY_SERVER"); server != "" {
		c.ServerURL = server
	}

	// PARLEY_THEME
	if theme := os.Getenv("PARLEY_THEME"); theme != "" {
		c.UI.Theme = theme
	}

	// PARLEY_LOG
	if logEnabled := os.Getenv("PARLEY_LOG"); logEnabled != "" {
		c.Log.Enabled = logEnabled == "1" || strings.ToLower(logEnabled) == "true"
	}
}

// SetDefaults fills zero values with usable defaults.
func (c *Config) SetDefaults() {
	def := Default()
	if c.ServerURL == "" {
		c.ServerURL = def.ServerURL
	}
	if c.UI.Theme == "" {
		c.UI.Theme = def.UI.Theme
	}
	if c.UI.SidebarWidth <= 0 {
		c.UI.SidebarWidth = def.UI.SidebarWidth
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors aggregates validation failures.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if !strings.HasPrefix(c.ServerURL, "http://") && !strings.HasPrefix(c.ServerURL, "https://") {
		errs = append(errs, ValidationError{
			Field:   "server_url",
			Message: "must start with http:// or https://",
		})
	}

	switch c.UI.Theme {
	case "dark", "light", "auto":
	default:
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("unknown theme %q (dark, light, auto)", c.UI.Theme),
		})
	}

	if c.UI.SidebarWidth < 16 || c.UI.SidebarWidth > 80 {
		errs = append(errs, ValidationError{
			Field:   "ui.sidebar_width",
			Message: "must be between 16 and 80",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// GLOBAL ACCESS
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration, loading it on first access.
// Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal replaces the global configuration. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	globalConfigOnce.Do(func() {})
}
