// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jonathan/panelsync/internal/proxy"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults, environment variables,
// or must be provided via CLI flags.
type Config struct {
	// Secrets
	VaultKey    string `json:"vault_key,omitempty"`    // Hex-encoded 32-byte master key
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Browser
	Headless      bool   `json:"headless,omitempty"`       // Run Chrome without a window
	UserAgent     string `json:"user_agent,omitempty"`     // Override the browser user agent
	ScreenshotDir string `json:"screenshot_dir,omitempty"` // Directory for step screenshots; empty disables

	// Dispatch
	Parallel int `json:"parallel,omitempty"` // Worker count; 0 or 1 means sequential

	// Proxies
	Proxies []proxy.Endpoint `json:"proxies,omitempty"` // Rotation pool for proxy-enabled targets

	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. The caller is expected
// to have loaded .env already (main does this via godotenv).
func FromEnv() Config {
	cfg := Config{
		VaultKey:      os.Getenv("VAULT_KEY"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		UserAgent:     os.Getenv("BROWSER_USER_AGENT"),
		ScreenshotDir: os.Getenv("SCREENSHOT_DIR"),
		Headless:      os.Getenv("BROWSER_HEADLESS") != "false",
	}
	if v := os.Getenv("DISPATCH_PARALLEL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Parallel = n
		}
	}
	return cfg
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Parallel < 0 {
		return fmt.Errorf("config error: 'parallel' must be non-negative")
	}

	if c.VaultKey != "" && len(c.VaultKey) != 64 {
		return fmt.Errorf("config error: 'vault_key' must be 64 hex characters")
	}

	for i, p := range c.Proxies {
		if p.Host == "" || p.Port == 0 {
			return fmt.Errorf("config error: proxy %d is missing host or port", i)
		}
	}

	if c.ScreenshotDir != "" {
		if info, err := os.Stat(c.ScreenshotDir); err == nil && !info.IsDir() {
			return fmt.Errorf("config error: screenshot_dir is not a directory: %s", c.ScreenshotDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply environment values as defaults for config
// file settings, and config file settings as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.VaultKey == "" {
		result.VaultKey = defaults.VaultKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.UserAgent == "" {
		result.UserAgent = defaults.UserAgent
	}
	if result.ScreenshotDir == "" {
		result.ScreenshotDir = defaults.ScreenshotDir
	}

	if result.Parallel == 0 {
		result.Parallel = defaults.Parallel
	}

	if len(result.Proxies) == 0 {
		result.Proxies = defaults.Proxies
	}

	// Headless defaults on; an unset bool is indistinguishable from false, so
	// the merge only ever turns it on. Disabling headless is done through
	// BROWSER_HEADLESS=false, not the config file.
	if !result.Headless {
		result.Headless = defaults.Headless
	}

	// Remaining bool fields: cannot distinguish unset from false, so we don't
	// merge (CLI flags should always win for bools)

	return result
}
