package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/panelsync/internal/proxy"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"database_url": "postgres://localhost/panelsync",
		"headless": true,
		"screenshot_dir": "/tmp/shots",
		"parallel": 3,
		"proxies": [{"host": "proxy1.example.com", "port": 8080}],
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "postgres://localhost/panelsync", cfg.DatabaseURL)
	assert.True(t, cfg.Headless)
	assert.Equal(t, "/tmp/shots", cfg.ScreenshotDir)
	assert.Equal(t, 3, cfg.Parallel)
	require.Len(t, cfg.Proxies, 1)
	assert.Equal(t, "proxy1.example.com", cfg.Proxies[0].Host)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("VAULT_KEY", strings.Repeat("ab", 32))
	t.Setenv("DATABASE_URL", "postgres://db.example.com/panelsync")
	t.Setenv("BROWSER_HEADLESS", "false")
	t.Setenv("DISPATCH_PARALLEL", "4")

	cfg := FromEnv()

	assert.Equal(t, strings.Repeat("ab", 32), cfg.VaultKey)
	assert.Equal(t, "postgres://db.example.com/panelsync", cfg.DatabaseURL)
	assert.False(t, cfg.Headless)
	assert.Equal(t, 4, cfg.Parallel)
}

func TestFromEnv_HeadlessDefaultsTrue(t *testing.T) {
	t.Setenv("BROWSER_HEADLESS", "")

	cfg := FromEnv()
	assert.True(t, cfg.Headless)
}

func TestValidate_NegativeParallel(t *testing.T) {
	cfg := &Config{Parallel: -1}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parallel")
}

func TestValidate_BadVaultKeyLength(t *testing.T) {
	cfg := &Config{VaultKey: "deadbeef"}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "vault_key")
}

func TestValidate_ProxyMissingHost(t *testing.T) {
	cfg := &Config{
		Proxies: []proxy.Endpoint{{Port: 8080}},
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "proxy 0")
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		VaultKey: strings.Repeat("0", 64),
		Parallel: 2,
		Proxies:  []proxy.Endpoint{{Host: "proxy1.example.com", Port: 3128}},
	}

	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		DatabaseURL:   "postgres://localhost/panelsync",
		ScreenshotDir: "/var/panelsync/shots",
		Parallel:      2,
		Proxies:       []proxy.Endpoint{{Host: "proxy1.example.com", Port: 8080}},
	}

	partial := Config{
		DatabaseURL: "postgres://override/panelsync",
		UserAgent:   "custom-agent",
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "postgres://override/panelsync", merged.DatabaseURL)
	assert.Equal(t, "custom-agent", merged.UserAgent)

	// Default values should fill in empty fields
	assert.Equal(t, "/var/panelsync/shots", merged.ScreenshotDir)
	assert.Equal(t, 2, merged.Parallel)
	assert.Len(t, merged.Proxies, 1)
}

func TestMergeWithDefaults_HeadlessTurnsOnOnly(t *testing.T) {
	merged := (&Config{}).MergeWithDefaults(Config{Headless: true})
	assert.True(t, merged.Headless)

	merged = (&Config{Headless: true}).MergeWithDefaults(Config{})
	assert.True(t, merged.Headless)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{
		DatabaseURL: "postgres://localhost/panelsync",
		Parallel:    5,
	}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "postgres://localhost/panelsync", merged.DatabaseURL)
	assert.Equal(t, 5, merged.Parallel)
}
