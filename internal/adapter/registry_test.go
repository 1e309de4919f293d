package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterLookup(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(testConfig()))

	cfg, ok := r.Lookup("test-panel")
	require.True(t, ok)
	assert.Equal(t, "https://panel.example.jp/admin/login", cfg.LoginURL)

	// Lookups are case-insensitive on the panel name.
	_, ok = r.Lookup("Test-Panel")
	assert.True(t, ok)

	_, ok = r.Lookup("unknown")
	assert.False(t, ok)
}

func TestRegistry_RejectsInvalidConfig(t *testing.T) {
	r := NewRegistry()

	cfg := testConfig()
	cfg.LoginURL = "not-a-url"
	assert.Error(t, r.Register(cfg))

	cfg = testConfig()
	cfg.Login.Password = nil
	assert.Error(t, r.Register(cfg))

	cfg = testConfig()
	cfg.SuccessChecks = []string{"made-up-check"}
	assert.Error(t, r.Register(cfg))
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry()
	a := testConfig()
	a.Name = "zeta"
	b := testConfig()
	b.Name = "alpha"
	require.NoError(t, r.Register(a))
	require.NoError(t, r.Register(b))

	assert.Equal(t, []string{"alpha", "zeta"}, r.Names())
}

const validConfigJSON = `{
  "name": "json-panel",
  "base_url": "https://panel.example.jp/admin/",
  "login_url": "https://panel.example.jp/admin/login",
  "login": {
    "identifier": ["input[name=\"login_id\"]"],
    "password": ["input[type=\"password\"]"],
    "submit": ["button[type=\"submit\"]"]
  },
  "diary": {
    "list_path": "diary/",
    "new_post": ["a[href*=\"diary/new\"]", "input[value=\"新規投稿\"]"],
    "body": ["textarea[name=\"body\"]"],
    "submit": ["input[value=\"投稿する\"]"]
  },
  "success_checks": ["url-clean", "no-login-form"]
}`

func TestLoadConfigJSON_Valid(t *testing.T) {
	cfg, err := LoadConfigJSON([]byte(validConfigJSON))
	require.NoError(t, err)

	assert.Equal(t, "json-panel", cfg.Name)
	require.NotNil(t, cfg.Diary)
	assert.Equal(t, []string{`a[href*="diary/new"]`, `input[value="新規投稿"]`}, cfg.Diary.NewPost)
	assert.Nil(t, cfg.Cast)

	// The named checks become the effective predicate.
	assert.False(t, cfg.predicate()("https://panel.example.jp/home", `<input type="password">`))
}

func TestLoadConfigJSON_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"missing login", `{"name":"x","base_url":"https://a.jp/","login_url":"https://a.jp/login"}`},
		{"empty candidate list", `{"name":"x","base_url":"https://a.jp/","login_url":"https://a.jp/login","login":{"identifier":[],"password":["p"],"submit":["s"]}}`},
		{"unknown success check", `{"name":"x","base_url":"https://a.jp/","login_url":"https://a.jp/login","login":{"identifier":["i"],"password":["p"],"submit":["s"]},"success_checks":["nope"]}`},
		{"unknown top-level key", `{"name":"x","base_url":"https://a.jp/","login_url":"https://a.jp/login","login":{"identifier":["i"],"password":["p"],"submit":["s"]},"extra":1}`},
		{"not json", `{{{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfigJSON([]byte(tt.json))
			assert.Error(t, err)
		})
	}
}

func TestRegistry_LoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "panel.json")
	require.NoError(t, os.WriteFile(path, []byte(validConfigJSON), 0o644))

	r := NewRegistry()
	require.NoError(t, r.LoadConfigFile(path))

	_, ok := r.Lookup("json-panel")
	assert.True(t, ok)

	assert.Error(t, r.LoadConfigFile(filepath.Join(dir, "missing.json")))
}
