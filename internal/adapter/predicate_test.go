package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURLClean(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"dashboard", "https://panel.example.jp/admin/home", true},
		{"login page", "https://panel.example.jp/admin/login", false},
		{"login with query", "https://panel.example.jp/Login?failed=1", false},
		{"error page", "https://panel.example.jp/error/500", false},
		{"empty url", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, URLClean(tt.url, ""))
		})
	}
}

func TestURLPrefix(t *testing.T) {
	p := URLPrefix("https://panel.example.jp/admin/")

	assert.True(t, p("https://panel.example.jp/admin/home", ""))
	assert.False(t, p("https://evil.example.com/admin/home", ""))
}

func TestNoLoginForm(t *testing.T) {
	tests := []struct {
		name string
		html string
		want bool
	}{
		{"dashboard html", `<html><body><h1>管理画面</h1></body></html>`, true},
		{"password field present", `<html><form><input type="password"></form></html>`, false},
		{"empty html", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NoLoginForm("", tt.html))
		})
	}
}

func TestAll(t *testing.T) {
	yes := func(string, string) bool { return true }
	no := func(string, string) bool { return false }

	assert.True(t, All(yes, yes)("u", "h"))
	assert.False(t, All(yes, no)("u", "h"))
	assert.True(t, All()("u", "h"))
}

func TestConfigPredicate(t *testing.T) {
	t.Run("defaults to URLClean", func(t *testing.T) {
		cfg := Config{}
		assert.True(t, cfg.predicate()("https://x.example.jp/home", ""))
		assert.False(t, cfg.predicate()("https://x.example.jp/login", ""))
	})

	t.Run("named checks compose", func(t *testing.T) {
		cfg := Config{SuccessChecks: []string{PredicateURLClean, PredicateNoLoginForm}}
		p := cfg.predicate()
		assert.True(t, p("https://x.example.jp/home", "<html></html>"))
		assert.False(t, p("https://x.example.jp/home", `<input type="password">`))
	})

	t.Run("explicit predicate wins", func(t *testing.T) {
		cfg := Config{
			Success:       func(string, string) bool { return true },
			SuccessChecks: []string{PredicateURLClean},
		}
		assert.True(t, cfg.predicate()("https://x.example.jp/login", ""))
	})
}
