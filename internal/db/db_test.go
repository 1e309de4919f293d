package db

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/panelsync/internal/browser"
	"github.com/jonathan/panelsync/internal/cookiejar"
	"github.com/jonathan/panelsync/internal/dispatch"
)

// The pool-backed DB must satisfy the interfaces the orchestrator is wired
// with.
var (
	_ dispatch.TargetSource = (*DB)(nil)
	_ dispatch.Sink         = (*DB)(nil)
	_ cookiejar.Store       = (*DB)(nil)
)

func TestCookieDocumentRoundTrip(t *testing.T) {
	// Cookie sets travel through the target_cookies table as one JSON
	// document; the wire shape must survive encode/decode unchanged.
	in := []browser.Cookie{
		{Name: "PHPSESSID", Value: "abc123", Domain: ".panel.example.jp", Path: "/", HTTPOnly: true},
		{Name: "remember", Value: "1", Domain: ".panel.example.jp", Path: "/admin", Secure: true},
	}

	raw, err := json.Marshal(in)
	require.NoError(t, err)

	var out []browser.Cookie
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, in, out)
}

func TestCloseWithoutPool(t *testing.T) {
	// Close on a zero DB must not panic; main defers it before Connect
	// errors are checked in some tool paths.
	var db DB
	db.Close()
}
