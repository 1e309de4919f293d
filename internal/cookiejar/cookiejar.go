// Package cookiejar persists authenticated cookie sets per target platform so
// a later job can revalidate a session without re-entering credentials.
// Entries carry no expiry of their own: staleness is detected reactively when
// the login predicate rejects an injected cookie set, and the entry is then
// deleted.
package cookiejar

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/panelsync/internal/browser"
)

// ErrNotFound is returned on a cache miss.
var ErrNotFound = errors.New("cookiejar: no cookies stored for target")

// Store is the session cache contract. The pgx-backed implementation lives in
// internal/db; Memory covers tests and single-process runs.
type Store interface {
	Load(ctx context.Context, targetID uuid.UUID) ([]browser.Cookie, error)
	Save(ctx context.Context, targetID uuid.UUID, cookies []browser.Cookie) error
	Delete(ctx context.Context, targetID uuid.UUID) error
}

// Memory is an in-process Store. Safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	entries map[uuid.UUID][]browser.Cookie
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[uuid.UUID][]browser.Cookie)}
}

// Load returns the stored cookie set for a target, or ErrNotFound.
func (m *Memory) Load(_ context.Context, targetID uuid.UUID) ([]browser.Cookie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cookies, ok := m.entries[targetID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]browser.Cookie, len(cookies))
	copy(out, cookies)
	return out, nil
}

// Save replaces the stored cookie set for a target.
func (m *Memory) Save(_ context.Context, targetID uuid.UUID, cookies []browser.Cookie) error {
	stored := make([]browser.Cookie, len(cookies))
	copy(stored, cookies)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[targetID] = stored
	return nil
}

// Delete invalidates a target's entry. Deleting a missing entry is not an
// error.
func (m *Memory) Delete(_ context.Context, targetID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, targetID)
	return nil
}
