package cookiejar

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/panelsync/internal/browser"
)

func TestMemory_LoadMiss(t *testing.T) {
	jar := NewMemory()

	_, err := jar.Load(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_SaveLoad(t *testing.T) {
	jar := NewMemory()
	targetID := uuid.New()
	cookies := []browser.Cookie{
		{Name: "PHPSESSID", Value: "abc123", Domain: ".example.jp", Path: "/"},
		{Name: "auth", Value: "tok", Domain: ".example.jp", Path: "/admin", HTTPOnly: true},
	}

	require.NoError(t, jar.Save(context.Background(), targetID, cookies))

	got, err := jar.Load(context.Background(), targetID)
	require.NoError(t, err)
	assert.Equal(t, cookies, got)
}

func TestMemory_SaveReplaces(t *testing.T) {
	jar := NewMemory()
	targetID := uuid.New()

	require.NoError(t, jar.Save(context.Background(), targetID, []browser.Cookie{{Name: "old", Value: "1"}}))
	require.NoError(t, jar.Save(context.Background(), targetID, []browser.Cookie{{Name: "new", Value: "2"}}))

	got, err := jar.Load(context.Background(), targetID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].Name)
}

func TestMemory_Delete(t *testing.T) {
	jar := NewMemory()
	targetID := uuid.New()

	require.NoError(t, jar.Save(context.Background(), targetID, []browser.Cookie{{Name: "s", Value: "v"}}))
	require.NoError(t, jar.Delete(context.Background(), targetID))

	_, err := jar.Load(context.Background(), targetID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is not an error.
	assert.NoError(t, jar.Delete(context.Background(), targetID))
}

func TestMemory_LoadCopies(t *testing.T) {
	jar := NewMemory()
	targetID := uuid.New()
	require.NoError(t, jar.Save(context.Background(), targetID, []browser.Cookie{{Name: "s", Value: "v"}}))

	got, err := jar.Load(context.Background(), targetID)
	require.NoError(t, err)
	got[0].Value = "mutated"

	again, err := jar.Load(context.Background(), targetID)
	require.NoError(t, err)
	assert.Equal(t, "v", again[0].Value)
}
