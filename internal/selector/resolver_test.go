package selector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProber records every probe and answers from a fixed set of present
// selectors.
type fakeProber struct {
	present map[string]bool
	probed  []string
}

func (f *fakeProber) Present(_ context.Context, sel string) bool {
	f.probed = append(f.probed, sel)
	return f.present[sel]
}

func TestResolve_FirstMatchWins(t *testing.T) {
	page := &fakeProber{present: map[string]bool{"#a": true, "#b": true}}

	got, err := Resolve(context.Background(), page, "submit", []string{"#a", "#b"})
	require.NoError(t, err)
	assert.Equal(t, "#a", got)
	assert.Equal(t, []string{"#a"}, page.probed)
}

func TestResolve_MiddleCandidate(t *testing.T) {
	// Only B matches: A is probed and rejected, C is never touched.
	page := &fakeProber{present: map[string]bool{"#b": true}}

	got, err := Resolve(context.Background(), page, "username", []string{"#a", "#b", "#c"})
	require.NoError(t, err)
	assert.Equal(t, "#b", got)
	assert.Equal(t, []string{"#a", "#b"}, page.probed)
}

func TestResolve_NotFound(t *testing.T) {
	page := &fakeProber{present: map[string]bool{}}

	_, err := Resolve(context.Background(), page, "password", []string{"#a", "#b"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "password")
	assert.Equal(t, []string{"#a", "#b"}, page.probed)
}

func TestResolve_EmptyCandidates(t *testing.T) {
	page := &fakeProber{}

	_, err := Resolve(context.Background(), page, "title", nil)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, page.probed)
}

func TestResolve_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	page := &fakeProber{present: map[string]bool{"#a": true}}
	_, err := Resolve(ctx, page, "submit", []string{"#a"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, page.probed)
}

func TestResolve_OrderPreserved(t *testing.T) {
	// Candidate order carries site knowledge; the resolver must probe in the
	// exact order given.
	page := &fakeProber{present: map[string]bool{`input[name="password"]`: true}}

	candidates := []string{"#login_pass", `input[type="password"]`, `input[name="password"]`}
	// Make the generic type selector miss so the list is walked past it.
	got, err := Resolve(context.Background(), page, "password", candidates)
	require.NoError(t, err)
	assert.Equal(t, `input[name="password"]`, got)
	assert.Equal(t, candidates, page.probed)
}
