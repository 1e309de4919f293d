package browser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.True(t, opts.Headless)
	assert.Equal(t, "ja-JP", opts.Locale)
	assert.Equal(t, "Asia/Tokyo", opts.Timezone)
	assert.NotEmpty(t, opts.UserAgent)
	assert.NotContains(t, opts.UserAgent, "Headless")

	// Timeouts are fixed budgets in the tens of seconds; a timeout is an
	// ordinary failure, so these must be finite.
	assert.Greater(t, opts.NavigateTimeout, 10*time.Second)
	assert.Greater(t, opts.ActionTimeout, time.Second)
	assert.Less(t, opts.ProbeTimeout, opts.ActionTimeout)
}

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"login-page", "login-page"},
		{"login filled", "login-filled"},
		{"post/submit", "post-submit"},
		{"結果", "--"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeLabel(tt.input))
		})
	}
}

func TestSessionClose_Idempotent(t *testing.T) {
	// A session whose browser never started still closes cleanly; cancel
	// funcs may be nil on construction failure paths.
	s := &Session{}
	s.Close()
	s.Close()
	assert.True(t, s.closed)
}
