package dispatch

import (
	"context"
	"sync"
)

// MemorySink is an in-process audit sink. Appends are whole-record and safe
// under concurrent dispatch; order follows append time, not target order.
// Used by tests and by CLI runs without a database configured.
type MemorySink struct {
	mu       sync.Mutex
	attempts []*Attempt
}

// NewMemorySink creates an empty sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Append records one attempt.
func (s *MemorySink) Append(_ context.Context, attempt *Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts = append(s.attempts, attempt)
	return nil
}

// Attempts returns a copy of everything appended so far.
func (s *MemorySink) Attempts() []*Attempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Attempt, len(s.attempts))
	copy(out, s.attempts)
	return out
}
