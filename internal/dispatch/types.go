// Package dispatch orchestrates the distribution of one business fact to a
// set of target panels: it resolves targets, decrypts credentials, drives one
// adapter per target, and records exactly one append-only audit attempt per
// (job, target) pair no matter what fails along the way.
package dispatch

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/panelsync/internal/payload"
)

// Status is the job lifecycle state.
type Status string

const (
	StatusPending     Status = "pending"
	StatusDispatching Status = "dispatching"
	StatusCompleted   Status = "completed"
)

// Target is the registry view of one target platform. The engine reads these
// records; it never creates or deletes them, and writes only the
// last-distributed bookkeeping.
type Target struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	BaseURL         string     `json:"base_url"`
	LoginURL        string     `json:"login_url"`
	Category        string     `json:"category"`
	Mode            string     `json:"mode"`
	EncryptedSecret string     `json:"-"`
	Active          bool       `json:"active"`
	UseProxy        bool       `json:"use_proxy"`
	LastDistributed *time.Time `json:"last_distributed,omitempty"`
}

// Target categories and connection modes. Only browser-mode targets are
// dispatchable by this engine.
const (
	CategoryCustomer   = "customer"
	CategoryRecruiting = "recruiting"

	ModeBrowser = "browser"
	ModeAPI     = "api"
	ModeFile    = "file"
)

// Job is one logical unit of distribution work: an operation payload and the
// targets it goes to. Immutable once dispatched; retrying is expressed as a
// new job.
type Job struct {
	ID        uuid.UUID       `json:"id"`
	Kind      payload.Kind    `json:"kind"`
	Payload   payload.Payload `json:"-"`
	TargetIDs []uuid.UUID     `json:"target_ids"`
	Status    Status          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewJob creates a validated, pending job. The payload's kind must match and
// its content must pass validation; the target list must be non-empty.
func NewJob(p payload.Payload, targetIDs []uuid.UUID) (*Job, error) {
	if p == nil {
		return nil, fmt.Errorf("job payload is required")
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s payload: %w", p.Kind(), err)
	}
	if len(targetIDs) == 0 {
		return nil, fmt.Errorf("job needs at least one target")
	}

	ids := make([]uuid.UUID, len(targetIDs))
	copy(ids, targetIDs)
	return &Job{
		ID:        uuid.New(),
		Kind:      p.Kind(),
		Payload:   p,
		TargetIDs: ids,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}, nil
}

// Attempt is the immutable audit record of applying one job to one target.
// Exactly one attempt exists per (job, target) pair; it is appended once and
// never mutated afterwards.
type Attempt struct {
	ID         uuid.UUID       `json:"id"`
	JobID      uuid.UUID       `json:"job_id"`
	TargetID   uuid.UUID       `json:"target_id"`
	TargetName string          `json:"target_name,omitempty"`
	Success    bool            `json:"success"`
	Error      string          `json:"error,omitempty"`
	Duration   time.Duration   `json:"duration"`
	StartedAt  time.Time       `json:"started_at"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// Summary aggregates a completed job's attempts.
type Summary struct {
	JobID     uuid.UUID  `json:"job_id"`
	Total     int        `json:"total"`
	Succeeded int        `json:"succeeded"`
	Failed    int        `json:"failed"`
	Attempts  []*Attempt `json:"attempts"`
}

func summarize(jobID uuid.UUID, attempts []*Attempt) *Summary {
	s := &Summary{JobID: jobID, Total: len(attempts), Attempts: attempts}
	for _, a := range attempts {
		if a.Success {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}
