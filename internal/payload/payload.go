// Package payload provides type definitions for the business facts the engine
// distributes to external panels, along with their validation rules.
package payload

import (
	"encoding/json"
	"fmt"
)

// Kind identifies which panel operation a job performs.
type Kind string

const (
	// KindCastUpdate updates a cast member's profile on the target panel.
	KindCastUpdate Kind = "cast-update"
	// KindScheduleUpdate replaces work-schedule entries on the target panel.
	KindScheduleUpdate Kind = "schedule-update"
	// KindDiaryPost publishes a diary post on the target panel.
	KindDiaryPost Kind = "diary-post"
)

// ParseKind converts a string into a Kind, rejecting unknown values.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindCastUpdate, KindScheduleUpdate, KindDiaryPost:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown operation kind: %q", s)
}

// Payload is the operation data carried by a distribution job.
type Payload interface {
	Kind() Kind
	Validate() error
}

// Snapshot serializes a payload once for the append-only audit record.
func Snapshot(p Payload) (json.RawMessage, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot %s payload: %w", p.Kind(), err)
	}
	return data, nil
}
