package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/panelsync/internal/dispatch"
)

// Append inserts one distribution attempt. Rows are append-only: there is no
// update path, and each call writes exactly one whole record, so concurrent
// appends from parallel dispatch cannot interleave partial writes.
func (db *DB) Append(ctx context.Context, a *dispatch.Attempt) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO distribution_attempts
		 (id, job_id, target_id, target_name, success, error, duration_ms, started_at, payload)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9)`,
		a.ID, a.JobID, a.TargetID, a.TargetName, a.Success, a.Error,
		a.Duration.Milliseconds(), a.StartedAt, []byte(a.Payload))
	if err != nil {
		return fmt.Errorf("failed to append attempt for target %s: %w", a.TargetID, err)
	}
	return nil
}

// ListAttempts returns a job's attempts in start order, for the CLI and
// operator dashboards.
func (db *DB) ListAttempts(ctx context.Context, jobID uuid.UUID) ([]dispatch.Attempt, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, job_id, target_id, target_name, success, COALESCE(error, ''),
		        duration_ms, started_at, payload
		 FROM distribution_attempts WHERE job_id = $1 ORDER BY started_at`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []dispatch.Attempt
	for rows.Next() {
		var a dispatch.Attempt
		var durationMs int64
		var payloadBytes []byte
		err := rows.Scan(&a.ID, &a.JobID, &a.TargetID, &a.TargetName,
			&a.Success, &a.Error, &durationMs, &a.StartedAt, &payloadBytes)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		a.Duration = time.Duration(durationMs) * time.Millisecond
		a.Payload = payloadBytes
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
