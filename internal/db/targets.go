package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/panelsync/internal/dispatch"
)

const targetColumns = `id, name, base_url, login_url, category, mode,
	encrypted_secret, active, use_proxy, last_distributed_at`

// Target retrieves one target platform record. Returns nil without error when
// the id is unknown, which the orchestrator records as an ordinary failure.
func (db *DB) Target(ctx context.Context, id uuid.UUID) (*dispatch.Target, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+targetColumns+` FROM target_platforms WHERE id = $1`, id)

	t, err := scanTarget(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get target: %w", err)
	}
	return t, nil
}

// ListActiveTargets returns all active browser-mode targets ordered by name.
func (db *DB) ListActiveTargets(ctx context.Context) ([]dispatch.Target, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+targetColumns+` FROM target_platforms
		 WHERE active AND mode = $1 ORDER BY name`, dispatch.ModeBrowser)
	if err != nil {
		return nil, fmt.Errorf("failed to list targets: %w", err)
	}
	defer rows.Close()

	var targets []dispatch.Target
	for rows.Next() {
		t, err := scanTarget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan target: %w", err)
		}
		targets = append(targets, *t)
	}
	return targets, rows.Err()
}

// TouchLastDistributed records that a distribution reached this target. It is
// the only write this engine performs on the registry.
func (db *DB) TouchLastDistributed(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE target_platforms SET last_distributed_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to touch last distributed: %w", err)
	}
	return nil
}

// CreateTarget inserts a target row. Used by the seeding tool only; the
// engine itself never creates registry records.
func (db *DB) CreateTarget(ctx context.Context, t *dispatch.Target) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO target_platforms
		 (id, name, base_url, login_url, category, mode, encrypted_secret, active, use_proxy)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.Name, t.BaseURL, t.LoginURL, t.Category, t.Mode,
		t.EncryptedSecret, t.Active, t.UseProxy)
	if err != nil {
		return fmt.Errorf("failed to create target %s: %w", t.Name, err)
	}
	return nil
}

func scanTarget(row pgx.Row) (*dispatch.Target, error) {
	var t dispatch.Target
	err := row.Scan(&t.ID, &t.Name, &t.BaseURL, &t.LoginURL, &t.Category,
		&t.Mode, &t.EncryptedSecret, &t.Active, &t.UseProxy, &t.LastDistributed)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
