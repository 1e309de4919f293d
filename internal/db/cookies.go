package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/panelsync/internal/browser"
	"github.com/jonathan/panelsync/internal/cookiejar"
)

// Load returns the cached cookie set for a target, or cookiejar.ErrNotFound
// when none is stored.
func (db *DB) Load(ctx context.Context, targetID uuid.UUID) ([]browser.Cookie, error) {
	var raw []byte
	err := db.pool.QueryRow(ctx,
		`SELECT cookies FROM target_cookies WHERE target_id = $1`, targetID).Scan(&raw)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, cookiejar.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load cookies: %w", err)
	}

	var cookies []browser.Cookie
	if err := json.Unmarshal(raw, &cookies); err != nil {
		return nil, fmt.Errorf("failed to decode stored cookies: %w", err)
	}
	return cookies, nil
}

// Save replaces the cached cookie set for a target. The set is written as one
// JSONB document so a reader never observes a partially updated session.
func (db *DB) Save(ctx context.Context, targetID uuid.UUID, cookies []browser.Cookie) error {
	raw, err := json.Marshal(cookies)
	if err != nil {
		return fmt.Errorf("failed to encode cookies: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO target_cookies (target_id, cookies, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (target_id) DO UPDATE SET cookies = $2, updated_at = NOW()`,
		targetID, raw)
	if err != nil {
		return fmt.Errorf("failed to save cookies: %w", err)
	}
	return nil
}

// Delete drops the cached cookie set for a target. Deleting an absent set is
// not an error.
func (db *DB) Delete(ctx context.Context, targetID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`DELETE FROM target_cookies WHERE target_id = $1`, targetID)
	if err != nil {
		return fmt.Errorf("failed to delete cookies: %w", err)
	}
	return nil
}
