package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// KV is the kv.Store backed by the kv table.
type KV struct {
	db *DB
}

// KV returns the key-value view of the database.
func (db *DB) KV() *KV {
	return &KV{db: db}
}

// Get returns the value stored under key.
func (s *KV) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get kv %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key.
func (s *KV) Set(ctx context.Context, key, value string) error {
	now := formatTime(s.db.clock())
	_, err := s.db.Exec(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, now)
	if err != nil {
		return fmt.Errorf("set kv %s: %w", key, err)
	}
	return nil
}

// Remove deletes key.
func (s *KV) Remove(ctx context.Context, key string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("remove kv %s: %w", key, err)
	}
	return nil
}
