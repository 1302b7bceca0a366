package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/hpungsan/jotter/internal/errors"
)

// Keys of the persisted entries.
const (
	KeyNotes      = "notes"
	KeyCategories = "categories"
	KeyTheme      = "theme"
)

// KV is the persistent key-value backing store on top of the kv table.
// Writes are last-write-wins.
type KV struct {
	db *sql.DB
}

// NewKV wraps an initialized database.
func NewKV(db *sql.DB) *KV {
	return &KV{db: db}
}

// Get returns the value stored under key. ok is false when the key is absent.
func (s *KV) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.NewInternal(err)
	}
	return value, true, nil
}

const upsertQuery = `
	INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
`

// SetMany stores entries in one transaction, replacing previous values, so a
// snapshot is never half-written.
func (s *KV) SetMany(ctx context.Context, entries map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewInternal(err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertQuery)
	if err != nil {
		return errors.NewInternal(err)
	}
	defer stmt.Close()

	now := time.Now().UnixMilli()
	for key, value := range entries {
		if _, err := stmt.ExecContext(ctx, key, value, now); err != nil {
			return errors.NewInternal(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}
