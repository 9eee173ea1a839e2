package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zjrosen/spotlight/internal/tour"
)

// CompletionStore implements tour.Store over the completions table.
type CompletionStore struct {
	db  *sql.DB
	now func() time.Time
}

var _ tour.Store = (*CompletionStore)(nil)

// NewCompletionStore wraps a migrated connection.
func NewCompletionStore(db *sql.DB) *CompletionStore {
	return &CompletionStore{db: db, now: time.Now}
}

// Get returns the value stored for key.
func (s *CompletionStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM completions WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get completion %s: %w", key, err)
	}
	return value, true, nil
}

// Set upserts key.
func (s *CompletionStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO completions (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, s.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to set completion %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Missing keys are not an error.
func (s *CompletionStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM completions WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete completion %s: %w", key, err)
	}
	return nil
}

// Record is one stored completion.
type Record struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// List returns every record ordered by key.
func (s *CompletionStore) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value, updated_at FROM completions ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		var r Record
		var updated int64
		if err := rows.Scan(&r.Key, &r.Value, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan completion: %w", err)
		}
		r.UpdatedAt = time.Unix(updated, 0)
		records = append(records, r)
	}
	return records, rows.Err()
}
