package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mrtimely/timely-cli/internal/ports"
)

// snapshotStore implements ports.SnapshotStore on a single key-value table of
// JSON blobs. Writes replace the previous value, so persisting the same
// snapshot twice is harmless.
type snapshotStore struct {
	db *sql.DB
}

// newSnapshotStore creates a new key-value snapshot store.
func newSnapshotStore(db *sql.DB) ports.SnapshotStore {
	return &snapshotStore{db: db}
}

// Put writes a blob under a key, replacing any previous value.
func (s *snapshotStore) Put(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT OR REPLACE INTO kv_store (key, value, updated_at)
		VALUES (?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query, key, string(value), time.Now())
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	return nil
}

// Get reads the blob under a key. A missing key returns (nil, nil).
func (s *snapshotStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	return []byte(value), nil
}

// Delete removes a key. Deleting a missing key is a no-op.
func (s *snapshotStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	return nil
}
