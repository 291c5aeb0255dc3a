// Package sqlite provides SQLite-backed persistence for eventscope.
// The snapshot store keeps the last good harvester artifact per location
// so the viewer works when every fetch candidate is down.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/veldt-labs/eventscope/internal/core/domain"
	"github.com/veldt-labs/eventscope/internal/core/ports/driven"
)

// Ensure SnapshotStore implements the interface.
var _ driven.SnapshotStore = (*SnapshotStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	uri        TEXT PRIMARY KEY,
	data       BLOB NOT NULL,
	fetched_at DATETIME NOT NULL
)
`

// SnapshotStore is a SQLite-based implementation of driven.SnapshotStore.
type SnapshotStore struct {
	db   *sql.DB
	path string
}

// NewSnapshotStore opens (or creates) the snapshot database in dataDir.
// If dataDir is empty, defaults to ~/.eventscope/data.
func NewSnapshotStore(dataDir string) (*SnapshotStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".eventscope", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "snapshots.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SnapshotStore{db: db, path: dbPath}, nil
}

// Close closes the database connection.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *SnapshotStore) Path() string {
	return s.path
}

// Save stores or replaces the snapshot for a location.
func (s *SnapshotStore) Save(ctx context.Context, snap *driven.Snapshot) error {
	if snap == nil || snap.URI == "" {
		return domain.ErrInvalidInput
	}

	fetchedAt := snap.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO snapshots (uri, data, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(uri) DO UPDATE SET data = excluded.data, fetched_at = excluded.fetched_at
	`, snap.URI, snap.Data, fetchedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

// Load returns the snapshot for a location.
func (s *SnapshotStore) Load(ctx context.Context, uri string) (*driven.Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT uri, data, fetched_at FROM snapshots WHERE uri = ?", uri)
	return scanSnapshot(row)
}

// Latest returns the most recently saved snapshot across all locations.
func (s *SnapshotStore) Latest(ctx context.Context) (*driven.Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT uri, data, fetched_at FROM snapshots ORDER BY fetched_at DESC LIMIT 1")
	return scanSnapshot(row)
}

func scanSnapshot(row *sql.Row) (*driven.Snapshot, error) {
	var snap driven.Snapshot
	err := row.Scan(&snap.URI, &snap.Data, &snap.FetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning snapshot: %w", err)
	}
	return &snap, nil
}
