package driven

import (
	"context"
	"time"
)

// Snapshot is a cached copy of a fetched harvester artifact.
type Snapshot struct {
	// URI is the location the document was fetched from.
	URI string

	// Data is the raw JSON artifact.
	Data []byte

	// FetchedAt is when the snapshot was taken.
	FetchedAt time.Time
}

// SnapshotStore persists the most recent good document per location so the
// viewer keeps working when every fetch candidate is unavailable.
type SnapshotStore interface {
	// Save stores or replaces the snapshot for a location.
	Save(ctx context.Context, snap *Snapshot) error

	// Load returns the snapshot for a location, or domain.ErrNotFound.
	Load(ctx context.Context, uri string) (*Snapshot, error)

	// Latest returns the most recently saved snapshot across all
	// locations, or domain.ErrNotFound when the store is empty.
	Latest(ctx context.Context) (*Snapshot, error)

	// Close releases the underlying storage.
	Close() error
}
