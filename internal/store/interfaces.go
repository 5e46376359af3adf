package store

import (
	"context"
	"time"

	"github.com/bkovalev/go-sync-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// Durable record keys used by the sync engine. Values are opaque byte blobs;
// no schema is imposed on the key-value store beyond these names.
const (
	SnapshotKey      = "sync.snapshot"
	MutationQueueKey = "sync.mutationQueue"
)

// KeyValueStore is the durable storage capability consumed by the engine.
// Implementations must persist each Save before returning: an engine that
// "forgets" accepted state violates its core guarantee.
type KeyValueStore interface {
	// Save durably stores value under key, replacing any previous value.
	Save(ctx context.Context, key string, value []byte) error

	// Load returns the value stored under key, or [ErrKeyNotFound].
	Load(ctx context.Context, key string) ([]byte, error)

	// Delete removes the record for key. Deleting a missing key is not an
	// error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying storage handle.
	Close() error
}

// BundleStore owns the single live [models.Snapshot] for the session. It is
// the one point of mutual exclusion for snapshot mutation: full-sync
// replaces and delta-sync merges both serialise here. Callers only ever see
// deep copies of the snapshot.
type BundleStore interface {
	// Replace swaps in a wholesale new set of buckets (full sync), stamps
	// SyncedAt, and persists. The in-memory snapshot is untouched if
	// persistence fails.
	Replace(ctx context.Context, buckets map[string]models.Bucket) error

	// Merge applies a delta response: only the given buckets are updated,
	// every other bucket keeps its prior payload and hash. The merge is
	// atomic per call — either every changed bucket is applied and
	// persisted, or none are.
	Merge(ctx context.Context, changed map[string]models.Bucket) error

	// Restore loads the last persisted snapshot without network access.
	// Returns [ErrSnapshotNotFound] if none has ever been persisted.
	Restore(ctx context.Context) (models.Snapshot, error)

	// Clear drops the live snapshot and its durable record (logout).
	Clear(ctx context.Context) error

	// Snapshot returns a deep copy of the live snapshot.
	Snapshot() models.Snapshot

	// CurrentBucket returns a copy of a single bucket's payload by name.
	CurrentBucket(name string) (models.Bucket, bool)

	// Hashes returns the bucket-name → content-hash map for delta requests.
	Hashes() map[string]string

	// SyncedAt returns the time of the last successful sync, zero if never.
	SyncedAt() time.Time
}
