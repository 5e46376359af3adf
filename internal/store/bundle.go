package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/bkovalev/go-sync-keeper/internal/logger"
	"github.com/bkovalev/go-sync-keeper/models"
)

type bundleStore struct {
	kv     KeyValueStore
	logger *logger.Logger
	now    func() time.Time

	mu       sync.RWMutex
	snapshot models.Snapshot
}

// NewBundleStore constructs the exclusive owner of the session's snapshot.
// The snapshot starts empty; call Restore at cold start to rehydrate the
// last persisted state before any sync attempt.
func NewBundleStore(kv KeyValueStore, log *logger.Logger) BundleStore {
	return &bundleStore{
		kv:     kv,
		logger: log,
		now:    time.Now,
		snapshot: models.Snapshot{
			Buckets: make(map[string]models.Bucket),
		},
	}
}

func (b *bundleStore) Replace(ctx context.Context, buckets map[string]models.Bucket) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := models.Snapshot{
		Buckets:  make(map[string]models.Bucket, len(buckets)),
		SyncedAt: b.now(),
	}
	for name, bucket := range buckets {
		bucket.Name = name
		next.Buckets[name] = bucket
	}

	if err := b.persist(ctx, next); err != nil {
		return err
	}

	b.snapshot = next
	return nil
}

func (b *bundleStore) Merge(ctx context.Context, changed map[string]models.Bucket) error {
	if len(changed) == 0 {
		return b.touch(ctx)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	// Targeted per-key update on a copy: unrelated buckets keep their prior
	// payload and hash, and the live snapshot is only swapped once the full
	// response has been applied and persisted.
	next := b.snapshot.Clone()
	next.SyncedAt = b.now()
	for name, bucket := range changed {
		bucket.Name = name
		next.Buckets[name] = bucket
	}

	if err := b.persist(ctx, next); err != nil {
		return err
	}

	b.snapshot = next
	return nil
}

// touch advances SyncedAt without changing any bucket. Used when a delta
// response carried no changes.
func (b *bundleStore) touch(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := b.snapshot.Clone()
	next.SyncedAt = b.now()

	if err := b.persist(ctx, next); err != nil {
		return err
	}

	b.snapshot = next
	return nil
}

func (b *bundleStore) Restore(ctx context.Context) (models.Snapshot, error) {
	raw, err := b.kv.Load(ctx, SnapshotKey)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return models.Snapshot{}, ErrSnapshotNotFound
		}
		return models.Snapshot{}, fmt.Errorf("load persisted snapshot: %w", err)
	}

	var snapshot models.Snapshot
	if err = cbor.Unmarshal(raw, &snapshot); err != nil {
		return models.Snapshot{}, fmt.Errorf("decode persisted snapshot: %w", err)
	}
	if snapshot.Buckets == nil {
		snapshot.Buckets = make(map[string]models.Bucket)
	}

	b.mu.Lock()
	b.snapshot = snapshot
	b.mu.Unlock()

	b.logger.Debug().
		Int("buckets", len(snapshot.Buckets)).
		Time("synced_at", snapshot.SyncedAt).
		Msg("snapshot restored from durable storage")

	return snapshot.Clone(), nil
}

func (b *bundleStore) Clear(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.kv.Delete(ctx, SnapshotKey); err != nil {
		return fmt.Errorf("delete persisted snapshot: %w", err)
	}

	b.snapshot = models.Snapshot{Buckets: make(map[string]models.Bucket)}
	return nil
}

func (b *bundleStore) Snapshot() models.Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshot.Clone()
}

func (b *bundleStore) CurrentBucket(name string) (models.Bucket, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	bucket, ok := b.snapshot.Buckets[name]
	if !ok {
		return models.Bucket{}, false
	}

	payload := make([]byte, len(bucket.Payload))
	copy(payload, bucket.Payload)
	bucket.Payload = payload
	return bucket, true
}

func (b *bundleStore) Hashes() map[string]string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshot.Hashes()
}

func (b *bundleStore) SyncedAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshot.SyncedAt
}

// persist writes the candidate snapshot to durable storage. Callers hold the
// write lock and must not swap the live snapshot unless persist succeeded.
func (b *bundleStore) persist(ctx context.Context, snapshot models.Snapshot) error {
	raw, err := cbor.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err = b.kv.Save(ctx, SnapshotKey, raw); err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}

	return nil
}
