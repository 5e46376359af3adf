package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/bkovalev/go-sync-keeper/internal/logger"
	"github.com/bkovalev/go-sync-keeper/internal/store"
	"github.com/bkovalev/go-sync-keeper/models"
)

// DefaultQueueCapacity bounds the queue when the config does not override it.
const DefaultQueueCapacity = 50

type mutationQueue struct {
	kv         store.KeyValueStore
	logger     *logger.Logger
	clock      Clock
	capacity   int
	maxRetries int

	mu      sync.Mutex
	entries []models.PendingMutation // enqueue order

	counts *Broadcaster[int]
}

// NewMutationQueue constructs the durable pending-write queue. Every
// mutating operation persists the full queue before returning, so a restart
// resumes with the same pending set.
func NewMutationQueue(kv store.KeyValueStore, clock Clock, capacity, maxRetries int, log *logger.Logger) MutationQueue {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	if maxRetries <= 0 {
		maxRetries = models.DefaultMaxRetries
	}

	return &mutationQueue{
		kv:         kv,
		logger:     log,
		clock:      clock,
		capacity:   capacity,
		maxRetries: maxRetries,
		counts:     NewBroadcaster[int](),
	}
}

func (q *mutationQueue) Enqueue(ctx context.Context, mutation models.PendingMutation) (models.PendingMutation, error) {
	if mutation.ID == "" {
		mutation.ID = uuid.NewString()
	}
	if mutation.DedupKey == "" {
		mutation.DedupKey = models.DeriveDedupKey(mutation.Method, mutation.Endpoint)
	}
	if mutation.CreatedAt.IsZero() {
		mutation.CreatedAt = q.clock.Now()
	}
	if mutation.MaxRetries <= 0 {
		mutation.MaxRetries = q.maxRetries
	}
	mutation.Status = models.MutationPending
	mutation.RetryCount = 0

	q.mu.Lock()
	defer q.mu.Unlock()

	next := cloneEntries(q.entries)
	replaced := false
	for i := range next {
		if next[i].DedupKey == mutation.DedupKey {
			// Latest local edit wins over an earlier queued edit to the
			// same entity.
			next[i] = mutation
			replaced = true
			break
		}
	}
	if !replaced {
		if len(next) >= q.capacity {
			return models.PendingMutation{}, fmt.Errorf("%w: %d entries", ErrCapacityExceeded, len(next))
		}
		next = append(next, mutation)
	}

	if err := q.persist(ctx, next); err != nil {
		// The write was not accepted: a queue that cannot persist an entry
		// must not pretend to hold it.
		return models.PendingMutation{}, err
	}

	q.commit(next)
	return mutation, nil
}

func (q *mutationQueue) NextPending() (models.PendingMutation, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var oldest models.PendingMutation
	found := false
	for _, e := range q.entries {
		if e.Status != models.MutationPending {
			continue
		}
		if !found || e.CreatedAt.Before(oldest.CreatedAt) {
			oldest = e
			found = true
		}
	}

	return oldest, found
}

func (q *mutationQueue) MarkSyncing(ctx context.Context, id string) error {
	return q.transition(ctx, id, models.MutationPending, models.MutationSyncing)
}

func (q *mutationQueue) MarkCompleted(ctx context.Context, id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	idx, err := q.indexOfLocked(id)
	if err != nil {
		return err
	}
	if q.entries[idx].Status != models.MutationSyncing {
		return fmt.Errorf("%w: complete from %q", ErrInvalidTransition, q.entries[idx].Status)
	}

	next := cloneEntries(q.entries)
	next = append(next[:idx], next[idx+1:]...)

	if err = q.persist(ctx, next); err != nil {
		return err
	}

	q.commit(next)
	return nil
}

func (q *mutationQueue) MarkFailed(ctx context.Context, id string) error {
	return q.transition(ctx, id, models.MutationSyncing, models.MutationFailed)
}

func (q *mutationQueue) MarkConflicted(ctx context.Context, id string) error {
	return q.transition(ctx, id, models.MutationSyncing, models.MutationConflicted)
}

func (q *mutationQueue) IncrementRetry(ctx context.Context, id string) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	idx, err := q.indexOfLocked(id)
	if err != nil {
		return false, err
	}
	entry := q.entries[idx]
	if entry.Status != models.MutationSyncing {
		return false, fmt.Errorf("%w: increment retry from %q", ErrInvalidTransition, entry.Status)
	}

	next := cloneEntries(q.entries)
	if entry.RetryCount+1 > entry.MaxRetries {
		next[idx].Status = models.MutationFailed
		if err = q.persist(ctx, next); err != nil {
			return false, err
		}
		q.commit(next)

		q.logger.Warn().
			Str("mutation_id", id).
			Int("retry_count", entry.RetryCount).
			Msg("mutation retry budget exhausted")
		return false, nil
	}

	next[idx].RetryCount++
	next[idx].Status = models.MutationPending
	if err = q.persist(ctx, next); err != nil {
		return false, err
	}
	q.commit(next)
	return true, nil
}

func (q *mutationQueue) Snapshot() []models.PendingMutation {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := cloneEntries(q.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (q *mutationQueue) PendingCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return pendingCount(q.entries)
}

func (q *mutationQueue) Restore(ctx context.Context) error {
	raw, err := q.kv.Load(ctx, store.MutationQueueKey)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil
		}
		return fmt.Errorf("load persisted queue: %w", err)
	}

	var entries []models.PendingMutation
	if err = cbor.Unmarshal(raw, &entries); err != nil {
		return fmt.Errorf("decode persisted queue: %w", err)
	}

	// An entry left syncing by a crash cannot be trusted to have reached
	// the server; it goes back to pending and is re-sent.
	for i := range entries {
		if entries[i].Status == models.MutationSyncing {
			entries[i].Status = models.MutationPending
		}
	}

	q.mu.Lock()
	q.commit(entries)
	q.mu.Unlock()

	q.logger.Debug().
		Int("entries", len(entries)).
		Msg("mutation queue restored from durable storage")
	return nil
}

func (q *mutationQueue) Clear(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.kv.Delete(ctx, store.MutationQueueKey); err != nil {
		return fmt.Errorf("delete persisted queue: %w", err)
	}

	q.commit(nil)
	return nil
}

func (q *mutationQueue) Counts() (<-chan int, func()) {
	return q.counts.Subscribe()
}

// transition applies a single-status change valid only from the given state.
func (q *mutationQueue) transition(ctx context.Context, id string, from, to models.MutationStatus) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	idx, err := q.indexOfLocked(id)
	if err != nil {
		return err
	}
	if q.entries[idx].Status != from {
		return fmt.Errorf("%w: %q → %q requested from %q", ErrInvalidTransition, from, to, q.entries[idx].Status)
	}

	next := cloneEntries(q.entries)
	next[idx].Status = to

	if err = q.persist(ctx, next); err != nil {
		return err
	}

	q.commit(next)
	return nil
}

func (q *mutationQueue) indexOfLocked(id string) (int, error) {
	for i := range q.entries {
		if q.entries[i].ID == id {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrMutationNotFound, id)
}

// persist serialises the candidate entry list to durable storage. The live
// list is only swapped via commit once persistence succeeded.
func (q *mutationQueue) persist(ctx context.Context, entries []models.PendingMutation) error {
	raw, err := cbor.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode queue: %w", err)
	}

	if err = q.kv.Save(ctx, store.MutationQueueKey, raw); err != nil {
		return fmt.Errorf("persist queue: %w", err)
	}

	return nil
}

func (q *mutationQueue) commit(entries []models.PendingMutation) {
	q.entries = entries
	q.counts.Publish(pendingCount(entries))
}

func cloneEntries(entries []models.PendingMutation) []models.PendingMutation {
	out := make([]models.PendingMutation, len(entries))
	copy(out, entries)
	return out
}

func pendingCount(entries []models.PendingMutation) int {
	n := 0
	for _, e := range entries {
		if e.Status == models.MutationPending {
			n++
		}
	}
	return n
}
