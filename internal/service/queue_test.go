package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkovalev/go-sync-keeper/internal/logger"
	"github.com/bkovalev/go-sync-keeper/models"
)

func newTestQueue(t *testing.T) (MutationQueue, *memKV) {
	t.Helper()
	kv := newMemKV()
	q := NewMutationQueue(kv, newFakeClock(), 50, 3, logger.Nop())
	return q, kv
}

func testMutation(endpoint string) models.PendingMutation {
	return models.PendingMutation{
		Method:   models.MethodUpdate,
		Endpoint: endpoint,
		Body:     json.RawMessage(`{"v":1}`),
	}
}

// ── Enqueue ─────────────────────────────────────────────────────────────────

func TestMutationQueue_Enqueue_AssignsDefaults(t *testing.T) {
	q, _ := newTestQueue(t)

	got, err := q.Enqueue(context.Background(), testMutation("/users/5"))
	require.NoError(t, err)

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "update:/users/5", got.DedupKey)
	assert.Equal(t, models.MutationPending, got.Status)
	assert.Equal(t, 3, got.MaxRetries)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestMutationQueue_Enqueue_DedupReplacesEarlierEntry(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	first, err := q.Enqueue(ctx, testMutation("/users/5"))
	require.NoError(t, err)

	second := testMutation("/users/5")
	second.Body = json.RawMessage(`{"v":2}`)
	got, err := q.Enqueue(ctx, second)
	require.NoError(t, err)

	entries := q.Snapshot()
	require.Len(t, entries, 1, "duplicate dedup key must replace, not append")
	assert.Equal(t, json.RawMessage(`{"v":2}`), entries[0].Body)
	assert.Equal(t, 0, entries[0].RetryCount)
	assert.Equal(t, models.MutationPending, entries[0].Status)
	assert.NotEqual(t, first.CreatedAt, got.CreatedAt)
}

func TestMutationQueue_Enqueue_CapacityExceeded(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		_, err := q.Enqueue(ctx, testMutation(fmt.Sprintf("/items/%d", i)))
		require.NoError(t, err)
	}

	_, err := q.Enqueue(ctx, testMutation("/items/overflow"))
	require.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Len(t, q.Snapshot(), 50, "failed enqueue must not evict anything")
}

func TestMutationQueue_Enqueue_AtCapacityDedupStillReplaces(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		_, err := q.Enqueue(ctx, testMutation(fmt.Sprintf("/items/%d", i)))
		require.NoError(t, err)
	}

	// Same dedup key as an existing entry: replacement needs no free slot.
	_, err := q.Enqueue(ctx, testMutation("/items/7"))
	require.NoError(t, err)
	assert.Len(t, q.Snapshot(), 50)
}

func TestMutationQueue_Enqueue_PersistFailureRejectsWrite(t *testing.T) {
	q, kv := newTestQueue(t)
	kv.saveErr = errors.New("disk full")

	_, err := q.Enqueue(context.Background(), testMutation("/users/5"))
	require.Error(t, err)
	assert.Empty(t, q.Snapshot(), "unpersisted entry must not be held")
}

// ── NextPending / FIFO ──────────────────────────────────────────────────────

func TestMutationQueue_NextPending_FIFOByCreatedAt(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	m1, err := q.Enqueue(ctx, testMutation("/a"))
	require.NoError(t, err)
	_, err = q.Enqueue(ctx, testMutation("/b"))
	require.NoError(t, err)

	got, ok := q.NextPending()
	require.True(t, ok)
	assert.Equal(t, m1.ID, got.ID)

	// NextPending must not mutate status.
	again, ok := q.NextPending()
	require.True(t, ok)
	assert.Equal(t, m1.ID, again.ID)
	assert.Equal(t, models.MutationPending, again.Status)
}

func TestMutationQueue_NextPending_Empty(t *testing.T) {
	q, _ := newTestQueue(t)

	_, ok := q.NextPending()
	assert.False(t, ok)
}

func TestMutationQueue_NextPending_SkipsNonPending(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	m1, err := q.Enqueue(ctx, testMutation("/a"))
	require.NoError(t, err)
	m2, err := q.Enqueue(ctx, testMutation("/b"))
	require.NoError(t, err)

	require.NoError(t, q.MarkSyncing(ctx, m1.ID))

	got, ok := q.NextPending()
	require.True(t, ok)
	assert.Equal(t, m2.ID, got.ID)
}

// ── Status transitions ──────────────────────────────────────────────────────

func TestMutationQueue_MarkCompleted_RemovesEntry(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	m, err := q.Enqueue(ctx, testMutation("/a"))
	require.NoError(t, err)

	require.NoError(t, q.MarkSyncing(ctx, m.ID))
	require.NoError(t, q.MarkCompleted(ctx, m.ID))

	assert.Empty(t, q.Snapshot())
}

func TestMutationQueue_Transitions_InvalidFromPending(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	m, err := q.Enqueue(ctx, testMutation("/a"))
	require.NoError(t, err)

	// Entry is pending; all syncing-only transitions must be rejected.
	assert.ErrorIs(t, q.MarkCompleted(ctx, m.ID), ErrInvalidTransition)
	assert.ErrorIs(t, q.MarkFailed(ctx, m.ID), ErrInvalidTransition)
	assert.ErrorIs(t, q.MarkConflicted(ctx, m.ID), ErrInvalidTransition)

	_, err = q.IncrementRetry(ctx, m.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestMutationQueue_Transitions_UnknownID(t *testing.T) {
	q, _ := newTestQueue(t)

	err := q.MarkSyncing(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrMutationNotFound)
}

func TestMutationQueue_IncrementRetry_BudgetExhausted(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	m, err := q.Enqueue(ctx, testMutation("/a"))
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		require.NoError(t, q.MarkSyncing(ctx, m.ID))
		ok, retryErr := q.IncrementRetry(ctx, m.ID)
		require.NoError(t, retryErr)
		assert.True(t, ok, "retry %d is within budget", i)
	}

	require.NoError(t, q.MarkSyncing(ctx, m.ID))
	ok, err := q.IncrementRetry(ctx, m.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	entries := q.Snapshot()
	require.Len(t, entries, 1)
	assert.Equal(t, models.MutationFailed, entries[0].Status)
	assert.Equal(t, 3, entries[0].RetryCount)
}

// ── Persistence round-trip ──────────────────────────────────────────────────

func TestMutationQueue_Restore_RoundTrip(t *testing.T) {
	kv := newMemKV()
	clock := newFakeClock()
	log := logger.Nop()
	ctx := context.Background()

	q := NewMutationQueue(kv, clock, 50, 3, log)
	mPending, err := q.Enqueue(ctx, testMutation("/pending"))
	require.NoError(t, err)
	mFailed, err := q.Enqueue(ctx, testMutation("/failed"))
	require.NoError(t, err)
	mConflicted, err := q.Enqueue(ctx, testMutation("/conflicted"))
	require.NoError(t, err)
	mSyncing, err := q.Enqueue(ctx, testMutation("/syncing"))
	require.NoError(t, err)

	require.NoError(t, q.MarkSyncing(ctx, mFailed.ID))
	require.NoError(t, q.MarkFailed(ctx, mFailed.ID))
	require.NoError(t, q.MarkSyncing(ctx, mConflicted.ID))
	require.NoError(t, q.MarkConflicted(ctx, mConflicted.ID))
	require.NoError(t, q.MarkSyncing(ctx, mSyncing.ID))

	// Fresh queue over the same storage simulates a restart mid-flight.
	restored := NewMutationQueue(kv, clock, 50, 3, log)
	require.NoError(t, restored.Restore(ctx))

	byID := make(map[string]models.PendingMutation)
	for _, e := range restored.Snapshot() {
		byID[e.ID] = e
	}
	require.Len(t, byID, 4)

	assert.Equal(t, models.MutationPending, byID[mPending.ID].Status)
	assert.Equal(t, models.MutationFailed, byID[mFailed.ID].Status)
	assert.Equal(t, models.MutationConflicted, byID[mConflicted.ID].Status)
	assert.Equal(t, models.MutationPending, byID[mSyncing.ID].Status,
		"an entry persisted as syncing cannot be trusted to have completed")

	assert.Equal(t, mPending.Body, byID[mPending.ID].Body)
	assert.Equal(t, mFailed.RetryCount, byID[mFailed.ID].RetryCount)
}

func TestMutationQueue_Restore_NothingPersisted(t *testing.T) {
	q, _ := newTestQueue(t)

	require.NoError(t, q.Restore(context.Background()))
	assert.Empty(t, q.Snapshot())
}

func TestMutationQueue_Clear(t *testing.T) {
	q, kv := newTestQueue(t)
	ctx := context.Background()

	_, err := q.Enqueue(ctx, testMutation("/a"))
	require.NoError(t, err)

	require.NoError(t, q.Clear(ctx))
	assert.Empty(t, q.Snapshot())

	_, err = kv.Load(ctx, "sync.mutationQueue")
	assert.Error(t, err, "durable record must be removed")
}

// ── Counts stream ───────────────────────────────────────────────────────────

func TestMutationQueue_Counts_PublishesOnChange(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	counts, cancel := q.Counts()
	defer cancel()

	_, err := q.Enqueue(ctx, testMutation("/a"))
	require.NoError(t, err)

	select {
	case n := <-counts:
		assert.Equal(t, 1, n)
	default:
		t.Fatal("expected a pending-count notification")
	}
}
