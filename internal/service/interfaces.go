package service

import (
	"context"
	"time"

	"github.com/bkovalev/go-sync-keeper/internal/adapter"
	"github.com/bkovalev/go-sync-keeper/models"
)

// MutationQueue is the durable, bounded, deduplicating queue of pending
// local writes. All methods are safe for concurrent use; every mutating
// operation is atomic and persisted before it returns.
type MutationQueue interface {
	// Enqueue adds a local write to the queue. If an entry with the same
	// dedup key exists it is replaced in place (new body and timestamp,
	// status reset to pending, retry count reset to zero). Returns
	// [ErrCapacityExceeded] when the queue is full and no key matches.
	Enqueue(ctx context.Context, mutation models.PendingMutation) (models.PendingMutation, error)

	// NextPending returns the oldest pending-status entry (FIFO by
	// CreatedAt) without mutating its status.
	NextPending() (models.PendingMutation, bool)

	// MarkSyncing transitions pending → syncing.
	MarkSyncing(ctx context.Context, id string) error
	// MarkCompleted removes a syncing entry from the queue entirely.
	MarkCompleted(ctx context.Context, id string) error
	// MarkFailed transitions syncing → failed.
	MarkFailed(ctx context.Context, id string) error
	// MarkConflicted transitions syncing → conflicted.
	MarkConflicted(ctx context.Context, id string) error

	// IncrementRetry bumps the retry count of a syncing entry. It returns
	// true and transitions back to pending while budget remains, or false
	// after transitioning to failed when the budget is exhausted.
	IncrementRetry(ctx context.Context, id string) (bool, error)

	// Snapshot returns every entry in enqueue order, for diagnostics and
	// badge counts.
	Snapshot() []models.PendingMutation

	// PendingCount returns the number of pending-status entries.
	PendingCount() int

	// Restore rehydrates the queue from durable storage. Entries persisted
	// mid-flight as syncing are reset to pending.
	Restore(ctx context.Context) error

	// Clear removes all entries and the durable record.
	Clear(ctx context.Context) error

	// Counts returns a latest-state stream of pending-count changes for
	// badge UIs, plus an unsubscribe func.
	Counts() (<-chan int, func())
}

// SyncCoordinator performs full and delta syncs against the server,
// persisting results through the bundle store.
type SyncCoordinator interface {
	// FullSync fetches the entire dataset and replaces the local snapshot
	// wholesale. The existing snapshot is untouched on transport failure.
	FullSync(ctx context.Context) error

	// DeltaSync exchanges the given bucket hashes for the subset of
	// changed buckets and merges only those into the snapshot.
	DeltaSync(ctx context.Context, hashes map[string]string) (DeltaResult, error)

	// Restore loads the last persisted snapshot without network access.
	Restore(ctx context.Context) (models.Snapshot, error)

	// State returns the current sync state.
	State() models.SyncState

	// States returns a latest-state stream of sync-state transitions for
	// progress indicators, plus an unsubscribe func.
	States() (<-chan models.SyncState, func())
}

// DeltaResult summarises a completed delta exchange.
type DeltaResult struct {
	// Changed lists the bucket names whose payload was merged.
	Changed []string
	// Unchanged lists the bucket names whose local hash matched.
	Unchanged []string
}

// RetryEngine drains the mutation queue against the server transport,
// applying conflict-resolver directives and bounded exponential backoff.
type RetryEngine interface {
	// ProcessQueue attempts every pending mutation in FIFO order until the
	// queue has no pending entries or ctx is cancelled. A cancelled
	// in-flight send is reconciled back to pending, never left syncing.
	ProcessQueue(ctx context.Context) (ProcessingReport, error)
}

// ProcessingReport summarises one drain pass over the queue.
type ProcessingReport struct {
	Completed  int
	Failed     int
	Conflicted int
	// Remaining counts entries still queued (any status) when the pass
	// finished.
	Remaining int
}

// ConnectivityMonitor produces a live, deduplicated stream of connectivity
// transitions sampled from a link prober.
type ConnectivityMonitor interface {
	// Start launches the probe loop. Starting an already running monitor
	// is a no-op; duplicate underlying observers are never created.
	Start(ctx context.Context)
	// Stop terminates the probe loop and waits for it to exit. Safe to
	// call when not running.
	Stop()
	// IsOnline reports whether the latest observed state is available.
	IsOnline() bool
	// Current returns the latest observed state.
	Current() models.ConnectivityState
	// States returns a latest-state stream of deduplicated connectivity
	// transitions, plus an unsubscribe func.
	States() (<-chan models.ConnectivityState, func())
}

// LinkProber is the platform link-state capability wrapped by the monitor.
type LinkProber interface {
	// Probe samples the link once. It must be cheap and respect ctx.
	Probe(ctx context.Context) models.ConnectivityState
}

// ReconnectionOrchestrator sequences queue drain, delta sync and stale-cache
// notification when connectivity returns.
type ReconnectionOrchestrator interface {
	// Start subscribes to the connectivity monitor and begins reacting to
	// transitions. Idempotent.
	Start(ctx context.Context)
	// Stop unsubscribes and waits for any in-flight cycle to finish.
	Stop()
	// TouchView records that a cached view was accessed now; views touched
	// within the stale window receive a caches-stale notice after a
	// reconnection sync.
	TouchView(name string)
	// Events returns a latest-state stream of orchestration events
	// ("went offline", "caches stale"), plus an unsubscribe func.
	Events() (<-chan OrchestratorEvent, func())
}

// OrchestratorEventKind discriminates orchestration notifications.
type OrchestratorEventKind string

const (
	// EventWentOffline is emitted on an available → unavailable transition.
	EventWentOffline OrchestratorEventKind = "went_offline"
	// EventCachesStale is emitted after a reconnection sync for every view
	// accessed within the stale window.
	EventCachesStale OrchestratorEventKind = "caches_stale"
)

// OrchestratorEvent is a notification for engine consumers.
type OrchestratorEvent struct {
	Kind OrchestratorEventKind
	// Views carries the stale view names for EventCachesStale.
	Views []string
}

// ClientSyncJob periodically refreshes the snapshot via delta sync while the
// client stays online.
type ClientSyncJob interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
}

// Clock is the monotonic time capability used for timestamps and backoff
// scheduling. Injected so tests can fake delays.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done, returning ctx.Err() in the
	// latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

// ConflictResolver is the single source of truth for mapping a failed
// mutation's transport outcome to a handling directive.
type ConflictResolver interface {
	Resolve(mutation models.PendingMutation, outcome adapter.Outcome) Directive
}
