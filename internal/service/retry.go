package service

import (
	"context"
	"time"

	"github.com/bkovalev/go-sync-keeper/internal/adapter"
	"github.com/bkovalev/go-sync-keeper/internal/logger"
	"github.com/bkovalev/go-sync-keeper/models"
)

// Default backoff schedule: 1s, 2s, 4s for the first three retries, capped
// thereafter.
const (
	DefaultBaseBackoff = time.Second
	DefaultMaxBackoff  = 30 * time.Second
)

type retryEngine struct {
	queue    MutationQueue
	resolver ConflictResolver
	adapter  adapter.ServerAdapter
	clock    Clock
	logger   *logger.Logger

	baseBackoff time.Duration
	maxBackoff  time.Duration
}

// NewRetryEngine constructs the queue drain engine. baseBackoff and
// maxBackoff fall back to the default 1s/30s schedule when non-positive.
func NewRetryEngine(
	queue MutationQueue,
	resolver ConflictResolver,
	serverAdapter adapter.ServerAdapter,
	clock Clock,
	baseBackoff, maxBackoff time.Duration,
	log *logger.Logger,
) RetryEngine {
	if baseBackoff <= 0 {
		baseBackoff = DefaultBaseBackoff
	}
	if maxBackoff <= 0 {
		maxBackoff = DefaultMaxBackoff
	}

	return &retryEngine{
		queue:       queue,
		resolver:    resolver,
		adapter:     serverAdapter,
		clock:       clock,
		logger:      log,
		baseBackoff: baseBackoff,
		maxBackoff:  maxBackoff,
	}
}

// ProcessQueue drains pending mutations in FIFO order of enqueue time.
// Status persistence runs on a detached context so a cancellation arriving
// mid-transition cannot leave an entry stuck in syncing; the cancelled send
// itself is accounted as a retry outcome.
func (r *retryEngine) ProcessQueue(ctx context.Context) (ProcessingReport, error) {
	var report ProcessingReport
	defer func() {
		report.Remaining = len(r.queue.Snapshot())
	}()

	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		mutation, ok := r.queue.NextPending()
		if !ok {
			return report, nil
		}

		wait, err := r.processOne(ctx, mutation, &report)
		if err != nil {
			return report, err
		}

		if wait > 0 {
			if err = r.clock.Sleep(ctx, wait); err != nil {
				return report, err
			}
		}
	}
}

// processOne attempts a single mutation and applies the resolver's directive.
// It returns the backoff to observe before the next queue pass (zero for
// none).
func (r *retryEngine) processOne(ctx context.Context, mutation models.PendingMutation, report *ProcessingReport) (time.Duration, error) {
	// Queue transitions must complete even if ctx is cancelled mid-send,
	// otherwise an entry stays syncing with no one to reconcile it.
	qctx := context.WithoutCancel(ctx)

	if err := r.queue.MarkSyncing(qctx, mutation.ID); err != nil {
		return 0, err
	}

	sendErr := r.adapter.SendMutation(ctx, mutation)
	if sendErr == nil {
		if err := r.queue.MarkCompleted(qctx, mutation.ID); err != nil {
			return 0, err
		}
		report.Completed++
		return 0, nil
	}

	outcome := adapter.Classify(sendErr)
	directive := r.resolver.Resolve(mutation, outcome)

	r.logger.Debug().
		Str("mutation_id", mutation.ID).
		Str("outcome", outcome.String()).
		Str("directive", string(directive)).
		Msg("mutation send failed")

	if directive == DirectiveApplyLocal {
		// Last-write-wins: one immediate resubmission. A second conflict
		// means the remote state keeps winning; the entry is parked as
		// conflicted for an explicit decision instead of looping. Any other
		// second failure falls through to retry accounting.
		resubmitErr := r.adapter.SendMutation(ctx, mutation)
		if resubmitErr == nil {
			if err := r.queue.MarkCompleted(qctx, mutation.ID); err != nil {
				return 0, err
			}
			report.Completed++
			return 0, nil
		}
		if adapter.Classify(resubmitErr) == adapter.OutcomeConflict {
			if err := r.queue.MarkConflicted(qctx, mutation.ID); err != nil {
				return 0, err
			}
			report.Conflicted++
			return 0, nil
		}
		directive = DirectiveRetry
	}

	switch directive {
	case DirectiveSkipSilently:
		// Entity is gone server-side; the local write is moot and counts
		// as done.
		if err := r.queue.MarkCompleted(qctx, mutation.ID); err != nil {
			return 0, err
		}
		report.Completed++
		return 0, nil

	case DirectiveFail:
		if err := r.queue.MarkFailed(qctx, mutation.ID); err != nil {
			return 0, err
		}
		report.Failed++
		return 0, nil

	default: // DirectiveRetry
		retriable, err := r.queue.IncrementRetry(qctx, mutation.ID)
		if err != nil {
			return 0, err
		}
		if !retriable {
			report.Failed++
			return 0, nil
		}
		return r.backoff(mutation.RetryCount + 1), nil
	}
}

// backoff returns min(baseBackoff × 2^(n-1), maxBackoff) for the n-th retry.
func (r *retryEngine) backoff(n int) time.Duration {
	if n < 1 {
		n = 1
	}

	d := r.baseBackoff
	for i := 1; i < n; i++ {
		d *= 2
		if d >= r.maxBackoff {
			return r.maxBackoff
		}
	}
	if d > r.maxBackoff {
		return r.maxBackoff
	}
	return d
}
