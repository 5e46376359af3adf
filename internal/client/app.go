package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bkovalev/go-sync-keeper/internal/config"
	"github.com/bkovalev/go-sync-keeper/internal/logger"
	"github.com/bkovalev/go-sync-keeper/internal/service"
	"github.com/bkovalev/go-sync-keeper/internal/store"
	"github.com/bkovalev/go-sync-keeper/internal/workers"
	"github.com/bkovalev/go-sync-keeper/models"
)

// App owns the engine lifecycle: cold-start restore, background workers,
// and clean shutdown.
type App struct {
	services *service.ClientServices
	workers  *workers.Workers
	cfg      config.ClientWorkers
	logger   *logger.Logger
}

// NewApp assembles the application from pre-built services.
func NewApp(services *service.ClientServices, cfg config.ClientWorkers, log *logger.Logger) (*App, error) {
	if services == nil {
		return nil, errors.New("nil services provided")
	}

	monitor := services.Monitor
	orchestrator := services.Orchestrator
	syncJob := services.SyncJob
	interval := cfg.SyncInterval

	w := workers.NewWorkers(
		workers.WorkerFunc(func(ctx context.Context) { monitor.Start(ctx) }),
		workers.WorkerFunc(func(ctx context.Context) { orchestrator.Start(ctx) }),
		workers.WorkerFunc(func(ctx context.Context) { syncJob.Start(ctx, interval) }),
	)

	return &App{services: services, workers: w, cfg: cfg, logger: log}, nil
}

// Run restores durable state, starts the background workers, and blocks
// until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if err := a.services.Queue.Restore(ctx); err != nil {
		return fmt.Errorf("restore mutation queue: %w", err)
	}

	// Cold start works from the last persisted snapshot; the first network
	// sync happens in the background once connectivity is confirmed.
	if _, err := a.services.Coordinator.Restore(ctx); err != nil {
		if !errors.Is(err, store.ErrSnapshotNotFound) {
			return fmt.Errorf("restore snapshot: %w", err)
		}
		a.logger.Info().Msg("no persisted snapshot, starting empty")
	}

	a.workers.Run(ctx)
	a.logger.Info().
		Int("pending_mutations", a.services.Queue.PendingCount()).
		Msg("sync engine started")

	<-ctx.Done()

	a.services.SyncJob.Stop()
	a.services.Orchestrator.Stop()
	a.services.Monitor.Stop()
	a.logger.Info().Msg("sync engine stopped")

	return nil
}

// SubmitWrite queues a local write for replay. When the link is available
// the queue is drained right away; otherwise the write waits for the
// reconnection orchestrator.
func (a *App) SubmitWrite(ctx context.Context, method models.MutationMethod, endpoint string, body json.RawMessage) (models.PendingMutation, error) {
	mutation, err := a.services.Queue.Enqueue(ctx, models.PendingMutation{
		Method:   method,
		Endpoint: endpoint,
		Body:     body,
	})
	if err != nil {
		return models.PendingMutation{}, err
	}

	if a.services.Monitor.IsOnline() {
		if _, err = a.services.RetryEngine.ProcessQueue(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Warn().Err(err).Msg("immediate drain after enqueue failed")
		}
	}

	return mutation, nil
}

// CurrentBucket returns a copy of a bucket's payload from the live snapshot.
func (a *App) CurrentBucket(name string) (models.Bucket, bool) {
	a.services.Orchestrator.TouchView(name)
	return a.services.Bundle.CurrentBucket(name)
}

// ClearLocalState drops the snapshot and the pending queue (logout).
func (a *App) ClearLocalState(ctx context.Context) error {
	if err := a.services.Queue.Clear(ctx); err != nil {
		return fmt.Errorf("clear mutation queue: %w", err)
	}
	if err := a.services.Bundle.Clear(ctx); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}

	a.logger.Info().Msg("local state cleared")
	return nil
}
