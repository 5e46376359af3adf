package service

import (
	"context"
	"sync"
	"time"

	"github.com/bkovalev/go-sync-keeper/internal/store"
)

type clientSyncJob struct {
	coordinator SyncCoordinator
	bundle      store.BundleStore
	monitor     ConnectivityMonitor

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientSyncJob creates a clientSyncJob that refreshes the snapshot via
// delta sync on a ticker while connectivity is available. The job is idle
// until Start is called.
func NewClientSyncJob(coordinator SyncCoordinator, bundle store.BundleStore, monitor ConnectivityMonitor) ClientSyncJob {
	return &clientSyncJob{coordinator: coordinator, bundle: bundle, monitor: monitor}
}

// Start implements ClientSyncJob. It stops any previously running job, then
// launches a background goroutine that runs a delta sync every interval. If
// interval is zero or negative it defaults to 5 minutes. Ticks that land
// while offline are skipped; the reconnection orchestrator covers the
// refresh when connectivity returns. The goroutine exits when ctx is
// cancelled or Stop is called.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if !j.monitor.IsOnline() {
					continue
				}
				_, _ = j.coordinator.DeltaSync(jobCtx, j.bundle.Hashes())
			}
		}
	}()
}

// Stop implements ClientSyncJob. It cancels the background goroutine's
// context and blocks until the goroutine has fully exited. Safe to call when
// the job is not running (no-op in that case).
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
