package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bkovalev/go-sync-keeper/internal/logger"
	"github.com/bkovalev/go-sync-keeper/internal/store"
	"github.com/bkovalev/go-sync-keeper/models"
)

// DefaultStaleWindow is the lookback for caches-stale notices when the
// config does not override it.
const DefaultStaleWindow = 5 * time.Minute

type reconnectionOrchestrator struct {
	monitor     ConnectivityMonitor
	engine      RetryEngine
	coordinator SyncCoordinator
	bundle      store.BundleStore
	clock       Clock
	staleWindow time.Duration
	logger      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	viewMu sync.Mutex
	views  map[string]time.Time

	cycleMu      sync.Mutex
	cycleRunning bool
	rerun        bool

	events *Broadcaster[OrchestratorEvent]
}

// NewReconnectionOrchestrator sequences drain-then-resync when connectivity
// returns: queue drain first, delta sync second (always, even after a
// partial drain), then caches-stale notices for recently accessed views.
func NewReconnectionOrchestrator(
	monitor ConnectivityMonitor,
	engine RetryEngine,
	coordinator SyncCoordinator,
	bundle store.BundleStore,
	clock Clock,
	staleWindow time.Duration,
	log *logger.Logger,
) ReconnectionOrchestrator {
	if staleWindow <= 0 {
		staleWindow = DefaultStaleWindow
	}

	return &reconnectionOrchestrator{
		monitor:     monitor,
		engine:      engine,
		coordinator: coordinator,
		bundle:      bundle,
		clock:       clock,
		staleWindow: staleWindow,
		logger:      log,
		views:       make(map[string]time.Time),
		events:      NewBroadcaster[OrchestratorEvent](),
	}
}

func (o *reconnectionOrchestrator) Start(ctx context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.cancel != nil {
		return
	}

	jobCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	transitions, unsubscribe := o.monitor.States()
	o.wg.Add(1)

	go func() {
		defer o.wg.Done()
		defer unsubscribe()

		previous := o.monitor.Current()
		for {
			select {
			case <-jobCtx.Done():
				return
			case state, ok := <-transitions:
				if !ok {
					return
				}
				o.handleTransition(jobCtx, previous, state)
				previous = state
			}
		}
	}()
}

func (o *reconnectionOrchestrator) Stop() {
	o.mu.Lock()
	cancel := o.cancel
	o.cancel = nil
	o.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	o.wg.Wait()
}

func (o *reconnectionOrchestrator) TouchView(name string) {
	o.viewMu.Lock()
	defer o.viewMu.Unlock()
	o.views[name] = o.clock.Now()
}

func (o *reconnectionOrchestrator) Events() (<-chan OrchestratorEvent, func()) {
	return o.events.Subscribe()
}

func (o *reconnectionOrchestrator) handleTransition(ctx context.Context, previous, current models.ConnectivityState) {
	switch {
	case previous == models.ConnectivityUnavailable && current == models.ConnectivityAvailable:
		o.requestCycle(ctx)

	case previous == models.ConnectivityAvailable && current == models.ConnectivityUnavailable:
		o.events.Publish(OrchestratorEvent{Kind: EventWentOffline})

	case current == models.ConnectivityDegrading:
		// Observed only. Draining waits for a confirmed available
		// transition so flapping connectivity cannot trigger redundant
		// cycles.
		o.logger.Debug().Msg("connectivity degrading")
	}
}

// requestCycle starts an orchestration cycle, or queues a single re-run if
// one is already in flight. Cycles never run concurrently with themselves.
func (o *reconnectionOrchestrator) requestCycle(ctx context.Context) {
	o.cycleMu.Lock()
	if o.cycleRunning {
		o.rerun = true
		o.cycleMu.Unlock()
		return
	}
	o.cycleRunning = true
	o.cycleMu.Unlock()

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		for {
			o.runCycle(ctx)

			o.cycleMu.Lock()
			if o.rerun && ctx.Err() == nil {
				o.rerun = false
				o.cycleMu.Unlock()
				continue
			}
			o.cycleRunning = false
			o.cycleMu.Unlock()
			return
		}
	}()
}

func (o *reconnectionOrchestrator) runCycle(ctx context.Context) {
	report, err := o.engine.ProcessQueue(ctx)
	if err != nil {
		o.logger.Warn().Err(err).
			Int("completed", report.Completed).
			Int("remaining", report.Remaining).
			Msg("reconnection drain did not finish cleanly")
	} else {
		o.logger.Info().
			Int("completed", report.Completed).
			Int("failed", report.Failed).
			Int("conflicted", report.Conflicted).
			Msg("reconnection drain finished")
	}
	if ctx.Err() != nil {
		return
	}

	// Read state is refreshed even when the drain was partial: a queue that
	// cannot fully drain must not block refreshing the snapshot.
	if _, err = o.coordinator.DeltaSync(ctx, o.bundle.Hashes()); err != nil {
		o.logger.Warn().Err(err).Msg("reconnection delta sync failed")
		return
	}

	if stale := o.staleViews(); len(stale) > 0 {
		o.events.Publish(OrchestratorEvent{Kind: EventCachesStale, Views: stale})
	}
}

// staleViews returns the views accessed within the stale window and prunes
// everything older.
func (o *reconnectionOrchestrator) staleViews() []string {
	cutoff := o.clock.Now().Add(-o.staleWindow)

	o.viewMu.Lock()
	defer o.viewMu.Unlock()

	stale := make([]string, 0, len(o.views))
	for name, accessedAt := range o.views {
		if accessedAt.After(cutoff) {
			stale = append(stale, name)
		} else {
			delete(o.views, name)
		}
	}

	sort.Strings(stale)
	return stale
}
