package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkovalev/go-sync-keeper/internal/logger"
	"github.com/bkovalev/go-sync-keeper/internal/store"
	"github.com/bkovalev/go-sync-keeper/models"
)

// stubEngine stands in for the retry engine when a test only cares about
// how the orchestrator sequences calls.
type stubEngine struct {
	mu      sync.Mutex
	calls   int
	report  ProcessingReport
	err     error
	block   chan struct{}
	started chan struct{}
}

func (e *stubEngine) ProcessQueue(context.Context) (ProcessingReport, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()

	if e.started != nil {
		e.started <- struct{}{}
	}
	if e.block != nil {
		<-e.block
	}
	return e.report, e.err
}

func (e *stubEngine) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

type orchestratorFixture struct {
	queue        MutationQueue
	adapter      *scriptedAdapter
	bundle       store.BundleStore
	monitor      *stubMonitor
	clock        *fakeClock
	orchestrator ReconnectionOrchestrator
}

// newOrchestratorFixture wires the orchestrator over a real queue, retry
// engine and coordinator; only the transport and connectivity are faked.
func newOrchestratorFixture(t *testing.T, staleWindow time.Duration) *orchestratorFixture {
	t.Helper()

	clock := newFakeClock()
	sa := newScriptedAdapter()
	sa.deltaDone = make(chan struct{}, 8)
	log := logger.Nop()

	queue := NewMutationQueue(newMemKV(), clock, 50, 3, log)
	engine := NewRetryEngine(queue, NewConflictResolver(), sa, clock, time.Second, 30*time.Second, log)
	bundle := store.NewBundleStore(newMemKV(), log)
	coordinator := NewSyncCoordinator(bundle, sa, log)
	monitor := newStubMonitor(models.ConnectivityUnavailable)

	return &orchestratorFixture{
		queue:        queue,
		adapter:      sa,
		bundle:       bundle,
		monitor:      monitor,
		clock:        clock,
		orchestrator: NewReconnectionOrchestrator(monitor, engine, coordinator, bundle, clock, staleWindow, log),
	}
}

func waitForSignal(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func waitForEvent(t *testing.T, ch <-chan OrchestratorEvent) OrchestratorEvent {
	t.Helper()
	select {
	case event := <-ch:
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for an orchestrator event")
		return OrchestratorEvent{}
	}
}

// ── Reconnection cycle ──────────────────────────────────────────────────────

func TestOrchestrator_ReconnectionDrainsQueueThenSyncs(t *testing.T) {
	f := newOrchestratorFixture(t, 5*time.Minute)
	ctx := context.Background()

	_, err := f.queue.Enqueue(ctx, testMutation("/a"))
	require.NoError(t, err)
	_, err = f.queue.Enqueue(ctx, testMutation("/b"))
	require.NoError(t, err)

	f.orchestrator.Start(ctx)
	defer f.orchestrator.Stop()

	f.monitor.transition(models.ConnectivityAvailable)
	waitForSignal(t, f.adapter.deltaDone, "reconnection delta sync")

	assert.Equal(t, []string{"/a", "/b"}, f.adapter.sentOrder(), "queued writes drain before the delta sync")
	assert.Empty(t, f.queue.Snapshot())
	assert.Equal(t, 1, f.adapter.deltaCount())
}

func TestOrchestrator_DeltaSyncRunsEvenWhenDrainFails(t *testing.T) {
	clock := newFakeClock()
	sa := newScriptedAdapter()
	sa.deltaDone = make(chan struct{}, 8)
	log := logger.Nop()
	bundle := store.NewBundleStore(newMemKV(), log)
	monitor := newStubMonitor(models.ConnectivityUnavailable)
	engine := &stubEngine{err: context.DeadlineExceeded, report: ProcessingReport{Remaining: 3}}

	o := NewReconnectionOrchestrator(monitor, engine, NewSyncCoordinator(bundle, sa, log), bundle, clock, 5*time.Minute, log)
	o.Start(context.Background())
	defer o.Stop()

	monitor.transition(models.ConnectivityAvailable)
	waitForSignal(t, sa.deltaDone, "delta sync after failed drain")

	assert.Equal(t, 1, engine.callCount())
	assert.Equal(t, 1, sa.deltaCount(), "a partial drain must not block the snapshot refresh")
}

func TestOrchestrator_DegradingDoesNotTriggerCycle(t *testing.T) {
	f := newOrchestratorFixture(t, 5*time.Minute)
	ctx := context.Background()

	f.orchestrator.Start(ctx)
	defer f.orchestrator.Stop()

	f.monitor.transition(models.ConnectivityDegrading)
	time.Sleep(50 * time.Millisecond)

	assert.Zero(t, f.adapter.deltaCount())
	assert.Empty(t, f.adapter.sentOrder())
}

func TestOrchestrator_CoalescesOverlappingReconnections(t *testing.T) {
	clock := newFakeClock()
	sa := newScriptedAdapter()
	sa.deltaDone = make(chan struct{}, 8)
	log := logger.Nop()
	bundle := store.NewBundleStore(newMemKV(), log)
	monitor := newStubMonitor(models.ConnectivityUnavailable)
	engine := &stubEngine{block: make(chan struct{}), started: make(chan struct{}, 8)}

	o := NewReconnectionOrchestrator(monitor, engine, NewSyncCoordinator(bundle, sa, log), bundle, clock, 5*time.Minute, log)
	events, cancelEvents := o.Events()
	defer cancelEvents()

	o.Start(context.Background())
	defer o.Stop()

	// First reconnection: the cycle starts and parks inside the engine.
	monitor.transition(models.ConnectivityAvailable)
	waitForSignal(t, engine.started, "first cycle")

	// Connectivity flaps while the cycle is still in flight. The offline
	// event confirms the transition was consumed; the second reconnection
	// may only queue a single re-run.
	monitor.transition(models.ConnectivityUnavailable)
	waitForEvent(t, events)
	monitor.transition(models.ConnectivityAvailable)
	time.Sleep(50 * time.Millisecond)

	close(engine.block)
	waitForSignal(t, engine.started, "coalesced re-run")
	waitForSignal(t, sa.deltaDone, "first delta sync")
	waitForSignal(t, sa.deltaDone, "second delta sync")

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 2, engine.callCount(), "overlapping reconnections coalesce into one re-run")
}

// ── Events ──────────────────────────────────────────────────────────────────

func TestOrchestrator_PublishesWentOffline(t *testing.T) {
	f := newOrchestratorFixture(t, 5*time.Minute)
	f.monitor.current = models.ConnectivityAvailable

	events, cancel := f.orchestrator.Events()
	defer cancel()

	f.orchestrator.Start(context.Background())
	defer f.orchestrator.Stop()

	f.monitor.transition(models.ConnectivityUnavailable)

	event := waitForEvent(t, events)
	assert.Equal(t, EventWentOffline, event.Kind)
	assert.Empty(t, event.Views)
}

func TestOrchestrator_NotifiesRecentlyAccessedViews(t *testing.T) {
	f := newOrchestratorFixture(t, 5*time.Minute)
	ctx := context.Background()

	events, cancel := f.orchestrator.Events()
	defer cancel()

	f.orchestrator.Start(ctx)
	defer f.orchestrator.Stop()

	f.orchestrator.TouchView("menu")
	f.orchestrator.TouchView("orders")

	f.monitor.transition(models.ConnectivityAvailable)

	event := waitForEvent(t, events)
	assert.Equal(t, EventCachesStale, event.Kind)
	assert.Equal(t, []string{"menu", "orders"}, event.Views)
}

func TestOrchestrator_PrunesViewsOutsideStaleWindow(t *testing.T) {
	// The fake clock advances 1ms per reading, so a nanosecond window puts
	// every touch outside it by the time the cycle runs.
	f := newOrchestratorFixture(t, time.Nanosecond)
	ctx := context.Background()

	events, cancel := f.orchestrator.Events()
	defer cancel()

	f.orchestrator.Start(ctx)
	defer f.orchestrator.Stop()

	f.orchestrator.TouchView("menu")

	f.monitor.transition(models.ConnectivityAvailable)
	waitForSignal(t, f.adapter.deltaDone, "reconnection delta sync")

	time.Sleep(50 * time.Millisecond)
	select {
	case event := <-events:
		t.Fatalf("unexpected event %q for a view accessed outside the window", event.Kind)
	default:
	}
}
