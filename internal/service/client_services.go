package service

import (
	"github.com/bkovalev/go-sync-keeper/internal/adapter"
	"github.com/bkovalev/go-sync-keeper/internal/config"
	"github.com/bkovalev/go-sync-keeper/internal/logger"
	"github.com/bkovalev/go-sync-keeper/internal/store"
)

// ClientServices aggregates every engine component with its dependencies
// already wired. Components are constructed with explicit dependencies; no
// ambient global state.
type ClientServices struct {
	Queue        MutationQueue
	Resolver     ConflictResolver
	Coordinator  SyncCoordinator
	RetryEngine  RetryEngine
	Monitor      ConnectivityMonitor
	Orchestrator ReconnectionOrchestrator
	SyncJob      ClientSyncJob
	Bundle       store.BundleStore
}

// NewClientServices wires the full engine on top of the given durable store,
// transport adapter and link prober.
func NewClientServices(
	kv store.KeyValueStore,
	serverAdapter adapter.ServerAdapter,
	prober LinkProber,
	cfg config.ClientSync,
	log *logger.Logger,
) *ClientServices {
	clock := NewSystemClock()
	bundle := store.NewBundleStore(kv, log)
	queue := NewMutationQueue(kv, clock, cfg.QueueCapacity, cfg.MaxRetries, log)
	resolver := NewConflictResolver()
	coordinator := NewSyncCoordinator(bundle, serverAdapter, log)
	engine := NewRetryEngine(queue, resolver, serverAdapter, clock, cfg.BaseBackoff, cfg.MaxBackoff, log)
	monitor := NewConnectivityMonitor(prober, cfg.ProbeInterval, log)
	orchestrator := NewReconnectionOrchestrator(monitor, engine, coordinator, bundle, clock, cfg.StaleWindow, log)

	return &ClientServices{
		Queue:        queue,
		Resolver:     resolver,
		Coordinator:  coordinator,
		RetryEngine:  engine,
		Monitor:      monitor,
		Orchestrator: orchestrator,
		SyncJob:      NewClientSyncJob(coordinator, bundle, monitor),
		Bundle:       bundle,
	}
}
