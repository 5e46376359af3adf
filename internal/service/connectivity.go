package service

import (
	"context"
	"sync"
	"time"

	"github.com/bkovalev/go-sync-keeper/internal/logger"
	"github.com/bkovalev/go-sync-keeper/models"
)

// DefaultProbeInterval is how often the link is sampled when the config does
// not override it.
const DefaultProbeInterval = 5 * time.Second

type connectivityMonitor struct {
	prober   LinkProber
	logger   *logger.Logger
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	stateMu sync.RWMutex
	current models.ConnectivityState

	states *Broadcaster[models.ConnectivityState]
}

// NewConnectivityMonitor wraps a link prober into a deduplicated stream of
// connectivity transitions. The monitor reports unavailable until the first
// probe completes.
func NewConnectivityMonitor(prober LinkProber, interval time.Duration, log *logger.Logger) ConnectivityMonitor {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}

	return &connectivityMonitor{
		prober:   prober,
		logger:   log,
		interval: interval,
		current:  models.ConnectivityUnavailable,
		states:   NewBroadcaster[models.ConnectivityState](),
	}
}

// Start implements ConnectivityMonitor. Starting an already running monitor
// is a no-op so repeated calls cannot create duplicate probe loops.
func (m *connectivityMonitor) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		return
	}

	jobCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.wg.Add(1)

	go func() {
		defer m.wg.Done()

		m.observe(m.prober.Probe(jobCtx))

		t := time.NewTicker(m.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				m.observe(m.prober.Probe(jobCtx))
			}
		}
	}()
}

// Stop implements ConnectivityMonitor. It cancels the probe loop and blocks
// until the goroutine has fully exited. Safe to call when the monitor is not
// running (no-op in that case).
func (m *connectivityMonitor) Stop() {
	m.mu.Lock()
	cancel := m.cancel
	m.cancel = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.wg.Wait()
}

func (m *connectivityMonitor) IsOnline() bool {
	return m.Current() == models.ConnectivityAvailable
}

func (m *connectivityMonitor) Current() models.ConnectivityState {
	m.stateMu.RLock()
	defer m.stateMu.RUnlock()
	return m.current
}

func (m *connectivityMonitor) States() (<-chan models.ConnectivityState, func()) {
	return m.states.Subscribe()
}

// observe records a probe result, publishing only actual transitions:
// consecutive identical states are coalesced.
func (m *connectivityMonitor) observe(state models.ConnectivityState) {
	m.stateMu.Lock()
	if state == m.current {
		m.stateMu.Unlock()
		return
	}
	previous := m.current
	m.current = state
	m.stateMu.Unlock()

	m.logger.Info().
		Str("from", string(previous)).
		Str("to", string(state)).
		Msg("connectivity transition")
	m.states.Publish(state)
}
