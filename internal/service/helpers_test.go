package service

import (
	"context"
	"sync"
	"time"

	"github.com/bkovalev/go-sync-keeper/internal/store"
	"github.com/bkovalev/go-sync-keeper/models"
)

// memKV is an in-memory KeyValueStore used to exercise persistence paths
// without a real database.
type memKV struct {
	mu      sync.Mutex
	records map[string][]byte
	saveErr error
	saves   int
}

func newMemKV() *memKV {
	return &memKV{records: make(map[string][]byte)}
}

func (m *memKV) Save(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveErr != nil {
		return m.saveErr
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	m.records[key] = cp
	m.saves++
	return nil
}

func (m *memKV) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.records[key]
	if !ok {
		return nil, store.ErrKeyNotFound
	}
	return value, nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	return nil
}

func (m *memKV) Close() error { return nil }

// fakeClock hands out strictly increasing timestamps and records every
// requested sleep instead of blocking.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.mu.Lock()
	c.sleeps = append(c.sleeps, d)
	c.mu.Unlock()
	return ctx.Err()
}

func (c *fakeClock) recordedSleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

// stubMonitor drives the orchestrator with scripted connectivity
// transitions.
type stubMonitor struct {
	mu      sync.Mutex
	current models.ConnectivityState
	states  *Broadcaster[models.ConnectivityState]
}

func newStubMonitor(initial models.ConnectivityState) *stubMonitor {
	return &stubMonitor{current: initial, states: NewBroadcaster[models.ConnectivityState]()}
}

func (s *stubMonitor) Start(context.Context) {}
func (s *stubMonitor) Stop()                 {}

func (s *stubMonitor) IsOnline() bool {
	return s.Current() == models.ConnectivityAvailable
}

func (s *stubMonitor) Current() models.ConnectivityState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *stubMonitor) States() (<-chan models.ConnectivityState, func()) {
	return s.states.Subscribe()
}

func (s *stubMonitor) transition(state models.ConnectivityState) {
	s.mu.Lock()
	s.current = state
	s.mu.Unlock()
	s.states.Publish(state)
}
