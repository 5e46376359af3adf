package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bkovalev/go-sync-keeper/internal/adapter"
	"github.com/bkovalev/go-sync-keeper/internal/logger"
	"github.com/bkovalev/go-sync-keeper/internal/store"
	"github.com/bkovalev/go-sync-keeper/models"
)

type syncCoordinator struct {
	bundle  store.BundleStore
	adapter adapter.ServerAdapter
	logger  *logger.Logger

	mu     sync.Mutex
	state  models.SyncState
	states *Broadcaster[models.SyncState]
}

// NewSyncCoordinator constructs the coordinator for full and delta syncs.
// Sync state starts idle and can only reach completed or error through
// syncing.
func NewSyncCoordinator(bundle store.BundleStore, serverAdapter adapter.ServerAdapter, log *logger.Logger) SyncCoordinator {
	return &syncCoordinator{
		bundle:  bundle,
		adapter: serverAdapter,
		logger:  log,
		state:   models.SyncState{Phase: models.SyncIdle},
		states:  NewBroadcaster[models.SyncState](),
	}
}

func (s *syncCoordinator) FullSync(ctx context.Context) error {
	if err := s.beginSync(); err != nil {
		return err
	}

	resp, err := s.adapter.FetchBundle(ctx)
	if err != nil {
		// Transport failure leaves the existing snapshot untouched.
		s.finishSync(err)
		return fmt.Errorf("fetch bundle: %w", err)
	}

	if err = s.bundle.Replace(ctx, resp.Buckets); err != nil {
		s.finishSync(err)
		return fmt.Errorf("replace snapshot: %w", err)
	}

	s.logger.Info().
		Int("buckets", len(resp.Buckets)).
		Msg("full sync completed")
	s.finishSync(nil)
	return nil
}

func (s *syncCoordinator) DeltaSync(ctx context.Context, hashes map[string]string) (DeltaResult, error) {
	if err := s.beginSync(); err != nil {
		return DeltaResult{}, err
	}

	resp, err := s.adapter.DeltaSync(ctx, models.DeltaSyncRequest{Hashes: hashes})
	if err != nil {
		s.finishSync(err)
		return DeltaResult{}, fmt.Errorf("delta sync request: %w", err)
	}

	// Only the changed subset is merged; buckets the response stays silent
	// about keep their local payload (server silence is not deletion).
	if err = s.bundle.Merge(ctx, resp.Changed); err != nil {
		s.finishSync(err)
		return DeltaResult{}, fmt.Errorf("merge delta response: %w", err)
	}

	result := DeltaResult{
		Changed:   sortedKeys(resp.Changed),
		Unchanged: append([]string(nil), resp.Unchanged...),
	}

	s.logger.Info().
		Strs("changed", result.Changed).
		Int("unchanged", len(result.Unchanged)).
		Msg("delta sync completed")
	s.finishSync(nil)
	return result, nil
}

func (s *syncCoordinator) Restore(ctx context.Context) (models.Snapshot, error) {
	return s.bundle.Restore(ctx)
}

func (s *syncCoordinator) State() models.SyncState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *syncCoordinator) States() (<-chan models.SyncState, func()) {
	return s.states.Subscribe()
}

// beginSync moves the state machine into syncing. Completed and error are
// only reachable through here, and two syncs never overlap.
func (s *syncCoordinator) beginSync() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Phase == models.SyncSyncing {
		return ErrSyncInProgress
	}

	s.state = models.SyncState{Phase: models.SyncSyncing}
	s.states.Publish(s.state)
	return nil
}

func (s *syncCoordinator) finishSync(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state = models.SyncState{Phase: models.SyncError, Reason: err.Error()}
	} else {
		s.state = models.SyncState{Phase: models.SyncCompleted}
	}
	s.states.Publish(s.state)
}

func sortedKeys(m map[string]models.Bucket) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
