package adapter

import (
	"context"

	"github.com/bkovalev/go-sync-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter is the outbound transport capability consumed by the sync
// engine. Implementations translate engine calls into server requests and
// map every failure onto one of the package's outcome-class sentinel errors.
type ServerAdapter interface {
	// FetchBundle downloads the entire partitioned dataset for a full sync.
	FetchBundle(ctx context.Context) (models.FullSyncResponse, error)

	// DeltaSync sends the locally known bucket hashes and returns only the
	// buckets whose content differs, plus the names that matched.
	DeltaSync(ctx context.Context, req models.DeltaSyncRequest) (models.DeltaSyncResponse, error)

	// SendMutation replays a single queued local write against the server.
	SendMutation(ctx context.Context, mutation models.PendingMutation) error
}
