package models

// ConnectivityState describes the current link quality as observed by the
// connectivity monitor. Ephemeral; never persisted.
type ConnectivityState string

const (
	ConnectivityAvailable   ConnectivityState = "available"
	ConnectivityUnavailable ConnectivityState = "unavailable"
	// ConnectivityDegrading means a link is present but its quality is
	// dropping. Observed, but never triggers a reconnection cycle on its own.
	ConnectivityDegrading ConnectivityState = "degrading"
)

// SyncPhase is the coordinator's externally visible sync progress state.
type SyncPhase string

const (
	SyncIdle      SyncPhase = "idle"
	SyncSyncing   SyncPhase = "syncing"
	SyncCompleted SyncPhase = "completed"
	SyncError     SyncPhase = "error"
)

// SyncState is published to subscribers on every coordinator transition.
// Reason is set only when Phase is SyncError.
type SyncState struct {
	Phase  SyncPhase `json:"phase"`
	Reason string    `json:"reason,omitempty"`
}
