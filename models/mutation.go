package models

import (
	"encoding/json"
	"time"
)

// MutationStatus is the lifecycle state of a queued local write.
// Completed mutations are removed from the queue entirely, so there is no
// terminal "done" status.
type MutationStatus string

const (
	// MutationPending means the mutation is waiting to be sent.
	MutationPending MutationStatus = "pending"
	// MutationSyncing means the retry engine currently holds the mutation
	// for an in-flight send.
	MutationSyncing MutationStatus = "syncing"
	// MutationFailed means retries are exhausted or the server rejected
	// the write permanently. Requires operator action; never auto-retried.
	MutationFailed MutationStatus = "failed"
	// MutationConflicted means the resolver decided the remote state must
	// win and queued the entry for an explicit decision.
	MutationConflicted MutationStatus = "conflicted"
)

// MutationMethod is the kind of local write being replayed.
type MutationMethod string

const (
	MethodCreate MutationMethod = "create"
	MethodUpdate MutationMethod = "update"
	MethodDelete MutationMethod = "delete"
)

// DefaultMaxRetries bounds transient-failure retries per mutation.
const DefaultMaxRetries = 3

// PendingMutation is a locally originated write that has not yet been
// confirmed by the server.
type PendingMutation struct {
	ID       string         `json:"id"`
	DedupKey string         `json:"dedup_key"`
	Endpoint string         `json:"endpoint"`
	Method   MutationMethod `json:"method"`

	// Body is the opaque JSON request body to replay.
	Body json.RawMessage `json:"body"`

	CreatedAt  time.Time      `json:"created_at"`
	RetryCount int            `json:"retry_count"`
	MaxRetries int            `json:"max_retries"`
	Status     MutationStatus `json:"status"`

	// EntityVersion, when known, is the version of the target entity the
	// write was issued against. Used for conflict comparison on the server.
	EntityVersion string `json:"entity_version,omitempty"`
}

// DeriveDedupKey builds the queue identity for a write: one queued edit per
// method+endpoint pair, so a later edit to the same entity replaces an
// earlier queued one.
func DeriveDedupKey(method MutationMethod, endpoint string) string {
	return string(method) + ":" + endpoint
}
