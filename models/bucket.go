package models

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Bucket is a named partition of the server-owned dataset (for example
// "menu", "permissions" or "screens"). The payload is opaque to the sync
// engine; only its content hash is inspected during delta exchanges.
type Bucket struct {
	// Name is the unique bucket identifier within a snapshot.
	Name string `json:"name"`

	// Payload is the raw JSON value served for this bucket. The engine
	// never parses it.
	Payload json.RawMessage `json:"payload"`

	// ContentHash is a stable digest of Payload. Two buckets with the same
	// payload bytes always carry the same hash.
	ContentHash string `json:"content_hash"`
}

// Snapshot is the full local replica: every known bucket plus the time of
// the last successful sync. Exactly one Snapshot is live per session and it
// is owned by the bundle store; callers only ever see copies.
type Snapshot struct {
	Buckets  map[string]Bucket `json:"buckets"`
	SyncedAt time.Time         `json:"synced_at"`
}

// ComputeBucketHash returns the content hash for the given payload bytes.
// The digest is xxhash64 rendered as a fixed-width hex string.
func ComputeBucketHash(payload []byte) string {
	return strconv.FormatUint(xxhash.Sum64(payload), 16)
}

// Clone returns a deep copy of the snapshot. Payload bytes are copied so
// the caller cannot alias the store-owned buffers.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Buckets:  make(map[string]Bucket, len(s.Buckets)),
		SyncedAt: s.SyncedAt,
	}
	for name, b := range s.Buckets {
		payload := make(json.RawMessage, len(b.Payload))
		copy(payload, b.Payload)
		out.Buckets[name] = Bucket{Name: b.Name, Payload: payload, ContentHash: b.ContentHash}
	}
	return out
}

// Hashes returns the bucket-name → content-hash mapping used as the delta
// sync request body.
func (s Snapshot) Hashes() map[string]string {
	hashes := make(map[string]string, len(s.Buckets))
	for name, b := range s.Buckets {
		hashes[name] = b.ContentHash
	}
	return hashes
}
