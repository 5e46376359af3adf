package models

// DeltaSyncRequest is sent by the client to initiate a delta exchange.
// The client provides the content hash of every bucket it knows so that the
// server can answer with only the buckets whose payload differs.
type DeltaSyncRequest struct {
	// Hashes maps bucket name to the locally known content hash.
	Hashes map[string]string `json:"hashes"`

	// Length is the total number of entries in Hashes.
	Length int `json:"length"`
}

// DeltaSyncResponse carries the server's answer to a delta exchange.
// A delta response never contains the full dataset: buckets absent from both
// maps are simply unknown to the response and must be left untouched locally.
type DeltaSyncResponse struct {
	// Changed holds the full new payload and hash for every bucket whose
	// content differs from the hash the client sent.
	Changed map[string]Bucket `json:"changed"`

	// Unchanged lists bucket names whose client hash matched.
	Unchanged []string `json:"unchanged"`
}

// FullSyncResponse is the server's answer to a full bundle fetch: the entire
// partitioned dataset keyed by bucket name.
type FullSyncResponse struct {
	Buckets map[string]Bucket `json:"buckets"`
}
