package service

import "errors"

var (
	// ErrCapacityExceeded is returned by Enqueue when the queue is full and
	// the new mutation matches no existing dedup key. The engine never
	// silently evicts an entry to make room.
	ErrCapacityExceeded = errors.New("mutation queue capacity exceeded")

	// ErrMutationNotFound is returned when a status transition targets an
	// ID that is not in the queue.
	ErrMutationNotFound = errors.New("mutation not found in queue")

	// ErrInvalidTransition is returned when a status transition is
	// requested from a state it is not valid in (e.g. MarkCompleted on a
	// mutation that was never marked syncing). This is a logic error in the
	// caller and is signalled, not silently ignored.
	ErrInvalidTransition = errors.New("invalid mutation status transition")

	// ErrSyncInProgress is returned when a full or delta sync is requested
	// while the coordinator is already syncing.
	ErrSyncInProgress = errors.New("sync already in progress")
)
