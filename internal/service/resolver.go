package service

import (
	"github.com/bkovalev/go-sync-keeper/internal/adapter"
	"github.com/bkovalev/go-sync-keeper/models"
)

// Directive is the resolver's decision for how to handle a failed mutation.
type Directive string

const (
	// DirectiveApplyLocal resubmits the local change so it overwrites the
	// remote state (last-write-wins).
	DirectiveApplyLocal Directive = "apply_local"
	// DirectiveSkipSilently drops the mutation as moot; treated as success
	// for queue purposes.
	DirectiveSkipSilently Directive = "skip_silently"
	// DirectiveRetry schedules another attempt with backoff.
	DirectiveRetry Directive = "retry"
	// DirectiveFail marks the mutation permanently failed.
	DirectiveFail Directive = "fail"
)

type conflictResolver struct{}

// NewConflictResolver returns the stateless resolver holding the single
// outcome-class → directive mapping for the whole engine. No other component
// re-implements this classification.
func NewConflictResolver() ConflictResolver {
	return conflictResolver{}
}

// Resolve maps a failed mutation's transport outcome to a directive:
//
//	not found        → skip silently (entity deleted server-side, write is moot)
//	version conflict → apply local   (last-write-wins resubmission)
//	bad request      → fail          (structurally invalid, retry cannot help)
//	server error     → retry         (transient)
//	unreachable      → retry         (transient)
//	timeout          → retry         (transient)
//	cancelled        → retry         (the send never completed)
//	other 4xx        → fail          (permanent client error)
func (conflictResolver) Resolve(_ models.PendingMutation, outcome adapter.Outcome) Directive {
	switch outcome {
	case adapter.OutcomeNotFound:
		return DirectiveSkipSilently
	case adapter.OutcomeConflict:
		return DirectiveApplyLocal
	case adapter.OutcomeBadRequest:
		return DirectiveFail
	case adapter.OutcomeServerError, adapter.OutcomeUnreachable, adapter.OutcomeTimeout, adapter.OutcomeCancelled:
		return DirectiveRetry
	default:
		return DirectiveFail
	}
}
