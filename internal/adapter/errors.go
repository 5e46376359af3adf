package adapter

import "errors"

// Sentinel errors representing transport outcome classes. Every HTTP status
// and network failure is mapped onto exactly one of these by the adapter;
// callers match with [errors.Is] and never inspect raw status codes.
var (
	// ErrNotFound is returned when the target entity no longer exists on
	// the server (HTTP 404).
	ErrNotFound = errors.New("target not found")

	// ErrConflict is returned when the server rejected a write because of
	// an entity version conflict (HTTP 409).
	ErrConflict = errors.New("version conflict")

	// ErrBadRequest is returned when the server rejected the request as
	// structurally invalid (HTTP 400). Retrying cannot help.
	ErrBadRequest = errors.New("malformed request")

	// ErrClientError is returned for any other 4xx response; treated as a
	// permanent client error.
	ErrClientError = errors.New("client error")

	// ErrInternalServerError is returned for any 5xx response; transient.
	ErrInternalServerError = errors.New("internal server error")

	// ErrUnreachable is returned when the server could not be reached at
	// all (connection refused, DNS failure, no route).
	ErrUnreachable = errors.New("server unreachable")

	// ErrTimeout is returned when a request exceeded its deadline.
	ErrTimeout = errors.New("request timed out")

	// ErrCancelled is returned when the caller cancelled the request
	// context mid-flight.
	ErrCancelled = errors.New("request cancelled")
)

// Outcome is the transport outcome class of a completed (or failed) request.
// It is the only transport-level signal the conflict resolver consumes.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeNotFound
	OutcomeConflict
	OutcomeBadRequest
	OutcomeClientError
	OutcomeServerError
	OutcomeUnreachable
	OutcomeTimeout
	OutcomeCancelled
)

// String returns the outcome class name for logging.
func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeConflict:
		return "conflict"
	case OutcomeBadRequest:
		return "bad_request"
	case OutcomeClientError:
		return "client_error"
	case OutcomeServerError:
		return "server_error"
	case OutcomeUnreachable:
		return "unreachable"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Classify maps an error returned by any adapter method back to its outcome
// class. A nil error is OutcomeOK. Errors that did not originate from the
// adapter classify as OutcomeUnreachable, the most conservative transient
// class.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, ErrConflict):
		return OutcomeConflict
	case errors.Is(err, ErrBadRequest):
		return OutcomeBadRequest
	case errors.Is(err, ErrClientError):
		return OutcomeClientError
	case errors.Is(err, ErrInternalServerError):
		return OutcomeServerError
	case errors.Is(err, ErrTimeout):
		return OutcomeTimeout
	case errors.Is(err, ErrCancelled):
		return OutcomeCancelled
	default:
		return OutcomeUnreachable
	}
}
