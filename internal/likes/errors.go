package likes

import (
	"errors"
	"fmt"
)

// Kind classifies a like-toggle failure. The API boundary maps each kind
// to a transport status without inspecting anything else.
type Kind int

const (
	// KindNotAuthorized means the caller identity does not match the
	// user the toggle was requested for, or there is no caller at all.
	KindNotAuthorized Kind = iota + 1
	// KindInvalidTransition means liking an already-liked target or
	// unliking a target that was never liked. No state changed.
	KindInvalidTransition
	// KindStoreWriteFailure means the liked-set write failed. No partial
	// state exists and the whole operation may be retried.
	KindStoreWriteFailure
	// KindPartialFailure means the liked-set write succeeded but the
	// counter write failed, leaving the stores inconsistent. It must be
	// reported for out-of-band reconciliation, never silently retried.
	KindPartialFailure
)

// String returns the kind's wire-level name
func (k Kind) String() string {
	switch k {
	case KindNotAuthorized:
		return "not_authorized"
	case KindInvalidTransition:
		return "invalid_transition"
	case KindStoreWriteFailure:
		return "store_write_failure"
	case KindPartialFailure:
		return "partial_failure"
	default:
		return "unknown"
	}
}

// Error is the tagged error returned by the toggle service
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("likes: %s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("likes: %s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the failure kind from an error returned by the
// service, or 0 if the error is not a tagged like error.
func KindOf(err error) Kind {
	var le *Error
	if errors.As(err, &le) {
		return le.Kind
	}
	return 0
}

// ErrTargetNotFound is returned when the toggle target does not exist.
// It is a precondition failure, not part of the transition taxonomy.
var ErrTargetNotFound = errors.New("likes: target not found")

// ErrUnknownTargetKind is returned for a target kind the service has no
// store for.
var ErrUnknownTargetKind = errors.New("likes: unknown target kind")
