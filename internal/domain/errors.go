package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks at the boundaries. The command layer
// maps each one to a distinct exit code.
var (
	// Preconditions, fatal before any ticket request is made.
	ErrPlatformUnavailable = errors.New("platform client not reachable")
	ErrNotLoggedIn         = errors.New("no user is logged in to the platform client")
	ErrAppIdentityMissing  = errors.New("app registration descriptor missing")

	// Acquisition failures.
	ErrAcquireTimeout = errors.New("no ticket completion before deadline")
	ErrAcquireFailed  = errors.New("platform rejected the ticket request")
	ErrInvalidPayload = errors.New("ticket payload failed validation")

	// Delivery failures.
	ErrFileWrite      = errors.New("ticket file write failed")
	ErrRemoteRejected = errors.New("remote endpoint rejected the ticket")
)

// PlatformError wraps one of the platform sentinels with the bridge call that
// produced it. errors.Is still matches the sentinel through Unwrap.
type PlatformError struct {
	Sentinel error  // classification, one of the sentinels above
	Op       string // bridge operation, e.g. "open session"
	Status   int    // HTTP status when the bridge answered, 0 otherwise
	Err      error  // lower-level cause (transport, decode), may be nil
}

func (e *PlatformError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Op, e.Sentinel)
	if e.Status > 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.Status)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *PlatformError) Unwrap() error { return e.Sentinel }

// RemoteRejectedError reports a non-2xx answer from the verification
// endpoint, keeping the status for the operator.
type RemoteRejectedError struct {
	Status int
}

func (e *RemoteRejectedError) Error() string {
	return fmt.Sprintf("%v (HTTP %d)", ErrRemoteRejected, e.Status)
}

func (e *RemoteRejectedError) Unwrap() error { return ErrRemoteRejected }
