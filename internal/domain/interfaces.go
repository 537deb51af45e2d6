package domain

import "context"

// PlatformGateway owns the session with the local identity-platform client
// and exposes its raw asynchronous ticket primitives. Implementations are
// driven from a single control flow; they need not be safe for concurrent
// use.
type PlatformGateway interface {
	// Open establishes the platform session. It fails with
	// ErrPlatformUnavailable, ErrNotLoggedIn or ErrAppIdentityMissing, all
	// of which are fatal for the run.
	Open(ctx context.Context) (SessionInfo, error)

	// RequestTicket issues one ticket request for the given audience and
	// returns its correlation id. The platform resolves the request
	// asynchronously with a CompletionEvent.
	RequestTicket(ctx context.Context, audience string) (RequestID, error)

	// PollCompletion performs one non-blocking drain of the platform's
	// event queue. ok is false when nothing is pending.
	PollCompletion(ctx context.Context) (ev CompletionEvent, ok bool, err error)

	// Close releases the session. Idempotent, and safe to call after a
	// failed Open.
	Close(ctx context.Context) error
}

// TicketAcquirer turns the gateway primitives into a single validated
// payload or a terminal failure.
type TicketAcquirer interface {
	Acquire(ctx context.Context) (TicketPayload, error)
}

// TicketDeliverer routes an acquired payload to exactly one delivery target.
type TicketDeliverer interface {
	Deliver(ctx context.Context, payload TicketPayload, target DeliveryTarget) error
}
