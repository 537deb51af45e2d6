package domain

// CompletionEvent is the platform's asynchronous resolution of one ticket
// request. Exactly one event settles a given RequestID; events carrying any
// other id are stale leftovers and are discarded by the acquisition loop.
type CompletionEvent struct {
	RequestID RequestID
	OK        bool
	Ticket    TicketPayload // set when OK
	Reason    string        // platform reason code when !OK
}

// SessionInfo describes the authenticated platform session the gateway
// established.
type SessionInfo struct {
	UserID  string
	Persona string
	AppID   string
}
