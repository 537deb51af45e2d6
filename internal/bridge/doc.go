// Package bridge implements the gateway to the local identity-platform
// client. The platform client exposes a small JSON-over-HTTP bridge on
// loopback; this package owns the session lifecycle against it and maps
// bridge failures onto the domain error taxonomy.
//
// Wire protocol (served by the real platform client, by Simulator, and by
// cmd/bridgesim):
//
//	POST   /v1/session                 { "app_id": ... }            open a session
//	POST   /v1/session/{sid}/tickets   { "request_id", "audience" } request a ticket
//	GET    /v1/session/{sid}/events    drain pending completion events
//	DELETE /v1/session/{sid}           release the session
//
// Ticket bytes travel hex-encoded inside completion events. The events
// endpoint answers immediately whether or not anything is pending, so a
// poll never blocks.
//
// A Client is driven by a single control flow and is not safe for
// concurrent use.
package bridge
