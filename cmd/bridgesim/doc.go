// Package main runs the in-memory platform-bridge simulator used by authtix
// during development and manual testing. It stands in for the identity
// platform client's local HTTP bridge: it hands out sessions, accepts
// ticket requests and queues their completion events until the CLI drains
// them.
//
// HTTP API
//
//	POST /v1/session { "app_id": ... }
//	    Open a session. 401 when the simulated user is logged out, 404 when
//	    the app id is empty or not the registered one.
//
//	POST /v1/session/{sid}/tickets { "request_id": ..., "audience": ... }
//	    Accept a ticket request. Its completion event becomes visible on
//	    the events endpoint once the configured issue delay has passed.
//
//	GET /v1/session/{sid}/events
//	    Drain the completion events that are ready. Responds immediately,
//	    with an empty list when nothing is pending.
//
//	DELETE /v1/session/{sid}
//	    Release the session.
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - Responses are JSON. Non-2xx statuses carry a short error message.
//   - An access log records method, path, status and duration per request.
//   - The default listen address is 127.0.0.1:27123, where the CLI expects
//     the real bridge.
//
// Flags select the failure modes: --logged-out, --app-id, --deny, --delay
// and --ticket-size (negative issues empty tickets, which the CLI must
// reject as invalid).
package main
