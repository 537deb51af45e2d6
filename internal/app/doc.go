// Package app wires application dependencies for the CLI.
//
// It validates the flag-assembled Config, builds the bridge gateway and the
// ticket and delivery services, and runs the fetch flow end to end: open
// session, acquire, deliver, optional linger, release.
package app
