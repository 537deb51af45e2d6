// Package commands defines the authtix CLI.
//
// Commands
//
//   - fetch    Acquire a ticket from the platform client and deliver it
//     to a file or a remote verification endpoint
//   - status   Check the bridge: descriptor, reachability, login state
//
// # Implementation
//
// The root command initialises logging before any subcommand runs. Each
// subcommand assembles an app.Config from its flags, wires the dependency
// graph with app.New, and returns errors for Execute to map onto the exit
// code taxonomy in exit.go. Results go to stdout, logs to stderr.
package commands
