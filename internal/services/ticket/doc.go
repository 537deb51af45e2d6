// Package ticket drives one ticket acquisition against the platform
// gateway: issue the request, drain completion events on a fixed interval
// until the matching one arrives or the deadline passes, and validate the
// payload before handing it over.
package ticket
