// Package logger configures the process-wide zerolog logger.
//
// The CLI reserves stdout for results, so all log output defaults to
// stderr. Init runs exactly once; later calls are no-ops.
package logger
