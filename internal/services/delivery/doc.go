// Package delivery routes an acquired ticket to its configured target:
// an atomically written local file, or a single JSON POST to a remote
// verification endpoint. One attempt per run, no retries.
package delivery
