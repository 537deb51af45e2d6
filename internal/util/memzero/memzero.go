// Package memzero scrubs byte buffers that held secret material, such as a
// ticket payload after delivery.
package memzero

import "crypto/subtle"

// Zero overwrites b with zeros in a constant-time friendly way. Best-effort:
// copies of the data made before the call are out of reach.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	zero := make([]byte, len(b))
	subtle.ConstantTimeCopy(1, b, zero)
}
