package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"authtix/internal/util/memzero"
)

// MaxTicketSize bounds a plausible ticket payload. Real tickets run a few
// hundred bytes; anything past this is treated as malformed.
const MaxTicketSize = 8192

// TicketPayload is the opaque authentication artifact issued by the platform.
// The bytes are never interpreted, only validated for shape and re-encoded as
// lowercase hex on every output surface.
type TicketPayload []byte

// Hex returns the lowercase hex encoding of the payload.
func (p TicketPayload) Hex() string { return hex.EncodeToString(p) }

// Fingerprint returns a short stable identifier for logs and display:
// the first 10 bytes of the payload's SHA-256, hex encoded. Logs carry the
// fingerprint, never the payload itself.
func (p TicketPayload) Fingerprint() string {
	sum := sha256.Sum256(p)
	return hex.EncodeToString(sum[:10])
}

// Validate reports whether the payload is deliverable. A zero-length payload
// is invalid even when the platform reported success.
func (p TicketPayload) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("%w: empty payload", ErrInvalidPayload)
	}
	if len(p) > MaxTicketSize {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrInvalidPayload, len(p), MaxTicketSize)
	}
	return nil
}

// Wipe zeroes the payload in place once delivery has consumed it.
func (p TicketPayload) Wipe() { memzero.Zero(p) }

// RequestID correlates one in-flight ticket request with its completion
// event. The gateway generates it and the platform echoes it back.
type RequestID string
