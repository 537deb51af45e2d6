package domain_test

import (
	"errors"
	"strings"
	"testing"

	"authtix/internal/domain"
)

func TestTicketPayload_Hex(t *testing.T) {
	p := domain.TicketPayload{0xDE, 0xAD, 0xBE, 0xEF}
	if got := p.Hex(); got != "deadbeef" {
		t.Fatalf("hex = %q, want deadbeef", got)
	}
}

func TestTicketPayload_Fingerprint(t *testing.T) {
	a := domain.TicketPayload("ticket-a")
	b := domain.TicketPayload("ticket-b")

	fa := a.Fingerprint()
	if len(fa) != 20 {
		t.Fatalf("fingerprint length = %d, want 20", len(fa))
	}
	if fa != a.Fingerprint() {
		t.Fatal("fingerprint not stable")
	}
	if fa == b.Fingerprint() {
		t.Fatal("distinct payloads share a fingerprint")
	}
	if strings.Contains(fa, string(a)) {
		t.Fatal("fingerprint leaks payload bytes")
	}
}

func TestTicketPayload_Validate(t *testing.T) {
	if err := domain.TicketPayload(nil).Validate(); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("empty payload: err = %v, want ErrInvalidPayload", err)
	}
	if err := make(domain.TicketPayload, domain.MaxTicketSize+1).Validate(); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("oversize payload: err = %v, want ErrInvalidPayload", err)
	}
	if err := (domain.TicketPayload{0x01}).Validate(); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}
}

func TestTicketPayload_Wipe(t *testing.T) {
	p := domain.TicketPayload{1, 2, 3}
	p.Wipe()
	for i, b := range p {
		if b != 0 {
			t.Fatalf("byte %d not zeroed", i)
		}
	}
}
