package domain_test

import (
	"testing"

	"authtix/internal/domain"
)

func TestChooseTarget_RemoteWins(t *testing.T) {
	got := domain.ChooseTarget("https://verify.example/tickets", "me@example.com", "auth_ticket.txt")
	if got.Kind != domain.TargetRemote {
		t.Fatalf("kind = %q, want remote", got.Kind)
	}
	if got.URL != "https://verify.example/tickets" || got.Email != "me@example.com" {
		t.Fatalf("remote target fields wrong: %+v", got)
	}
}

func TestChooseTarget_FileFallback(t *testing.T) {
	got := domain.ChooseTarget("", "ignored@example.com", "auth_ticket.txt")
	if got.Kind != domain.TargetFile {
		t.Fatalf("kind = %q, want file", got.Kind)
	}
	if got.Path != "auth_ticket.txt" {
		t.Fatalf("path = %q", got.Path)
	}
}

func TestDeliveryTarget_String(t *testing.T) {
	if s := domain.FileTarget("out.txt").String(); s != "out.txt" {
		t.Fatalf("file label = %q", s)
	}
	if s := domain.RemoteTarget("https://verify.example", "").String(); s != "https://verify.example" {
		t.Fatalf("remote label = %q", s)
	}
}
