package commands_test

import (
	"errors"
	"fmt"
	"testing"

	"authtix/cmd/authtix/commands"
	"authtix/internal/app"
	"authtix/internal/domain"
)

func TestExitCode_CoversEverySentinel(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, commands.ExitOK},
		{errors.New("anything else"), commands.ExitFailure},
		{domain.ErrPlatformUnavailable, commands.ExitPlatformUnavailable},
		{domain.ErrNotLoggedIn, commands.ExitNotLoggedIn},
		{domain.ErrAppIdentityMissing, commands.ExitAppIdentityMissing},
		{domain.ErrAcquireTimeout, commands.ExitAcquireTimeout},
		{domain.ErrAcquireFailed, commands.ExitAcquireFailed},
		{domain.ErrInvalidPayload, commands.ExitInvalidPayload},
		{domain.ErrFileWrite, commands.ExitFileWrite},
		{domain.ErrRemoteRejected, commands.ExitRemoteRejected},
	}
	for _, tc := range cases {
		if got := commands.ExitCode(tc.err); got != tc.want {
			t.Fatalf("ExitCode(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestExitCode_SeesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("fetch: %w",
		&domain.PlatformError{Sentinel: domain.ErrNotLoggedIn, Op: "open session", Status: 401})
	if got := commands.ExitCode(err); got != commands.ExitNotLoggedIn {
		t.Fatalf("ExitCode = %d, want %d", got, commands.ExitNotLoggedIn)
	}

	err = fmt.Errorf("deliver: %w", &domain.RemoteRejectedError{Status: 500})
	if got := commands.ExitCode(err); got != commands.ExitRemoteRejected {
		t.Fatalf("ExitCode = %d, want %d", got, commands.ExitRemoteRejected)
	}
}

func TestExitCode_ConfigValidationIsUsage(t *testing.T) {
	cfg := app.DefaultConfig()
	cfg.BridgeURL = "not a url"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("config unexpectedly valid")
	}
	if got := commands.ExitCode(err); got != commands.ExitUsage {
		t.Fatalf("ExitCode = %d, want %d", got, commands.ExitUsage)
	}
}

func TestExitCode_DistinctPerCategory(t *testing.T) {
	sentinels := []error{
		domain.ErrPlatformUnavailable,
		domain.ErrNotLoggedIn,
		domain.ErrAppIdentityMissing,
		domain.ErrAcquireTimeout,
		domain.ErrAcquireFailed,
		domain.ErrInvalidPayload,
		domain.ErrFileWrite,
		domain.ErrRemoteRejected,
	}
	seen := make(map[int]error)
	for _, s := range sentinels {
		code := commands.ExitCode(s)
		if code == commands.ExitOK || code == commands.ExitFailure {
			t.Fatalf("%v maps to a generic code %d", s, code)
		}
		if prev, dup := seen[code]; dup {
			t.Fatalf("%v and %v share exit code %d", prev, s, code)
		}
		seen[code] = s
	}
}
