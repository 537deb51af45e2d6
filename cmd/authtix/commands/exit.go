package commands

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"authtix/internal/domain"
)

// Exit codes keyed on the failure category, stable for scripts.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2

	ExitPlatformUnavailable = 10
	ExitNotLoggedIn         = 11
	ExitAppIdentityMissing  = 12

	ExitAcquireTimeout = 20
	ExitAcquireFailed  = 21
	ExitInvalidPayload = 22

	ExitFileWrite      = 30
	ExitRemoteRejected = 31
)

// errUsage marks command-line mistakes so they exit with ExitUsage.
var errUsage = errors.New("invalid invocation")

// ExitCode maps an error from any command onto the exit-code taxonomy.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, errUsage) || errors.As(err, &verrs):
		return ExitUsage
	case errors.Is(err, domain.ErrPlatformUnavailable):
		return ExitPlatformUnavailable
	case errors.Is(err, domain.ErrNotLoggedIn):
		return ExitNotLoggedIn
	case errors.Is(err, domain.ErrAppIdentityMissing):
		return ExitAppIdentityMissing
	case errors.Is(err, domain.ErrAcquireTimeout):
		return ExitAcquireTimeout
	case errors.Is(err, domain.ErrAcquireFailed):
		return ExitAcquireFailed
	case errors.Is(err, domain.ErrInvalidPayload):
		return ExitInvalidPayload
	case errors.Is(err, domain.ErrFileWrite):
		return ExitFileWrite
	case errors.Is(err, domain.ErrRemoteRejected):
		return ExitRemoteRejected
	default:
		return ExitFailure
	}
}
