package app

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"authtix/internal/domain"
)

// Policy defaults for the fetch flow. Flags override them; they are
// exported so help text, wiring and tests state each value exactly once.
const (
	// DefaultBridgeURL is the loopback address the platform client's
	// bridge listens on.
	DefaultBridgeURL = "http://127.0.0.1:27123"

	// DefaultOutputFile receives the ticket when no remote endpoint is
	// configured.
	DefaultOutputFile = "auth_ticket.txt"

	// DefaultAudience is the relying-party name tickets are requested for.
	DefaultAudience = "webapi"

	// DefaultAcquireTimeout bounds the wait for a completion event.
	// Issuing a ticket can involve an interactive confirmation on the
	// platform client, so the bound stays generous.
	DefaultAcquireTimeout = 60 * time.Second

	// DefaultPollInterval is the pause between event-queue drains.
	DefaultPollInterval = 100 * time.Millisecond

	// DefaultLingerFor keeps the session open after delivery unless the
	// exit-immediately flag is set, giving the remote side time to
	// validate the ticket against a live session.
	DefaultLingerFor = 5 * time.Second
)

// Config carries one run's settings, assembled from flags.
type Config struct {
	BridgeURL string `validate:"required,url"`

	OutputFile string `validate:"required_without=RemoteURL"`
	RemoteURL  string `validate:"omitempty,url"`
	Email      string `validate:"omitempty,email"`

	Audience        string        `validate:"required"`
	AcquireTimeout  time.Duration `validate:"gt=0"`
	PollInterval    time.Duration `validate:"gt=0"`
	LingerFor       time.Duration `validate:"gte=0"`
	ExitImmediately bool
}

// DefaultConfig returns a Config with every knob at its default.
func DefaultConfig() Config {
	return Config{
		BridgeURL:      DefaultBridgeURL,
		OutputFile:     DefaultOutputFile,
		Audience:       DefaultAudience,
		AcquireTimeout: DefaultAcquireTimeout,
		PollInterval:   DefaultPollInterval,
		LingerFor:      DefaultLingerFor,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the config before any wiring happens. Failures are usage
// errors, not runtime ones.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Target applies the delivery precedence rule to the configured outputs:
// a remote URL wins over the file path.
func (c Config) Target() domain.DeliveryTarget {
	return domain.ChooseTarget(c.RemoteURL, c.Email, c.OutputFile)
}
