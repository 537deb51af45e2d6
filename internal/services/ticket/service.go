package ticket

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"authtix/internal/domain"
	"authtix/internal/logger"
)

// State names the acquisition phases. Terminal states are never left, even
// if the platform produces further events afterwards.
type State string

const (
	StateIdle      State = "idle"
	StateRequested State = "requested"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
	StateTimedOut  State = "timed_out"
)

// Service performs one ticket acquisition. It issues exactly one request;
// construct a fresh Service per run. Driven by a single control flow, like
// the gateway beneath it.
type Service struct {
	gateway  domain.PlatformGateway
	audience string
	timeout  time.Duration
	interval time.Duration

	log   zerolog.Logger
	state State
	reqID domain.RequestID
}

// New returns an acquisition service. timeout bounds the whole wait for a
// completion event; interval is the pause between event-queue drains.
func New(gateway domain.PlatformGateway, audience string, timeout, interval time.Duration) *Service {
	return &Service{
		gateway:  gateway,
		audience: audience,
		timeout:  timeout,
		interval: interval,
		log:      logger.WithComponent("ticket"),
		state:    StateIdle,
	}
}

var _ domain.TicketAcquirer = (*Service)(nil)

// State reports the current acquisition phase.
func (s *Service) State() State { return s.state }

// Acquire issues the ticket request and waits for its completion event.
// It returns the validated payload, or the terminal failure: a gateway
// error, ErrAcquireTimeout, ErrAcquireFailed or ErrInvalidPayload. There
// are no retries; the caller decides what to do with the error.
func (s *Service) Acquire(ctx context.Context) (domain.TicketPayload, error) {
	if s.state != StateIdle {
		return nil, fmt.Errorf("acquisition already ran (state %s)", s.state)
	}

	reqID, err := s.gateway.RequestTicket(ctx, s.audience)
	if err != nil {
		s.transition(StateFailed)
		return nil, err
	}
	s.reqID = reqID
	s.transition(StateRequested)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		payload, done, err := s.drain(ctx)
		if done {
			return payload, err
		}
		select {
		case <-ctx.Done():
			return nil, s.timedOut()
		case <-ticker.C:
		}
	}
}

// drain empties the gateway's pending events. done reports that a terminal
// state was reached.
func (s *Service) drain(ctx context.Context) (domain.TicketPayload, bool, error) {
	for {
		ev, ok, err := s.gateway.PollCompletion(ctx)
		if err != nil {
			// A poll cut short by the deadline is a timeout, not a
			// gateway failure.
			if ctx.Err() != nil {
				return nil, true, s.timedOut()
			}
			s.transition(StateFailed)
			return nil, true, err
		}
		if !ok {
			return nil, false, nil
		}
		if ev.RequestID != s.reqID {
			s.log.Debug().
				Str(logger.FieldRequestID, string(ev.RequestID)).
				Msg("discarding stale completion event")
			continue
		}
		return s.settle(ev)
	}
}

// settle applies the completion event matching the outstanding request.
func (s *Service) settle(ev domain.CompletionEvent) (domain.TicketPayload, bool, error) {
	if !ev.OK {
		s.transition(StateFailed)
		return nil, true, fmt.Errorf("%w: %s", domain.ErrAcquireFailed, ev.Reason)
	}
	// The platform may report success with an unusable payload; that is a
	// failure here regardless.
	if err := ev.Ticket.Validate(); err != nil {
		s.transition(StateFailed)
		return nil, true, err
	}

	s.transition(StateSucceeded)
	s.log.Info().
		Str(logger.FieldRequestID, string(s.reqID)).
		Int("ticket_bytes", len(ev.Ticket)).
		Str("ticket_fingerprint", ev.Ticket.Fingerprint()).
		Msg("ticket acquired")
	return ev.Ticket, true, nil
}

func (s *Service) timedOut() error {
	s.transition(StateTimedOut)
	return fmt.Errorf("%w after %s", domain.ErrAcquireTimeout, s.timeout)
}

func (s *Service) transition(next State) {
	s.log.Debug().
		Str(logger.FieldOldState, string(s.state)).
		Str(logger.FieldNewState, string(next)).
		Msg("acquisition state change")
	s.state = next
}
