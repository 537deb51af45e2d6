package app

import (
	"context"
	"time"

	"authtix/internal/domain"
)

// Fetch runs the whole flow: open the platform session, acquire a ticket,
// deliver it to the configured target, optionally linger, release the
// session. Once Open succeeds the session is released on every path.
func (a *App) Fetch(ctx context.Context) error {
	info, err := a.Gateway.Open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Gateway.Close(context.Background()); err != nil {
			a.log.Debug().Err(err).Msg("close session")
		}
	}()
	a.log.Info().
		Str("user_id", info.UserID).
		Str("app_id", info.AppID).
		Msg("platform session open")

	payload, err := a.Tickets.Acquire(ctx)
	if err != nil {
		return err
	}
	defer payload.Wipe()

	if err := a.Delivery.Deliver(ctx, payload, a.Config.Target()); err != nil {
		return err
	}

	if !a.Config.ExitImmediately {
		a.linger(ctx)
	}
	return nil
}

// linger keeps the session alive briefly after delivery, still draining
// platform events, so the remote side can validate the ticket against a
// live session before teardown.
func (a *App) linger(ctx context.Context) {
	a.log.Debug().
		Dur("for", a.Config.LingerFor).
		Msg("holding session open")

	deadline := time.NewTimer(a.Config.LingerFor)
	defer deadline.Stop()
	ticker := time.NewTicker(a.Config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-deadline.C:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, _, err := a.Gateway.PollCompletion(ctx); err != nil {
				return
			}
		}
	}
}

// Status checks the run preconditions: descriptor readable, bridge
// reachable, user logged in. It opens a session and releases it right away.
func (a *App) Status(ctx context.Context) (domain.SessionInfo, error) {
	info, err := a.Gateway.Open(ctx)
	if err != nil {
		return domain.SessionInfo{}, err
	}
	if err := a.Gateway.Close(ctx); err != nil {
		return info, err
	}
	return info, nil
}
