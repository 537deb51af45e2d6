package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"

	"authtix/internal/domain"
	"authtix/internal/logger"
)

// Service dispatches a ticket payload to exactly one delivery target.
type Service struct {
	http *http.Client
	log  zerolog.Logger
}

// New returns a dispatcher. httpClient may be nil, in which case
// http.DefaultClient handles remote delivery.
func New(httpClient *http.Client) *Service {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Service{http: httpClient, log: logger.WithComponent("delivery")}
}

var _ domain.TicketDeliverer = (*Service)(nil)

// Deliver performs one delivery attempt against the target.
func (s *Service) Deliver(ctx context.Context, payload domain.TicketPayload, target domain.DeliveryTarget) error {
	if err := payload.Validate(); err != nil {
		return err
	}
	if target.Kind == domain.TargetRemote {
		return s.deliverRemote(ctx, payload, target)
	}
	return s.deliverFile(payload, target)
}

// deliverFile writes the hex encoding of the payload plus a trailing
// newline, atomically replacing any existing file.
func (s *Service) deliverFile(payload domain.TicketPayload, target domain.DeliveryTarget) error {
	f, err := renameio.NewPendingFile(target.Path, renameio.WithPermissions(0o600))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrFileWrite, err)
	}
	defer func() {
		if err := f.Cleanup(); err != nil {
			s.log.Debug().Err(err).Msg("cleanup pending ticket file")
		}
	}()

	if _, err := fmt.Fprintln(f, payload.Hex()); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrFileWrite, err)
	}
	if err := f.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrFileWrite, err)
	}

	s.log.Info().
		Str(logger.FieldPath, target.Path).
		Int("ticket_bytes", len(payload)).
		Msg("ticket written")
	return nil
}

type remoteBody struct {
	AuthTicket string `json:"authTicket"`
	Email      string `json:"email,omitempty"`
}

// deliverRemote POSTs the ticket and the optional email as a JSON body.
// Any non-2xx answer is a rejection; the response body is not inspected.
func (s *Service) deliverRemote(ctx context.Context, payload domain.TicketPayload, target domain.DeliveryTarget) error {
	body := new(bytes.Buffer)
	if err := json.NewEncoder(body).Encode(remoteBody{AuthTicket: payload.Hex(), Email: target.Email}); err != nil {
		return fmt.Errorf("encode ticket body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.URL, body)
	if err != nil {
		return fmt.Errorf("build ticket request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("post ticket to %s: %w", maskURL(target.URL), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return &domain.RemoteRejectedError{Status: resp.StatusCode}
	}

	s.log.Info().
		Str(logger.FieldURL, maskURL(target.URL)).
		Int(logger.FieldStatus, resp.StatusCode).
		Msg("ticket accepted")
	return nil
}

// maskURL removes user info from a URL string for safe logging.
func maskURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "invalid-url-redacted"
	}
	u.User = nil
	return u.String()
}
