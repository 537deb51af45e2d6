package bridge

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"authtix/internal/domain"
	"authtix/internal/logger"
)

// DefaultAppIDFile is the conventional location of the application
// registration descriptor: one line holding the app id, resolved relative
// to the working directory.
const DefaultAppIDFile = "app_id.txt"

// httpTimeout bounds every bridge round trip. The events endpoint never
// holds a request open, so this does not slow down polling.
const httpTimeout = 10 * time.Second

// Client talks to the platform client's local bridge and implements
// domain.PlatformGateway. One session, one control flow; not safe for
// concurrent use.
type Client struct {
	Base      string // bridge base URL, e.g. http://127.0.0.1:27123
	HTTP      *http.Client
	AppIDFile string // registration descriptor path

	log       zerolog.Logger
	sessionID string
	pending   []domain.CompletionEvent
}

// New returns a client for the bridge at base.
func New(base string) *Client {
	return &Client{
		Base:      strings.TrimRight(base, "/"),
		HTTP:      &http.Client{Timeout: httpTimeout},
		AppIDFile: DefaultAppIDFile,
		log:       logger.WithComponent("bridge"),
	}
}

var _ domain.PlatformGateway = (*Client)(nil)

// Wire shapes shared with Simulator and cmd/bridgesim.
type openRequest struct {
	AppID string `json:"app_id"`
}

type openResponse struct {
	SessionID string `json:"session_id"`
	LoggedIn  bool   `json:"logged_in"`
	UserID    string `json:"user_id"`
	Persona   string `json:"persona"`
}

type ticketRequest struct {
	RequestID string `json:"request_id"`
	Audience  string `json:"audience,omitempty"`
}

type eventsResponse struct {
	Events []wireEvent `json:"events"`
}

type wireEvent struct {
	RequestID string `json:"request_id"`
	OK        bool   `json:"ok"`
	Ticket    string `json:"ticket,omitempty"` // hex
	Reason    string `json:"reason,omitempty"`
}

// Open reads the registration descriptor and establishes the platform
// session. Every failure is one of the precondition sentinels.
func (c *Client) Open(ctx context.Context) (domain.SessionInfo, error) {
	appID, err := c.readAppID()
	if err != nil {
		return domain.SessionInfo{}, err
	}

	var out openResponse
	status, err := c.do(ctx, http.MethodPost, "/v1/session", openRequest{AppID: appID}, &out)
	if err != nil {
		return domain.SessionInfo{}, &domain.PlatformError{
			Sentinel: domain.ErrPlatformUnavailable, Op: "open session", Status: status, Err: err,
		}
	}
	switch {
	case status == http.StatusUnauthorized:
		return domain.SessionInfo{}, &domain.PlatformError{
			Sentinel: domain.ErrNotLoggedIn, Op: "open session", Status: status,
		}
	case status == http.StatusNotFound:
		// The platform has no registration for this app id.
		return domain.SessionInfo{}, &domain.PlatformError{
			Sentinel: domain.ErrAppIdentityMissing, Op: "open session", Status: status,
		}
	case status/100 != 2:
		return domain.SessionInfo{}, &domain.PlatformError{
			Sentinel: domain.ErrPlatformUnavailable, Op: "open session", Status: status,
		}
	case !out.LoggedIn:
		return domain.SessionInfo{}, &domain.PlatformError{
			Sentinel: domain.ErrNotLoggedIn, Op: "open session",
		}
	case out.SessionID == "":
		return domain.SessionInfo{}, &domain.PlatformError{
			Sentinel: domain.ErrPlatformUnavailable, Op: "open session",
			Err: errors.New("bridge answered without a session id"),
		}
	}

	c.sessionID = out.SessionID
	c.log.Debug().
		Str(logger.FieldSessionID, out.SessionID).
		Str("user_id", out.UserID).
		Msg("session opened")
	return domain.SessionInfo{UserID: out.UserID, Persona: out.Persona, AppID: appID}, nil
}

// RequestTicket issues one asynchronous ticket request and returns its
// correlation id. The platform echoes the id in the completion event.
func (c *Client) RequestTicket(ctx context.Context, audience string) (domain.RequestID, error) {
	if c.sessionID == "" {
		return "", fmt.Errorf("%w: no open session", domain.ErrAcquireFailed)
	}

	id := uuid.NewString()
	status, err := c.do(ctx, http.MethodPost, "/v1/session/"+c.sessionID+"/tickets",
		ticketRequest{RequestID: id, Audience: audience}, nil)
	if err != nil {
		return "", &domain.PlatformError{
			Sentinel: domain.ErrPlatformUnavailable, Op: "request ticket", Status: status, Err: err,
		}
	}
	if status/100 != 2 {
		return "", &domain.PlatformError{
			Sentinel: domain.ErrAcquireFailed, Op: "request ticket", Status: status,
		}
	}

	c.log.Debug().
		Str(logger.FieldRequestID, id).
		Str("audience", audience).
		Msg("ticket requested")
	return domain.RequestID(id), nil
}

// PollCompletion pops one pending completion event. It never blocks: the
// events endpoint answers immediately, and any surplus events it carried
// are buffered for later polls.
func (c *Client) PollCompletion(ctx context.Context) (domain.CompletionEvent, bool, error) {
	if len(c.pending) > 0 {
		return c.pop(), true, nil
	}
	if c.sessionID == "" {
		return domain.CompletionEvent{}, false, fmt.Errorf("%w: no open session", domain.ErrAcquireFailed)
	}

	var out eventsResponse
	status, err := c.do(ctx, http.MethodGet, "/v1/session/"+c.sessionID+"/events", nil, &out)
	if err != nil {
		return domain.CompletionEvent{}, false, &domain.PlatformError{
			Sentinel: domain.ErrPlatformUnavailable, Op: "poll events", Status: status, Err: err,
		}
	}
	if status/100 != 2 {
		return domain.CompletionEvent{}, false, &domain.PlatformError{
			Sentinel: domain.ErrPlatformUnavailable, Op: "poll events", Status: status,
		}
	}

	for _, w := range out.Events {
		ev, err := w.toDomain()
		if err != nil {
			return domain.CompletionEvent{}, false, err
		}
		c.pending = append(c.pending, ev)
	}
	if len(c.pending) == 0 {
		return domain.CompletionEvent{}, false, nil
	}
	return c.pop(), true, nil
}

func (c *Client) pop() domain.CompletionEvent {
	ev := c.pending[0]
	c.pending = c.pending[1:]
	return ev
}

// Close releases the platform session. Idempotent: extra calls and calls
// after a failed Open return nil, and a session the platform has already
// dropped is tolerated.
func (c *Client) Close(ctx context.Context) error {
	if c.sessionID == "" {
		return nil
	}
	sid := c.sessionID
	c.sessionID = ""
	c.pending = nil

	status, err := c.do(ctx, http.MethodDelete, "/v1/session/"+sid, nil, nil)
	if err != nil {
		return &domain.PlatformError{
			Sentinel: domain.ErrPlatformUnavailable, Op: "close session", Status: status, Err: err,
		}
	}
	if status/100 != 2 && status != http.StatusNotFound {
		return &domain.PlatformError{
			Sentinel: domain.ErrPlatformUnavailable, Op: "close session", Status: status,
		}
	}

	c.log.Debug().Str(logger.FieldSessionID, sid).Msg("session closed")
	return nil
}

// readAppID loads the descriptor the platform uses to identify the calling
// application.
func (c *Client) readAppID() (string, error) {
	b, err := os.ReadFile(c.AppIDFile)
	if err != nil {
		return "", &domain.PlatformError{
			Sentinel: domain.ErrAppIdentityMissing, Op: "read app descriptor", Err: err,
		}
	}
	appID := strings.TrimSpace(string(b))
	if appID == "" {
		return "", &domain.PlatformError{
			Sentinel: domain.ErrAppIdentityMissing, Op: "read app descriptor",
			Err: fmt.Errorf("%s is empty", c.AppIDFile),
		}
	}
	return appID, nil
}

// do performs one bridge round trip. Non-2xx statuses are returned for the
// caller to map; out is decoded only on success.
func (c *Client) do(ctx context.Context, method, path string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return 0, err
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.Base+path, body)
	if err != nil {
		return 0, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return resp.StatusCode, nil
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// toDomain decodes the hex ticket carried on the wire.
func (w wireEvent) toDomain() (domain.CompletionEvent, error) {
	ev := domain.CompletionEvent{
		RequestID: domain.RequestID(w.RequestID),
		OK:        w.OK,
		Reason:    w.Reason,
	}
	if w.Ticket != "" {
		raw, err := hex.DecodeString(w.Ticket)
		if err != nil {
			return domain.CompletionEvent{}, &domain.PlatformError{
				Sentinel: domain.ErrInvalidPayload, Op: "decode ticket", Err: err,
			}
		}
		ev.Ticket = domain.TicketPayload(raw)
	}
	return ev, nil
}
