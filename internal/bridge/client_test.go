package bridge_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"authtix/internal/bridge"
	"authtix/internal/domain"
)

// writeDescriptor moves the test into a fresh working directory holding an
// app registration descriptor.
func writeDescriptor(t *testing.T, appID string) {
	t.Helper()
	t.Chdir(t.TempDir())
	if err := os.WriteFile(bridge.DefaultAppIDFile, []byte(appID+"\n"), 0o600); err != nil {
		t.Fatalf("write descriptor: %v", err)
	}
}

func newTestClient(t *testing.T, sim *bridge.Simulator) *bridge.Client {
	t.Helper()
	srv := httptest.NewServer(sim)
	t.Cleanup(srv.Close)
	return bridge.New(srv.URL)
}

func TestClient_OpenClose(t *testing.T) {
	writeDescriptor(t, "app-0042")
	sim := bridge.NewSimulator()
	c := newTestClient(t, sim)
	ctx := context.Background()

	info, err := c.Open(ctx)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if info.AppID != "app-0042" || info.UserID == "" {
		t.Fatalf("session info incomplete: %+v", info)
	}
	if sim.OpenSessions() != 1 {
		t.Fatalf("simulator holds %d sessions, want 1", sim.OpenSessions())
	}

	if err := c.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
	if sim.OpenSessions() != 0 {
		t.Fatal("session not released")
	}

	// Idempotent: a second close is a no-op.
	if err := c.Close(ctx); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestClient_Open_PlatformUnreachable(t *testing.T) {
	writeDescriptor(t, "app-0042")
	srv := httptest.NewServer(bridge.NewSimulator())
	srv.Close() // nothing listens any more

	c := bridge.New(srv.URL)
	if _, err := c.Open(context.Background()); !errors.Is(err, domain.ErrPlatformUnavailable) {
		t.Fatalf("err = %v, want ErrPlatformUnavailable", err)
	}
}

func TestClient_Open_NotLoggedIn(t *testing.T) {
	writeDescriptor(t, "app-0042")
	sim := bridge.NewSimulator()
	sim.LoggedOut = true

	c := newTestClient(t, sim)
	if _, err := c.Open(context.Background()); !errors.Is(err, domain.ErrNotLoggedIn) {
		t.Fatalf("err = %v, want ErrNotLoggedIn", err)
	}
}

func TestClient_Open_DescriptorMissing(t *testing.T) {
	t.Chdir(t.TempDir()) // no descriptor written

	c := newTestClient(t, bridge.NewSimulator())
	_, err := c.Open(context.Background())
	if !errors.Is(err, domain.ErrAppIdentityMissing) {
		t.Fatalf("err = %v, want ErrAppIdentityMissing", err)
	}
}

func TestClient_Open_DescriptorEmpty(t *testing.T) {
	writeDescriptor(t, "")

	c := newTestClient(t, bridge.NewSimulator())
	_, err := c.Open(context.Background())
	if !errors.Is(err, domain.ErrAppIdentityMissing) {
		t.Fatalf("err = %v, want ErrAppIdentityMissing", err)
	}
}

func TestClient_Open_AppNotRegistered(t *testing.T) {
	writeDescriptor(t, "app-0042")
	sim := bridge.NewSimulator()
	sim.AppID = "app-9999" // a different app is registered

	c := newTestClient(t, sim)
	_, err := c.Open(context.Background())
	if !errors.Is(err, domain.ErrAppIdentityMissing) {
		t.Fatalf("err = %v, want ErrAppIdentityMissing", err)
	}
}

func TestClient_TicketFlow(t *testing.T) {
	writeDescriptor(t, "app-0042")
	sim := bridge.NewSimulator()
	sim.TicketSize = 32

	c := newTestClient(t, sim)
	ctx := context.Background()
	if _, err := c.Open(ctx); err != nil {
		t.Fatalf("open: %v", err)
	}

	reqID, err := c.RequestTicket(ctx, "webapi")
	if err != nil {
		t.Fatalf("request ticket: %v", err)
	}
	if reqID == "" {
		t.Fatal("empty request id")
	}

	ev, ok, err := c.PollCompletion(ctx)
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if !ok {
		t.Fatal("no event on first poll despite zero issue delay")
	}
	if ev.RequestID != reqID {
		t.Fatalf("event for %q, want %q", ev.RequestID, reqID)
	}
	if !ev.OK || len(ev.Ticket) != 32 {
		t.Fatalf("unexpected event: ok=%v, %d ticket bytes", ev.OK, len(ev.Ticket))
	}
}

func TestClient_Poll_HonoursIssueDelay(t *testing.T) {
	writeDescriptor(t, "app-0042")
	sim := bridge.NewSimulator()
	sim.IssueDelay = time.Hour

	c := newTestClient(t, sim)
	ctx := context.Background()
	if _, err := c.Open(ctx); err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := c.RequestTicket(ctx, "webapi"); err != nil {
		t.Fatalf("request ticket: %v", err)
	}

	if _, ok, err := c.PollCompletion(ctx); err != nil || ok {
		t.Fatalf("poll = (ok=%v, err=%v), want pending event held back", ok, err)
	}
}

func TestClient_Poll_BuffersFIFO(t *testing.T) {
	writeDescriptor(t, "app-0042")
	sim := bridge.NewSimulator()

	c := newTestClient(t, sim)
	ctx := context.Background()
	if _, err := c.Open(ctx); err != nil {
		t.Fatalf("open: %v", err)
	}

	for _, id := range []string{"ev-1", "ev-2", "ev-3"} {
		sim.InjectEvent(domain.CompletionEvent{RequestID: domain.RequestID(id), Reason: "stale"})
	}

	for _, want := range []domain.RequestID{"ev-1", "ev-2", "ev-3"} {
		ev, ok, err := c.PollCompletion(ctx)
		if err != nil || !ok {
			t.Fatalf("poll = (ok=%v, err=%v), want event %s", ok, err, want)
		}
		if ev.RequestID != want {
			t.Fatalf("event order: got %q, want %q", ev.RequestID, want)
		}
	}

	if _, ok, _ := c.PollCompletion(ctx); ok {
		t.Fatal("queue should be drained")
	}
}

func TestClient_RequestTicket_WithoutSession(t *testing.T) {
	c := newTestClient(t, bridge.NewSimulator())
	if _, err := c.RequestTicket(context.Background(), "webapi"); !errors.Is(err, domain.ErrAcquireFailed) {
		t.Fatalf("err = %v, want ErrAcquireFailed", err)
	}
}
