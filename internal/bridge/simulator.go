package bridge

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"authtix/internal/domain"
)

const (
	simUserID     = "900000000001"
	simPersona    = "simuser"
	simTicketSize = 234
)

// Simulator serves the platform-bridge wire protocol in memory. It backs
// cmd/bridgesim during development and stands in for the platform client in
// tests. The default behaviour is a logged-in platform that registers any
// app id and issues tickets instantly; the knobs select the failure modes.
//
// Configure the knobs before serving; handlers read them under an internal
// lock.
type Simulator struct {
	LoggedOut  bool          // report no authenticated user
	AppID      string        // when set, only this app id may open sessions
	UserID     string        // defaults to simUserID
	Persona    string        // defaults to simPersona
	IssueDelay time.Duration // events become visible only after this delay
	DenyReason string        // when set, ticket requests resolve as failures
	TicketSize int           // issued ticket bytes; 0 = default, negative = empty

	mu       sync.Mutex
	sessions map[string]*simSession
	mux      *http.ServeMux
}

type simSession struct {
	queue []simEvent
}

type simEvent struct {
	wireEvent
	readyAt time.Time
}

// NewSimulator returns a ready-to-serve simulator.
func NewSimulator() *Simulator {
	s := &Simulator{sessions: make(map[string]*simSession)}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/session", s.handleOpen)
	mux.HandleFunc("POST /v1/session/{sid}/tickets", s.handleTicket)
	mux.HandleFunc("GET /v1/session/{sid}/events", s.handleEvents)
	mux.HandleFunc("DELETE /v1/session/{sid}", s.handleClose)
	s.mux = mux
	return s
}

func (s *Simulator) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// InjectEvent queues an event on every open session, visible to the next
// events drain. Tests use it to plant stale completions.
func (s *Simulator) InjectEvent(ev domain.CompletionEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := wireEvent{RequestID: string(ev.RequestID), OK: ev.OK, Reason: ev.Reason}
	if len(ev.Ticket) > 0 {
		w.Ticket = ev.Ticket.Hex()
	}
	for _, sess := range s.sessions {
		sess.queue = append(sess.queue, simEvent{wireEvent: w, readyAt: time.Now()})
	}
}

// OpenSessions reports how many sessions are currently held.
func (s *Simulator) OpenSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Simulator) handleOpen(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var in openRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpError(w, http.StatusBadRequest, "bad request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoggedOut {
		httpError(w, http.StatusUnauthorized, "no user logged in")
		return
	}
	if in.AppID == "" || (s.AppID != "" && in.AppID != s.AppID) {
		httpError(w, http.StatusNotFound, "app not registered")
		return
	}

	sid := uuid.NewString()
	s.sessions[sid] = &simSession{}
	writeJSON(w, http.StatusOK, openResponse{
		SessionID: sid,
		LoggedIn:  true,
		UserID:    s.userID(),
		Persona:   s.persona(),
	})
}

func (s *Simulator) handleTicket(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var in ticketRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.RequestID == "" {
		httpError(w, http.StatusBadRequest, "bad request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[r.PathValue("sid")]
	if !ok {
		httpError(w, http.StatusNotFound, "unknown session")
		return
	}

	ev := simEvent{readyAt: time.Now().Add(s.IssueDelay)}
	if s.DenyReason != "" {
		ev.wireEvent = wireEvent{RequestID: in.RequestID, Reason: s.DenyReason}
	} else {
		ev.wireEvent = wireEvent{RequestID: in.RequestID, OK: true, Ticket: hex.EncodeToString(s.newTicket())}
	}
	sess.queue = append(sess.queue, ev)
	w.WriteHeader(http.StatusAccepted)
}

func (s *Simulator) handleEvents(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[r.PathValue("sid")]
	if !ok {
		httpError(w, http.StatusNotFound, "unknown session")
		return
	}

	now := time.Now()
	ready := []wireEvent{}
	var held []simEvent
	for _, ev := range sess.queue {
		if ev.readyAt.After(now) {
			held = append(held, ev)
			continue
		}
		ready = append(ready, ev.wireEvent)
	}
	sess.queue = held
	writeJSON(w, http.StatusOK, eventsResponse{Events: ready})
}

func (s *Simulator) handleClose(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sid := r.PathValue("sid")
	if _, ok := s.sessions[sid]; !ok {
		httpError(w, http.StatusNotFound, "unknown session")
		return
	}
	delete(s.sessions, sid)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Simulator) newTicket() []byte {
	size := s.TicketSize
	switch {
	case size < 0:
		return nil
	case size == 0:
		size = simTicketSize
	}
	b := make([]byte, size)
	_, _ = rand.Read(b)
	return b
}

func (s *Simulator) userID() string {
	if s.UserID != "" {
		return s.UserID
	}
	return simUserID
}

func (s *Simulator) persona() string {
	if s.Persona != "" {
		return s.Persona
	}
	return simPersona
}

func httpError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
