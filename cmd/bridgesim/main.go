package main

import (
	"flag"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"authtix/internal/bridge"
	"authtix/internal/logger"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:27123", "listen address")
	appID := flag.String("app-id", "", "only this app id may open sessions (empty: any)")
	loggedOut := flag.Bool("logged-out", false, "simulate a logged-out platform user")
	delay := flag.Duration("delay", 0, "delay before a ticket completion becomes visible")
	deny := flag.String("deny", "", "deny ticket requests with this reason")
	ticketSize := flag.Int("ticket-size", 0, "issued ticket bytes (0 = default, negative = empty)")
	level := flag.String("log-level", "debug", "log level")
	flag.Parse()

	logger.Init(logger.Options{Level: *level})
	log := logger.WithComponent("bridgesim")

	sim := bridge.NewSimulator()
	sim.AppID = *appID
	sim.LoggedOut = *loggedOut
	sim.IssueDelay = *delay
	sim.DenyReason = *deny
	sim.TicketSize = *ticketSize

	log.Info().
		Str("addr", *addr).
		Bool("logged_out", *loggedOut).
		Dur("issue_delay", *delay).
		Msg("bridge simulator listening")
	if err := http.ListenAndServe(*addr, accessLog(log, sim)); err != nil {
		log.Fatal().Err(err).Msg("simulator stopped")
	}
}

// accessLog wraps h with a per-request log line.
func accessLog(log zerolog.Logger, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h.ServeHTTP(rec, r)
		log.Debug().
			Str("method", r.Method).
			Str(logger.FieldPath, r.URL.Path).
			Int(logger.FieldStatus, rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
