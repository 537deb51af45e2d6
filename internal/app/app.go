package app

import (
	"net/http"

	"github.com/rs/zerolog"

	"authtix/internal/bridge"
	"authtix/internal/domain"
	"authtix/internal/logger"
	deliverysvc "authtix/internal/services/delivery"
	ticketsvc "authtix/internal/services/ticket"
)

// App bundles the gateway and services for one CLI run.
type App struct {
	Config   Config
	Gateway  domain.PlatformGateway
	Tickets  domain.TicketAcquirer
	Delivery domain.TicketDeliverer

	log zerolog.Logger
}

// New validates cfg and constructs the dependency graph.
func New(cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	gw := bridge.New(cfg.BridgeURL)
	return &App{
		Config:   cfg,
		Gateway:  gw,
		Tickets:  ticketsvc.New(gw, cfg.Audience, cfg.AcquireTimeout, cfg.PollInterval),
		Delivery: deliverysvc.New(http.DefaultClient),
		log:      logger.WithComponent("app"),
	}, nil
}
