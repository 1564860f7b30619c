package gateway

import (
	"time"

	"github.com/landchain/titleledger/pkg/config"
	"github.com/landchain/titleledger/pkg/events"
	"github.com/landchain/titleledger/pkg/logging"
	"github.com/landchain/titleledger/pkg/registry"
	"github.com/landchain/titleledger/pkg/storage"
)

// Gateway exposes the ledger's operation surface over HTTP. It authenticates
// callers by signature, serializes their operations into the registry
// service, and streams committed events to websocket observers. The gateway
// never enforces roles itself; admin and owner gating happens inside the
// core.
type Gateway struct {
	logger  *logging.ColoredLogger
	cfg     *config.GatewayConfig
	ledger  *registry.Service
	store   *storage.Store // nil when persistence is disabled
	bus     *events.Bus
	limiter *RateLimiter
	hub     *wsHub
	started time.Time
}

// New creates a gateway over an initialized ledger. store may be nil.
func New(logger *logging.ColoredLogger, cfg *config.GatewayConfig, ledger *registry.Service, store *storage.Store, bus *events.Bus) *Gateway {
	g := &Gateway{
		logger:  logger,
		cfg:     cfg,
		ledger:  ledger,
		store:   store,
		bus:     bus,
		started: time.Now(),
	}

	if cfg.RateLimitPerMin > 0 {
		g.limiter = NewRateLimiter(cfg.RateLimitPerMin, cfg.RateLimitBurst)
		g.limiter.StartCleanup(5*time.Minute, 30*time.Minute)
	}

	g.hub = newWSHub(logger)
	bus.Subscribe(g.hub)

	return g
}

// Close releases gateway resources.
func (g *Gateway) Close() {
	g.hub.closeAll()
}
