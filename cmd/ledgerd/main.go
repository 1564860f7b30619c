package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/landchain/titleledger/pkg/config"
	"github.com/landchain/titleledger/pkg/events"
	"github.com/landchain/titleledger/pkg/gateway"
	"github.com/landchain/titleledger/pkg/identity"
	"github.com/landchain/titleledger/pkg/logging"
	"github.com/landchain/titleledger/pkg/registry"
	"github.com/landchain/titleledger/pkg/storage"
)

func setupLogger(cfg *config.Config) *logging.ColoredLogger {
	var (
		logger *logging.ColoredLogger
		err    error
	)
	if cfg.Logging.File != "" {
		logger, err = logging.NewFileLogger(logging.ComponentGeneral, cfg.Logging.File, cfg.Logging.EnableColors)
	} else {
		logger, err = logging.NewColoredLogger(logging.ComponentGeneral, cfg.Logging.EnableColors)
	}
	if err != nil {
		panic(err)
	}
	return logger
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	listenAddr := flag.String("listen", "", "override gateway listen address")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *listenAddr != "" {
		cfg.Gateway.ListenAddr = *listenAddr
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
		}
		os.Exit(1)
	}

	logger := setupLogger(cfg)

	// Event bus: committed operations fan out to the log, the journal, and
	// websocket observers.
	bus := events.NewBus(logger, cfg.Ledger.EventBuffer)
	defer bus.Close()
	bus.Subscribe(events.NewLogSink(logger))

	// Persistence is optional; with no data dir the ledger is memory-only.
	var store *storage.Store
	if cfg.Storage.DataDir != "" {
		store, err = storage.Open(logger, cfg.Storage.DataDir)
		if err != nil {
			logger.ComponentError(logging.ComponentGeneral, "failed to open storage", zap.Error(err))
			os.Exit(1)
		}
		defer store.Close()
		if cfg.Storage.JournalEvents {
			bus.Subscribe(store)
			store.LogJournalSize()
		}
	}

	svc, err := buildService(logger, cfg, store, bus)
	if err != nil {
		logger.ComponentError(logging.ComponentGeneral, "failed to initialize ledger", zap.Error(err))
		os.Exit(1)
	}

	g := gateway.New(logger, &cfg.Gateway, svc, store, bus)
	defer g.Close()

	server := &http.Server{
		Addr:    cfg.Gateway.ListenAddr,
		Handler: g.Router(),
	}

	go func() {
		logger.ComponentInfo(logging.ComponentGeneral, "ledger HTTP server starting",
			zap.String("addr", cfg.Gateway.ListenAddr),
			zap.String("admin", svc.Admin().Hex()),
			zap.String("policy", string(svc.Policy())),
			zap.Bool("persistent", store != nil),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.ComponentError(logging.ComponentGeneral, "HTTP server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.ComponentInfo(logging.ComponentGeneral, "shutting down ledger server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.ComponentError(logging.ComponentGeneral, "HTTP server shutdown error", zap.Error(err))
	}
	logger.ComponentInfo(logging.ComponentGeneral, "ledger shutdown complete")
}

// buildService restores the ledger from the last checkpoint when one exists,
// otherwise boots a fresh ledger from the configured admin. Every committed
// mutation checkpoints back to the store.
func buildService(logger *logging.ColoredLogger, cfg *config.Config, store *storage.Store, bus *events.Bus) (*registry.Service, error) {
	var admin identity.Identity
	if cfg.Ledger.Admin != "" {
		parsed, err := identity.Parse(cfg.Ledger.Admin)
		if err != nil {
			return nil, err
		}
		admin = parsed
	}

	var (
		checkpoint registry.State
		restored   bool
	)
	if store != nil {
		st, ok, err := store.LoadState()
		if err != nil {
			return nil, err
		}
		if ok {
			checkpoint, restored = st, true
			// The checkpoint carries the live admin; the config value only
			// seeds the very first boot.
			admin = st.Admin
		}
	}

	svc, err := registry.NewService(logger, registry.Config{
		Admin:  admin,
		Policy: cfg.Ledger.VerificationPolicy,
	}, bus)
	if err != nil {
		return nil, err
	}

	if restored {
		if err := svc.RestoreState(checkpoint); err != nil {
			return nil, err
		}
		logger.ComponentInfo(logging.ComponentGeneral, "ledger restored from checkpoint",
			zap.Int("lands", svc.GetLandCount()),
			zap.String("admin", svc.Admin().Hex()),
		)
	}

	if store != nil {
		svc.SetCommitHook(func(st registry.State) {
			if err := store.SaveState(st); err != nil {
				// The in-memory ledger stays authoritative; a failed
				// checkpoint costs durability, not correctness.
				logger.ComponentError(logging.ComponentStorage, "checkpoint failed", zap.Error(err))
			}
		})
	}

	return svc, nil
}
