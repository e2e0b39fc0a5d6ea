package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	api "github.com/pathlane/dirview/internal/api/http"
	"github.com/pathlane/dirview/internal/domain/engine"
	"github.com/pathlane/dirview/internal/domain/resolve"
	"github.com/pathlane/dirview/internal/domain/surface"
	"github.com/pathlane/dirview/internal/infrastructure/config"
	"github.com/pathlane/dirview/internal/infrastructure/logging"
	"github.com/pathlane/dirview/internal/infrastructure/monitoring"
	"github.com/pathlane/dirview/internal/providers/attrs"
	"github.com/pathlane/dirview/internal/providers/preview"
	"github.com/pathlane/dirview/internal/ws"
)

func main() {
	port := flag.String("port", "", "Debug API port (overrides DIRVIEW_PORT)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port != "" {
		cfg.Server.Port = *port
	}

	logCfg := logging.DefaultConfig()
	if cfg.Logging.Development {
		logCfg = logging.DevelopmentConfig()
	}
	logCfg.Level = cfg.Logging.Level
	logger, err := logging.New(logCfg)
	if err != nil {
		logger = logging.NewDefault()
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting dirview core",
		zap.String("port", cfg.Server.Port),
		zap.Int("default_depth", cfg.Session.DefaultDepth))

	metrics := monitoring.NewMetrics()

	// Seed the static capability registries, then validate the loaded
	// configuration against them: unknown names fail here, at startup.
	capabilities := resolve.NewRegistry()
	if err := attrs.Seed(capabilities, logger); err != nil {
		logger.Fatal("Failed to seed attributes", zap.Error(err))
	}
	if err := preview.Seed(capabilities, cfg, logger); err != nil {
		logger.Fatal("Failed to seed preview dispatchers", zap.Error(err))
	}
	if err := cfg.ValidateRender(capabilities.KnownAttributes(), capabilities.KnownDispatchers()); err != nil {
		logger.Fatal("Invalid render configuration", zap.Error(err))
	}

	surfaces := surface.NewTable()
	resolver := resolve.NewResolver(capabilities, cfg, logger)
	core := engine.New(surfaces, surface.NewFake(), resolver, cfg, logger, metrics)

	hub := ws.NewHub(logger)
	core.AddObserver(hub)

	if !cfg.Server.Enabled {
		logger.Info("Debug API disabled; idling until signal")
		waitForSignal(logger)
		return
	}

	srv := api.NewServer(cfg, surfaces, hub.HandleConnection, logger)
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Run(cfg.Server.Host + ":" + cfg.Server.Port)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		logger.Info("Shutting down gracefully")
		if err := srv.Close(); err != nil {
			logger.Error("Error during shutdown", zap.Error(err))
		}
		core.Shared().CancelRefresh()
	case err := <-errChan:
		if err != nil {
			logger.Fatal("Debug API failed", zap.Error(err))
		}
	}
}

func waitForSignal(logger *logging.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	logger.Info("Shutting down")
}
