// Package main provides the entry point for the Smart Life Recommender.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/smartlife/recommender/internal/config"
	"github.com/smartlife/recommender/internal/di"
	"github.com/smartlife/recommender/internal/di/providers"
	"github.com/smartlife/recommender/internal/launcher"
	"github.com/smartlife/recommender/internal/logger"
)

func main() {
	injector := di.NewContainer()

	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}

	cfg := do.MustInvoke[*config.Config](injector)
	log := do.MustInvoke[*logger.Logger](injector)
	server := do.MustInvoke[*providers.HTTPServerHandle](injector)

	if cfg.UI.OpenBrowser {
		if err := launcher.Browser().Open(server.URL); err != nil {
			log.Warn("Could not open browser, visit the URL manually", "url", server.URL, "error", err)
		}
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-signals:
		log.Info("Received signal, shutting down", "signal", sig.String())
	case <-server.Quit:
		log.Info("Quit requested from the UI, shutting down")
	}

	// The container shuts dependents down before their dependencies.
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	log.Info("Goodbye")
}
