package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/bkovalev/go-sync-keeper/internal/adapter"
	"github.com/bkovalev/go-sync-keeper/internal/client"
	"github.com/bkovalev/go-sync-keeper/internal/config"
	"github.com/bkovalev/go-sync-keeper/internal/logger"
	"github.com/bkovalev/go-sync-keeper/internal/service"
	"github.com/bkovalev/go-sync-keeper/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewLogger("sync-client").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewClientLogger(cfg.App.Role)

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	kvStore, err := store.NewSQLiteKeyValueStore(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer kvStore.Close()

	prober := adapter.NewHTTPLinkProber(cfg.Adapter)
	services := service.NewClientServices(kvStore, serverAdapter, prober, cfg.Sync, log)

	app, err := client.NewApp(services, cfg.Workers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
