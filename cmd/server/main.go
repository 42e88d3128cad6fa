package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/tocgraft/internal/api"
	"github.com/dgallion1/tocgraft/internal/config"
	"github.com/dgallion1/tocgraft/internal/metrics"
	"github.com/dgallion1/tocgraft/internal/pathstore"
	"github.com/dgallion1/tocgraft/internal/pipeline"
	"github.com/dgallion1/tocgraft/internal/toc"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	var defaults toc.Config
	if cfg.TOCConfigPath != "" {
		var err error
		defaults, err = toc.LoadConfig(cfg.TOCConfigPath)
		if err != nil {
			log.Error("invalid toc config", "path", cfg.TOCConfigPath, "error", err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Publishing is optional.
	var (
		ps   *pathstore.Client
		pub  pipeline.Publisher
		docs api.DocumentStore
	)
	if cfg.Publishing() {
		ps = pathstore.NewClient(cfg.PathstoreURL, cfg.PathstoreAPIKey)
		pub, docs = ps, ps
	}

	stats := metrics.NewStages(cfg.StatsWindow)

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, pub, defaults, stats, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, docs, stats, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()
		if ps != nil {
			ps.Close()
		}
	}()

	log.Info("starting tocgraft", "port", cfg.Port, "publishing", cfg.Publishing(), "workers", cfg.WorkerCount)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
