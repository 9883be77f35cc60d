package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/facturo/facturo/internal/api"
	"github.com/facturo/facturo/internal/config"
	"github.com/facturo/facturo/internal/export"
	"github.com/facturo/facturo/internal/extract"
	"github.com/facturo/facturo/internal/pipeline"
	"github.com/facturo/facturo/internal/store"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize storage.
	invoices, err := store.Open(ctx, cfg.DBPath, log)
	if err != nil {
		log.Error("failed to open invoice store", "error", err)
		os.Exit(1)
	}

	// Initialize pipeline.
	stats := extract.NewRunStats(time.Hour)
	orch := pipeline.NewOrchestrator(cfg, invoices, stats, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	exporter := export.NewService(invoices, log)
	srv := api.NewServer(orch, invoices, exporter, log, cfg)

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

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if err := invoices.Close(); err != nil {
			log.Error("failed to close invoice store", "error", err)
		}
	}()

	log.Info("starting facturo", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
