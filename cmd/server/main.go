package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/sowgen/internal/api"
	"github.com/dgallion1/sowgen/internal/config"
	"github.com/dgallion1/sowgen/internal/llm"
	"github.com/dgallion1/sowgen/internal/pipeline"
)

func main() {
	cfg := config.Load()
	log := cfg.NewLogger()

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stats := llm.NewStats(time.Hour)
	gen, err := pipeline.NewFromConfig(ctx, cfg, stats, log)
	if err != nil {
		log.Error("initialize generator", "error", err)
		os.Exit(1)
	}
	gen.Results().Start(ctx, 5*time.Minute)

	srv := api.NewServer(gen, stats, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // guide scraping plus the model call
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

		gen.Results().Stop()
	}()

	log.Info("starting sowgen", "port", cfg.Port, "provider", cfg.LLMProvider, "guide_url", cfg.GuideURL)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
