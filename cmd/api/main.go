package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devops-backend/interfaces/http/rest"
	"devops-backend/internal/config"
	"devops-backend/internal/observability"
	"devops-backend/internal/store"

	"go.uber.org/zap"
)

func main() {
	startTime := time.Now()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Build logger
	logger, err := observability.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}

	// Application state is constructed here and injected into the router;
	// nothing below holds package-level mutable state.
	collector := observability.NewCollector()
	itemStore := store.New(collector.ItemsTotal)
	itemStore.Seed()

	router := rest.NewRouter(cfg, logger, collector, itemStore, startTime)

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("startup",
			zap.String("message", "Starting "+config.ServiceName),
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
			zap.Int("seeded_items", itemStore.Len()),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown", zap.String("message", "Stopping "+config.ServiceName))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownDeadline())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	if err := logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	log.Println("Server stopped")
}
