package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/catalog"
	"github.com/cairogo-gateway/internal/config"
	"github.com/cairogo-gateway/internal/infrastructure/backend"
	"github.com/cairogo-gateway/internal/pkg/logger"
	"github.com/cairogo-gateway/internal/repository/cache"
	"github.com/cairogo-gateway/internal/repository/kv"
	"github.com/cairogo-gateway/internal/session"
	"github.com/cairogo-gateway/internal/usecase"
	"github.com/cairogo-gateway/internal/worker"
	"github.com/cairogo-gateway/internal/worker/maintenance"
)

const purgeInterval = 10 * time.Minute

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting CairoGo catalog worker")
	log.Info("Configuration loaded",
		zap.String("backend", cfg.Backend.BaseURL),
		zap.String("storage", cfg.Storage.Driver),
		zap.Duration("catalog_interval", cfg.Worker.CatalogInterval))

	// 3. Open the storage shared with the gateway
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := kv.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open storage", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Failed to close storage", zap.Error(err))
		}
	}()

	// 4. Initialize repositories and use cases
	cacheRepo := cache.NewCacheRepository(store, log)
	client := backend.NewClient(cfg, log)
	normalizer := catalog.NewNormalizer(cfg.Backend.BaseURL, cfg.Backend.ProxyPrefix, catalog.PriceTable{
		Low:    cfg.Catalog.PriceLow,
		Medium: cfg.Catalog.PriceMedium,
		High:   cfg.Catalog.PriceHigh,
	})
	vibeTagUC := usecase.NewVibeTagUseCase(client, cacheRepo, cfg.Cache.VibeTagsTTL, log)
	catalogUC := usecase.NewCatalogUseCase(client, cacheRepo, normalizer, vibeTagUC, cfg.Cache.CatalogTTL, cfg.Catalog.PageSize, log)

	anon, err := session.New(ctx, store, session.NamespacePrefix+"worker", session.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to open worker session", zap.Error(err))
	}

	// 5. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(maintenance.NewCatalogWorker(catalogUC, anon, cfg.Worker.CatalogInterval, log))
	if purger, ok := store.(kv.Purger); ok {
		workerManager.Register(maintenance.NewPurgeWorker(purger, purgeInterval, log))
	}

	// Start workers
	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	// Cancel context to stop workers
	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
