package main

// @title CairoGo Gateway API
// @version 1.0.0
// @description Backend-for-frontend шлюз туристического приложения по Каиру и Гизе. Хранит сессию клиента, обновляет токены, нормализует каталог достопримечательностей и объединяет рекомендации ML сервиса с каталогом.
// @description
// @description Основные возможности:
// @description - Каталог с фильтрами, сортировкой и пагинацией
// @description - Персональные рекомендации и планы поездок
// @description - Избранное: серверное после входа, локальное до него
// @description - Профиль и настройки отображения

// @contact.name API Support
// @contact.email support@cairogo.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/cairogo-gateway/docs"
	"github.com/cairogo-gateway/internal/catalog"
	"github.com/cairogo-gateway/internal/config"
	httpDelivery "github.com/cairogo-gateway/internal/delivery/http"
	"github.com/cairogo-gateway/internal/delivery/http/handler"
	"github.com/cairogo-gateway/internal/delivery/http/middleware"
	"github.com/cairogo-gateway/internal/favorites"
	"github.com/cairogo-gateway/internal/infrastructure/backend"
	"github.com/cairogo-gateway/internal/pkg/logger"
	"github.com/cairogo-gateway/internal/repository/cache"
	"github.com/cairogo-gateway/internal/repository/kv"
	"github.com/cairogo-gateway/internal/session"
	"github.com/cairogo-gateway/internal/usecase"
	"github.com/cairogo-gateway/internal/worker"
	"github.com/cairogo-gateway/internal/worker/maintenance"
)

const (
	sessionSweepInterval = 5 * time.Minute
	limiterIdle          = 15 * time.Minute
	purgeInterval        = 10 * time.Minute
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting CairoGo gateway")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("backend", cfg.Backend.BaseURL),
		zap.String("storage", cfg.Storage.Driver),
	)

	// 3. Open durable storage
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := kv.Open(ctx, cfg, log)
	cancel()
	if err != nil {
		log.Fatal("Failed to open storage", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Failed to close storage", zap.Error(err))
		}
	}()
	log.Info("Storage connected", zap.String("driver", cfg.Storage.Driver))

	// 4. Sessions
	sealer, err := session.NewSealer(cfg.Session.EncryptionKey)
	if err != nil {
		log.Fatal("Invalid session encryption key", zap.Error(err))
	}
	if sealer == nil {
		log.Warn("SESSION_ENCRYPTION_KEY is not set, tokens are stored unencrypted")
	}
	sessions := session.NewManager(store, sealer, cfg.Session.TTL, log)

	// 5. Repositories and clients
	cacheRepo := cache.NewCacheRepository(store, log)
	client := backend.NewClient(cfg, log)
	normalizer := catalog.NewNormalizer(cfg.Backend.BaseURL, cfg.Backend.ProxyPrefix, catalog.PriceTable{
		Low:    cfg.Catalog.PriceLow,
		Medium: cfg.Catalog.PriceMedium,
		High:   cfg.Catalog.PriceHigh,
	})

	bus := favorites.NewBus(log)
	defer func() {
		if err := bus.Close(); err != nil {
			log.Error("Failed to close favorites bus", zap.Error(err))
		}
	}()
	selector := favorites.NewSelector(client, cacheRepo, cfg.Cache.FavoritesTTL, store, bus, log)

	log.Info("Repositories initialized")

	// 6. Initialize Use Cases
	vibeTagUC := usecase.NewVibeTagUseCase(client, cacheRepo, cfg.Cache.VibeTagsTTL, log)
	catalogUC := usecase.NewCatalogUseCase(client, cacheRepo, normalizer, vibeTagUC, cfg.Cache.CatalogTTL, cfg.Catalog.PageSize, log)
	authUC := usecase.NewAuthUseCase(client, client, log)
	profileUC := usecase.NewProfileUseCase(client, log)
	recommendationUC := usecase.NewRecommendationUseCase(client, catalogUC, cacheRepo, cfg.Cache.RecommendationsTTL, log)
	favoriteUC := usecase.NewFavoriteUseCase(selector, catalogUC, log)
	preferenceUC := usecase.NewPreferenceUseCase(client, cacheRepo, log)
	tripUC := usecase.NewTripPlanUseCase(client, client, catalogUC, log)

	log.Info("Use cases initialized")

	// 7. Initialize HTTP Handlers
	limiter := middleware.NewRateLimiter(cfg.Auth.LoginRatePerMinute)
	server := httpDelivery.NewServer(
		cfg,
		log,
		sessions,
		limiter,
		handler.NewAuthHandler(authUC, log),
		handler.NewProfileHandler(profileUC, log),
		handler.NewAttractionHandler(catalogUC, log),
		handler.NewRecommendationHandler(recommendationUC, log),
		handler.NewFavoriteHandler(favoriteUC, log),
		handler.NewPreferenceHandler(preferenceUC, log),
		handler.NewTripHandler(tripUC, log),
	)

	log.Info("HTTP server initialized")

	// 8. Background maintenance
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(maintenance.NewSessionWorker(sessions, limiter, sessionSweepInterval, limiterIdle, log))
	if purger, ok := store.(kv.Purger); ok {
		workerManager.Register(maintenance.NewPurgeWorker(purger, purgeInterval, log))
	}
	if cfg.Worker.Enabled {
		// the standalone worker binary owns catalog warming otherwise
		anon, err := session.New(workerCtx, store, session.NamespacePrefix+"worker", session.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to open worker session", zap.Error(err))
		}
		workerManager.Register(maintenance.NewCatalogWorker(catalogUC, anon, cfg.Worker.CatalogInterval, log))
	}
	if err := workerManager.Start(workerCtx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 9. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	stopWorkers()
	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
