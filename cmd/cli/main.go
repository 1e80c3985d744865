package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/catalog"
	"github.com/cairogo-gateway/internal/cli"
	"github.com/cairogo-gateway/internal/config"
	"github.com/cairogo-gateway/internal/favorites"
	"github.com/cairogo-gateway/internal/infrastructure/backend"
	"github.com/cairogo-gateway/internal/pkg/logger"
	"github.com/cairogo-gateway/internal/repository/cache"
	"github.com/cairogo-gateway/internal/repository/kv"
	"github.com/cairogo-gateway/internal/session"
	"github.com/cairogo-gateway/internal/usecase"
)

func main() {
	storage := pflag.String("storage", "sqlite", "storage driver: sqlite, badger, redis, postgres, memory")
	storagePath := pflag.String("storage-path", "", "sqlite file or badger directory")
	namespace := pflag.String("session", "", "session namespace, one per person on a shared device")
	logFile := pflag.String("log-file", "cairogo-cli.log", "log file")
	pflag.Parse()

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg.Storage.Driver = *storage
	if *storagePath != "" {
		cfg.Storage.Path = *storagePath
	}
	if *namespace != "" {
		cfg.Terminal.Namespace = *namespace
	}

	// 2. Logs go to a file, the terminal belongs to the prompt
	log, err := logger.NewFile(cfg.Log.Level, *logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Storage and session
	store, err := kv.Open(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Failed to close storage", zap.Error(err))
		}
	}()

	sealer, err := session.NewSealer(cfg.Session.EncryptionKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid session encryption key: %v\n", err)
		os.Exit(1)
	}
	sess, err := session.New(ctx, store, session.NamespacePrefix+cfg.Terminal.Namespace,
		session.WithSealer(sealer),
		session.WithLogger(logger.Component(log, "session")),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open session: %v\n", err)
		os.Exit(1)
	}

	// 4. Use cases
	cacheRepo := cache.NewCacheRepository(store, log)
	client := backend.NewClient(cfg, log)
	normalizer := catalog.NewNormalizer(cfg.Backend.BaseURL, cfg.Backend.ProxyPrefix, catalog.PriceTable{
		Low:    cfg.Catalog.PriceLow,
		Medium: cfg.Catalog.PriceMedium,
		High:   cfg.Catalog.PriceHigh,
	})
	bus := favorites.NewBus(log)
	defer bus.Close()
	selector := favorites.NewSelector(client, cacheRepo, cfg.Cache.FavoritesTTL, store, bus, log)

	vibeTagUC := usecase.NewVibeTagUseCase(client, cacheRepo, cfg.Cache.VibeTagsTTL, log)
	catalogUC := usecase.NewCatalogUseCase(client, cacheRepo, normalizer, vibeTagUC, cfg.Cache.CatalogTTL, cfg.Catalog.PageSize, log)

	c := cli.NewCLI(cli.Deps{
		Auth:            usecase.NewAuthUseCase(client, client, log),
		Profile:         usecase.NewProfileUseCase(client, log),
		Catalog:         catalogUC,
		Recommendations: usecase.NewRecommendationUseCase(client, catalogUC, cacheRepo, cfg.Cache.RecommendationsTTL, log),
		Favorites:       usecase.NewFavoriteUseCase(selector, catalogUC, log),
		Preferences:     usecase.NewPreferenceUseCase(client, cacheRepo, log),
		Trips:           usecase.NewTripPlanUseCase(client, client, catalogUC, log),
	}, sess, os.Stdout, log)

	// 5. Readline
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          c.Prompt(),
		HistoryFile:     cfg.Terminal.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize readline: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()
	c.Attach(rl)

	if err := c.Watch(ctx); err != nil {
		log.Warn("Favorites updates are not shown", zap.Error(err))
	}

	fmt.Fprintln(rl.Stdout(), "Welcome to CairoGo! Use 'help' for the list of commands.")

	// Main loop
	for {
		err := c.Run(ctx)
		switch {
		case err == nil:
		case stderrors.Is(err, readline.ErrInterrupt):
			fmt.Fprintln(rl.Stdout(), "Use 'exit' or 'quit' to exit the program.")
		case stderrors.Is(err, io.EOF), stderrors.Is(err, cli.ErrExit):
			return
		default:
			fmt.Fprintln(rl.Stderr(), "Error:", cli.Describe(err))
		}
	}
}
