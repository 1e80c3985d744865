package http

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/config"
	"github.com/cairogo-gateway/internal/delivery/http/handler"
	"github.com/cairogo-gateway/internal/delivery/http/middleware"
	"github.com/cairogo-gateway/internal/favorites"
	"github.com/cairogo-gateway/internal/pkg/errors"
	"github.com/cairogo-gateway/internal/pkg/utils"
	"github.com/cairogo-gateway/internal/session"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	sessions *session.Manager
	limiter  *middleware.RateLimiter

	// Handlers
	authHandler           *handler.AuthHandler
	profileHandler        *handler.ProfileHandler
	attractionHandler     *handler.AttractionHandler
	recommendationHandler *handler.RecommendationHandler
	favoriteHandler       *handler.FavoriteHandler
	preferenceHandler     *handler.PreferenceHandler
	tripHandler           *handler.TripHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	sessions *session.Manager,
	limiter *middleware.RateLimiter,
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	attractionHandler *handler.AttractionHandler,
	recommendationHandler *handler.RecommendationHandler,
	favoriteHandler *handler.FavoriteHandler,
	preferenceHandler *handler.PreferenceHandler,
	tripHandler *handler.TripHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "CairoGo Gateway",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second, // ML generation is slow
		IdleTimeout:  60 * time.Second,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:                   app,
		config:                cfg,
		logger:                logger,
		sessions:              sessions,
		limiter:               limiter,
		authHandler:           authHandler,
		profileHandler:        profileHandler,
		attractionHandler:     attractionHandler,
		recommendationHandler: recommendationHandler,
		favoriteHandler:       favoriteHandler,
		preferenceHandler:     preferenceHandler,
		tripHandler:           tripHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
		// compression would buffer the event stream
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/api/v1/favorites/events"
		},
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now(),
			"sessions": s.sessions.Len(),
		})
	})

	api.Use(middleware.Session(s.sessions, middleware.SessionConfig{
		CookieName: s.config.Session.CookieName,
		TTL:        s.config.Session.TTL,
		Secure:     s.config.Server.Env == "production",
		Carry:      []string{favorites.LocalKeySuffix},
	}, s.logger))

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/login", s.limiter.Handler(), s.authHandler.Login)
	auth.Post("/register", s.limiter.Handler(), s.authHandler.Register)
	auth.Post("/logout", s.authHandler.Logout)

	// Profile & settings
	api.Get("/me", s.profileHandler.Me)
	api.Put("/me", s.profileHandler.UpdateProfile)
	api.Get("/settings/dark-mode", s.profileHandler.DarkMode)
	api.Put("/settings/dark-mode", s.profileHandler.SetDarkMode)

	// Catalog
	api.Get("/attractions", s.attractionHandler.Browse)
	api.Get("/attractions/:id", s.attractionHandler.Get)
	api.Get("/activity-types", s.attractionHandler.ActivityTypes)

	api.Post("/recommendations", s.recommendationHandler.Generate)

	// Favorites
	api.Get("/favorites", s.favoriteHandler.List)
	api.Post("/favorites", s.favoriteHandler.Add)
	api.Get("/favorites/events", s.favoriteHandler.Events)
	api.Get("/favorites/:placeId", s.favoriteHandler.Check)
	api.Delete("/favorites/:placeId", s.favoriteHandler.Remove)
	api.Post("/favorites/:placeId/toggle", s.favoriteHandler.Toggle)
	api.Put("/favorites/:placeId/category", s.favoriteHandler.UpdateCategory)

	// Quiz
	api.Get("/preferences", s.preferenceHandler.Get)
	api.Post("/preferences", s.preferenceHandler.Submit)

	// Trip planner
	api.Post("/trips/generate", s.tripHandler.Generate)
	api.Get("/trips", s.tripHandler.List)
	api.Post("/trips", s.tripHandler.Create)
	api.Get("/trips/:id", s.tripHandler.Get)
	api.Delete("/trips/:id", s.tripHandler.Delete)
	api.Post("/trip-days/:dayId/slots", s.tripHandler.AddSlot)
	api.Delete("/trip-slots/:slotId", s.tripHandler.DeleteSlot)
}

// App exposes the Fiber app for in-process tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки роутера и паники в формате {error}
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := err.(*fiber.Error); ok {
			appErr := errors.New("HTTP_ERROR", e.Message, e.Code)
			if e.Code == fiber.StatusNotFound {
				appErr = errors.New("ROUTE_NOT_FOUND", "Route not found", e.Code)
			}
			return c.Status(e.Code).JSON(utils.ErrorResponse{Error: appErr})
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return utils.SendError(c, err)
	}
}
