package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/trip-planner-service/internal/config"
	"github.com/trip-planner-service/internal/delivery/http/handler"
	"github.com/trip-planner-service/internal/delivery/http/middleware"
	"go.uber.org/zap"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	poiHandler       *handler.POIHandler
	routeHandler     *handler.RouteHandler
	itineraryHandler *handler.ItineraryHandler
	budgetHandler    *handler.BudgetHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	poiHandler *handler.POIHandler,
	routeHandler *handler.RouteHandler,
	itineraryHandler *handler.ItineraryHandler,
	budgetHandler *handler.BudgetHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName: "Trip Planner Service",
		// LLM генерация может занимать десятки секунд
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:              app,
		config:           cfg,
		logger:           logger,
		poiHandler:       poiHandler,
		routeHandler:     routeHandler,
		itineraryHandler: itineraryHandler,
		budgetHandler:    budgetHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// POI catalog
	api.Get("/pois", s.poiHandler.List)
	api.Get("/pois/:id", s.poiHandler.GetByID)

	// Route sequencing
	api.Post("/routes/optimize", s.routeHandler.Optimize)

	// Itineraries
	api.Post("/itineraries/generate", s.itineraryHandler.Generate)
	api.Get("/itineraries/:id", s.itineraryHandler.GetByID)
	api.Get("/users/:user_id/itineraries", s.itineraryHandler.ListByUser)

	// Budgets and expenses
	api.Post("/budgets", s.budgetHandler.CreateBudget)
	api.Get("/trips/:trip_id/budget", s.budgetHandler.GetBudgetStatus)
	api.Get("/trips/:trip_id/expenses", s.budgetHandler.ListExpenses)
	api.Post("/expenses", s.budgetHandler.AddExpense)
	api.Delete("/expenses/:id", s.budgetHandler.DeleteExpense)
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

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
