package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/trip-planner-service/internal/config"
	httpDelivery "github.com/trip-planner-service/internal/delivery/http"
	"github.com/trip-planner-service/internal/delivery/http/handler"
	"github.com/trip-planner-service/internal/infrastructure/exchange"
	"github.com/trip-planner-service/internal/infrastructure/gemini"
	"github.com/trip-planner-service/internal/pkg/logger"
	"github.com/trip-planner-service/internal/repository/cache"
	"github.com/trip-planner-service/internal/repository/postgres"
	redisRepo "github.com/trip-planner-service/internal/repository/redis"
	"github.com/trip-planner-service/internal/usecase"
	"go.uber.org/zap"
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

	log.Info("Starting Trip Planner Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("home_currency", cfg.Trip.HomeCurrency),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize repositories and infrastructure clients
	poiRepo := postgres.NewPOIRepository(db)
	itineraryRepo := postgres.NewItineraryRepository(db)
	expenseRepo := postgres.NewExpenseRepository(db)
	budgetRepo := postgres.NewBudgetRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	exchangeRepo := exchange.NewClient(
		&cfg.Exchange,
		cfg.Trip.HomeCurrency,
		cacheRepo,
		cfg.Cache.RatesCacheTTL,
		log,
	)

	generator, err := gemini.NewClient(context.Background(), &cfg.Gemini, log)
	if err != nil {
		log.Fatal("Failed to initialize Gemini client", zap.Error(err))
	}
	defer func() {
		if err := generator.Close(); err != nil {
			log.Error("Failed to close Gemini client", zap.Error(err))
		}
	}()

	log.Info("Repositories initialized")

	// 7. Initialize use cases
	poiUC := usecase.NewPOIUseCase(
		poiRepo,
		cacheRepo,
		log,
		cfg.Cache.CatalogCacheTTL,
	)

	routeUC := usecase.NewRouteUseCase(log)

	itineraryUC := usecase.NewItineraryUseCase(
		poiRepo,
		itineraryRepo,
		generator,
		log,
		cfg.Trip.CandidateLimit,
	)

	budgetUC := usecase.NewBudgetUseCase(
		expenseRepo,
		budgetRepo,
		exchangeRepo,
		streamRepo,
		log,
		cfg.Worker.AlertStream,
	)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers
	poiHandler := handler.NewPOIHandler(poiUC, log)
	routeHandler := handler.NewRouteHandler(routeUC, log)
	itineraryHandler := handler.NewItineraryHandler(itineraryUC, log)
	budgetHandler := handler.NewBudgetHandler(budgetUC, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		poiHandler,
		routeHandler,
		itineraryHandler,
		budgetHandler,
	)

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
