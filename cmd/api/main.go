package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/voyago/travel-agency-backend/internal/adapters/cache"
	"github.com/voyago/travel-agency-backend/internal/adapters/database"
	"github.com/voyago/travel-agency-backend/internal/api/handlers"
	"github.com/voyago/travel-agency-backend/internal/api/routes"
	"github.com/voyago/travel-agency-backend/internal/application/services"
	"github.com/voyago/travel-agency-backend/internal/domain/providers"
	"github.com/voyago/travel-agency-backend/internal/domain/repositories"
	"github.com/voyago/travel-agency-backend/internal/infrastructure/clients/postgres"
	"github.com/voyago/travel-agency-backend/internal/infrastructure/clients/redis"
	"github.com/voyago/travel-agency-backend/internal/infrastructure/observability"
	"github.com/voyago/travel-agency-backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)
	logger := observability.GetLogger()

	if cfg.Auth.JWTSecret == "" {
		logger.Fatal().Msg("JWT_SECRET must be set")
	}

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	logger.Info().Msg("PostgreSQL client initialized")

	// Initialize Redis client; the application works without caching
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to initialize Redis client, running without cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		logger.Info().Msg("Redis client initialized")
	}

	// Initialize adapters
	var destinationRepo repositories.DestinationRepository = database.NewDestinationAdapter(pgClient)
	if cacheProvider != nil {
		destinationRepo = database.NewCachedDestinationAdapter(destinationRepo, cacheProvider, metrics)
	}

	reservationRepo := database.NewReservationAdapter(pgClient)
	userRepo := database.NewUserAdapter(pgClient)
	activityLogRepo := database.NewActivityLogAdapter(pgClient)
	analyticsRepo := database.NewAnalyticsAdapter(pgClient)

	// Initialize services
	authzService := services.NewAuthorizationService()
	destinationService := services.NewDestinationService(destinationRepo)
	reservationService := services.NewReservationService(reservationRepo, destinationRepo, authzService, metrics)
	dashboardService := services.NewDashboardService(analyticsRepo, activityLogRepo, authzService)
	userService := services.NewUserService(userRepo, authzService)

	// Initialize handlers
	destinationHandler := handlers.NewDestinationHandler(destinationService)
	reservationHandler := handlers.NewReservationHandler(reservationService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, dashboardService)
	userHandler := handlers.NewUserHandler(userService)

	// Set up routes
	router := routes.NewRouter(
		destinationHandler,
		reservationHandler,
		dashboardHandler,
		userHandler,
		cfg.Auth.JWTSecret,
		metrics,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine so shutdown signals can be handled
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}

	logger.Info().Msg("server stopped")
}
