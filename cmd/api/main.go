package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/barsgayparis/directory-backend/internal/adapters/cache"
	"github.com/barsgayparis/directory-backend/internal/adapters/database"
	"github.com/barsgayparis/directory-backend/internal/api/handlers"
	"github.com/barsgayparis/directory-backend/internal/api/middleware"
	"github.com/barsgayparis/directory-backend/internal/api/routes"
	"github.com/barsgayparis/directory-backend/internal/application/services"
	"github.com/barsgayparis/directory-backend/internal/domain/providers"
	"github.com/barsgayparis/directory-backend/internal/infrastructure/clients/postgres"
	"github.com/barsgayparis/directory-backend/internal/infrastructure/clients/redis"
	"github.com/barsgayparis/directory-backend/internal/infrastructure/observability"
	"github.com/barsgayparis/directory-backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger("directory-backend", cfg.Server.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized")

	// Redis is optional; only the sitemap cache depends on it.
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Redis client, sitemap cache disabled")
	} else {
		defer redisClient.Close()
		log.Info().Msg("Redis client initialized")
	}

	venueRepo := database.NewVenueAdapterWithMetrics(pgClient, metrics)

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	listingService := services.NewListingService(venueRepo)
	facetService := services.NewFacetService(venueRepo)
	searchService := services.NewSearchService(venueRepo)
	similarService := services.NewSimilarService(venueRepo)
	sitemapService := services.NewSitemapService(venueRepo, cfg.Site.BaseURL)

	venueHandler := handlers.NewVenueHandler(venueRepo, listingService, facetService, similarService)
	searchHandler := handlers.NewSearchHandler(searchService)
	facetHandler := handlers.NewFacetHandler(facetService)
	mapHandler := handlers.NewMapHandler(venueRepo)
	sitemapHandler := handlers.NewSitemapHandler(sitemapService)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)
	}

	router := routes.NewRouter(
		venueHandler,
		searchHandler,
		facetHandler,
		mapHandler,
		sitemapHandler,
		cacheMiddleware,
		metrics,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
