package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/indastreet/providerdiscovery/internal/adapters/cache"
	"github.com/indastreet/providerdiscovery/internal/adapters/database"
	"github.com/indastreet/providerdiscovery/internal/adapters/events"
	"github.com/indastreet/providerdiscovery/internal/adapters/providers/geolocation"
	"github.com/indastreet/providerdiscovery/internal/adapters/search"
	"github.com/indastreet/providerdiscovery/internal/api/handlers"
	"github.com/indastreet/providerdiscovery/internal/api/middleware"
	"github.com/indastreet/providerdiscovery/internal/api/routes"
	"github.com/indastreet/providerdiscovery/internal/application/services"
	"github.com/indastreet/providerdiscovery/internal/domain/providers"
	"github.com/indastreet/providerdiscovery/internal/domain/repositories"
	"github.com/indastreet/providerdiscovery/internal/infrastructure/clients/postgres"
	"github.com/indastreet/providerdiscovery/internal/infrastructure/clients/providerapi"
	"github.com/indastreet/providerdiscovery/internal/infrastructure/clients/redis"
	"github.com/indastreet/providerdiscovery/internal/infrastructure/clients/typesense"
	"github.com/indastreet/providerdiscovery/internal/infrastructure/observability"
	"github.com/indastreet/providerdiscovery/pkg/config"
	redislib "github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger("provider-discovery-api", cfg.Server.Environment, cfg.Server.LogLevel)
	logger := observability.GetLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// OpenTelemetry
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Warn().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Infrastructure clients
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		// The service degrades to uncached operation without Redis.
		logger.Warn().Err(err).Msg("failed to initialize Redis client, continuing without cache")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to initialize Typesense client, continuing without search")
		typesenseClient = nil
	}

	// Adapters
	providerRepo := database.NewProviderAdapter(pgClient)

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
	}

	var searchRepo repositories.ProviderSearchRepository
	if typesenseClient != nil {
		adapter := search.NewTypesenseAdapter(typesenseClient)
		if err := adapter.InitSchema(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("failed to init Typesense schema")
		}
		searchRepo = adapter
	}

	var geolocationProvider providers.GeolocationProvider
	switch cfg.Geolocation.Provider {
	case "google":
		if cfg.Geolocation.APIKey == "" {
			logger.Warn().Msg("GEOLOCATION_API_KEY is not set, using mock geolocation provider")
			geolocationProvider = geolocation.NewMockGeolocationProvider()
		} else {
			geolocationProvider = geolocation.NewGoogleGeolocationProvider(cfg.Geolocation.APIKey, cacheProvider)
		}
	default:
		geolocationProvider = geolocation.NewMockGeolocationProvider()
	}

	// Services
	feedService := services.NewHomeFeedService(
		services.NewCityFilterService(),
		services.NewRankingService(),
		services.NewDisplayStatusService(),
		services.NewShowcaseService(cfg.Pipeline.ReferenceCity, cfg.Pipeline.ShowcaseSize),
		cfg.Pipeline,
	)
	queryService := services.NewHomeQueryService(providerRepo, feedService, cacheProvider, cfg.Pipeline)
	providerService := services.NewProviderService(providerRepo, searchRepo, eventBus)

	var ingestionService *services.ProviderIngestionService
	if cfg.ProviderAPI.BaseURL != "" {
		feedClient := providerapi.NewClient(cfg.ProviderAPI.BaseURL, cfg.ProviderAPI.APIKey)
		ingestionService = services.NewProviderIngestionService(
			feedClient,
			providerRepo,
			searchRepo,
			eventBus,
			cfg.Pipeline.CityMatchRadiusKm,
			cfg.ProviderAPI.PageSize,
		)
	} else {
		logger.Warn().Msg("PROVIDER_API_URL is not set, ingestion endpoint disabled")
	}

	var invalidationService *services.CacheInvalidationService
	if cacheProvider != nil && eventBus != nil {
		invalidationService = services.NewCacheInvalidationService(cacheProvider, eventBus)
		if err := invalidationService.Start(); err != nil {
			logger.Warn().Err(err).Msg("failed to start cache invalidation service")
		}
	}

	// Handlers
	homeFeedHandler := handlers.NewHomeFeedHandler(queryService)
	providerHandler := handlers.NewProviderHandler(providerService)
	cityHandler := handlers.NewCityHandler(queryService)
	geolocationHandler := handlers.NewGeolocationHandler(geolocationProvider)

	var ingestionHandler *handlers.IngestionHandler
	if ingestionService != nil {
		var rawRedis *redislib.Client
		if redisClient != nil {
			rawRedis = redisClient.Client()
		}
		ingestionHandler = handlers.NewIngestionHandler(ingestionService, rawRedis, 24*time.Hour)
	}

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
	}

	router := routes.NewRouter(
		homeFeedHandler,
		providerHandler,
		cityHandler,
		geolocationHandler,
		ingestionHandler,
		cacheMiddleware,
		metrics,
	)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("error during server shutdown")
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			logger.Warn().Err(err).Msg("error closing event bus")
		}
	}
	if invalidationService != nil {
		invalidationService.Stop()
	}

	logger.Info().Msg("server stopped")
}
