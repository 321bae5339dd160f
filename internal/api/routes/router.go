package routes

import (
	"net/http"

	"github.com/indastreet/providerdiscovery/internal/api/handlers"
	"github.com/indastreet/providerdiscovery/internal/api/middleware"
	"github.com/indastreet/providerdiscovery/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	homeFeedHandler    *handlers.HomeFeedHandler
	providerHandler    *handlers.ProviderHandler
	cityHandler        *handlers.CityHandler
	geolocationHandler *handlers.GeolocationHandler
	ingestionHandler   *handlers.IngestionHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	homeFeedHandler *handlers.HomeFeedHandler,
	providerHandler *handlers.ProviderHandler,
	cityHandler *handlers.CityHandler,
	geolocationHandler *handlers.GeolocationHandler,
	ingestionHandler *handlers.IngestionHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                http.NewServeMux(),
		homeFeedHandler:    homeFeedHandler,
		providerHandler:    providerHandler,
		cityHandler:        cityHandler,
		geolocationHandler: geolocationHandler,
		ingestionHandler:   ingestionHandler,
		cacheMiddleware:    cacheMiddleware,
		metrics:            metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Home feed
	r.mux.HandleFunc("GET /api/home-feed", r.homeFeedHandler.GetHomeFeed)

	// Provider endpoints
	r.mux.HandleFunc("GET /api/providers", r.providerHandler.ListProviders)
	r.mux.HandleFunc("GET /api/providers/search", r.providerHandler.SearchProviders)
	r.mux.HandleFunc("GET /api/providers/{id}", r.providerHandler.GetProvider)

	// City endpoints
	r.mux.HandleFunc("GET /api/cities", r.cityHandler.ListCities)
	r.mux.HandleFunc("GET /api/cities/detect", r.cityHandler.DetectCity)

	// Geolocation endpoints
	if r.geolocationHandler != nil {
		r.mux.HandleFunc("GET /api/geocode", r.geolocationHandler.Geocode)
		r.mux.HandleFunc("GET /api/reverse-geocode", r.geolocationHandler.ReverseGeocode)
	}

	// Ingestion trigger (hydrate core DB from the upstream provider feed)
	if r.ingestionHandler != nil {
		r.mux.HandleFunc("POST /api/ingestion/sync", r.ingestionHandler.TriggerSync)
	}

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.Compression(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
