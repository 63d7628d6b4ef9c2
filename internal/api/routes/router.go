package routes

import (
	"net/http"

	"github.com/barsgayparis/directory-backend/internal/api/handlers"
	"github.com/barsgayparis/directory-backend/internal/api/middleware"
	"github.com/barsgayparis/directory-backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	venueHandler   *handlers.VenueHandler
	searchHandler  *handlers.SearchHandler
	facetHandler   *handlers.FacetHandler
	mapHandler     *handlers.MapHandler
	sitemapHandler *handlers.SitemapHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	venueHandler *handlers.VenueHandler,
	searchHandler *handlers.SearchHandler,
	facetHandler *handlers.FacetHandler,
	mapHandler *handlers.MapHandler,
	sitemapHandler *handlers.SitemapHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		venueHandler:   venueHandler,
		searchHandler:  searchHandler,
		facetHandler:   facetHandler,
		mapHandler:     mapHandler,
		sitemapHandler: sitemapHandler,

		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Venue endpoints
	r.mux.HandleFunc("GET /api/venues", r.venueHandler.ListVenues)
	r.mux.HandleFunc("GET /api/venues/{slug}", r.venueHandler.GetVenue)
	r.mux.HandleFunc("GET /api/venues/{slug}/similar", r.venueHandler.GetSimilarVenues)

	// Live search endpoint
	r.mux.HandleFunc("GET /api/search", r.searchHandler.Search)

	// Facet endpoints
	r.mux.HandleFunc("GET /api/quartiers", r.facetHandler.ListQuartiers)
	r.mux.HandleFunc("GET /api/types", r.facetHandler.ListTypes)

	// Map endpoint
	r.mux.HandleFunc("GET /api/map/markers", r.mapHandler.GetMarkers)

	// Sitemap endpoints
	r.mux.HandleFunc("GET /api/sitemap", r.sitemapHandler.GetSitemap)
	r.mux.HandleFunc("GET /api/sitemap/xml", r.sitemapHandler.GetSitemapXML)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS is outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
