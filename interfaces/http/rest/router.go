// Package rest wires the HTTP router: routes, CORS, and the observability
// middleware chain.
package rest

import (
	"net/http"
	"time"

	"devops-backend/interfaces/http/rest/handlers"
	"devops-backend/interfaces/http/rest/middleware"
	"devops-backend/internal/config"
	"devops-backend/internal/observability"
	"devops-backend/internal/store"
	"devops-backend/internal/validation"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router.
type Router struct {
	cfg       *config.Config
	logger    *zap.Logger
	collector *observability.Collector
	store     *store.Store
	startTime time.Time
}

// NewRouter creates a new router instance.
func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	collector *observability.Collector,
	s *store.Store,
	startTime time.Time,
) *Router {
	return &Router{
		cfg:       cfg,
		logger:    logger,
		collector: collector,
		store:     s,
		startTime: startTime,
	}
}

// Setup configures all routes and middleware.
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RealIP)

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID", "X-Response-Time"},
			AllowCredentials: true,
			MaxAge:           86400,
		}))
	}

	router.Use(middleware.Observability(rt.logger, rt.collector))
	router.Use(middleware.Recovery(rt.logger, rt.collector))

	// Health and observability endpoints
	healthHandler := handlers.NewHealthHandler(rt.startTime)
	router.Get("/", healthHandler.Root)
	router.Get("/health", healthHandler.Health)
	router.Method(http.MethodGet, "/metrics", rt.collector.Handler())

	// Item CRUD endpoints
	router.Route("/items", func(r chi.Router) {
		itemHandler := handlers.NewItemHandler(rt.store, validation.New(), rt.logger)
		r.Get("/", itemHandler.List)
		r.Post("/", itemHandler.Create)
		r.Get("/{itemID}", itemHandler.Get)
		r.Put("/{itemID}", itemHandler.Update)
		r.Delete("/{itemID}", itemHandler.Delete)
	})

	return router
}
