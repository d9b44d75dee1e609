package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/walidMaaninou/lexi-build/application/services"
	"github.com/walidMaaninou/lexi-build/infrastructure/config"
	"github.com/walidMaaninou/lexi-build/interfaces/http/rest/handlers"
	"github.com/walidMaaninou/lexi-build/interfaces/http/rest/middleware"
	apperrors "github.com/walidMaaninou/lexi-build/pkg/errors"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg        *config.Config
	workspaces *services.WorkspaceService
	logger     *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	workspaces *services.WorkspaceService,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:        cfg,
		workspaces: workspaces,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   rt.cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)

	errHandler := apperrors.NewErrorHandler(rt.logger, rt.cfg.IsDevelopment())

	router.Route("/api/v1", func(r chi.Router) {
		workspaceHandler := handlers.NewWorkspaceHandler(rt.workspaces, rt.cfg, errHandler, rt.logger)
		nodeHandler := handlers.NewNodeHandler(rt.workspaces, errHandler, rt.logger)

		r.Route("/workspaces", func(r chi.Router) {
			r.Post("/", workspaceHandler.Create)
			r.Get("/", workspaceHandler.List)
			r.Post("/import", workspaceHandler.Import)

			r.Route("/{workspaceID}", func(r chi.Router) {
				r.Get("/", workspaceHandler.Get)
				r.Get("/export", workspaceHandler.Export)
				r.Get("/tree", workspaceHandler.Tree)

				r.Route("/nodes", func(r chi.Router) {
					r.Post("/", nodeHandler.Add)
					r.Post("/batch", nodeHandler.AddBatch)
					r.Get("/{nodeID}", nodeHandler.Get)
					r.Put("/{nodeID}", nodeHandler.Edit)
					r.Delete("/{nodeID}", nodeHandler.Delete)
					r.Get("/{nodeID}/siblings", nodeHandler.Siblings)
				})
			})
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
