package router

import (
	"net/http"

	"github.com/BerylCAtieno/happyhour-menu-api/internal/config"
	"github.com/BerylCAtieno/happyhour-menu-api/internal/handlers"
	"github.com/BerylCAtieno/happyhour-menu-api/internal/middleware"
	"github.com/BerylCAtieno/happyhour-menu-api/internal/services"
	"github.com/BerylCAtieno/happyhour-menu-api/internal/utils"

	"github.com/gorilla/mux"
)

func NewRouter(service services.AnalysisService, cfg *config.Config, logger *utils.Logger) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))

	healthHandler := handlers.NewHealthHandler(logger)
	uploadHandler := handlers.NewUploadHandler(service, cfg.MaxFileSize, cfg.AllowedExtensions, logger)

	// Routes
	r.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	r.HandleFunc("/upload", uploadHandler.Upload).Methods(http.MethodPost)

	r.NotFoundHandler = handlers.NotFound(logger)
	r.MethodNotAllowedHandler = handlers.MethodNotAllowed(logger)

	// CORS wraps the router so preflight requests are answered before
	// method matching.
	return middleware.CORS()(r)
}

