package api

import (
	"net/http"

	"fuel-route-service/internal/api/handlers"
	"fuel-route-service/internal/services"

	"go.uber.org/zap"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(logger *zap.Logger, pipeline *services.TripPipeline) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{Logger: logger}
	geocodeHandler := &handlers.GeocodeHandler{Logger: logger, Pipeline: pipeline}
	routeHandler := &handlers.RouteHandler{Logger: logger, Pipeline: pipeline}
	optimizeHandler := &handlers.OptimizeHandler{Logger: logger, Pipeline: pipeline}
	historyHandler := &handlers.HistoryHandler{Logger: logger, Pipeline: pipeline}

	mux.HandleFunc("/health", healthHandler.Check)
	mux.HandleFunc("/geocode", geocodeHandler.Resolve)
	mux.HandleFunc("/route", routeHandler.Compute)
	mux.HandleFunc("/optimize", optimizeHandler.Optimize)
	mux.HandleFunc("/history", historyHandler.List)
	mux.HandleFunc("/stats", historyHandler.Stats)

	return loggingMiddleware(logger, mux)
}
