package api

import (
	"log/slog"
	"net/http"
	"route-optimizer-service/internal/api/handlers"
	"route-optimizer-service/internal/ports"

	"github.com/julienschmidt/httprouter"
	"github.com/klauspost/compress/gzhttp"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// repo may be nil; the itinerary read endpoints are then not mounted.
func NewRouter(planner handlers.RoutePlanner, repo ports.ItineraryRepository, logger *slog.Logger) http.Handler {
	router := httprouter.New()

	routeHandler := &handlers.RouteHandler{Planner: planner}

	router.HandlerFunc(http.MethodGet, "/health", handlers.Health)
	router.HandlerFunc(http.MethodPost, "/routes", routeHandler.Plan)

	if repo != nil {
		itHandler := &handlers.ItineraryHandler{Repo: repo}
		router.HandlerFunc(http.MethodGet, "/routes", itHandler.List)
		router.HandlerFunc(http.MethodGet, "/routes/:id", itHandler.Get)
		router.HandlerFunc(http.MethodGet, "/routes/:id/export.csv", itHandler.ExportCSV)
	}

	return loggingMiddleware(logger, gzhttp.GzipHandler(router))
}
