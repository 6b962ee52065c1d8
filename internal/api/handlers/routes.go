package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/services"
)

// maxBodyBytes bounds the uploaded stop table.
const maxBodyBytes = 4 << 20

type RoutePlanner interface {
	PlanRoute(ctx context.Context, req services.PlanRouteRequest) (*domain.Itinerary, error)
}

type RouteHandler struct {
	Planner RoutePlanner
}

// Plan turns a parsed stop table into an ordered itinerary.
func (h *RouteHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanRouteRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if len(req.Columns) == 0 {
		writeError(w, r, http.StatusBadRequest, "columns are required")
		return
	}

	logger := obs.FromContext(r.Context())
	svcReq := services.PlanRouteRequest{
		Table:     domain.Table{Columns: req.Columns, Rows: req.Rows},
		RoundTrip: req.RoundTrip,
		Progress: func(done, total int) {
			logger.Debug("geocoding progress",
				slog.String("req_id", obs.RequestID(r.Context())),
				slog.Int("done", done),
				slog.Int("total", total),
			)
		},
	}

	it, err := h.Planner.PlanRoute(r.Context(), svcReq)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toItineraryResponse(it))
}
