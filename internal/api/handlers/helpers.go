package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		obs.FromContext(r.Context()).Error("encode failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, dto.ErrorResponse{Error: msg})
}

// statusFor maps the pipeline's error classes onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInputShape), errors.Is(err, domain.ErrInsufficientStops):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrGeocodingFailure), errors.Is(err, domain.ErrOptimizationRejected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrOptimizationUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrReconstruction):
		return http.StatusBadGateway
	case errors.Is(err, ports.ErrItineraryNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeDomainError reports a classified failure. Unclassified errors are
// logged and hidden behind a generic message.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		obs.FromContext(r.Context()).Error("request failed",
			slog.String("req_id", obs.RequestID(r.Context())),
			slog.String("error", err.Error()),
		)
		writeError(w, r, status, "internal server error")
		return
	}

	res := dto.ErrorResponse{Error: err.Error()}

	var geoErr *domain.GeocodingError
	if errors.As(err, &geoErr) {
		res.Unresolved = make([]dto.UnresolvedAddressResponse, 0, len(geoErr.Unresolved))
		for _, u := range geoErr.Unresolved {
			res.Unresolved = append(res.Unresolved, dto.UnresolvedAddressResponse{Row: u.Row, Address: u.Address})
		}
	}

	writeJSON(w, r, status, res)
}

func toItineraryResponse(it *domain.Itinerary) dto.ItineraryResponse {
	stops := make([]dto.ItineraryStopResponse, 0, len(it.Stops))
	for _, s := range it.Stops {
		stops = append(stops, dto.ItineraryStopResponse{
			StopNumber:      s.StopNumber,
			Label:           s.Label,
			Lon:             s.Coordinates.Lon,
			Lat:             s.Coordinates.Lat,
			StopTimeMinutes: s.ServiceDurationMinutes,
			ArrivalSeconds:  s.ArrivalSeconds,
		})
	}

	return dto.ItineraryResponse{
		ID:                   it.ID,
		CreatedAt:            it.CreatedAt,
		RoundTrip:            it.RoundTrip,
		TotalDurationSeconds: it.TotalDurationSeconds,
		TotalDistanceMeters:  it.TotalDistanceMeters,
		Stops:                stops,
	}
}
