package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"route-optimizer-service/internal/adapters/tabular"
	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/ports"
	"strconv"

	"github.com/julienschmidt/httprouter"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type ItineraryHandler struct {
	Repo ports.ItineraryRepository
}

// List returns the most recent saved itineraries, newest first.
func (h *ItineraryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxListLimit {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d", maxListLimit))
			return
		}
		limit = n
	}

	summaries, err := h.Repo.ListItineraries(r.Context(), limit)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.ListItinerariesResponse{Itineraries: make([]dto.ItinerarySummaryResponse, 0, len(summaries))}
	for _, s := range summaries {
		res.Itineraries = append(res.Itineraries, dto.ItinerarySummaryResponse{
			ID:        s.ID,
			CreatedAt: s.CreatedAt,
			RoundTrip: s.RoundTrip,
			StopCount: s.StopCount,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *ItineraryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("id")

	it, err := h.Repo.GetItinerary(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toItineraryResponse(it))
}

// ExportCSV writes the itinerary as stop_number,label,stop_time_minutes.
func (h *ItineraryHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("id")

	it, err := h.Repo.GetItinerary(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := tabular.WriteItineraryCSV(&buf, it); err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "itinerary-"+it.ID+".csv"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
