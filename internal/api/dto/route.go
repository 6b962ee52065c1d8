package dto

import "time"

// PlanRouteRequest carries an already-parsed stop table.
type PlanRouteRequest struct {
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
	RoundTrip bool       `json:"round_trip"`
}

type ItineraryStopResponse struct {
	StopNumber      int      `json:"stop_number"`
	Label           string   `json:"label"`
	Lon             float64  `json:"lon"`
	Lat             float64  `json:"lat"`
	StopTimeMinutes *float64 `json:"stop_time_minutes,omitempty"`
	ArrivalSeconds  *int     `json:"arrival_seconds,omitempty"`
}

type ItineraryResponse struct {
	ID                   string                  `json:"id"`
	CreatedAt            time.Time               `json:"created_at"`
	RoundTrip            bool                    `json:"round_trip"`
	TotalDurationSeconds int                     `json:"total_duration_seconds"`
	TotalDistanceMeters  int                     `json:"total_distance_meters"`
	Stops                []ItineraryStopResponse `json:"stops"`
}

type ItinerarySummaryResponse struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	RoundTrip bool   `json:"round_trip"`
	StopCount int    `json:"stop_count"`
}

type ListItinerariesResponse struct {
	Itineraries []ItinerarySummaryResponse `json:"itineraries"`
}
