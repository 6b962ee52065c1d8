package domain

import "time"

// Represents one row of the final visiting order.
// StopNumber starts at 1. ArrivalSeconds is the solver's cumulative estimate when known.
type ItineraryStop struct {
	StopNumber             int
	Label                  string
	Coordinates            Coordinates
	ServiceDurationMinutes *float64
	ArrivalSeconds         *int
}

// Represents the fully ordered visiting sequence returned to callers.
// The first entry is always the start, the last is always the end; a round
// trip repeats the start at the end.
type Itinerary struct {
	ID                   string
	CreatedAt            time.Time
	RoundTrip            bool
	Stops                []ItineraryStop
	TotalDurationSeconds int
	TotalDistanceMeters  int
}
