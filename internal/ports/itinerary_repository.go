package ports

import (
	"context"
	"errors"
	"route-optimizer-service/internal/domain"
)

var ErrItineraryNotFound = errors.New("itinerary not found")

// ItinerarySummary is a listing row for a saved itinerary.
type ItinerarySummary struct {
	ID        string
	CreatedAt string
	RoundTrip bool
	StopCount int
}

// Port: persistence for computed itineraries.
type ItineraryRepository interface {
	SaveItinerary(ctx context.Context, it *domain.Itinerary) error
	GetItinerary(ctx context.Context, id string) (*domain.Itinerary, error)
	ListItineraries(ctx context.Context, limit int) ([]ItinerarySummary, error)
}
