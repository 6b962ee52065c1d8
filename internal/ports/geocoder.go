package ports

import (
	"context"
	"route-optimizer-service/internal/domain"
)

// Contract for resolving a free-text address to coordinates.
type Geocoder interface {
	// Return the best match for address. An error covers both "no match" and
	// provider failure; the caller does not distinguish them.
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}
