package app

import (
	"fmt"
	"route-optimizer-service/internal/adapters/nominatim"
	"route-optimizer-service/internal/adapters/ors"
	"route-optimizer-service/internal/config"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
)

// NewPlanner builds the route pipeline from configuration: the ORS client
// as optimizer, the configured geocoder behind a rate pacer, and repo
// (may be nil) for persistence.
func NewPlanner(cfg *config.Config, repo ports.ItineraryRepository) (*services.RoutePlanner, error) {
	client, err := ors.NewClient(cfg.ORSAPIKey, ors.Options{
		BaseURL: cfg.ORSBaseURL,
		Profile: cfg.ORSProfile,
		Country: cfg.GeocodeCountry,
		Timeout: cfg.HTTPTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("new planner: %w", err)
	}

	geocoder := newGeocoder(cfg, client)
	resolver := services.NewCoordinateResolver(geocoder, services.NewRatePacer(cfg.GeocodeInterval))

	return services.NewRoutePlanner(resolver, client, repo), nil
}

func newGeocoder(cfg *config.Config, client *ors.Client) ports.Geocoder {
	if cfg.Geocoder == "nominatim" {
		return nominatim.NewGeocoder(cfg.NominatimBaseURL, cfg.HTTPTimeout)
	}
	return client
}
