package repositories

import (
	"context"
	"database/sql"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
)

var postgresQueries = itineraryQueries{
	insertItinerary: `
	INSERT INTO itineraries (itinerary_id, created_at, round_trip, total_distance_meters, total_duration_seconds)
	VALUES ($1, $2, $3, $4, $5);
	`,
	insertStop: `
	INSERT INTO itinerary_stops (itinerary_id, stop_number, label, lon, lat, service_minutes, arrival_seconds)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
	`,
	selectItinerary: `
	SELECT created_at, round_trip, total_distance_meters, total_duration_seconds
	FROM itineraries
	WHERE itinerary_id = $1;
	`,
	selectStops: `
	SELECT stop_number, label, lon, lat, service_minutes, arrival_seconds
	FROM itinerary_stops
	WHERE itinerary_id = $1
	ORDER BY stop_number;
	`,
	list: `
	SELECT i.itinerary_id, i.created_at, i.round_trip,
		(SELECT COUNT(*) FROM itinerary_stops s WHERE s.itinerary_id = i.itinerary_id)
	FROM itineraries i
	ORDER BY i.created_at DESC
	LIMIT $1;
	`,
}

// SQLItineraryRepository stores itineraries in Postgres (pgx stdlib driver).
type SQLItineraryRepository struct {
	DB *sql.DB
}

func NewSQLItineraryRepository(db *sql.DB) *SQLItineraryRepository {
	return &SQLItineraryRepository{DB: db}
}

func (s *SQLItineraryRepository) SaveItinerary(ctx context.Context, it *domain.Itinerary) (err error) {
	defer obs.Time(ctx, "itinerary.sql.Save")(&err)
	return saveItinerary(ctx, s.DB, postgresQueries, it)
}

func (s *SQLItineraryRepository) GetItinerary(ctx context.Context, id string) (*domain.Itinerary, error) {
	return getItinerary(ctx, s.DB, postgresQueries, id)
}

func (s *SQLItineraryRepository) ListItineraries(ctx context.Context, limit int) ([]ports.ItinerarySummary, error) {
	return listItineraries(ctx, s.DB, postgresQueries, limit)
}
