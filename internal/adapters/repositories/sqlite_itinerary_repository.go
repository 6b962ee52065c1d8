package repositories

import (
	"context"
	"database/sql"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
)

var sqliteQueries = itineraryQueries{
	insertItinerary: `
	INSERT INTO itineraries (
		itinerary_id,
		created_at,
		round_trip,
		total_distance_meters,
		total_duration_seconds
	)
	VALUES (?, ?, ?, ?, ?);
	`,
	insertStop: `
	INSERT INTO itinerary_stops (
		itinerary_id,
		stop_number,
		label,
		lon,
		lat,
		service_minutes,
		arrival_seconds
	)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`,
	selectItinerary: `
	SELECT created_at, round_trip, total_distance_meters, total_duration_seconds
	FROM itineraries
	WHERE itinerary_id = ?;
	`,
	selectStops: `
	SELECT stop_number, label, lon, lat, service_minutes, arrival_seconds
	FROM itinerary_stops
	WHERE itinerary_id = ?
	ORDER BY stop_number;
	`,
	list: `
	SELECT i.itinerary_id, i.created_at, i.round_trip,
		(SELECT COUNT(*) FROM itinerary_stops s WHERE s.itinerary_id = i.itinerary_id)
	FROM itineraries i
	ORDER BY i.created_at DESC
	LIMIT ?;
	`,
}

// SQLite backed itinerary store for single-node and local runs.
type SqliteItineraryRepository struct {
	DB *sql.DB
}

func NewSqliteItineraryRepository(db *sql.DB) *SqliteItineraryRepository {
	return &SqliteItineraryRepository{DB: db}
}

func (s *SqliteItineraryRepository) SaveItinerary(ctx context.Context, it *domain.Itinerary) (err error) {
	defer obs.Time(ctx, "itinerary.sqlite.Save")(&err)
	return saveItinerary(ctx, s.DB, sqliteQueries, it)
}

func (s *SqliteItineraryRepository) GetItinerary(ctx context.Context, id string) (*domain.Itinerary, error) {
	return getItinerary(ctx, s.DB, sqliteQueries, id)
}

func (s *SqliteItineraryRepository) ListItineraries(ctx context.Context, limit int) ([]ports.ItinerarySummary, error) {
	return listItineraries(ctx, s.DB, sqliteQueries, limit)
}
