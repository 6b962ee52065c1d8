package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
	"time"
)

// Fixed-width timestamp so created_at sorts lexicographically.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// itineraryQueries holds the dialect-specific statements; column order is
// shared by every dialect.
type itineraryQueries struct {
	insertItinerary string
	insertStop      string
	selectItinerary string
	selectStops     string
	list            string
}

func saveItinerary(ctx context.Context, db *sql.DB, q itineraryQueries, it *domain.Itinerary) error {
	if db == nil {
		return errors.New("save itinerary: db is nil")
	}
	if it == nil || it.ID == "" {
		return errors.New("save itinerary: itinerary id must not be empty")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save itinerary: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	roundTrip := 0
	if it.RoundTrip {
		roundTrip = 1
	}

	if _, err := tx.ExecContext(ctx, q.insertItinerary,
		it.ID,
		it.CreatedAt.UTC().Format(createdAtLayout),
		roundTrip,
		it.TotalDistanceMeters,
		it.TotalDurationSeconds,
	); err != nil {
		return fmt.Errorf("save itinerary id=%q: insert itinerary: %w", it.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, q.insertStop)
	if err != nil {
		return fmt.Errorf("save itinerary: db prepare: %w", err)
	}
	defer stmt.Close()

	for _, s := range it.Stops {
		var service sql.NullFloat64
		if s.ServiceDurationMinutes != nil {
			service = sql.NullFloat64{Float64: *s.ServiceDurationMinutes, Valid: true}
		}
		var arrival sql.NullInt64
		if s.ArrivalSeconds != nil {
			arrival = sql.NullInt64{Int64: int64(*s.ArrivalSeconds), Valid: true}
		}

		if _, err := stmt.ExecContext(ctx,
			it.ID, s.StopNumber, s.Label, s.Coordinates.Lon, s.Coordinates.Lat, service, arrival,
		); err != nil {
			return fmt.Errorf("save itinerary id=%q stop=%d: %w", it.ID, s.StopNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save itinerary commit: %w", err)
	}

	return nil
}

func getItinerary(ctx context.Context, db *sql.DB, q itineraryQueries, id string) (*domain.Itinerary, error) {
	if db == nil {
		return nil, errors.New("get itinerary: db is nil")
	}

	var (
		createdAt string
		roundTrip int
		it        = &domain.Itinerary{ID: id}
	)
	err := db.QueryRowContext(ctx, q.selectItinerary, id).
		Scan(&createdAt, &roundTrip, &it.TotalDistanceMeters, &it.TotalDurationSeconds)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get itinerary id=%q: %w", id, ports.ErrItineraryNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get itinerary id=%q: %w", id, err)
	}

	it.RoundTrip = roundTrip != 0
	if it.CreatedAt, err = time.Parse(createdAtLayout, createdAt); err != nil {
		return nil, fmt.Errorf("get itinerary id=%q: parse created_at: %w", id, err)
	}

	rows, err := db.QueryContext(ctx, q.selectStops, id)
	if err != nil {
		return nil, fmt.Errorf("get itinerary id=%q: query stops: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			s       domain.ItineraryStop
			service sql.NullFloat64
			arrival sql.NullInt64
		)
		if err := rows.Scan(&s.StopNumber, &s.Label, &s.Coordinates.Lon, &s.Coordinates.Lat, &service, &arrival); err != nil {
			return nil, fmt.Errorf("get itinerary id=%q: scan stop: %w", id, err)
		}
		if service.Valid {
			m := service.Float64
			s.ServiceDurationMinutes = &m
		}
		if arrival.Valid {
			a := int(arrival.Int64)
			s.ArrivalSeconds = &a
		}
		it.Stops = append(it.Stops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get itinerary id=%q: row iteration: %w", id, err)
	}

	return it, nil
}

func listItineraries(ctx context.Context, db *sql.DB, q itineraryQueries, limit int) ([]ports.ItinerarySummary, error) {
	if db == nil {
		return nil, errors.New("list itineraries: db is nil")
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.QueryContext(ctx, q.list, limit)
	if err != nil {
		return nil, fmt.Errorf("list itineraries: query itineraries table: %w", err)
	}
	defer rows.Close()

	out := make([]ports.ItinerarySummary, 0, limit)
	for rows.Next() {
		var (
			s         ports.ItinerarySummary
			roundTrip int
		)
		if err := rows.Scan(&s.ID, &s.CreatedAt, &roundTrip, &s.StopCount); err != nil {
			return nil, fmt.Errorf("list itineraries: scan row: %w", err)
		}
		s.RoundTrip = roundTrip != 0
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list itineraries: row iteration: %w", err)
	}

	return out, nil
}
