package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the itinerary tables. The DDL is portable across
// Postgres and SQLite.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createItinerariesQuery := `
	CREATE TABLE IF NOT EXISTS itineraries (
		itinerary_id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		round_trip INTEGER NOT NULL,
		total_distance_meters INTEGER NOT NULL,
		total_duration_seconds INTEGER NOT NULL
	);
	`

	createStopsQuery := `
	CREATE TABLE IF NOT EXISTS itinerary_stops (
		itinerary_id TEXT NOT NULL REFERENCES itineraries(itinerary_id) ON DELETE CASCADE,
		stop_number INTEGER NOT NULL,
		label TEXT NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		service_minutes DOUBLE PRECISION,
		arrival_seconds INTEGER,
		PRIMARY KEY (itinerary_id, stop_number)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_itineraries_created_at
	ON itineraries(created_at);
	`

	statements := []string{
		createItinerariesQuery,
		createStopsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
