package repositories

import (
	"database/sql"
	"route-optimizer-service/internal/platform/db"
	"route-optimizer-service/internal/ports"
)

// NewItineraryRepository picks the store matching the opened database.
func NewItineraryRepository(conn *sql.DB, dialect db.Dialect) ports.ItineraryRepository {
	if dialect == db.Postgres {
		return NewSQLItineraryRepository(conn)
	}
	return NewSqliteItineraryRepository(conn)
}
