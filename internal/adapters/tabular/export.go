package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"route-optimizer-service/internal/domain"
	"strconv"
)

var exportHeader = []string{"stop_number", "label", "stop_time_minutes"}

// WriteItineraryCSV writes one line per stop in visiting order. Stops without
// a stop time get an empty cell.
func WriteItineraryCSV(w io.Writer, it *domain.Itinerary) error {
	if it == nil {
		return fmt.Errorf("write itinerary csv: itinerary is nil")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write itinerary csv: header: %w", err)
	}

	for _, s := range it.Stops {
		minutes := ""
		if s.ServiceDurationMinutes != nil {
			minutes = strconv.FormatFloat(*s.ServiceDurationMinutes, 'f', -1, 64)
		}
		record := []string{strconv.Itoa(s.StopNumber), s.Label, minutes}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write itinerary csv: stop %d: %w", s.StopNumber, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write itinerary csv: flush: %w", err)
	}
	return nil
}
