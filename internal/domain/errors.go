package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Failure classes surfaced by the route pipeline. Callers classify with errors.Is.
var (
	ErrInputShape              = errors.New("input shape error")
	ErrGeocodingFailure        = errors.New("geocoding failure")
	ErrInsufficientStops       = errors.New("insufficient stops")
	ErrOptimizationUnavailable = errors.New("optimization unavailable")
	ErrOptimizationRejected    = errors.New("optimization rejected")
	ErrReconstruction          = errors.New("reconstruction error")
)

// UnresolvedAddress identifies a table row whose address could not be geocoded.
type UnresolvedAddress struct {
	Row     int
	Address string
}

// GeocodingError reports every address of a batch that failed to resolve.
type GeocodingError struct {
	Unresolved []UnresolvedAddress
}

func (e *GeocodingError) Error() string {
	parts := make([]string, 0, len(e.Unresolved))
	for _, u := range e.Unresolved {
		parts = append(parts, fmt.Sprintf("row %d %q", u.Row, u.Address))
	}
	return fmt.Sprintf("%s: %d address(es) unresolved: %s", ErrGeocodingFailure, len(e.Unresolved), strings.Join(parts, ", "))
}

func (e *GeocodingError) Is(target error) bool { return target == ErrGeocodingFailure }
