package domain

import "math"

// coordinateTolerance is the largest per-axis drift (degrees, ~0.1m) accepted when a
// provider echoes back a location we submitted.
const coordinateTolerance = 1e-6

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// Build coordinates from a (latitude, longitude) pair, the order geocoders and
// spreadsheets use.
func FromLatLon(lat, lon float64) Coordinates { return Coordinates{Lon: lon, Lat: lat} }

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Parse a [lon, lat] pair as returned by the routing provider.
func CoordsFromList(v []float64) (Coordinates, bool) {
	if len(v) != 2 {
		return Coordinates{}, false
	}
	return Coordinates{Lon: v[0], Lat: v[1]}, true
}

// Valid reports whether the coordinates are finite and inside WGS84 bounds.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Lon) || math.IsNaN(c.Lat) || math.IsInf(c.Lon, 0) || math.IsInf(c.Lat, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// SameLocation compares two coordinates allowing for float drift across the wire.
func (c Coordinates) SameLocation(o Coordinates) bool {
	return math.Abs(c.Lon-o.Lon) <= coordinateTolerance && math.Abs(c.Lat-o.Lat) <= coordinateTolerance
}
