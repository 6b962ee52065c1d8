package nominatim

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNominatimGeocodeSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "123 Main St", r.URL.Query().Get("q"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]nominatimResponse{
			{Lat: "40.7128", Lon: "-74.0060", DisplayName: "New York, NY, USA"},
		})
	}))
	defer server.Close()

	g := NewGeocoder(server.URL, time.Second)
	got, err := g.Geocode(context.Background(), "123 Main St")

	require.NoError(t, err)
	assert.Equal(t, 40.7128, got.Lat)
	assert.Equal(t, -74.0060, got.Lon)
}

func TestNominatimGeocodeNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]nominatimResponse{})
	}))
	defer server.Close()

	_, err := NewGeocoder(server.URL, time.Second).Geocode(context.Background(), "Nonexistent Location")
	require.Error(t, err)

	var geocodingErr *ErrGeocodingFailed
	require.ErrorAs(t, err, &geocodingErr)
	assert.Contains(t, geocodingErr.Reason, "no results found")
}

func TestNominatimGeocodeHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	_, err := NewGeocoder(server.URL, time.Second).Geocode(context.Background(), "Test Address")

	var geocodingErr *ErrGeocodingFailed
	require.ErrorAs(t, err, &geocodingErr)
	assert.Contains(t, geocodingErr.Reason, "HTTP 500")
}

func TestNominatimGeocodeInvalidLatitude(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]nominatimResponse{{Lat: "invalid", Lon: "-74.0060"}})
	}))
	defer server.Close()

	_, err := NewGeocoder(server.URL, time.Second).Geocode(context.Background(), "Test Address")

	var geocodingErr *ErrGeocodingFailed
	require.ErrorAs(t, err, &geocodingErr)
	assert.Contains(t, geocodingErr.Reason, "invalid latitude")
}

func TestNominatimGeocodeInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("invalid json"))
	}))
	defer server.Close()

	_, err := NewGeocoder(server.URL, time.Second).Geocode(context.Background(), "Test Address")
	require.Error(t, err)
}
