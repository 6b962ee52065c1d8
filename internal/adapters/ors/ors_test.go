package ors

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"route-optimizer-service/internal/domain"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(h)
	t.Cleanup(server.Close)

	c, err := NewClient("test-key", Options{BaseURL: server.URL, Timeout: 2 * time.Second})
	require.NoError(t, err)
	return c
}

func threeStopRoundTrip() domain.RouteRequest {
	minutes := 5.0
	row0 := domain.Stop{Index: 0, Label: "Google", Coordinates: domain.Coordinates{Lon: -122.0841, Lat: 37.4221}}
	row1 := domain.Stop{Index: 1, Label: "Apple", Coordinates: domain.Coordinates{Lon: -122.0312, Lat: 37.3318}, ServiceDurationMinutes: &minutes}
	row2 := domain.Stop{Index: 2, Label: "Ferry", Coordinates: domain.Coordinates{Lon: -122.3961, Lat: 37.7862}}

	return domain.NewRouteRequest(row0, row0, []domain.Job{{ID: 1, Stop: row1}, {ID: 2, Stop: row2}}, true)
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient("  ", Options{})
	require.Error(t, err)
}

func TestGeocodeSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geocode/search", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "1 Market St", r.URL.Query().Get("text"))
		assert.Equal(t, "1", r.URL.Query().Get("size"))
		assert.Empty(t, r.URL.Query().Get("boundary.country"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"features":[{"geometry":{"coordinates":[-122.3949,37.7941]}}]}`))
	})

	got, err := c.Geocode(context.Background(), "  1   Market St ")
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinates{Lon: -122.3949, Lat: 37.7941}, got)
}

func TestGeocodeCountryBoundary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "US", r.URL.Query().Get("boundary.country"))
		w.Write([]byte(`{"features":[{"geometry":{"coordinates":[1,2]}}]}`))
	}))
	defer server.Close()

	c, err := NewClient("k", Options{BaseURL: server.URL, Country: "US"})
	require.NoError(t, err)

	_, err = c.Geocode(context.Background(), "Somewhere")
	require.NoError(t, err)
}

func TestGeocodeNoResults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":[]}`))
	})

	_, err := c.Geocode(context.Background(), "!!!invalid!!!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no geocode results")
}

func TestGeocodeHTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("bad key"))
	})

	_, err := c.Geocode(context.Background(), "1 Market St")
	require.Error(t, err)

	var he *httpStatusError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusForbidden, he.Code)
	assert.Equal(t, "bad key", he.Body)
}

func TestOptimizeBuildsRequestAndPreservesSolverOrder(t *testing.T) {
	var got optimizationRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/optimization", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Write([]byte(`{
			"code": 0,
			"unassigned": [],
			"routes": [{
				"vehicle": 1,
				"duration": 5400,
				"distance": 120000,
				"steps": [
					{"type": "start", "location": [-122.0841, 37.4221], "arrival": 0, "distance": 0},
					{"type": "job", "id": 2, "job": 2, "location": [-122.3961, 37.7862], "arrival": 2400, "distance": 60000},
					{"type": "job", "id": 1, "job": 1, "location": [-122.0312, 37.3318], "arrival": 4200, "distance": 100000},
					{"type": "end", "location": [-122.0841, 37.4221], "arrival": 5700, "distance": 120000}
				]
			}]
		}`))
	})

	res, err := c.Optimize(context.Background(), threeStopRoundTrip())
	require.NoError(t, err)

	require.Len(t, got.Vehicles, 1)
	assert.Equal(t, []float64{-122.0841, 37.4221}, got.Vehicles[0].Start)
	assert.Equal(t, []float64{-122.0841, 37.4221}, got.Vehicles[0].End)
	assert.Equal(t, DefaultProfile, got.Vehicles[0].Profile)
	require.Len(t, got.Jobs, 2)
	assert.Equal(t, 1, got.Jobs[0].ID)
	assert.Equal(t, []float64{-122.0312, 37.3318}, got.Jobs[0].Location)
	assert.Equal(t, 300, got.Jobs[0].Service)
	assert.Equal(t, 0, got.Jobs[1].Service)

	require.Len(t, res.Steps, 2)
	assert.Equal(t, 2, res.Steps[0].JobID)
	assert.Equal(t, 1, res.Steps[1].JobID)
	assert.True(t, res.Steps[0].HasLocation)
	require.NotNil(t, res.Steps[0].ArrivalSeconds)
	assert.Equal(t, 2400, *res.Steps[0].ArrivalSeconds)
	assert.Equal(t, 5700, res.TotalDurationSeconds)
	assert.Equal(t, 120000, res.TotalDistanceMeters)
}

func TestOptimizeRejectsEmptyJobsWithoutCallingProvider(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	s := domain.Stop{Label: "A"}
	_, err := c.Optimize(context.Background(), domain.NewRouteRequest(s, s, nil, true))
	require.ErrorIs(t, err, domain.ErrInsufficientStops)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestOptimizeErrorClassification(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"server error", http.StatusServiceUnavailable, "down", domain.ErrOptimizationUnavailable},
		{"rate limited", http.StatusTooManyRequests, "slow down", domain.ErrOptimizationUnavailable},
		{"solver internal error", http.StatusInternalServerError, `{"code": 1, "error": "Internal error"}`, domain.ErrOptimizationUnavailable},
		{"unroutable on 500", http.StatusInternalServerError, `{"code": 3, "error": "Unfound route(s) from location [-122.3961,37.7862]"}`, domain.ErrOptimizationRejected},
		{"invalid input on 500", http.StatusInternalServerError, `{"code": 2, "error": "Invalid profile: car"}`, domain.ErrOptimizationRejected},
		{"gateway error", http.StatusBadGateway, `<html>bad gateway</html>`, domain.ErrOptimizationUnavailable},
		{"bad request", http.StatusBadRequest, `{"error":"bad"}`, domain.ErrOptimizationRejected},
		{"unauthorized", http.StatusUnauthorized, "no", domain.ErrOptimizationRejected},
		{"malformed json", http.StatusOK, `{"routes": [`, domain.ErrOptimizationRejected},
		{"solver code", http.StatusOK, `{"code": 3, "error": "Unfound route(s) from location"}`, domain.ErrOptimizationRejected},
		{"unassigned", http.StatusOK, `{"code": 0, "unassigned": [{"id": 2}], "routes": [{"steps": [{"type": "job", "id": 1}]}]}`, domain.ErrOptimizationRejected},
		{"no routes", http.StatusOK, `{"code": 0, "routes": []}`, domain.ErrOptimizationRejected},
		{"no steps", http.StatusOK, `{"code": 0, "routes": [{"steps": []}]}`, domain.ErrOptimizationRejected},
		{"step without id", http.StatusOK, `{"code": 0, "routes": [{"steps": [{"type": "job"}]}]}`, domain.ErrOptimizationRejected},
		{"bad location", http.StatusOK, `{"code": 0, "routes": [{"steps": [{"type": "job", "id": 1, "location": [1]}]}]}`, domain.ErrOptimizationRejected},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})

			_, err := c.Optimize(context.Background(), threeStopRoundTrip())
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestOptimizeTimeoutIsUnavailable(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	c, err := NewClient("k", Options{BaseURL: server.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = c.Optimize(context.Background(), threeStopRoundTrip())
	require.ErrorIs(t, err, domain.ErrOptimizationUnavailable)
}

func TestOptimizeStalledBodyIsUnavailable(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"code": 0, "routes": [`))
		w.(http.Flusher).Flush()

		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	c, err := NewClient("k", Options{BaseURL: server.URL, Timeout: 100 * time.Millisecond})
	require.NoError(t, err)

	_, err = c.Optimize(context.Background(), threeStopRoundTrip())
	require.ErrorIs(t, err, domain.ErrOptimizationUnavailable)
	assert.NotErrorIs(t, err, domain.ErrOptimizationRejected)
}

func TestOptimizeMissingArrivalStaysUnknown(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": 0, "routes": [{"duration": 900, "steps": [
			{"type": "start"},
			{"type": "job", "id": 1},
			{"type": "job", "id": 2, "arrival": 600},
			{"type": "end"}
		]}]}`))
	})

	res, err := c.Optimize(context.Background(), threeStopRoundTrip())
	require.NoError(t, err)

	require.Len(t, res.Steps, 2)
	assert.Nil(t, res.Steps[0].ArrivalSeconds)
	require.NotNil(t, res.Steps[1].ArrivalSeconds)
	assert.Equal(t, 600, *res.Steps[1].ArrivalSeconds)
	assert.Equal(t, 900, res.TotalDurationSeconds)
}

func TestOptimizeUnreachableIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c, err := NewClient("k", Options{BaseURL: url})
	require.NoError(t, err)

	_, err = c.Optimize(context.Background(), threeStopRoundTrip())
	require.ErrorIs(t, err, domain.ErrOptimizationUnavailable)
}
