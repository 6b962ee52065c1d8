package services

import (
	"context"
	"errors"
	"route-optimizer-service/internal/adapters/mock"
	"route-optimizer-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingResolver struct{}

func (failingResolver) ResolveAll(ctx context.Context, addresses []string, progress ProgressFunc) ([]Resolution, error) {
	return nil, errors.New("geocoder offline")
}

func newTestNormalizer(known map[string]domain.Coordinates) (*StopNormalizer, *mock.MockGeocoder) {
	g := mock.NewMockGeocoder(known)
	return NewStopNormalizer(NewCoordinateResolver(g, nil)), g
}

func TestNormalizeCoordinateMode(t *testing.T) {
	n, g := newTestNormalizer(nil)
	table := domain.Table{
		Columns: []string{"Latitude", "Longitude", "First_Name", "Last_Name", "Stop_Time_Minutes"},
		Rows: [][]string{
			{"37.4221", "-122.0841", "Ada", "Lovelace", ""},
			{" 37.3318 ", "-122.0312", "Alan", "", "7.5"},
			{"37.7862", "-122.3961", "", "", ""},
		},
	}

	stops, err := n.Normalize(context.Background(), table, nil)
	require.NoError(t, err)
	require.Len(t, stops, 3)

	assert.Equal(t, domain.Coordinates{Lon: -122.0841, Lat: 37.4221}, stops[0].Coordinates)
	assert.Equal(t, "Ada Lovelace", stops[0].Label)
	assert.Nil(t, stops[0].ServiceDurationMinutes)

	assert.Equal(t, "Alan", stops[1].Label)
	require.NotNil(t, stops[1].ServiceDurationMinutes)
	assert.Equal(t, 7.5, *stops[1].ServiceDurationMinutes)

	assert.Equal(t, "Stop 3", stops[2].Label)
	assert.Equal(t, 2, stops[2].Index)
	assert.Empty(t, g.Calls())
}

func TestNormalizeAddressModeTakesPrecedence(t *testing.T) {
	n, g := newTestNormalizer(map[string]domain.Coordinates{
		"123 Main St": mainSt,
		"1 Market St": marketSt,
	})
	table := domain.Table{
		Columns: []string{"address", "lat", "lon", "name"},
		Rows: [][]string{
			{"123 Main St", "0", "0", "Home"},
			{"1 Market St", "0", "0", ""},
		},
	}

	var progress []int
	stops, err := n.Normalize(context.Background(), table, func(done, total int) { progress = append(progress, done) })
	require.NoError(t, err)
	require.Len(t, stops, 2)

	assert.Equal(t, mainSt, stops[0].Coordinates)
	assert.Equal(t, "Home", stops[0].Label)
	assert.Equal(t, marketSt, stops[1].Coordinates)
	assert.Equal(t, "1 Market St", stops[1].Label)
	assert.Equal(t, []string{"123 Main St", "1 Market St"}, g.Calls())
	assert.Equal(t, []int{1, 2}, progress)
}

func TestNormalizeFailsWholeBatchOnOneUnresolvedAddress(t *testing.T) {
	n, g := newTestNormalizer(map[string]domain.Coordinates{
		"123 Main St": mainSt,
		"1 Market St": marketSt,
	})
	table := domain.Table{
		Columns: []string{"Address"},
		Rows:    [][]string{{"123 Main St"}, {"!!!invalid!!!"}, {"1 Market St"}},
	}

	stops, err := n.Normalize(context.Background(), table, nil)
	require.ErrorIs(t, err, domain.ErrGeocodingFailure)
	assert.Nil(t, stops)

	var ge *domain.GeocodingError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, []domain.UnresolvedAddress{{Row: 2, Address: "!!!invalid!!!"}}, ge.Unresolved)
	assert.Len(t, g.Calls(), 3)
}

func TestNormalizeResolverErrorIsGeocodingFailure(t *testing.T) {
	n := NewStopNormalizer(failingResolver{})
	table := domain.Table{Columns: []string{"address"}, Rows: [][]string{{"a"}, {"b"}}}

	_, err := n.Normalize(context.Background(), table, nil)
	require.ErrorIs(t, err, domain.ErrGeocodingFailure)
}

func TestNormalizeInputShapeErrors(t *testing.T) {
	cases := []struct {
		name  string
		table domain.Table
	}{
		{"one row", domain.Table{Columns: []string{"address"}, Rows: [][]string{{"123 Main St"}}}},
		{"blank rows do not count", domain.Table{Columns: []string{"address"}, Rows: [][]string{{"123 Main St"}, {" ", ""}}}},
		{"no coordinate columns", domain.Table{Columns: []string{"name", "city"}, Rows: [][]string{{"a", "b"}, {"c", "d"}}}},
		{"latitude only", domain.Table{Columns: []string{"latitude"}, Rows: [][]string{{"1"}, {"2"}}}},
		{"bad latitude", domain.Table{Columns: []string{"lat", "lng"}, Rows: [][]string{{"north", "1"}, {"2", "3"}}}},
		{"out of range", domain.Table{Columns: []string{"lat", "lng"}, Rows: [][]string{{"95", "1"}, {"2", "3"}}}},
		{"negative stop time", domain.Table{Columns: []string{"lat", "lng", "stop time"}, Rows: [][]string{{"1", "1", "-3"}, {"2", "3", ""}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n, _ := newTestNormalizer(nil)
			_, err := n.Normalize(context.Background(), tc.table, nil)
			require.ErrorIs(t, err, domain.ErrInputShape)
		})
	}
}

func TestNormalizeSkipsBlankRowsButKeepsRowIndex(t *testing.T) {
	n, _ := newTestNormalizer(nil)
	table := domain.Table{
		Columns: []string{"lat", "lon"},
		Rows:    [][]string{{"1", "1"}, {"", ""}, {"2", "2"}},
	}

	stops, err := n.Normalize(context.Background(), table, nil)
	require.NoError(t, err)
	require.Len(t, stops, 2)
	assert.Equal(t, 2, stops[1].Index)
	assert.Equal(t, "Stop 2", stops[1].Label)
}

func TestDetectColumnsAliases(t *testing.T) {
	l := detectColumns([]string{" LNG ", "Lat", "Stop Time (minutes)", "label"})
	assert.Equal(t, 0, l.longitude)
	assert.Equal(t, 1, l.latitude)
	assert.Equal(t, 2, l.stopTime)
	assert.Equal(t, 3, l.name)
	assert.Equal(t, -1, l.address)
	assert.True(t, l.coordinateMode())
	assert.False(t, l.addressMode())
}
