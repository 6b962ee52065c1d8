package mock

import (
	"context"
	"fmt"
	"route-optimizer-service/internal/domain"
	"sync"
)

// MockGeocoder resolves addresses from a fixed table and records every call.
type MockGeocoder struct {
	mu     sync.Mutex
	known  map[string]domain.Coordinates
	calls  []string
	Before func(address string)
}

func NewMockGeocoder(known map[string]domain.Coordinates) *MockGeocoder {
	m := make(map[string]domain.Coordinates, len(known))
	for k, v := range known {
		m[k] = v
	}
	return &MockGeocoder{known: m}
}

func (g *MockGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	g.mu.Lock()
	g.calls = append(g.calls, address)
	before := g.Before
	c, ok := g.known[address]
	g.mu.Unlock()

	if before != nil {
		before(address)
	}
	if err := ctx.Err(); err != nil {
		return domain.Coordinates{}, err
	}
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("no geocode results for %q", address)
	}
	return c, nil
}

// Calls returns the addresses geocoded so far, in call order.
func (g *MockGeocoder) Calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.calls...)
}
