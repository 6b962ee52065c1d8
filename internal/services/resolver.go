package services

import (
	"context"
	"errors"
	"log/slog"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
	"strings"
)

// ProgressFunc observes batch progress: done items out of total.
type ProgressFunc func(done, total int)

// Resolution is the outcome of geocoding one address.
type Resolution struct {
	Coordinates domain.Coordinates
	Resolved    bool
}

// CoordinateResolver geocodes addresses one at a time through a Pacer.
//
// Calls within a batch are strictly sequential and every provider call waits
// on the pacer first, so the minimum spacing between calls is the pacer's
// interval. Failures never escape: an address that cannot be geocoded for
// any reason (no match, provider error, timeout) resolves as unresolved.
type CoordinateResolver struct {
	geocoder ports.Geocoder
	pacer    Pacer
}

func NewCoordinateResolver(geocoder ports.Geocoder, pacer Pacer) *CoordinateResolver {
	return &CoordinateResolver{geocoder: geocoder, pacer: pacer}
}

// Resolve geocodes a single address.
func (r *CoordinateResolver) Resolve(ctx context.Context, address string) Resolution {
	logger := obs.FromContext(ctx)

	address = strings.Join(strings.Fields(address), " ")
	if address == "" {
		return Resolution{}
	}

	if r.pacer != nil {
		if err := r.pacer.Wait(ctx); err != nil {
			logger.Warn("geocode pacing interrupted", slog.String("address", address), slog.String("error", err.Error()))
			return Resolution{}
		}
	}

	c, err := r.geocoder.Geocode(ctx, address)
	if err != nil {
		logger.Warn("geocode unresolved", slog.String("address", address), slog.String("error", err.Error()))
		return Resolution{}
	}
	if !c.Valid() {
		logger.Warn("geocode returned invalid coordinates", slog.String("address", address))
		return Resolution{}
	}

	return Resolution{Coordinates: c, Resolved: true}
}

// ResolveAll geocodes addresses in order. The result is index-aligned with
// the input. progress, when set, is called after every address.
func (r *CoordinateResolver) ResolveAll(
	ctx context.Context,
	addresses []string,
	progress ProgressFunc,
) (_ []Resolution, err error) {
	defer obs.Time(ctx, "resolver.ResolveAll")(&err)

	if r.geocoder == nil {
		return nil, errors.New("resolve all: geocoder is nil")
	}

	out := make([]Resolution, len(addresses))
	for i, a := range addresses {
		out[i] = r.Resolve(ctx, a)
		if progress != nil {
			progress(i+1, len(addresses))
		}
	}

	return out, nil
}
