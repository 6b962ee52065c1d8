package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
	"time"

	"github.com/google/uuid"
)

type PlanRouteRequest struct {
	Table     domain.Table
	RoundTrip bool
	Progress  ProgressFunc
}

// RoutePlanner runs the full pipeline:
// normalize -> build request -> optimize -> reconstruct -> (save).
//
// It holds no per-request state and is safe for concurrent use as long as
// its collaborators are.
type RoutePlanner struct {
	normalizer *StopNormalizer
	optimizer  ports.Optimizer
	repo       ports.ItineraryRepository
	now        func() time.Time
}

// NewRoutePlanner wires the pipeline. repo may be nil, in which case
// itineraries are returned without being stored.
func NewRoutePlanner(resolver AddressResolver, optimizer ports.Optimizer, repo ports.ItineraryRepository) *RoutePlanner {
	return &RoutePlanner{
		normalizer: NewStopNormalizer(resolver),
		optimizer:  optimizer,
		repo:       repo,
		now:        time.Now,
	}
}

// PlanRoute returns a complete itinerary or an error; never a partial route.
func (p *RoutePlanner) PlanRoute(ctx context.Context, req PlanRouteRequest) (_ *domain.Itinerary, err error) {
	defer obs.Time(ctx, "planner.PlanRoute")(&err)

	if p.optimizer == nil {
		return nil, errors.New("plan route: optimizer is nil")
	}

	stops, err := p.normalizer.Normalize(ctx, req.Table, req.Progress)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	routeReq, err := BuildRouteRequest(stops, req.RoundTrip)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	result, err := p.optimizer.Optimize(ctx, routeReq)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	it, err := Reconstruct(routeReq, result)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	it.ID = uuid.NewString()
	it.CreatedAt = p.now().UTC()

	// The itinerary is already complete; a failed save is logged, not returned.
	if p.repo != nil {
		if err := p.repo.SaveItinerary(ctx, it); err != nil {
			obs.FromContext(ctx).Error("itinerary save failed",
				slog.String("itinerary_id", it.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	return it, nil
}
