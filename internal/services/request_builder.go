package services

import (
	"fmt"
	"route-optimizer-service/internal/domain"
)

// BuildRouteRequest frames stops as a single-vehicle request.
//
// The first stop is the fixed start. A round trip ends back at the start and
// every later stop becomes a job; otherwise the last stop is the fixed end and
// only the stops in between are jobs. Job ids are 1..n in stop order.
func BuildRouteRequest(stops []domain.Stop, roundTrip bool) (domain.RouteRequest, error) {
	if len(stops) == 0 {
		return domain.RouteRequest{}, fmt.Errorf("build route request: no stops: %w", domain.ErrInsufficientStops)
	}

	start := stops[0]
	end := stops[len(stops)-1]
	intermediate := stops[1:]
	if roundTrip {
		end = start
	} else if len(stops) > 1 {
		intermediate = stops[1 : len(stops)-1]
	}

	if len(intermediate) == 0 {
		return domain.RouteRequest{}, fmt.Errorf(
			"build route request: %d stop(s) leave no intermediate job (round_trip=%t): %w",
			len(stops), roundTrip, domain.ErrInsufficientStops,
		)
	}

	jobs := make([]domain.Job, 0, len(intermediate))
	for i, s := range intermediate {
		jobs = append(jobs, domain.Job{ID: i + 1, Stop: s})
	}

	return domain.NewRouteRequest(start, end, jobs, roundTrip), nil
}
