package mock

import (
	"context"
	"route-optimizer-service/internal/domain"
)

// MockOptimizer answers with a fixed job order, or reverses the submitted
// jobs when Order is empty. Err, when set, is returned instead.
type MockOptimizer struct {
	Order []int
	Err   error
	// Locations overrides the echoed location of a job id.
	Locations map[int]domain.Coordinates

	Requests []domain.RouteRequest
}

func (m *MockOptimizer) Optimize(ctx context.Context, req domain.RouteRequest) (domain.OptimizationResult, error) {
	m.Requests = append(m.Requests, req)

	if m.Err != nil {
		return domain.OptimizationResult{}, m.Err
	}

	order := m.Order
	if len(order) == 0 {
		order = make([]int, 0, len(req.Jobs))
		for i := len(req.Jobs) - 1; i >= 0; i-- {
			order = append(order, req.Jobs[i].ID)
		}
	}

	res := domain.OptimizationResult{Steps: make([]domain.OptimizedStep, 0, len(order))}
	for i, id := range order {
		loc, hasLoc := m.Locations[id]
		if !hasLoc {
			if stop, known := req.JobStop(id); known {
				loc, hasLoc = stop.Coordinates, true
			}
		}

		arrival := (i + 1) * 600
		res.Steps = append(res.Steps, domain.OptimizedStep{
			JobID:          id,
			Location:       loc,
			HasLocation:    hasLoc,
			ArrivalSeconds: &arrival,
			DistanceMeters: (i + 1) * 5000,
		})
	}
	res.TotalDurationSeconds = (len(order) + 1) * 600
	res.TotalDistanceMeters = (len(order) + 1) * 5000

	return res, nil
}
