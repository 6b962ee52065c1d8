package ports

import (
	"context"
	"route-optimizer-service/internal/domain"
)

// Port: the external single-vehicle route optimization service.
type Optimizer interface {
	// Sequence the request's jobs. Errors wrap domain.ErrOptimizationUnavailable
	// or domain.ErrOptimizationRejected.
	Optimize(ctx context.Context, req domain.RouteRequest) (domain.OptimizationResult, error)
}
