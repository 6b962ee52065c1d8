package ors

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
)

const vehicleID = 1

type optimizationJob struct {
	ID       int       `json:"id"`
	Location []float64 `json:"location"`
	Service  int       `json:"service,omitempty"`
}

type optimizationVehicle struct {
	ID      int       `json:"id"`
	Profile string    `json:"profile"`
	Start   []float64 `json:"start"`
	End     []float64 `json:"end"`
}

type optimizationRequest struct {
	Jobs     []optimizationJob     `json:"jobs"`
	Vehicles []optimizationVehicle `json:"vehicles"`
}

type optimizationStep struct {
	Type     string    `json:"type"`
	ID       *int      `json:"id"`
	Location []float64 `json:"location"`
	Arrival  *int      `json:"arrival"`
	Distance int       `json:"distance"`
}

type optimizationRoute struct {
	Vehicle  int                `json:"vehicle"`
	Duration int                `json:"duration"`
	Distance *int               `json:"distance"`
	Steps    []optimizationStep `json:"steps"`
}

type optimizationResponse struct {
	Code       int                 `json:"code"`
	Error      string              `json:"error"`
	Unassigned []struct{ ID int }  `json:"unassigned"`
	Routes     []optimizationRoute `json:"routes"`
}

// buildOptimizationRequest converts a route request into the provider's
// job/vehicle shape. All locations go out as [lon, lat].
func (c *Client) buildOptimizationRequest(req domain.RouteRequest) optimizationRequest {
	jobs := make([]optimizationJob, 0, len(req.Jobs))
	for _, j := range req.Jobs {
		jobs = append(jobs, optimizationJob{
			ID:       j.ID,
			Location: j.Stop.Coordinates.CoordsToList(),
			Service:  j.Stop.ServiceSeconds(),
		})
	}

	return optimizationRequest{
		Jobs: jobs,
		Vehicles: []optimizationVehicle{{
			ID:      vehicleID,
			Profile: c.profile,
			Start:   req.Start.Coordinates.CoordsToList(),
			End:     req.End.Coordinates.CoordsToList(),
		}},
	}
}

// Optimize submits the request to /optimization and returns the job visiting
// order exactly as the solver reported it.
func (c *Client) Optimize(ctx context.Context, req domain.RouteRequest) (_ domain.OptimizationResult, err error) {
	defer obs.Time(ctx, "ors.Optimize")(&err)

	if len(req.Jobs) == 0 {
		return domain.OptimizationResult{}, fmt.Errorf("optimize: request has no jobs: %w", domain.ErrInsufficientStops)
	}

	payload, err := json.Marshal(c.buildOptimizationRequest(req))
	if err != nil {
		return domain.OptimizationResult{}, fmt.Errorf("marshal optimization request: %w", err)
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, c.baseURL+"/optimization", bytes.NewReader(payload))
	if err != nil {
		return domain.OptimizationResult{}, fmt.Errorf("optimize: %w: %w", domain.ErrOptimizationUnavailable, err)
	}

	resp, err := c.do(httpReq)
	if err != nil {
		var he *httpStatusError
		if errors.As(err, &he) && (solverRefused(he) || !he.transient()) {
			return domain.OptimizationResult{}, fmt.Errorf("optimize: %w: %w", domain.ErrOptimizationRejected, err)
		}
		return domain.OptimizationResult{}, fmt.Errorf("optimize: %w: %w", domain.ErrOptimizationUnavailable, err)
	}
	defer resp.Body.Close()

	var decoded optimizationResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		if timedOut(ctx, err) {
			return domain.OptimizationResult{}, fmt.Errorf("optimize: read response: %w: %w", domain.ErrOptimizationUnavailable, err)
		}
		return domain.OptimizationResult{}, fmt.Errorf("optimize: decode response: %w: %w", domain.ErrOptimizationRejected, err)
	}

	return parseOptimizationResponse(decoded)
}

// VROOM error codes: 1 internal, 2 input, 3 routing.
const (
	solverCodeInput   = 2
	solverCodeRouting = 3
)

// solverRefused reports whether an error response carries a solver verdict
// on the problem itself. The solver answers those with a 500.
func solverRefused(he *httpStatusError) bool {
	var body optimizationResponse
	if err := json.Unmarshal([]byte(he.Body), &body); err != nil {
		return false
	}
	return body.Code == solverCodeInput || body.Code == solverCodeRouting
}

// timedOut reports whether a body read failed because the call ran out of time.
func timedOut(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func parseOptimizationResponse(decoded optimizationResponse) (domain.OptimizationResult, error) {
	if decoded.Code != 0 {
		return domain.OptimizationResult{}, fmt.Errorf(
			"optimize: solver code %d: %s: %w",
			decoded.Code, decoded.Error, domain.ErrOptimizationRejected,
		)
	}

	if len(decoded.Unassigned) > 0 {
		ids := make([]int, 0, len(decoded.Unassigned))
		for _, u := range decoded.Unassigned {
			ids = append(ids, u.ID)
		}
		return domain.OptimizationResult{}, fmt.Errorf(
			"optimize: solver left jobs unassigned %v: %w",
			ids, domain.ErrOptimizationRejected,
		)
	}

	if len(decoded.Routes) != 1 {
		return domain.OptimizationResult{}, fmt.Errorf(
			"optimize: expected 1 route, got %d: %w",
			len(decoded.Routes), domain.ErrOptimizationRejected,
		)
	}

	route := decoded.Routes[0]
	out := domain.OptimizationResult{
		Steps:                make([]domain.OptimizedStep, 0, len(route.Steps)),
		TotalDurationSeconds: route.Duration,
	}
	if route.Distance != nil {
		out.TotalDistanceMeters = *route.Distance
	}

	for i, s := range route.Steps {
		switch s.Type {
		case "start":
			continue
		case "end":
			if s.Arrival != nil {
				out.TotalDurationSeconds = *s.Arrival
			}
			if route.Distance == nil {
				out.TotalDistanceMeters = s.Distance
			}
			continue
		}

		if s.ID == nil {
			return domain.OptimizationResult{}, fmt.Errorf(
				"optimize: step %d (%q) has no job id: %w",
				i, s.Type, domain.ErrOptimizationRejected,
			)
		}

		step := domain.OptimizedStep{
			JobID:          *s.ID,
			ArrivalSeconds: s.Arrival,
			DistanceMeters: s.Distance,
		}
		if len(s.Location) > 0 {
			loc, ok := domain.CoordsFromList(s.Location)
			if !ok {
				return domain.OptimizationResult{}, fmt.Errorf(
					"optimize: step %d has malformed location %v: %w",
					i, s.Location, domain.ErrOptimizationRejected,
				)
			}
			step.Location, step.HasLocation = loc, true
		}

		out.Steps = append(out.Steps, step)
	}

	if len(out.Steps) == 0 {
		return domain.OptimizationResult{}, fmt.Errorf("optimize: route has no job steps: %w", domain.ErrOptimizationRejected)
	}

	return out, nil
}
