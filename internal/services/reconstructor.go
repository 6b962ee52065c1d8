package services

import (
	"fmt"
	"route-optimizer-service/internal/domain"
)

// Reconstruct maps the solver's job order back onto the submitted stops.
//
// Steps are joined to stops by job id, never by coordinate search. A step
// whose id was never submitted, that repeats an id, or whose echoed location
// does not match the submitted stop is a provider contract violation, as is
// any submitted job missing from the result.
func Reconstruct(req domain.RouteRequest, result domain.OptimizationResult) (*domain.Itinerary, error) {
	if len(result.Steps) != len(req.Jobs) {
		return nil, fmt.Errorf(
			"reconstruct: solver returned %d job steps for %d jobs: %w",
			len(result.Steps), len(req.Jobs), domain.ErrReconstruction,
		)
	}

	stops := make([]domain.ItineraryStop, 0, len(req.Jobs)+2)
	stops = append(stops, itineraryStop(1, req.Start, nil))

	seen := make(map[int]struct{}, len(result.Steps))
	for _, step := range result.Steps {
		stop, ok := req.JobStop(step.JobID)
		if !ok {
			return nil, fmt.Errorf("reconstruct: unknown job id %d: %w", step.JobID, domain.ErrReconstruction)
		}
		if _, dup := seen[step.JobID]; dup {
			return nil, fmt.Errorf("reconstruct: job id %d returned twice: %w", step.JobID, domain.ErrReconstruction)
		}
		seen[step.JobID] = struct{}{}

		if step.HasLocation && !step.Location.SameLocation(stop.Coordinates) {
			return nil, fmt.Errorf(
				"reconstruct: job %d location %v does not match any submitted stop (want %v): %w",
				step.JobID, step.Location.CoordsToList(), stop.Coordinates.CoordsToList(), domain.ErrReconstruction,
			)
		}

		var arrival *int
		if step.ArrivalSeconds != nil {
			a := *step.ArrivalSeconds
			arrival = &a
		}
		stops = append(stops, itineraryStop(len(stops)+1, stop, arrival))
	}

	var endArrival *int
	if result.TotalDurationSeconds > 0 {
		d := result.TotalDurationSeconds
		endArrival = &d
	}
	stops = append(stops, itineraryStop(len(stops)+1, req.End, endArrival))

	return &domain.Itinerary{
		RoundTrip:            req.RoundTrip,
		Stops:                stops,
		TotalDurationSeconds: result.TotalDurationSeconds,
		TotalDistanceMeters:  result.TotalDistanceMeters,
	}, nil
}

func itineraryStop(n int, s domain.Stop, arrival *int) domain.ItineraryStop {
	return domain.ItineraryStop{
		StopNumber:             n,
		Label:                  s.Label,
		Coordinates:            s.Coordinates,
		ServiceDurationMinutes: s.ServiceDurationMinutes,
		ArrivalSeconds:         arrival,
	}
}
