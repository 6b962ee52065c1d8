package domain

// Job is an intermediate stop submitted to the optimizer for sequencing.
// IDs are 1..len(jobs) in enumeration order.
type Job struct {
	ID   int
	Stop Stop
}

// RouteRequest frames a stop list as a single-vehicle problem with a fixed start and end.
type RouteRequest struct {
	Start     Stop
	End       Stop
	Jobs      []Job
	RoundTrip bool

	byID map[int]Stop
}

// NewRouteRequest builds a request and its job_id -> Stop lookup.
func NewRouteRequest(start, end Stop, jobs []Job, roundTrip bool) RouteRequest {
	byID := make(map[int]Stop, len(jobs))
	for _, j := range jobs {
		byID[j.ID] = j.Stop
	}
	return RouteRequest{Start: start, End: end, Jobs: jobs, RoundTrip: roundTrip, byID: byID}
}

// JobStop resolves a job id back to the stop it was built from.
func (r RouteRequest) JobStop(id int) (Stop, bool) {
	if r.byID != nil {
		s, ok := r.byID[id]
		return s, ok
	}
	for _, j := range r.Jobs {
		if j.ID == id {
			return j.Stop, true
		}
	}
	return Stop{}, false
}

// OptimizedStep is one visited job as reported by the solver.
// Arrival and distance are cumulative from the route start. ArrivalSeconds
// is nil when the solver did not report one.
type OptimizedStep struct {
	JobID          int
	Location       Coordinates
	HasLocation    bool
	ArrivalSeconds *int
	DistanceMeters int
}

// OptimizationResult holds the solver's job visiting order. Steps are kept in
// the order the solver returned them; that order is authoritative.
type OptimizationResult struct {
	Steps                []OptimizedStep
	TotalDurationSeconds int
	TotalDistanceMeters  int
}
