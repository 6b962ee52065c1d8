package domain

// Represents a single location to visit.
// A Stop's identity is its original row position; label and service duration are
// metadata carried unchanged from the input table into the final itinerary.
type Stop struct {
	Index                  int
	Coordinates            Coordinates
	Label                  string
	ServiceDurationMinutes *float64
}

// ServiceSeconds converts the optional stop time into whole seconds for the solver.
func (s Stop) ServiceSeconds() int {
	if s.ServiceDurationMinutes == nil {
		return 0
	}
	return int(*s.ServiceDurationMinutes*60 + 0.5)
}
