// Package schedule turns a list of course names and a weekly-hours budget
// into a study schedule written by a generative model.
//
// Input is validated into a ScheduleRequest before anything else happens;
// Service.Generate makes exactly one model call per request and returns
// either a ScheduleResponse with non-empty text or a *GenerationError.
package schedule

// Bounds for ScheduleRequest.AvailableHours, inclusive.
const (
	MinHours = 1
	MaxHours = 100
)

// ScheduleRequest is validated input for one generation. Build it with
// ParseRequest or NewRequest; the zero value is rejected by Service.
type ScheduleRequest struct {
	courses        []string
	availableHours float64
	valid          bool
}

// Courses returns a copy of the course names in entry order.
func (r ScheduleRequest) Courses() []string {
	out := make([]string, len(r.courses))
	copy(out, r.courses)
	return out
}

// AvailableHours returns the weekly study budget in hours.
func (r ScheduleRequest) AvailableHours() float64 {
	return r.availableHours
}

// Valid reports whether the request came out of the validator.
func (r ScheduleRequest) Valid() bool {
	return r.valid
}

// ScheduleResponse carries the model-generated schedule text.
type ScheduleResponse struct {
	ScheduleText string `json:"scheduleText"`
}
