package schedule

import "context"

// State is a step of one request's lifecycle:
//
//	Idle → Validating → Rejected
//	                  → Generating → Succeeded | Failed
//
// Rejected, Succeeded and Failed are terminal.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateRejected
	StateGenerating
	StateSucceeded
	StateFailed
)

var stateNames = [...]string{"idle", "validating", "rejected", "generating", "succeeded", "failed"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no further transition follows s.
func (s State) Terminal() bool {
	return s == StateRejected || s == StateSucceeded || s == StateFailed
}

// Flow chains validation and generation for raw user input.
type Flow struct {
	Service *Service

	// Observe, if set, receives every state entered after Idle, in order.
	Observe func(State)
}

// NewFlow creates a Flow around service.
func NewFlow(service *Service) *Flow {
	return &Flow{Service: service}
}

// Run validates the raw input and, only if it is well-formed, generates a schedule.
func (f *Flow) Run(ctx context.Context, rawCourses, rawHours string) (ScheduleResponse, error) {
	f.enter(StateValidating)
	req, err := ParseRequest(rawCourses, rawHours)
	if err != nil {
		f.enter(StateRejected)
		return ScheduleResponse{}, err
	}
	return f.generate(ctx, req)
}

// RunList is Run for a course list that arrives already split, such as a JSON array.
func (f *Flow) RunList(ctx context.Context, courses []string, rawHours string) (ScheduleResponse, error) {
	f.enter(StateValidating)
	req, err := ParseCourseList(courses, rawHours)
	if err != nil {
		f.enter(StateRejected)
		return ScheduleResponse{}, err
	}
	return f.generate(ctx, req)
}

func (f *Flow) generate(ctx context.Context, req ScheduleRequest) (ScheduleResponse, error) {
	f.enter(StateGenerating)
	resp, err := f.Service.Generate(ctx, req)
	if err != nil {
		f.enter(StateFailed)
		return ScheduleResponse{}, err
	}
	f.enter(StateSucceeded)
	return resp, nil
}

func (f *Flow) enter(s State) {
	f.Service.logger.Debugw("schedule state", "state", s.String())
	if f.Observe != nil {
		f.Observe(s)
	}
}
