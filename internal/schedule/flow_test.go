package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newObservedFlow(model *fakeModel) (*Flow, *[]State) {
	var states []State
	f := NewFlow(newTestService(model))
	f.Observe = func(s State) { states = append(states, s) }
	return f, &states
}

// Scenario 1: valid input, model answers.
func TestFlow_Succeeds(t *testing.T) {
	model := &fakeModel{response: `{"schedule":"Week plan"}`}
	f, states := newObservedFlow(model)

	resp, err := f.Run(context.Background(), "Intro to Python, Web Basics, Data Structures", "10")
	require.NoError(t, err)
	assert.Equal(t, "Week plan", resp.ScheduleText)
	assert.Equal(t, []State{StateValidating, StateGenerating, StateSucceeded}, *states)
	require.Equal(t, 1, model.calls())
	assert.Contains(t, model.prompts[0], "Courses: Intro to Python, Web Basics, Data Structures\n")
	assert.Contains(t, model.prompts[0], "Available Time: 10 hours per week")
}

// Scenario 2: empty course list never reaches the model.
func TestFlow_RejectsEmptyCourses(t *testing.T) {
	model := &fakeModel{response: `{"schedule":"x"}`}
	f, states := newObservedFlow(model)

	_, err := f.Run(context.Background(), "", "10")
	assert.ErrorIs(t, err, ErrNoCourses)
	assert.Equal(t, []State{StateValidating, StateRejected}, *states)
	assert.Zero(t, model.calls())
}

// Scenario 3: hours above the cap.
func TestFlow_RejectsHoursOutOfRange(t *testing.T) {
	model := &fakeModel{response: `{"schedule":"x"}`}
	f, states := newObservedFlow(model)

	_, err := f.Run(context.Background(), "Algebra", "150")
	assert.ErrorIs(t, err, ErrHoursOutOfRange)
	assert.Equal(t, StateRejected, (*states)[len(*states)-1])
	assert.Zero(t, model.calls())
}

// Scenario 4: transport failure surfaces as GenerationError.
func TestFlow_ProviderFailure(t *testing.T) {
	model := &fakeModel{err: errors.New("transport: EOF")}
	f, states := newObservedFlow(model)

	resp, err := f.Run(context.Background(), "Algebra", "5")
	assert.True(t, IsGenerationError(err))
	assert.Equal(t, ScheduleResponse{}, resp)
	assert.Equal(t, []State{StateValidating, StateGenerating, StateFailed}, *states)
}

func TestFlow_RunList(t *testing.T) {
	model := &fakeModel{response: `{"schedule":"ok"}`}
	f, states := newObservedFlow(model)

	resp, err := f.RunList(context.Background(), []string{"Algebra, Part 2", " "}, "3")
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.ScheduleText)
	assert.Equal(t, StateSucceeded, (*states)[len(*states)-1])
	assert.Contains(t, model.prompts[0], "Courses: Algebra, Part 2\n", "array entries are not re-split")

	_, err = f.RunList(context.Background(), []string{" "}, "3")
	assert.ErrorIs(t, err, ErrNoCourses)

	_, err = f.RunList(context.Background(), []string{"Algebra"}, "0")
	assert.ErrorIs(t, err, ErrHoursOutOfRange)
	assert.Equal(t, 1, model.calls())
}

func TestFlow_NilObserver(t *testing.T) {
	f := NewFlow(newTestService(&fakeModel{response: `{"schedule":"ok"}`}))
	_, err := f.Run(context.Background(), "Algebra", "3")
	assert.NoError(t, err)
}

func TestState(t *testing.T) {
	assert.Equal(t, "generating", StateGenerating.String())
	assert.Equal(t, "unknown", State(99).String())

	for _, s := range []State{StateRejected, StateSucceeded, StateFailed} {
		assert.True(t, s.Terminal(), s.String())
	}
	for _, s := range []State{StateIdle, StateValidating, StateGenerating} {
		assert.False(t, s.Terminal(), s.String())
	}
}
