package environment

import "github.com/samuelfneumann/platformer/timestep"

// StepLimit implements the Ender interface to end episodes once the
// number of steps taken exceeds a step budget
type StepLimit struct {
	episodeSteps int
}

// NewStepLimit creates and returns a new step limit
func NewStepLimit(episodeSteps int) StepLimit {
	if episodeSteps < 0 {
		panic("newStepLimit: step budget must be non-negative")
	}
	return StepLimit{episodeSteps}
}

// Budget returns the number of steps allowed in an episode
func (s StepLimit) Budget() int {
	return s.episodeSteps
}

// End determines whether or not the current episode should be ended,
// returning a boolean to indicate episode termination. The episode is
// ended on the first step whose number exceeds the budget, so a budget
// of n allows n complete steps. If the episode should be ended End()
// will modify the timestep so that its StepType field is timestep.Last
// and its EndType is timestep.StepBudgetExceeded.
func (s StepLimit) End(t *timestep.TimeStep) bool {
	if t.Number > s.episodeSteps {
		t.StepType = timestep.Last
		t.SetEnd(timestep.StepBudgetExceeded)
		return true
	}
	return false
}
