// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType describes why an episode ended. Only TimeSteps with StepType
// Last carry a meaningful EndType.
type EndType int

const (
	// NotEnded is the EndType of any TimeStep which is not the last in
	// its episode
	NotEnded EndType = iota

	// StepBudgetExceeded ends an episode once its step counter exceeds
	// the episode's step budget
	StepBudgetExceeded

	// HazardTrigger ends an episode when the agent enters a hazard
	// volume, such as the kill plane below the arena
	HazardTrigger

	// ManualReset ends an episode when the environment is reset while
	// the episode is still running
	ManualReset
)

func (e EndType) String() string {
	switch e {
	case StepBudgetExceeded:
		return "StepBudgetExceeded"
	case HazardTrigger:
		return "HazardTrigger"
	case ManualReset:
		return "ManualReset"
	default:
		return "NotEnded"
	}
}

// TimeStep packages together a single timestep in an environment
type TimeStep struct {
	StepType    StepType
	Reward      float64
	Discount    float64
	Observation *mat.VecDense
	Number      int

	endType EndType
}

// New returns a new TimeStep
func New(t StepType, r, d float64, o *mat.VecDense, n int) TimeStep {
	return TimeStep{StepType: t, Reward: r, Discount: d, Observation: o,
		Number: n}
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

// SetEnd sets the reason for which the episode ended
func (t *TimeStep) SetEnd(e EndType) {
	t.endType = e
}

// EndType returns the reason for which the episode ended
func (t *TimeStep) EndType() EndType {
	return t.endType
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Discount: %.2f  |  " +
		"Step Number:  %v  |  End: %v"

	return fmt.Sprintf(str, t.StepType, t.Reward, t.Discount, t.Number,
		t.endType)
}
