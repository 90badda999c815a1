// Package environment outlines the interfaces and structs needed to
// implement concrete environments
package environment

import (
	"errors"

	"github.com/samuelfneumann/platformer/timestep"
	"gonum.org/v1/gonum/mat"
)

// ErrEpisodeOver is returned when an environment is stepped after its
// episode has ended and before it has been reset
var ErrEpisodeOver = errors.New("episode is over, environment must be reset")

// Starter implements a distribution of starting states and samples starting
// states for environments
type Starter interface {
	Start() *mat.VecDense
}

// Ender determines when an episode ends. If an episode should end, the
// Ender adjusts the argument TimeStep so that its StepType is
// timestep.Last and records why the episode ended.
type Ender interface {
	End(*timestep.TimeStep) bool
}

// Task implements the reward scheme for taking actions in some
// environment, as well as the starting state distribution and episode
// termination conditions
type Task interface {
	Starter
	Ender
	GetReward(state, action, nextState mat.Vector) float64
	Min() float64
	Max() float64
	RewardSpec() Spec
}

// Environment implements a simualted environment, which includes a Task to
// complete
type Environment interface {
	Task
	Reset() (timestep.TimeStep, error) // Resets between episodes
	Step(action *mat.VecDense) (timestep.TimeStep, bool, error)
	CurrentTimeStep() timestep.TimeStep
	DiscountSpec() Spec
	ObservationSpec() Spec
	ActionSpec() Spec
}
