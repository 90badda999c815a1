package platformer

import (
	"fmt"

	"github.com/samuelfneumann/platformer/environment"
	"github.com/samuelfneumann/platformer/timestep"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// DiscreteActions is the number of action branches of the Discrete
// environment
const DiscreteActions int = 3

// Discrete implements the same environment as Continuous, but with
// three discrete action branches:
//
//	1. Forward input ϵ {0, 1, 2}, mapped to {0, 1, -1}
//	2. Turn input ϵ {0, 1, 2}, mapped to {0, 1, -1}
//	3. Jump ϵ {0, 1}, where 1 requests a jump
//
// Discrete implements the environment.Environment interface.
type Discrete struct {
	*platformer
}

// NewDiscrete returns a new platforming environment with discrete
// actions running in world
func NewDiscrete(task *Reach, world World, cfg Config, seed uint64,
	logger *zap.Logger) (*Discrete, timestep.TimeStep, error) {
	p, step, err := newPlatformer(task, world, cfg, seed, logger)
	if err != nil {
		return nil, timestep.TimeStep{}, err
	}
	return &Discrete{p}, step, nil
}

// ActionSpec returns the action specification of the environment
func (d *Discrete) ActionSpec() environment.Spec {
	shape := mat.NewVecDense(DiscreteActions, nil)
	lowerBound := mat.NewVecDense(DiscreteActions, []float64{0., 0., 0.})
	upperBound := mat.NewVecDense(DiscreteActions, []float64{2., 2., 1.})

	return environment.NewSpec(shape, environment.Action, lowerBound,
		upperBound, environment.Discrete)
}

// Step takes one environmental step given some action
func (d *Discrete) Step(a *mat.VecDense) (timestep.TimeStep, bool, error) {
	if a.Len() != DiscreteActions {
		return timestep.TimeStep{}, true, fmt.Errorf("step: actions "+
			"should be %v-dimensional, got %v", DiscreteActions, a.Len())
	}

	intent := MotionIntent{
		Forward: branch(a.AtVec(0)),
		Turn:    branch(a.AtVec(1)),
		Jump:    int(a.AtVec(2)) > 0,
	}
	return d.step(intent, a)
}

// branch maps a discrete input to a signed input. Values above 1 map to
// -1, and the result is clipped to [-1, 1] when the intent is applied.
func branch(v float64) float64 {
	if int(v) > 1 {
		return -1
	}
	return float64(int(v))
}
