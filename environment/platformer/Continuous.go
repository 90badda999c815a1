package platformer

import (
	"fmt"

	"github.com/samuelfneumann/platformer/environment"
	"github.com/samuelfneumann/platformer/timestep"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// ContinuousActions is the number of action dimensions of the
// Continuous environment
const ContinuousActions int = 3

// Continuous implements a platforming environment. An agent stands on a
// start platform in a 3D world and must reach a goal platform spawned
// at a fixed distance in a random direction. Each time the agent
// touches the collectible floating above the active goal platform, a
// new goal platform is spawned relative to the agent and the start
// platform is hidden. At most two goal platforms exist at any time, so
// the agent can always stand on the platform it just reached. Falling
// into a hazard, such as the kill plane below the arena, ends the
// episode.
//
// State observations are vectors consisting of the following features
// in the following order:
//
//	1. The distance from the agent to the active collectible, clamped
//	   to the spawn distance and divided by it
//	   Bounds: [0, 1]
//	2. The x component of the unit vector from the agent to the
//	   active collectible
//	   Bounds: [-1, 1]
//	3. The y component of that vector
//	   Bounds: [-1, 1]
//	4. The z component of that vector
//	   Bounds: [-1, 1]
//	5. Whether the agent is grounded
//	   Bounds: feature in the set {0, 1}
//
// Actions are 3-dimensional. The first coordinate is the forward
// input and the second is the turn input, both continuous and clipped
// to [-1, 1]. The third coordinate requests a jump if it is greater
// than 0.
//
// Continuous implements the environment.Environment interface.
type Continuous struct {
	*platformer
}

// NewContinuous returns a new platforming environment with continuous
// actions running in world
func NewContinuous(task *Reach, world World, cfg Config, seed uint64,
	logger *zap.Logger) (*Continuous, timestep.TimeStep, error) {
	p, step, err := newPlatformer(task, world, cfg, seed, logger)
	if err != nil {
		return nil, timestep.TimeStep{}, err
	}
	return &Continuous{p}, step, nil
}

// ActionSpec returns the action specification of the environment
func (c *Continuous) ActionSpec() environment.Spec {
	shape := mat.NewVecDense(ContinuousActions, nil)
	lowerBound := mat.NewVecDense(ContinuousActions, []float64{-1., -1., 0.})
	upperBound := mat.NewVecDense(ContinuousActions, []float64{1., 1., 1.})

	return environment.NewSpec(shape, environment.Action, lowerBound,
		upperBound, environment.Mixed)
}

// Step takes one environmental step given some action
func (c *Continuous) Step(a *mat.VecDense) (timestep.TimeStep, bool,
	error) {
	if a.Len() != ContinuousActions {
		return timestep.TimeStep{}, true, fmt.Errorf("step: actions "+
			"should be %v-dimensional, got %v", ContinuousActions, a.Len())
	}

	intent := MotionIntent{
		Forward: a.AtVec(0),
		Turn:    a.AtVec(1),
		Jump:    a.AtVec(2) > 0,
	}
	return c.step(intent, a)
}
