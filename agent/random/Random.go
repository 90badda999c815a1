// Package random implements an agent which selects actions uniformly
// at random within the action bounds of an environment
package random

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/platformer/agent"
	"github.com/samuelfneumann/platformer/environment"
	"github.com/samuelfneumann/platformer/timestep"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

func init() {
	agent.Register(agent.Random, func(env environment.Environment,
		seed uint64) (agent.Agent, error) {
		return New(env.ActionSpec(), seed)
	})
}

// Random selects each action feature independently and uniformly from
// the bounds of an action specification. Discrete features are sampled
// uniformly from the integers within their bounds. Random does not
// learn.
type Random struct {
	spec environment.Spec
	rng  distuv.Uniform
}

// New returns a new Random agent for the action specification spec
func New(spec environment.Spec, seed uint64) (*Random, error) {
	if spec.Type != environment.Action {
		return nil, fmt.Errorf("new: spec must be an action spec, got %v",
			spec.Type)
	}
	for i := 0; i < spec.Shape.Len(); i++ {
		lo, hi := spec.LowerBound.AtVec(i), spec.UpperBound.AtVec(i)
		if math.IsInf(lo, 0) || math.IsInf(hi, 0) || lo > hi {
			return nil, fmt.Errorf("new: action %v has unusable bounds "+
				"[%v, %v]", i, lo, hi)
		}
	}

	src := rand.NewSource(seed)
	return &Random{
		spec: spec,
		rng:  distuv.Uniform{Min: 0, Max: 1, Src: src},
	}, nil
}

// SelectAction returns a random action
func (r *Random) SelectAction(timestep.TimeStep) *mat.VecDense {
	n := r.spec.Shape.Len()
	action := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		lo, hi := r.spec.LowerBound.AtVec(i), r.spec.UpperBound.AtVec(i)
		if r.spec.Cardinality == environment.Discrete {
			count := math.Floor(hi) - math.Ceil(lo) + 1
			v := math.Ceil(lo) + math.Floor(r.rng.Rand()*count)
			action.SetVec(i, math.Min(v, math.Floor(hi)))
			continue
		}
		action.SetVec(i, lo+(hi-lo)*r.rng.Rand())
	}
	return action
}

// Step performs no update
func (r *Random) Step() error { return nil }

// Observe ignores the transition
func (r *Random) Observe(mat.Vector, timestep.TimeStep) error { return nil }

// ObserveFirst ignores the first timestep of an episode
func (r *Random) ObserveFirst(timestep.TimeStep) error { return nil }

// EndEpisode does nothing
func (r *Random) EndEpisode() {}
