package environment

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distuv"
)

// UniformStarter samples starting states whose features are each drawn
// independently and uniformly from an interval. Degenerate intervals
// (Min == Max) always produce the same feature value.
type UniformStarter struct {
	bounds []r1.Interval
	seed   uint64
	rand   distuv.Uniform
}

// NewUniformStarter returns a new UniformStarter sampling feature i
// from bounds[i]
func NewUniformStarter(bounds []r1.Interval, seed uint64) *UniformStarter {
	for i, b := range bounds {
		if b.Min > b.Max {
			panic(fmt.Sprintf("newUniformStarter: bound %v has min %v > "+
				"max %v", i, b.Min, b.Max))
		}
	}

	source := rand.NewSource(seed)
	rng := distuv.Uniform{Min: 0, Max: 1, Src: source}

	return &UniformStarter{bounds, seed, rng}
}

// Start returns a starting state vector
func (u *UniformStarter) Start() *mat.VecDense {
	start := make([]float64, len(u.bounds))
	for i, b := range u.bounds {
		start[i] = b.Min + (b.Max-b.Min)*u.rand.Rand()
	}
	return mat.NewVecDense(len(start), start)
}

// Seed returns the seed of the starter's random source
func (u *UniformStarter) Seed() uint64 {
	return u.seed
}
