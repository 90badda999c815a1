package environment

import (
	"testing"

	"github.com/samuelfneumann/platformer/timestep"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

func TestStepLimit(t *testing.T) {
	limit := NewStepLimit(3)
	assert.Equal(t, 3, limit.Budget())

	step := timestep.New(timestep.Mid, 0, 1, nil, 3)
	assert.False(t, limit.End(&step))
	assert.Equal(t, timestep.NotEnded, step.EndType())

	step.Number = 4
	assert.True(t, limit.End(&step))
	assert.True(t, step.Last())
	assert.Equal(t, timestep.StepBudgetExceeded, step.EndType())

	assert.Panics(t, func() { NewStepLimit(-1) })
}

func TestUniformStarter(t *testing.T) {
	bounds := []r1.Interval{{Min: 0, Max: 360}, {Min: 2, Max: 2}}
	a := NewUniformStarter(bounds, 5)
	b := NewUniformStarter(bounds, 5)
	assert.Equal(t, uint64(5), a.Seed())

	for i := 0; i < 100; i++ {
		start := a.Start()
		assert.Equal(t, start, b.Start())
		assert.GreaterOrEqual(t, start.AtVec(0), 0.0)
		assert.Less(t, start.AtVec(0), 360.0)
		assert.Equal(t, 2.0, start.AtVec(1))
	}

	assert.Panics(t, func() {
		NewUniformStarter([]r1.Interval{{Min: 1, Max: 0}}, 0)
	})
}

func TestSpecContains(t *testing.T) {
	spec := NewSpec(mat.NewVecDense(2, nil), Action,
		mat.NewVecDense(2, []float64{-1, 0}),
		mat.NewVecDense(2, []float64{1, 1}), Mixed)

	assert.True(t, spec.Contains(mat.NewVecDense(2, []float64{-1, 1})))
	assert.False(t, spec.Contains(mat.NewVecDense(2, []float64{0, 2})))
	assert.False(t, spec.Contains(mat.NewVecDense(1, []float64{0})))

	assert.Panics(t, func() {
		NewSpec(mat.NewVecDense(2, nil), Action, mat.NewVecDense(1, nil),
			mat.NewVecDense(2, nil), Continuous)
	})
	assert.Equal(t, "Action", Action.String())
	assert.Equal(t, "Observation", Observation.String())
}
