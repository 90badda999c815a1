package platformer

import (
	"testing"

	"github.com/samuelfneumann/platformer/environment"
	"github.com/samuelfneumann/platformer/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEpisodeStepBudget(t *testing.T) {
	e := NewEpisode(environment.NewStepLimit(5), nil)
	assert.Equal(t, Idle, e.Phase())

	e.Begin()
	for i := 1; i <= 5; i++ {
		step := timestep.New(timestep.Mid, 0, 1, nil, 0)
		e.Tick(&step)
		assert.Equal(t, i, step.Number)
		assert.False(t, e.CheckBudget(&step), "tick %v", i)
		assert.Equal(t, Running, e.Phase())
	}

	step := timestep.New(timestep.Mid, 0, 1, nil, 0)
	e.Tick(&step)
	require.True(t, e.CheckBudget(&step))
	assert.True(t, step.Last())
	assert.Equal(t, Terminated, e.Phase())
	assert.Equal(t, timestep.StepBudgetExceeded, e.Reason())
	assert.Equal(t, 0, e.Steps())
}

func TestEpisodeFirstTerminationWins(t *testing.T) {
	e := NewEpisode(environment.NewStepLimit(5), nil)
	assert.False(t, e.Terminate(timestep.HazardTrigger))
	assert.Equal(t, Idle, e.Phase())

	e.Begin()
	assert.True(t, e.Terminate(timestep.HazardTrigger))
	assert.False(t, e.Terminate(timestep.HazardTrigger))
	assert.False(t, e.Terminate(timestep.ManualReset))
	assert.Equal(t, timestep.HazardTrigger, e.Reason())

	// Budget checks and ticks are no-ops once terminated
	step := timestep.New(timestep.Mid, 0, 1, nil, 99)
	e.Tick(&step)
	assert.False(t, e.CheckBudget(&step))
	assert.Equal(t, 99, step.Number)
	assert.Equal(t, timestep.HazardTrigger, e.Reason())

	e.Begin()
	assert.Equal(t, Running, e.Phase())
	assert.Equal(t, timestep.NotEnded, e.Reason())
}

func TestEpisodeClear(t *testing.T) {
	e := NewEpisode(environment.NewStepLimit(5), nil)
	e.Clear()
	assert.Equal(t, Idle, e.Phase())

	e.Begin()
	e.Clear()
	assert.Equal(t, Running, e.Phase())

	require.True(t, e.Terminate(timestep.HazardTrigger))
	e.Clear()
	assert.Equal(t, Idle, e.Phase())
	assert.Equal(t, timestep.HazardTrigger, e.Reason())
	assert.False(t, e.Terminate(timestep.ManualReset))
}

func TestResetPassesThroughIdle(t *testing.T) {
	world := newFakeWorld()
	env, _ := newTestContinuous(t, world, DefaultConfig())

	world.events = [][]TriggerEvent{{{Category: Hazard}}}
	_, _, err := env.Step(noop)
	require.NoError(t, err)
	require.Equal(t, Terminated, env.Episode().Phase())

	// A failing reset stops after clearing the finished episode
	world.createErr = errCreate
	_, err = env.Reset()
	require.Error(t, err)
	assert.Equal(t, Idle, env.Episode().Phase())
	assert.Equal(t, timestep.HazardTrigger, env.Episode().Reason())

	world.createErr = nil
	_, err = env.Reset()
	require.NoError(t, err)
	assert.Equal(t, Running, env.Episode().Phase())
}
