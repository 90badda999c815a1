package envconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/platformer/environment/platformer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
actions: discrete
platformer:
  spawner:
    distance: 4
  reward:
    hazard_penalty: -1
  episode:
    step_budget: 500
arena:
  region_x: 40
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, Discrete, cfg.Actions)
	assert.Equal(t, 4.0, cfg.Platformer.Spawner.Distance)
	assert.Equal(t, -1.0, cfg.Platformer.Reward.HazardPenalty)
	assert.Equal(t, 500, cfg.Platformer.Episode.StepBudget)
	assert.Equal(t, 40.0, cfg.Arena.RegionX)

	// Untouched fields keep their defaults
	def := Default()
	assert.Equal(t, def.Platformer.Controller, cfg.Platformer.Controller)
	assert.Equal(t, def.Arena.RegionZ, cfg.Arena.RegionZ)
	assert.Equal(t, def.Platformer.Reward.CollectReward,
		cfg.Platformer.Reward.CollectReward)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("actions: [1, 2"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Platformer.Reward.Planar = true
	cfg.Arena.KillHeight = -12

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, cfg.WriteYAML(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	warnings, err := Default().Validate()
	require.NoError(t, err)
	assert.Empty(t, warnings)

	cfg := Default()
	cfg.Actions = "analog"
	_, err = cfg.Validate()
	assert.Error(t, err)

	cfg = Default()
	cfg.Platformer.Episode.TimeStep = -1
	_, err = cfg.Validate()
	assert.Error(t, err)

	cfg = Default()
	cfg.Arena.RegionX = 0
	_, err = cfg.Validate()
	assert.Error(t, err)

	// Spawn distance beyond the bounds on every heading
	cfg = Default()
	cfg.Platformer.Spawner.Distance = 10
	warnings, err = cfg.Validate()
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "spawn distance")

	cfg = Default()
	cfg.Platformer.Reward.HazardPenalty = 5
	cfg.Platformer.Spawner.Height = 3
	warnings, err = cfg.Validate()
	require.NoError(t, err)
	assert.Len(t, warnings, 2)
}

func TestCreate(t *testing.T) {
	for _, actions := range []Actions{Continuous, Discrete} {
		cfg := Default()
		cfg.Actions = actions

		env, world, step, err := cfg.Create(1, nil)
		require.NoError(t, err, "actions %v", actions)
		assert.True(t, step.First())
		assert.Len(t, world.Platforms(), 2)
		assert.Equal(t, platformer.ObservationSize, step.Observation.Len())

		action := mat.NewVecDense(env.ActionSpec().Shape.Len(), nil)
		_, _, err = env.Step(action)
		assert.NoError(t, err)
	}

	_, ok := mustCreate(t, Discrete).(*platformer.Discrete)
	assert.True(t, ok)
	_, ok = mustCreate(t, Continuous).(*platformer.Continuous)
	assert.True(t, ok)

	cfg := Default()
	cfg.Arena.AgentHeight = 0
	_, _, _, err := cfg.Create(1, nil)
	assert.Error(t, err)
}

func mustCreate(t *testing.T, actions Actions) interface{} {
	cfg := Default()
	cfg.Actions = actions
	env, _, _, err := cfg.Create(1, nil)
	require.NoError(t, err)
	return env
}

// The first goal of an episode is spawned on a heading drawn
// independently of the starting yaw
func TestGoalBearingIndependentOfStartYaw(t *testing.T) {
	ahead, behind, episodes := 0, 0, 0
	for seed := uint64(1); seed <= 20; seed++ {
		env, world, _, err := Default().Create(seed, nil)
		require.NoError(t, err)
		c := env.(*platformer.Continuous)

		for i := 0; i < 3; i++ {
			_, err := c.Reset()
			require.NoError(t, err)

			pose := world.Body().Pose()
			toGoal := r3.Sub(c.Goals()[0].Position, pose.Position)
			toGoal.Y = 0
			cos := r3.Cos(pose.Forward(), toGoal)

			episodes++
			if cos > 0.999 {
				ahead++
			}
			if cos < 0 {
				behind++
			}
		}
	}
	assert.Less(t, ahead, episodes/4, "goals spawned dead ahead")
	assert.Positive(t, behind)
}
