package arena

import (
	"math"
	"testing"

	"github.com/samuelfneumann/platformer/environment/platformer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

const dt = platformer.DefaultTimeStep

func newArena(t *testing.T) *Arena {
	a, err := New(DefaultConfig(), nil)
	require.NoError(t, err)
	return a
}

// simulate runs n ticks and returns every event raised
func simulate(a *Arena, n int) []platformer.TriggerEvent {
	var events []platformer.TriggerEvent
	for i := 0; i < n; i++ {
		events = append(events, a.Simulate(dt)...)
	}
	return events
}

func count(events []platformer.TriggerEvent, c platformer.Category) int {
	n := 0
	for _, e := range events {
		if e.Category == c {
			n++
		}
	}
	return n
}

func TestStandOnStartPlatform(t *testing.T) {
	a := newArena(t)

	for i := 0; i < 50; i++ {
		assert.Empty(t, a.Simulate(dt))
		a.Body().SetVelocity(r3.Vec{})
	}
	assert.Equal(t, 0.0, a.Body().Pose().Position.Y)

	g := platformer.NewGroundClassifier(a, platformer.DefaultSlopeLimit)
	state := g.Classify(a.Body().Pose(), platformer.DefaultCapsule())
	assert.True(t, state.Grounded)
}

func TestWalk(t *testing.T) {
	a := newArena(t)
	a.Body().SetVelocity(r3.Vec{X: 5})

	simulate(a, 10)
	p := a.Body().Pose().Position
	assert.InDelta(t, 1.0, p.X, 1e-6)
	assert.InDelta(t, 0.0, p.Z, 1e-6)
	assert.Equal(t, 0.0, p.Y)
}

func TestFallIntoKillPlane(t *testing.T) {
	a := newArena(t)
	a.SetActive(a.StartPlatform(), false)

	_, ok := a.RayCast(r3.Vec{Y: 0.01}, r3.Vec{Y: -1}, 10)
	assert.False(t, ok)

	events := simulate(a, 100)
	assert.Equal(t, 1, count(events, platformer.Hazard))
	assert.Less(t, a.Body().Pose().Position.Y, DefaultConfig().KillHeight)

	// Teleporting re-arms the kill plane
	a.SetActive(a.StartPlatform(), true)
	a.Body().SetPose(platformer.Pose{})
	a.Body().SetVelocity(r3.Vec{})
	assert.Empty(t, simulate(a, 10))
}

func TestCollectibleTrigger(t *testing.T) {
	a := newArena(t)
	id, err := a.Create(platformer.GoalPlatformPrefab, r3.Vec{X: 5, Y: -0.25})
	require.NoError(t, err)
	collectible, ok := a.Collectible(id)
	require.True(t, ok)
	assert.Equal(t, []r3.Vec{{X: 5, Y: 0.75}}, a.Collectibles())

	assert.Empty(t, simulate(a, 3))

	a.Body().SetPose(platformer.Pose{Position: r3.Vec{X: 5}})
	events := simulate(a, 5)
	require.Equal(t, 1, count(events, platformer.Collectible))
	assert.Equal(t, collectible, events[0].Other)

	// Triggers are raised on entry only
	assert.Empty(t, simulate(a, 5))

	a.Destroy(collectible)
	assert.Empty(t, a.Collectibles())
	_, ok = a.Collectible(id)
	assert.False(t, ok)
	assert.True(t, a.Active(id))
}

func TestCollectibleAbove(t *testing.T) {
	a := newArena(t)
	_, err := a.Create(platformer.GoalPlatformPrefab, r3.Vec{X: 5, Y: 3})
	require.NoError(t, err)

	// The agent passes below the collectible
	a.Body().SetPose(platformer.Pose{Position: r3.Vec{X: 5}})
	a.SetActive(a.StartPlatform(), true)
	events := simulate(a, 5)
	assert.Equal(t, 0, count(events, platformer.Collectible))
}

func TestBoundaryHazard(t *testing.T) {
	a := newArena(t)
	a.Body().SetPose(platformer.Pose{Position: r3.Vec{X: 14.9}})

	events := simulate(a, 3)
	assert.GreaterOrEqual(t, count(events, platformer.Hazard), 1)
}

func TestDestroyCascades(t *testing.T) {
	a := newArena(t)
	id, err := a.Create(platformer.GoalPlatformPrefab, r3.Vec{X: 3, Y: -0.25})
	require.NoError(t, err)
	assert.Len(t, a.Platforms(), 2)

	a.Destroy(id)
	assert.Len(t, a.Platforms(), 1)
	assert.Empty(t, a.Collectibles())
	assert.False(t, a.Active(id))

	// Destroying twice is harmless
	a.Destroy(id)
}

func TestCreateUnknownPrefab(t *testing.T) {
	a := newArena(t)
	_, err := a.Create(platformer.Prefab(7), r3.Vec{})
	assert.ErrorIs(t, err, ErrUnknownPrefab)
}

func TestRender(t *testing.T) {
	a := newArena(t)
	_, err := a.Create(platformer.GoalPlatformPrefab, r3.Vec{X: 3, Y: -0.25})
	require.NoError(t, err)

	img := a.Render()
	assert.Equal(t, 600, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())

	path := t.TempDir() + "/arena.png"
	assert.NoError(t, a.SavePNG(path))
}

func TestInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AgentRadius = 0
	_, err := New(cfg, nil)
	assert.Error(t, err)
}

// TestReachGoal walks the agent of a platformer environment straight at
// the active goal until it is collected
func TestReachGoal(t *testing.T) {
	a := newArena(t)
	cfg := platformer.DefaultConfig()
	task := platformer.NewReach(platformer.NewYawStarter(5),
		cfg.Episode.StepBudget, cfg.Spawner.Distance, cfg.Reward)
	env, _, err := platformer.NewContinuous(task, a, cfg, 5, nil)
	require.NoError(t, err)

	goal := env.Goals()[0].Collectible
	pose := a.Body().Pose()
	offset := r3.Sub(goal, pose.Position)
	pose.Yaw = math.Atan2(offset.X, offset.Z) * 180 / math.Pi
	a.Body().SetPose(pose)

	forward := mat.NewVecDense(3, []float64{1, 0, 0})
	total := 0.0
	for i := 0; i < 100 && env.Collected() == 0; i++ {
		step, last, err := env.Step(forward)
		require.NoError(t, err)
		require.False(t, last, "episode ended at step %v", i)
		total += step.Reward
	}

	assert.Equal(t, 1, env.Collected())
	assert.Greater(t, total, 100.0)
	assert.False(t, a.Active(a.StartPlatform()))
	assert.Len(t, env.Goals(), 2)
}
