package platformer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewBounds(t *testing.T) {
	b := NewBounds(30, 40, 10, 5)
	assert.Equal(t, Bounds{X: 4, Z: 6}, b)

	assert.Equal(t, Bounds{}, NewBounds(5, 5, 10, 5))

	assert.True(t, b.Contains(r3.Vec{X: -4, Y: 100, Z: 6}))
	assert.False(t, b.Contains(r3.Vec{X: 4.01}))
	assert.Equal(t, r3.Vec{X: -4, Y: 3, Z: 6}, b.Clamp(r3.Vec{X: -9, Y: 3,
		Z: 7}))

	assert.True(t, b.Feasible(math.Hypot(4, 6)))
	assert.False(t, b.Feasible(7.3))
}

func TestSpawnerHistoryFIFO(t *testing.T) {
	l := &lifecycle{}
	s := NewSpawner(DefaultSpawnerConfig(), Bounds{X: 4, Z: 4}, r3.Vec{}, l,
		rand.NewSource(1), nil)

	const n = 7
	for i := 0; i < n; i++ {
		_, err := s.SpawnNext(Pose{})
		require.NoError(t, err)
		assert.LessOrEqual(t, len(s.History()), HistoryCapacity)
	}

	require.Len(t, l.created, n)
	assert.Equal(t, l.created[:n-HistoryCapacity], l.destroyed)

	history := s.History()
	require.Len(t, history, HistoryCapacity)
	assert.Equal(t, l.created[n-2], history[0].ID)
	assert.Equal(t, l.created[n-1], history[1].ID)
	assert.Equal(t, l.created[n-1], s.Active().ID)
}

func TestSpawnerPlacement(t *testing.T) {
	cfg := DefaultSpawnerConfig()
	parent := r3.Vec{X: 100, Y: 5, Z: -50}
	bounds := Bounds{X: 4, Z: 4}
	s := NewSpawner(cfg, bounds, parent, &lifecycle{}, rand.NewSource(7), nil)

	origins := []r3.Vec{
		{X: 100, Z: -50},
		{X: 103, Y: 2, Z: -47},
		{X: 97, Z: -53},
		{X: 104, Z: -50},
	}
	for i := 0; i < 200; i++ {
		origin := Pose{Position: origins[i%len(origins)]}
		goal, err := s.SpawnNext(origin)
		require.NoError(t, err)

		assert.True(t, bounds.Contains(r3.Sub(goal.Position, parent)),
			"goal %v outside bounds", goal.Position)
		assert.Equal(t, cfg.Height, goal.Position.Y)
		assert.InDelta(t, cfg.Distance, math.Hypot(
			goal.Position.X-origin.Position.X,
			goal.Position.Z-origin.Position.Z,
		), 1e-9)
		assert.Equal(t, r3.Add(goal.Position, cfg.CollectibleOffset),
			goal.Collectible)
	}
}

func TestSpawnerDeterministic(t *testing.T) {
	spawn := func(seed uint64) []r3.Vec {
		s := NewSpawner(DefaultSpawnerConfig(), Bounds{X: 4, Z: 4},
			r3.Vec{}, &lifecycle{}, rand.NewSource(seed), nil)
		var positions []r3.Vec
		for i := 0; i < 10; i++ {
			goal, err := s.SpawnNext(Pose{})
			require.NoError(t, err)
			positions = append(positions, goal.Position)
		}
		return positions
	}

	assert.Equal(t, spawn(42), spawn(42))
	assert.NotEqual(t, spawn(42), spawn(43))
}

func TestSpawnerClampFallback(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	cfg := DefaultSpawnerConfig()
	cfg.MaxAttempts = 10
	bounds := Bounds{X: 1, Z: 1}
	s := NewSpawner(cfg, bounds, r3.Vec{}, &lifecycle{}, rand.NewSource(3),
		zap.New(core))

	goal, err := s.SpawnNext(Pose{})
	require.NoError(t, err)
	assert.True(t, bounds.Contains(goal.Position))
	assert.Equal(t, 1, logs.FilterMessageSnippet("exhausted").Len())
}

func TestSpawnerCreateError(t *testing.T) {
	s := NewSpawner(DefaultSpawnerConfig(), Bounds{X: 4, Z: 4}, r3.Vec{},
		&lifecycle{err: errCreate}, rand.NewSource(1), nil)

	_, err := s.SpawnNext(Pose{})
	assert.ErrorIs(t, err, errCreate)
	assert.Nil(t, s.Active())
	assert.Empty(t, s.History())
}

func TestSpawnerClear(t *testing.T) {
	l := &lifecycle{}
	s := NewSpawner(DefaultSpawnerConfig(), Bounds{X: 4, Z: 4}, r3.Vec{}, l,
		rand.NewSource(1), nil)
	assert.Nil(t, s.Active())

	for i := 0; i < 2; i++ {
		_, err := s.SpawnNext(Pose{})
		require.NoError(t, err)
	}
	s.Clear()

	assert.Nil(t, s.Active())
	assert.Empty(t, s.History())
	assert.Equal(t, l.created, l.destroyed)
}
