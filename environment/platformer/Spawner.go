package platformer

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/platformer/utils/floatutils"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// HistoryCapacity is the number of goal platforms kept alive at once
	HistoryCapacity int = 2

	DefaultMaxSpawnAttempts int = 1000
)

// Bounds are the half-extents, in the local space of the spawn parent,
// that goal platform offsets must lie within
type Bounds struct {
	X float64
	Z float64
}

// NewBounds derives spawn bounds from the size of the reset region.
// The inset is subtracted from each region dimension and the result
// divided by scale. Negative results are clamped to 0.
func NewBounds(regionX, regionZ, inset, scale float64) Bounds {
	return Bounds{
		X: math.Max((regionX-inset)/scale, 0),
		Z: math.Max((regionZ-inset)/scale, 0),
	}
}

// Contains returns whether a local offset lies within the bounds
func (b Bounds) Contains(local r3.Vec) bool {
	return math.Abs(local.X) <= b.X && math.Abs(local.Z) <= b.Z
}

// Clamp clamps the X and Z components of a local offset into the bounds
func (b Bounds) Clamp(local r3.Vec) r3.Vec {
	local.X = floatutils.ClipInterval(local.X, r1.Interval{Min: -b.X, Max: b.X})
	local.Z = floatutils.ClipInterval(local.Z, r1.Interval{Min: -b.Z, Max: b.Z})
	return local
}

// Feasible returns whether some heading places a spawn at distance d
// from the parent origin inside the bounds
func (b Bounds) Feasible(d float64) bool {
	return d <= math.Hypot(b.X, b.Z)
}

// GoalPlatform is a spawned platform carrying a collectible
type GoalPlatform struct {
	ID          Handle
	Position    r3.Vec
	Collectible r3.Vec
}

// Spawner places goal platforms at a fixed distance from the agent in
// a random direction and keeps the most recent HistoryCapacity of them
// alive. The most recently spawned platform is the active goal.
type Spawner struct {
	cfg       SpawnerConfig
	bounds    Bounds
	parent    r3.Vec
	lifecycle Lifecycle
	heading   distuv.Uniform
	logger    *zap.Logger

	history []GoalPlatform
}

// NewSpawner returns a new Spawner. Spawn offsets are measured relative
// to parent and must lie within bounds. Headings are drawn from src.
func NewSpawner(cfg SpawnerConfig, bounds Bounds, parent r3.Vec,
	lifecycle Lifecycle, src rand.Source, logger *zap.Logger) *Spawner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = DefaultMaxSpawnAttempts
	}

	return &Spawner{
		cfg:       cfg,
		bounds:    bounds,
		parent:    parent,
		lifecycle: lifecycle,
		heading:   distuv.Uniform{Min: 0, Max: 360, Src: src},
		logger:    logger,
		history:   make([]GoalPlatform, 0, HistoryCapacity),
	}
}

// Bounds returns the spawn bounds
func (s *Spawner) Bounds() Bounds {
	return s.bounds
}

// Distance returns the spawn distance
func (s *Spawner) Distance() float64 {
	return s.cfg.Distance
}

// SpawnNext creates a new goal platform near origin and makes it the
// active goal. If the history is full, the oldest platform is destroyed
// before the new one is created.
//
// Headings are redrawn until the spawn offset lies within the bounds.
// If no heading is accepted within the configured number of attempts,
// the last candidate is clamped into the bounds.
func (s *Spawner) SpawnNext(origin Pose) (GoalPlatform, error) {
	if len(s.history) >= HistoryCapacity {
		s.evict()
	}

	base := r3.Vec{X: origin.Position.X, Y: s.cfg.Height,
		Z: origin.Position.Z}

	var local r3.Vec
	accepted := false
	for attempt := 0; attempt < s.cfg.MaxAttempts; attempt++ {
		candidate := r3.Add(base, r3.Scale(s.cfg.Distance,
			Heading(s.heading.Rand())))
		local = r3.Sub(candidate, s.parent)
		if s.bounds.Contains(local) {
			accepted = true
			break
		}
	}
	if !accepted {
		s.logger.Warn("spawn attempts exhausted, clamping into bounds",
			zap.Int("attempts", s.cfg.MaxAttempts),
			zap.Float64("distance", s.cfg.Distance),
			zap.Float64("boundX", s.bounds.X),
			zap.Float64("boundZ", s.bounds.Z),
		)
		local = s.bounds.Clamp(local)
	}

	position := r3.Add(s.parent, local)
	id, err := s.lifecycle.Create(GoalPlatformPrefab, position)
	if err != nil {
		return GoalPlatform{}, fmt.Errorf("spawnNext: could not create "+
			"goal platform: %w", err)
	}

	goal := GoalPlatform{
		ID:          id,
		Position:    position,
		Collectible: r3.Add(position, s.cfg.CollectibleOffset),
	}
	s.history = append(s.history, goal)

	s.logger.Debug("spawned goal platform",
		zap.Stringer("id", id),
		zap.Float64("x", position.X),
		zap.Float64("z", position.Z),
		zap.Int("live", len(s.history)),
	)
	return goal, nil
}

// evict destroys and removes the oldest platform in the history
func (s *Spawner) evict() {
	oldest := s.history[0]
	s.lifecycle.Destroy(oldest.ID)

	copy(s.history, s.history[1:])
	s.history = s.history[:len(s.history)-1]
}

// Active returns the active goal platform, or nil if there is none
func (s *Spawner) Active() *GoalPlatform {
	if len(s.history) == 0 {
		return nil
	}
	goal := s.history[len(s.history)-1]
	return &goal
}

// Clear destroys every platform in the history
func (s *Spawner) Clear() {
	for len(s.history) > 0 {
		s.evict()
	}
}

// History returns the live platforms, oldest first
func (s *Spawner) History() []GoalPlatform {
	history := make([]GoalPlatform, len(s.history))
	copy(history, s.history)
	return history
}
