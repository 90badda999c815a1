package platformer

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/platformer/environment"
	"github.com/samuelfneumann/platformer/timestep"
	"github.com/samuelfneumann/platformer/utils/floatutils"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/spatial/r3"
)

type platformerTask interface {
	environment.Task
	registerEnv(*platformer)
}

// Reach implements the goal reaching task. Each step costs a small time
// penalty. Progress towards the active goal is rewarded by the amount
// the best distance to the goal improves, so that the total shaping
// reward collected on the way to a goal telescopes to the spawn
// distance minus the closest distance reached. Collecting a goal earns
// a fixed reward.
//
// The Starter of a Reach task samples the starting yaw of the agent in
// degrees and must return a vector of 1 element.
type Reach struct {
	environment.Starter
	stepLimit environment.StepLimit

	cfg           RewardConfig
	spawnDistance float64
	bestDistance  float64

	env *platformer
}

// NewReach returns a new Reach task. Episodes are cut off once more than
// cutoff steps have been taken.
func NewReach(s environment.Starter, cutoff int, spawnDistance float64,
	cfg RewardConfig) *Reach {
	if spawnDistance <= 0 {
		panic(fmt.Sprintf("newReach: spawn distance must be positive, "+
			"got %v", spawnDistance))
	}

	stepLimit := environment.NewStepLimit(cutoff)
	return &Reach{
		Starter:       s,
		stepLimit:     stepLimit,
		cfg:           cfg,
		spawnDistance: spawnDistance,
		bestDistance:  spawnDistance,
	}
}

// NewYawStarter returns a Starter sampling starting yaws uniformly from
// [0, 360)
func NewYawStarter(seed uint64) environment.Starter {
	return environment.NewUniformStarter([]r1.Interval{{Min: 0, Max: 360}},
		seed)
}

func (r *Reach) registerEnv(env *platformer) {
	r.env = env
}

// ResetShaping restores the best distance to the spawn distance. It is
// called whenever a new goal becomes active.
func (r *Reach) ResetShaping() {
	r.bestDistance = r.spawnDistance
}

// BestDistance returns the closest distance to the active goal credited
// so far
func (r *Reach) BestDistance() float64 {
	return r.bestDistance
}

// Distance returns the distance between the agent and a goal, measured
// in the XZ plane if the task is planar
func (r *Reach) Distance(position r3.Vec, goal *GoalPlatform) float64 {
	offset := r3.Sub(goal.Collectible, position)
	if r.cfg.Planar {
		offset.Y = 0
	}
	return r3.Norm(offset)
}

// Normalized clamps a distance into [0, spawn distance] and divides it by
// the spawn distance
func (r *Reach) Normalized(distance float64) float64 {
	return floatutils.Clip(distance, 0, r.spawnDistance) / r.spawnDistance
}

// StepReward returns the reward for a single step taken by an agent at
// position. If the agent is closer to the goal than it has ever been,
// the improvement is added to the time penalty and becomes the new best
// distance. A nil goal earns only the time penalty.
func (r *Reach) StepReward(position r3.Vec, goal *GoalPlatform) float64 {
	reward := r.cfg.TimePenalty
	if goal == nil {
		return reward
	}

	distance := r.Distance(position, goal)
	if distance < r.bestDistance {
		reward += r.bestDistance - distance
		r.bestDistance = distance
	}
	return reward
}

// CollectReward returns the reward for collecting a goal
func (r *Reach) CollectReward() float64 {
	return r.cfg.CollectReward
}

// TerminalPenalty returns the reward for entering a hazard
func (r *Reach) TerminalPenalty() float64 {
	return r.cfg.HazardPenalty
}

// GetReward returns the step reward of the registered environment's
// current state. The state arguments are ignored since the shaping term
// depends on the agent's position in the world rather than on its
// observation.
func (r *Reach) GetReward(_, _, _ mat.Vector) float64 {
	if r.env == nil {
		return r.cfg.TimePenalty
	}
	return r.StepReward(r.env.position(), r.env.spawner.Active())
}

// End determines if an episode has exceeded its step budget
func (r *Reach) End(t *timestep.TimeStep) bool {
	return r.stepLimit.End(t)
}

// Budget returns the episode step budget
func (r *Reach) Budget() int {
	return r.stepLimit.Budget()
}

// Min returns the minimum reward of a single step
func (r *Reach) Min() float64 {
	return r.cfg.TimePenalty + math.Min(r.cfg.HazardPenalty, 0)
}

// Max returns the maximum reward of a single step that collects at most
// one goal
func (r *Reach) Max() float64 {
	return r.cfg.TimePenalty + r.spawnDistance + r.cfg.CollectReward +
		math.Max(r.cfg.HazardPenalty, 0)
}

// RewardSpec returns the reward specification of the task
func (r *Reach) RewardSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{r.Min()})
	upperBound := mat.NewVecDense(1, []float64{r.Max()})

	return environment.NewSpec(shape, environment.Reward, lowerBound,
		upperBound, environment.Continuous)
}
