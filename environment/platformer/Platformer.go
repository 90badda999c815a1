package platformer

import (
	"fmt"

	"github.com/samuelfneumann/platformer/environment"
	"github.com/samuelfneumann/platformer/timestep"
	"github.com/samuelfneumann/platformer/utils/floatutils"
	"github.com/samuelfneumann/platformer/utils/seedutils"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// ObservationSize is the number of features in a state observation
const ObservationSize int = 5

// platformer implements the shared logic of the Continuous and Discrete
// environments. Each step the ground below the agent is classified, the
// decoded action is applied to the agent's body, the step reward is
// accrued, and the world is simulated. Trigger events raised by the
// world during the tick are then handled in order: collectibles earn the
// collect reward and rotate the goal, hazards end the episode.
type platformer struct {
	*Reach

	world      World
	episode    *Episode
	ground     *GroundClassifier
	controller *Controller
	spawner    *Spawner

	capsule  Capsule
	start    r3.Vec
	dt       float64
	discount float64

	grounded  bool
	collected int
	prevStep  timestep.TimeStep

	logger *zap.Logger
}

func newPlatformer(task *Reach, world World, cfg Config, seed uint64,
	logger *zap.Logger) (*platformer, timestep.TimeStep, error) {
	if err := cfg.Validate(); err != nil {
		return nil, timestep.TimeStep{}, fmt.Errorf("newPlatformer: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	region := world.Region()
	bounds := NewBounds(region.SizeX, region.SizeZ, cfg.Spawner.Inset,
		cfg.Spawner.Scale)
	if !bounds.Feasible(cfg.Spawner.Distance) {
		logger.Warn("spawn distance exceeds spawn bounds on every heading",
			zap.Float64("distance", cfg.Spawner.Distance),
			zap.Float64("boundX", bounds.X),
			zap.Float64("boundZ", bounds.Z),
		)
	}

	p := &platformer{
		Reach:      task,
		world:      world,
		episode:    NewEpisode(task, logger),
		ground:     NewGroundClassifier(world, cfg.Controller.SlopeLimit),
		controller: NewController(cfg.Controller),
		spawner: NewSpawner(cfg.Spawner, bounds, region.Origin, world,
			rand.NewSource(seedutils.Derive(seed, "spawner")), logger),
		capsule:  cfg.Controller.Capsule,
		start:    cfg.Episode.Start,
		dt:       cfg.Episode.TimeStep,
		discount: cfg.Episode.Discount,
		logger:   logger,
	}
	task.registerEnv(p)

	step, err := p.Reset()
	if err != nil {
		return nil, timestep.TimeStep{}, fmt.Errorf("newPlatformer: %w", err)
	}
	return p, step, nil
}

// Reset begins a new episode. A running episode is first terminated
// with timestep.ManualReset.
func (p *platformer) Reset() (timestep.TimeStep, error) {
	if p.episode.Running() {
		p.episode.Terminate(timestep.ManualReset)
	}
	p.episode.Clear()

	start := p.Start()
	if start.Len() != 1 {
		return timestep.TimeStep{}, fmt.Errorf("reset: starter must "+
			"return 1 feature, got %v", start.Len())
	}

	p.world.SetActive(p.world.StartPlatform(), true)

	body := p.world.Body()
	body.SetPose(Pose{
		Position: p.start,
		Yaw:      floatutils.WrapDegrees(start.AtVec(0)),
	})
	body.SetVelocity(r3.Vec{})

	p.spawner.Clear()
	if _, err := p.spawner.SpawnNext(body.Pose()); err != nil {
		return timestep.TimeStep{}, fmt.Errorf("reset: %w", err)
	}
	p.ResetShaping()
	p.collected = 0

	p.episode.Begin()
	p.grounded = p.ground.Classify(body.Pose(), p.capsule).Grounded

	step := timestep.New(timestep.First, 0, p.discount, p.observe(), 0)
	p.prevStep = step
	return step, nil
}

// step takes one environmental step with the given intent. The action
// that the intent was decoded from is only passed on to the task.
func (p *platformer) step(intent MotionIntent,
	action *mat.VecDense) (timestep.TimeStep, bool, error) {
	if !p.episode.Running() {
		return timestep.TimeStep{}, true, fmt.Errorf("step: %w",
			environment.ErrEpisodeOver)
	}

	t := timestep.New(timestep.Mid, 0, p.discount, nil, 0)
	p.episode.Tick(&t)

	body := p.world.Body()
	p.grounded = p.ground.Classify(body.Pose(), p.capsule).Grounded
	p.controller.Apply(body, intent, p.grounded, p.dt)
	reward := p.GetReward(p.prevStep.Observation, action, nil)

	for _, event := range p.world.Simulate(p.dt) {
		if !p.episode.Running() {
			break
		}

		switch event.Category {
		case Collectible:
			r, err := p.collect(event.Other)
			if err != nil {
				return timestep.TimeStep{}, true, fmt.Errorf("step: %w", err)
			}
			reward += r

		case Hazard:
			if p.episode.Terminate(timestep.HazardTrigger) {
				t.StepType = timestep.Last
				t.SetEnd(timestep.HazardTrigger)
				reward += p.TerminalPenalty()
			}
		}
	}
	p.episode.CheckBudget(&t)

	p.grounded = p.ground.Classify(body.Pose(), p.capsule).Grounded
	t.Reward = reward
	t.Observation = p.observe()
	p.prevStep = t

	return t, t.Last(), nil
}

// collect handles the agent entering a collectible. The collectible is
// destroyed and a new goal platform spawned, which becomes the active
// goal. The first collection of an episode hides the start platform.
func (p *platformer) collect(collectible Handle) (float64, error) {
	if p.collected == 0 {
		p.world.SetActive(p.world.StartPlatform(), false)
	}
	p.collected++
	p.world.Destroy(collectible)

	if _, err := p.spawner.SpawnNext(p.world.Body().Pose()); err != nil {
		return 0, fmt.Errorf("collect: %w", err)
	}
	p.ResetShaping()

	p.logger.Debug("goal collected",
		zap.Int("collected", p.collected),
		zap.Int("step", p.episode.Steps()),
	)
	return p.CollectReward(), nil
}

// observe returns the current state observation. An observation
// consists of the normalized distance to the active goal, the unit
// direction from the agent to the goal, and whether the agent is
// grounded. With no active goal, the distance and direction features
// are 0.
func (p *platformer) observe() *mat.VecDense {
	obs := mat.NewVecDense(ObservationSize, nil)
	if p.grounded {
		obs.SetVec(4, 1)
	}

	goal := p.spawner.Active()
	if goal == nil {
		return obs
	}

	position := p.position()
	offset := r3.Sub(goal.Collectible, position)
	distance := r3.Norm(offset)
	obs.SetVec(0, p.Normalized(distance))
	if distance > 0 {
		direction := r3.Scale(1/distance, offset)
		obs.SetVec(1, direction.X)
		obs.SetVec(2, direction.Y)
		obs.SetVec(3, direction.Z)
	}
	return obs
}

// position returns the position of the agent
func (p *platformer) position() r3.Vec {
	return p.world.Body().Pose().Position
}

// Grounded returns whether the agent was grounded at the end of the
// last step
func (p *platformer) Grounded() bool {
	return p.grounded
}

// Collected returns the number of goals collected this episode
func (p *platformer) Collected() int {
	return p.collected
}

// Goals returns the live goal platforms, oldest first
func (p *platformer) Goals() []GoalPlatform {
	return p.spawner.History()
}

// Episode returns the current episode
func (p *platformer) Episode() *Episode {
	return p.episode
}

// CurrentTimeStep returns the last TimeStep generated by the
// environment
func (p *platformer) CurrentTimeStep() timestep.TimeStep {
	return p.prevStep
}

// DiscountSpec returns the discount specification of the environment
func (p *platformer) DiscountSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{p.discount})

	return environment.NewSpec(shape, environment.Discount, lowerBound,
		lowerBound, environment.Continuous)
}

// ObservationSpec returns the observation specification of the
// environment
func (p *platformer) ObservationSpec() environment.Spec {
	shape := mat.NewVecDense(ObservationSize, nil)
	lowerBound := mat.NewVecDense(ObservationSize, []float64{
		0., -1., -1., -1., 0.,
	})
	upperBound := mat.NewVecDense(ObservationSize, []float64{
		1., 1., 1., 1., 1.,
	})

	return environment.NewSpec(shape, environment.Observation, lowerBound,
		upperBound, environment.Continuous)
}
