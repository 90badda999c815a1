package platformer

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// DefaultTimeStep is the fixed physics tick duration in seconds
	DefaultTimeStep float64 = 0.02

	// DefaultStepBudget is the number of ticks an episode may run for
	DefaultStepBudget int = 20000

	// DefaultDiscount is the discount attached to every TimeStep
	DefaultDiscount float64 = 0.99
)

// ControllerConfig configures ground classification and locomotion
type ControllerConfig struct {
	// SlopeLimit is the steepest slope in degrees the agent can stand on
	SlopeLimit float64 `yaml:"slope_limit"`

	// MoveSpeed is the grounded forward speed in metres per second
	MoveSpeed float64 `yaml:"move_speed"`

	// TurnSpeed is the turn rate in degrees per second
	TurnSpeed float64 `yaml:"turn_speed"`

	// JumpSpeed is the upward speed applied by a jump in metres per second
	JumpSpeed float64 `yaml:"jump_speed"`
	AllowJump bool    `yaml:"allow_jump"`

	Capsule Capsule `yaml:"capsule"`
}

// DefaultControllerConfig returns the default ControllerConfig
func DefaultControllerConfig() ControllerConfig {
	return ControllerConfig{
		SlopeLimit: DefaultSlopeLimit,
		MoveSpeed:  DefaultMoveSpeed,
		TurnSpeed:  DefaultTurnSpeed,
		JumpSpeed:  DefaultJumpSpeed,
		AllowJump:  true,
		Capsule:    DefaultCapsule(),
	}
}

// Validate returns an error if the ControllerConfig cannot be used
func (c ControllerConfig) Validate() error {
	if c.SlopeLimit < MinSlopeLimit || c.SlopeLimit > MaxSlopeLimit {
		return fmt.Errorf("slope limit %v ∉ [%v, %v]", c.SlopeLimit,
			MinSlopeLimit, MaxSlopeLimit)
	}
	if c.MoveSpeed < 0 || c.TurnSpeed < 0 || c.JumpSpeed < 0 {
		return fmt.Errorf("speeds must be non-negative")
	}
	return c.Capsule.Validate()
}

// SpawnerConfig configures goal platform placement
type SpawnerConfig struct {
	// Distance is the horizontal distance from the agent at which goal
	// platforms are spawned. It is also the initial best distance of
	// the shaping reward.
	Distance float64 `yaml:"distance"`

	// Height is the world height of spawned platform centres
	Height float64 `yaml:"height"`

	// Inset is subtracted from the reset region size, and the result is
	// divided by Scale, to give the half-extents spawn offsets must lie
	// within
	Inset float64 `yaml:"inset"`
	Scale float64 `yaml:"scale"`

	// MaxAttempts caps rejection sampling of spawn headings
	MaxAttempts int `yaml:"max_attempts"`

	// CollectibleOffset is the position of a platform's collectible
	// relative to the platform centre
	CollectibleOffset r3.Vec `yaml:"collectible_offset"`
}

// DefaultSpawnerConfig returns the default SpawnerConfig
func DefaultSpawnerConfig() SpawnerConfig {
	return SpawnerConfig{
		Distance:          3,
		Height:            -0.25,
		Inset:             10,
		Scale:             5,
		MaxAttempts:       DefaultMaxSpawnAttempts,
		CollectibleOffset: r3.Vec{Y: 1},
	}
}

// Validate returns an error if the SpawnerConfig cannot be used
func (s SpawnerConfig) Validate() error {
	if s.Distance <= 0 {
		return fmt.Errorf("spawn distance must be positive, got %v",
			s.Distance)
	}
	if s.Scale <= 0 {
		return fmt.Errorf("bounds scale must be positive, got %v", s.Scale)
	}
	if s.MaxAttempts < 1 {
		return fmt.Errorf("max spawn attempts must be at least 1, got %v",
			s.MaxAttempts)
	}
	return nil
}

// RewardConfig configures the Reach task
type RewardConfig struct {
	TimePenalty   float64 `yaml:"time_penalty"`
	CollectReward float64 `yaml:"collect_reward"`

	// HazardPenalty is added to the reward of the step on which the
	// agent enters a hazard. Usually zero or negative.
	HazardPenalty float64 `yaml:"hazard_penalty"`

	// Planar measures shaping distances in the XZ plane only
	Planar bool `yaml:"planar"`
}

// DefaultRewardConfig returns the default RewardConfig
func DefaultRewardConfig() RewardConfig {
	return RewardConfig{
		TimePenalty:   -0.01,
		CollectReward: 100,
		HazardPenalty: 0,
	}
}

// EpisodeConfig configures episode length and timing
type EpisodeConfig struct {
	StepBudget int     `yaml:"step_budget"`
	TimeStep   float64 `yaml:"time_step"`
	Discount   float64 `yaml:"discount"`

	// Start is the position the agent is placed at when an episode begins
	Start r3.Vec `yaml:"start"`
}

// DefaultEpisodeConfig returns the default EpisodeConfig
func DefaultEpisodeConfig() EpisodeConfig {
	return EpisodeConfig{
		StepBudget: DefaultStepBudget,
		TimeStep:   DefaultTimeStep,
		Discount:   DefaultDiscount,
	}
}

// Validate returns an error if the EpisodeConfig cannot be used
func (e EpisodeConfig) Validate() error {
	if e.StepBudget < 0 {
		return fmt.Errorf("step budget must be non-negative, got %v",
			e.StepBudget)
	}
	if e.TimeStep <= 0 {
		return fmt.Errorf("time step must be positive, got %v", e.TimeStep)
	}
	if e.Discount < 0 || e.Discount > 1 {
		return fmt.Errorf("discount %v ∉ [0, 1]", e.Discount)
	}
	return nil
}

// Config collects the configuration of every component of the
// environment
type Config struct {
	Controller ControllerConfig `yaml:"controller"`
	Spawner    SpawnerConfig    `yaml:"spawner"`
	Reward     RewardConfig     `yaml:"reward"`
	Episode    EpisodeConfig    `yaml:"episode"`
}

// DefaultConfig returns the default Config
func DefaultConfig() Config {
	return Config{
		Controller: DefaultControllerConfig(),
		Spawner:    DefaultSpawnerConfig(),
		Reward:     DefaultRewardConfig(),
		Episode:    DefaultEpisodeConfig(),
	}
}

// Validate returns the first error found in any component configuration
func (c Config) Validate() error {
	if err := c.Controller.Validate(); err != nil {
		return fmt.Errorf("controller: %w", err)
	}
	if err := c.Spawner.Validate(); err != nil {
		return fmt.Errorf("spawner: %w", err)
	}
	if err := c.Episode.Validate(); err != nil {
		return fmt.Errorf("episode: %w", err)
	}
	return nil
}
