// Package envconfig provides configuration for creating platformer
// environments with default physical parameters and tasks. Environment
// configurations in this package are YAML serializable. Fields missing
// from a YAML file keep their default values.
package envconfig

import (
	"fmt"
	"math"
	"os"

	"github.com/samuelfneumann/platformer/environment"
	"github.com/samuelfneumann/platformer/environment/platformer"
	"github.com/samuelfneumann/platformer/environment/platformer/arena"
	ts "github.com/samuelfneumann/platformer/timestep"
	"github.com/samuelfneumann/platformer/utils/seedutils"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Actions names the action space of an environment
type Actions string

// Action spaces available for configuration
const (
	Continuous Actions = "continuous"
	Discrete   Actions = "discrete"
)

// Config implements a specific configuration of the platformer
// environment running in an arena
type Config struct {
	Actions    Actions           `yaml:"actions"`
	Platformer platformer.Config `yaml:"platformer"`
	Arena      arena.Config      `yaml:"arena"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Actions:    Continuous,
		Platformer: platformer.DefaultConfig(),
		Arena:      arena.DefaultConfig(),
	}
}

// Load returns the default configuration overridden by the YAML file at
// path. An empty path returns the default configuration.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// WriteYAML writes the configuration to a YAML file at path
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate returns an error if an environment cannot be created from
// the configuration. Settings that allow an environment to be created
// but are likely mistakes are returned as warnings.
func (c *Config) Validate() ([]string, error) {
	if c.Actions != Continuous && c.Actions != Discrete {
		return nil, fmt.Errorf("validate: unknown actions %q", c.Actions)
	}
	if err := c.Platformer.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	if err := c.Arena.Validate(); err != nil {
		return nil, fmt.Errorf("validate: arena: %w", err)
	}

	var warnings []string
	spawner := c.Platformer.Spawner
	bounds := platformer.NewBounds(c.Arena.RegionX, c.Arena.RegionZ,
		spawner.Inset, spawner.Scale)
	if !bounds.Feasible(spawner.Distance) {
		warnings = append(warnings, fmt.Sprintf("spawn distance %v exceeds "+
			"the spawn bounds (%v, %v) on every heading, goal platforms "+
			"will be clamped into bounds", spawner.Distance, bounds.X,
			bounds.Z))
	}
	if c.Platformer.Reward.HazardPenalty > 0 {
		warnings = append(warnings, fmt.Sprintf("hazard penalty %v is "+
			"positive and rewards falling", c.Platformer.Reward.HazardPenalty))
	}
	top := spawner.Height + c.Arena.PlatformHalfExtents.Y
	if math.Abs(top-c.Arena.StartPlatform.Top()) > c.Arena.StepHeight {
		warnings = append(warnings, fmt.Sprintf("goal platform tops at %v "+
			"cannot be walked onto from the start platform top at %v", top,
			c.Arena.StartPlatform.Top()))
	}
	return warnings, nil
}

// Create returns the environment described by the Config, the arena it
// runs in, and the first timestep of the environment. Warnings from
// Validate are logged.
func (c *Config) Create(seed uint64,
	logger *zap.Logger) (environment.Environment, *arena.Arena, ts.TimeStep,
	error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	warnings, err := c.Validate()
	if err != nil {
		return nil, nil, ts.TimeStep{}, fmt.Errorf("create: %w", err)
	}
	for _, w := range warnings {
		logger.Warn(w)
	}

	// Collectibles are placed where the spawner expects them
	arenaCfg := c.Arena
	arenaCfg.CollectibleOffset = c.Platformer.Spawner.CollectibleOffset

	world, err := arena.New(arenaCfg, logger)
	if err != nil {
		return nil, nil, ts.TimeStep{}, fmt.Errorf("create: %w", err)
	}

	task := platformer.NewReach(platformer.NewYawStarter(
		seedutils.Derive(seed, "starter")),
		c.Platformer.Episode.StepBudget, c.Platformer.Spawner.Distance,
		c.Platformer.Reward)

	var env environment.Environment
	var step ts.TimeStep
	switch c.Actions {
	case Discrete:
		env, step, err = platformer.NewDiscrete(task, world, c.Platformer,
			seed, logger)
	default:
		env, step, err = platformer.NewContinuous(task, world, c.Platformer,
			seed, logger)
	}
	if err != nil {
		return nil, nil, ts.TimeStep{}, fmt.Errorf("create: %w", err)
	}
	return env, world, step, nil
}
