// Package experiment implements functionality for running an experiment
package experiment

import (
	"context"
	"fmt"
	"os"

	"github.com/samuelfneumann/platformer/agent"
	_ "github.com/samuelfneumann/platformer/agent/random"
	"github.com/samuelfneumann/platformer/environment/envconfig"
	"github.com/samuelfneumann/platformer/environment/platformer/arena"
	"github.com/samuelfneumann/platformer/experiment/checkpointer"
	"github.com/samuelfneumann/platformer/experiment/tracker"
	"github.com/samuelfneumann/platformer/utils/seedutils"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Interface Experiment outlines structs that can run experiments.
// Experiments track environment TimeSteps by sending them to Trackers,
// which cache the data they need in RAM. Save() then writes all cached
// data to disk, usually after the experiment has been run. Run() runs
// episodes until the maximum timestep limit is reached and
// RunEpisode() runs a single episode.
type Experiment interface {
	Run(ctx context.Context) error
	RunEpisode(ctx context.Context) (bool, error)

	// Save all tracked data to disk
	Save() error

	// Adds a new tracker.Tracker to the (possibly already running)
	// experiment
	Register(t tracker.Tracker)

	// Adds a new checkpointer.Checkpointer to the experiment
	AddCheckpointer(c checkpointer.Checkpointer)
}

type Type string

const (
	OnlineExp Type = "OnlineExperiment"
)

// Config represents a configuration of an experiment.
type Config struct {
	Type     Type             `yaml:"type"`
	MaxSteps uint             `yaml:"max_steps"`
	Env      envconfig.Config `yaml:"environment"`
	Agent    agent.Config     `yaml:"agent"`
}

// DefaultConfig returns an online experiment of a random agent in the
// default environment
func DefaultConfig() *Config {
	return &Config{
		Type:     OnlineExp,
		MaxSteps: 100_000,
		Env:      *envconfig.Default(),
		Agent:    agent.Config{Type: agent.Random},
	}
}

// LoadConfig returns the default configuration overridden by the YAML
// file at path. An empty path returns the default configuration.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
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

// CreateExp creates the experiment described by the Config. The arena
// that the experiment's environment runs in is also returned so that
// callers can render it.
func (c *Config) CreateExp(seed uint64, logger *zap.Logger,
	t []tracker.Tracker,
	check []checkpointer.Checkpointer) (Experiment, *arena.Arena, error) {
	if c.Type != OnlineExp {
		return nil, nil, fmt.Errorf("createExp: no such experiment type %q",
			c.Type)
	}
	if c.MaxSteps == 0 {
		return nil, nil, fmt.Errorf("createExp: max steps must be positive")
	}

	env, world, _, err := c.Env.Create(seed, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("createExp: %w", err)
	}
	a, err := c.Agent.CreateAgent(env, seedutils.Derive(seed, "agent"))
	if err != nil {
		return nil, nil, fmt.Errorf("createExp: could not create agent: %w",
			err)
	}

	return NewOnline(env, a, c.MaxSteps, t, check, logger), world, nil
}
