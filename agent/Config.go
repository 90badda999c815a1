package agent

import (
	"fmt"

	"github.com/samuelfneumann/platformer/environment"
)

// Config represents a configuration for creating an agent
type Config struct {
	Type Type `yaml:"type"`
}

// CreateAgent creates the agent that the config describes
func (c Config) CreateAgent(env environment.Environment,
	seed uint64) (Agent, error) {
	factory, ok := registeredTypes[c.Type]
	if !ok {
		return nil, fmt.Errorf("createAgent: no agent registered with "+
			"type %q", c.Type)
	}
	return factory(env, seed)
}

// Validate returns an error if no agent is registered with the
// configured type
func (c Config) Validate() error {
	if _, ok := registeredTypes[c.Type]; !ok {
		return fmt.Errorf("validate: no agent registered with type %q",
			c.Type)
	}
	return nil
}
