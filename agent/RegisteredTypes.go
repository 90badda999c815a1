package agent

import (
	"sort"

	"github.com/samuelfneumann/platformer/environment"
)

// Type represents a specific type of an agent Config.
// Configs with this type create Agents of the corresponding type.
type Type string

const (
	Random Type = "Random"
)

// Factory creates an agent acting in env
type Factory func(env environment.Environment, seed uint64) (Agent, error)

// Registered types with the package. Once a Type has been registered
// with this map, a Config with that type can create agents.
//
// No Types are registered with this package upon initialization.
// Each separate package is in charge of registering its Type with
// the package separately to avoid circular imports.
var registeredTypes = make(map[Type]Factory)

// Register registers an agent's Type with the factory that creates
// agents of that Type
func Register(agentType Type, factory Factory) {
	registeredTypes[agentType] = factory
}

// Types returns the registered agent types in sorted order
func Types() []Type {
	types := make([]Type, 0, len(registeredTypes))
	for t := range registeredTypes {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
