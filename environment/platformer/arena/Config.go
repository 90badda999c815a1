package arena

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	Gravity float64 = 9.81

	VelocityIterations int = 8
	PositionIterations int = 3
)

// Config configures an Arena
type Config struct {
	// Origin is the centre of the reset region. Goal platforms are
	// spawned relative to it.
	Origin r3.Vec `yaml:"origin"`

	// RegionX and RegionZ are the size of the reset region. Boundary
	// sensors are placed along its edges.
	RegionX  float64 `yaml:"region_x"`
	RegionZ  float64 `yaml:"region_z"`
	Boundary bool    `yaml:"boundary"`

	// KillHeight is the height below which the agent falls into the
	// kill plane
	KillHeight float64 `yaml:"kill_height"`
	Gravity    float64 `yaml:"gravity"`

	// StepHeight is the furthest below a platform top the agent may be
	// and still be lifted onto the platform
	StepHeight float64 `yaml:"step_height"`

	StartPlatform       Box     `yaml:"start_platform"`
	PlatformHalfExtents r3.Vec  `yaml:"platform_half_extents"`
	CollectibleOffset   r3.Vec  `yaml:"collectible_offset"`
	CollectibleRadius   float64 `yaml:"collectible_radius"`

	// AgentRadius and AgentHeight describe the agent's trigger volume,
	// a vertical cylinder standing on the agent's position
	AgentRadius float64 `yaml:"agent_radius"`
	AgentHeight float64 `yaml:"agent_height"`
}

// DefaultConfig returns the default arena configuration. Goal platform
// tops are flush with the start platform top at a height of 0.
func DefaultConfig() Config {
	return Config{
		RegionX:    30,
		RegionZ:    30,
		Boundary:   true,
		KillHeight: -5,
		Gravity:    Gravity,
		StepHeight: 0.3,
		StartPlatform: Box{
			Center:      r3.Vec{Y: -0.25},
			HalfExtents: r3.Vec{X: 1.5, Y: 0.25, Z: 1.5},
		},
		PlatformHalfExtents: r3.Vec{X: 1, Y: 0.25, Z: 1},
		CollectibleOffset:   r3.Vec{Y: 1},
		CollectibleRadius:   0.5,
		AgentRadius:         0.25,
		AgentHeight:         1,
	}
}

// Validate returns an error if the configuration cannot be used
func (c Config) Validate() error {
	if c.RegionX <= 0 || c.RegionZ <= 0 {
		return fmt.Errorf("region must have positive size, got %v × %v",
			c.RegionX, c.RegionZ)
	}
	if c.CollectibleRadius <= 0 || c.AgentRadius <= 0 {
		return fmt.Errorf("collectible and agent radii must be positive")
	}
	if c.AgentHeight <= 0 {
		return fmt.Errorf("agent height must be positive, got %v",
			c.AgentHeight)
	}
	if c.StepHeight < 0 {
		return fmt.Errorf("step height must be non-negative, got %v",
			c.StepHeight)
	}
	if c.Gravity < 0 {
		return fmt.Errorf("gravity must be non-negative, got %v", c.Gravity)
	}
	return nil
}
