package platformer

import (
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"
)

// Handle identifies an object created through a Lifecycle
type Handle = uuid.UUID

// Prefab names the kind of object that a Lifecycle should create
type Prefab int

const (
	// GoalPlatformPrefab is a platform carrying a single collectible
	// child
	GoalPlatformPrefab Prefab = iota
)

// Category tags the trigger volume that a TriggerEvent was raised for
type Category int

const (
	Other Category = iota
	Collectible
	Hazard
)

func (c Category) String() string {
	switch c {
	case Collectible:
		return "Collectible"
	case Hazard:
		return "Hazard"
	default:
		return "Other"
	}
}

// TriggerEvent is raised by a World when the agent enters a trigger
// volume. Other identifies the object owning the volume.
type TriggerEvent struct {
	Category Category
	Other    Handle
}

// Hit describes the nearest surface hit by a ray cast
type Hit struct {
	Point    r3.Vec
	Normal   r3.Vec
	Distance float64
}

// RayCaster casts rays against the colliders of a world. Direction
// must be a unit vector.
type RayCaster interface {
	RayCast(origin, direction r3.Vec, maxDistance float64) (Hit, bool)
}

// Body is the simulated rigid body of the agent
type Body interface {
	Pose() Pose
	SetPose(Pose)
	Velocity() r3.Vec
	SetVelocity(r3.Vec)
}

// Lifecycle creates, destroys, and toggles objects in a world
type Lifecycle interface {
	Create(prefab Prefab, position r3.Vec) (Handle, error)
	Destroy(h Handle)
	SetActive(h Handle, active bool)
}

// Region is the reset region of a world. Goal platforms are placed
// relative to its Origin, within bounds derived from its size.
type Region struct {
	Origin r3.Vec
	SizeX  float64
	SizeZ  float64
}

// World is the physics host the environment runs in. Simulate advances
// the world by dt seconds, integrating the Body's velocity, and returns
// the trigger volumes entered during that interval in the order they
// were entered.
type World interface {
	RayCaster
	Lifecycle
	Body() Body
	StartPlatform() Handle
	Region() Region
	Simulate(dt float64) []TriggerEvent
}
