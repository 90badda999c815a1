package platformer

import (
	"math"

	"github.com/samuelfneumann/platformer/utils/floatutils"
	"gonum.org/v1/gonum/spatial/r3"
)

// Up is the world up axis
var Up = r3.Vec{Y: 1}

// Pose is the position and heading of the agent. Yaw is measured in
// degrees about the up axis, with a yaw of 0 facing +Z and a yaw of 90
// facing +X.
type Pose struct {
	Position r3.Vec
	Yaw      float64
}

// Up returns the local up axis of the pose
func (p Pose) Up() r3.Vec {
	return Up
}

// Forward returns the local forward axis of the pose
func (p Pose) Forward() r3.Vec {
	return p.rotation().Rotate(r3.Vec{Z: 1})
}

// Rotate returns the pose turned by angle degrees about its up axis
func (p Pose) Rotate(angle float64) Pose {
	p.Yaw = floatutils.WrapDegrees(p.Yaw + angle)
	return p
}

// TransformPoint transforms a point from the local space of an object
// with the given local scale into world space
func (p Pose) TransformPoint(local, scale r3.Vec) r3.Vec {
	return r3.Add(p.Position, p.TransformVector(local, scale))
}

// TransformVector transforms a vector from the local space of an object
// with the given local scale into world space. Position does not affect
// the result.
func (p Pose) TransformVector(local, scale r3.Vec) r3.Vec {
	scaled := r3.Vec{X: local.X * scale.X, Y: local.Y * scale.Y,
		Z: local.Z * scale.Z}
	return p.rotation().Rotate(scaled)
}

func (p Pose) rotation() r3.Rotation {
	return r3.NewRotation(p.Yaw*math.Pi/180, Up)
}

// Heading returns the unit vector in the XZ plane reached by turning
// yaw degrees away from +Z
func Heading(yaw float64) r3.Vec {
	return Pose{Yaw: yaw}.Forward()
}
