package platformer

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/platformer/utils/floatutils"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// ProbeOffset lifts the ground probe origin above the capsule
	// bottom so that a capsule resting exactly on a surface still hits it
	ProbeOffset float64 = 0.01

	// ContactTolerance is the extra distance beyond the slope-adjusted
	// contact distance at which the agent is still considered grounded
	ContactTolerance float64 = 0.02

	// ProbeRange is the length of the ground probe in multiples of the
	// scaled capsule radius
	ProbeRange float64 = 5

	DefaultSlopeLimit float64 = 45
	MinSlopeLimit     float64 = 5
	MaxSlopeLimit     float64 = 60
)

// Capsule describes the agent's collision capsule in the local space
// of the agent
type Capsule struct {
	Center r3.Vec  `yaml:"center"`
	Radius float64 `yaml:"radius"`
	Height float64 `yaml:"height"`
	Scale  r3.Vec  `yaml:"scale"`
}

// DefaultCapsule returns a unit-height capsule resting on the local
// origin
func DefaultCapsule() Capsule {
	return Capsule{
		Center: r3.Vec{Y: 0.5},
		Radius: 0.25,
		Height: 1,
		Scale:  r3.Vec{X: 1, Y: 1, Z: 1},
	}
}

// Validate returns an error if the capsule is degenerate
func (c Capsule) Validate() error {
	if c.Radius <= 0 {
		return fmt.Errorf("capsule radius must be positive, got %v",
			c.Radius)
	}
	if c.Height < 0 {
		return fmt.Errorf("capsule height must be non-negative, got %v",
			c.Height)
	}
	return nil
}

// Bottom returns the world position of the lowest point of the capsule
// for an agent at the given pose. A capsule is never shorter than its
// diameter.
func (c Capsule) Bottom(p Pose) r3.Vec {
	height := math.Max(2*c.Radius, c.Height)
	local := r3.Sub(c.Center, r3.Scale(height/2, Up))
	return p.TransformPoint(local, c.Scale)
}

// ScaledRadius returns the capsule radius after the local scale has
// been applied
func (c Capsule) ScaledRadius(p Pose) float64 {
	return r3.Norm(p.TransformVector(r3.Vec{X: c.Radius}, c.Scale))
}

// GroundState is the result of classifying the surface below the agent
type GroundState struct {
	Grounded bool

	// Hit is the probe hit, valid only if Probed is true
	Hit    Hit
	Probed bool

	// Slope is the angle in degrees between the hit normal and up
	Slope float64
}

// GroundClassifier decides whether the agent is standing on walkable
// ground by casting a probe downwards from the bottom of its capsule.
type GroundClassifier struct {
	caster     RayCaster
	slopeLimit float64
}

// NewGroundClassifier returns a new GroundClassifier. This function
// panics if slopeLimit is outside [MinSlopeLimit, MaxSlopeLimit].
func NewGroundClassifier(caster RayCaster,
	slopeLimit float64) *GroundClassifier {
	if slopeLimit < MinSlopeLimit || slopeLimit > MaxSlopeLimit {
		panic(fmt.Sprintf("newGroundClassifier: slope limit %v ∉ [%v, %v]",
			slopeLimit, MinSlopeLimit, MaxSlopeLimit))
	}
	return &GroundClassifier{caster: caster, slopeLimit: slopeLimit}
}

// SlopeLimit returns the steepest walkable slope in degrees
func (g *GroundClassifier) SlopeLimit() float64 {
	return g.slopeLimit
}

// Classify probes below the capsule of an agent at pose p. The agent is
// grounded if the probe hits a surface whose slope is strictly less
// than the slope limit and whose distance from the probe origin is at
// most the contact distance of a sphere of the capsule radius resting
// on that slope, plus ContactTolerance.
func (g *GroundClassifier) Classify(p Pose, c Capsule) GroundState {
	radius := c.ScaledRadius(p)
	origin := r3.Add(c.Bottom(p), r3.Scale(ProbeOffset, p.Up()))
	down := r3.Scale(-1, p.Up())

	hit, ok := g.caster.RayCast(origin, down, radius*ProbeRange)
	if !ok {
		return GroundState{}
	}

	slope := SlopeAngle(hit.Normal, p.Up())
	state := GroundState{Hit: hit, Probed: true, Slope: slope}
	if slope >= g.slopeLimit {
		return state
	}

	cos := math.Cos(slope * math.Pi / 180)
	maxDistance := radius/cos - radius + ContactTolerance
	state.Grounded = hit.Distance <= maxDistance
	return state
}

// SlopeAngle returns the angle in degrees between a surface normal and
// up. A zero normal is treated as a vertical wall.
func SlopeAngle(normal, up r3.Vec) float64 {
	if r3.Norm(normal) == 0 || r3.Norm(up) == 0 {
		return 90
	}
	cos := floatutils.Clip(r3.Cos(normal, up), -1, 1)
	return math.Acos(cos) * 180 / math.Pi
}
