package platformer

import (
	"github.com/samuelfneumann/platformer/utils/floatutils"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	DefaultMoveSpeed float64 = 5
	DefaultTurnSpeed float64 = 300
	DefaultJumpSpeed float64 = 4

	// AirControl scales forward speed while airborne
	AirControl float64 = 0.5

	// deadzone is the magnitude below which a forward intent is ignored
	// in the air
	deadzone float64 = 1e-6
)

// MotionIntent is a decoded action. Forward and Turn are clipped to
// [-1, 1] before use.
type MotionIntent struct {
	Forward float64
	Turn    float64
	Jump    bool
}

// Clipped returns the intent with Forward and Turn clipped to [-1, 1]
func (m MotionIntent) Clipped() MotionIntent {
	m.Forward = floatutils.Clip(m.Forward, -1, 1)
	m.Turn = floatutils.Clip(m.Turn, -1, 1)
	return m
}

// Controller turns motion intents into changes of the agent's heading
// and velocity
type Controller struct {
	moveSpeed float64
	turnSpeed float64
	jumpSpeed float64
	allowJump bool
}

// NewController returns a new Controller
func NewController(c ControllerConfig) *Controller {
	return &Controller{
		moveSpeed: c.MoveSpeed,
		turnSpeed: c.TurnSpeed,
		jumpSpeed: c.JumpSpeed,
		allowJump: c.AllowJump,
	}
}

// Apply applies the intent to body for a tick of dt seconds.
//
// The body is first turned. When grounded, the velocity is replaced
// entirely: any residual velocity is dropped, a jump adds an upward
// component, and the forward intent adds a component along the new
// heading. When airborne and the forward intent is not zero, the
// horizontal velocity is replaced by the forward intent at AirControl
// times the move speed while the vertical velocity is kept. An
// airborne body with no forward intent is left to the physics host.
func (c *Controller) Apply(body Body, intent MotionIntent, grounded bool,
	dt float64) {
	intent = intent.Clipped()

	pose := body.Pose()
	if intent.Turn != 0 {
		pose = pose.Rotate(intent.Turn * c.turnSpeed * dt)
		body.SetPose(pose)
	}
	forward := pose.Forward()

	if grounded {
		var velocity r3.Vec
		if intent.Jump && c.allowJump {
			velocity = r3.Add(velocity, r3.Scale(c.jumpSpeed, pose.Up()))
		}
		velocity = r3.Add(velocity,
			r3.Scale(intent.Forward*c.moveSpeed, forward))
		body.SetVelocity(velocity)
		return
	}

	if scalar.EqualWithinAbs(intent.Forward, 0, deadzone) {
		return
	}
	velocity := r3.Vec{Y: body.Velocity().Y}
	velocity = r3.Add(velocity,
		r3.Scale(intent.Forward*c.moveSpeed*AirControl, forward))
	body.SetVelocity(velocity)
}
