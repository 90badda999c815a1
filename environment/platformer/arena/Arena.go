// Package arena implements a reference physics host for the platformer
// environment. Motion in the horizontal plane and trigger overlaps are
// simulated with Box2D, where the Box2D y axis is the world z axis.
// Vertical motion, gravity, and landing on platforms are integrated
// separately.
package arena

import (
	"errors"
	"fmt"

	"github.com/ByteArena/box2d"
	"github.com/google/uuid"
	"github.com/samuelfneumann/platformer/environment/platformer"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrUnknownPrefab is returned when creating an object from a prefab
// the arena does not know how to build
var ErrUnknownPrefab = errors.New("unknown prefab")

type kind int

const (
	platformKind kind = iota
	collectibleKind
)

// object is a platform or collectible in the arena
type object struct {
	id     platformer.Handle
	kind   kind
	active bool

	// box is the collider of a platform
	box Box

	// center and body describe the trigger volume of a collectible
	center r3.Vec
	body   *box2d.B2Body

	// inside records whether the agent overlapped a collectible at the
	// end of the last tick
	inside bool

	parent   platformer.Handle
	children []platformer.Handle
}

// Arena is a World of axis-aligned platforms floating above a kill
// plane. Collectibles are spherical triggers, and the edges of the
// reset region are hazard triggers.
type Arena struct {
	cfg    Config
	logger *zap.Logger

	world    box2d.B2World
	agent    *box2d.B2Body
	boundary []*box2d.B2Body

	// bodies maps Box2D bodies of collectibles to their handles
	bodies map[*box2d.B2Body]platformer.Handle

	objects map[platformer.Handle]*object
	order   []platformer.Handle
	start   platformer.Handle

	y        float64
	vy       float64
	yaw      float64
	killed   bool
	overlaps map[platformer.Handle]bool
	crossed  bool
}

// New returns a new Arena with the agent standing at the centre of the
// start platform
func New(cfg Config, logger *zap.Logger) (*Arena, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &Arena{
		cfg:      cfg,
		logger:   logger,
		world:    box2d.MakeB2World(box2d.MakeB2Vec2(0, 0)),
		bodies:   make(map[*box2d.B2Body]platformer.Handle),
		objects:  make(map[platformer.Handle]*object),
		overlaps: make(map[platformer.Handle]bool),
	}
	a.world.SetContactListener(newContactDetector(a))

	// Agent
	agentDef := box2d.MakeB2BodyDef()
	agentDef.Type = 2 // Dynamic body
	agentDef.FixedRotation = true
	agentDef.AllowSleep = false
	agentDef.Position = box2d.MakeB2Vec2(cfg.StartPlatform.Center.X,
		cfg.StartPlatform.Center.Z)
	a.agent = a.world.CreateBody(&agentDef)

	agentShape := box2d.MakeB2CircleShape()
	agentShape.M_radius = cfg.AgentRadius
	agentFix := box2d.MakeB2FixtureDef()
	agentFix.Shape = &agentShape
	agentFix.Density = 1.0
	agentFix.Friction = 0.0
	agentFix.Restitution = 0.0
	a.agent.CreateFixtureFromDef(&agentFix)
	a.y = cfg.StartPlatform.Top()

	// Bounds
	if cfg.Boundary {
		a.createBoundary()
	}

	// Start platform
	a.start = uuid.New()
	a.objects[a.start] = &object{
		id:     a.start,
		kind:   platformKind,
		active: true,
		box:    cfg.StartPlatform,
	}
	a.order = append(a.order, a.start)

	return a, nil
}

// createBoundary places edge sensors along the edges of the reset
// region
func (a *Arena) createBoundary() {
	o := a.cfg.Origin
	hx, hz := a.cfg.RegionX/2, a.cfg.RegionZ/2
	corners := []box2d.B2Vec2{
		box2d.MakeB2Vec2(o.X-hx, o.Z-hz),
		box2d.MakeB2Vec2(o.X-hx, o.Z+hz),
		box2d.MakeB2Vec2(o.X+hx, o.Z+hz),
		box2d.MakeB2Vec2(o.X+hx, o.Z-hz),
	}

	a.boundary = make([]*box2d.B2Body, 4)
	for i := range corners {
		boundsDef := box2d.NewB2BodyDef()
		boundsDef.Type = 0 // Static body
		a.boundary[i] = a.world.CreateBody(boundsDef)

		boundsShape := box2d.NewB2EdgeShape()
		boundsShape.Set(corners[i], corners[(i+1)%len(corners)])

		boundsFix := box2d.MakeB2FixtureDef()
		boundsFix.Shape = boundsShape
		boundsFix.IsSensor = true
		a.boundary[i].CreateFixtureFromDef(&boundsFix)
	}
}

// Config returns the configuration of the arena
func (a *Arena) Config() Config {
	return a.cfg
}

// Region returns the reset region of the arena
func (a *Arena) Region() platformer.Region {
	return platformer.Region{
		Origin: a.cfg.Origin,
		SizeX:  a.cfg.RegionX,
		SizeZ:  a.cfg.RegionZ,
	}
}

// StartPlatform returns the handle of the start platform
func (a *Arena) StartPlatform() platformer.Handle {
	return a.start
}

// Body returns the agent's body
func (a *Arena) Body() platformer.Body {
	return agentBody{a}
}

// RayCast returns the nearest hit of a ray against the active platforms
func (a *Arena) RayCast(origin, direction r3.Vec,
	maxDistance float64) (platformer.Hit, bool) {
	var nearest platformer.Hit
	found := false
	for _, id := range a.order {
		obj := a.objects[id]
		if obj.kind != platformKind || !obj.active {
			continue
		}
		hit, ok := obj.box.RayCast(origin, direction, maxDistance)
		if ok && (!found || hit.Distance < nearest.Distance) {
			nearest = hit
			found = true
		}
	}
	return nearest, found
}

// Create creates a goal platform centred at position with a single
// collectible child. The handle of the platform is returned.
func (a *Arena) Create(prefab platformer.Prefab,
	position r3.Vec) (platformer.Handle, error) {
	if prefab != platformer.GoalPlatformPrefab {
		return uuid.Nil, fmt.Errorf("create: %w %v", ErrUnknownPrefab, prefab)
	}

	platform := &object{
		id:     uuid.New(),
		kind:   platformKind,
		active: true,
		box:    Box{Center: position, HalfExtents: a.cfg.PlatformHalfExtents},
	}

	center := r3.Add(position, a.cfg.CollectibleOffset)
	collectibleDef := box2d.MakeB2BodyDef()
	collectibleDef.Type = 0 // Static body
	collectibleDef.Position = box2d.MakeB2Vec2(center.X, center.Z)
	body := a.world.CreateBody(&collectibleDef)
	if body == nil {
		return uuid.Nil, fmt.Errorf("create: world is locked")
	}

	collectibleShape := box2d.MakeB2CircleShape()
	collectibleShape.M_radius = a.cfg.CollectibleRadius
	collectibleFix := box2d.MakeB2FixtureDef()
	collectibleFix.Shape = &collectibleShape
	collectibleFix.IsSensor = true
	body.CreateFixtureFromDef(&collectibleFix)

	collectible := &object{
		id:     uuid.New(),
		kind:   collectibleKind,
		active: true,
		center: center,
		body:   body,
		parent: platform.id,
	}
	platform.children = append(platform.children, collectible.id)
	a.bodies[body] = collectible.id

	a.objects[platform.id] = platform
	a.objects[collectible.id] = collectible
	a.order = append(a.order, platform.id, collectible.id)

	return platform.id, nil
}

// Destroy removes an object and its children from the arena. Unknown
// handles are ignored.
func (a *Arena) Destroy(h platformer.Handle) {
	obj, ok := a.objects[h]
	if !ok {
		return
	}
	for _, child := range obj.children {
		a.Destroy(child)
	}

	if obj.body != nil {
		delete(a.bodies, obj.body)
		a.world.DestroyBody(obj.body)
	}
	if parent, ok := a.objects[obj.parent]; ok {
		parent.children = remove(parent.children, h)
	}
	delete(a.overlaps, h)
	delete(a.objects, h)
	a.order = remove(a.order, h)
}

// SetActive activates or deactivates an object and its children.
// Inactive objects are neither hit by rays nor raise triggers.
func (a *Arena) SetActive(h platformer.Handle, active bool) {
	obj, ok := a.objects[h]
	if !ok {
		return
	}
	obj.active = active
	if obj.body != nil {
		obj.body.SetActive(active)
	}
	if !active {
		obj.inside = false
	}
	for _, child := range obj.children {
		a.SetActive(child, active)
	}
}

// Active returns whether the object with handle h exists and is active
func (a *Arena) Active(h platformer.Handle) bool {
	obj, ok := a.objects[h]
	return ok && obj.active
}

// Simulate advances the arena by dt seconds
func (a *Arena) Simulate(dt float64) []platformer.TriggerEvent {
	a.vy -= a.cfg.Gravity * dt
	a.agent.SetAwake(true)
	a.world.Step(dt, VelocityIterations, PositionIterations)

	previous := a.y
	a.y += a.vy * dt
	a.land(previous)

	return a.triggers()
}

// land stops the agent on top of the highest active platform it fell
// onto during the last tick. Agents up to the step height below a
// platform top are lifted onto it.
func (a *Arena) land(previous float64) {
	if a.vy > 0 {
		return
	}
	position := a.position()
	for _, id := range a.order {
		obj := a.objects[id]
		if obj.kind != platformKind || !obj.active {
			continue
		}
		top := obj.box.Top()
		if obj.box.ContainsXZ(position) && a.y < top &&
			previous >= top-a.cfg.StepHeight {
			a.y = top
			a.vy = 0
		}
	}
}

// triggers returns the trigger volumes the agent entered during the
// last tick
func (a *Arena) triggers() []platformer.TriggerEvent {
	var events []platformer.TriggerEvent

	bottom, top := a.y, a.y+a.cfg.AgentHeight
	for _, id := range a.order {
		obj := a.objects[id]
		if obj.kind != collectibleKind {
			continue
		}
		r := a.cfg.CollectibleRadius
		inside := obj.active && a.overlaps[id] &&
			bottom <= obj.center.Y+r && top >= obj.center.Y-r
		if inside && !obj.inside {
			events = append(events, platformer.TriggerEvent{
				Category: platformer.Collectible,
				Other:    id,
			})
		}
		obj.inside = inside
	}

	if a.crossed {
		a.crossed = false
		events = append(events, platformer.TriggerEvent{
			Category: platformer.Hazard,
		})
	}

	if a.y < a.cfg.KillHeight && !a.killed {
		a.killed = true
		events = append(events, platformer.TriggerEvent{
			Category: platformer.Hazard,
		})
	}
	return events
}

// position returns the position of the agent
func (a *Arena) position() r3.Vec {
	p := a.agent.GetPosition()
	return r3.Vec{X: p.X, Y: a.y, Z: p.Y}
}

// Platforms returns the boxes of the active platforms
func (a *Arena) Platforms() []Box {
	var boxes []Box
	for _, id := range a.order {
		obj := a.objects[id]
		if obj.kind == platformKind && obj.active {
			boxes = append(boxes, obj.box)
		}
	}
	return boxes
}

// Collectibles returns the centres of the active collectibles
func (a *Arena) Collectibles() []r3.Vec {
	var centers []r3.Vec
	for _, id := range a.order {
		obj := a.objects[id]
		if obj.kind == collectibleKind && obj.active {
			centers = append(centers, obj.center)
		}
	}
	return centers
}

// Collectible returns the handle of the collectible child of a platform
func (a *Arena) Collectible(platform platformer.Handle) (platformer.Handle,
	bool) {
	obj, ok := a.objects[platform]
	if !ok || len(obj.children) == 0 {
		return uuid.Nil, false
	}
	return obj.children[0], true
}

func remove(handles []platformer.Handle,
	h platformer.Handle) []platformer.Handle {
	for i := range handles {
		if handles[i] == h {
			return append(handles[:i], handles[i+1:]...)
		}
	}
	return handles
}

// agentBody exposes the agent of an Arena as a platformer.Body
type agentBody struct {
	a *Arena
}

func (b agentBody) Pose() platformer.Pose {
	return platformer.Pose{Position: b.a.position(), Yaw: b.a.yaw}
}

// SetPose teleports the agent
func (b agentBody) SetPose(p platformer.Pose) {
	b.a.agent.SetTransform(box2d.MakeB2Vec2(p.Position.X, p.Position.Z), 0)
	b.a.y = p.Position.Y
	b.a.yaw = p.Yaw
	b.a.killed = false
}

func (b agentBody) Velocity() r3.Vec {
	v := b.a.agent.GetLinearVelocity()
	return r3.Vec{X: v.X, Y: b.a.vy, Z: v.Y}
}

func (b agentBody) SetVelocity(v r3.Vec) {
	b.a.agent.SetLinearVelocity(box2d.MakeB2Vec2(v.X, v.Z))
	b.a.vy = v.Y
}

type contactDetector struct {
	arena *Arena
}

func newContactDetector(a *Arena) *contactDetector {
	return &contactDetector{a}
}

// other returns the body touched by the agent in a contact, or nil if
// the agent is not part of the contact
func (c *contactDetector) other(contact box2d.B2ContactInterface) *box2d.B2Body {
	bodyA := contact.GetFixtureA().GetBody()
	bodyB := contact.GetFixtureB().GetBody()
	switch c.arena.agent {
	case bodyA:
		return bodyB
	case bodyB:
		return bodyA
	}
	return nil
}

func (c *contactDetector) BeginContact(contact box2d.B2ContactInterface) {
	other := c.other(contact)
	if other == nil {
		return
	}

	// Check if the agent touched a collectible
	if id, ok := c.arena.bodies[other]; ok {
		c.arena.overlaps[id] = true
		return
	}

	// Check if the agent crossed the boundary
	for _, b := range c.arena.boundary {
		if b == other {
			c.arena.crossed = true
		}
	}
}

func (c *contactDetector) EndContact(contact box2d.B2ContactInterface) {
	other := c.other(contact)
	if other == nil {
		return
	}

	// Check if the agent left a collectible
	if id, ok := c.arena.bodies[other]; ok {
		delete(c.arena.overlaps, id)
	}
}

func (c *contactDetector) PreSolve(contact box2d.B2ContactInterface,
	oldManifold box2d.B2Manifold) {
}

func (c *contactDetector) PostSolve(contact box2d.B2ContactInterface,
	impulse *box2d.B2ContactImpulse) {
}
