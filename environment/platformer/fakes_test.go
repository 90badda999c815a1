package platformer

import (
	"errors"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"
)

type fakeBody struct {
	pose     Pose
	velocity r3.Vec
}

func (b *fakeBody) Pose() Pose { return b.pose }
func (b *fakeBody) SetPose(p Pose) { b.pose = p }
func (b *fakeBody) Velocity() r3.Vec { return b.velocity }
func (b *fakeBody) SetVelocity(v r3.Vec) { b.velocity = v }

// ray records a ray cast
type ray struct {
	origin, direction r3.Vec
	maxDistance       float64
}

// fakeWorld is a World whose ground is a single configurable hit and
// whose trigger events are scripted per call to Simulate
type fakeWorld struct {
	body *fakeBody

	hit   Hit
	hitOK bool
	rays  []ray

	created   []Handle
	positions []r3.Vec
	destroyed []Handle
	active    map[Handle]bool
	createErr error

	start  Handle
	region Region

	events [][]TriggerEvent
}

func newFakeWorld() *fakeWorld {
	start := uuid.New()
	return &fakeWorld{
		body:   &fakeBody{},
		hit:    Hit{Normal: Up, Distance: ProbeOffset},
		hitOK:  true,
		active: map[Handle]bool{start: true},
		start:  start,
		region: Region{SizeX: 30, SizeZ: 30},
	}
}

func (f *fakeWorld) RayCast(origin, direction r3.Vec,
	maxDistance float64) (Hit, bool) {
	f.rays = append(f.rays, ray{origin, direction, maxDistance})
	if !f.hitOK || f.hit.Distance > maxDistance {
		return Hit{}, false
	}
	return f.hit, true
}

func (f *fakeWorld) Create(_ Prefab, position r3.Vec) (Handle, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	id := uuid.New()
	f.created = append(f.created, id)
	f.positions = append(f.positions, position)
	f.active[id] = true
	return id, nil
}

func (f *fakeWorld) Destroy(h Handle) {
	f.destroyed = append(f.destroyed, h)
	delete(f.active, h)
}

func (f *fakeWorld) SetActive(h Handle, active bool) {
	f.active[h] = active
}

func (f *fakeWorld) Body() Body { return f.body }
func (f *fakeWorld) StartPlatform() Handle { return f.start }
func (f *fakeWorld) Region() Region { return f.region }

func (f *fakeWorld) Simulate(dt float64) []TriggerEvent {
	f.body.pose.Position = r3.Add(f.body.pose.Position,
		r3.Scale(dt, f.body.velocity))

	if len(f.events) == 0 {
		return nil
	}
	events := f.events[0]
	f.events = f.events[1:]
	return events
}

// lifecycle records created and destroyed handles
type lifecycle struct {
	created   []Handle
	destroyed []Handle
	err       error
}

func (l *lifecycle) Create(Prefab, r3.Vec) (Handle, error) {
	if l.err != nil {
		return uuid.Nil, l.err
	}
	id := uuid.New()
	l.created = append(l.created, id)
	return id, nil
}

func (l *lifecycle) Destroy(h Handle) {
	l.destroyed = append(l.destroyed, h)
}

func (l *lifecycle) SetActive(Handle, bool) {}

var errCreate = errors.New("create failed")
