package arena

import (
	"math"

	"github.com/samuelfneumann/platformer/environment/platformer"
	"gonum.org/v1/gonum/spatial/r3"
)

// Box is an axis-aligned box
type Box struct {
	Center      r3.Vec `yaml:"center"`
	HalfExtents r3.Vec `yaml:"half_extents"`
}

// Min returns the minimum corner of the box
func (b Box) Min() r3.Vec {
	return r3.Sub(b.Center, b.HalfExtents)
}

// Max returns the maximum corner of the box
func (b Box) Max() r3.Vec {
	return r3.Add(b.Center, b.HalfExtents)
}

// Top returns the height of the top face of the box
func (b Box) Top() float64 {
	return b.Center.Y + b.HalfExtents.Y
}

// ContainsXZ returns whether the vertical projection of the box
// contains the vertical projection of p
func (b Box) ContainsXZ(p r3.Vec) bool {
	return math.Abs(p.X-b.Center.X) <= b.HalfExtents.X &&
		math.Abs(p.Z-b.Center.Z) <= b.HalfExtents.Z
}

// RayCast returns the first point at which a ray enters the box. Rays
// starting inside the box do not hit it.
func (b Box) RayCast(origin, direction r3.Vec,
	maxDistance float64) (platformer.Hit, bool) {
	lo, hi := b.Min(), b.Max()
	o := [3]float64{origin.X, origin.Y, origin.Z}
	d := [3]float64{direction.X, direction.Y, direction.Z}
	lower := [3]float64{lo.X, lo.Y, lo.Z}
	upper := [3]float64{hi.X, hi.Y, hi.Z}

	near, far := math.Inf(-1), math.Inf(1)
	var normal [3]float64
	for i := 0; i < 3; i++ {
		if math.Abs(d[i]) < 1e-12 {
			if o[i] < lower[i] || o[i] > upper[i] {
				return platformer.Hit{}, false
			}
			continue
		}

		t1 := (lower[i] - o[i]) / d[i]
		t2 := (upper[i] - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > near {
			near = t1
			normal = [3]float64{}
			normal[i] = -math.Copysign(1, d[i])
		}
		far = math.Min(far, t2)
		if near > far {
			return platformer.Hit{}, false
		}
	}

	if near < 0 || near > maxDistance {
		return platformer.Hit{}, false
	}
	return platformer.Hit{
		Point:    r3.Add(origin, r3.Scale(near, direction)),
		Normal:   r3.Vec{X: normal[0], Y: normal[1], Z: normal[2]},
		Distance: near,
	}, true
}
