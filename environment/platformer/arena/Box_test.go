package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestBoxRayCast(t *testing.T) {
	box := Box{
		Center:      r3.Vec{Y: -0.25},
		HalfExtents: r3.Vec{X: 1, Y: 0.25, Z: 1},
	}
	assert.Equal(t, 0.0, box.Top())

	down := r3.Vec{Y: -1}
	hit, ok := box.RayCast(r3.Vec{X: 0.5, Y: 0.01, Z: -0.5}, down, 1)
	require.True(t, ok)
	assert.InDelta(t, 0.01, hit.Distance, 1e-12)
	assert.Equal(t, r3.Vec{Y: 1}, hit.Normal)
	assert.InDelta(t, 0.0, hit.Point.Y, 1e-12)

	// Out of range
	_, ok = box.RayCast(r3.Vec{Y: 2}, down, 1)
	assert.False(t, ok)

	// Outside the footprint
	_, ok = box.RayCast(r3.Vec{X: 1.5, Y: 0.01}, down, 1)
	assert.False(t, ok)

	// Starting inside
	_, ok = box.RayCast(r3.Vec{Y: -0.1}, down, 1)
	assert.False(t, ok)

	// Pointing away
	_, ok = box.RayCast(r3.Vec{Y: 0.5}, r3.Vec{Y: 1}, 10)
	assert.False(t, ok)

	// Side faces
	hit, ok = box.RayCast(r3.Vec{X: -3, Y: -0.25}, r3.Vec{X: 1}, 10)
	require.True(t, ok)
	assert.InDelta(t, 2.0, hit.Distance, 1e-12)
	assert.Equal(t, r3.Vec{X: -1}, hit.Normal)
}

func TestBoxContainsXZ(t *testing.T) {
	box := Box{Center: r3.Vec{X: 2, Z: 2}, HalfExtents: r3.Vec{X: 1, Y: 1,
		Z: 0.5}}
	assert.True(t, box.ContainsXZ(r3.Vec{X: 1, Y: 100, Z: 2.5}))
	assert.False(t, box.ContainsXZ(r3.Vec{X: 2, Z: 2.6}))
}
