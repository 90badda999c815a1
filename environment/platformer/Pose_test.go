package platformer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestPoseAxes(t *testing.T) {
	for _, test := range []struct {
		yaw  float64
		want r3.Vec
	}{
		{0, r3.Vec{Z: 1}},
		{90, r3.Vec{X: 1}},
		{180, r3.Vec{Z: -1}},
		{270, r3.Vec{X: -1}},
	} {
		got := Pose{Yaw: test.yaw}.Forward()
		assert.InDelta(t, test.want.X, got.X, 1e-12, "yaw %v", test.yaw)
		assert.InDelta(t, test.want.Y, got.Y, 1e-12, "yaw %v", test.yaw)
		assert.InDelta(t, test.want.Z, got.Z, 1e-12, "yaw %v", test.yaw)
	}
	assert.Equal(t, Up, Pose{Yaw: 33}.Up())
}

func TestPoseRotateWraps(t *testing.T) {
	p := Pose{Yaw: 350}.Rotate(20)
	assert.InDelta(t, 10.0, p.Yaw, 1e-12)

	p = p.Rotate(-30)
	assert.InDelta(t, 340.0, p.Yaw, 1e-12)
}

func TestPoseTransform(t *testing.T) {
	p := Pose{Position: r3.Vec{X: 1, Y: 2, Z: 3}, Yaw: 90}
	got := p.TransformPoint(r3.Vec{Y: 1, Z: 1}, r3.Vec{X: 1, Y: 2, Z: 3})

	assert.InDelta(t, 4.0, got.X, 1e-12)
	assert.InDelta(t, 4.0, got.Y, 1e-12)
	assert.InDelta(t, 3.0, got.Z, 1e-12)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Controller.SlopeLimit = 80
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Controller.Capsule.Radius = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Spawner.MaxAttempts = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Episode.Discount = 1.5
	assert.Error(t, cfg.Validate())
}
