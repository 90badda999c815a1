package seedutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	assert.Equal(t, Derive(7, "spawner"), Derive(7, "spawner"))
	assert.NotEqual(t, Derive(7, "spawner"), Derive(7, "starter"))
	assert.NotEqual(t, Derive(7, "spawner"), Derive(8, "spawner"))
	assert.NotEqual(t, uint64(7), Derive(7, "spawner"))
}
