// Package seedutils derives independent seeds from a single seed
package seedutils

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Derive returns the seed of the named random stream under seed.
// Different streams under the same seed, and the same stream under
// different seeds, produce unrelated seeds.
func Derive(seed uint64, stream string) uint64 {
	return xxhash.Sum64String(strconv.FormatUint(seed, 10) + "/" + stream)
}
