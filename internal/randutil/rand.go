// Package randutil builds reproducible math/rand/v2 sources.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed. Engines, deals
// and rollouts all seed through here so that a single base seed reproduces a
// whole simulation.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive returns the seed for the index'th child of base. Neighbouring
// indices map to unrelated seeds, so match i and match i+1 do not share
// streams.
func Derive(base int64, index int) int64 {
	return int64(mix(uint64(base) ^ mix(uint64(index)+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
