package solver

import "math/rand"

// defaultSeed is the fixed stream used when callers pass seed==0, keeping
// the zero Options reproducible.
const defaultSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 selects defaultSeed; otherwise the seed is used verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes a parent seed and a stream id into an independent seed
// using a SplitMix64-style finalizer, so per-restart streams stay
// decorrelated even for adjacent ids.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}
