// Package rng centralizes deterministic random generation for the search
// algorithms and the concurrent runner.
//
// Goals:
//   - Determinism: same seed ⇒ identical streams ⇒ identical biclusters.
//   - Ownership: every run creates its own *rand.Rand; nothing reads the
//     process-wide math/rand source.
//   - Independence: Derive/DeriveSeed split one base seed into decorrelated
//     streams for concurrent runs.
//
// Concurrency:
//   - *rand.Rand is NOT goroutine-safe. Never share one across goroutines;
//     derive one per worker instead.
package rng

import "math/rand"

// DefaultSeed is used whenever a caller passes seed == 0.
const DefaultSeed int64 = 1

// Effective maps the seed==0 policy onto the seed that is actually used.
//
// Complexity: O(1).
func Effective(seed int64) int64 {
	if seed == 0 {
		return DefaultSeed
	}

	return seed
}

// FromSeed returns a deterministic generator for seed (0 ⇒ DefaultSeed).
//
// Complexity: O(1).
func FromSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(Effective(seed)))
}

// DeriveSeed mixes a parent seed and a stream identifier into a new seed
// using the SplitMix64 finalizer, so neighbouring stream ids give
// uncorrelated seeds. The result is never 0.
//
// Complexity: O(1).
func DeriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	if x == 0 {
		return DefaultSeed
	}

	return int64(x)
}

// Derive creates an independent generator from base and a stream id.
// base == nil uses DefaultSeed as the parent; otherwise base advances by
// one Int63 draw, so repeated derivations with the same stream differ.
//
// Complexity: O(1).
func Derive(base *rand.Rand, stream uint64) *rand.Rand {
	parent := DefaultSeed
	if base != nil {
		parent = base.Int63()
	}

	return rand.New(rand.NewSource(DeriveSeed(parent, stream)))
}

// Uniform draws from [lo, hi). lo == hi always yields lo.
//
// Complexity: O(1).
func Uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// IntBetween draws from [lo, hi]; callers guarantee lo <= hi.
//
// Complexity: O(1).
func IntBetween(r *rand.Rand, lo, hi int) int {
	return lo + r.Intn(hi-lo+1)
}
