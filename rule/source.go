// SPDX-License-Identifier: MIT
// Package: kahuna/rule
//
// source.go: uniform random draws for observers.
//
// Goals:
//   - Determinism: same seed ⇒ identical draws ⇒ identical solutions.
//   - No hidden time-based sources; callers own every generator.
//   - Independent streams for concurrent solves via DeriveSource.
//
// Concurrency:
//   - *rand.Rand is NOT goroutine-safe. Give each solve its own Source.

package rule

import "math/rand/v2"

// Source draws a uniform integer in [0, n). n is always > 0 when called by
// this package. *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// defaultSeed replaces a zero seed so "unset" still means reproducible.
const defaultSeed uint64 = 1

// streamSalt separates the two PCG words derived from one seed.
const streamSalt uint64 = 0xda3e39cb94b95bdb

// NewSource returns a deterministic PCG-backed generator.
// Policy: seed==0 ⇒ defaultSeed; otherwise the seed is used verbatim.
// Complexity: O(1).
func NewSource(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewPCG(seed, seed^streamSalt))
}

// DeriveSource returns an independent deterministic generator for stream
// number stream under a parent seed. Use one stream per concurrent solve.
// Complexity: O(1).
func DeriveSource(seed, stream uint64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return NewSource(deriveSeed(seed, stream))
}

// deriveSeed mixes a parent seed and a stream id with the SplitMix64
// finalizer so neighboring streams are decorrelated.
func deriveSeed(parent, stream uint64) uint64 {
	x := parent ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	if x == 0 {
		return defaultSeed
	}
	return x
}
