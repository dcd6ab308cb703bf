// SPDX-License-Identifier: MIT
// Package: pathmap/builder
//
// options.go — functional options for the builder package.
//
// Contract:
//   • Options are functional (type BuilderOption func(*builderConfig)).
//   • Option constructors validate and panic on meaningless inputs.
//   • Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import "math/rand"

// BuilderOption customizes the configuration shared by all constructors of
// one BuildVolume call.
type BuilderOption func(*builderConfig)

// WithRand provides an explicit RNG for stochastic constructors. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a new *rand.Rand with the given seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithAdditive makes Plane, Ball and Shell add their value to the voxel
// instead of overwriting it.
func WithAdditive() BuilderOption {
	return func(c *builderConfig) {
		c.additive = true
	}
}
