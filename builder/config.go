// SPDX-License-Identifier: MIT
// Package: pathmap/builder
//
// config.go — internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • rng      = nil   (pure/deterministic unless seeded)
//   • additive = false (constructors overwrite voxels)

package builder

import "math/rand"

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors.
type builderConfig struct {
	// RNG for stochastic constructors; nil means "no randomness".
	rng *rand.Rand
	// additive switches set-semantics to add-semantics for shape constructors.
	additive bool
}

// newBuilderConfig applies options in order (later overrides earlier).
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	var cfg builderConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// put writes v into vol[i] honoring the additive flag.
func (c builderConfig) put(vol []float64, i int, v float64) {
	if c.additive {
		vol[i] += v
		return
	}
	vol[i] = v
}
