// SPDX-License-Identifier: MIT
// Package: pathmap/builder
//
// impl_noise.go — Noise(amplitude) constructor.
//
// Contract:
//   • Adds rng.Float64()*amplitude to every voxel in index order.
//   • Requires cfg.rng (WithSeed/WithRand) → else ErrNeedRandSource.
//   • amplitude < 0 → ErrBadSize.

package builder

import (
	"fmt"

	"github.com/katalvlaran/pathmap/header"
)

const methodNoise = "Noise"

// Noise returns a Constructor that adds uniform noise in [0, amplitude).
func Noise(amplitude float64) Constructor {
	return func(_ *header.Header, vol []float64, cfg builderConfig) error {
		if amplitude < 0 {
			return fmt.Errorf("%s: amplitude=%v: %w", methodNoise, amplitude, ErrBadSize)
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: %w", methodNoise, ErrNeedRandSource)
		}
		for i := range vol {
			vol[i] += cfg.rng.Float64() * amplitude
		}
		return nil
	}
}
