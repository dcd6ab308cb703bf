// SPDX-License-Identifier: MIT
// Package: pathmap/builder
//
// api.go — thin public entry-point for the builder package.
//
// Design contract:
//   - One orchestrator: BuildVolume(h, bopts, cons...). Allocates the volume,
//     resolves cfg, runs cons in order.
//   - Constructors are implemented in impl_*.go.
//   - Safety: never panic; return sentinel errors from constructors.

package builder

import (
	"fmt"

	"github.com/katalvlaran/pathmap/header"
)

// Constructor applies a deterministic mutation to a volume laid out like h.
// Constructors validate parameters early and return sentinel errors.
type Constructor func(h *header.Header, vol []float64, cfg builderConfig) error

// BuildVolume allocates a zeroed volume of h.Voxels() values, resolves the
// builder configuration from bopts and applies all constructors in order.
// Any constructor error is wrapped with "BuildVolume: %w".
//
// Complexity: Σ cost of each constructor, each O(V) at most.
func BuildVolume(h *header.Header, bopts []BuilderOption, cons ...Constructor) ([]float64, error) {
	if h == nil {
		return nil, fmt.Errorf("BuildVolume: nil header: %w", ErrBadSize)
	}
	vol := make([]float64, h.Voxels())
	if err := Apply(h, vol, bopts, cons...); err != nil {
		return nil, err
	}
	return vol, nil
}

// Apply runs constructors on an existing volume, e.g. a grid's current densities.
func Apply(h *header.Header, vol []float64, bopts []BuilderOption, cons ...Constructor) error {
	if h == nil || len(vol) != h.Voxels() {
		return fmt.Errorf("BuildVolume: volume of %d values: %w", len(vol), ErrBadSize)
	}
	cfg := newBuilderConfig(bopts...)
	for i, fn := range cons {
		if fn == nil {
			return fmt.Errorf("BuildVolume: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(h, vol, cfg); err != nil {
			return fmt.Errorf("BuildVolume: %w", err)
		}
	}
	return nil
}
