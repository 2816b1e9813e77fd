// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package space provides a reference implementation of the planner's
// capability contract for axis-aligned box worlds in R^n: Euclidean
// distance, uniform seeded sampling, fixed-resolution linear interpolation,
// and collision against blocked regions. It backs the scenario files, the
// CLI, and the planning service; callers with richer geometry implement
// planner.Space themselves.
package space

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/AleutianAI/AleutianMotion/pkg/planner"
)

// DefaultResolution is the per-axis interpolation step used when a Config
// leaves Resolutions nil.
const DefaultResolution = 0.05

// Vector is a configuration in R^n. The planner treats it as opaque; this
// package gives it geometric meaning.
type Vector []float64

// Clone returns an independent copy of v.
func (v Vector) Clone() Vector {
	return append(Vector(nil), v...)
}

// Config describes a box world. Lower and Upper are the per-axis bounds,
// Resolutions the per-axis interpolation step (nil selects
// DefaultResolution on every axis), Obstacles the blocked regions, and Seed
// feeds the sampling generator — the same seed always yields the same
// sample sequence.
type Config struct {
	Lower       Vector
	Upper       Vector
	Resolutions Vector
	Obstacles   []Region
	Seed        uint64
}

// Box is an axis-aligned box world implementing planner.Space[Vector].
//
// Distance is Euclidean. Sample draws uniformly inside the bounds from a
// seeded generator. Extend interpolates linearly with enough steps that no
// axis moves more than its resolution per step; its output excludes the
// origin and terminates exactly at the target. Collides reports
// out-of-bounds configurations and regions as blocked.
//
// Sample mutates generator state, so a Box is not safe for concurrent use;
// create one Box per goroutine (same seed, same behavior) or guard it
// externally.
type Box struct {
	lower     Vector
	upper     Vector
	res       Vector
	obstacles []Region
	rng       *rand.Rand
}

// Compile-time check that Box satisfies the capability contract.
var _ planner.Space[Vector] = (*Box)(nil)

// New validates cfg and builds the box world. The configuration vectors are
// copied, so later mutation of cfg does not affect the box.
func New(cfg Config) (*Box, error) {
	dim := len(cfg.Lower)
	if dim == 0 {
		return nil, fmt.Errorf("%w: no axes", ErrInvalidBounds)
	}
	if len(cfg.Upper) != dim {
		return nil, fmt.Errorf("%w: lower has %d axes, upper has %d",
			ErrDimensionMismatch, dim, len(cfg.Upper))
	}
	for i := range cfg.Lower {
		if cfg.Lower[i] > cfg.Upper[i] {
			return nil, fmt.Errorf("%w: axis %d has lower %v above upper %v",
				ErrInvalidBounds, i, cfg.Lower[i], cfg.Upper[i])
		}
	}
	res := cfg.Resolutions.Clone()
	if res == nil {
		res = make(Vector, dim)
		for i := range res {
			res[i] = DefaultResolution
		}
	}
	if len(res) != dim {
		return nil, fmt.Errorf("%w: %d axes, %d resolutions",
			ErrDimensionMismatch, dim, len(res))
	}
	for i, r := range res {
		if r <= 0 || math.IsNaN(r) {
			return nil, fmt.Errorf("%w: axis %d has resolution %v",
				ErrInvalidResolution, i, r)
		}
	}
	return &Box{
		lower:     cfg.Lower.Clone(),
		upper:     cfg.Upper.Clone(),
		res:       res,
		obstacles: append([]Region(nil), cfg.Obstacles...),
		rng:       rand.New(rand.NewPCG(cfg.Seed, cfg.Seed)),
	}, nil
}

// Dim returns the number of axes.
func (b *Box) Dim() int { return len(b.lower) }

// Distance returns the Euclidean distance between two configurations.
func (b *Box) Distance(a, c Vector) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - c[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Sample draws one configuration uniformly inside the bounds.
func (b *Box) Sample() Vector {
	q := make(Vector, len(b.lower))
	for i := range q {
		q[i] = b.lower[i] + b.rng.Float64()*(b.upper[i]-b.lower[i])
	}
	return q
}

// Extend interpolates from `from` toward `to` in the fewest steps that keep
// every axis within its resolution per step. The output excludes `from`,
// terminates exactly at `to`, and is freshly allocated. Coincident
// configurations yield a single element equal to `to`.
func (b *Box) Extend(from, to Vector) []Vector {
	steps := 0
	for i := range b.res {
		if n := int(math.Ceil(math.Abs(to[i]-from[i]) / b.res[i])); n > steps {
			steps = n
		}
	}
	if steps == 0 {
		return []Vector{to.Clone()}
	}
	out := make([]Vector, steps)
	for k := 1; k < steps; k++ {
		f := float64(k) / float64(steps)
		q := make(Vector, len(from))
		for i := range q {
			q[i] = from[i] + (to[i]-from[i])*f
		}
		out[k-1] = q
	}
	out[steps-1] = to.Clone()
	return out
}

// Collides reports whether q is outside the bounds or inside any region.
func (b *Box) Collides(q Vector) bool {
	for i := range b.lower {
		if q[i] < b.lower[i] || q[i] > b.upper[i] {
			return true
		}
	}
	for _, region := range b.obstacles {
		if region.Contains(q) {
			return true
		}
	}
	return false
}
