// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package smooth post-processes planner paths. The search favors the first
// feasible path over a good one, so raw output tends to wander; Shortcut
// implements the standard random-shortcut pass that repeatedly tries to
// replace a random sub-path with a direct extension between its endpoints.
package smooth

import (
	"context"
	"math/rand/v2"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AleutianAI/AleutianMotion/pkg/planner"
)

var smoothTracer = otel.Tracer("motion.smooth")

// Shortcut is a random-shortcut path smoother. Each iteration picks two
// waypoint indices at random, extends directly between them, and adopts
// the extension when it is both strictly shorter than the sub-path it
// replaces and collision-free along its whole length. Endpoints are never
// touched, so the result starts and ends where the input does.
//
// The iteration count comes from the caller (Plan forwards
// Options.SmoothingIterations), making the pass anytime: stopping early
// just leaves more wander in the path.
//
// Shortcut draws from its own seeded generator and is deterministic for a
// fixed seed and input. It is not safe for concurrent use; give each
// concurrent planning call its own instance.
type Shortcut[C any] struct {
	rng *rand.Rand
}

// Compile-time check that Shortcut satisfies planner.Smoother.
var _ planner.Smoother[int] = (*Shortcut[int])(nil)

// NewShortcut returns a Shortcut seeded for reproducible smoothing.
func NewShortcut[C any](seed uint64) *Shortcut[C] {
	return &Shortcut[C]{rng: rand.New(rand.NewPCG(seed, seed))}
}

// Smooth runs up to `iterations` shortcut attempts on path and returns the
// refined copy. The input slice is never mutated. Paths of two or fewer
// configurations are already as short as they can get and are returned as
// a copy immediately; an expired context stops the pass and returns the
// best path refined so far.
func (sc *Shortcut[C]) Smooth(ctx context.Context, s planner.Space[C], path planner.Path[C], iterations int) planner.Path[C] {
	smoothed := append(planner.Path[C](nil), path...)

	_, span := smoothTracer.Start(ctx, "smooth.Shortcut",
		trace.WithAttributes(
			attribute.Int("iterations", iterations),
			attribute.Int("input_length", len(path)),
		),
	)
	defer span.End()

	accepted := 0
	for iter := 0; iter < iterations; iter++ {
		if ctx.Err() != nil || len(smoothed) <= 2 {
			break
		}
		i := sc.rng.IntN(len(smoothed))
		j := sc.rng.IntN(len(smoothed))
		if i > j {
			i, j = j, i
		}
		// Adjacent or identical indices have nothing to cut.
		if j-i <= 1 {
			continue
		}
		shortcut := s.Extend(smoothed[i], smoothed[j])
		// The sub-path being replaced contributes j-i configurations
		// after index i; only a strictly shorter extension is an
		// improvement, which also rules out re-adopting collinear runs.
		if len(shortcut) >= j-i {
			continue
		}
		if anyCollides(s, shortcut) {
			continue
		}
		next := make(planner.Path[C], 0, i+1+len(shortcut)+len(smoothed)-j-1)
		next = append(next, smoothed[:i+1]...)
		next = append(next, shortcut...)
		next = append(next, smoothed[j+1:]...)
		smoothed = next
		accepted++
	}

	span.SetAttributes(
		attribute.Int("accepted", accepted),
		attribute.Int("output_length", len(smoothed)),
	)
	span.SetStatus(codes.Ok, "smoothing complete")
	return smoothed
}

func anyCollides[C any](s planner.Space[C], configs []C) bool {
	for _, q := range configs {
		if s.Collides(q) {
			return true
		}
	}
	return false
}
