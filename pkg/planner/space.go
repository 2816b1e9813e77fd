// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package planner

import "fmt"

// Space supplies the four capability functions the planner needs to search
// a configuration space. The planner treats configurations as opaque values
// and these methods as the only ground truth about the space.
//
// All methods must be deterministic for fixed inputs except Sample, which
// may be stochastic. None of them may retain or mutate their arguments.
type Space[C any] interface {
	// Distance returns a non-negative proximity measure between two
	// configurations. It is used only to select nearest tree nodes and
	// never gates success, so any quasi-metric works.
	Distance(a, b C) float64

	// Sample produces one configuration per call, typically drawn at
	// random from the space. The planner calls it once per search
	// iteration.
	Sample() C

	// Extend returns the ordered, finite sequence of configurations
	// produced by steering from `from` toward `to`. The sequence excludes
	// `from`, terminates exactly at `to` when steering is possible, and
	// adjacent configurations must be close enough that checking each
	// element individually validates the whole segment. The output need
	// not be symmetric under argument swap. An empty sequence is treated
	// as already-at-target.
	//
	// A non-terminating or infinite extension violates this contract and
	// is not guarded against.
	Extend(from, to C) []C

	// Collides reports whether a configuration is blocked. It must be safe
	// to call on every configuration, including start and goal.
	Collides(q C) bool
}

// Funcs adapts four standalone capability functions into a Space. It is the
// closure-friendly alternative to implementing the interface on a named
// type.
//
//	funcs := &planner.Funcs[float64]{
//	    DistanceFn: func(a, b float64) float64 { return math.Abs(a - b) },
//	    SampleFn:   rng.Float64,
//	    ExtendFn:   stepToward,
//	    CollidesFn: blocked,
//	}
//	result, err := planner.Plan(ctx, funcs, 0.0, 10.0, nil)
//
// All four fields must be non-nil; Plan, Connect, and DirectPath validate
// this eagerly and return ErrMissingCapability naming the offending field.
type Funcs[C any] struct {
	DistanceFn func(a, b C) float64
	SampleFn   func() C
	ExtendFn   func(from, to C) []C
	CollidesFn func(q C) bool
}

// Compile-time check that Funcs satisfies Space.
var _ Space[int] = (*Funcs[int])(nil)

func (f *Funcs[C]) Distance(a, b C) float64 { return f.DistanceFn(a, b) }
func (f *Funcs[C]) Sample() C               { return f.SampleFn() }
func (f *Funcs[C]) Extend(from, to C) []C   { return f.ExtendFn(from, to) }
func (f *Funcs[C]) Collides(q C) bool       { return f.CollidesFn(q) }

// Validate reports the first missing capability function, or nil when all
// four are present.
func (f *Funcs[C]) Validate() error {
	if f == nil {
		return ErrNilSpace
	}
	if f.DistanceFn == nil {
		return fmt.Errorf("%w: DistanceFn", ErrMissingCapability)
	}
	if f.SampleFn == nil {
		return fmt.Errorf("%w: SampleFn", ErrMissingCapability)
	}
	if f.ExtendFn == nil {
		return fmt.Errorf("%w: ExtendFn", ErrMissingCapability)
	}
	if f.CollidesFn == nil {
		return fmt.Errorf("%w: CollidesFn", ErrMissingCapability)
	}
	return nil
}

// validateSpace rejects nil spaces and delegates to the space's own
// Validate method when it has one, so Funcs adapters with missing fields
// fail before any search work.
func validateSpace[C any](s Space[C]) error {
	if s == nil {
		return ErrNilSpace
	}
	if v, ok := s.(interface{ Validate() error }); ok {
		return v.Validate()
	}
	return nil
}

// countingSpace wraps a Space and tallies capability calls into a Stats
// value. Each search attempt owns its wrapper, so the counters need no
// synchronization.
type countingSpace[C any] struct {
	s     Space[C]
	stats *Stats
}

func (c countingSpace[C]) Distance(a, b C) float64 { return c.s.Distance(a, b) }

func (c countingSpace[C]) Sample() C {
	c.stats.Samples++
	return c.s.Sample()
}

func (c countingSpace[C]) Extend(from, to C) []C {
	c.stats.Extensions++
	return c.s.Extend(from, to)
}

func (c countingSpace[C]) Collides(q C) bool {
	c.stats.CollisionChecks++
	return c.s.Collides(q)
}
