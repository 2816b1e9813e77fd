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

import (
	"fmt"
	"time"
)

// Default search parameters. A zero value in Options selects the
// corresponding default.
const (
	// DefaultIterations caps the outer loop of a single bidirectional
	// search.
	DefaultIterations = 20

	// DefaultTreeFrequency persists every extension configuration as a
	// tree node.
	DefaultTreeFrequency = 1

	// DefaultAttempts is the total number of searches Plan runs before
	// giving up: one initial try plus two restarts.
	DefaultAttempts = 3

	// DefaultSmoothingIterations bounds the smoothing pass when a Smoother
	// is configured.
	DefaultSmoothingIterations = 20
)

// Options tunes a planning call. The zero value (or a nil pointer) selects
// all defaults. Zero-valued fields mean "use the default"; explicitly
// invalid values — negative counts, a tree frequency below 1 — are rejected
// eagerly before any search work begins.
type Options[C any] struct {
	// Iterations caps the outer loop of each bidirectional search.
	// Zero selects DefaultIterations.
	Iterations int

	// TreeFrequency controls how densely extension configurations are
	// persisted as tree nodes: a node is kept at every TreeFrequency-th
	// position of a safe extension, plus always the last safe
	// configuration. Zero selects DefaultTreeFrequency; negative values
	// are rejected with ErrInvalidTreeFrequency, so the effective
	// frequency is always at least 1.
	TreeFrequency int

	// Attempts is the total number of independent searches Plan may run,
	// counting the first try; each restart starts from a fresh pair of
	// trees. Zero selects DefaultAttempts. Connect ignores this field.
	Attempts int

	// MaxTime, when positive, bounds the whole call with an additional
	// context deadline. Zero adds no deadline; the call is still bounded
	// by whatever deadline ctx already carries.
	MaxTime time.Duration

	// SmoothingIterations bounds the Smoother pass. Zero selects
	// DefaultSmoothingIterations. Ignored when Smoother is nil.
	SmoothingIterations int

	// Smoother post-processes a found path under the remaining budget.
	// Nil disables smoothing.
	Smoother Smoother[C]

	// Observer, when non-nil, receives a Progress snapshot after every
	// search iteration. It must return quickly; it is called on the
	// search goroutine and can be invoked from multiple goroutines when
	// Parallel is enabled. The observer cannot influence the search.
	Observer func(Progress)

	// Parallel, when greater than 1, lets Plan run up to that many
	// attempts concurrently, returning the first path found. The
	// capability functions must be safe for concurrent use. Values above
	// Attempts are clamped. Zero or one keeps attempts sequential and the
	// results reproducible.
	Parallel int
}

// DefaultOptions returns an Options populated with every default, for
// callers who want to tweak a single field without zero-value semantics.
func DefaultOptions[C any]() *Options[C] {
	return &Options[C]{
		Iterations:          DefaultIterations,
		TreeFrequency:       DefaultTreeFrequency,
		Attempts:            DefaultAttempts,
		SmoothingIterations: DefaultSmoothingIterations,
	}
}

// withDefaults validates o and returns a copy with zero values replaced by
// defaults. A nil receiver selects all defaults.
func (o *Options[C]) withDefaults() (Options[C], error) {
	var out Options[C]
	if o != nil {
		out = *o
	}
	if out.Iterations < 0 {
		return out, fmt.Errorf("%w: %d", ErrInvalidIterations, out.Iterations)
	}
	if out.Iterations == 0 {
		out.Iterations = DefaultIterations
	}
	if out.TreeFrequency < 0 {
		return out, fmt.Errorf("%w: %d", ErrInvalidTreeFrequency, out.TreeFrequency)
	}
	if out.TreeFrequency == 0 {
		out.TreeFrequency = DefaultTreeFrequency
	}
	if out.Attempts < 0 {
		return out, fmt.Errorf("%w: %d", ErrInvalidAttempts, out.Attempts)
	}
	if out.Attempts == 0 {
		out.Attempts = DefaultAttempts
	}
	if out.SmoothingIterations < 0 {
		return out, fmt.Errorf("%w: %d", ErrInvalidSmoothingIterations, out.SmoothingIterations)
	}
	if out.SmoothingIterations == 0 {
		out.SmoothingIterations = DefaultSmoothingIterations
	}
	if out.MaxTime < 0 {
		return out, fmt.Errorf("%w: %s", ErrInvalidMaxTime, out.MaxTime)
	}
	if out.Parallel < 0 {
		return out, fmt.Errorf("%w: %d", ErrInvalidParallelism, out.Parallel)
	}
	if out.Parallel > out.Attempts {
		out.Parallel = out.Attempts
	}
	return out, nil
}
