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

import "time"

// Path is an ordered sequence of configurations from start to goal,
// inclusive of both. Consecutive elements are adjacent in the output of the
// extension capability, up to the tree-frequency subsampling density.
type Path[C any] []C

// Result is the outcome of a planning call. Found distinguishes "no path
// within budget" — an expected outcome, never an error — from success.
type Result[C any] struct {
	// Path holds the collision-free configuration sequence when Found is
	// true, and is nil otherwise.
	Path Path[C]

	// Found reports whether a path was produced within the budget.
	Found bool

	// Stats describes the work performed, whether or not a path was found.
	Stats Stats
}

// Stats summarizes the work a planning call performed. Plan accumulates
// counters across sequential attempts; with Options.Parallel enabled only
// the winning attempt's counters are merged, since losing attempts race and
// their totals are not meaningful.
type Stats struct {
	// Iterations is the total number of outer search iterations consumed.
	Iterations int

	// Attempts is the number of bidirectional searches started.
	Attempts int

	// StartNodes and GoalNodes are the tree sizes of the final attempt.
	StartNodes int
	GoalNodes  int

	// Samples, Extensions, and CollisionChecks count capability calls.
	Samples         int
	Extensions      int
	CollisionChecks int

	// DirectHit reports that the single-extension shortcut solved the
	// problem and the search never ran.
	DirectHit bool

	// Smoothed reports that a Smoother post-processed the returned path.
	Smoothed bool

	// Duration is the wall-clock time of the whole call.
	Duration time.Duration
}

// Progress is the per-iteration snapshot passed to Options.Observer.
type Progress struct {
	// Attempt is the zero-based index of the search attempt.
	Attempt int

	// Iteration is the zero-based outer-loop iteration within the attempt.
	Iteration int

	// StartNodes and GoalNodes are the current tree sizes.
	StartNodes int
	GoalNodes  int
}
