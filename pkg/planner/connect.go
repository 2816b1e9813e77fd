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
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Connect runs one bidirectional search between start and goal.
//
// Description:
//
//	Two trees rooted at start and goal grow alternately. Each iteration
//	grows the currently smaller tree toward a fresh random sample, then
//	grows the other tree toward the configuration just reached — the
//	connect step. When the connect step consumes its entire extension
//	without collision, the trees have met and the retraced chains are
//	spliced into a path.
//
// Inputs:
//   - ctx: Carries cancellation and the wall-clock deadline. Checked at
//     iteration boundaries only, never mid-extension.
//   - s: Configuration space capabilities. Must not be nil.
//   - start, goal: Endpoint configurations.
//   - opts: Search tuning; nil selects all defaults. Attempts, Smoother,
//     and Parallel are Plan-level concerns and are ignored here.
//
// Outputs:
//   - *Result: Found reports whether the trees met within budget; Stats
//     describes the work done either way. Never nil on success.
//   - error: Non-nil only for invalid options or an invalid space.
//
// A blocked start or goal yields Found == false immediately, without
// consuming a single sample.
//
// Example:
//
//	result, err := planner.Connect(ctx, space, start, goal, nil)
//	if err != nil {
//	    return fmt.Errorf("connect: %w", err)
//	}
//	if !result.Found {
//	    // expected outcome, not an error
//	}
//
// Thread Safety: Safe for concurrent use as long as the capability
// functions are.
func Connect[C any](ctx context.Context, s Space[C], start, goal C, opts *Options[C]) (*Result[C], error) {
	if err := validateSpace(s); err != nil {
		return nil, err
	}
	o, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	if o.MaxTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.MaxTime)
		defer cancel()
	}

	ctx, span := plannerTracer.Start(ctx, "planner.Connect",
		trace.WithAttributes(
			attribute.Int("iterations", o.Iterations),
			attribute.Int("tree_frequency", o.TreeFrequency),
		),
	)
	defer span.End()

	began := time.Now()
	st := Stats{Attempts: 1}
	cs := countingSpace[C]{s: s, stats: &st}

	path, found := connectTrees(ctx, cs, start, goal, o, 0, &st)
	st.Duration = time.Since(began)

	span.SetAttributes(
		attribute.Bool("found", found),
		attribute.Int("iterations_used", st.Iterations),
		attribute.Int("start_nodes", st.StartNodes),
		attribute.Int("goal_nodes", st.GoalNodes),
	)
	span.SetStatus(codes.Ok, "search complete")
	return &Result[C]{Path: path, Found: found, Stats: st}, nil
}

// connectTrees is the bidirectional search loop shared by Connect and
// Plan. The caller supplies validated options and a stats sink; the space
// is expected to be a counting wrapper so capability calls are tallied.
func connectTrees[C any](ctx context.Context, s Space[C], start, goal C, o Options[C], attempt int, st *Stats) (Path[C], bool) {
	if s.Collides(start) || s.Collides(goal) {
		return nil, false
	}

	startTree, goalTree := NewTree(start), NewTree(goal)
	defer func() {
		st.StartNodes = startTree.Len()
		st.GoalNodes = goalTree.Len()
	}()

	for iteration := 0; iteration < o.Iterations; iteration++ {
		if ctx.Err() != nil {
			break
		}
		st.Iterations++

		// Always grow the smaller tree toward the sample; this keeps the
		// two trees' extents comparable.
		swap := startTree.Len() > goalTree.Len()
		tree1, tree2 := startTree, goalTree
		if swap {
			tree1, tree2 = goalTree, startTree
		}

		last1, _ := growToward(s, tree1, s.Sample(), swap, o.TreeFrequency)
		last2, reached := growToward(s, tree2, tree1.Config(last1), !swap, o.TreeFrequency)

		if o.Observer != nil {
			o.Observer(Progress{
				Attempt:    attempt,
				Iteration:  iteration,
				StartNodes: startTree.Len(),
				GoalNodes:  goalTree.Len(),
			})
		}

		if !reached {
			continue
		}
		return splice(tree1, last1, tree2, last2, swap), true
	}
	return nil, false
}

// splice joins the two retraced chains at the meeting point. The junction
// configuration is tree1's last-reached node. When the connect step ran
// forward (swap set, tree2 being the start tree), tree2's chain terminated
// exactly at the junction and the start side would repeat it, so one copy
// is dropped. When the connect step ran reversed, tree2's chain stops one
// extension step short of the junction and every configuration is kept.
func splice[C any](tree1 *Tree[C], last1 int, tree2 *Tree[C], last2 int, swap bool) Path[C] {
	path1 := tree1.Retrace(last1)
	path2 := tree2.Retrace(last2)
	if swap {
		path1, path2 = path2, path1
		path1 = path1[:len(path1)-1]
	}
	joined := make(Path[C], 0, len(path1)+len(path2))
	joined = append(joined, path1...)
	for i := len(path2) - 1; i >= 0; i-- {
		joined = append(joined, path2[i])
	}
	return joined
}
