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
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var plannerTracer = otel.Tracer("motion.planner")

// Plan finds a collision-free path from start to goal.
//
// Description:
//
//	The orchestrator entry point. It rejects blocked endpoints, tries the
//	single-extension shortcut, and otherwise runs up to Options.Attempts
//	independent bidirectional searches under the shared deadline, each
//	from a fresh pair of trees. The first path found is returned, after
//	an optional smoothing pass.
//
// Inputs:
//   - ctx: Carries cancellation and the wall-clock deadline, checked
//     between iterations and between attempts. Options.MaxTime adds a
//     deadline relative to this call.
//   - s: Configuration space capabilities. Must not be nil.
//   - start, goal: Endpoint configurations.
//   - opts: Tuning parameters; nil selects all defaults.
//
// Outputs:
//   - *Result: Found reports success; Stats covers all attempts. Never
//     nil when error is nil.
//   - error: Non-nil only for invalid options or an invalid space.
//     Exhausting the budget is not an error.
//
// Example:
//
//	opts := planner.DefaultOptions[space.Vector]()
//	opts.Smoother = smooth.NewShortcut[space.Vector](42)
//	result, err := planner.Plan(ctx, box, start, goal, opts)
//	if err != nil {
//	    return err
//	}
//	if !result.Found {
//	    log.Println("no path within budget")
//	}
//
// Thread Safety: Safe for concurrent use as long as the capability
// functions are.
func Plan[C any](ctx context.Context, s Space[C], start, goal C, opts *Options[C]) (*Result[C], error) {
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

	ctx, span := plannerTracer.Start(ctx, "planner.Plan",
		trace.WithAttributes(
			attribute.Int("iterations", o.Iterations),
			attribute.Int("attempts", o.Attempts),
			attribute.Int("tree_frequency", o.TreeFrequency),
			attribute.Int("parallel", o.Parallel),
			attribute.Bool("smoothing", o.Smoother != nil),
		),
	)
	defer span.End()

	began := time.Now()
	st := Stats{}
	cs := countingSpace[C]{s: s, stats: &st}

	finish := func(path Path[C], found bool, status string) *Result[C] {
		st.Duration = time.Since(began)
		span.SetAttributes(
			attribute.Bool("found", found),
			attribute.Int("iterations_used", st.Iterations),
			attribute.Int("attempts_used", st.Attempts),
			attribute.Int("path_length", len(path)),
		)
		span.SetStatus(codes.Ok, status)
		return &Result[C]{Path: path, Found: found, Stats: st}
	}

	if cs.Collides(start) || cs.Collides(goal) {
		slog.Debug("planning rejected: endpoint in collision")
		return finish(nil, false, "endpoint in collision"), nil
	}

	if path, ok := directSegment[C](cs, start, goal); ok {
		st.DirectHit = true
		slog.Debug("direct extension succeeded, search skipped",
			slog.Int("path_length", len(path)))
		return finish(path, true, "direct path"), nil
	}

	var (
		path  Path[C]
		found bool
	)
	if o.Parallel > 1 {
		path, found = planParallel(ctx, s, start, goal, o, &st)
	} else {
		for attempt := 0; attempt < o.Attempts; attempt++ {
			if ctx.Err() != nil {
				break
			}
			st.Attempts = attempt + 1
			if path, found = connectTrees(ctx, cs, start, goal, o, attempt, &st); found {
				break
			}
		}
	}
	if !found {
		slog.Info("motion planning exhausted budget",
			slog.Int("attempts", st.Attempts),
			slog.Int("iterations", st.Iterations),
			slog.Duration("duration", time.Since(began)))
		return finish(nil, false, "budget exhausted"), nil
	}

	if o.Smoother != nil {
		path = o.Smoother.Smooth(ctx, cs, path, o.SmoothingIterations)
		st.Smoothed = true
	}
	slog.Info("motion plan found",
		slog.Int("path_length", len(path)),
		slog.Int("attempts", st.Attempts),
		slog.Int("iterations", st.Iterations),
		slog.Bool("smoothed", st.Smoothed),
		slog.Duration("duration", time.Since(began)))
	return finish(path, true, "path found"), nil
}

// planParallel races search attempts on up to o.Parallel goroutines. The
// first attempt to find a path cancels the rest; the winner's counters are
// merged into st. Losing attempts are discarded wholesale so the merged
// stats stay meaningful.
func planParallel[C any](ctx context.Context, s Space[C], start, goal C, o Options[C], st *Stats) (Path[C], bool) {
	rctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu      sync.Mutex
		winner  Path[C]
		wstats  Stats
		won     bool
		started atomic.Int32
	)
	g := new(errgroup.Group)
	g.SetLimit(o.Parallel)
	for attempt := 0; attempt < o.Attempts; attempt++ {
		g.Go(func() error {
			if rctx.Err() != nil {
				return nil
			}
			started.Add(1)
			attemptStats := Stats{}
			acs := countingSpace[C]{s: s, stats: &attemptStats}
			path, found := connectTrees(rctx, acs, start, goal, o, attempt, &attemptStats)
			if !found {
				return nil
			}
			mu.Lock()
			if !won {
				winner, wstats, won = path, attemptStats, true
				cancel()
			}
			mu.Unlock()
			return nil
		})
	}
	// Workers only ever return nil; Wait is used purely as a barrier.
	_ = g.Wait()

	st.Attempts = int(started.Load())
	if !won {
		return nil, false
	}
	st.Iterations += wstats.Iterations
	st.Samples += wstats.Samples
	st.Extensions += wstats.Extensions
	st.CollisionChecks += wstats.CollisionChecks
	st.StartNodes = wstats.StartNodes
	st.GoalNodes = wstats.GoalNodes
	return winner, true
}
