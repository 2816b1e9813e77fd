// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/AleutianMotion/pkg/planner"
	"github.com/AleutianAI/AleutianMotion/services/planner/datatypes"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	benchScenarioPath string        // Scenario YAML file
	benchRuns         int           // Number of seeded runs
	benchSeed         uint64        // Base seed; run i uses benchSeed + i
	benchParallel     int           // Concurrent runs; 1 is sequential
	benchMaxTime      time.Duration // Per-run wall-clock budget
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// benchCmd measures planner behavior on a scenario across many seeds.
//
// # Description
//
// Runs the planner benchRuns times, seeding run i with --seed + i so the
// whole batch is reproducible, and reports the aggregate success rate
// and mean search effort. Each run builds a fresh space, so runs are
// independent and --parallel can fan them out safely.
//
// # Examples
//
//	motion bench --scenario corridor.yaml --runs 50
//	motion bench --scenario corridor.yaml --runs 200 --parallel 8 --json
//
// # Limitations
//
//   - Wall-clock percentiles are not reported; durations are means only
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark the planner on a scenario across many seeds",
	RunE:  runBenchCommand,
}

func init() {
	benchCmd.Flags().StringVarP(&benchScenarioPath, "scenario", "s", "",
		"Path to the scenario YAML file (required)")
	benchCmd.Flags().IntVar(&benchRuns, "runs", 20,
		"Number of seeded planning runs")
	benchCmd.Flags().Uint64Var(&benchSeed, "seed", 0,
		"Base seed; run i plans with seed+i")
	benchCmd.Flags().IntVar(&benchParallel, "parallel", 1,
		"Number of runs to execute concurrently")
	benchCmd.Flags().DurationVar(&benchMaxTime, "max-time", 0,
		"Per-run wall-clock budget; 0 keeps the iteration budget only")
	_ = benchCmd.MarkFlagRequired("scenario")
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

// benchOutcome is the per-run record fed to the aggregation.
type benchOutcome struct {
	Seed    uint64
	Found   bool
	Stats   planner.Stats
	PathLen int
}

// benchSummary is the aggregate report, shaped for JSON output.
type benchSummary struct {
	Scenario        string  `json:"scenario,omitempty"`
	Runs            int     `json:"runs"`
	Found           int     `json:"found"`
	SuccessRate     float64 `json:"success_rate"`
	DirectHits      int     `json:"direct_hits"`
	MeanIterations  float64 `json:"mean_iterations"`
	MeanAttempts    float64 `json:"mean_attempts"`
	MeanPathLen     float64 `json:"mean_path_length"`
	MeanDurationMs  float64 `json:"mean_duration_ms"`
	TotalDurationMs int64   `json:"total_duration_ms"`
}

func runBenchCommand(cmd *cobra.Command, args []string) error {
	if benchRuns < 1 {
		return fmt.Errorf("--runs must be at least 1, got %d", benchRuns)
	}
	if benchParallel < 1 {
		return fmt.Errorf("--parallel must be at least 1, got %d", benchParallel)
	}

	spec, err := loadScenarioFile(benchScenarioPath)
	if err != nil {
		return err
	}
	if err := requireEndpoints(spec); err != nil {
		return err
	}

	began := time.Now()
	outcomes, err := runBench(cmd.Context(), spec, benchSeed, benchRuns, benchParallel, benchMaxTime)
	if err != nil {
		return err
	}

	summary := aggregateBench(outcomes)
	summary.Scenario = spec.Name
	summary.TotalDurationMs = time.Since(began).Milliseconds()

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	fmt.Printf("Scenario: %s (%d runs, base seed %d)\n", benchScenarioPath, summary.Runs, benchSeed)
	fmt.Printf("  found:          %d/%d (%.1f%%)\n", summary.Found, summary.Runs, 100*summary.SuccessRate)
	fmt.Printf("  direct hits:    %d\n", summary.DirectHits)
	fmt.Printf("  mean iterations %.1f, mean attempts %.1f\n", summary.MeanIterations, summary.MeanAttempts)
	fmt.Printf("  mean path len:  %.1f configurations\n", summary.MeanPathLen)
	fmt.Printf("  mean duration:  %.2fms (wall total %dms)\n", summary.MeanDurationMs, summary.TotalDurationMs)
	return nil
}

// runBench executes the seeded runs, optionally fanned out over an
// errgroup. Outcomes are indexed by run so the report order is stable
// regardless of scheduling.
func runBench(ctx context.Context, spec *datatypes.ScenarioSpec, baseSeed uint64,
	runs, parallel int, maxTime time.Duration) ([]benchOutcome, error) {

	outcomes := make([]benchOutcome, runs)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i := 0; i < runs; i++ {
		g.Go(func() error {
			seed := baseSeed + uint64(i)
			result, err := planScenario(gctx, spec, seed, maxTime, nil)
			if err != nil {
				return err
			}
			outcomes[i] = benchOutcome{
				Seed:    seed,
				Found:   result.Found,
				Stats:   result.Stats,
				PathLen: len(result.Path),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// aggregateBench reduces per-run outcomes to the summary report. Mean
// path length is computed over successful runs only.
func aggregateBench(outcomes []benchOutcome) benchSummary {
	s := benchSummary{Runs: len(outcomes)}
	if s.Runs == 0 {
		return s
	}

	var iterations, attempts, pathLen int
	var duration time.Duration
	for _, o := range outcomes {
		iterations += o.Stats.Iterations
		attempts += o.Stats.Attempts
		duration += o.Stats.Duration
		if o.Stats.DirectHit {
			s.DirectHits++
		}
		if o.Found {
			s.Found++
			pathLen += o.PathLen
		}
	}

	s.SuccessRate = float64(s.Found) / float64(s.Runs)
	s.MeanIterations = float64(iterations) / float64(s.Runs)
	s.MeanAttempts = float64(attempts) / float64(s.Runs)
	s.MeanDurationMs = float64(duration.Milliseconds()) / float64(s.Runs)
	if s.Found > 0 {
		s.MeanPathLen = float64(pathLen) / float64(s.Found)
	}
	return s
}
