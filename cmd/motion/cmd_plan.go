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
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/AleutianMotion/pkg/planner"
	"github.com/AleutianAI/AleutianMotion/pkg/space"
	"github.com/AleutianAI/AleutianMotion/services/planner/datatypes"
)

// errNoPathFound distinguishes "the search exhausted its budget" from
// real failures; main maps it to its own exit code and prints nothing,
// since the command already reported the outcome.
var errNoPathFound = errors.New("no path found")

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	planScenarioPath string        // Scenario YAML file
	planSeed         uint64        // Sampling seed override
	planMaxTime      time.Duration // Wall-clock budget, 0 keeps the iteration budget only
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// planCmd plans a single path for a scenario file.
//
// # Description
//
// Loads a scenario, runs the planner once, and prints the path and the
// search statistics. With --json the full result is emitted as a single
// JSON object on stdout for scripting.
//
// # Examples
//
//	motion plan --scenario corridor.yaml
//	motion plan --scenario corridor.yaml --seed 7 --max-time 2s
//	motion plan --scenario corridor.yaml --json | jq .stats
//
// # Exit Codes
//
//   - 0: A path was found
//   - 1: The scenario is invalid or planning failed to start
//   - 2: No path was found within the budget (an expected outcome)
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan a collision-free path for a scenario file",
	RunE:  runPlanCommand,
}

func init() {
	planCmd.Flags().StringVarP(&planScenarioPath, "scenario", "s", "",
		"Path to the scenario YAML file (required)")
	planCmd.Flags().Uint64Var(&planSeed, "seed", 0,
		"Override the scenario's sampling seed")
	planCmd.Flags().DurationVar(&planMaxTime, "max-time", 0,
		"Wall-clock budget for the whole call (e.g. 2s); 0 keeps the iteration budget only")
	_ = planCmd.MarkFlagRequired("scenario")
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runPlanCommand(cmd *cobra.Command, args []string) error {
	spec, err := loadScenarioFile(planScenarioPath)
	if err != nil {
		return err
	}
	if err := requireEndpoints(spec); err != nil {
		return err
	}

	seed := spec.Seed
	if cmd.Flags().Changed("seed") {
		seed = planSeed
	}

	result, err := planScenario(cmd.Context(), spec, seed, planMaxTime, planObserver())
	if err != nil {
		return err
	}

	if jsonOutput {
		resp := datatypes.NewPlanResponse(uuid.NewString(), result)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			return err
		}
	} else {
		printPlanResult(spec, result)
	}

	if !result.Found {
		return errNoPathFound
	}
	return nil
}

// planScenario builds the scenario's space and runs the planner once.
func planScenario(ctx context.Context, spec *datatypes.ScenarioSpec, seed uint64,
	maxTime time.Duration, observer func(planner.Progress)) (*planner.Result[space.Vector], error) {

	box, err := spec.BuildSpace(seed)
	if err != nil {
		return nil, err
	}
	opts := spec.PlannerOptions(seed)
	opts.MaxTime = maxTime
	opts.Observer = observer

	return planner.Plan(ctx, box, space.Vector(spec.Start), space.Vector(spec.Goal), opts)
}

// planObserver returns a progress callback that rewrites a single status
// line on stderr, or nil when stderr is not a terminal or the output is
// JSON. Progress never touches stdout.
func planObserver() func(planner.Progress) {
	if jsonOutput || !isatty.IsTerminal(os.Stderr.Fd()) {
		return nil
	}
	return func(p planner.Progress) {
		fmt.Fprintf(os.Stderr, "\rattempt %d iteration %d (trees %d/%d)   ",
			p.Attempt+1, p.Iteration+1, p.StartNodes, p.GoalNodes)
	}
}

// printPlanResult writes the human-readable outcome to stdout.
func printPlanResult(spec *datatypes.ScenarioSpec, result *planner.Result[space.Vector]) {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		fmt.Fprint(os.Stderr, "\r\033[K") // clear the progress line
	}

	st := result.Stats
	if !result.Found {
		fmt.Printf("No path found within budget (%d attempts, %d iterations, %s)\n",
			st.Attempts, st.Iterations, st.Duration.Round(time.Millisecond))
		return
	}

	how := "search"
	if st.DirectHit {
		how = "direct extension"
	}
	fmt.Printf("Path found by %s: %d configurations\n", how, len(result.Path))
	for _, q := range result.Path {
		fmt.Printf("  %v\n", []float64(q))
	}
	fmt.Printf("attempts=%d iterations=%d samples=%d collision_checks=%d smoothed=%v duration=%s\n",
		st.Attempts, st.Iterations, st.Samples, st.CollisionChecks,
		st.Smoothed, st.Duration.Round(time.Millisecond))
}
