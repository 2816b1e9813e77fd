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
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/AleutianMotion/pkg/space"
)

// =============================================================================
// COMMAND DEFINITIONS
// =============================================================================

var (
	scenarioCmd = &cobra.Command{
		Use:   "scenario",
		Short: "Inspect and validate scenario files",
	}

	// scenarioValidateCmd dry-runs a scenario file.
	//
	// # Description
	//
	// Parses and validates the file, then builds the space once to prove
	// the scenario is runnable. Nothing is planned; the endpoints are
	// only checked for presence and collision.
	//
	// # Examples
	//
	//	motion scenario validate corridor.yaml
	//	motion scenario validate corridor.yaml --json
	scenarioValidateCmd = &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a scenario file and dry-run its space construction",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenarioValidate,
	}
)

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

// scenarioReport is the validation summary, shaped for JSON output.
type scenarioReport struct {
	Name         string `json:"name,omitempty"`
	Dimensions   int    `json:"dimensions"`
	Obstacles    int    `json:"obstacles"`
	HasEndpoints bool   `json:"has_endpoints"`
	StartBlocked bool   `json:"start_blocked,omitempty"`
	GoalBlocked  bool   `json:"goal_blocked,omitempty"`
}

func runScenarioValidate(cmd *cobra.Command, args []string) error {
	spec, err := loadScenarioFile(args[0])
	if err != nil {
		return err
	}

	box, err := spec.BuildSpace(spec.Seed)
	if err != nil {
		return fmt.Errorf("build space: %w", err)
	}

	report := scenarioReport{
		Name:         spec.Name,
		Dimensions:   spec.Dim(),
		Obstacles:    len(spec.Space.Obstacles),
		HasEndpoints: len(spec.Start) != 0 && len(spec.Goal) != 0,
	}
	if len(spec.Start) != 0 {
		report.StartBlocked = box.Collides(space.Vector(spec.Start))
	}
	if len(spec.Goal) != 0 {
		report.GoalBlocked = box.Collides(space.Vector(spec.Goal))
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Printf("Scenario OK: %s (%d dimensions, %d obstacles)\n",
		args[0], report.Dimensions, report.Obstacles)
	if !report.HasEndpoints {
		fmt.Println("  note: no start/goal; usable by the service, not by `motion plan`")
	}
	if report.StartBlocked {
		fmt.Println("  warning: start configuration is in collision")
	}
	if report.GoalBlocked {
		fmt.Println("  warning: goal configuration is in collision")
	}
	return nil
}
