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
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/AleutianMotion/services/planner/datatypes"
)

// loadScenarioFile reads and validates a scenario YAML file.
//
// # Description
//
// Shared by the plan, bench and scenario commands. The returned spec has
// passed ScenarioSpec.Validate, so BuildSpace cannot fail for structural
// reasons afterwards.
//
// # Inputs
//
//   - path: Scenario YAML file path.
//
// # Outputs
//
//   - *datatypes.ScenarioSpec: The validated scenario.
//   - error: Non-nil if the file is unreadable, unparseable or invalid.
func loadScenarioFile(path string) (*datatypes.ScenarioSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var spec datatypes.ScenarioSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &spec, nil
}

// requireEndpoints checks that a scenario carries both endpoints.
//
// The plan and bench commands run a scenario standalone, so unlike the
// HTTP service there is no request to supply start and goal.
func requireEndpoints(spec *datatypes.ScenarioSpec) error {
	if len(spec.Start) == 0 {
		return fmt.Errorf("scenario has no start configuration")
	}
	if len(spec.Goal) == 0 {
		return fmt.Errorf("scenario has no goal configuration")
	}
	return nil
}
