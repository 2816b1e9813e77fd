// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// This file contains the scenario description types shared by scenario YAML
// files on disk, the inline `spec` field of plan requests, and the CLI.

package datatypes

import (
	"fmt"
	"math"

	"github.com/AleutianAI/AleutianMotion/pkg/planner"
	"github.com/AleutianAI/AleutianMotion/pkg/planner/smooth"
	"github.com/AleutianAI/AleutianMotion/pkg/space"
	"github.com/AleutianAI/AleutianMotion/pkg/validation"
)

// =============================================================================
// SCENARIO STRUCTURES
// =============================================================================

// ScenarioSpec describes a complete planning problem.
//
// Description:
//
//	ScenarioSpec is the declarative form of a box world plus optional
//	search parameters. The same structure is read from YAML scenario files
//	and accepted inline as the `spec` field of a plan request, so a problem
//	prototyped against the HTTP API can be committed verbatim as a file.
//
// Fields:
//   - Name: Scenario name. For stored scenarios this is derived from the
//     filename; inline specs may leave it empty.
//   - Description: Free-text note shown by scenario listings.
//   - Space: The box world geometry. Required.
//   - Start, Goal: Default endpoint configurations. Optional; plan
//     requests always carry their own.
//   - Seed: Sampling seed. A request-level seed takes precedence.
//   - Planner: Search parameter overrides. Nil selects library defaults.
//
// Example (YAML):
//
//	name: corridor
//	description: two rooms joined by a narrow corridor
//	space:
//	  lower: [0, 0]
//	  upper: [10, 10]
//	  obstacles:
//	    - type: aabb
//	      min: [4, 0]
//	      max: [6, 4.5]
//	    - type: aabb
//	      min: [4, 5.5]
//	      max: [6, 10]
//	start: [1, 5]
//	goal: [9, 5]
//
// Limitations:
//   - Dimension capped at MaxDimensions, obstacles at MaxObstacles.
//
// Assumptions:
//   - Callers run Validate before BuildSpace; a validated spec always
//     builds.
type ScenarioSpec struct {
	Name        string       `json:"name,omitempty" yaml:"name,omitempty"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Space       SpaceSpec    `json:"space" yaml:"space"`
	Start       []float64    `json:"start,omitempty" yaml:"start,omitempty"`
	Goal        []float64    `json:"goal,omitempty" yaml:"goal,omitempty"`
	Seed        uint64       `json:"seed,omitempty" yaml:"seed,omitempty"`
	Planner     *PlannerSpec `json:"planner,omitempty" yaml:"planner,omitempty"`
}

// SpaceSpec describes the geometry of a box world.
//
// Fields:
//   - Lower, Upper: Per-axis bounds. Required, equal length.
//   - Resolutions: Per-axis interpolation step. Optional; empty selects
//     the space package default on every axis.
//   - Obstacles: Blocked regions inside the bounds.
type SpaceSpec struct {
	Lower       []float64      `json:"lower" yaml:"lower"`
	Upper       []float64      `json:"upper" yaml:"upper"`
	Resolutions []float64      `json:"resolutions,omitempty" yaml:"resolutions,omitempty"`
	Obstacles   []ObstacleSpec `json:"obstacles,omitempty" yaml:"obstacles,omitempty"`
}

// ObstacleSpec describes one blocked region.
//
// Fields:
//   - Type: Region shape, "aabb" or "ball".
//   - Min, Max: Corner vectors for aabb regions.
//   - Center, Radius: Geometry for ball regions.
type ObstacleSpec struct {
	Type   string    `json:"type" yaml:"type"`
	Min    []float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max    []float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Center []float64 `json:"center,omitempty" yaml:"center,omitempty"`
	Radius float64   `json:"radius,omitempty" yaml:"radius,omitempty"`
}

// PlannerSpec overrides search parameters for a scenario.
//
// Description:
//
//	All counters are optional; zero selects the planner library default.
//	Smoothing defaults to on — a nil Smoothing pointer means "smooth",
//	and only an explicit `smoothing: false` disables the pass.
//
// Fields:
//   - Iterations: Per-attempt search iteration cap.
//   - TreeFrequency: Node persistence density during extensions.
//   - Attempts: Total number of restart attempts.
//   - SmoothingIterations: Budget for the smoothing pass.
//   - Smoothing: Explicitly enable or disable smoothing. Nil means on.
//
// Limitations:
//   - No parallel attempts: box worlds keep sampling state and are not
//     safe for concurrent use, so the service plans sequentially.
type PlannerSpec struct {
	Iterations          int   `json:"iterations,omitempty" yaml:"iterations,omitempty"`
	TreeFrequency       int   `json:"tree_frequency,omitempty" yaml:"tree_frequency,omitempty"`
	Attempts            int   `json:"attempts,omitempty" yaml:"attempts,omitempty"`
	SmoothingIterations int   `json:"smoothing_iterations,omitempty" yaml:"smoothing_iterations,omitempty"`
	Smoothing           *bool `json:"smoothing,omitempty" yaml:"smoothing,omitempty"`
}

// =============================================================================
// VALIDATION
// =============================================================================

// finite reports whether v is neither NaN nor infinite.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finiteAll(vs []float64) bool {
	for _, v := range vs {
		if !finite(v) {
			return false
		}
	}
	return true
}

// Validate checks the ScenarioSpec for structural problems.
//
// Description:
//
//	Performs every static check so that a validated spec can always be
//	built into a space. Called when loading scenario files and when a
//	request carries an inline spec.
//
// Outputs:
//   - error: Non-nil with field details if the spec is unusable.
//
// Assumptions:
//   - Caller wants the first problem only, not an exhaustive report.
func (s *ScenarioSpec) Validate() error {
	if s.Name != "" {
		if err := validation.ValidateScenarioName(s.Name); err != nil {
			return err
		}
	}

	dim := len(s.Space.Lower)
	if dim == 0 {
		return fmt.Errorf("space.lower is required")
	}
	if dim > MaxDimensions {
		return fmt.Errorf("space has %d dimensions, max is %d", dim, MaxDimensions)
	}
	if len(s.Space.Upper) != dim {
		return fmt.Errorf("space.upper has %d dimensions, space.lower has %d",
			len(s.Space.Upper), dim)
	}
	for i := range s.Space.Lower {
		if !finite(s.Space.Lower[i]) || !finite(s.Space.Upper[i]) {
			return fmt.Errorf("space bounds must be finite, axis %d is not", i)
		}
		if s.Space.Lower[i] > s.Space.Upper[i] {
			return fmt.Errorf("space.lower[%d] %v is above space.upper[%d] %v",
				i, s.Space.Lower[i], i, s.Space.Upper[i])
		}
	}

	if len(s.Space.Resolutions) != 0 {
		if len(s.Space.Resolutions) != dim {
			return fmt.Errorf("space.resolutions has %d dimensions, space has %d",
				len(s.Space.Resolutions), dim)
		}
		for i, r := range s.Space.Resolutions {
			if !finite(r) || r <= 0 {
				return fmt.Errorf("space.resolutions[%d] must be positive, got: %v", i, r)
			}
		}
	}

	if len(s.Space.Obstacles) > MaxObstacles {
		return fmt.Errorf("scenario has %d obstacles, max is %d",
			len(s.Space.Obstacles), MaxObstacles)
	}
	for i := range s.Space.Obstacles {
		if err := s.Space.Obstacles[i].validate(dim); err != nil {
			return fmt.Errorf("obstacle %d: %w", i, err)
		}
	}

	if len(s.Start) != 0 {
		if len(s.Start) != dim {
			return fmt.Errorf("start has %d dimensions, space has %d", len(s.Start), dim)
		}
		if !finiteAll(s.Start) {
			return fmt.Errorf("start must contain only finite values")
		}
	}
	if len(s.Goal) != 0 {
		if len(s.Goal) != dim {
			return fmt.Errorf("goal has %d dimensions, space has %d", len(s.Goal), dim)
		}
		if !finiteAll(s.Goal) {
			return fmt.Errorf("goal must contain only finite values")
		}
	}

	if s.Planner != nil {
		if err := s.Planner.validate(); err != nil {
			return err
		}
	}

	return nil
}

// validate checks one obstacle against the space dimension.
func (o *ObstacleSpec) validate(dim int) error {
	switch o.Type {
	case "aabb":
		if len(o.Min) != dim || len(o.Max) != dim {
			return fmt.Errorf("aabb min and max must have %d dimensions, got %d and %d",
				dim, len(o.Min), len(o.Max))
		}
		if !finiteAll(o.Min) || !finiteAll(o.Max) {
			return fmt.Errorf("aabb bounds must be finite")
		}
		for i := range o.Min {
			if o.Min[i] > o.Max[i] {
				return fmt.Errorf("aabb min[%d] %v is above max[%d] %v",
					i, o.Min[i], i, o.Max[i])
			}
		}
	case "ball":
		if len(o.Center) != dim {
			return fmt.Errorf("ball center must have %d dimensions, got %d",
				dim, len(o.Center))
		}
		if !finiteAll(o.Center) {
			return fmt.Errorf("ball center must be finite")
		}
		if !finite(o.Radius) || o.Radius < 0 {
			return fmt.Errorf("ball radius must be non-negative, got: %v", o.Radius)
		}
	default:
		return fmt.Errorf("type must be 'aabb' or 'ball', got: %s", o.Type)
	}
	return nil
}

// validate checks the planner overrides against the service budgets.
func (p *PlannerSpec) validate() error {
	if p.Iterations < 0 || p.Iterations > MaxIterations {
		return fmt.Errorf("planner.iterations must be 0-%d, got: %d", MaxIterations, p.Iterations)
	}
	if p.TreeFrequency < 0 {
		return fmt.Errorf("planner.tree_frequency cannot be negative, got: %d", p.TreeFrequency)
	}
	if p.Attempts < 0 || p.Attempts > MaxAttempts {
		return fmt.Errorf("planner.attempts must be 0-%d, got: %d", MaxAttempts, p.Attempts)
	}
	if p.SmoothingIterations < 0 || p.SmoothingIterations > MaxSmoothingIterations {
		return fmt.Errorf("planner.smoothing_iterations must be 0-%d, got: %d",
			MaxSmoothingIterations, p.SmoothingIterations)
	}
	return nil
}

// =============================================================================
// SPACE CONSTRUCTION
// =============================================================================

// Dim returns the configuration dimension of the scenario's space.
func (s *ScenarioSpec) Dim() int {
	return len(s.Space.Lower)
}

// BuildSpace constructs the box world described by the spec.
//
// Description:
//
//	Every call builds a fresh space so concurrent requests never share
//	sampling state. The seed parameter feeds the sampling generator;
//	callers resolve request-versus-scenario seed precedence before
//	calling.
//
// Inputs:
//   - seed: Sampling seed for the space's generator.
//
// Outputs:
//   - *space.Box: The constructed world.
//   - error: Non-nil only for specs that skipped Validate.
func (s *ScenarioSpec) BuildSpace(seed uint64) (*space.Box, error) {
	cfg := space.Config{
		Lower: space.Vector(s.Space.Lower),
		Upper: space.Vector(s.Space.Upper),
		Seed:  seed,
	}
	if len(s.Space.Resolutions) != 0 {
		cfg.Resolutions = space.Vector(s.Space.Resolutions)
	}
	for _, o := range s.Space.Obstacles {
		switch o.Type {
		case "aabb":
			cfg.Obstacles = append(cfg.Obstacles, space.AABB{
				Min: space.Vector(o.Min),
				Max: space.Vector(o.Max),
			})
		case "ball":
			cfg.Obstacles = append(cfg.Obstacles, space.Ball{
				Center: space.Vector(o.Center),
				Radius: o.Radius,
			})
		}
	}
	return space.New(cfg)
}

// PlannerOptions maps the scenario's planner overrides onto search options.
//
// Description:
//
//	Zero-valued counters pass through and select the planner library
//	defaults. Smoothing is on unless the spec disables it explicitly;
//	the smoother shares the sampling seed so a fixed (scenario, seed)
//	pair replays the same smoothed path.
//
// Inputs:
//   - seed: Seed for the shortcut smoother's generator.
//
// Outputs:
//   - *planner.Options[space.Vector]: Ready for planner.Plan.
func (s *ScenarioSpec) PlannerOptions(seed uint64) *planner.Options[space.Vector] {
	opts := &planner.Options[space.Vector]{}
	smoothing := true
	if s.Planner != nil {
		opts.Iterations = s.Planner.Iterations
		opts.TreeFrequency = s.Planner.TreeFrequency
		opts.Attempts = s.Planner.Attempts
		opts.SmoothingIterations = s.Planner.SmoothingIterations
		if s.Planner.Smoothing != nil {
			smoothing = *s.Planner.Smoothing
		}
	}
	if smoothing {
		opts.Smoother = smooth.NewShortcut[space.Vector](seed)
	}
	return opts
}
