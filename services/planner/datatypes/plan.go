// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package datatypes provides data structures for the planner service.
//
// This file contains request and response types for the plan endpoints.
// For scenario description types, see scenario.go.
package datatypes

import (
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/AleutianAI/AleutianMotion/pkg/planner"
	"github.com/AleutianAI/AleutianMotion/pkg/space"
	"github.com/AleutianAI/AleutianMotion/pkg/validation"
)

// =============================================================================
// Constants for Security Compliance
// =============================================================================

const (
	// MaxDimensions is the maximum configuration dimension accepted over
	// the API. Per SEC-010: Unbounded configuration size mitigation.
	MaxDimensions = 32

	// MaxObstacles is the maximum number of obstacle regions per scenario.
	// Per SEC-011: Unbounded scenario geometry mitigation.
	MaxObstacles = 256

	// MaxIterations is the maximum per-attempt search iteration budget a
	// request may ask for. Per SEC-012: Unbounded CPU consumption mitigation.
	MaxIterations = 100000

	// MaxAttempts is the maximum number of restart attempts per request.
	// Per SEC-012: Unbounded CPU consumption mitigation.
	MaxAttempts = 100

	// MaxSmoothingIterations is the maximum smoothing budget per request.
	MaxSmoothingIterations = 10000

	// MaxPlanTimeMs is the maximum wall-clock budget a request may ask for.
	MaxPlanTimeMs = 300000 // 5 minutes
)

// =============================================================================
// Shared Validator Instance
// =============================================================================

// planValidate is the validator instance for planner datatypes.
// Initialized in init() with custom validators.
var planValidate *validator.Validate

func init() {
	planValidate = validator.New()

	// Register custom validator for non-finite coordinates (SEC-010)
	_ = planValidate.RegisterValidation("finite", validateFinite)
}

// validateFinite validates that a []float64 field contains only finite values.
//
// # Description
//
// Custom validator to enforce SEC-010 coordinate hygiene. NaN poisons every
// distance comparison it touches and infinities overflow interpolation step
// counts, so both are rejected at the boundary.
//
// # Inputs
//
//   - fl: Validator field level containing the slice to validate
//
// # Outputs
//
//   - bool: true if every element is finite, false otherwise
//
// # Security References
//
//   - SEC-010: Non-finite coordinate input (security_architecture_review.md)
func validateFinite(fl validator.FieldLevel) bool {
	vals, ok := fl.Field().Interface().([]float64)
	if !ok {
		return false
	}
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// =============================================================================
// Plan Request Types
// =============================================================================

// PlanRequest represents a motion planning request body.
//
// # Description
//
// PlanRequest names the world to plan in — either a stored scenario by name
// or an inline ScenarioSpec — plus the start and goal configurations. This
// is used for the POST /v1/motion/plan endpoint and as the single request
// message on the GET /v1/motion/plan/ws stream. Every request carries a
// unique ID and timestamp for audit trails and history storage.
//
// # Fields
//
//   - RequestID: Optional. Unique identifier for this request (UUID v4).
//     Generated server-side by EnsureDefaults when absent.
//   - Timestamp: Optional. Unix timestamp in milliseconds (UTC) when the
//     request was created. Generated server-side when absent.
//   - Scenario: Name of a stored scenario. Exactly one of Scenario or Spec
//     must be set.
//   - Spec: Inline scenario description. Exactly one of Scenario or Spec
//     must be set.
//   - Start: Required. Start configuration. Must match the scenario's
//     dimension and contain only finite values.
//   - Goal: Required. Goal configuration. Same constraints as Start.
//   - Seed: Optional. Overrides the scenario's sampling seed, making the
//     search reproducible for a fixed world.
//   - MaxTimeMs: Optional. Wall-clock budget in milliseconds (0-300000).
//     Zero leaves the request bounded only by the search budget.
//
// # Validation
//
// Uses go-playground/validator plus manual cross-field checks:
//   - RequestID: if present, must be valid UUID v4
//   - Start, Goal: required, 1-32 elements, finite values per SEC-010
//   - Start and Goal must agree on dimension
//   - Exactly one of Scenario or Spec must be set
//   - Scenario: must be a well-formed scenario name (path-safe)
//   - MaxTimeMs: must be 0-300000
//
// # Examples
//
//	req := PlanRequest{
//	    Scenario: "corridor",
//	    Start:    []float64{0.5, 0.5},
//	    Goal:     []float64{9.5, 9.5},
//	}
//
// # Limitations
//
//   - Dimension capped at 32 (SEC-010); larger worlds need the library API
//   - No per-request parallelism (box worlds are not concurrency safe)
//
// # Assumptions
//
//   - Start and Goal are expressed in the scenario's coordinate system
//
// # Security References
//
//   - SEC-010: Coordinate and dimension limits (security_architecture_review.md)
//   - SEC-012: CPU budget limits (security_architecture_review.md)
type PlanRequest struct {
	RequestID string        `json:"request_id,omitempty" validate:"omitempty,uuid4"`
	Timestamp int64         `json:"timestamp,omitempty" validate:"omitempty,gt=0"`
	Scenario  string        `json:"scenario,omitempty"`
	Spec      *ScenarioSpec `json:"spec,omitempty"`
	Start     []float64     `json:"start" validate:"required,min=1,max=32,finite"`
	Goal      []float64     `json:"goal" validate:"required,min=1,max=32,finite"`
	Seed      *uint64       `json:"seed,omitempty"`
	MaxTimeMs int           `json:"max_time_ms,omitempty" validate:"gte=0,lte=300000"`
}

// Validate validates the PlanRequest fields.
//
// # Description
//
// Performs validation using go-playground/validator tags plus the
// cross-field checks tags cannot express. This method should be called
// after binding the JSON request.
//
// # Outputs
//
//   - error: Non-nil if validation failed, with details about which field
//
// # Examples
//
//	if err := req.Validate(); err != nil {
//	    return fmt.Errorf("invalid request: %w", err)
//	}
func (r *PlanRequest) Validate() error {
	if err := planValidate.Struct(r); err != nil {
		return err
	}

	if (r.Scenario == "") == (r.Spec == nil) {
		return fmt.Errorf("exactly one of scenario or spec is required")
	}
	if r.Scenario != "" {
		if err := validation.ValidateScenarioName(r.Scenario); err != nil {
			return fmt.Errorf("invalid scenario: %w", err)
		}
	}

	if len(r.Start) != len(r.Goal) {
		return fmt.Errorf("start and goal must have the same dimension, got %d and %d",
			len(r.Start), len(r.Goal))
	}

	if r.Spec != nil {
		if err := r.Spec.Validate(); err != nil {
			return fmt.Errorf("invalid spec: %w", err)
		}
		if len(r.Start) != r.Spec.Dim() {
			return fmt.Errorf("start dimension %d does not match space dimension %d",
				len(r.Start), r.Spec.Dim())
		}
	}

	return nil
}

// EnsureDefaults populates default values for optional fields.
//
// # Description
//
// Generates RequestID and Timestamp if not provided by the client.
// This ensures all requests have proper identifiers for tracing and
// history storage.
//
// # Examples
//
//	req := &PlanRequest{Scenario: "corridor", Start: start, Goal: goal}
//	req.EnsureDefaults()
//	// req.RequestID is now a UUID
//	// req.Timestamp is now a Unix timestamp
func (r *PlanRequest) EnsureDefaults() {
	if r.RequestID == "" {
		r.RequestID = uuid.New().String()
	}
	if r.Timestamp == 0 {
		r.Timestamp = time.Now().UnixMilli()
	}
}

// =============================================================================
// Plan Response Types
// =============================================================================

// PlanStats summarizes the work a planning call performed, in wire form.
//
// # Fields
//
//   - Iterations: Total outer search iterations consumed across attempts
//   - Attempts: Number of bidirectional searches started
//   - StartNodes, GoalNodes: Tree sizes of the final attempt
//   - Samples, Extensions, CollisionChecks: Capability call counts
//   - DirectHit: The single-extension shortcut solved the query outright
//   - Smoothed: A smoothing pass post-processed the returned path
//   - DurationMs: Wall-clock duration of the whole call in milliseconds
type PlanStats struct {
	Iterations      int   `json:"iterations"`
	Attempts        int   `json:"attempts"`
	StartNodes      int   `json:"start_nodes"`
	GoalNodes       int   `json:"goal_nodes"`
	Samples         int   `json:"samples"`
	Extensions      int   `json:"extensions"`
	CollisionChecks int   `json:"collision_checks"`
	DirectHit       bool  `json:"direct_hit"`
	Smoothed        bool  `json:"smoothed"`
	DurationMs      int64 `json:"duration_ms"`
}

// NewPlanStats converts planner statistics to their wire form.
func NewPlanStats(s planner.Stats) PlanStats {
	return PlanStats{
		Iterations:      s.Iterations,
		Attempts:        s.Attempts,
		StartNodes:      s.StartNodes,
		GoalNodes:       s.GoalNodes,
		Samples:         s.Samples,
		Extensions:      s.Extensions,
		CollisionChecks: s.CollisionChecks,
		DirectHit:       s.DirectHit,
		Smoothed:        s.Smoothed,
		DurationMs:      s.Duration.Milliseconds(),
	}
}

// PlanResponse represents the response body for a completed plan request.
//
// # Fields
//
//   - RequestID: Echo of the request identifier for correlation
//   - Found: Whether a collision-free path was produced. False is a
//     legitimate outcome (budget exhausted), not an error.
//   - Path: The configuration sequence from start to goal when Found.
//     Omitted otherwise.
//   - Stats: Search effort summary, populated whether or not a path
//     was found.
type PlanResponse struct {
	RequestID string      `json:"request_id"`
	Found     bool        `json:"found"`
	Path      [][]float64 `json:"path,omitempty"`
	Stats     PlanStats   `json:"stats"`
}

// NewPlanResponse converts a planner result to its wire form.
func NewPlanResponse(requestID string, result *planner.Result[space.Vector]) PlanResponse {
	resp := PlanResponse{
		RequestID: requestID,
		Found:     result.Found,
		Stats:     NewPlanStats(result.Stats),
	}
	if result.Found {
		resp.Path = make([][]float64, len(result.Path))
		for i, q := range result.Path {
			resp.Path[i] = []float64(q)
		}
	}
	return resp
}
