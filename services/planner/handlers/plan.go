// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package handlers contains the gin handlers for the motion planning
// service: synchronous planning, websocket streaming, scenario listing,
// plan history and health.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/AleutianAI/AleutianMotion/pkg/planner"
	"github.com/AleutianAI/AleutianMotion/pkg/space"
	"github.com/AleutianAI/AleutianMotion/services/planner/datatypes"
	"github.com/AleutianAI/AleutianMotion/services/planner/observability"
	"github.com/AleutianAI/AleutianMotion/services/planner/scenario"
	"github.com/AleutianAI/AleutianMotion/services/planner/storage"
)

var planTracer = otel.Tracer("aleutian.motion.handlers")

// historyWriteTimeout bounds the background history write so a stalled
// disk cannot pile up goroutines.
const historyWriteTimeout = 5 * time.Second

// ============================================================================
// Request Resolution
// ============================================================================

// requestError is a rejected plan request with its HTTP status and
// metrics error code. The plan and stream handlers map it onto their
// respective transports.
type requestError struct {
	Status  int
	Code    observability.ErrorCode
	Message string
}

func (e *requestError) Error() string {
	return e.Message
}

// resolvedPlan bundles everything needed to run one search: the built
// space, the planner options and the endpoints.
type resolvedPlan struct {
	scenario string // scenario name when served from the library, else ""
	box      *space.Box
	opts     *planner.Options[space.Vector]
	start    space.Vector
	goal     space.Vector
}

// resolvePlanRequest validates a plan request and turns it into a
// runnable search.
//
// # Description
//
//	Validates the request, resolves the scenario spec (library lookup
//	by name, or the inline spec), picks the seed (request seed wins
//	over the scenario seed), builds the sampling space and planner
//	options, and applies the request's time budget.
//
// # Inputs
//
//	req - The bound request. Mutated: EnsureDefaults fills RequestID.
//	lib - Scenario library. May be nil when no scenario directory is
//	      configured; named lookups then fail with 404.
//
// # Outputs
//
//	*resolvedPlan - The runnable search, nil on rejection.
//	*requestError - Non-nil on rejection.
func resolvePlanRequest(req *datatypes.PlanRequest, lib *scenario.Library) (*resolvedPlan, *requestError) {
	if err := req.Validate(); err != nil {
		return nil, &requestError{
			Status:  http.StatusBadRequest,
			Code:    observability.ErrorCodeValidation,
			Message: err.Error(),
		}
	}
	req.EnsureDefaults()

	spec := req.Spec
	scenarioName := ""
	if spec == nil {
		if lib == nil {
			return nil, &requestError{
				Status:  http.StatusNotFound,
				Code:    observability.ErrorCodeScenarioNotFound,
				Message: "scenario library is not configured",
			}
		}
		s, ok := lib.Get(req.Scenario)
		if !ok {
			return nil, &requestError{
				Status:  http.StatusNotFound,
				Code:    observability.ErrorCodeScenarioNotFound,
				Message: "unknown scenario: " + req.Scenario,
			}
		}
		spec = s
		scenarioName = req.Scenario

		// Inline specs are dimension-checked during request validation;
		// library specs only become known here.
		if len(req.Start) != spec.Dim() {
			return nil, &requestError{
				Status:  http.StatusBadRequest,
				Code:    observability.ErrorCodeValidation,
				Message: "start dimension does not match scenario space",
			}
		}
	}

	seed := spec.Seed
	if req.Seed != nil {
		seed = *req.Seed
	}

	box, err := spec.BuildSpace(seed)
	if err != nil {
		return nil, &requestError{
			Status:  http.StatusInternalServerError,
			Code:    observability.ErrorCodeInternal,
			Message: "build space: " + err.Error(),
		}
	}

	opts := spec.PlannerOptions(seed)
	if req.MaxTimeMs > 0 {
		opts.MaxTime = time.Duration(req.MaxTimeMs) * time.Millisecond
	}

	return &resolvedPlan{
		scenario: scenarioName,
		box:      box,
		opts:     opts,
		start:    space.Vector(req.Start),
		goal:     space.Vector(req.Goal),
	}, nil
}

// ============================================================================
// Plan Handler
// ============================================================================

// HandlePlan returns the handler for POST /v1/motion/plan.
//
// # Description
//
//	Runs a full bidirectional search synchronously and responds with the
//	result. "No path found" is a successful response with found=false,
//	not an error status. Completed searches are written to the history
//	store in the background when one is configured.
//
// # Inputs
//
//	lib - Scenario library for named lookups. May be nil.
//	history - Plan history store. May be nil to disable persistence.
func HandlePlan(lib *scenario.Library, history *storage.HistoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := planTracer.Start(c.Request.Context(), "HandlePlan")
		defer span.End()

		m := observability.DefaultMetrics
		m.PlanStarted(observability.EndpointPlan)
		defer m.PlanEnded(observability.EndpointPlan)

		var req datatypes.PlanRequest
		if err := c.BindJSON(&req); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			m.RecordError(observability.EndpointPlan, observability.ErrorCodeValidation)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		resolved, rerr := resolvePlanRequest(&req, lib)
		if rerr != nil {
			span.SetStatus(codes.Error, rerr.Message)
			m.RecordError(observability.EndpointPlan, rerr.Code)
			c.JSON(rerr.Status, gin.H{"error": rerr.Message})
			return
		}

		began := time.Now()
		result, err := planner.Plan(ctx, resolved.box, resolved.start, resolved.goal, resolved.opts)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.Error("plan request failed", "request_id", req.RequestID, "error", err)
			m.RecordError(observability.EndpointPlan, observability.ErrorCodeValidation)
			m.RecordPlan(observability.EndpointPlan, observability.PlanStatusError, time.Since(began).Seconds())
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		recordOutcome(observability.EndpointPlan, ctx, result, began)
		if history != nil {
			go writeHistory(history, req.RequestID, resolved.scenario, result)
		}

		slog.Info("plan request completed",
			"request_id", req.RequestID,
			"scenario", resolved.scenario,
			"found", result.Found,
			"iterations", result.Stats.Iterations,
			"duration_ms", result.Stats.Duration.Milliseconds())
		c.JSON(http.StatusOK, datatypes.NewPlanResponse(req.RequestID, result))
	}
}

// recordOutcome records the search outcome metrics shared by the plan
// and stream endpoints.
func recordOutcome(endpoint observability.Endpoint, ctx context.Context, result *planner.Result[space.Vector], began time.Time) {
	m := observability.DefaultMetrics

	status := observability.PlanStatusFound
	if !result.Found {
		status = observability.PlanStatusNotFound
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			m.RecordError(endpoint, observability.ErrorCodeTimeout)
		}
	}
	m.RecordPlan(endpoint, status, time.Since(began).Seconds())
	m.RecordSearch(result.Stats.Iterations, result.Stats.StartNodes, result.Stats.GoalNodes)
}

// writeHistory persists a completed search. Runs on its own goroutine;
// failures are logged and counted, never surfaced to the client.
func writeHistory(history *storage.HistoryStore, requestID, scenarioName string, result *planner.Result[space.Vector]) {
	ctx, cancel := context.WithTimeout(context.Background(), historyWriteTimeout)
	defer cancel()

	resp := datatypes.NewPlanResponse(requestID, result)
	rec := &storage.PlanRecord{
		ID:        requestID,
		CreatedAt: time.Now().UTC(),
		Scenario:  scenarioName,
		Found:     result.Found,
		Path:      resp.Path,
		Stats:     resp.Stats,
	}

	err := history.Put(ctx, rec)
	observability.DefaultMetrics.RecordHistoryWrite(err == nil)
	if err != nil {
		slog.Warn("failed to write plan history", "request_id", requestID, "error", err)
	}
}
