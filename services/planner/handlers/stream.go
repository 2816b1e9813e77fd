// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/codes"

	"github.com/AleutianAI/AleutianMotion/pkg/planner"
	"github.com/AleutianAI/AleutianMotion/services/planner/datatypes"
	"github.com/AleutianAI/AleutianMotion/services/planner/observability"
	"github.com/AleutianAI/AleutianMotion/services/planner/scenario"
	"github.com/AleutianAI/AleutianMotion/services/planner/storage"
)

// progressInterval is the minimum wall-clock gap between progress
// frames. Searches iterate far faster than a browser can render, so
// frames are thinned rather than sent per iteration.
const progressInterval = 50 * time.Millisecond

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  4 * 1024,
	WriteBufferSize: 4 * 1024,
}

// streamProgress is the "progress" frame sent while a search runs.
type streamProgress struct {
	Type       string `json:"type"`
	RequestID  string `json:"request_id"`
	Attempt    int    `json:"attempt"`
	Iteration  int    `json:"iteration"`
	StartNodes int    `json:"start_nodes"`
	GoalNodes  int    `json:"goal_nodes"`
}

// streamResult is the final "result" frame. The plan response fields
// are inlined alongside the type tag.
type streamResult struct {
	Type string `json:"type"`
	datatypes.PlanResponse
}

// streamError is the "error" frame for rejected requests. The
// connection stays open; the client may submit a corrected request.
type streamError struct {
	Type      string `json:"type"`
	RequestID string `json:"request_id,omitempty"`
	Error     string `json:"error"`
}

func sendJSON(ws *websocket.Conn, v interface{}) error {
	err := ws.WriteJSON(v)
	if err != nil {
		slog.Warn("failed to write websocket message", "error", err)
	}
	return err
}

// HandlePlanStream returns the handler for GET /v1/motion/plan/ws.
//
// # Description
//
//	Upgrades the connection and serves plan requests over it. For each
//	request the server streams "progress" frames while the search runs
//	and finishes with a single "result" frame carrying the same payload
//	as POST /v1/motion/plan. Invalid requests produce an "error" frame
//	without closing the connection. Requests are served one at a time
//	per connection.
//
// # Inputs
//
//	lib - Scenario library for named lookups. May be nil.
//	history - Plan history store. May be nil to disable persistence.
func HandlePlanStream(lib *scenario.Library, history *storage.HistoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			slog.Error("failed to upgrade the websocket", "error", err)
			return
		}
		defer ws.Close()
		slog.Info("plan stream client connected", "remote", c.ClientIP())

		for {
			var req datatypes.PlanRequest
			if err := ws.ReadJSON(&req); err != nil {
				slog.Info("plan stream client disconnected", "error", err.Error())
				return
			}
			if !streamOnePlan(c, ws, &req, lib, history) {
				return
			}
		}
	}
}

// streamOnePlan runs a single search for a websocket client. Returns
// false when the connection is no longer writable.
func streamOnePlan(c *gin.Context, ws *websocket.Conn, req *datatypes.PlanRequest,
	lib *scenario.Library, history *storage.HistoryStore) bool {

	ctx, span := planTracer.Start(c.Request.Context(), "HandlePlanStream")
	defer span.End()

	m := observability.DefaultMetrics
	m.PlanStarted(observability.EndpointPlanStream)
	defer m.PlanEnded(observability.EndpointPlanStream)

	resolved, rerr := resolvePlanRequest(req, lib)
	if rerr != nil {
		span.SetStatus(codes.Error, rerr.Message)
		m.RecordError(observability.EndpointPlanStream, rerr.Code)
		return sendJSON(ws, streamError{
			Type:      "error",
			RequestID: req.RequestID,
			Error:     rerr.Message,
		}) == nil
	}

	// The observer runs on this goroutine inside the search, so writing
	// to the socket directly is safe.
	var lastSent time.Time
	writeFailed := false
	resolved.opts.Observer = func(p planner.Progress) {
		if writeFailed || time.Since(lastSent) < progressInterval {
			return
		}
		lastSent = time.Now()
		frame := streamProgress{
			Type:       "progress",
			RequestID:  req.RequestID,
			Attempt:    p.Attempt,
			Iteration:  p.Iteration,
			StartNodes: p.StartNodes,
			GoalNodes:  p.GoalNodes,
		}
		if sendJSON(ws, frame) != nil {
			writeFailed = true
		}
	}

	began := time.Now()
	result, err := planner.Plan(ctx, resolved.box, resolved.start, resolved.goal, resolved.opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		m.RecordError(observability.EndpointPlanStream, observability.ErrorCodeValidation)
		return sendJSON(ws, streamError{
			Type:      "error",
			RequestID: req.RequestID,
			Error:     err.Error(),
		}) == nil
	}

	if writeFailed {
		m.RecordError(observability.EndpointPlanStream, observability.ErrorCodeClientDisconnect)
		return false
	}

	recordOutcome(observability.EndpointPlanStream, ctx, result, began)
	if history != nil {
		go writeHistory(history, req.RequestID, resolved.scenario, result)
	}

	slog.Info("plan stream request completed",
		"request_id", req.RequestID,
		"scenario", resolved.scenario,
		"found", result.Found,
		"iterations", result.Stats.Iterations)
	return sendJSON(ws, streamResult{
		Type:         "result",
		PlanResponse: datatypes.NewPlanResponse(req.RequestID, result),
	}) == nil
}
