// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package observability provides metrics and instrumentation for the planner
// service.
//
// # Description
//
// This package implements Prometheus metrics for monitoring motion planning
// operations. Metrics include:
//   - Plan counters (by endpoint and outcome)
//   - Latency histograms (wall-clock planning duration)
//   - Search effort histograms (iterations, tree sizes)
//   - Active plan gauges
//   - Scenario reload and history write counters
//
// # Integration
//
// Metrics are exposed via /metrics endpoint. Use with Prometheus + Grafana
// for dashboards and alerting.
//
// # Thread Safety
//
// All metric operations are thread-safe via Prometheus's internal locking.
package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// Metric Definitions
// =============================================================================

// Namespace for all metrics
const metricsNamespace = "aleutian"

// Subsystem for motion planning metrics
const motionSubsystem = "motion"

// PlanningMetrics holds all Prometheus metrics for motion planning operations.
//
// # Description
//
// Provides counters, histograms, and gauges for monitoring planner throughput,
// latency, and search effort. Initialize once at startup via InitMetrics().
//
// # Fields
//
//   - PlansTotal: Counter of plan requests by endpoint and outcome
//   - PlanDurationSeconds: Histogram of wall-clock planning duration
//   - PlanIterations: Histogram of RRT iterations consumed per query
//   - TreeNodes: Histogram of final tree sizes (start/goal)
//   - ActivePlans: Gauge of currently executing plan requests
//   - ErrorsTotal: Counter of errors by endpoint and type
//   - ScenarioReloadsTotal: Counter of scenario library reloads
//   - HistoryWritesTotal: Counter of plan history persistence attempts
//
// # Thread Safety
//
// All operations are thread-safe. Helper methods are additionally nil-safe so
// callers wired without metrics (tests, degraded mode) need no guards.
type PlanningMetrics struct {
	// PlansTotal counts plan requests by endpoint and outcome.
	// Labels: endpoint (plan, plan_stream), status (found, not_found, error)
	PlansTotal *prometheus.CounterVec

	// PlanDurationSeconds measures wall-clock planning duration.
	// Labels: endpoint (plan, plan_stream), status (found, not_found, error)
	PlanDurationSeconds *prometheus.HistogramVec

	// PlanIterations measures RRT iterations consumed per query.
	PlanIterations prometheus.Histogram

	// TreeNodes measures final tree sizes per query.
	// Labels: tree (start, goal)
	TreeNodes *prometheus.HistogramVec

	// ActivePlans tracks currently executing plan requests.
	// Labels: endpoint (plan, plan_stream)
	ActivePlans *prometheus.GaugeVec

	// ErrorsTotal counts errors by endpoint and type.
	// Labels: endpoint, error_code (validation, scenario_not_found, etc.)
	ErrorsTotal *prometheus.CounterVec

	// ScenarioReloadsTotal counts scenario library reloads.
	// Labels: status (success, error)
	ScenarioReloadsTotal *prometheus.CounterVec

	// HistoryWritesTotal counts plan history persistence attempts.
	// Labels: status (success, error)
	HistoryWritesTotal *prometheus.CounterVec
}

// DefaultMetrics is the singleton instance of PlanningMetrics.
// Initialized by InitMetrics().
var DefaultMetrics *PlanningMetrics

var initOnce sync.Once

// InitMetrics initializes the default metrics instance.
//
// # Description
//
// Creates and registers all Prometheus metrics. Should be called once
// at application startup, after Prometheus registry is available.
//
// # Outputs
//
//   - *PlanningMetrics: The initialized metrics instance.
//
// # Examples
//
//	func main() {
//	    observability.InitMetrics()
//	    // ... start server ...
//	}
//
// # Limitations
//
//   - Registration happens on the first call only; later calls return the
//     existing instance.
//
// # Assumptions
//
//   - Prometheus default registry is available.
func InitMetrics() *PlanningMetrics {
	initOnce.Do(func() {
		DefaultMetrics = &PlanningMetrics{
			PlansTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: metricsNamespace,
					Subsystem: motionSubsystem,
					Name:      "plans_total",
					Help:      "Total number of plan requests by endpoint and outcome",
				},
				[]string{"endpoint", "status"},
			),

			PlanDurationSeconds: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: metricsNamespace,
					Subsystem: motionSubsystem,
					Name:      "plan_duration_seconds",
					Help:      "Wall-clock planning duration in seconds",
					Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
				},
				[]string{"endpoint", "status"},
			),

			PlanIterations: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: metricsNamespace,
					Subsystem: motionSubsystem,
					Name:      "plan_iterations",
					Help:      "RRT iterations consumed per plan query",
					Buckets:   []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
				},
			),

			TreeNodes: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: metricsNamespace,
					Subsystem: motionSubsystem,
					Name:      "tree_nodes",
					Help:      "Final search tree sizes per plan query",
					Buckets:   []float64{10, 50, 100, 500, 1000, 5000, 10000},
				},
				[]string{"tree"},
			),

			ActivePlans: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: metricsNamespace,
					Subsystem: motionSubsystem,
					Name:      "active_plans",
					Help:      "Number of currently executing plan requests",
				},
				[]string{"endpoint"},
			),

			ErrorsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: metricsNamespace,
					Subsystem: motionSubsystem,
					Name:      "errors_total",
					Help:      "Total planning errors by endpoint and type",
				},
				[]string{"endpoint", "error_code"},
			),

			ScenarioReloadsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: metricsNamespace,
					Subsystem: motionSubsystem,
					Name:      "scenario_reloads_total",
					Help:      "Total scenario library reloads by status",
				},
				[]string{"status"},
			),

			HistoryWritesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: metricsNamespace,
					Subsystem: motionSubsystem,
					Name:      "history_writes_total",
					Help:      "Total plan history persistence attempts by status",
				},
				[]string{"status"},
			),
		}
	})

	return DefaultMetrics
}

// =============================================================================
// Plan Outcomes
// =============================================================================

// PlanStatus represents the outcome of a plan request for metrics labeling.
type PlanStatus string

const (
	// PlanStatusFound indicates a path was returned.
	PlanStatusFound PlanStatus = "found"

	// PlanStatusNotFound indicates the search exhausted its budget.
	PlanStatusNotFound PlanStatus = "not_found"

	// PlanStatusError indicates the request failed before or during search.
	PlanStatusError PlanStatus = "error"
)

// =============================================================================
// Error Codes
// =============================================================================

// ErrorCode represents a categorized error type for metrics.
type ErrorCode string

const (
	// ErrorCodeValidation indicates request validation failure.
	ErrorCodeValidation ErrorCode = "validation"

	// ErrorCodeScenarioNotFound indicates an unknown scenario name.
	ErrorCodeScenarioNotFound ErrorCode = "scenario_not_found"

	// ErrorCodeInfeasible indicates a start or goal in collision.
	ErrorCodeInfeasible ErrorCode = "infeasible"

	// ErrorCodeTimeout indicates the request deadline expired.
	ErrorCodeTimeout ErrorCode = "timeout"

	// ErrorCodeInternal indicates internal server error.
	ErrorCodeInternal ErrorCode = "internal"

	// ErrorCodeClientDisconnect indicates client disconnected mid-stream.
	ErrorCodeClientDisconnect ErrorCode = "client_disconnect"
)

// =============================================================================
// Endpoint Names
// =============================================================================

// Endpoint represents a planning endpoint for metrics labeling.
type Endpoint string

const (
	// EndpointPlan is the synchronous plan endpoint.
	EndpointPlan Endpoint = "plan"

	// EndpointPlanStream is the websocket streaming plan endpoint.
	EndpointPlanStream Endpoint = "plan_stream"
)

// =============================================================================
// Helper Methods
// =============================================================================

// RecordPlan records a completed plan request with its duration.
//
// # Inputs
//
//   - endpoint: The endpoint that handled the request.
//   - status: The plan outcome.
//   - seconds: Wall-clock planning duration.
func (m *PlanningMetrics) RecordPlan(endpoint Endpoint, status PlanStatus, seconds float64) {
	if m == nil {
		return
	}
	m.PlansTotal.WithLabelValues(string(endpoint), string(status)).Inc()
	m.PlanDurationSeconds.WithLabelValues(string(endpoint), string(status)).Observe(seconds)
}

// RecordSearch records the search effort of a completed query.
//
// # Inputs
//
//   - iterations: Total RRT iterations consumed across attempts.
//   - startNodes: Final node count of the start tree.
//   - goalNodes: Final node count of the goal tree.
func (m *PlanningMetrics) RecordSearch(iterations, startNodes, goalNodes int) {
	if m == nil {
		return
	}
	m.PlanIterations.Observe(float64(iterations))
	m.TreeNodes.WithLabelValues("start").Observe(float64(startNodes))
	m.TreeNodes.WithLabelValues("goal").Observe(float64(goalNodes))
}

// RecordError records a planning error.
//
// # Inputs
//
//   - endpoint: The endpoint where the error occurred.
//   - code: The error type code.
func (m *PlanningMetrics) RecordError(endpoint Endpoint, code ErrorCode) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(string(endpoint), string(code)).Inc()
}

// PlanStarted increments the active plans gauge.
//
// # Inputs
//
//   - endpoint: The endpoint handling the request.
func (m *PlanningMetrics) PlanStarted(endpoint Endpoint) {
	if m == nil {
		return
	}
	m.ActivePlans.WithLabelValues(string(endpoint)).Inc()
}

// PlanEnded decrements the active plans gauge.
//
// # Inputs
//
//   - endpoint: The endpoint that handled the request.
func (m *PlanningMetrics) PlanEnded(endpoint Endpoint) {
	if m == nil {
		return
	}
	m.ActivePlans.WithLabelValues(string(endpoint)).Dec()
}

// RecordScenarioReload records a scenario library reload.
//
// # Inputs
//
//   - success: Whether the reload completed without error.
func (m *PlanningMetrics) RecordScenarioReload(success bool) {
	if m == nil {
		return
	}
	status := "success"
	if !success {
		status = "error"
	}
	m.ScenarioReloadsTotal.WithLabelValues(status).Inc()
}

// RecordHistoryWrite records a plan history persistence attempt.
//
// # Inputs
//
//   - success: Whether the write completed without error.
func (m *PlanningMetrics) RecordHistoryWrite(success bool) {
	if m == nil {
		return
	}
	status := "success"
	if !success {
		status = "error"
	}
	m.HistoryWritesTotal.WithLabelValues(status).Inc()
}
