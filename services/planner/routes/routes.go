// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/AleutianAI/AleutianMotion/services/planner/handlers"
	"github.com/AleutianAI/AleutianMotion/services/planner/middleware"
	"github.com/AleutianAI/AleutianMotion/services/planner/scenario"
	"github.com/AleutianAI/AleutianMotion/services/planner/storage"
)

// Deps carries everything the route handlers need. Nil fields degrade
// the matching endpoints instead of disabling the routes, so the route
// table is identical across deployments.
type Deps struct {
	// Library resolves named scenarios. Nil when no scenario directory
	// is configured.
	Library *scenario.Library

	// History stores completed plans. Nil disables persistence.
	History *storage.HistoryStore

	// PlanLimiter throttles POST /v1/motion/plan. Nil disables limiting.
	PlanLimiter *rate.Limiter

	// ExposeMetrics serves Prometheus metrics on /metrics.
	ExposeMetrics bool
}

func SetupRoutes(router *gin.Engine, deps Deps) {
	router.GET("/health", handlers.HealthCheck)
	if deps.ExposeMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// API version 1 group
	v1 := router.Group("/v1/motion")
	{
		v1.POST("/plan", middleware.RateLimit(deps.PlanLimiter), handlers.HandlePlan(deps.Library, deps.History))
		v1.GET("/plan/ws", handlers.HandlePlanStream(deps.Library, deps.History))
		v1.GET("/scenarios", handlers.ListScenarios(deps.Library))
		v1.GET("/scenarios/:name", handlers.GetScenario(deps.Library))
		// Plan history routes
		v1.GET("/plans", handlers.ListPlanRecords(deps.History))
		v1.GET("/plans/:id", handlers.GetPlanRecord(deps.History))
	}
}
