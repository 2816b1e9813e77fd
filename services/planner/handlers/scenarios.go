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
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/AleutianMotion/pkg/validation"
	"github.com/AleutianAI/AleutianMotion/services/planner/scenario"
)

// ListScenarios returns the handler for GET /v1/motion/scenarios.
//
// Responds with a sorted summary of every loaded scenario. A service
// running without a scenario directory serves an empty list.
func ListScenarios(lib *scenario.Library) gin.HandlerFunc {
	return func(c *gin.Context) {
		summaries := []scenario.Summary{}
		if lib != nil {
			summaries = lib.List()
		}
		c.JSON(http.StatusOK, gin.H{
			"scenarios": summaries,
			"count":     len(summaries),
		})
	}
}

// GetScenario returns the handler for GET /v1/motion/scenarios/:name.
//
// Responds with the full scenario spec, including space bounds and
// obstacles, so clients can render the environment.
func GetScenario(lib *scenario.Library) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		if err := validation.ValidateScenarioName(name); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if lib == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "scenario library is not configured"})
			return
		}
		spec, ok := lib.Get(name)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown scenario: " + name})
			return
		}
		c.JSON(http.StatusOK, spec)
	}
}
