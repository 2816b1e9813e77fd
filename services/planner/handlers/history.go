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
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/AleutianMotion/services/planner/storage"
)

// GetPlanRecord returns the handler for GET /v1/motion/plans/:id.
func GetPlanRecord(history *storage.HistoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if history == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "plan history is not configured"})
			return
		}

		id := c.Param("id")
		rec, err := history.Get(c.Request.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown plan: " + id})
			return
		}
		if err != nil {
			slog.Error("failed to read plan record", "id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "read plan record"})
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

// ListPlanRecords returns the handler for GET /v1/motion/plans.
//
// Responds with the most recent plan records, newest first. The
// optional ?limit query parameter caps the page size.
func ListPlanRecords(history *storage.HistoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if history == nil {
			c.JSON(http.StatusOK, gin.H{"plans": []*storage.PlanRecord{}, "count": 0})
			return
		}

		limit := 0
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
				return
			}
			limit = parsed
		}

		records, err := history.Recent(c.Request.Context(), limit)
		if err != nil {
			slog.Error("failed to list plan records", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list plan records"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"plans": records, "count": len(records)})
	}
}
