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
	"time"

	"github.com/gin-gonic/gin"
)

// Version identifies the running build. Overridden at release time via
// -ldflags "-X .../handlers.Version=v0.4.0".
var Version = "dev"

// HealthCheck handles GET /health.
//
// Always returns 200 while the process is serving. Container
// orchestrators use this as the liveness probe.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "motion-planner",
		"version": Version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
