// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package middleware provides HTTP middleware for the planner service.
//
// This package contains middleware for request throttling. Planning requests
// are CPU-bound and can run for seconds each, so the service sheds load
// before accepting a request rather than queueing unbounded work.
//
// # Throttling Flow
//
//	Request
//	   │
//	   ▼
//	RateLimit
//	   │
//	   ├─► limiter.Allow()
//	   │
//	   ├─► false: 429 {"error": "rate limit exceeded"}
//	   │
//	   └─► true: Handler
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// =============================================================================
// Rate Limit Middleware
// =============================================================================

// RateLimit creates a Gin middleware that throttles requests through a shared
// token bucket.
//
// # Description
//
// Each request consumes one token via limiter.Allow(). When the bucket is
// empty the request is rejected immediately with 429 rather than delayed;
// a planning client that gets throttled should back off, not wait in line
// holding a connection open.
//
// # Inputs
//
//   - limiter: Shared token bucket. A nil limiter disables throttling,
//     which keeps handler tests free of timing concerns.
//
// # Outputs
//
//   - gin.HandlerFunc: Middleware function ready for use with Gin
//
// # Examples
//
//	limiter := rate.NewLimiter(rate.Limit(10), 20)
//	v1 := router.Group("/v1/motion")
//	v1.POST("/plan", middleware.RateLimit(limiter), handler)
//
// # Limitations
//
//   - Single bucket across all callers; no per-client fairness.
//
// # Assumptions
//
//   - The same limiter instance is shared by every route that should count
//     against the same budget.
//
// # Thread Safety
//
// Thread-safe. rate.Limiter performs its own locking.
func RateLimit(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter != nil && !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
