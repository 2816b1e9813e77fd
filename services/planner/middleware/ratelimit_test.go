// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

// =============================================================================
// Test Setup
// =============================================================================

func init() {
	gin.SetMode(gin.TestMode)
}

// newLimitedRouter builds a router with a single throttled endpoint.
func newLimitedRouter(limiter *rate.Limiter) *gin.Engine {
	router := gin.New()
	router.GET("/limited", RateLimit(limiter), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

// =============================================================================
// RateLimit Tests
// =============================================================================

func TestRateLimit_AllowsWithinBudget(t *testing.T) {
	// Burst of 2 with effectively no refill during the test.
	router := newLimitedRouter(rate.NewLimiter(rate.Limit(0.001), 2))

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/limited", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "request %d should pass", i)
	}
}

func TestRateLimit_RejectsWhenExhausted(t *testing.T) {
	router := newLimitedRouter(rate.NewLimiter(rate.Limit(0.001), 1))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/limited", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/limited", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error": "rate limit exceeded"}`, w.Body.String())
}

func TestRateLimit_NilLimiterPassesThrough(t *testing.T) {
	router := newLimitedRouter(nil)

	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/limited", nil))

		assert.Equal(t, http.StatusOK, w.Code, "request %d should pass with nil limiter", i)
	}
}

func TestRateLimit_AbortsHandlerChain(t *testing.T) {
	handlerCalled := false
	router := gin.New()
	router.GET("/limited", RateLimit(rate.NewLimiter(rate.Limit(0.001), 0)), func(c *gin.Context) {
		handlerCalled = true
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/limited", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.False(t, handlerCalled, "handler must not run after throttle abort")
}
