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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/AleutianMotion/services/planner/scenario"
)

func newScenarioRouter(lib *scenario.Library) *gin.Engine {
	router := gin.New()
	router.GET("/scenarios", ListScenarios(lib))
	router.GET("/scenarios/:name", GetScenario(lib))
	return router
}

func getPath(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestListScenarios(t *testing.T) {
	t.Run("returns loaded scenarios", func(t *testing.T) {
		router := newScenarioRouter(newTestLibrary(t))

		w := getPath(router, "/scenarios")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Scenarios []scenario.Summary `json:"scenarios"`
			Count     int                `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, "corridor", resp.Scenarios[0].Name)
		assert.Equal(t, 2, resp.Scenarios[0].Dimensions)
		assert.Equal(t, 2, resp.Scenarios[0].Obstacles)
	})

	t.Run("no library serves an empty list", func(t *testing.T) {
		router := newScenarioRouter(nil)

		w := getPath(router, "/scenarios")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"count":0`)
	})
}

func TestGetScenario(t *testing.T) {
	router := newScenarioRouter(newTestLibrary(t))

	t.Run("returns the full spec", func(t *testing.T) {
		w := getPath(router, "/scenarios/corridor")
		require.Equal(t, http.StatusOK, w.Code)

		body := w.Body.String()
		assert.Contains(t, body, `"name":"corridor"`)
		assert.Contains(t, body, `"obstacles"`)
	})

	t.Run("unknown name is 404", func(t *testing.T) {
		w := getPath(router, "/scenarios/warehouse")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid name is rejected", func(t *testing.T) {
		w := getPath(router, "/scenarios/Corridor")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no library is 404", func(t *testing.T) {
		bare := newScenarioRouter(nil)
		w := getPath(bare, "/scenarios/corridor")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
