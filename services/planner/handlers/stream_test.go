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
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/AleutianMotion/services/planner/datatypes"
	"github.com/AleutianAI/AleutianMotion/services/planner/scenario"
	"github.com/AleutianAI/AleutianMotion/services/planner/storage"
)

func dialStream(t *testing.T, lib *scenario.Library, history *storage.HistoryStore) *websocket.Conn {
	t.Helper()
	router := gin.New()
	router.GET("/ws", HandlePlanStream(lib, history))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(10*time.Second)))
	return conn
}

// readUntilResult collects frames until a terminal "result" or "error"
// frame arrives.
func readUntilResult(t *testing.T, conn *websocket.Conn) (frames []map[string]json.RawMessage, terminal map[string]json.RawMessage) {
	t.Helper()
	for {
		var frame map[string]json.RawMessage
		require.NoError(t, conn.ReadJSON(&frame))
		frames = append(frames, frame)

		var kind string
		require.NoError(t, json.Unmarshal(frame["type"], &kind))
		if kind == "result" || kind == "error" {
			return frames, frame
		}
	}
}

func frameType(t *testing.T, frame map[string]json.RawMessage) string {
	t.Helper()
	var kind string
	require.NoError(t, json.Unmarshal(frame["type"], &kind))
	return kind
}

func TestHandlePlanStream_ProgressThenResult(t *testing.T) {
	lib := newTestLibrary(t)
	conn := dialStream(t, lib, nil)

	require.NoError(t, conn.WriteJSON(&datatypes.PlanRequest{
		Scenario: "corridor",
		Start:    []float64{1, 2},
		Goal:     []float64{9, 8},
	}))

	frames, terminal := readUntilResult(t, conn)
	require.Equal(t, "result", frameType(t, terminal))

	progress := 0
	for _, frame := range frames[:len(frames)-1] {
		require.Equal(t, "progress", frameType(t, frame))
		progress++
	}
	assert.GreaterOrEqual(t, progress, 1, "a real search should emit progress")

	var result struct {
		Found bool                `json:"found"`
		Path  [][]float64         `json:"path"`
		Stats datatypes.PlanStats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(mustMarshal(t, terminal), &result))
	assert.True(t, result.Found)
	require.NotEmpty(t, result.Path)
	assert.Equal(t, []float64{1, 2}, result.Path[0])
	assert.Equal(t, []float64{9, 8}, result.Path[len(result.Path)-1])
}

func TestHandlePlanStream_ErrorFrameKeepsConnection(t *testing.T) {
	lib := newTestLibrary(t)
	conn := dialStream(t, lib, nil)

	// Invalid request: no start configuration.
	require.NoError(t, conn.WriteJSON(&datatypes.PlanRequest{
		Scenario: "corridor",
		Goal:     []float64{9, 8},
	}))

	var frame map[string]json.RawMessage
	require.NoError(t, conn.ReadJSON(&frame))
	require.Equal(t, "error", frameType(t, frame))

	// The connection survives; a corrected request still works.
	require.NoError(t, conn.WriteJSON(&datatypes.PlanRequest{
		Scenario: "corridor",
		Start:    []float64{1, 5},
		Goal:     []float64{9, 5},
	}))
	_, terminal := readUntilResult(t, conn)
	assert.Equal(t, "result", frameType(t, terminal))
}

func TestHandlePlanStream_UnknownScenario(t *testing.T) {
	conn := dialStream(t, nil, nil)

	require.NoError(t, conn.WriteJSON(&datatypes.PlanRequest{
		Scenario: "missing",
		Start:    []float64{0, 0},
		Goal:     []float64{1, 1},
	}))

	var frame map[string]json.RawMessage
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "error", frameType(t, frame))
}

func mustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}
