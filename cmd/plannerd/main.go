// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command plannerd starts the motion planning HTTP server.
//
// This is the main entry point for the containerized planning service.
// It reads configuration from environment variables and starts the server.
//
// # Environment Variables
//
//   - MOTION_PORT: HTTP server port (default: 12320)
//   - MOTION_SCENARIO_DIR: Scenario library directory (optional)
//   - MOTION_HISTORY_PATH: BadgerDB directory for plan history (optional;
//     empty keeps history in memory)
//   - MOTION_HISTORY_TTL_HOURS: Expire plan records after this many hours
//     (default: 0, keep indefinitely)
//   - MOTION_RATE_LIMIT: Sustained plan requests per second (default: 0, off)
//   - MOTION_DISABLE_METRICS: Set to "true" to disable /metrics
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OpenTelemetry collector
//     (default: aleutian-otel-collector:4317)
//   - GIN_MODE: Gin framework mode (default: release)
//
// # Usage
//
//	# Build
//	go build -o plannerd ./cmd/plannerd
//
//	# Run
//	MOTION_SCENARIO_DIR=./scenarios ./plannerd
//
//	# Or via container
//	podman-compose up plannerd
package main

import (
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/AleutianAI/AleutianMotion/services/planner"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Build configuration from environment variables
	cfg := planner.Config{
		Port:           getEnvInt("MOTION_PORT", 12320),
		GinMode:        getEnvString("GIN_MODE", "release"),
		ScenarioDir:    os.Getenv("MOTION_SCENARIO_DIR"),
		HistoryPath:    os.Getenv("MOTION_HISTORY_PATH"),
		HistoryTTL:     time.Duration(getEnvInt("MOTION_HISTORY_TTL_HOURS", 0)) * time.Hour,
		RateLimit:      getEnvFloat("MOTION_RATE_LIMIT", 0),
		DisableMetrics: getEnvBool("MOTION_DISABLE_METRICS", false),
		OTelEndpoint:   getEnvString("OTEL_EXPORTER_OTLP_ENDPOINT", "aleutian-otel-collector:4317"),
	}

	slog.Info("Starting motion planner",
		"port", cfg.Port,
		"scenario_dir", cfg.ScenarioDir,
		"history_path", cfg.HistoryPath,
	)

	svc, err := planner.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create planner service: %v", err)
	}

	// Run the server (blocks until shutdown)
	if err := svc.Run(); err != nil {
		log.Fatalf("Planner service error: %v", err)
	}
}

// getEnvString returns the environment variable value or a default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as int or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvFloat returns the environment variable as float64 or a default.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

// getEnvBool returns the environment variable as bool or a default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
