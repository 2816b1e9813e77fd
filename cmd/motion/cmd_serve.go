// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"time"

	"github.com/spf13/cobra"

	plannersvc "github.com/AleutianAI/AleutianMotion/services/planner"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	servePort         int
	serveScenarioDir  string
	serveHistoryPath  string
	serveHistoryTTL   time.Duration
	serveOTelEndpoint string
	serveRateLimit    float64
	serveNoMetrics    bool
	serveNoWatch      bool
	serveGinMode      string
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// serveCmd runs the motion planning HTTP service in the foreground.
//
// # Description
//
// Flag-driven twin of the plannerd container entry point, for local
// development and ad-hoc deployments. The service serves named
// scenarios from --scenario-dir (hot-reloaded on edit) and records
// plans under --history-path.
//
// # Examples
//
//	motion serve --scenario-dir ./scenarios
//	motion serve --port 8080 --history-path /tmp/motion-history --rate-limit 5
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the motion planning HTTP service",
	RunE:  runServeCommand,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 12320, "HTTP server port")
	serveCmd.Flags().StringVar(&serveScenarioDir, "scenario-dir", "",
		"Directory of scenario YAML files to serve by name")
	serveCmd.Flags().StringVar(&serveHistoryPath, "history-path", "",
		"BadgerDB directory for plan history; empty keeps history in memory")
	serveCmd.Flags().DurationVar(&serveHistoryTTL, "history-ttl", 0,
		"Expire plan records after this duration; 0 keeps them indefinitely")
	serveCmd.Flags().StringVar(&serveOTelEndpoint, "otel-endpoint", "",
		"OpenTelemetry collector endpoint; empty disables tracing export")
	serveCmd.Flags().Float64Var(&serveRateLimit, "rate-limit", 0,
		"Sustained plan requests per second; 0 disables rate limiting")
	serveCmd.Flags().BoolVar(&serveNoMetrics, "no-metrics", false,
		"Disable the Prometheus /metrics endpoint")
	serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false,
		"Disable hot reload of the scenario directory")
	serveCmd.Flags().StringVar(&serveGinMode, "gin-mode", "release",
		"Gin framework mode (debug, release, test)")
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runServeCommand(cmd *cobra.Command, args []string) error {
	svc, err := plannersvc.New(plannersvc.Config{
		Port:           servePort,
		GinMode:        serveGinMode,
		ScenarioDir:    serveScenarioDir,
		HistoryPath:    serveHistoryPath,
		HistoryTTL:     serveHistoryTTL,
		OTelEndpoint:   serveOTelEndpoint,
		RateLimit:      serveRateLimit,
		DisableMetrics: serveNoMetrics,
		DisableWatch:   serveNoWatch,
	})
	if err != nil {
		return err
	}
	return svc.Run()
}
