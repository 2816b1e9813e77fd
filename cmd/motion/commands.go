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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/AleutianMotion/pkg/logging"
)

// Version is the CLI version, reported by the version command.
const Version = "0.1.0"

// --- Global Command Variables ---
var (
	verbose    bool // elevate logging to debug level
	jsonOutput bool // machine-readable output on stdout

	rootCmd = &cobra.Command{
		Use:   "motion",
		Short: "A cli for sampling-based motion planning over scenario files",
		Long: `Motion plans collision-free paths through box worlds described
by scenario YAML files, using a bidirectional tree search with
restarts and shortcut smoothing.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := logging.LevelInfo
			if verbose {
				level = logging.LevelDebug
			}
			logger := logging.New(logging.Config{
				Level:   level,
				Service: "motion",
				// Results go to stdout; --json keeps stderr parseable too.
				JSON: jsonOutput,
			})
			logger.SetDefault()
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the motion CLI version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("motion", Version)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Emit results as JSON for scripting")

	rootCmd.AddCommand(versionCmd)

	// planning commands
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(benchCmd)

	// scenario management
	rootCmd.AddCommand(scenarioCmd)
	scenarioCmd.AddCommand(scenarioValidateCmd)

	// service
	rootCmd.AddCommand(serveCmd)
}
