// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package validation provides input validation utilities for security-critical operations.
//
// This package contains validators for user-provided inputs that are used in
// file paths or echoed back to clients. Using these validators prevents
// injection attacks (path traversal, log forging).
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// scenarioNamePattern matches valid scenario names.
// Allows: lowercase letters, digits, dots, underscores, hyphens
// Max length: 64 characters
var scenarioNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]{0,63}$`)

// ValidateScenarioName validates a scenario name to prevent path traversal.
//
// Scenario names map directly to files under the scenario directory
// ("{name}.yaml"), so they must never be able to escape it. Names
// containing path separators or ".." are rejected outright.
//
// Valid names:
//   - 1-64 characters
//   - Lowercase letters a-z and digits 0-9
//   - Dots (.), underscores (_), and hyphens (-) after the first character
//
// Returns an error if the name is invalid.
//
// Example:
//
//	if err := validation.ValidateScenarioName(name); err != nil {
//	    return nil, fmt.Errorf("invalid scenario: %w", err)
//	}
//	// Safe to join onto the scenario directory
func ValidateScenarioName(name string) error {
	if name == "" {
		return fmt.Errorf("scenario name cannot be empty")
	}

	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("scenario name %q must not contain path separators or '..'", name)
	}

	if !scenarioNamePattern.MatchString(name) {
		return fmt.Errorf("invalid scenario name: %q (must be 1-64 lowercase alphanumeric chars, dots, underscores, or hyphens)", name)
	}

	return nil
}

// SanitizeScenarioName normalizes and validates a scenario name.
// Returns the lowercase name if valid, or an error if invalid.
//
// Use this when you need both validation and normalization:
//
//	safeName, err := validation.SanitizeScenarioName(userInput)
//	if err != nil {
//	    return err
//	}
//	// safeName is lowercase and validated
func SanitizeScenarioName(name string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if err := ValidateScenarioName(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}
