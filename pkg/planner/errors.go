// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package planner

import "errors"

// Sentinel errors for planner parameter validation. All of them are
// returned before any search work begins; once a search is running, the
// only outcomes are a path or Result.Found == false.
var (
	// ErrNilSpace is returned when the configuration space is nil.
	ErrNilSpace = errors.New("configuration space must not be nil")

	// ErrMissingCapability is returned when a Funcs adapter is missing one
	// of its four capability functions. The wrapped message names the field.
	ErrMissingCapability = errors.New("capability function must not be nil")

	// ErrInvalidIterations is returned for a negative iteration cap.
	// Zero means "use DefaultIterations", so it is never rejected.
	ErrInvalidIterations = errors.New("iterations must not be negative")

	// ErrInvalidTreeFrequency is returned for an explicit tree frequency
	// below 1. The frequency controls node persistence density and a value
	// of 0 in Options selects DefaultTreeFrequency.
	ErrInvalidTreeFrequency = errors.New("tree frequency must be at least 1")

	// ErrInvalidAttempts is returned for a negative attempt count.
	ErrInvalidAttempts = errors.New("attempts must not be negative")

	// ErrInvalidSmoothingIterations is returned for a negative smoothing
	// iteration count.
	ErrInvalidSmoothingIterations = errors.New("smoothing iterations must not be negative")

	// ErrInvalidMaxTime is returned for a negative time budget.
	ErrInvalidMaxTime = errors.New("max time must not be negative")

	// ErrInvalidParallelism is returned for a negative parallel attempt
	// count.
	ErrInvalidParallelism = errors.New("parallel attempt count must not be negative")
)
