// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package space

import "errors"

// Sentinel errors for box construction. All are returned by New before the
// space is ever used.
var (
	// ErrInvalidBounds is returned for empty bounds or a lower bound above
	// its upper bound.
	ErrInvalidBounds = errors.New("bounds must be non-empty with lower <= upper per axis")

	// ErrDimensionMismatch is returned when bound, resolution, or
	// configuration vectors disagree on dimension.
	ErrDimensionMismatch = errors.New("vectors must agree on dimension")

	// ErrInvalidResolution is returned for a zero or negative per-axis
	// resolution.
	ErrInvalidResolution = errors.New("resolutions must be positive")
)
