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

import "context"

// Smoother post-processes a found path into an equal-or-better one using
// the same capability functions that produced it. Plan invokes it once
// after a successful search, passing the remaining budget through ctx and
// the configured iteration cap.
//
// Implementations must preserve the path's endpoints and return only
// collision-validated configurations; on an expired context they should
// return the best path refined so far, never nil. The planner treats the
// smoother as a black box and does not re-validate its output.
//
// The smooth subpackage provides the default random-shortcut
// implementation.
type Smoother[C any] interface {
	Smooth(ctx context.Context, s Space[C], path Path[C], iterations int) Path[C]
}
