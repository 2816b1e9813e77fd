// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package planner implements sampling-based motion planning for continuous
// configuration spaces using bidirectional rapidly-exploring random trees
// (RRT-Connect).
//
// The planner is generic over the configuration type and never inspects it:
// all knowledge about the space is injected through four capability
// functions (distance, sampling, extension, collision testing) bundled into
// the Space interface. Callers that work with closures rather than a named
// type can use the Funcs adapter.
//
// # Entry Points
//
// Three operations are exposed, from cheapest to most thorough:
//
//   - DirectPath attempts a single extension from start to goal and
//     succeeds only when every intermediate configuration is collision-free.
//   - Connect runs one bidirectional search: two trees rooted at start and
//     goal grow alternately, always enlarging the smaller tree, until they
//     meet or the iteration/time budget is exhausted.
//   - Plan is the orchestrator: it short-circuits through DirectPath, then
//     runs up to Options.Attempts independent searches under a shared
//     deadline, and optionally hands a found path to a Smoother.
//
// # No Path Is Not An Error
//
// Absence of a solution is an expected outcome, reported through
// Result.Found. Errors are reserved for invalid parameters and missing
// capability functions, which are rejected before any search work begins.
// A start or goal configuration that is itself in collision yields
// Found == false immediately, without consuming samples.
//
// # Budgets
//
// The iteration cap bounds each search's outer loop. Wall-clock limits are
// carried by the context: both Plan and Connect honor ctx cancellation and
// deadlines at iteration and attempt boundaries, never mid-extension, so
// overrun is bounded by the cost of a single growth step. Options.MaxTime
// is a convenience that wraps ctx with an additional deadline. Because
// restart attempts share the orchestrator's context, each attempt naturally
// operates on the remaining budget.
//
// # Determinism
//
// With deterministic capability functions (including a seeded or scripted
// sampler) and Parallel disabled, repeated runs produce identical paths.
// Parallel attempts trade this reproducibility for speed.
//
// # Thread Safety
//
// A single Plan or Connect call is safe for concurrent use with other
// calls as long as the capability functions themselves are. Within one call
// the search is sequential unless Options.Parallel is set, in which case the
// capability functions must be reentrant.
package planner
