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

// DirectPath attempts a single extension from start to goal and returns
// the resulting path — start followed by the full extension output — when
// every configuration along it is collision-free. A blocked endpoint or a
// blocked intermediate configuration yields ok == false, which is an
// expected outcome, not an error.
//
// The only error condition is an invalid space (nil, or a Funcs adapter
// with a missing capability). DirectPath performs exactly one extension
// and needs no budget, so it takes no context.
func DirectPath[C any](s Space[C], start, goal C) (path Path[C], ok bool, err error) {
	if err := validateSpace(s); err != nil {
		return nil, false, err
	}
	path, ok = directSegment[C](s, start, goal)
	return path, ok, nil
}

// directSegment is DirectPath without validation, shared with the
// orchestrator. Collision checks stop at the first blocked configuration.
func directSegment[C any](s Space[C], start, goal C) (Path[C], bool) {
	if s.Collides(start) || s.Collides(goal) {
		return nil, false
	}
	extension := s.Extend(start, goal)
	path := make(Path[C], 0, len(extension)+1)
	path = append(path, start)
	for _, q := range extension {
		if s.Collides(q) {
			return nil, false
		}
		path = append(path, q)
	}
	return path, true
}
