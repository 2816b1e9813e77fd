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

// directionalExtend steers from a tree configuration toward a target. In
// forward mode it is a plain Extend call. In reversed mode the capability
// is invoked with swapped arguments and its output is reversed, so the
// returned sequence still leads away from `from` but is discretized in the
// direction the final path will traverse it. This is what lets the
// goal-rooted tree grow with a direction-sensitive extension primitive:
// goal-tree edges are walked junction-to-goal in the finished path, the
// opposite of their growth direction.
//
// Note the element conventions differ between modes: forward output
// excludes `from` and ends at `to`, while reversed output begins with
// `from` itself and stops one step short of `to`. The growth step and the
// junction splice account for this.
func directionalExtend[C any](s Space[C], from, to C, reversed bool) []C {
	if !reversed {
		return s.Extend(from, to)
	}
	ext := s.Extend(to, from)
	for l, r := 0, len(ext)-1; l < r; l, r = l+1, r-1 {
		ext[l], ext[r] = ext[r], ext[l]
	}
	return ext
}

// safePrefix returns the longest leading run of extension configurations
// that are all collision-free. The first colliding configuration truncates
// the prefix before it. The extension is finite by contract, so the loop
// is bounded.
func safePrefix[C any](s Space[C], extension []C) []C {
	for i, q := range extension {
		if s.Collides(q) {
			return extension[:i]
		}
	}
	return extension
}

// growToward performs one growth step: select the tree node nearest to the
// target, extend from it toward the target, and insert nodes for the safe
// prefix of the extension at the configured persistence density (every
// treeFrequency-th configuration, plus always the last safe one, so the
// true edge of collision-free progress is never lost).
//
// It returns the index of the last inserted node — or the nearest node
// when no progress was made — and whether the entire extension was
// collision-free, which is what "reached the target" means under the
// extension contract.
func growToward[C any](s Space[C], t *Tree[C], target C, reversed bool, treeFrequency int) (last int, reached bool) {
	last = t.Nearest(target, s.Distance)
	extension := directionalExtend(s, t.Config(last), target, reversed)
	safe := safePrefix(s, extension)
	for i, q := range safe {
		if i%treeFrequency == 0 || i == len(safe)-1 {
			last = t.Add(q, last)
		}
	}
	return last, len(safe) == len(extension)
}
