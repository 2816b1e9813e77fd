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

// Region is a blocked subset of a box world. A configuration inside any of
// a box's regions collides. Regions must be sized for the dimension of the
// box they are attached to.
type Region interface {
	// Contains reports whether q lies inside the region. Boundaries count
	// as inside, so a blocked closed interval blocks its endpoints.
	Contains(q Vector) bool
}

// AABB is an axis-aligned box region with closed bounds.
type AABB struct {
	Min Vector
	Max Vector
}

// Contains reports whether q lies inside the box, boundaries included.
func (r AABB) Contains(q Vector) bool {
	for i := range r.Min {
		if q[i] < r.Min[i] || q[i] > r.Max[i] {
			return false
		}
	}
	return true
}

// Ball is a Euclidean ball region with a closed boundary.
type Ball struct {
	Center Vector
	Radius float64
}

// Contains reports whether q lies inside the ball, boundary included.
func (b Ball) Contains(q Vector) bool {
	sum := 0.0
	for i := range b.Center {
		d := q[i] - b.Center[i]
		sum += d * d
	}
	return sum <= b.Radius*b.Radius
}
