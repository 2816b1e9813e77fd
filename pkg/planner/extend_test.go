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

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepExtend returns the unit-step interpolation from `from` to `to`,
// excluding `from` and terminating exactly at `to`.
func stepExtend(from, to float64) []float64 {
	steps := int(math.Ceil(math.Abs(to - from)))
	if steps == 0 {
		return []float64{to}
	}
	out := make([]float64, steps)
	for k := 1; k < steps; k++ {
		out[k-1] = from + (to-from)*float64(k)/float64(steps)
	}
	out[steps-1] = to
	return out
}

// createLineSpace builds a one-dimensional space with unit-step extension,
// a blocked closed interval [blockedLo, blockedHi] (an empty interval with
// lo > hi disables collisions), and a sampler cycling through samples.
func createLineSpace(t *testing.T, blockedLo, blockedHi float64, samples []float64) *Funcs[float64] {
	t.Helper()
	idx := 0
	return &Funcs[float64]{
		DistanceFn: absDistance,
		SampleFn: func() float64 {
			q := samples[idx%len(samples)]
			idx++
			return q
		},
		ExtendFn: stepExtend,
		CollidesFn: func(q float64) bool {
			return q >= blockedLo && q <= blockedHi
		},
	}
}

func TestDirectionalExtend_Forward(t *testing.T) {
	s := createLineSpace(t, 1, 0, []float64{0})

	got := directionalExtend[float64](s, 0, 3, false)

	assert.Equal(t, []float64{1, 2, 3}, got)
}

func TestDirectionalExtend_ReversedSwapsAndReverses(t *testing.T) {
	s := createLineSpace(t, 1, 0, []float64{0})

	got := directionalExtend[float64](s, 0, 3, true)

	// Reversed mode begins with the origin configuration and stops one
	// step short of the target: the discretization of extend(3, 0) walked
	// backward.
	assert.Equal(t, []float64{0, 1, 2}, got)
}

func TestSafePrefix_TruncatesBeforeFirstCollision(t *testing.T) {
	s := createLineSpace(t, 4, 6, nil)

	got := safePrefix[float64](s, []float64{1, 2, 3, 4, 5})

	assert.Equal(t, []float64{1, 2, 3}, got)
}

func TestSafePrefix_AllSafe(t *testing.T) {
	s := createLineSpace(t, 4, 6, nil)

	got := safePrefix[float64](s, []float64{1, 2, 3})

	assert.Equal(t, []float64{1, 2, 3}, got)
}

func TestSafePrefix_BlockedImmediately(t *testing.T) {
	s := createLineSpace(t, 4, 6, nil)

	got := safePrefix[float64](s, []float64{5, 7})

	assert.Empty(t, got)
}

func TestGrowToward_InsertsWholeExtension(t *testing.T) {
	s := createLineSpace(t, 1, 0, nil)
	tree := NewTree(0.0)

	last, reached := growToward[float64](s, tree, 3.0, false, 1)

	assert.True(t, reached)
	require.Equal(t, 4, tree.Len())
	assert.Equal(t, 3.0, tree.Config(last))
	assert.Equal(t, Path[float64]{0, 1, 2, 3}, tree.Retrace(last))
}

func TestGrowToward_PartialProgressStopsAtObstacle(t *testing.T) {
	s := createLineSpace(t, 4, 6, nil)
	tree := NewTree(0.0)

	last, reached := growToward[float64](s, tree, 5.0, false, 1)

	assert.False(t, reached)
	assert.Equal(t, 3.0, tree.Config(last))
	assert.Equal(t, Path[float64]{0, 1, 2, 3}, tree.Retrace(last))
}

func TestGrowToward_BlockedAtFirstStep(t *testing.T) {
	s := createLineSpace(t, 1, 10, nil)
	tree := NewTree(0.0)

	last, reached := growToward[float64](s, tree, 5.0, false, 1)

	assert.False(t, reached)
	assert.Equal(t, 0, last, "no progress returns the pre-existing nearest node")
	assert.Equal(t, 1, tree.Len())
}

func TestGrowToward_FrequencySubsamplesButKeepsLast(t *testing.T) {
	s := createLineSpace(t, 1, 0, nil)
	tree := NewTree(0.0)

	last, reached := growToward[float64](s, tree, 5.0, false, 2)

	assert.True(t, reached)
	// Positions 0, 2, and the final safe configuration are persisted.
	require.Equal(t, 4, tree.Len())
	assert.Equal(t, Path[float64]{0, 1, 3, 5}, tree.Retrace(last))
}

func TestGrowToward_ReversedStartsFromOwnConfiguration(t *testing.T) {
	s := createLineSpace(t, 1, 0, nil)
	tree := NewTree(10.0)

	last, reached := growToward[float64](s, tree, 7.0, true, 1)

	assert.True(t, reached)
	// The reversed extension re-emits the tree's own configuration at
	// position zero and stops one step short of the target.
	assert.Equal(t, Path[float64]{10, 10, 9, 8}, tree.Retrace(last))
}

func TestGrowToward_EmptyExtensionIsAlreadyAtTarget(t *testing.T) {
	s := &Funcs[float64]{
		DistanceFn: absDistance,
		SampleFn:   func() float64 { return 0 },
		ExtendFn:   func(from, to float64) []float64 { return nil },
		CollidesFn: func(q float64) bool { return false },
	}
	tree := NewTree(2.0)

	last, reached := growToward[float64](s, tree, 2.0, false, 1)

	assert.True(t, reached)
	assert.Equal(t, 0, last)
	assert.Equal(t, 1, tree.Len())
}
