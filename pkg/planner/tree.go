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

import "fmt"

// Tree is an append-only arena of search nodes. Nodes are addressed by
// index; each node stores its configuration and the index of its parent,
// with -1 marking the root. Because parents always precede children in the
// arena, the structure is acyclic by construction and Retrace always
// terminates.
//
// Tree is not safe for concurrent use. Create instances with NewTree; the
// zero value has no root and most methods panic on it.
type Tree[C any] struct {
	nodes []treeNode[C]
}

type treeNode[C any] struct {
	config C
	parent int // arena index of the parent, -1 for the root
}

// NewTree returns a tree containing only the root configuration.
func NewTree[C any](root C) *Tree[C] {
	t := &Tree[C]{nodes: make([]treeNode[C], 0, 64)}
	t.nodes = append(t.nodes, treeNode[C]{config: root, parent: -1})
	return t
}

// Len returns the number of nodes in the tree.
func (t *Tree[C]) Len() int { return len(t.nodes) }

// Config returns the configuration stored at index i.
func (t *Tree[C]) Config(i int) C { return t.nodes[i].config }

// Parent returns the parent index of node i, or -1 for the root.
func (t *Tree[C]) Parent(i int) int { return t.nodes[i].parent }

// Add appends a node with the given parent and returns its index. It
// panics when parent is not an existing index, since a dangling parent
// would break the retrace invariant.
func (t *Tree[C]) Add(config C, parent int) int {
	if parent < 0 || parent >= len(t.nodes) {
		panic(fmt.Sprintf("planner: parent index %d out of range [0,%d)", parent, len(t.nodes)))
	}
	t.nodes = append(t.nodes, treeNode[C]{config: config, parent: parent})
	return len(t.nodes) - 1
}

// Nearest returns the index of the node whose configuration minimizes
// distance to the target. The scan keeps the first node achieving the
// minimum, so distance ties resolve to the earliest-inserted node; callers
// must not rely on any particular tie ordering beyond that.
func (t *Tree[C]) Nearest(target C, distance func(a, b C) float64) int {
	if len(t.nodes) == 0 {
		panic("planner: Nearest on empty tree")
	}
	best := 0
	bestDist := distance(t.nodes[0].config, target)
	for i := 1; i < len(t.nodes); i++ {
		if d := distance(t.nodes[i].config, target); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Retrace returns the configurations from the root to node i, inclusive,
// by following parent indices and reversing. It panics when i is not an
// existing index.
func (t *Tree[C]) Retrace(i int) Path[C] {
	if i < 0 || i >= len(t.nodes) {
		panic(fmt.Sprintf("planner: node index %d out of range [0,%d)", i, len(t.nodes)))
	}
	depth := 0
	for n := i; n != -1; n = t.nodes[n].parent {
		depth++
	}
	path := make(Path[C], depth)
	for n := i; n != -1; n = t.nodes[n].parent {
		depth--
		path[depth] = t.nodes[n].config
	}
	return path
}
