// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package meshgen turns decoded grid geometry into a complete ExodusModel:
// it deduplicates corner-point node IDs across cells (preserving geological
// faults), assigns block-ordered element IDs, and builds the boundary node
// and side sets.
package meshgen

// OrderedProps is a small ordered association list from variable name to
// a length-numElems (or numNodes) value vector. Exodus variable indices
// are assigned in registration order, so insertion order must be
// preserved — a plain map cannot do that.
type OrderedProps struct {
	names  []string
	values [][]float64
}

// Set appends a new named property, or replaces the values of an
// already-registered one in place (keeping its original position).
func (o *OrderedProps) Set(name string, values []float64) {
	for i, n := range o.names {
		if n == name {
			o.values[i] = values
			return
		}
	}
	o.names = append(o.names, name)
	o.values = append(o.values, values)
}

// Names returns the registered property names in registration order.
func (o *OrderedProps) Names() []string {
	return o.names
}

// Get returns the values for name and whether it was found.
func (o *OrderedProps) Get(name string) ([]float64, bool) {
	for i, n := range o.names {
		if n == name {
			return o.values[i], true
		}
	}
	return nil, false
}

// Len returns the number of registered properties.
func (o *OrderedProps) Len() int { return len(o.names) }

// SideSet is a named collection of (element ID, local face number) pairs.
type SideSet struct {
	Name  string
	Elems []int // 1-based element IDs
	Faces []int // parallel list of local face numbers, 1..6
}

// NodeSet is a named collection of node IDs.
type NodeSet struct {
	Name  string
	Nodes []int // 1-based node IDs
}

// Model is the core aggregate consumed by the Exodus writer: a plain
// record, not a bag of getters/setters.
type Model struct {
	Dim int // always 3

	// coordinate vectors, length NumNodes, indexed by node ID - 1
	X, Y, Z []float64

	// ElemNodes is NumElems x 8, 1-based node IDs, rows in element-ID order.
	ElemNodes [][8]int

	// BlockIDs is length NumElems, block tag per element, in element-ID order.
	BlockIDs []int

	ElemVars OrderedProps // per-element, length NumElems each
	NodeVars OrderedProps // per-node, length NumNodes each

	NodeSets []NodeSet // bottom, front, left, right, back, top (names may be swapped by flip-z)
	SideSets []SideSet
}

// NumNodes returns the number of distinct node IDs in the model.
func (m *Model) NumNodes() int { return len(m.X) }

// NumElems returns the number of elements in the model.
func (m *Model) NumElems() int { return len(m.ElemNodes) }

// BlockTags returns the distinct block tags present, in ascending order.
func (m *Model) BlockTags() []int {
	seen := make(map[int]bool)
	var tags []int
	for _, b := range m.BlockIDs {
		if !seen[b] {
			seen[b] = true
			tags = append(tags, b)
		}
	}
	for i := 1; i < len(tags); i++ {
		for j := i; j > 0 && tags[j-1] > tags[j]; j-- {
			tags[j-1], tags[j] = tags[j], tags[j-1]
		}
	}
	return tags
}
