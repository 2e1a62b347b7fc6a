// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package convert drives an already-built meshgen.Model into an Exodus II
// file. It owns the writer's lifecycle exclusively, deleting a partial
// output file on any fatal error.
package convert

import (
	"fmt"
	"log"
	"os"

	"github.com/cpmech/gosl/chk"

	"github.com/cpgr/em2ex/exodus"
	"github.com/cpgr/em2ex/meshgen"
)

// Options controls which optional output pieces are emitted.
type Options struct {
	Title        string
	NodeSets     bool
	SideSets     bool
	ElemVarNames []string // ElemVars names to emit, in this order
	NodeVarNames []string // NodeVars names to emit, in this order
}

// Write sequences a full conversion: create; coordinate names and
// coordinates; block names and per-block
// info/connectivity in ascending block-ID order; optional node/side sets;
// time step 1 at t=0; element variables per block; side-set and node-set
// variables projected from element/node values. The partial output file
// is removed if any step after creation fails.
func Write(path string, m *meshgen.Model, opts Options) (err error) {
	dims := exodus.Dims{
		Title:      opts.Title,
		NumDim:     m.Dim,
		NumNodes:   m.NumNodes(),
		NumElems:   m.NumElems(),
		NumElemBlk: len(m.BlockTags()),
	}
	if opts.NodeSets {
		dims.NumNodeSets = len(m.NodeSets)
	}
	if opts.SideSets {
		dims.NumSideSets = len(m.SideSets)
	}

	w, err := exodus.Create(path, dims)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			w.Close()
			if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
				log.Printf("convert: failed to remove partial output %q: %v", path, rmErr)
			}
			return
		}
		err = w.Close()
	}()

	if err = writeCoordinates(w, m); err != nil {
		return err
	}
	blockElems, err := writeBlocks(w, m)
	if err != nil {
		return err
	}
	if opts.NodeSets {
		if err = writeNodeSets(w, m); err != nil {
			return err
		}
	}
	if opts.SideSets {
		if err = writeSideSets(w, m); err != nil {
			return err
		}
	}
	if err = w.PutTime(1, 0); err != nil {
		return err
	}
	if err = writeElementVariables(w, m, opts, blockElems); err != nil {
		return err
	}
	if opts.SideSets {
		if err = writeSideSetVariables(w, m, opts); err != nil {
			return err
		}
	}
	if err = writeNodeVariables(w, m, opts); err != nil {
		return err
	}
	if opts.NodeSets {
		if err = writeNodeSetVariables(w, m, opts); err != nil {
			return err
		}
	}

	log.Printf("convert: wrote %d nodes, %d elements, %d blocks to %s", m.NumNodes(), m.NumElems(), len(m.BlockTags()), path)
	return nil
}

func writeCoordinates(w *exodus.Writer, m *meshgen.Model) error {
	names := []string{"x", "y", "z"}[:m.Dim]
	if err := w.PutCoordNames(names); err != nil {
		return err
	}
	return w.PutCoords(m.X, m.Y, m.Z)
}

// blockRange is the [start,end) element-index range (0-based, into
// m.ElemNodes/m.BlockIDs) owned by one block tag, relying on
// AssignElementIDs having sorted entries by ascending tag so that each
// block's element IDs are contiguous.
type blockRange struct {
	tag        int
	start, end int
}

func blockRanges(blockIDs []int) []blockRange {
	var ranges []blockRange
	for idx, tag := range blockIDs {
		if len(ranges) > 0 && ranges[len(ranges)-1].tag == tag {
			ranges[len(ranges)-1].end = idx + 1
			continue
		}
		ranges = append(ranges, blockRange{tag: tag, start: idx, end: idx + 1})
	}
	return ranges
}

// writeBlocks writes block names/info/connectivity in ascending block-ID
// order and returns the per-tag element-index ranges so variable
// emission can reuse them.
func writeBlocks(w *exodus.Writer, m *meshgen.Model) ([]blockRange, error) {
	ranges := blockRanges(m.BlockIDs)

	names := make([]string, len(ranges))
	for i, r := range ranges {
		names[i] = fmt.Sprintf("block_%d", r.tag)
	}
	if err := w.PutElemBlkNames(names); err != nil {
		return nil, err
	}

	for _, r := range ranges {
		n := r.end - r.start
		if err := w.PutElemBlkInfo(r.tag, "hex8", n, 8, 0); err != nil {
			return nil, err
		}
		conn := make([]int32, 0, n*8)
		for idx := r.start; idx < r.end; idx++ {
			for _, nid := range m.ElemNodes[idx] {
				conn = append(conn, int32(nid))
			}
		}
		if err := w.PutElemConnectivity(r.tag, conn); err != nil {
			return nil, err
		}
	}
	return ranges, nil
}

func writeNodeSets(w *exodus.Writer, m *meshgen.Model) error {
	names := make([]string, len(m.NodeSets))
	for i, ns := range m.NodeSets {
		names[i] = ns.Name
	}
	if err := w.PutNodeSetNames(names); err != nil {
		return err
	}
	for id, ns := range m.NodeSets {
		if err := w.PutNodeSetParams(id+1, len(ns.Nodes)); err != nil {
			return err
		}
		nodes := make([]int32, len(ns.Nodes))
		for i, n := range ns.Nodes {
			nodes[i] = int32(n)
		}
		if err := w.PutNodeSet(id+1, nodes); err != nil {
			return err
		}
	}
	return nil
}

func writeSideSets(w *exodus.Writer, m *meshgen.Model) error {
	names := make([]string, len(m.SideSets))
	for i, ss := range m.SideSets {
		names[i] = ss.Name
	}
	if err := w.PutSideSetNames(names); err != nil {
		return err
	}
	for id, ss := range m.SideSets {
		if err := w.PutSideSetParams(id+1, len(ss.Elems)); err != nil {
			return err
		}
		elems := make([]int32, len(ss.Elems))
		faces := make([]int32, len(ss.Faces))
		for i := range ss.Elems {
			elems[i] = int32(ss.Elems[i])
			faces[i] = int32(ss.Faces[i])
		}
		if err := w.PutSideSet(id+1, elems, faces); err != nil {
			return err
		}
	}
	return nil
}

func writeElementVariables(w *exodus.Writer, m *meshgen.Model, opts Options, ranges []blockRange) error {
	if len(opts.ElemVarNames) == 0 {
		return nil
	}
	if err := w.SetElementVariableNumber(len(opts.ElemVarNames)); err != nil {
		return err
	}
	for i, name := range opts.ElemVarNames {
		if err := w.PutElementVariableName(name, i+1); err != nil {
			return err
		}
	}
	for _, name := range opts.ElemVarNames {
		values, ok := m.ElemVars.Get(name)
		if !ok {
			return chk.Err("convert: element variable %q not present in model", name)
		}
		for _, r := range ranges {
			if err := w.PutElementVariableValues(r.tag, name, 1, values[r.start:r.end]); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeNodeVariables(w *exodus.Writer, m *meshgen.Model, opts Options) error {
	if len(opts.NodeVarNames) == 0 {
		return nil
	}
	if err := w.SetNodeVariableNumber(len(opts.NodeVarNames)); err != nil {
		return err
	}
	for i, name := range opts.NodeVarNames {
		if err := w.PutNodeVariableName(name, i+1); err != nil {
			return err
		}
	}
	for _, name := range opts.NodeVarNames {
		values, ok := m.NodeVars.Get(name)
		if !ok {
			return chk.Err("convert: node variable %q not present in model", name)
		}
		if err := w.PutNodeVariableValues(name, 1, values); err != nil {
			return err
		}
	}
	return nil
}

// writeSideSetVariables emits, for each element variable, its values
// projected through every side set's element list: for each side set,
// values gathered by indexing the element values with the set's element
// IDs.
func writeSideSetVariables(w *exodus.Writer, m *meshgen.Model, opts Options) error {
	if len(opts.ElemVarNames) == 0 || len(m.SideSets) == 0 {
		return nil
	}
	if err := w.SetSideSetVariableNumber(len(opts.ElemVarNames)); err != nil {
		return err
	}
	for i, name := range opts.ElemVarNames {
		if err := w.PutSideSetVariableName(name, i+1); err != nil {
			return err
		}
	}
	for _, name := range opts.ElemVarNames {
		values, ok := m.ElemVars.Get(name)
		if !ok {
			return chk.Err("convert: element variable %q not present in model", name)
		}
		for id, ss := range m.SideSets {
			projected := make([]float64, len(ss.Elems))
			for i, elemID := range ss.Elems {
				projected[i] = values[elemID-1]
			}
			if err := w.PutSideSetVariableValues(id+1, name, 1, projected); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeNodeSetVariables symmetrically projects node variables through
// every node set's node list.
func writeNodeSetVariables(w *exodus.Writer, m *meshgen.Model, opts Options) error {
	if len(opts.NodeVarNames) == 0 || len(m.NodeSets) == 0 {
		return nil
	}
	if err := w.SetNodeSetVariableNumber(len(opts.NodeVarNames)); err != nil {
		return err
	}
	for i, name := range opts.NodeVarNames {
		if err := w.PutNodeSetVariableName(name, i+1); err != nil {
			return err
		}
	}
	for _, name := range opts.NodeVarNames {
		values, ok := m.NodeVars.Get(name)
		if !ok {
			return chk.Err("convert: node variable %q not present in model", name)
		}
		for id, ns := range m.NodeSets {
			projected := make([]float64, len(ns.Nodes))
			for i, nodeID := range ns.Nodes {
				projected[i] = values[nodeID-1]
			}
			if err := w.PutNodeSetVariableValues(id+1, name, 1, projected); err != nil {
				return err
			}
		}
	}
	return nil
}
