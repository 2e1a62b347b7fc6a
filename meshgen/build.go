// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meshgen

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpgr/em2ex/grid"
	"github.com/cpgr/em2ex/shp"
)

// Options configures Build beyond the raw grid geometry.
type Options struct {
	BlockTags        [][][]int // nil => single block 0
	Tolerance        Tolerance
	FlipZ            bool // permute connectivity rows and swap top/bottom sets
	OmitNodeSets     bool
	OmitSideSets     bool
	CheckOrientation bool // validate every element's Jacobian
}

// Build turns decoded grid geometry into a complete Model: node
// deduplication (B), element/connectivity/coordinate/boundary-set assembly
// (C). Named per-cell properties can be attached afterward with
// Model.ElemVars.Set, sliced through the returned cellOrder via
// SliceByCellOrder.
func Build(d *grid.Decoded, opts Options) (m *Model, cellOrder []CellRef, err error) {

	lattice, numNodes := Dedup(d.CellZ, d.Active, opts.Tolerance)

	elemIds, blockIDs, cellOrder := AssignElementIDs(d.Active, opts.BlockTags)

	elemNodes := BuildConnectivity(lattice, cellOrder, opts.FlipZ)
	x, y, z := CompactCoordinates(lattice, d.CellX, d.CellY, d.CellZ, numNodes)

	if opts.CheckOrientation {
		if err = checkAllOrientations(elemNodes, x, y, z); err != nil {
			return nil, nil, err
		}
	}

	m = &Model{
		Dim:       3,
		X:         x,
		Y:         y,
		Z:         z,
		ElemNodes: elemNodes,
		BlockIDs:  blockIDs,
	}

	if !opts.OmitNodeSets || !opts.OmitSideSets {
		nodeSets, sideSets := BuildBoundarySets(elemIds, lattice, opts.FlipZ)
		if !opts.OmitNodeSets {
			m.NodeSets = nodeSets
		}
		if !opts.OmitSideSets {
			m.SideSets = sideSets
		}
	}

	return m, cellOrder, nil
}

// checkAllOrientations runs the hex8 Jacobian sanity check over every
// element, failing fast on the first inverted or degenerate hexahedron.
func checkAllOrientations(elemNodes [][8]int, x, y, z []float64) error {
	hex8 := shp.Get("hex8")
	if hex8 == nil {
		return chk.Err("meshgen: hex8 shape not registered")
	}
	xc := [3][8]float64{}
	for elemIdx, row := range elemNodes {
		for c, nid := range row {
			xc[0][c] = x[nid-1]
			xc[1][c] = y[nid-1]
			xc[2][c] = z[nid-1]
		}
		pts := [][]float64{xc[0][:], xc[1][:], xc[2][:]}
		if err := hex8.CheckOrientation(pts); err != nil {
			return chk.Err("element %d: %v", elemIdx+1, err)
		}
	}
	return nil
}
