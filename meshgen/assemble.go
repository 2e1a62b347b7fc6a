// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meshgen

import "sort"

// CellRef locates a cell by its (k,j,i) raster position.
type CellRef struct{ K, J, I int }

// AssignElementIDs walks active cells in (ascending block tag, then k, j, i)
// order and assigns each a 1-based element ID. blockTags may be nil,
// meaning every cell belongs to block 0.
//
// Returns the per-element block tag vector and the per-element cell
// location, both indexed by element ID - 1, plus the dense (nz,ny,nx)
// elemIds grid (0 for inactive cells).
func AssignElementIDs(active [][][]bool, blockTags [][][]int) (elemIds [][][]int, blockIDs []int, cellOrder []CellRef) {

	nz, ny, nx := len(active), len(active[0]), len(active[0][0])

	type entry struct {
		tag     int
		k, j, i int
	}
	var entries []entry
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				if !active[k][j][i] {
					continue
				}
				tag := 0
				if blockTags != nil {
					tag = blockTags[k][j][i]
				}
				entries = append(entries, entry{tag, k, j, i})
			}
		}
	}
	// stable sort by ascending tag; raster (k,j,i) order is preserved
	// within equal tags since entries was built in that order.
	sort.SliceStable(entries, func(a, b int) bool { return entries[a].tag < entries[b].tag })

	elemIds = make([][][]int, nz)
	for k := range elemIds {
		elemIds[k] = make([][]int, ny)
		for j := range elemIds[k] {
			elemIds[k][j] = make([]int, nx)
		}
	}

	blockIDs = make([]int, len(entries))
	cellOrder = make([]CellRef, len(entries))
	for idx, e := range entries {
		id := idx + 1
		elemIds[e.k][e.j][e.i] = id
		blockIDs[idx] = e.tag
		cellOrder[idx] = CellRef{e.k, e.j, e.i}
	}
	return
}

// BuildConnectivity produces elemNodes by walking cells in element-ID order
// and emitting the eight node IDs for each, right-hand-rule order. If
// flipZ was applied upstream, indices (0..3) are swapped with (4..7) per
// cell, matching the bottom/top swap.
func BuildConnectivity(lattice NodeLattice, cellOrder []CellRef, flipZ bool) [][8]int {
	out := make([][8]int, len(cellOrder))
	for idx, c := range cellOrder {
		corners := lattice[c.K][c.J][c.I]
		if flipZ {
			out[idx] = [8]int{
				corners[4], corners[5], corners[6], corners[7],
				corners[0], corners[1], corners[2], corners[3],
			}
		} else {
			out[idx] = corners
		}
	}
	return out
}

// CompactCoordinates takes the first occurrence of each node ID (scanning
// in k,j,i,corner order) and returns its (x,y,z), yielding three
// length-numNodes vectors indexed by (id-1).
func CompactCoordinates(lattice NodeLattice, cellX, cellY, cellZ [][][][8]float64, numNodes int) (x, y, z []float64) {
	x = make([]float64, numNodes)
	y = make([]float64, numNodes)
	z = make([]float64, numNodes)
	seen := make([]bool, numNodes+1)

	nz, ny, nx := len(lattice), len(lattice[0]), len(lattice[0][0])
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				for c := 0; c < 8; c++ {
					id := lattice[k][j][i][c]
					if id == 0 || seen[id] {
						continue
					}
					seen[id] = true
					x[id-1] = cellX[k][j][i][c]
					y[id-1] = cellY[k][j][i][c]
					z[id-1] = cellZ[k][j][i][c]
				}
			}
		}
	}
	return
}

// faceDef describes one of the six boundary faces in terms of the cell
// lattice: the axis along which it is the outer boundary, the starting
// layer and inward search direction (for descending past inactive
// boundary cells), the local hex8 corners exposed on that face, and the
// Exodus side-set face number.
type faceDef struct {
	name       string
	axis       byte // 'k', 'j', or 'i'
	layerStart int
	inward     int // +1 or -1
	corners    [4]int
	faceNum    int
}

func faceDefs(nz, ny, nx int) []faceDef {
	return []faceDef{
		{"bottom", 'k', 0, +1, [4]int{0, 1, 2, 3}, 5},
		{"front", 'j', 0, +1, [4]int{0, 1, 5, 4}, 1},
		{"left", 'i', 0, +1, [4]int{0, 4, 7, 3}, 4},
		{"right", 'i', nx - 1, -1, [4]int{1, 2, 6, 5}, 2},
		{"back", 'j', ny - 1, -1, [4]int{2, 3, 7, 6}, 3},
		{"top", 'k', nz - 1, -1, [4]int{4, 5, 6, 7}, 6},
	}
}

// BuildBoundarySets constructs the six named node sets and side sets by
// projecting the cell lattice onto its outer faces, descending past
// inactive boundary cells to the first active one along the face normal.
// If flipZ was applied, "top" and "bottom" swap names and face numbers.
func BuildBoundarySets(elemIds [][][]int, lattice NodeLattice, flipZ bool) (nodeSets []NodeSet, sideSets []SideSet) {

	nz, ny, nx := len(elemIds), len(elemIds[0]), len(elemIds[0][0])

	for _, fd := range faceDefs(nz, ny, nx) {
		ns := NodeSet{Name: fd.name}
		ss := SideSet{Name: fd.name}
		nodeSeen := make(map[int]bool)

		var d1, d2 int
		switch fd.axis {
		case 'k':
			d1, d2 = ny, nx
		case 'j':
			d1, d2 = nz, nx
		case 'i':
			d1, d2 = nz, ny
		}

		for a := 0; a < d1; a++ {
			for b := 0; b < d2; b++ {
				k, j, i, found := findBoundaryCell(elemIds, fd, a, b, nz, ny, nx)
				if !found {
					continue
				}
				ss.Elems = append(ss.Elems, elemIds[k][j][i])
				ss.Faces = append(ss.Faces, fd.faceNum)
				corners := lattice[k][j][i]
				for _, c := range fd.corners {
					id := corners[c]
					if id != 0 && !nodeSeen[id] {
						nodeSeen[id] = true
						ns.Nodes = append(ns.Nodes, id)
					}
				}
			}
		}
		sort.Ints(ns.Nodes)
		nodeSets = append(nodeSets, ns)
		sideSets = append(sideSets, ss)
	}

	if flipZ {
		swapTopBottom(nodeSets, sideSets)
	}
	return
}

// findBoundaryCell resolves the (k,j,i) of the in-face position a,b on
// face fd, marching inward from the boundary layer until an active cell
// (elemIds != 0) is found, or returns found=false if the entire column is
// inactive.
func findBoundaryCell(elemIds [][][]int, fd faceDef, a, b, nz, ny, nx int) (k, j, i int, found bool) {
	pos := fd.layerStart
	for {
		switch fd.axis {
		case 'k':
			k, j, i = pos, a, b
		case 'j':
			k, j, i = a, pos, b
		case 'i':
			k, j, i = a, b, pos
		}
		if k < 0 || k >= nz || j < 0 || j >= ny || i < 0 || i >= nx {
			return 0, 0, 0, false
		}
		if elemIds[k][j][i] != 0 {
			return k, j, i, true
		}
		pos += fd.inward
	}
}

// swapTopBottom exchanges the "top" and "bottom" entries' names and face
// numbers in place.
func swapTopBottom(nodeSets []NodeSet, sideSets []SideSet) {
	ti, bi := -1, -1
	for idx, ns := range nodeSets {
		if ns.Name == "top" {
			ti = idx
		}
		if ns.Name == "bottom" {
			bi = idx
		}
	}
	if ti < 0 || bi < 0 {
		return
	}
	nodeSets[ti].Name, nodeSets[bi].Name = nodeSets[bi].Name, nodeSets[ti].Name
	sideSets[ti].Name, sideSets[bi].Name = sideSets[bi].Name, sideSets[ti].Name
	for k := range sideSets[ti].Faces {
		sideSets[ti].Faces[k], _ = swapFaceNum(sideSets[ti].Faces[k])
	}
	for k := range sideSets[bi].Faces {
		sideSets[bi].Faces[k], _ = swapFaceNum(sideSets[bi].Faces[k])
	}
}

func swapFaceNum(n int) (int, bool) {
	switch n {
	case 5:
		return 6, true
	case 6:
		return 5, true
	default:
		return n, false
	}
}

// SliceByCellOrder re-orders a dense (nz,ny,nx) property array into
// element-ID order, matching the element-ID assignment produced by
// AssignElementIDs.
func SliceByCellOrder(values [][][]float64, cellOrder []CellRef) []float64 {
	out := make([]float64, len(cellOrder))
	for idx, c := range cellOrder {
		out[idx] = values[c.K][c.J][c.I]
	}
	return out
}
