// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meshgen

import "math"

// Tolerance controls the absolute+relative Z-coincidence test used by the
// node deduplicator to tell a shared corner from a faulted one.
type Tolerance struct {
	Atol, Rtol float64
}

// DefaultTolerance mirrors numpy.isclose's default (atol=1e-8, rtol=1e-5).
var DefaultTolerance = Tolerance{Atol: 1e-8, Rtol: 1e-5}

func (t Tolerance) isClose(a, b float64) bool {
	return math.Abs(a-b) <= t.Atol+t.Rtol*math.Abs(b)
}

// predDir enumerates the three scan directions, in priority order.
type predDir int

const (
	dirK predDir = iota
	dirJ
	dirI
)

// cornerAdjacency[c][dir] is the predecessor corner index matched across
// the neighbor in direction dir for local corner c, or -1 if none.
var cornerAdjacency = [8][3]int{
	/* corner 0 */ {4, 3, 1},
	/* corner 1 */ {5, 2, -1},
	/* corner 2 */ {6, -1, -1},
	/* corner 3 */ {7, -1, 2},
	/* corner 4 */ {-1, 7, 5},
	/* corner 5 */ {-1, 6, -1},
	/* corner 6 */ {-1, -1, -1},
	/* corner 7 */ {-1, -1, 6},
}

// NodeLattice is the (nz,ny,nx,8) node-ID lattice produced by Dedup; a
// value of 0 means no node has been assigned to that cell-corner slot.
// Every corner of an active cell is non-zero; a corner of an inactive
// cell is non-zero only if Dedup back-filled it.
type NodeLattice [][][][8]int

// Dedup assigns globally unique node IDs across active cells, merging
// coincident corners and preserving faults. Inactive cells are skipped
// when scanning for new allocations. When an active cell's corner gets a
// fresh ID, the Z-matching corner of each -k, -j, -i neighbor that still
// holds 0 (an inactive cell) is back-filled with that ID. No back-fill
// happens when the corner reuses an existing ID, and cells that touch the
// corner only diagonally are never filled, so a corner slot of an
// inactive cell can stay 0 even where an active cell has a node.
func Dedup(zcorn [][][][8]float64, active [][][]bool, tol Tolerance) (lattice NodeLattice, numNodes int) {

	nz := len(zcorn)
	ny := len(zcorn[0])
	nx := len(zcorn[0][0])

	lattice = make(NodeLattice, nz)
	for k := range lattice {
		lattice[k] = make([][][8]int, ny)
		for j := range lattice[k] {
			lattice[k][j] = make([][8]int, nx)
		}
	}

	next := 1
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				if !active[k][j][i] {
					continue
				}
				for c := 0; c < 8; c++ {
					assigned := false

					// step 1: scan predecessors in priority order -k, -j, -i
					for _, dir := range [3]predDir{dirK, dirJ, dirI} {
						pk, pj, pi, ok := neighborIndex(k, j, i, dir, nz, ny, nx)
						if !ok {
							continue
						}
						predC := cornerAdjacency[c][dir]
						if predC < 0 {
							continue
						}
						if !tol.isClose(zcorn[k][j][i][c], zcorn[pk][pj][pi][predC]) {
							continue
						}
						if lattice[pk][pj][pi][predC] != 0 {
							lattice[k][j][i][c] = lattice[pk][pj][pi][predC]
							assigned = true
							break
						}
					}
					if assigned {
						continue
					}

					// step 2: allocate a fresh ID, then back-fill any
					// Z-matching predecessor left at zero by an inactive cell.
					id := next
					next++
					lattice[k][j][i][c] = id
					for _, dir := range [3]predDir{dirK, dirJ, dirI} {
						pk, pj, pi, ok := neighborIndex(k, j, i, dir, nz, ny, nx)
						if !ok {
							continue
						}
						predC := cornerAdjacency[c][dir]
						if predC < 0 {
							continue
						}
						if !tol.isClose(zcorn[k][j][i][c], zcorn[pk][pj][pi][predC]) {
							continue
						}
						if lattice[pk][pj][pi][predC] == 0 {
							lattice[pk][pj][pi][predC] = id
						}
					}
				}
			}
		}
	}
	return lattice, next - 1
}

// neighborIndex returns the (k,j,i) of the neighbor one step back in the
// given direction, and whether that neighbor is within grid bounds.
func neighborIndex(k, j, i int, dir predDir, nz, ny, nx int) (pk, pj, pi int, ok bool) {
	switch dir {
	case dirK:
		if k == 0 {
			return 0, 0, 0, false
		}
		return k - 1, j, i, true
	case dirJ:
		if j == 0 {
			return 0, 0, 0, false
		}
		return k, j - 1, i, true
	case dirI:
		if i == 0 {
			return 0, 0, 0, false
		}
		return k, j, i - 1, true
	}
	return 0, 0, 0, false
}
