// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meshgen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cpgr/em2ex/grid"
)

// flatGrid builds an (nx,ny,nz) grid with unit-spaced pillars and no
// faults: cell (k,j,i) occupies [i,i+1] x [j,j+1] x [-k-1,-k].
func flatGrid(nx, ny, nz int) *grid.Decoded {
	coord := make([][][]float64, ny+1)
	for j := 0; j <= ny; j++ {
		coord[j] = make([][]float64, nx+1)
		for i := 0; i <= nx; i++ {
			coord[j][i] = []float64{float64(i), float64(j), 0, float64(i), float64(j), float64(-nz)}
		}
	}
	zcorn := make([][][]float64, 2*nz)
	for k := 0; k < 2*nz; k++ {
		depth := -float64((k + 1) / 2)
		zcorn[k] = make([][]float64, 2*ny)
		for j := 0; j < 2*ny; j++ {
			zcorn[k][j] = make([]float64, 2*nx)
			for i := 0; i < 2*nx; i++ {
				zcorn[k][j][i] = depth
			}
		}
	}
	d, err := grid.Decode(&grid.Raw{Nx: nx, Ny: ny, Nz: nz, Coord: coord, Zcorn: zcorn})
	if err != nil {
		panic(err)
	}
	return d
}

func TestBuild_singleCell(t *testing.T) {
	d := flatGrid(1, 1, 1)
	m, _, err := Build(d, Options{Tolerance: DefaultTolerance})
	require.NoError(t, err)
	require.Equal(t, 8, m.NumNodes())
	require.Equal(t, 1, m.NumElems())
	require.Len(t, m.SideSets, 6)
	for _, ss := range m.SideSets {
		require.Len(t, ss.Elems, 1)
	}
}

func TestBuild_twoActiveCellsShareFace(t *testing.T) {
	d := flatGrid(2, 1, 1)
	m, _, err := Build(d, Options{Tolerance: DefaultTolerance})
	require.NoError(t, err)
	require.Equal(t, 12, m.NumNodes())
	require.Equal(t, 2, m.NumElems())

	shared := 0
	set0 := map[int]bool{}
	for _, n := range m.ElemNodes[0] {
		set0[n] = true
	}
	for _, n := range m.ElemNodes[1] {
		if set0[n] {
			shared++
		}
	}
	require.Equal(t, 4, shared)
}

func TestBuild_faultedSharedFace(t *testing.T) {
	d := flatGrid(2, 1, 1)
	// perturb the i=1 (shared) pillar's Z at the low-k corners of cell 0's
	// +i face so two of the four shared corners no longer match.
	d.CellZ[0][0][0][1] -= 1.0 // corner 1 (low-k, +i)
	d.CellZ[0][0][0][2] -= 1.0 // corner 2 (low-k, +i,+j)

	m, _, err := Build(d, Options{Tolerance: DefaultTolerance})
	require.NoError(t, err)
	require.Equal(t, 14, m.NumNodes())

	shared := 0
	set0 := map[int]bool{}
	for _, n := range m.ElemNodes[0] {
		set0[n] = true
	}
	for _, n := range m.ElemNodes[1] {
		if set0[n] {
			shared++
		}
	}
	require.Equal(t, 2, shared)
}

func TestBuild_inactiveCellBackfill(t *testing.T) {
	d := flatGrid(1, 1, 2)
	d.Active[0][0][0] = false // k=0 inactive, k=1 active

	m, cellOrder, err := Build(d, Options{Tolerance: DefaultTolerance})
	require.NoError(t, err)
	require.Equal(t, 8, m.NumNodes())
	require.Equal(t, 1, m.NumElems())
	require.Equal(t, CellRef{K: 1, J: 0, I: 0}, cellOrder[0])
}

func TestBuild_allInactive(t *testing.T) {
	d := flatGrid(1, 1, 1)
	d.Active[0][0][0] = false

	m, _, err := Build(d, Options{Tolerance: DefaultTolerance})
	require.NoError(t, err)
	require.Equal(t, 0, m.NumNodes())
	require.Equal(t, 0, m.NumElems())
}

func TestBuild_blockPartitioning(t *testing.T) {
	d := flatGrid(2, 2, 1)
	blocks := [][][]int{{
		{1, 2},
		{2, 1},
	}}
	m, cellOrder, err := Build(d, Options{Tolerance: DefaultTolerance, BlockTags: blocks})
	require.NoError(t, err)
	require.Equal(t, []int{1, 1, 2, 2}, m.BlockIDs)
	// block-1 elements (ids 1,2) are cells (0,0,0) and (0,1,1)
	require.Equal(t, CellRef{0, 0, 0}, cellOrder[0])
	require.Equal(t, CellRef{0, 1, 1}, cellOrder[1])
}

func TestBuild_flipZSwapsTopBottom(t *testing.T) {
	d := flatGrid(1, 1, 1)
	m, _, err := Build(d, Options{Tolerance: DefaultTolerance, FlipZ: true})
	require.NoError(t, err)

	var top, bottom SideSet
	for _, ss := range m.SideSets {
		if ss.Name == "top" {
			top = ss
		}
		if ss.Name == "bottom" {
			bottom = ss
		}
	}
	// the k=0 layer is renamed "top"; its exposed corners 0..3 sit at
	// positions 4..7 of the flipped connectivity row, which is face 6.
	require.Equal(t, 6, top.Faces[0])
	require.Equal(t, 5, bottom.Faces[0])
	for _, ns := range m.NodeSets {
		if ns.Name == "top" {
			require.Equal(t, []int{1, 2, 3, 4}, ns.Nodes)
		}
	}
}

func TestOrderedProps(t *testing.T) {
	var p OrderedProps
	p.Set("poro", []float64{0.1, 0.2})
	p.Set("permx", []float64{10, 20})
	require.Equal(t, []string{"poro", "permx"}, p.Names())
	v, ok := p.Get("poro")
	require.True(t, ok)
	require.Equal(t, []float64{0.1, 0.2}, v)

	p.Set("poro", []float64{0.3, 0.4})
	require.Equal(t, []string{"poro", "permx"}, p.Names())
	v, _ = p.Get("poro")
	require.Equal(t, []float64{0.3, 0.4}, v)
}
