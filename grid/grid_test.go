// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// unitCoord builds a COORD array for an (nx,ny) grid of unit-spaced
// vertical pillars running from z=0 to z=-1.
func unitCoord(nx, ny int) [][][]float64 {
	coord := make([][][]float64, ny+1)
	for j := 0; j <= ny; j++ {
		coord[j] = make([][]float64, nx+1)
		for i := 0; i <= nx; i++ {
			coord[j][i] = []float64{float64(i), float64(j), 0, float64(i), float64(j), -1}
		}
	}
	return coord
}

// flatZcorn builds a ZCORN array for a single-layer (nx,ny,1) grid with
// every cell's top at z=0 and bottom at z=-1 (no faults).
func flatZcorn(nx, ny int) [][][]float64 {
	zc := make([][][]float64, 2)
	for k := 0; k < 2; k++ {
		zc[k] = make([][]float64, 2*ny)
		for j := 0; j < 2*ny; j++ {
			zc[k][j] = make([]float64, 2*nx)
			for i := 0; i < 2*nx; i++ {
				if k == 0 {
					zc[k][j][i] = 0
				} else {
					zc[k][j][i] = -1
				}
			}
		}
	}
	return zc
}

func TestDecode_singleCell(t *testing.T) {
	r := &Raw{
		Nx: 1, Ny: 1, Nz: 1,
		Coord: unitCoord(1, 1),
		Zcorn: flatZcorn(1, 1),
	}
	d, err := Decode(r)
	require.NoError(t, err)
	require.Equal(t, 1, d.Nx)
	require.True(t, d.Active[0][0][0])

	x, y, z := d.CellX[0][0][0], d.CellY[0][0][0], d.CellZ[0][0][0]
	require.Equal(t, [8]float64{0, 1, 1, 0, 0, 1, 1, 0}, x)
	require.Equal(t, [8]float64{0, 0, 1, 1, 0, 0, 1, 1}, y)
	require.Equal(t, [8]float64{0, 0, 0, 0, -1, -1, -1, -1}, z)
}

func TestDecode_flipZ(t *testing.T) {
	r := &Raw{
		Nx: 1, Ny: 1, Nz: 1,
		Coord: unitCoord(1, 1),
		Zcorn: flatZcorn(1, 1),
		FlipZ: true,
	}
	d, err := Decode(r)
	require.NoError(t, err)
	require.Equal(t, [8]float64{0, 0, 0, 0, 1, 1, 1, 1}, d.CellZ[0][0][0])
}

func TestDecode_rejectsBadShapes(t *testing.T) {
	r := &Raw{
		Nx: 2, Ny: 1, Nz: 1,
		Coord: unitCoord(1, 1), // wrong shape for nx=2
		Zcorn: flatZcorn(1, 1),
	}
	_, err := Decode(r)
	require.Error(t, err)
}

func TestDecode_mapaxesRotation90(t *testing.T) {
	// MAPAXES describing a 90-degree rotation: Y-axis point at (-1,0),
	// origin at (0,0), X-axis point at (0,1).
	r := &Raw{
		Nx: 1, Ny: 1, Nz: 1,
		Coord:         unitCoord(1, 1),
		Zcorn:         flatZcorn(1, 1),
		Mapaxes:       []float64{-1, 0, 0, 0, 0, 1},
		GridUnitScope: "GRID",
		UseMapaxes:    true,
	}
	d, err := Decode(r)
	require.NoError(t, err)
	// X axis = normalize((0,1)-(0,0)) = (0,1); Y axis = normalize((-1,0)-(0,0)) = (-1,0)
	// so each corner (x,y) becomes (y,-x).
	require.Equal(t, [8]float64{0, 0, 1, 1, 0, 0, 1, 1}, d.CellX[0][0][0])
	require.Equal(t, [8]float64{0, -1, -1, 0, 0, -1, -1, 0}, d.CellY[0][0][0])
}

func TestDecode_actnumInactive(t *testing.T) {
	r := &Raw{
		Nx: 1, Ny: 1, Nz: 1,
		Coord:  unitCoord(1, 1),
		Zcorn:  flatZcorn(1, 1),
		Actnum: [][][]int{{{0}}},
	}
	d, err := Decode(r)
	require.NoError(t, err)
	require.False(t, d.Active[0][0][0])
}
