// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grid decodes a corner-point (pillar) reservoir grid — SPECGRID,
// COORD, ZCORN, optional MAPAXES/GRIDUNIT — into per-cell 8-corner
// coordinate arrays ready for node deduplication.
package grid

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Raw holds the pillar-grid arrays as decoded from an ECLIPSE-style source,
// before pillar expansion.
type Raw struct {
	Nx, Ny, Nz int // SPECGRID

	// Coord holds (ny+1)*(nx+1) pillars, 6 floats each: x1,y1,z1,x2,y2,z2.
	// Indexed Coord[j][i][0..5] with j in 0..ny, i in 0..nx.
	Coord [][][]float64

	// Zcorn is laid out (2nz, 2ny, 2nx), one depth per cell-corner.
	Zcorn [][][]float64

	// Actnum is (nz, ny, nx); nil means all cells active.
	Actnum [][][]int

	// Mapaxes holds the six MAPAXES floats; nil if absent.
	Mapaxes []float64

	// GridUnitScope is the second GRIDUNIT token ("GRID" or "MAP"),
	// defaulting to "GRID" when GRIDUNIT was not present at all.
	GridUnitScope string

	FlipZ      bool // negate ZCORN and swap bottom/top on output
	UseMapaxes bool // apply the MAPAXES transform if present and in scope
}

// Decoded holds the expanded per-cell corner coordinate arrays, shape
// (nz, ny, nx) of 8 (x,y,z) triples each, in the right-hand-rule corner
// order: 0..3 at low-k (ccw from +k), 4..7 at high-k matching order.
type Decoded struct {
	Nx, Ny, Nz int
	CellX      [][][][8]float64 // [k][j][i][corner]
	CellY      [][][][8]float64
	CellZ      [][][][8]float64
	Active     [][][]bool // [k][j][i]
}

// Decode validates the raw arrays and produces per-cell corner coordinates.
func Decode(r *Raw) (d *Decoded, err error) {

	nx, ny, nz := r.Nx, r.Ny, r.Nz
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, chk.Err("grid: SPECGRID dimensions must be positive, got (%d,%d,%d)", nx, ny, nz)
	}
	if len(r.Coord) != ny+1 {
		return nil, chk.Err("grid: COORD must have %d pillar rows, got %d", ny+1, len(r.Coord))
	}
	for j, row := range r.Coord {
		if len(row) != nx+1 {
			return nil, chk.Err("grid: COORD row %d must have %d pillars, got %d", j, nx+1, len(row))
		}
		for i, p := range row {
			if len(p) != 6 {
				return nil, chk.Err("grid: COORD pillar (%d,%d) must have 6 floats, got %d", j, i, len(p))
			}
		}
	}
	if len(r.Zcorn) != 2*nz {
		return nil, chk.Err("grid: ZCORN must have %d k-layers, got %d", 2*nz, len(r.Zcorn))
	}
	for k, layer := range r.Zcorn {
		if len(layer) != 2*ny {
			return nil, chk.Err("grid: ZCORN layer %d must have %d j-rows, got %d", k, 2*ny, len(layer))
		}
		for j, row := range layer {
			if len(row) != 2*nx {
				return nil, chk.Err("grid: ZCORN layer %d row %d must have %d entries, got %d", k, j, 2*nx, len(row))
			}
		}
	}
	if r.Actnum != nil {
		if len(r.Actnum) != nz {
			return nil, chk.Err("grid: ACTNUM must have %d k-layers, got %d", nz, len(r.Actnum))
		}
		for k, layer := range r.Actnum {
			if len(layer) != ny {
				return nil, chk.Err("grid: ACTNUM layer %d must have %d rows, got %d", k, ny, len(layer))
			}
			for j, row := range layer {
				if len(row) != nx {
					return nil, chk.Err("grid: ACTNUM layer %d row %d must have %d entries, got %d", k, j, nx, len(row))
				}
			}
		}
	}

	// pillar expansion: per-corner (x,y) grids of shape (2ny, 2nx), repeated
	// across all 2nz depth layers. Internal pillars are seen twice (by the
	// two cells straddling them); border pillars are not duplicated.
	px, py := expandPillars(r.Coord, r.Zcorn, nx, ny, nz)

	// MAPAXES transform, applied only when requested and in "GRID" scope.
	scope := r.GridUnitScope
	if scope == "" {
		scope = "GRID"
	}
	if r.UseMapaxes && len(r.Mapaxes) == 6 && scope == "GRID" {
		applyMapaxes(px, py, r.Mapaxes)
	}

	zc := r.Zcorn
	if r.FlipZ {
		zc = negateZ(zc)
	}

	d = &Decoded{Nx: nx, Ny: ny, Nz: nz}
	d.CellX = make([][][][8]float64, nz)
	d.CellY = make([][][][8]float64, nz)
	d.CellZ = make([][][][8]float64, nz)
	d.Active = make([][][]bool, nz)
	for k := 0; k < nz; k++ {
		d.CellX[k] = make([][][8]float64, ny)
		d.CellY[k] = make([][][8]float64, ny)
		d.CellZ[k] = make([][][8]float64, ny)
		d.Active[k] = make([][]bool, ny)
		for j := 0; j < ny; j++ {
			d.CellX[k][j] = make([][8]float64, nx)
			d.CellY[k][j] = make([][8]float64, nx)
			d.CellZ[k][j] = make([][8]float64, nx)
			d.Active[k][j] = make([]bool, nx)
			for i := 0; i < nx; i++ {
				active := true
				if r.Actnum != nil {
					active = r.Actnum[k][j][i] != 0
				}
				d.Active[k][j][i] = active
				x, y, z := cellCorners(px, py, zc, k, j, i)
				d.CellX[k][j][i] = x
				d.CellY[k][j][i] = y
				d.CellZ[k][j][i] = z
			}
		}
	}
	return d, nil
}

// expandPillars doubles the (ny+1,nx+1) pillar grid into per-corner (x,y)
// arrays of shape (2ny, 2nx), then tiles them across 2nz depth layers:
// each internal pillar is duplicated so both cells straddling it see the
// same (x,y) at their shared corner, while border pillars are not.
func expandPillars(coord [][][]float64, zcorn [][][]float64, nx, ny, nz int) (px, py [][][]float64) {

	// doubled pillar grid, shape (2(ny+1), 2(nx+1)): each pillar appears
	// twice, once for each cell corner it touches.
	dj := 2 * (ny + 1)
	di := 2 * (nx + 1)
	full := make([][][2]float64, dj)
	for jj := 0; jj < dj; jj++ {
		full[jj] = make([][2]float64, di)
		j := jj / 2
		for ii := 0; ii < di; ii++ {
			i := ii / 2
			p := coord[j][i]
			full[jj][ii] = [2]float64{p[0], p[1]} // top endpoint (x1,y1); z handled via ZCORN
		}
	}

	// strip the outer slice on both ends of each axis -> (2ny, 2nx)
	trimmed := make([][][2]float64, 2*ny)
	for jj := 0; jj < 2*ny; jj++ {
		trimmed[jj] = full[jj+1][1 : 1+2*nx]
	}

	px = make([][][]float64, 2*nz)
	py = make([][][]float64, 2*nz)
	for k := 0; k < 2*nz; k++ {
		px[k] = make([][]float64, 2*ny)
		py[k] = make([][]float64, 2*ny)
		for j := 0; j < 2*ny; j++ {
			px[k][j] = make([]float64, 2*nx)
			py[k][j] = make([]float64, 2*nx)
			for i := 0; i < 2*nx; i++ {
				px[k][j][i] = trimmed[j][i][0]
				py[k][j][i] = trimmed[j][i][1]
			}
		}
	}
	return
}

// negateZ returns a new ZCORN array with every depth negated.
func negateZ(zcorn [][][]float64) [][][]float64 {
	out := make([][][]float64, len(zcorn))
	for k, layer := range zcorn {
		out[k] = make([][]float64, len(layer))
		for j, row := range layer {
			out[k][j] = make([]float64, len(row))
			for i, v := range row {
				out[k][j][i] = -v
			}
		}
	}
	return out
}

// applyMapaxes rewrites px/py in place using the MAPAXES affine frame:
// origin O = (mapaxes[2],mapaxes[3]); X axis =
// normalize((mapaxes[4],mapaxes[5])-O); Y axis =
// normalize((mapaxes[0],mapaxes[1])-O); each pillar coordinate becomes
// (X . (p-O), Y . (p-O)).
func applyMapaxes(px, py [][][]float64, mapaxes []float64) {
	ox, oy := mapaxes[2], mapaxes[3]
	xAxis := normalize2(mapaxes[4]-ox, mapaxes[5]-oy)
	yAxis := normalize2(mapaxes[0]-ox, mapaxes[1]-oy)
	for k := range px {
		for j := range px[k] {
			for i := range px[k][j] {
				dx := px[k][j][i] - ox
				dy := py[k][j][i] - oy
				newX := xAxis[0]*dx + xAxis[1]*dy
				newY := yAxis[0]*dx + yAxis[1]*dy
				px[k][j][i] = newX
				py[k][j][i] = newY
			}
		}
	}
}

// normalize2 returns the unit vector of (x,y); the zero vector if
// magnitude is zero.
func normalize2(x, y float64) [2]float64 {
	mag := math.Sqrt(x*x + y*y)
	if mag == 0 {
		return [2]float64{0, 0}
	}
	return [2]float64{x / mag, y / mag}
}

// cellCorners projects the doubled per-corner arrays into the 8-tuple for
// cell (k,j,i) in the right-hand-rule order: 0..3 at low-k ccw from +k,
// then 4..7 at high-k matching order. Equivalent to elemCornerCoords.
func cellCorners(px, py, zcorn [][][]float64, k, j, i int) (x, y, z [8]float64) {
	// local (dk,dj,di) offsets into the doubled lattice for corners 0..7
	offs := [8][3]int{
		{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0},
		{1, 0, 0}, {1, 0, 1}, {1, 1, 1}, {1, 1, 0},
	}
	for c, o := range offs {
		kk := 2*k + o[0]
		jj := 2*j + o[1]
		ii := 2*i + o[2]
		x[c] = px[kk][jj][ii]
		y[c] = py[kk][jj][ii]
		z[c] = zcorn[kk][jj][ii]
	}
	return
}
