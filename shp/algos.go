// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import "github.com/cpmech/gosl/chk"

// cornerNatCoords are the natural coordinates of the 8 hex8 corners, in the
// same order as hex8.NatCoords
var cornerNatCoords = [8][3]float64{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

// CheckOrientation evaluates the Jacobian determinant of this shape at the
// element centroid and at every corner, given the element's real
// coordinates x[3][8]. A non-positive determinant at any of these points
// means the hexahedron is inverted or degenerate (e.g. a duplicated or
// collapsed corner), which the node-numbering pass upstream should never
// produce for a valid grid.
func (o *Shape) CheckOrientation(x [][]float64) (err error) {

	if err = o.CalcAtR(x, []float64{0, 0, 0}, true); err != nil {
		return chk.Err("centroid Jacobian: %v", err)
	}
	if o.J <= 0 {
		return chk.Err("inverted or degenerate element: Jacobian at centroid = %g", o.J)
	}

	for n, rst := range cornerNatCoords {
		if err = o.CalcAtR(x, rst[:], true); err != nil {
			return chk.Err("corner %d Jacobian: %v", n, err)
		}
		if o.J <= 0 {
			return chk.Err("inverted or degenerate element: Jacobian at corner %d = %g", n, o.J)
		}
	}
	return
}
