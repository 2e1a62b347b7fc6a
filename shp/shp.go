// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements the HEX8 isoparametric shape functions and the
// Jacobian machinery used to flag degenerate or inverted hexahedra.
package shp

import "github.com/cpmech/gosl/la"

// constants
const MINDET = 1.0e-14 // minimum determinant allowed for dxdR

// ShpFunc is the shape functions callback function
type ShpFunc func(S []float64, dSdR [][]float64, r, s, t float64, derivs bool)

// Shape holds geometry data for the hex8 element
type Shape struct {

	// geometry
	Type       string      // name; always "hex8" here
	Func       ShpFunc     // shape/derivs function callback
	Gndim      int         // geometric dimension (3)
	Nverts     int         // number of vertices in cell (8)
	FaceNverts int         // number of vertices on face (4)
	FaceLocalV [][]int     // face local vertices [nfaces][FaceNverts], bottom/front/left/right/back/top
	NatCoords  [][]float64 // natural coordinates [gndim][nverts]

	// scratchpad: volume
	S    []float64   // [nverts] shape functions
	J    float64     // Jacobian: determinant of dxdR
	dSdR [][]float64 // [nverts][gndim] derivatives of S w.r.t natural coordinates
	dxdR [][]float64 // [gndim][gndim] derivatives of real coordinates w.r.t natural coordinates
	dRdx [][]float64 // [gndim][gndim] dRdx == inverse(dxdR)
}

// factory holds the registered shapes (only "hex8" in this build)
var factory = make(map[string]*Shape)

// Get returns an existent Shape structure
//
//	Note: returns nil on unknown geoType
func Get(geoType string) *Shape {
	s, ok := factory[geoType]
	if !ok {
		return nil
	}
	return s
}

// CalcAtR calculates S, dSdR, dxdR, dRdx and J at natural coordinate R
//
//	Input:
//	 x[gndim][nverts] -- coordinates matrix of the element
//	 R                -- local/natural coordinates {r,s,t}
//	Output:
//	 S, dSdR, dxdR, dRdx, and J (J<=0 flags an inverted or degenerate element)
func (o *Shape) CalcAtR(x [][]float64, R []float64, derivs bool) (err error) {

	r, s, t := R[0], R[1], R[2]

	o.Func(o.S, o.dSdR, r, s, t, derivs)
	if !derivs {
		return
	}

	// dxdR := sum_n x * dSdR   =>  dx_i/dR_j := sum_n x^n_i * dS^n/dR_j
	for i := 0; i < len(x); i++ {
		for j := 0; j < o.Gndim; j++ {
			o.dxdR[i][j] = 0.0
			for n := 0; n < o.Nverts; n++ {
				o.dxdR[i][j] += x[i][n] * o.dSdR[n][j]
			}
		}
	}

	// dRdx := inv(dxdR); J := det(dxdR)
	o.J, err = la.MatInv(o.dRdx, o.dxdR, MINDET)
	return
}

// init_scratchpad allocates the volume-data scratchpad
func (o *Shape) init_scratchpad() {
	o.S = make([]float64, o.Nverts)
	o.dSdR = la.MatAlloc(o.Nverts, o.Gndim)
	o.dxdR = la.MatAlloc(o.Gndim, o.Gndim)
	o.dRdx = la.MatAlloc(o.Gndim, o.Gndim)
}
