// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exodus

import (
	"github.com/cpmech/gosl/chk"
)

// PutCoordNames writes the num_dim axis labels.
func (w *Writer) PutCoordNames(names []string) error {
	v, err := w.f.Var("coor_names")
	if err != nil {
		return chk.Err("exodus: coor_names: %v", err)
	}
	if err = writeNames(v, names, LenName); err != nil {
		return chk.Err("exodus: coor_names: %v", err)
	}
	return nil
}

// PutCoords writes the nodal coordinate vectors; fails if any length
// differs from num_nodes.
func (w *Writer) PutCoords(x, y, z []float64) error {
	n := w.dims.NumNodes
	if len(x) != n || len(y) != n || len(z) != n {
		return chk.Err("exodus: put_coords: expected length %d, got x=%d y=%d z=%d", n, len(x), len(y), len(z))
	}
	if err := w.varCoordX.WriteFloat64s(x); err != nil {
		return chk.Err("exodus: coordx: %v", err)
	}
	if err := w.varCoordY.WriteFloat64s(y); err != nil {
		return chk.Err("exodus: coordy: %v", err)
	}
	if err := w.varCoordZ.WriteFloat64s(z); err != nil {
		return chk.Err("exodus: coordz: %v", err)
	}
	return nil
}

// PutTime writes time_whole[step-1] = value.
func (w *Writer) PutTime(step int, value float64) error {
	if step < 1 {
		return chk.Err("exodus: put_time: step must be >= 1, got %d", step)
	}
	// this tool only ever emits a single time step, so the unlimited
	// dimension is always written in full rather than by partial index.
	if step != 1 {
		return chk.Err("exodus: put_time: only a single time step is supported, got step=%d", step)
	}
	if err := w.varTimeWhole.WriteFloat64s([]float64{value}); err != nil {
		return chk.Err("exodus: time_whole: %v", err)
	}
	return nil
}
