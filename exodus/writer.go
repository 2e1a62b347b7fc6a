// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package exodus is a subset implementation of the Exodus II mesh file
// convention: element blocks, node sets, side sets, a single time step,
// and elemental/nodal/set-scoped variables, layered on the self-describing
// binary container provided by github.com/fhs/go-netcdf. The dimension and
// variable names, and the first-zero-slot allocation policy for
// eb_status/ss_status/ns_status, follow the Exodus II convention exactly;
// every contract violation (duplicate ID, unknown ID, bad dimensionality,
// size mismatch) is a Go error return rather than a panic.
package exodus

import (
	ncdf "github.com/fhs/go-netcdf/netcdf"

	"github.com/cpmech/gosl/chk"
)

// fixed-dimension and naming constants from the Exodus II convention
const (
	LenString = 32
	LenName   = 256
	Version   = 7.16
)

// Dims declares the counts that must be known when the file is created:
// netCDF-classic fixes dimension sizes at variable-creation time, so the
// Exodus element-block, side-set and node-set slots are sized up front.
type Dims struct {
	Title       string
	NumDim      int
	NumNodes    int
	NumElems    int
	NumElemBlk  int
	NumSideSets int // 0 omits side-set dims/vars entirely
	NumNodeSets int // 0 omits node-set dims/vars entirely
}

// blockSlot tracks the per-block dimensions/variables created by
// PutElemBlkInfo.
type blockSlot struct {
	n             int // 1-based slot number used in dimension/variable names
	numElems      int
	numNodesPerEl int
	connect       ncdf.Var
}

// setSlot tracks the per-set dimension/variables created by
// PutSideSetParams / PutNodeSetParams.
type setSlot struct {
	n    int // 1-based slot number
	size int
	a    ncdf.Var // elem_ssN (side sets) or node_nsN (node sets)
	b    ncdf.Var // side_ssN (side sets only)
}

// Writer is a single Exodus II output file. One Writer exclusively owns
// its underlying file handle, released by Close.
type Writer struct {
	f    ncdf.File
	dims Dims

	ebStatus []int32
	ebProp1  []int32
	ebSlots  map[int]*blockSlot // blk_id -> slot

	ssStatus []int32
	ssProp1  []int32
	ssSlots  map[int]*setSlot // side-set id -> slot

	nsStatus []int32
	nsProp1  []int32
	nsSlots  map[int]*setSlot // node-set id -> slot

	varEbStatus, varEbProp1 ncdf.Var
	varSsStatus, varSsProp1 ncdf.Var
	varNsStatus, varNsProp1 ncdf.Var
	varTimeWhole            ncdf.Var
	varCoordX               ncdf.Var
	varCoordY               ncdf.Var
	varCoordZ               ncdf.Var

	elemVarReg variableRegistry
	nodeVarReg variableRegistry
	ssVarReg   variableRegistry
	nsVarReg   variableRegistry

	elemVarValues map[string]map[int]ncdf.Var // var name -> blk id -> vals_elem_varVebN
	nodeVarValues map[string]ncdf.Var          // var name -> vals_nod_varV
	ssVarValues   map[string]map[int]ncdf.Var  // var name -> ss id -> vals_sset_varVssN
	nsVarValues   map[string]map[int]ncdf.Var  // var name -> ns id -> vals_nset_varVnsN
}

// Create opens path for writing and pre-creates all fixed dimensions and
// status/property variables sized to dims.
func Create(path string, dims Dims) (w *Writer, err error) {

	if dims.NumDim < 1 || dims.NumDim > 3 {
		return nil, chk.Err("exodus: num_dim must be in {1,2,3}, got %d", dims.NumDim)
	}

	f, err := ncdf.CreateFile(path, ncdf.CLOBBER)
	if err != nil {
		return nil, chk.Err("exodus: cannot create %q: %v", path, err)
	}

	w = &Writer{
		f:             f,
		dims:          dims,
		ebStatus:      make([]int32, dims.NumElemBlk),
		ebProp1:       make([]int32, dims.NumElemBlk),
		ebSlots:       make(map[int]*blockSlot),
		ssStatus:      make([]int32, dims.NumSideSets),
		ssProp1:       make([]int32, dims.NumSideSets),
		ssSlots:       make(map[int]*setSlot),
		nsStatus:      make([]int32, dims.NumNodeSets),
		nsProp1:       make([]int32, dims.NumNodeSets),
		nsSlots:       make(map[int]*setSlot),
		elemVarReg:    variableRegistry{countDimName: "num_elem_var", namesVarName: "name_elem_var"},
		nodeVarReg:    variableRegistry{countDimName: "num_nod_var", namesVarName: "name_nod_var"},
		ssVarReg:      variableRegistry{countDimName: "num_sset_var", namesVarName: "name_sset_var"},
		nsVarReg:      variableRegistry{countDimName: "num_nset_var", namesVarName: "name_nset_var"},
		elemVarValues: make(map[string]map[int]ncdf.Var),
		nodeVarValues: make(map[string]ncdf.Var),
		ssVarValues:   make(map[string]map[int]ncdf.Var),
		nsVarValues:   make(map[string]map[int]ncdf.Var),
	}

	if err = w.writeGlobalAttrs(); err != nil {
		return nil, err
	}
	if err = w.createFixedDims(); err != nil {
		return nil, err
	}
	if err = w.createCanonicalVars(); err != nil {
		return nil, err
	}
	return w, nil
}

// Close flushes and releases the underlying container.
func (w *Writer) Close() error {
	if err := w.f.Close(); err != nil {
		return chk.Err("exodus: close: %v", err)
	}
	return nil
}
