// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exodus

import (
	ncdf "github.com/fhs/go-netcdf/netcdf"

	"github.com/cpmech/gosl/chk"
)

func (w *Writer) writeGlobalAttrs() error {
	attrs := []struct {
		name string
		val  interface{}
	}{
		{"title", w.dims.Title},
		{"version", float32(Version)},
		{"api_version", float32(Version)},
		{"floating_point_word_size", int32(8)},
		{"maximum_name_length", int32(LenName)},
		{"file_size", int32(1)},
		{"int64_status", int32(0)},
	}
	for _, a := range attrs {
		if err := writeGlobalAttr(w.f, a.name, a.val); err != nil {
			return chk.Err("exodus: global attr %q: %v", a.name, err)
		}
	}
	return nil
}

func writeGlobalAttr(f ncdf.File, name string, val interface{}) error {
	switch v := val.(type) {
	case string:
		return f.Attr(name).WriteChars(v)
	case float32:
		return f.Attr(name).WriteFloat32s([]float32{v})
	case int32:
		return f.Attr(name).WriteInt32s([]int32{v})
	}
	return chk.Err("exodus: unsupported attribute type for %q", name)
}

func (w *Writer) createFixedDims() (err error) {
	d := w.dims
	add := func(name string, length int) (dim ncdf.Dim, err error) {
		dim, err = w.f.AddDim(name, length)
		if err != nil {
			err = chk.Err("exodus: dim %q: %v", name, err)
		}
		return
	}
	if _, err = add("len_string", LenString); err != nil {
		return
	}
	if _, err = add("len_name", LenName); err != nil {
		return
	}
	if _, err = add("num_dim", d.NumDim); err != nil {
		return
	}
	if _, err = add("num_nodes", d.NumNodes); err != nil {
		return
	}
	if _, err = add("num_elem", d.NumElems); err != nil {
		return
	}
	if _, err = add("num_el_blk", d.NumElemBlk); err != nil {
		return
	}
	if d.NumSideSets > 0 {
		if _, err = add("num_side_sets", d.NumSideSets); err != nil {
			return
		}
	}
	if d.NumNodeSets > 0 {
		if _, err = add("num_node_sets", d.NumNodeSets); err != nil {
			return
		}
	}
	if _, err = w.f.AddDim("time_step", ncdf.UNLIMITED); err != nil {
		return chk.Err("exodus: dim \"time_step\": %v", err)
	}
	return nil
}

func (w *Writer) dim(name string) (ncdf.Dim, error) {
	dim, err := w.f.Dim(name)
	if err != nil {
		return ncdf.Dim{}, chk.Err("exodus: dim %q not found: %v", name, err)
	}
	return dim, nil
}

func (w *Writer) addVar(name string, t ncdf.Type, dims []ncdf.Dim) (ncdf.Var, error) {
	v, err := w.f.AddVar(name, t, dims)
	if err != nil {
		return ncdf.Var{}, chk.Err("exodus: var %q: %v", name, err)
	}
	return v, nil
}

func (w *Writer) createCanonicalVars() (err error) {
	lenName, err := w.dim("len_name")
	if err != nil {
		return
	}
	numDim, err := w.dim("num_dim")
	if err != nil {
		return
	}
	numNodes, err := w.dim("num_nodes")
	if err != nil {
		return
	}
	numElBlk, err := w.dim("num_el_blk")
	if err != nil {
		return
	}
	timeStep, err := w.dim("time_step")
	if err != nil {
		return
	}

	if w.varTimeWhole, err = w.addVar("time_whole", ncdf.DOUBLE, []ncdf.Dim{timeStep}); err != nil {
		return
	}
	if _, err = w.addVar("coor_names", ncdf.CHAR, []ncdf.Dim{numDim, lenName}); err != nil {
		return
	}
	if w.varCoordX, err = w.addVar("coordx", ncdf.DOUBLE, []ncdf.Dim{numNodes}); err != nil {
		return
	}
	if w.varCoordY, err = w.addVar("coordy", ncdf.DOUBLE, []ncdf.Dim{numNodes}); err != nil {
		return
	}
	if w.varCoordZ, err = w.addVar("coordz", ncdf.DOUBLE, []ncdf.Dim{numNodes}); err != nil {
		return
	}

	if w.varEbStatus, err = w.addVar("eb_status", ncdf.INT, []ncdf.Dim{numElBlk}); err != nil {
		return
	}
	if w.varEbProp1, err = w.addVar("eb_prop1", ncdf.INT, []ncdf.Dim{numElBlk}); err != nil {
		return
	}
	if err = w.varEbProp1.Attr("name").WriteChars("ID"); err != nil {
		return chk.Err("exodus: eb_prop1 name attr: %v", err)
	}
	if _, err = w.addVar("eb_names", ncdf.CHAR, []ncdf.Dim{numElBlk, lenName}); err != nil {
		return
	}
	if err = w.varEbStatus.WriteInt32s(w.ebStatus); err != nil {
		return chk.Err("exodus: init eb_status: %v", err)
	}
	if err = w.varEbProp1.WriteInt32s(w.ebProp1); err != nil {
		return chk.Err("exodus: init eb_prop1: %v", err)
	}

	if w.dims.NumSideSets > 0 {
		numSS, e := w.dim("num_side_sets")
		if e != nil {
			return e
		}
		if w.varSsStatus, err = w.addVar("ss_status", ncdf.INT, []ncdf.Dim{numSS}); err != nil {
			return
		}
		if w.varSsProp1, err = w.addVar("ss_prop1", ncdf.INT, []ncdf.Dim{numSS}); err != nil {
			return
		}
		if err = w.varSsProp1.Attr("name").WriteChars("ID"); err != nil {
			return chk.Err("exodus: ss_prop1 name attr: %v", err)
		}
		if _, err = w.addVar("ss_names", ncdf.CHAR, []ncdf.Dim{numSS, lenName}); err != nil {
			return
		}
		if err = w.varSsStatus.WriteInt32s(w.ssStatus); err != nil {
			return chk.Err("exodus: init ss_status: %v", err)
		}
		if err = w.varSsProp1.WriteInt32s(w.ssProp1); err != nil {
			return chk.Err("exodus: init ss_prop1: %v", err)
		}
	}

	if w.dims.NumNodeSets > 0 {
		numNS, e := w.dim("num_node_sets")
		if e != nil {
			return e
		}
		if w.varNsStatus, err = w.addVar("ns_status", ncdf.INT, []ncdf.Dim{numNS}); err != nil {
			return
		}
		if w.varNsProp1, err = w.addVar("ns_prop1", ncdf.INT, []ncdf.Dim{numNS}); err != nil {
			return
		}
		if err = w.varNsProp1.Attr("name").WriteChars("ID"); err != nil {
			return chk.Err("exodus: ns_prop1 name attr: %v", err)
		}
		if _, err = w.addVar("ns_names", ncdf.CHAR, []ncdf.Dim{numNS, lenName}); err != nil {
			return
		}
		if err = w.varNsStatus.WriteInt32s(w.nsStatus); err != nil {
			return chk.Err("exodus: init ns_status: %v", err)
		}
		if err = w.varNsProp1.WriteInt32s(w.nsProp1); err != nil {
			return chk.Err("exodus: init ns_prop1: %v", err)
		}
	}

	return nil
}
