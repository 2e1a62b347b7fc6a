// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exodus

import (
	"fmt"

	ncdf "github.com/fhs/go-netcdf/netcdf"

	"github.com/cpmech/gosl/chk"
)

// PutSideSetNames writes the num_side_sets name registry.
func (w *Writer) PutSideSetNames(names []string) error {
	v, err := w.f.Var("ss_names")
	if err != nil {
		return chk.Err("exodus: ss_names: %v", err)
	}
	return writeNames(v, names, LenName)
}

// PutNodeSetNames writes the num_node_sets name registry.
func (w *Writer) PutNodeSetNames(names []string) error {
	v, err := w.f.Var("ns_names")
	if err != nil {
		return chk.Err("exodus: ns_names: %v", err)
	}
	return writeNames(v, names, LenName)
}

// PutSideSetParams allocates a free side-set slot for id, creating
// num_side_ssN, elem_ssN and side_ssN.
func (w *Writer) PutSideSetParams(id, numSetElems int) error {
	if _, exists := w.ssSlots[id]; exists {
		return chk.Err("exodus: put_side_set_params: side set id %d already used", id)
	}
	idx := firstZero(w.ssStatus)
	if idx < 0 {
		return chk.Err("exodus: put_side_set_params: no free side set slot")
	}
	w.ssStatus[idx] = 1
	w.ssProp1[idx] = int32(id)
	if err := w.varSsStatus.WriteInt32s(w.ssStatus); err != nil {
		return chk.Err("exodus: ss_status: %v", err)
	}
	if err := w.varSsProp1.WriteInt32s(w.ssProp1); err != nil {
		return chk.Err("exodus: ss_prop1: %v", err)
	}

	n := idx + 1
	dim, err := w.f.AddDim(fmt.Sprintf("num_side_ss%d", n), numSetElems)
	if err != nil {
		return chk.Err("exodus: num_side_ss%d: %v", n, err)
	}
	elemSS, err := w.addVar(fmt.Sprintf("elem_ss%d", n), ncdf.INT, []ncdf.Dim{dim})
	if err != nil {
		return err
	}
	sideSS, err := w.addVar(fmt.Sprintf("side_ss%d", n), ncdf.INT, []ncdf.Dim{dim})
	if err != nil {
		return err
	}
	w.ssSlots[id] = &setSlot{n: n, size: numSetElems, a: elemSS, b: sideSS}
	return nil
}

// PutNodeSetParams allocates a free node-set slot for id, creating
// num_nod_nsN and node_nsN.
func (w *Writer) PutNodeSetParams(id, numSetNodes int) error {
	if _, exists := w.nsSlots[id]; exists {
		return chk.Err("exodus: put_node_set_params: node set id %d already used", id)
	}
	idx := firstZero(w.nsStatus)
	if idx < 0 {
		return chk.Err("exodus: put_node_set_params: no free node set slot")
	}
	w.nsStatus[idx] = 1
	w.nsProp1[idx] = int32(id)
	if err := w.varNsStatus.WriteInt32s(w.nsStatus); err != nil {
		return chk.Err("exodus: ns_status: %v", err)
	}
	if err := w.varNsProp1.WriteInt32s(w.nsProp1); err != nil {
		return chk.Err("exodus: ns_prop1: %v", err)
	}

	n := idx + 1
	dim, err := w.f.AddDim(fmt.Sprintf("num_nod_ns%d", n), numSetNodes)
	if err != nil {
		return chk.Err("exodus: num_nod_ns%d: %v", n, err)
	}
	nodeNS, err := w.addVar(fmt.Sprintf("node_ns%d", n), ncdf.INT, []ncdf.Dim{dim})
	if err != nil {
		return err
	}
	w.nsSlots[id] = &setSlot{n: n, size: numSetNodes, a: nodeNS}
	return nil
}

// PutSideSet writes an already-registered side set's element/face arrays.
func (w *Writer) PutSideSet(id int, elems, sides []int32) error {
	slot, ok := w.ssSlots[id]
	if !ok {
		return chk.Err("exodus: put_side_set: unknown side set id %d", id)
	}
	if len(elems) != slot.size || len(sides) != slot.size {
		return chk.Err("exodus: put_side_set: side set %d expects %d entries, got elems=%d sides=%d", id, slot.size, len(elems), len(sides))
	}
	if err := slot.a.WriteInt32s(elems); err != nil {
		return chk.Err("exodus: elem_ss%d: %v", slot.n, err)
	}
	if err := slot.b.WriteInt32s(sides); err != nil {
		return chk.Err("exodus: side_ss%d: %v", slot.n, err)
	}
	return nil
}

// PutNodeSet writes an already-registered node set's node ID array.
func (w *Writer) PutNodeSet(id int, nodes []int32) error {
	slot, ok := w.nsSlots[id]
	if !ok {
		return chk.Err("exodus: put_node_set: unknown node set id %d", id)
	}
	if len(nodes) != slot.size {
		return chk.Err("exodus: put_node_set: node set %d expects %d entries, got %d", id, slot.size, len(nodes))
	}
	if err := slot.a.WriteInt32s(nodes); err != nil {
		return chk.Err("exodus: node_ns%d: %v", slot.n, err)
	}
	return nil
}
