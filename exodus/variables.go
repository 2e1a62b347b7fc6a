// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exodus

import (
	"fmt"

	ncdf "github.com/fhs/go-netcdf/netcdf"

	"github.com/cpmech/gosl/chk"
)

// variableRegistry is the shared shape of the four *_variable_number /
// *_variable_name / *_variable_values triples: a count dimension, a name
// array, and lazily-created value arrays keyed by the first write. Each
// Writer owns its own four instances; this must never be a package-level
// var, since a process can create more than one Writer (tests, repeated
// conversions).
type variableRegistry struct {
	countDimName string
	namesVarName string
	names        []string
}

func (w *Writer) registerVariableNumber(reg *variableRegistry, n int) error {
	if _, err := w.f.AddDim(reg.countDimName, n); err != nil {
		return chk.Err("exodus: %s: %v", reg.countDimName, err)
	}
	lenName, err := w.dim("len_name")
	if err != nil {
		return err
	}
	countDim, err := w.dim(reg.countDimName)
	if err != nil {
		return err
	}
	if _, err = w.addVar(reg.namesVarName, ncdf.CHAR, []ncdf.Dim{countDim, lenName}); err != nil {
		return err
	}
	reg.names = make([]string, n)
	return nil
}

func (w *Writer) putVariableName(reg *variableRegistry, name string, index int) error {
	if index < 1 || index > len(reg.names) {
		return chk.Err("exodus: %s: index %d out of range 1..%d", reg.namesVarName, index, len(reg.names))
	}
	reg.names[index-1] = name
	v, err := w.f.Var(reg.namesVarName)
	if err != nil {
		return chk.Err("exodus: %s: %v", reg.namesVarName, err)
	}
	return writeNames(v, reg.names, LenName)
}

// --- element variables ---

func (w *Writer) SetElementVariableNumber(n int) error {
	return w.registerVariableNumber(&w.elemVarReg, n)
}
func (w *Writer) PutElementVariableName(name string, index int) error {
	return w.putVariableName(&w.elemVarReg, name, index)
}
func (w *Writer) GetElementVariableName(index int) (string, error) {
	names := w.elemVarReg.names
	if index < 1 || index > len(names) {
		return "", chk.Err("exodus: element variable index %d out of range", index)
	}
	return names[index-1], nil
}

// PutElementVariableValues writes a single time step's values for a
// registered element variable, scoped to one block; the backing
// vals_elem_varVebN variable is created on first write.
func (w *Writer) PutElementVariableValues(blkID int, name string, step int, values []float64) error {
	slot, ok := w.ebSlots[blkID]
	if !ok {
		return chk.Err("exodus: put_element_variable_values: unknown block id %d", blkID)
	}
	idx := indexOf(w.elemVarReg.names, name)
	if idx < 0 {
		return chk.Err("exodus: put_element_variable_values: unregistered variable %q", name)
	}
	if len(values) != slot.numElems {
		return chk.Err("exodus: put_element_variable_values: %q on block %d expects %d values, got %d", name, blkID, slot.numElems, len(values))
	}
	if step != 1 {
		return chk.Err("exodus: put_element_variable_values: only a single time step is supported, got step=%d", step)
	}
	if w.elemVarValues[name] == nil {
		w.elemVarValues[name] = make(map[int]ncdf.Var)
	}
	varName := fmt.Sprintf("vals_elem_var%deb%d", idx+1, slot.n)
	v, ok := w.elemVarValues[name][blkID]
	if !ok {
		timeStep, err := w.dim("time_step")
		if err != nil {
			return err
		}
		elCount, err := w.dim(fmt.Sprintf("num_el_in_blk%d", slot.n))
		if err != nil {
			return err
		}
		if v, err = w.addVar(varName, ncdf.DOUBLE, []ncdf.Dim{timeStep, elCount}); err != nil {
			return err
		}
		w.elemVarValues[name][blkID] = v
	}
	if err := v.WriteFloat64s(values); err != nil {
		return chk.Err("exodus: %s: %v", varName, err)
	}
	return nil
}

// --- nodal variables ---

func (w *Writer) SetNodeVariableNumber(n int) error {
	return w.registerVariableNumber(&w.nodeVarReg, n)
}
func (w *Writer) PutNodeVariableName(name string, index int) error {
	return w.putVariableName(&w.nodeVarReg, name, index)
}
func (w *Writer) GetNodeVariableName(index int) (string, error) {
	names := w.nodeVarReg.names
	if index < 1 || index > len(names) {
		return "", chk.Err("exodus: node variable index %d out of range", index)
	}
	return names[index-1], nil
}

func (w *Writer) PutNodeVariableValues(name string, step int, values []float64) error {
	idx := indexOf(w.nodeVarReg.names, name)
	if idx < 0 {
		return chk.Err("exodus: put_node_variable_values: unregistered variable %q", name)
	}
	if len(values) != w.dims.NumNodes {
		return chk.Err("exodus: put_node_variable_values: %q expects %d values, got %d", name, w.dims.NumNodes, len(values))
	}
	if step != 1 {
		return chk.Err("exodus: put_node_variable_values: only a single time step is supported, got step=%d", step)
	}
	varName := fmt.Sprintf("vals_nod_var%d", idx+1)
	v, ok := w.nodeVarValues[name]
	if !ok {
		timeStep, err := w.dim("time_step")
		if err != nil {
			return err
		}
		numNodes, err := w.dim("num_nodes")
		if err != nil {
			return err
		}
		if v, err = w.addVar(varName, ncdf.DOUBLE, []ncdf.Dim{timeStep, numNodes}); err != nil {
			return err
		}
		w.nodeVarValues[name] = v
	}
	if err := v.WriteFloat64s(values); err != nil {
		return chk.Err("exodus: %s: %v", varName, err)
	}
	return nil
}

// --- side-set variables ---

func (w *Writer) SetSideSetVariableNumber(n int) error {
	return w.registerVariableNumber(&w.ssVarReg, n)
}
func (w *Writer) PutSideSetVariableName(name string, index int) error {
	return w.putVariableName(&w.ssVarReg, name, index)
}

func (w *Writer) PutSideSetVariableValues(id int, name string, step int, values []float64) error {
	slot, ok := w.ssSlots[id]
	if !ok {
		return chk.Err("exodus: put_side_set_variable_values: unknown side set id %d", id)
	}
	idx := indexOf(w.ssVarReg.names, name)
	if idx < 0 {
		return chk.Err("exodus: put_side_set_variable_values: unregistered variable %q", name)
	}
	if len(values) != slot.size {
		return chk.Err("exodus: put_side_set_variable_values: %q on side set %d expects %d values, got %d", name, id, slot.size, len(values))
	}
	if step != 1 {
		return chk.Err("exodus: put_side_set_variable_values: only a single time step is supported, got step=%d", step)
	}
	if w.ssVarValues[name] == nil {
		w.ssVarValues[name] = make(map[int]ncdf.Var)
	}
	varName := fmt.Sprintf("vals_sset_var%dss%d", idx+1, slot.n)
	v, ok := w.ssVarValues[name][id]
	if !ok {
		timeStep, err := w.dim("time_step")
		if err != nil {
			return err
		}
		ssCount, err := w.dim(fmt.Sprintf("num_side_ss%d", slot.n))
		if err != nil {
			return err
		}
		if v, err = w.addVar(varName, ncdf.DOUBLE, []ncdf.Dim{timeStep, ssCount}); err != nil {
			return err
		}
		w.ssVarValues[name][id] = v
	}
	if err := v.WriteFloat64s(values); err != nil {
		return chk.Err("exodus: %s: %v", varName, err)
	}
	return nil
}

// --- node-set variables ---

func (w *Writer) SetNodeSetVariableNumber(n int) error {
	return w.registerVariableNumber(&w.nsVarReg, n)
}
func (w *Writer) PutNodeSetVariableName(name string, index int) error {
	return w.putVariableName(&w.nsVarReg, name, index)
}

func (w *Writer) PutNodeSetVariableValues(id int, name string, step int, values []float64) error {
	slot, ok := w.nsSlots[id]
	if !ok {
		return chk.Err("exodus: put_node_set_variable_values: unknown node set id %d", id)
	}
	idx := indexOf(w.nsVarReg.names, name)
	if idx < 0 {
		return chk.Err("exodus: put_node_set_variable_values: unregistered variable %q", name)
	}
	if len(values) != slot.size {
		return chk.Err("exodus: put_node_set_variable_values: %q on node set %d expects %d values, got %d", name, id, slot.size, len(values))
	}
	if step != 1 {
		return chk.Err("exodus: put_node_set_variable_values: only a single time step is supported, got step=%d", step)
	}
	if w.nsVarValues[name] == nil {
		w.nsVarValues[name] = make(map[int]ncdf.Var)
	}
	varName := fmt.Sprintf("vals_nset_var%dns%d", idx+1, slot.n)
	v, ok := w.nsVarValues[name][id]
	if !ok {
		timeStep, err := w.dim("time_step")
		if err != nil {
			return err
		}
		nsCount, err := w.dim(fmt.Sprintf("num_nod_ns%d", slot.n))
		if err != nil {
			return err
		}
		if v, err = w.addVar(varName, ncdf.DOUBLE, []ncdf.Dim{timeStep, nsCount}); err != nil {
			return err
		}
		w.nsVarValues[name][id] = v
	}
	if err := v.WriteFloat64s(values); err != nil {
		return chk.Err("exodus: %s: %v", varName, err)
	}
	return nil
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
