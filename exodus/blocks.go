// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exodus

import (
	"fmt"
	"strings"

	ncdf "github.com/fhs/go-netcdf/netcdf"

	"github.com/cpmech/gosl/chk"
)

// PutElemBlkNames writes the num_el_blk block-name registry.
func (w *Writer) PutElemBlkNames(names []string) error {
	v, err := w.f.Var("eb_names")
	if err != nil {
		return chk.Err("exodus: eb_names: %v", err)
	}
	return writeNames(v, names, LenName)
}

// firstZero returns the index of the first zero entry, or -1 if none.
func firstZero(status []int32) int {
	for i, v := range status {
		if v == 0 {
			return i
		}
	}
	return -1
}

// PutElemBlkInfo allocates a free block slot for blk_id, creates its
// per-block dimensions and connectivity variable. numElemAttrs must be 0:
// this tool never emits element attributes.
func (w *Writer) PutElemBlkInfo(blkID int, elemType string, numBlkElems, numElemNodes, numElemAttrs int) error {
	if numElemAttrs != 0 {
		return chk.Err("exodus: put_elem_blk_info: numElemAttrs must be 0, got %d", numElemAttrs)
	}
	if _, exists := w.ebSlots[blkID]; exists {
		return chk.Err("exodus: put_elem_blk_info: block id %d already used", blkID)
	}
	idx := firstZero(w.ebStatus)
	if idx < 0 {
		return chk.Err("exodus: put_elem_blk_info: no free element block slot (num_el_blk=%d)", len(w.ebStatus))
	}
	w.ebStatus[idx] = 1
	w.ebProp1[idx] = int32(blkID)
	if err := w.varEbStatus.WriteInt32s(w.ebStatus); err != nil {
		return chk.Err("exodus: eb_status: %v", err)
	}
	if err := w.varEbProp1.WriteInt32s(w.ebProp1); err != nil {
		return chk.Err("exodus: eb_prop1: %v", err)
	}

	n := idx + 1
	dimElems, err := w.f.AddDim(fmt.Sprintf("num_el_in_blk%d", n), numBlkElems)
	if err != nil {
		return chk.Err("exodus: num_el_in_blk%d: %v", n, err)
	}
	dimNodesPerEl, err := w.f.AddDim(fmt.Sprintf("num_nod_per_el%d", n), numElemNodes)
	if err != nil {
		return chk.Err("exodus: num_nod_per_el%d: %v", n, err)
	}
	connect, err := w.addVar(fmt.Sprintf("connect%d", n), ncdf.INT, []ncdf.Dim{dimElems, dimNodesPerEl})
	if err != nil {
		return err
	}
	if err = connect.Attr("elem_type").WriteChars(strings.ToUpper(elemType)); err != nil {
		return chk.Err("exodus: connect%d elem_type attr: %v", n, err)
	}

	w.ebSlots[blkID] = &blockSlot{n: n, numElems: numBlkElems, numNodesPerEl: numElemNodes, connect: connect}
	return nil
}

// PutElemConnectivity writes the flat connectivity (row-major, 1-based
// node IDs) for an already-registered block.
func (w *Writer) PutElemConnectivity(blkID int, connectivity []int32) error {
	slot, ok := w.ebSlots[blkID]
	if !ok {
		return chk.Err("exodus: put_elem_connectivity: unknown block id %d", blkID)
	}
	want := slot.numElems * slot.numNodesPerEl
	if len(connectivity) != want {
		return chk.Err("exodus: put_elem_connectivity: block %d expects %d entries, got %d", blkID, want, len(connectivity))
	}
	if err := slot.connect.WriteInt32s(connectivity); err != nil {
		return chk.Err("exodus: connect%d: %v", slot.n, err)
	}
	return nil
}
