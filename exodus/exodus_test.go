// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exodus

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func tmpPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "mesh.e")
}

func TestCreateCloseRoundTrip(t *testing.T) {
	w, err := Create(tmpPath(t), Dims{
		Title: "unit cube", NumDim: 3, NumNodes: 8, NumElems: 1, NumElemBlk: 1,
	})
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func TestPutCoordsRejectsLengthMismatch(t *testing.T) {
	w, err := Create(tmpPath(t), Dims{Title: "t", NumDim: 3, NumNodes: 8, NumElems: 1, NumElemBlk: 1})
	require.NoError(t, err)
	defer w.Close()

	err = w.PutCoords(make([]float64, 8), make([]float64, 8), make([]float64, 7))
	require.Error(t, err)
}

func TestElemBlockSlotAllocationAndConnectivity(t *testing.T) {
	w, err := Create(tmpPath(t), Dims{Title: "t", NumDim: 3, NumNodes: 8, NumElems: 2, NumElemBlk: 2})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.PutElemBlkInfo(10, "hex8", 1, 8, 0))
	require.NoError(t, w.PutElemBlkInfo(20, "hex8", 1, 8, 0))

	// duplicate block id rejected
	err = w.PutElemBlkInfo(10, "hex8", 1, 8, 0)
	require.Error(t, err)

	// no free slots left
	err = w.PutElemBlkInfo(30, "hex8", 1, 8, 0)
	require.Error(t, err)

	conn := make([]int32, 8)
	for i := range conn {
		conn[i] = int32(i + 1)
	}
	require.NoError(t, w.PutElemConnectivity(10, conn))

	// wrong length rejected
	err = w.PutElemConnectivity(20, conn[:7])
	require.Error(t, err)

	// unknown block rejected
	err = w.PutElemConnectivity(99, conn)
	require.Error(t, err)

	// element attributes unsupported
	err = w.PutElemBlkInfo(40, "hex8", 1, 8, 1)
	require.Error(t, err)
}

func TestSideSetAndNodeSetSlotAllocation(t *testing.T) {
	w, err := Create(tmpPath(t), Dims{
		Title: "t", NumDim: 3, NumNodes: 8, NumElems: 1, NumElemBlk: 1,
		NumSideSets: 1, NumNodeSets: 1,
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.PutSideSetParams(100, 1))
	err = w.PutSideSetParams(200, 1)
	require.Error(t, err) // no free slots

	require.NoError(t, w.PutSideSet(100, []int32{1}, []int32{5}))
	err = w.PutSideSet(100, []int32{1, 2}, []int32{5, 6})
	require.Error(t, err) // wrong size

	require.NoError(t, w.PutNodeSetParams(300, 4))
	require.NoError(t, w.PutNodeSet(300, []int32{1, 2, 3, 4}))

	err = w.PutNodeSet(999, []int32{1})
	require.Error(t, err)
}

func TestElementVariableRegistrationAndValues(t *testing.T) {
	w, err := Create(tmpPath(t), Dims{Title: "t", NumDim: 3, NumNodes: 8, NumElems: 2, NumElemBlk: 2})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.PutElemBlkInfo(1, "hex8", 1, 8, 0))
	require.NoError(t, w.PutElemBlkInfo(2, "hex8", 1, 8, 0))

	require.NoError(t, w.SetElementVariableNumber(2))
	require.NoError(t, w.PutElementVariableName("poro", 1))
	require.NoError(t, w.PutElementVariableName("permx", 2))

	name, err := w.GetElementVariableName(1)
	require.NoError(t, err)
	require.Equal(t, "poro", name)

	require.NoError(t, w.PutElementVariableValues(1, "poro", 1, []float64{0.2}))
	require.NoError(t, w.PutElementVariableValues(2, "poro", 1, []float64{0.3}))

	// unregistered variable
	err = w.PutElementVariableValues(1, "bogus", 1, []float64{0.2})
	require.Error(t, err)

	// wrong length for block
	err = w.PutElementVariableValues(1, "poro", 1, []float64{0.2, 0.3})
	require.Error(t, err)

	// only step 1 is supported
	err = w.PutElementVariableValues(1, "poro", 2, []float64{0.2})
	require.Error(t, err)
}

func TestNodeSetSideSetVariableValues(t *testing.T) {
	w, err := Create(tmpPath(t), Dims{
		Title: "t", NumDim: 3, NumNodes: 4, NumElems: 1, NumElemBlk: 1,
		NumSideSets: 1, NumNodeSets: 1,
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.PutSideSetParams(1, 2))
	require.NoError(t, w.PutNodeSetParams(1, 4))

	require.NoError(t, w.SetSideSetVariableNumber(1))
	require.NoError(t, w.PutSideSetVariableName("flux", 1))
	require.NoError(t, w.PutSideSetVariableValues(1, "flux", 1, []float64{1.0, 2.0}))

	require.NoError(t, w.SetNodeSetVariableNumber(1))
	require.NoError(t, w.PutNodeSetVariableName("head", 1))
	require.NoError(t, w.PutNodeSetVariableValues(1, "head", 1, []float64{1, 2, 3, 4}))

	require.NoError(t, w.SetNodeVariableNumber(1))
	require.NoError(t, w.PutNodeVariableName("pressure", 1))
	require.NoError(t, w.PutNodeVariableValues("pressure", 1, make([]float64, 4)))

	err = w.PutSideSetVariableValues(1, "flux", 1, []float64{1.0})
	require.Error(t, err)

	err = w.PutNodeSetVariableValues(1, "head", 1, []float64{1, 2})
	require.Error(t, err)
}
