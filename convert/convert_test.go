// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convert

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cpgr/em2ex/meshgen"
)

// unitCubeModel builds the single-cell (1,1,1) boundary scenario: 8 nodes,
// 1 element, 6 side sets each of size 1.
func unitCubeModel() *meshgen.Model {
	m := &meshgen.Model{
		Dim: 3,
		X:   []float64{0, 1, 1, 0, 0, 1, 1, 0},
		Y:   []float64{0, 0, 1, 1, 0, 0, 1, 1},
		Z:   []float64{0, 0, 0, 0, -1, -1, -1, -1},
		ElemNodes: [][8]int{
			{1, 2, 3, 4, 5, 6, 7, 8},
		},
		BlockIDs: []int{0},
	}
	faces := []struct {
		name    string
		corners [4]int
		faceNum int
	}{
		{"bottom", [4]int{1, 2, 3, 4}, 5},
		{"front", [4]int{1, 2, 6, 5}, 1},
		{"left", [4]int{1, 5, 8, 4}, 4},
		{"right", [4]int{2, 3, 7, 6}, 2},
		{"back", [4]int{3, 4, 8, 7}, 3},
		{"top", [4]int{5, 6, 7, 8}, 6},
	}
	for _, f := range faces {
		m.NodeSets = append(m.NodeSets, meshgen.NodeSet{Name: f.name, Nodes: f.corners[:]})
		m.SideSets = append(m.SideSets, meshgen.SideSet{Name: f.name, Elems: []int{1}, Faces: []int{f.faceNum}})
	}
	m.ElemVars.Set("poro", []float64{0.2})
	return m
}

func TestWriteUnitCube(t *testing.T) {
	m := unitCubeModel()
	path := filepath.Join(t.TempDir(), "cube.e")

	err := Write(path, m, Options{
		Title:        "unit cube",
		NodeSets:     true,
		SideSets:     true,
		ElemVarNames: m.ElemVars.Names(),
	})
	require.NoError(t, err)

	info, statErr := os.Stat(path)
	require.NoError(t, statErr)
	require.Greater(t, info.Size(), int64(0))
}

func TestWriteOmitsSetsWhenDisabled(t *testing.T) {
	m := unitCubeModel()
	path := filepath.Join(t.TempDir(), "cube_nosets.e")

	err := Write(path, m, Options{Title: "no sets"})
	require.NoError(t, err)
	_, statErr := os.Stat(path)
	require.NoError(t, statErr)
}

func TestWriteRemovesPartialOutputOnError(t *testing.T) {
	m := unitCubeModel()
	path := filepath.Join(t.TempDir(), "cube_bad.e")

	// Declaring an element variable name that was never registered on the
	// model triggers a driver-contract error partway through Write.
	err := Write(path, m, Options{
		Title:        "bad",
		ElemVarNames: []string{"does-not-exist"},
	})
	require.Error(t, err)

	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr), "partial output should have been removed")
}

func TestWriteAllInactiveProducesEmptyValidFile(t *testing.T) {
	m := &meshgen.Model{Dim: 3}
	path := filepath.Join(t.TempDir(), "empty.e")

	err := Write(path, m, Options{Title: "no active cells"})
	require.NoError(t, err)

	info, statErr := os.Stat(path)
	require.NoError(t, statErr)
	require.Greater(t, info.Size(), int64(0))
}

func TestBlockRanges(t *testing.T) {
	ranges := blockRanges([]int{1, 1, 2, 2, 2, 3})
	require.Equal(t, []blockRange{
		{tag: 1, start: 0, end: 2},
		{tag: 2, start: 2, end: 5},
		{tag: 3, start: 5, end: 6},
	}, ranges)
}
