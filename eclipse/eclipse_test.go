// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eclipse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const unitCubeGRDECL = `SPECGRID
1 1 1 1 /
COORD
0 0 0 0 0 1
1 0 0 1 0 1
0 1 0 0 1 1
1 1 0 1 1 1
/
ZCORN
4*0 4*1
/
ACTNUM
1 /
SATNUM
1 /
`

func writeTemp(t *testing.T, name, content string) string {
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadParsesUnitCube(t *testing.T) {
	path := writeTemp(t, "cube.grdecl", unitCubeGRDECL)
	d, err := Read(path)
	require.NoError(t, err)

	require.Equal(t, []string{"1", "1", "1", "1"}, d.Specgrid)
	require.Len(t, d.Coord, 24)
	require.Len(t, d.Zcorn, 8)
	require.Equal(t, []float64{1}, d.ElemProps["ACTNUM"])
	require.Equal(t, []float64{1}, d.ElemProps["SATNUM"])
	require.Equal(t, "GRID", d.GridUnitScope())
}

func TestReadMissingRequiredKeyword(t *testing.T) {
	path := writeTemp(t, "bad.grdecl", "SPECGRID\n1 1 1 1 /\n")
	_, err := Read(path)
	require.Error(t, err)
}

func TestExpandTokensRepeatCount(t *testing.T) {
	out := expandTokens([]string{"3*0.5", "2*1", "/"})
	require.Equal(t, []string{"0.5", "0.5", "0.5", "1", "1", "/"}, out)
}

func TestToRawShapesMatchSpecgrid(t *testing.T) {
	path := writeTemp(t, "cube.grdecl", unitCubeGRDECL)
	d, err := Read(path)
	require.NoError(t, err)

	raw, err := d.ToRaw(false, false)
	require.NoError(t, err)
	require.Equal(t, 1, raw.Nx)
	require.Equal(t, 1, raw.Ny)
	require.Equal(t, 1, raw.Nz)
	require.Len(t, raw.Coord, 2)
	require.Len(t, raw.Coord[0], 2)
	require.NotNil(t, raw.Actnum)
}

func TestIncludeRecursesRelativeToIncludingFile(t *testing.T) {
	dir := t.TempDir()
	includedPath := filepath.Join(dir, "props.grdecl")
	require.NoError(t, os.WriteFile(includedPath, []byte("SATNUM\n1 /\n"), 0644))

	main := `SPECGRID
1 1 1 1 /
COORD
0 0 0 0 0 1
1 0 0 1 0 1
0 1 0 0 1 1
1 1 0 1 1 1
/
ZCORN
4*0 4*1
/
INCLUDE
'props.grdecl' /
`
	mainPath := filepath.Join(dir, "main.grdecl")
	require.NoError(t, os.WriteFile(mainPath, []byte(main), 0644))

	d, err := Read(mainPath)
	require.NoError(t, err)
	require.Equal(t, []float64{1}, d.ElemProps["SATNUM"])
}

func TestBlockTagsDefaultsToSingleBlock(t *testing.T) {
	d := &Data{ElemProps: map[string][]float64{}}
	tags := d.BlockTags(2, 1, 1)
	require.Equal(t, 0, tags[0][0][0])
	require.Equal(t, 0, tags[0][0][1])
}

func TestElemPropMissingReturnsFalse(t *testing.T) {
	d := &Data{ElemProps: map[string][]float64{}}
	_, ok := d.ElemProp("poro", 1, 1, 1)
	require.False(t, ok)
}
