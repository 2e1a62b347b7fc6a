// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package eclipse is a line-oriented reader for ECLIPSE-style .grdecl
// reservoir description files: SPECGRID, COORD, ZCORN, the optional
// MAPAXES/GRIDUNIT pair, INCLUDE, and the property keywords ACTNUM,
// SATNUM, PORO, PERMX, PERMY, PERMZ.
package eclipse

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"

	"github.com/cpgr/em2ex/grid"
)

var propertyKeywords = map[string]bool{
	"ACTNUM": true, "SATNUM": true,
	"PORO": true, "PERMX": true, "PERMY": true, "PERMZ": true,
}

// Data is the raw set of keyword blocks read from one (possibly
// INCLUDE-chained) .grdecl source, before grid.Decode reshapes them.
type Data struct {
	Specgrid []string
	Mapaxes  []float64
	Gridunit []string // second token defaults to "GRID" when omitted

	Coord []float64 // (nx+1)*(ny+1)*6 flat
	Zcorn []float64 // 2nx*2ny*2nz flat

	// ElemProps holds one flat nx*ny*nz vector per recognized property
	// keyword, keyed by its upper-case name.
	ElemProps map[string][]float64
}

// Read opens path and any INCLUDE-chained files relative to their
// including file's directory, accumulating all recognized keyword blocks
// into a single Data.
func Read(path string) (*Data, error) {
	d := &Data{ElemProps: make(map[string][]float64)}
	if err := readFile(path, d); err != nil {
		return nil, err
	}
	if d.Specgrid == nil {
		return nil, chk.Err("eclipse: no SPECGRID data found in %s", path)
	}
	if d.Coord == nil {
		return nil, chk.Err("eclipse: no COORD data found in %s", path)
	}
	if d.Zcorn == nil {
		return nil, chk.Err("eclipse: no ZCORN data found in %s", path)
	}
	return d, nil
}

func readFile(path string, d *Data) error {
	f, err := os.Open(path)
	if err != nil {
		return chk.Err("eclipse: cannot open %s: %v", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "SPECGRID"):
			if !sc.Scan() {
				return chk.Err("eclipse: %s: SPECGRID block truncated", path)
			}
			fields := strings.Fields(sc.Text())
			if len(fields) > 0 && fields[len(fields)-1] == "/" {
				fields = fields[:len(fields)-1]
			}
			d.Specgrid = fields

		case strings.HasPrefix(trimmed, "MAPAXES"):
			block, err := readBlock(sc)
			if err != nil {
				return chk.Err("eclipse: %s: MAPAXES: %v", path, err)
			}
			d.Mapaxes = block

		case strings.HasPrefix(trimmed, "GRIDUNIT"):
			if !sc.Scan() {
				return chk.Err("eclipse: %s: GRIDUNIT block truncated", path)
			}
			fields := strings.Fields(sc.Text())
			if len(fields) > 0 && fields[len(fields)-1] == "/" {
				fields = fields[:len(fields)-1]
			}
			d.Gridunit = fields

		case strings.HasPrefix(trimmed, "COORD") && !strings.Contains(trimmed, "COORDSYS"):
			block, err := readBlock(sc)
			if err != nil {
				return chk.Err("eclipse: %s: COORD: %v", path, err)
			}
			d.Coord = block

		case strings.HasPrefix(trimmed, "ZCORN"):
			block, err := readBlock(sc)
			if err != nil {
				return chk.Err("eclipse: %s: ZCORN: %v", path, err)
			}
			d.Zcorn = block

		case strings.HasPrefix(trimmed, "INCLUDE"):
			if !sc.Scan() {
				return chk.Err("eclipse: %s: INCLUDE block truncated", path)
			}
			fields := strings.Fields(sc.Text())
			if len(fields) == 0 {
				return chk.Err("eclipse: %s: INCLUDE missing filename", path)
			}
			includePath := filepath.Join(filepath.Dir(path), strings.Trim(fields[0], "'\""))
			if err := readFile(includePath, d); err != nil {
				return err
			}

		default:
			fields := strings.Fields(trimmed)
			if len(fields) == 0 {
				continue
			}
			kw := fields[0]
			if propertyKeywords[kw] {
				block, err := readBlock(sc)
				if err != nil {
					return chk.Err("eclipse: %s: %s: %v", path, kw, err)
				}
				d.ElemProps[kw] = block
			}
			// unrecognized sections are skipped, matching the original's
			// fall-through "continue".
		}
	}
	if err := sc.Err(); err != nil {
		return chk.Err("eclipse: %s: %v", path, err)
	}
	return nil
}

// readBlock accumulates whitespace-separated tokens across lines until a
// terminating "/" token, expanding ECLIPSE's "N*value" repeat-count
// shorthand, and parses the result as floats.
func readBlock(sc *bufio.Scanner) ([]float64, error) {
	var tokens []string
	for {
		if !sc.Scan() {
			return nil, chk.Err("unexpected end of file while reading block")
		}
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		tokens = append(tokens, expandTokens(strings.Fields(line))...)
		if len(tokens) > 0 && tokens[len(tokens)-1] == "/" {
			tokens = tokens[:len(tokens)-1]
			break
		}
	}
	values := make([]float64, len(tokens))
	for i, t := range tokens {
		v, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return nil, chk.Err("cannot parse %q as a number: %v", t, err)
		}
		values[i] = v
	}
	return values, nil
}

// expandTokens rewrites every "N*value" token into N copies of "value".
func expandTokens(fields []string) []string {
	var out []string
	for _, t := range fields {
		star := strings.Index(t, "*")
		if star < 0 {
			out = append(out, t)
			continue
		}
		n, err := strconv.Atoi(t[:star])
		if err != nil {
			out = append(out, t)
			continue
		}
		value := t[star+1:]
		for k := 0; k < n; k++ {
			out = append(out, value)
		}
	}
	return out
}

// GridUnitScope returns the GRIDUNIT scope token ("GRID" or "MAP"),
// defaulting to "GRID" when GRIDUNIT was absent or had only one token.
func (d *Data) GridUnitScope() string {
	if len(d.Gridunit) < 2 {
		return "GRID"
	}
	return d.Gridunit[1]
}

// ToRaw reshapes the flat keyword blocks into a grid.Raw ready for
// grid.Decode, carrying the flipZ/useMapaxes flags for grid.Decode to apply.
func (d *Data) ToRaw(flipZ, useMapaxes bool) (*grid.Raw, error) {
	if len(d.Specgrid) < 3 {
		return nil, chk.Err("eclipse: SPECGRID must have 3 entries, got %d", len(d.Specgrid))
	}
	nx, err := strconv.Atoi(d.Specgrid[0])
	if err != nil {
		return nil, chk.Err("eclipse: SPECGRID nx: %v", err)
	}
	ny, err := strconv.Atoi(d.Specgrid[1])
	if err != nil {
		return nil, chk.Err("eclipse: SPECGRID ny: %v", err)
	}
	nz, err := strconv.Atoi(d.Specgrid[2])
	if err != nil {
		return nil, chk.Err("eclipse: SPECGRID nz: %v", err)
	}

	if want := (nx + 1) * (ny + 1) * 6; want != len(d.Coord) {
		return nil, chk.Err("eclipse: COORD must have %d entries, got %d", want, len(d.Coord))
	}
	if want := 2 * nx * 2 * ny * 2 * nz; want != len(d.Zcorn) {
		return nil, chk.Err("eclipse: ZCORN must have %d entries, got %d", want, len(d.Zcorn))
	}
	for name, vals := range d.ElemProps {
		if want := nx * ny * nz; len(vals) != want {
			return nil, chk.Err("eclipse: %s must have %d entries, got %d", name, want, len(vals))
		}
	}

	coord := make([][][]float64, ny+1)
	idx := 0
	for j := 0; j <= ny; j++ {
		coord[j] = make([][]float64, nx+1)
		for i := 0; i <= nx; i++ {
			coord[j][i] = append([]float64(nil), d.Coord[idx:idx+6]...)
			idx += 6
		}
	}

	zcorn := make([][][]float64, 2*nz)
	idx = 0
	for k := 0; k < 2*nz; k++ {
		zcorn[k] = make([][]float64, 2*ny)
		for j := 0; j < 2*ny; j++ {
			zcorn[k][j] = append([]float64(nil), d.Zcorn[idx:idx+2*nx]...)
			idx += 2 * nx
		}
	}

	var actnum [][][]int
	if vals, ok := d.ElemProps["ACTNUM"]; ok {
		actnum = reshapeInt(vals, nz, ny, nx)
	}

	if useMapaxes && len(d.Mapaxes) != 0 && len(d.Mapaxes) != 6 {
		return nil, chk.Err("eclipse: MAPAXES must have 6 entries, got %d", len(d.Mapaxes))
	}

	return &grid.Raw{
		Nx: nx, Ny: ny, Nz: nz,
		Coord:         coord,
		Zcorn:         zcorn,
		Actnum:        actnum,
		Mapaxes:       d.Mapaxes,
		GridUnitScope: d.GridUnitScope(),
		FlipZ:         flipZ,
		UseMapaxes:    useMapaxes,
	}, nil
}

func reshapeInt(vals []float64, nz, ny, nx int) [][][]int {
	out := make([][][]int, nz)
	idx := 0
	for k := 0; k < nz; k++ {
		out[k] = make([][]int, ny)
		for j := 0; j < ny; j++ {
			out[k][j] = make([]int, nx)
			for i := 0; i < nx; i++ {
				out[k][j][i] = int(vals[idx])
				idx++
			}
		}
	}
	return out
}

// BlockTags reshapes the SATNUM property into the (nz,ny,nx) block tag
// array meshgen.Options expects, defaulting to an all-zero single block
// when SATNUM is absent.
func (d *Data) BlockTags(nx, ny, nz int) [][][]int {
	vals, ok := d.ElemProps["SATNUM"]
	if !ok {
		out := make([][][]int, nz)
		for k := range out {
			out[k] = make([][]int, ny)
			for j := range out[k] {
				out[k][j] = make([]int, nx)
			}
		}
		return out
	}
	return reshapeInt(vals, nz, ny, nx)
}

// ElemProp reshapes a named elemental property into the dense (nz,ny,nx)
// grid meshgen.SliceByCellOrder consumes, or ok=false if not present.
func (d *Data) ElemProp(name string, nx, ny, nz int) (out [][][]float64, ok bool) {
	vals, present := d.ElemProps[strings.ToUpper(name)]
	if !present {
		return nil, false
	}
	out = make([][][]float64, nz)
	idx := 0
	for k := 0; k < nz; k++ {
		out[k] = make([][]float64, ny)
		for j := 0; j < ny; j++ {
			out[k][j] = make([]float64, nx)
			for i := 0; i < nx; i++ {
				out[k][j][i] = vals[idx]
				idx++
			}
		}
	}
	return out, true
}
