// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/cpgr/em2ex/convert"
	"github.com/cpgr/em2ex/eclipse"
	"github.com/cpgr/em2ex/grid"
	"github.com/cpgr/em2ex/meshgen"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "em2ex: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fileType := flag.String("filetype", "", "input file type: eclipse or leapfrog (overrides extension detection)")
	noNodeSets := flag.Bool("no-nodesets", false, "do not emit node sets")
	noSideSets := flag.Bool("no-sidesets", false, "do not emit side sets")
	force := flag.Bool("f", false, "overwrite existing output file")
	flipZ := flag.Bool("flip-z", false, "negate Z coordinates and swap top/bottom")
	useMapaxes := flag.Bool("use-mapaxes", false, "apply the MAPAXES transform if present")
	useOfficialAPI := flag.Bool("u", false, "accepted for compatibility; has no effect (single writer implementation)")
	flag.BoolVar(force, "force", *force, "overwrite existing output file")
	flag.BoolVar(useOfficialAPI, "use-official-api", *useOfficialAPI, "accepted for compatibility; has no effect (single writer implementation)")
	flag.Parse()

	if flag.NArg() < 1 {
		return fmt.Errorf("please provide a filename, e.g. em2ex reservoir.grdecl")
	}
	inputPath := flag.Arg(0)

	// use-official-api only distinguishes between writer backends, both of
	// which resolve to the same exodus.Writer in this tool: it only ever
	// has the one backend, so the flag is accepted for interface
	// completeness and otherwise has no effect.
	_ = useOfficialAPI

	kind := *fileType
	if kind == "" {
		kind = detectFileType(inputPath)
	}
	switch kind {
	case "leapfrog":
		return fmt.Errorf("leapfrog input is not supported by this tool")
	case "eclipse":
		// supported below
	default:
		return fmt.Errorf("cannot determine file type for %q; pass --filetype=eclipse", inputPath)
	}

	outputPath := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".e"
	if !*force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("output file %q already exists (use -f to overwrite)", outputPath)
		}
	}

	log.Printf("em2ex: reading %s", inputPath)
	data, err := eclipse.Read(inputPath)
	if err != nil {
		return err
	}

	raw, err := data.ToRaw(*flipZ, *useMapaxes)
	if err != nil {
		return err
	}

	decoded, err := grid.Decode(raw)
	if err != nil {
		return err
	}

	m, cellOrder, err := meshgen.Build(decoded, meshgen.Options{
		BlockTags:    data.BlockTags(raw.Nx, raw.Ny, raw.Nz),
		Tolerance:    meshgen.DefaultTolerance,
		FlipZ:        *flipZ,
		OmitNodeSets: *noNodeSets,
		OmitSideSets: *noSideSets,
	})
	if err != nil {
		return err
	}

	attachElemProps(m, data, raw.Nx, raw.Ny, raw.Nz, cellOrder)

	log.Printf("em2ex: writing %s", outputPath)
	return convert.Write(outputPath, m, convert.Options{
		Title:        "em2ex conversion of " + filepath.Base(inputPath),
		NodeSets:     !*noNodeSets,
		SideSets:     !*noSideSets,
		ElemVarNames: m.ElemVars.Names(),
	})
}

// detectFileType dispatches on file extension.
func detectFileType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".grdecl":
		return "eclipse"
	case ".csv":
		return "leapfrog"
	default:
		return ""
	}
}

// attachElemProps carries every recognized reservoir property (other than
// ACTNUM/SATNUM, which only steer activity and block partitioning) through
// to the model as an element variable, sliced to active cells in element-
// ID order.
func attachElemProps(m *meshgen.Model, data *eclipse.Data, nx, ny, nz int, cellOrder []meshgen.CellRef) {
	for _, name := range []string{"PORO", "PERMX", "PERMY", "PERMZ"} {
		values, ok := data.ElemProp(name, nx, ny, nz)
		if !ok {
			continue
		}
		m.ElemVars.Set(strings.ToLower(name), meshgen.SliceByCellOrder(values, cellOrder))
	}
}
