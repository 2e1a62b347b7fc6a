// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exodus

import ncdf "github.com/fhs/go-netcdf/netcdf"

// packNames encodes names as per-character S1 bytes, null-padded to
// width, the layout Exodus readers expect for coor_names/eb_names/etc.
func packNames(names []string, width int) []byte {
	buf := make([]byte, len(names)*width)
	for i, name := range names {
		copy(buf[i*width:(i+1)*width], name)
	}
	return buf
}

func writeNames(v ncdf.Var, names []string, width int) error {
	return v.WriteBytes(packNames(names, width))
}
