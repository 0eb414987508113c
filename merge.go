/*
Copyright © 2019 the SwathRepr authors.
This file is part of SwathRepr.

SwathRepr is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

SwathRepr is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with SwathRepr.  If not, see <http://www.gnu.org/licenses/>.
*/

package swathrepr

import (
	"fmt"
	"os"

	"github.com/ctessum/cdf"
)

// CreateOutput merges the per-variable rasters of the successfully
// resampled variables with the metadata variables of the source granule
// into a single NetCDF file at outputPath. Resampled bands are placed on
// the shared (y, x) target grid dimensions; metadata variables keep their
// original dimensions.
func CreateOutput(input *File, outputPath, tempDir string, variables []string, area *AreaDef) error {
	dimNames := []string{"y", "x"}
	dimLengths := []int{area.Ny, area.Nx}
	dimIndex := map[string]int{"y": area.Ny, "x": area.Nx}

	// Metadata variables whose dimensions clash with the target grid
	// dimensions, or that use the record dimension, are dropped.
	var metadata []string
	for _, v := range input.MetadataVariables() {
		if input.cdf.Header.IsRecordVariable(v) {
			continue
		}
		dims := input.cdf.Header.Dimensions(v)
		lengths := input.cdf.Header.Lengths(v)
		ok := true
		for i, d := range dims {
			if have, exists := dimIndex[d]; exists {
				if have != lengths[i] {
					ok = false
					break
				}
				continue
			}
			dimIndex[d] = lengths[i]
			dimNames = append(dimNames, d)
			dimLengths = append(dimLengths, lengths[i])
		}
		if ok {
			metadata = append(metadata, v)
		}
	}

	h := cdf.NewHeader(dimNames, dimLengths)

	type band struct {
		buf  interface{}
		ny   int
		nx   int
	}
	bands := make(map[string]band)
	for _, v := range variables {
		data, dtype, fill, _, _, err := ReadRaster(VariableOutputPath(tempDir, v, ".nc"))
		if err != nil {
			return fmt.Errorf("swathrepr: merging %s: %v", v, err)
		}
		h.AddVariable(v, []string{"y", "x"}, dtype.zeroValue())
		for _, a := range input.cdf.Header.Attributes(v) {
			if a == "_FillValue" {
				continue
			}
			h.AddAttribute(v, a, input.cdf.Header.GetAttribute(v, a))
		}
		h.AddAttribute(v, "_FillValue", dtype.fillAttr(fill))
		h.AddAttribute(v, "crs_proj4", area.ProjString)
		h.AddAttribute(v, "GeoTransform", area.Transform[:])
		bands[v] = band{buf: dtype.convert(data.Elements, fill), ny: data.Shape[0], nx: data.Shape[1]}
	}

	type copied struct {
		buf     interface{}
		lengths []int
	}
	copies := make(map[string]copied)
	for _, v := range metadata {
		r := input.cdf.Reader(v, nil, nil)
		buf := r.Zero(-1)
		if _, err := r.Read(buf); err != nil {
			return fmt.Errorf("swathrepr: reading metadata variable %s: %v", v, err)
		}
		h.AddVariable(v, input.cdf.Header.Dimensions(v), input.cdf.Header.ZeroValue(v, 1))
		for _, a := range input.cdf.Header.Attributes(v) {
			h.AddAttribute(v, a, input.cdf.Header.GetAttribute(v, a))
		}
		copies[v] = copied{buf: buf, lengths: input.cdf.Header.Lengths(v)}
	}

	for _, a := range input.cdf.Header.Attributes("") {
		h.AddAttribute("", a, input.cdf.Header.GetAttribute("", a))
	}
	h.AddAttribute("", "history", "swathrepr reprojection of "+input.Path)

	h.Define()
	for _, err := range h.Check() {
		return fmt.Errorf("swathrepr: defining merged output: %v", err)
	}

	ff, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("swathrepr: creating merged output: %v", err)
	}
	defer ff.Close()
	f, err := cdf.Create(ff, h)
	if err != nil {
		return fmt.Errorf("swathrepr: creating merged output: %v", err)
	}

	for v, b := range bands {
		w := f.Writer(v, []int{0, 0}, []int{b.ny, b.nx})
		if _, err := w.Write(b.buf); err != nil {
			return fmt.Errorf("swathrepr: writing merged band %s: %v", v, err)
		}
	}
	for v, c := range copies {
		begin := make([]int, len(c.lengths))
		w := f.Writer(v, begin, c.lengths)
		if _, err := w.Write(c.buf); err != nil {
			return fmt.Errorf("swathrepr: writing metadata variable %s: %v", v, err)
		}
	}
	return nil
}
