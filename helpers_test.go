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
	"os"
	"path/filepath"
	"testing"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// makeDense builds a 2-D dense array from row slices.
func makeDense(rows [][]float64) *sparse.DenseArray {
	a := sparse.ZerosDense(len(rows), len(rows[0]))
	for i, row := range rows {
		for j, v := range row {
			a.Set(v, i, j)
		}
	}
	return a
}

// makeSwath builds a swath from longitude and latitude row slices.
func makeSwath(t *testing.T, lons, lats [][]float64) *Swath {
	t.Helper()
	s, err := NewSwath(NewCoordsKey("lat", "lon"), makeDense(lons), makeDense(lats))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// cornerSwath is a 2x2 swath with samples at the quadrant centers of the
// (0, 0, 10, 10) geographic box.
func cornerSwath(t *testing.T) *Swath {
	return makeSwath(t,
		[][]float64{{2.5, 7.5}, {2.5, 7.5}},
		[][]float64{{2.5, 2.5}, {7.5, 7.5}})
}

// testArea builds a fully specified target grid in the default geographic
// CRS without touching the source swath.
func testArea(t *testing.T, ny, nx int, xMin, yMin, xMax, yMax float64) *AreaDef {
	t.Helper()
	spec := &GridSpec{
		XMin: &xMin, YMin: &yMin, XMax: &xMax, YMax: &yMax,
		Width: &nx, Height: &ny,
	}
	area, err := ResolveGridParams(spec, cornerSwath(t))
	if err != nil {
		t.Fatal(err)
	}
	return area
}

// writeTestGranule creates a NetCDF granule in dir with the cornerSwath
// coordinates, two resamplable variables, a metadata variable, and,
// optionally, a variable whose coordinates attribute cannot be resolved.
func writeTestGranule(t *testing.T, dir string, withBroken bool) string {
	t.Helper()
	h := cdf.NewHeader([]string{"ni", "nj"}, []int{2, 2})
	h.AddVariable("lat", []string{"ni", "nj"}, []float64{0})
	h.AddVariable("lon", []string{"ni", "nj"}, []float64{0})
	h.AddVariable("temperature", []string{"ni", "nj"}, []float64{0})
	h.AddAttribute("temperature", "coordinates", "lat lon")
	h.AddAttribute("temperature", "units", "K")
	h.AddAttribute("temperature", "_FillValue", []float64{-9999})
	h.AddVariable("wind_speed", []string{"ni", "nj"}, []float64{0})
	h.AddAttribute("wind_speed", "coordinates", "lat lon")
	if withBroken {
		h.AddVariable("broken", []string{"ni", "nj"}, []float64{0})
		h.AddAttribute("broken", "coordinates", "alpha beta")
	}
	h.AddVariable("flags", []string{"ni"}, []int32{0})
	h.AddAttribute("", "title", "test granule")
	h.Define()
	for _, err := range h.Check() {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "granule.nc")
	ff, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer ff.Close()
	f, err := cdf.Create(ff, h)
	if err != nil {
		t.Fatal(err)
	}
	write := func(v string, buf interface{}) {
		w := f.Writer(v, []int{0, 0}, []int{2, 2})
		if _, err := w.Write(buf); err != nil {
			t.Fatalf("writing %s: %v", v, err)
		}
	}
	write("lat", []float64{2.5, 2.5, 7.5, 7.5})
	write("lon", []float64{2.5, 7.5, 2.5, 7.5})
	write("temperature", []float64{1, 2, 3, 4})
	write("wind_speed", []float64{10, 20, 30, 40})
	if withBroken {
		write("broken", []float64{0, 0, 0, 0})
	}
	w := f.Writer("flags", []int{0}, []int{2})
	if _, err := w.Write([]int32{1, 2}); err != nil {
		t.Fatal(err)
	}
	return path
}
