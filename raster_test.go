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
	"math"
	"path/filepath"
	"testing"
)

func TestWriteReadRaster(t *testing.T) {
	withTempDir(t, func(dir string) {
		area := testArea(t, 2, 3, 0, 0, 3, 2)
		data := makeDense([][]float64{{1, 2, 3}, {4, 5, 6}})
		path := filepath.Join(dir, "band.nc")

		if err := WriteRaster(path, data, area, Float64, math.NaN()); err != nil {
			t.Fatal(err)
		}
		got, dtype, _, transform, projString, err := ReadRaster(path)
		if err != nil {
			t.Fatal(err)
		}
		if dtype != Float64 {
			t.Errorf("dtype = %v; want Float64", dtype)
		}
		if projString != CRSDefault {
			t.Errorf("projection = %q; want %q", projString, CRSDefault)
		}
		if transform != area.Transform {
			t.Errorf("transform = %v; want %v", transform, area.Transform)
		}
		if got.Shape[0] != 2 || got.Shape[1] != 3 {
			t.Fatalf("shape = %v; want [2 3]", got.Shape)
		}
		for i, want := range data.Elements {
			if got.Elements[i] != want {
				t.Errorf("element %d = %g; want %g", i, got.Elements[i], want)
			}
		}
	})
}

func TestWriteRasterNarrowsIntegers(t *testing.T) {
	withTempDir(t, func(dir string) {
		area := testArea(t, 1, 3, 0, 0, 3, 1)
		data := makeDense([][]float64{{7, math.NaN(), 9}})
		path := filepath.Join(dir, "band.nc")

		if err := WriteRaster(path, data, area, Int16, -99); err != nil {
			t.Fatal(err)
		}
		got, dtype, fill, _, _, err := ReadRaster(path)
		if err != nil {
			t.Fatal(err)
		}
		if dtype != Int16 {
			t.Errorf("dtype = %v; want Int16", dtype)
		}
		if fill != -99 {
			t.Errorf("fill = %g; want -99", fill)
		}
		want := []float64{7, -99, 9}
		for i := range want {
			if got.Elements[i] != want[i] {
				t.Errorf("element %d = %g; want %g", i, got.Elements[i], want[i])
			}
		}
	})
}

func TestWriteRasterUndeclaredIntegerFill(t *testing.T) {
	withTempDir(t, func(dir string) {
		area := testArea(t, 1, 2, 0, 0, 2, 1)
		data := makeDense([][]float64{{7, math.NaN()}})
		path := filepath.Join(dir, "band.nc")

		// NaN fill with an integer dtype falls back to the default
		// integer fill value.
		if err := WriteRaster(path, data, area, Int32, math.NaN()); err != nil {
			t.Fatal(err)
		}
		got, _, fill, _, _, err := ReadRaster(path)
		if err != nil {
			t.Fatal(err)
		}
		if fill != defaultIntFill {
			t.Errorf("fill = %g; want %d", fill, defaultIntFill)
		}
		if got.Elements[1] != defaultIntFill {
			t.Errorf("element 1 = %g; want %d", got.Elements[1], defaultIntFill)
		}
	})
}

func TestWriteRasterRejectsNon2D(t *testing.T) {
	withTempDir(t, func(dir string) {
		area := testArea(t, 2, 2, 0, 0, 2, 2)
		data := makeDense([][]float64{{1, 2}, {3, 4}})
		data.Shape = []int{4} // corrupt the shape
		err := WriteRaster(filepath.Join(dir, "band.nc"), data, area, Float64, math.NaN())
		if err == nil {
			t.Fatal("non-2-D data should be rejected")
		}
		if _, ok := err.(*RasterWriteError); !ok {
			t.Errorf("error has type %T; want *RasterWriteError", err)
		}
	})
}
