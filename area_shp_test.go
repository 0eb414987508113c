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
)

func TestWriteShp(t *testing.T) {
	withTempDir(t, func(dir string) {
		area := testArea(t, 2, 2, 0, 0, 10, 10)
		if err := area.WriteShp(dir, "grid"); err != nil {
			t.Fatal(err)
		}
		for _, ext := range []string{".shp", ".dbf", ".shx"} {
			if _, err := os.Stat(filepath.Join(dir, "grid"+ext)); err != nil {
				t.Errorf("missing shapefile component %s: %v", ext, err)
			}
		}
	})
}

func TestCellPolygon(t *testing.T) {
	area := testArea(t, 2, 2, 0, 0, 10, 10)
	p := area.cellPolygon(0, 0)
	b := p.Bounds()
	if b.Min.X != 0 || b.Max.X != 5 || b.Min.Y != 5 || b.Max.Y != 10 {
		t.Errorf("cell (0, 0) bounds = %+v; want x [0 5], y [5 10]", b)
	}
}
