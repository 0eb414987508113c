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

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	goshp "github.com/jonas-p/go-shp"
)

// cellPolygon returns the outline of the grid cell at the given row and
// column in projected coordinates.
func (a *AreaDef) cellPolygon(row, col int) geom.Polygon {
	x0, y0 := a.Transform.Apply(float64(col), float64(row))
	x1, y1 := a.Transform.Apply(float64(col+1), float64(row+1))
	return geom.Polygon([]geom.Path{{
		{X: x0, Y: y0}, {X: x1, Y: y0},
		{X: x1, Y: y1}, {X: x0, Y: y1}, {X: x0, Y: y0}}})
}

// WriteShp writes the target grid cell geometry to a shapefile named
// after name in directory outdir, for visual inspection of resolved grid
// parameters.
func (a *AreaDef) WriteShp(outdir, name string) error {
	for _, ext := range []string{".shp", ".prj", ".dbf", ".shx"} {
		os.Remove(filepath.Join(outdir, name+ext))
	}
	fields := make([]goshp.Field, 2)
	fields[0] = goshp.NumberField("row", 10)
	fields[1] = goshp.NumberField("col", 10)
	shpf, err := shp.NewEncoderFromFields(filepath.Join(outdir, name+".shp"),
		goshp.POLYGON, fields...)
	if err != nil {
		return err
	}
	for row := 0; row < a.Ny; row++ {
		for col := 0; col < a.Nx; col++ {
			if err := shpf.EncodeFields(a.cellPolygon(row, col), row, col); err != nil {
				return err
			}
		}
	}
	shpf.Close()
	return nil
}
