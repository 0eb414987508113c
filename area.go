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
	"math"

	"github.com/ctessum/geom/proj"
)

// CRSDefault is the target coordinate reference system that is used when
// a request does not specify one.
const CRSDefault = "+proj=longlat +ellps=WGS84"

// Affine is a six-parameter transform from pixel (column, row) space to
// projected (x, y) space, in GDAL geo-transform order:
// (x origin, x resolution, row rotation, y origin, column rotation,
// y resolution).
type Affine [6]float64

// NewAffine creates an affine transform from the six GDAL geo-transform
// parameters.
func NewAffine(x0, dx, rx, y0, ry, dy float64) Affine {
	return Affine{x0, dx, rx, y0, ry, dy}
}

// Apply transforms pixel coordinates to projected coordinates.
func (a Affine) Apply(col, row float64) (x, y float64) {
	x = a[0] + col*a[1] + row*a[2]
	y = a[3] + col*a[4] + row*a[5]
	return
}

// Invert transforms projected coordinates back to pixel coordinates. It
// returns an error if the transform is degenerate.
func (a Affine) Invert(x, y float64) (col, row float64, err error) {
	det := a[1]*a[5] - a[2]*a[4]
	if det == 0 {
		return 0, 0, fmt.Errorf("swathrepr: affine transform %v is not invertible", a)
	}
	u := x - a[0]
	v := y - a[3]
	col = (u*a[5] - v*a[2]) / det
	row = (v*a[1] - u*a[4]) / det
	return
}

// AreaDef specifies the target grid that swath data are resampled onto.
// All grids are regular, north-up, and unrotated. Dy is negative,
// consistent with raster row-major order.
type AreaDef struct {
	SR         *proj.SR
	ProjString string

	Ny, Nx int

	XMin, YMin, XMax, YMax float64

	Dx, Dy float64

	Transform Affine
}

// Shape returns the grid dimensions as (height, width).
func (a *AreaDef) Shape() (ny, nx int) { return a.Ny, a.Nx }

// CellCenter returns the projected coordinates of the center of the grid
// cell at the given row and column.
func (a *AreaDef) CellCenter(row, col int) (x, y float64) {
	return a.Transform.Apply(float64(col)+0.5, float64(row)+0.5)
}

// FractionalCell returns the fractional (column, row) grid coordinates of
// the projected point (x, y), where integer values refer to cell centers.
func (a *AreaDef) FractionalCell(x, y float64) (col, row float64, err error) {
	col, row, err = a.Transform.Invert(x, y)
	if err != nil {
		return
	}
	col -= 0.5
	row -= 0.5
	return
}

// contains reports whether the fractional cell coordinates lie on the grid.
func (a *AreaDef) contains(col, row float64) bool {
	return col >= -0.5 && col < float64(a.Nx)-0.5 &&
		row >= -0.5 && row < float64(a.Ny)-0.5
}

// GridSpec holds the grid-related parameters of a reprojection request.
// Pointer fields distinguish values that were explicitly given from values
// that need to be derived from the source data.
type GridSpec struct {
	// CRS is a proj4 string specifying the target projection. The empty
	// string means CRSDefault.
	CRS string

	// Interpolation is the requested resampling method. The empty string
	// means InterpolationDefault.
	Interpolation string

	// XMin, YMin, XMax, and YMax are the target grid extent in projected
	// coordinates.
	XMin, YMin, XMax, YMax *float64

	// XRes and YRes are the target cell dimensions in projected units.
	XRes, YRes *float64

	// Width and Height are the target grid pixel dimensions.
	Width, Height *int

	// InputFile is the path of the source granule.
	InputFile string
}

// ResolveGridParams reconciles the partially specified grid parameters in
// g with fallbacks derived from the source swath coordinates, producing a
// fully determined target grid. It is a pure derivation: identical inputs
// always yield identical output, and no I/O is performed.
func ResolveGridParams(g *GridSpec, swath *Swath) (*AreaDef, error) {
	crs := g.CRS
	if crs == "" {
		crs = CRSDefault
	}
	sr, err := proj.Parse(crs)
	if err != nil {
		return nil, fmt.Errorf("swathrepr: parsing target CRS %q: %v", crs, err)
	}

	// Resolution and pixel size together over-determine the grid
	// (the "-tr and -ts options cannot be used at the same time" case).
	if (g.XRes != nil || g.YRes != nil) && (g.Width != nil || g.Height != nil) {
		return nil, ErrConflictingGridSpec
	}

	anyX := g.XMin != nil || g.XMax != nil
	anyY := g.YMin != nil || g.YMax != nil
	allX := g.XMin != nil && g.XMax != nil
	allY := g.YMin != nil && g.YMax != nil
	if anyX != allX || anyY != allY || anyX != anyY {
		return nil, ErrIncompleteExtent
	}
	if (g.Width != nil) != (g.Height != nil) {
		return nil, ErrIncompleteExtent
	}

	var xMin, yMin, xMax, yMax float64
	if !anyX {
		xMin, yMin, xMax, yMax, err = swath.PerimeterExtent(sr)
		if err != nil {
			return nil, fmt.Errorf("swathrepr: deriving extent from swath perimeter: %v", err)
		}
	} else {
		xMin, yMin, xMax, yMax = *g.XMin, *g.YMin, *g.XMax, *g.YMax
	}
	// Extents that wrap the antimeridian would require swapping the x
	// bounds and splitting the grid; that is not supported, so fail
	// explicitly rather than produce a wrong grid.
	if xMin >= xMax || yMin >= yMax {
		return nil, ErrExtentOrder
	}

	var dx, dy float64
	switch {
	case (g.XRes == nil || g.YRes == nil) && g.Width != nil && g.Height != nil:
		dx = (xMax - xMin) / float64(*g.Width)
		dy = (yMin - yMax) / float64(*g.Height) // negative; north-up
	case g.XRes == nil || g.YRes == nil:
		dx, err = swath.NativeResolution(sr)
		if err != nil {
			return nil, fmt.Errorf("swathrepr: deriving native resolution: %v", err)
		}
		dy = -dx
	default:
		dx, dy = *g.XRes, *g.YRes
	}
	if dx == 0 || dy == 0 {
		return nil, fmt.Errorf("swathrepr: zero grid resolution (%g, %g)", dx, dy)
	}

	var nx, ny int
	if g.Width != nil && g.Height != nil {
		nx, ny = *g.Width, *g.Height
	} else {
		nx = int(math.Abs(math.Round((xMin - xMax) / dx)))
		ny = int(math.Abs(math.Round((yMin - yMax) / dy)))
	}
	if nx <= 0 || ny <= 0 {
		return nil, fmt.Errorf("swathrepr: empty target grid (%d x %d)", ny, nx)
	}

	return &AreaDef{
		SR:         sr,
		ProjString: crs,
		Ny:         ny,
		Nx:         nx,
		XMin:       xMin,
		YMin:       yMin,
		XMax:       xMax,
		YMax:       yMax,
		Dx:         dx,
		Dy:         dy,
		Transform:  NewAffine(xMin, dx, 0, yMax, 0, dy),
	}, nil
}
