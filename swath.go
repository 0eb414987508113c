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
	"sort"
	"strings"
	"sync"

	"github.com/ctessum/geom/proj"
	"github.com/ctessum/sparse"
	"github.com/gonum/floats"
)

// CoordsKey identifies the source coordinate grid that a science variable
// references. Variables sharing a CoordsKey share precomputed reprojection
// information.
type CoordsKey string

// NewCoordsKey builds an order-independent key from the names of the
// coordinate variables a science variable references.
func NewCoordsKey(names ...string) CoordsKey {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)
	return CoordsKey(strings.Join(sorted, " "))
}

// Swath holds the geographic coordinates of an irregularly gridded set of
// source samples: two equal-shaped 2-D arrays of longitudes and latitudes,
// one entry per sample. A Swath is immutable once created.
type Swath struct {
	Lons, Lats *sparse.DenseArray
	Key        CoordsKey
}

// NewSwath creates a swath definition from longitude and latitude arrays,
// which must be 2-D and equal-shaped.
func NewSwath(key CoordsKey, lons, lats *sparse.DenseArray) (*Swath, error) {
	if len(lons.Shape) != 2 || len(lats.Shape) != 2 {
		return nil, fmt.Errorf("swathrepr: swath coordinates must be 2-D; got %v and %v",
			lons.Shape, lats.Shape)
	}
	if lons.Shape[0] != lats.Shape[0] || lons.Shape[1] != lats.Shape[1] {
		return nil, fmt.Errorf("swathrepr: swath coordinate shape mismatch: %v != %v",
			lons.Shape, lats.Shape)
	}
	return &Swath{Lons: lons, Lats: lats, Key: key}, nil
}

// Shape returns the swath dimensions as (scan rows, samples per row).
func (s *Swath) Shape() (rows, cols int) { return s.Lons.Shape[0], s.Lons.Shape[1] }

var (
	longlatOnce sync.Once
	longlatSR   *proj.SR
	longlatErr  error
)

// longlat returns the geographic spatial reference that swath coordinates
// are expressed in.
func longlat() (*proj.SR, error) {
	longlatOnce.Do(func() {
		longlatSR, longlatErr = proj.Parse(CRSDefault)
	})
	return longlatSR, longlatErr
}

// Project transforms every swath sample to the given spatial reference,
// returning flat slices of projected x and y coordinates in row-major
// order. Samples with non-finite coordinates project to NaN.
func (s *Swath) Project(to *proj.SR) (xs, ys []float64, err error) {
	src, err := longlat()
	if err != nil {
		return nil, nil, err
	}
	ct, err := src.NewTransform(to)
	if err != nil {
		return nil, nil, fmt.Errorf("swathrepr: creating swath projection transform: %v", err)
	}
	n := len(s.Lons.Elements)
	xs = make([]float64, n)
	ys = make([]float64, n)
	for i := 0; i < n; i++ {
		lon, lat := s.Lons.Elements[i], s.Lats.Elements[i]
		if math.IsNaN(lon) || math.IsNaN(lat) ||
			math.IsInf(lon, 0) || math.IsInf(lat, 0) {
			xs[i], ys[i] = math.NaN(), math.NaN()
			continue
		}
		x, y, err := ct(lon, lat)
		if err != nil {
			xs[i], ys[i] = math.NaN(), math.NaN()
			continue
		}
		xs[i], ys[i] = x, y
	}
	return xs, ys, nil
}

// perimeterIndices returns the flat indices of the samples on the swath
// boundary: the first and last scan rows plus the first and last columns.
func (s *Swath) perimeterIndices() []int {
	rows, cols := s.Shape()
	var idx []int
	for c := 0; c < cols; c++ {
		idx = append(idx, c)
		if rows > 1 {
			idx = append(idx, (rows-1)*cols+c)
		}
	}
	for r := 1; r < rows-1; r++ {
		idx = append(idx, r*cols)
		if cols > 1 {
			idx = append(idx, r*cols+cols-1)
		}
	}
	return idx
}

// PerimeterExtent estimates the extent of the swath in the target
// projection from the projected positions of its perimeter samples.
func (s *Swath) PerimeterExtent(to *proj.SR) (xMin, yMin, xMax, yMax float64, err error) {
	xs, ys, err := s.Project(to)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	var px, py []float64
	for _, i := range s.perimeterIndices() {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		px = append(px, xs[i])
		py = append(py, ys[i])
	}
	if len(px) == 0 {
		return 0, 0, 0, 0, fmt.Errorf("swathrepr: no valid coordinates on swath perimeter")
	}
	return floats.Min(px), floats.Min(py), floats.Max(px), floats.Max(py), nil
}

// NativeResolution estimates the characteristic sample spacing of the
// swath in the target projection: the median projected distance between
// adjacent samples along the perimeter scan rows and columns.
func (s *Swath) NativeResolution(to *proj.SR) (float64, error) {
	xs, ys, err := s.Project(to)
	if err != nil {
		return 0, err
	}
	rows, cols := s.Shape()
	var spacings []float64
	add := func(i, j int) {
		if math.IsNaN(xs[i]) || math.IsNaN(xs[j]) {
			return
		}
		d := math.Hypot(xs[j]-xs[i], ys[j]-ys[i])
		if d > 0 {
			spacings = append(spacings, d)
		}
	}
	for _, r := range []int{0, rows - 1} {
		for c := 0; c < cols-1; c++ {
			add(r*cols+c, r*cols+c+1)
		}
	}
	for _, c := range []int{0, cols - 1} {
		for r := 0; r < rows-1; r++ {
			add(r*cols+c, (r+1)*cols+c)
		}
	}
	if len(spacings) == 0 {
		return 0, fmt.Errorf("swathrepr: cannot estimate native resolution: no valid adjacent samples")
	}
	sort.Float64s(spacings)
	return spacings[len(spacings)/2], nil
}
