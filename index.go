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

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
)

// swathPoint is one projected swath sample in the spatial index.
type swathPoint struct {
	geom.Point
	idx int
}

// buildPointIndex indexes the projected swath samples with finite
// coordinates and returns a validity mask over all samples.
func buildPointIndex(xs, ys []float64) (*rtree.Rtree, []bool) {
	valid := make([]bool, len(xs))
	tree := rtree.NewTree(25, 50)
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		valid[i] = true
		tree.Insert(&swathPoint{Point: geom.Point{X: xs[i], Y: ys[i]}, idx: i})
	}
	return tree, valid
}

func pointAt(x, y float64) geom.Point { return geom.Point{X: x, Y: y} }

// searchRadius returns the indexed samples whose bounding boxes intersect
// the square of half-width radius centered on (x, y).
func searchRadius(tree *rtree.Rtree, x, y, radius float64) []*swathPoint {
	b := &geom.Bounds{
		Min: geom.Point{X: x - radius, Y: y - radius},
		Max: geom.Point{X: x + radius, Y: y + radius},
	}
	var points []*swathPoint
	for _, s := range tree.SearchIntersect(b) {
		points = append(points, s.(*swathPoint))
	}
	return points
}
