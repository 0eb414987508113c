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

	"github.com/ctessum/sparse"
)

// NearestInfo is the precomputed nearest-neighbor mapping from a source
// swath to a target grid: for each target cell, the flat index of and
// distance to the nearest valid source sample within RadiusOfInfluence.
type NearestInfo struct {
	// ValidInput flags source samples with finite projected coordinates.
	ValidInput []bool
	// ValidOutput flags target cells with a source sample within the
	// radius of influence.
	ValidOutput []bool
	// Index holds the flat source sample index per target cell, or -1.
	Index []int
	// Distance holds the projected distance to that sample.
	Distance []float64
}

// computeNearestInfo builds the single-neighbor mapping by searching the
// projected swath samples around each target cell center. The search box
// is inflated by Epsilon to tolerate samples on the radius boundary.
func computeNearestInfo(swath *Swath, area *AreaDef) (*NearestInfo, error) {
	xs, ys, err := swath.Project(area.SR)
	if err != nil {
		return nil, err
	}
	tree, valid := buildPointIndex(xs, ys)

	n := area.Ny * area.Nx
	info := &NearestInfo{
		ValidInput:  valid,
		ValidOutput: make([]bool, n),
		Index:       make([]int, n),
		Distance:    make([]float64, n),
	}
	for row := 0; row < area.Ny; row++ {
		for col := 0; col < area.Nx; col++ {
			cell := row*area.Nx + col
			info.Index[cell] = -1
			info.Distance[cell] = math.Inf(1)
			x, y := area.CellCenter(row, col)
			for _, p := range searchRadius(tree, x, y, RadiusOfInfluence+Epsilon) {
				d := math.Hypot(p.X-x, p.Y-y)
				if d <= RadiusOfInfluence && d < info.Distance[cell] {
					info.Index[cell] = p.idx
					info.Distance[cell] = d
					info.ValidOutput[cell] = true
				}
			}
		}
	}
	return info, nil
}

// sampleNearest assigns each target cell the value of its nearest source
// sample; cells without a sample within the radius of influence receive
// fill.
func sampleNearest(values *sparse.DenseArray, info *NearestInfo, area *AreaDef, fill float64) *sparse.DenseArray {
	out := sparse.ZerosDense(area.Ny, area.Nx)
	for cell, idx := range info.Index {
		if idx < 0 {
			out.Elements[cell] = fill
			continue
		}
		out.Elements[cell] = values.Elements[idx]
	}
	return out
}
