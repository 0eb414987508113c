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

// Quadrant corner positions, relative to a target cell center.
const (
	cornerSW = iota
	cornerSE
	cornerNW
	cornerNE
)

// BilinearInfo is the precomputed bilinear mapping from a source swath to
// a target grid: for each target cell, the four bracketing source samples
// (one per quadrant, chosen from the Neighbors nearest candidates) and
// the fractional horizontal and vertical distances of the cell center
// within that quadrilateral.
type BilinearInfo struct {
	// HDist and VDist are the horizontal and vertical fractional
	// distances per target cell, in [0, 1].
	HDist, VDist []float64
	// Corners holds the flat source indices of the SW, SE, NW, and NE
	// bracketing samples per target cell; -1 marks a missing corner.
	Corners [][4]int
	// Valid flags target cells with a complete corner set.
	Valid []bool
}

// computeBilinearInfo builds the bilinear mapping. For each target cell
// center it considers the Neighbors nearest projected source samples,
// keeps the nearest sample in each quadrant within RadiusOfInfluence, and
// derives the interpolation fractions from the corner positions.
func computeBilinearInfo(swath *Swath, area *AreaDef) (*BilinearInfo, error) {
	xs, ys, err := swath.Project(area.SR)
	if err != nil {
		return nil, err
	}
	tree, _ := buildPointIndex(xs, ys)

	n := area.Ny * area.Nx
	info := &BilinearInfo{
		HDist:   make([]float64, n),
		VDist:   make([]float64, n),
		Corners: make([][4]int, n),
		Valid:   make([]bool, n),
	}
	for row := 0; row < area.Ny; row++ {
		for col := 0; col < area.Nx; col++ {
			cell := row*area.Nx + col
			info.Corners[cell] = [4]int{-1, -1, -1, -1}
			x, y := area.CellCenter(row, col)

			var dist [4]float64
			for q := range dist {
				dist[q] = math.Inf(1)
			}
			for _, s := range tree.NearestNeighbors(Neighbors, pointAt(x, y)) {
				p, ok := s.(*swathPoint)
				if !ok || p == nil {
					continue
				}
				d := math.Hypot(p.X-x, p.Y-y)
				if d > RadiusOfInfluence {
					continue
				}
				q := quadrant(p.X-x, p.Y-y)
				if d < dist[q] {
					dist[q] = d
					info.Corners[cell][q] = p.idx
				}
			}

			c := info.Corners[cell]
			if c[cornerSW] < 0 || c[cornerSE] < 0 || c[cornerNW] < 0 || c[cornerNE] < 0 {
				continue
			}
			xWest := (xs[c[cornerSW]] + xs[c[cornerNW]]) / 2
			xEast := (xs[c[cornerSE]] + xs[c[cornerNE]]) / 2
			ySouth := (ys[c[cornerSW]] + ys[c[cornerSE]]) / 2
			yNorth := (ys[c[cornerNW]] + ys[c[cornerNE]]) / 2
			if xEast == xWest || yNorth == ySouth {
				continue
			}
			info.HDist[cell] = clamp01((x - xWest) / (xEast - xWest))
			info.VDist[cell] = clamp01((y - ySouth) / (yNorth - ySouth))
			info.Valid[cell] = true
		}
	}
	return info, nil
}

// sampleBilinear interpolates source values onto the target grid using
// the precomputed corner indices and fractional distances. Cells without
// a valid mapping receive NaN.
func sampleBilinear(values *sparse.DenseArray, info *BilinearInfo, area *AreaDef) *sparse.DenseArray {
	out := sparse.ZerosDense(area.Ny, area.Nx)
	for cell := range out.Elements {
		if !info.Valid[cell] {
			out.Elements[cell] = math.NaN()
			continue
		}
		c := info.Corners[cell]
		h, v := info.HDist[cell], info.VDist[cell]
		south := (1-h)*values.Elements[c[cornerSW]] + h*values.Elements[c[cornerSE]]
		north := (1-h)*values.Elements[c[cornerNW]] + h*values.Elements[c[cornerNE]]
		out.Elements[cell] = (1-v)*south + v*north
	}
	return out
}

// quadrant maps an offset from a cell center to a corner position.
func quadrant(dx, dy float64) int {
	switch {
	case dx <= 0 && dy <= 0:
		return cornerSW
	case dx > 0 && dy <= 0:
		return cornerSE
	case dx <= 0:
		return cornerNW
	default:
		return cornerNE
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
