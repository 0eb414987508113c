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

// ewaAlpha controls the Gaussian taper of the elliptical footprint
// weights.
const ewaAlpha = 2.0

// maxFootprintCells caps the footprint half axes, in target grid cells, so a
// single degenerate sample cannot flood the grid.
const maxFootprintCells = 10.0

// EWAInfo is the precomputed swath-to-grid mapping for elliptical
// weighted averaging: the fractional target grid column and row of every
// source sample, laid out per scan row. Samples that do not project are
// NaN.
type EWAInfo struct {
	Cols, Rows []float64
	// ScanRows and RowLen are the swath dimensions.
	ScanRows, RowLen int
}

// computeEWAInfo projects every swath sample into fractional target grid
// coordinates. Off-grid samples are kept; their footprints may still
// overlap the grid edge.
func computeEWAInfo(swath *Swath, area *AreaDef) (*EWAInfo, error) {
	xs, ys, err := swath.Project(area.SR)
	if err != nil {
		return nil, err
	}
	rows, cols := swath.Shape()
	info := &EWAInfo{
		Cols:     make([]float64, len(xs)),
		Rows:     make([]float64, len(xs)),
		ScanRows: rows,
		RowLen:   cols,
	}
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			info.Cols[i], info.Rows[i] = math.NaN(), math.NaN()
			continue
		}
		c, r, err := area.FractionalCell(xs[i], ys[i])
		if err != nil {
			return nil, err
		}
		info.Cols[i], info.Rows[i] = c, r
	}
	return info, nil
}

// footprintAxes estimates the half axes of the elliptical footprint of
// the sample at scan row r, column c, in target grid cells, from the
// spacing to the adjacent sample along the scan row and to the same
// column in the adjacent scan row.
func (info *EWAInfo) footprintAxes(r, c int) (ax, ay float64) {
	i := r*info.RowLen + c
	spacing := func(j int) (dc, dr float64, ok bool) {
		if j < 0 || j >= len(info.Cols) || math.IsNaN(info.Cols[j]) {
			return 0, 0, false
		}
		return info.Cols[j] - info.Cols[i], info.Rows[j] - info.Rows[i], true
	}

	ax, ay = 1, 1
	j := i + 1
	if c == info.RowLen-1 {
		j = i - 1
	}
	if dc, dr, ok := spacing(j); ok {
		ax = math.Max(ax, math.Hypot(dc, dr))
	}
	j = i + info.RowLen
	if r == info.ScanRows-1 {
		j = i - info.RowLen
	}
	if dc, dr, ok := spacing(j); ok {
		ay = math.Max(ay, math.Hypot(dc, dr))
	}
	return math.Min(ax, maxFootprintCells), math.Min(ay, maxFootprintCells)
}

// sampleEWA accumulates each source sample's elliptical footprint onto
// the target grid. In weighted mode each target cell becomes the
// weight-averaged value of all contributing samples; in maximum-weight
// mode it takes the single sample with the largest footprint weight,
// trading smoothing for sharper feature preservation. Cells with no
// contribution receive NaN.
func sampleEWA(values *sparse.DenseArray, info *EWAInfo, area *AreaDef, maximumWeightMode bool) *sparse.DenseArray {
	out := sparse.ZerosDense(area.Ny, area.Nx)
	weightSum := make([]float64, len(out.Elements))
	bestWeight := make([]float64, len(out.Elements))

	for r := 0; r < info.ScanRows; r++ {
		for c := 0; c < info.RowLen; c++ {
			i := r*info.RowLen + c
			cx, cy := info.Cols[i], info.Rows[i]
			v := values.Elements[i]
			if math.IsNaN(cx) || math.IsNaN(cy) || math.IsNaN(v) {
				continue
			}
			ax, ay := info.footprintAxes(r, c)

			colLo := int(math.Ceil(cx - ax))
			colHi := int(math.Floor(cx + ax))
			rowLo := int(math.Ceil(cy - ay))
			rowHi := int(math.Floor(cy + ay))
			if colLo < 0 {
				colLo = 0
			}
			if rowLo < 0 {
				rowLo = 0
			}
			if colHi >= area.Nx {
				colHi = area.Nx - 1
			}
			if rowHi >= area.Ny {
				rowHi = area.Ny - 1
			}

			for tr := rowLo; tr <= rowHi; tr++ {
				for tc := colLo; tc <= colHi; tc++ {
					du := (float64(tc) - cx) / ax
					dv := (float64(tr) - cy) / ay
					t := du*du + dv*dv
					if t > 1 {
						continue
					}
					w := math.Exp(-ewaAlpha * t)
					cell := tr*area.Nx + tc
					if maximumWeightMode {
						if w > bestWeight[cell] {
							bestWeight[cell] = w
							out.Elements[cell] = v
						}
						continue
					}
					out.Elements[cell] += w * v
					weightSum[cell] += w
				}
			}
		}
	}

	for cell := range out.Elements {
		if maximumWeightMode {
			if bestWeight[cell] == 0 {
				out.Elements[cell] = math.NaN()
			}
			continue
		}
		if weightSum[cell] == 0 {
			out.Elements[cell] = math.NaN()
			continue
		}
		out.Elements[cell] /= weightSum[cell]
	}
	return out
}
