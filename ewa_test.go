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
	"testing"
)

func TestEWAInfoFractionalCells(t *testing.T) {
	// Cells are 1 degree; a sample at (1.5, 1.5) sits at the center of
	// cell (column 1, row 2) of a 4x4 grid over (0, 0, 4, 4).
	swath := makeSwath(t,
		[][]float64{{1.5, 2.5}},
		[][]float64{{1.5, 1.5}})
	area := testArea(t, 4, 4, 0, 0, 4, 4)

	info, err := computeEWAInfo(swath, area)
	if err != nil {
		t.Fatal(err)
	}
	if info.ScanRows != 1 || info.RowLen != 2 {
		t.Fatalf("swath layout = (%d, %d); want (1, 2)", info.ScanRows, info.RowLen)
	}
	if math.Abs(info.Cols[0]-1) > 1e-9 || math.Abs(info.Rows[0]-2) > 1e-9 {
		t.Errorf("sample 0 at fractional cell (%g, %g); want (1, 2)",
			info.Cols[0], info.Rows[0])
	}
}

func TestEWAWeightedVersusMaxWeight(t *testing.T) {
	// Two samples one cell apart. At the cell under sample B, weighted
	// mode blends in sample A with weight exp(-2) while maximum-weight
	// mode takes B's value outright.
	swath := makeSwath(t,
		[][]float64{{1.5, 2.5}},
		[][]float64{{1.5, 1.5}})
	area := testArea(t, 4, 4, 0, 0, 4, 4)
	values := makeDense([][]float64{{0, 10}})

	info, err := computeEWAInfo(swath, area)
	if err != nil {
		t.Fatal(err)
	}

	weighted := sampleEWA(values, info, area, false)
	wantBlend := 10 / (1 + math.Exp(-ewaAlpha))
	if got := weighted.Get(2, 2); math.Abs(got-wantBlend) > 1e-9 {
		t.Errorf("weighted cell (2, 2) = %g; want %g", got, wantBlend)
	}

	maxw := sampleEWA(values, info, area, true)
	if got := maxw.Get(2, 2); got != 10 {
		t.Errorf("max-weight cell (2, 2) = %g; want 10", got)
	}
}

func TestEWAUncoveredCellsAreNaN(t *testing.T) {
	swath := makeSwath(t,
		[][]float64{{1.5, 2.5}},
		[][]float64{{1.5, 1.5}})
	area := testArea(t, 4, 4, 0, 0, 4, 4)
	values := makeDense([][]float64{{0, 10}})

	info, err := computeEWAInfo(swath, area)
	if err != nil {
		t.Fatal(err)
	}
	for _, maxMode := range []bool{false, true} {
		out := sampleEWA(values, info, area, maxMode)
		if !math.IsNaN(out.Get(0, 0)) {
			t.Errorf("maxMode=%v: uncovered cell (0, 0) = %g; want NaN",
				maxMode, out.Get(0, 0))
		}
	}
}

func TestEWASkipsNaNValues(t *testing.T) {
	swath := makeSwath(t,
		[][]float64{{1.5, 2.5}},
		[][]float64{{1.5, 1.5}})
	area := testArea(t, 4, 4, 0, 0, 4, 4)
	values := makeDense([][]float64{{math.NaN(), 10}})

	info, err := computeEWAInfo(swath, area)
	if err != nil {
		t.Fatal(err)
	}
	out := sampleEWA(values, info, area, false)
	// The NaN sample contributes nothing, so B's cell is purely B.
	if got := out.Get(2, 2); got != 10 {
		t.Errorf("cell (2, 2) = %g; want 10", got)
	}
}
