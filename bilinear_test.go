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

	"github.com/stretchr/testify/assert"
)

// gridded3x3 is a regular 3x3 swath over (0, 0, 10, 10) with 5-degree
// spacing.
func gridded3x3(t *testing.T) *Swath {
	return makeSwath(t,
		[][]float64{{0, 5, 10}, {0, 5, 10}, {0, 5, 10}},
		[][]float64{{0, 0, 0}, {5, 5, 5}, {10, 10, 10}})
}

func TestQuadrant(t *testing.T) {
	assert.Equal(t, cornerSW, quadrant(-1, -1))
	assert.Equal(t, cornerSE, quadrant(1, -1))
	assert.Equal(t, cornerNW, quadrant(-1, 1))
	assert.Equal(t, cornerNE, quadrant(1, 1))
}

func TestBilinearExactOnLinearField(t *testing.T) {
	// Bilinear interpolation reproduces a linear field exactly. The
	// field is f = lon + lat sampled on a regular swath; the single
	// target cell center is at (2.5, 2.5), so f there is 5.
	swath := gridded3x3(t)
	area := testArea(t, 1, 1, 0, 0, 5, 5)
	values := makeDense([][]float64{{0, 5, 10}, {5, 10, 15}, {10, 15, 20}})

	info, err := computeBilinearInfo(swath, area)
	if err != nil {
		t.Fatal(err)
	}
	if !info.Valid[0] {
		t.Fatal("cell bracketed by samples should have a valid mapping")
	}
	assert.InDelta(t, 0.5, info.HDist[0], 1e-9)
	assert.InDelta(t, 0.5, info.VDist[0], 1e-9)

	out := sampleBilinear(values, info, area)
	assert.InDelta(t, 5.0, out.Get(0, 0), 1e-9)
}

func TestBilinearMissingCorner(t *testing.T) {
	// A target cell outside the swath footprint lacks bracketing corners
	// in at least one quadrant and maps to NaN.
	swath := gridded3x3(t)
	area := testArea(t, 1, 1, 100, 100, 105, 105)

	info, err := computeBilinearInfo(swath, area)
	if err != nil {
		t.Fatal(err)
	}
	if info.Valid[0] {
		t.Fatal("cell far outside the swath should have no valid mapping")
	}
	out := sampleBilinear(makeDense([][]float64{{0, 5, 10}, {5, 10, 15}, {10, 15, 20}}), info, area)
	if !math.IsNaN(out.Get(0, 0)) {
		t.Errorf("unmapped cell = %g; want NaN", out.Get(0, 0))
	}
}

func TestBilinearFractionsClamped(t *testing.T) {
	swath := gridded3x3(t)
	area := testArea(t, 2, 2, 0, 0, 10, 10)
	info, err := computeBilinearInfo(swath, area)
	if err != nil {
		t.Fatal(err)
	}
	for cell := range info.Valid {
		if !info.Valid[cell] {
			continue
		}
		h, v := info.HDist[cell], info.VDist[cell]
		if h < 0 || h > 1 || v < 0 || v > 1 {
			t.Errorf("cell %d fractions (%g, %g) outside [0, 1]", cell, h, v)
		}
	}
}
