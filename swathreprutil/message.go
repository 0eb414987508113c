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

package swathreprutil

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spatialmodel/swathrepr"
)

// Message is a JSON reprojection request. All fields are optional;
// pointer fields distinguish absent parameters from zero values so that
// downstream grid resolution can tell the difference.
type Message struct {
	Format struct {
		CRS           *string `json:"crs"`
		Interpolation *string `json:"interpolation"`
		ScaleExtent   *struct {
			X struct {
				Min *float64 `json:"min"`
				Max *float64 `json:"max"`
			} `json:"x"`
			Y struct {
				Min *float64 `json:"min"`
				Max *float64 `json:"max"`
			} `json:"y"`
		} `json:"scaleExtent"`
		ScaleSize *struct {
			X *float64 `json:"x"`
			Y *float64 `json:"y"`
		} `json:"scaleSize"`
		Width  *int `json:"width"`
		Height *int `json:"height"`
	} `json:"format"`
	Sources []struct {
		Granules []struct {
			URL string `json:"url"`
		} `json:"granules"`
	} `json:"sources"`
}

// ParseMessage decodes a JSON reprojection request.
func ParseMessage(data []byte) (*Message, error) {
	m := new(Message)
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("swathrepr: parsing request message: %v", err)
	}
	return m, nil
}

// Granule returns the local path of the first granule in the message, or
// the empty string if the message names none. A 'file://' scheme prefix
// is stripped.
func (m *Message) Granule() string {
	for _, s := range m.Sources {
		for _, g := range s.Granules {
			if g.URL != "" {
				return strings.TrimPrefix(g.URL, "file://")
			}
		}
	}
	return ""
}

// Apply overlays the grid parameters given in the message onto g.
// Message parameters take precedence over whatever g already holds.
// ScaleSize gives cell sizes as positive magnitudes, so the y size is
// negated to the north-up convention.
func (m *Message) Apply(g *swathrepr.GridSpec) {
	if m.Format.CRS != nil {
		g.CRS = *m.Format.CRS
	}
	if m.Format.Interpolation != nil {
		g.Interpolation = *m.Format.Interpolation
	}
	if e := m.Format.ScaleExtent; e != nil {
		g.XMin, g.XMax = e.X.Min, e.X.Max
		g.YMin, g.YMax = e.Y.Min, e.Y.Max
	}
	if s := m.Format.ScaleSize; s != nil {
		g.XRes = s.X
		if s.Y != nil {
			yres := -*s.Y
			g.YRes = &yres
		}
	}
	if m.Format.Width != nil {
		g.Width = m.Format.Width
	}
	if m.Format.Height != nil {
		g.Height = m.Format.Height
	}
	if granule := m.Granule(); granule != "" {
		g.InputFile = granule
	}
}
