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
	"testing"

	"github.com/lnashier/viper"
)

func TestParseExtent(t *testing.T) {
	vals, err := parseExtent("-20, -10, 20, 10")
	if err != nil {
		t.Fatal(err)
	}
	want := [4]float64{-20, -10, 20, 10}
	if vals != want {
		t.Errorf("parseExtent = %v; want %v", vals, want)
	}

	for _, bad := range []string{"", "1,2,3", "a,b,c,d", "1,2,3,4,5"} {
		if _, err := parseExtent(bad); err == nil {
			t.Errorf("parseExtent(%q) should fail", bad)
		}
	}
}

func TestDefaultOutputPath(t *testing.T) {
	cases := []struct{ in, want string }{
		{"/data/granule.nc", "/data/granule_repr.nc"},
		{"granule.nc", "granule_repr.nc"},
		{"granule", "granule_repr"},
	}
	for _, c := range cases {
		if got := defaultOutputPath(c.in); got != c.want {
			t.Errorf("defaultOutputPath(%q) = %q; want %q", c.in, got, c.want)
		}
	}
}

func TestGridSpecFromConfig(t *testing.T) {
	cfg := viper.New()
	cfg.Set("CRS", "+proj=merc")
	cfg.Set("Interpolation", "near")
	cfg.Set("InputFile", "in.nc")
	cfg.Set("ScaleExtent", "0,0,10,10")
	cfg.Set("XRes", 0.5)
	cfg.Set("YRes", -0.5)

	spec, err := gridSpecFromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if spec.CRS != "+proj=merc" || spec.Interpolation != "near" || spec.InputFile != "in.nc" {
		t.Errorf("spec = %+v", spec)
	}
	if spec.XMin == nil || *spec.XMin != 0 || spec.XMax == nil || *spec.XMax != 10 {
		t.Errorf("x extent = (%v, %v)", spec.XMin, spec.XMax)
	}
	if spec.XRes == nil || *spec.XRes != 0.5 || spec.YRes == nil || *spec.YRes != -0.5 {
		t.Errorf("resolution = (%v, %v)", spec.XRes, spec.YRes)
	}
	if spec.Width != nil || spec.Height != nil {
		t.Error("unset pixel dimensions should stay nil")
	}
}

func TestGridSpecFromConfigUnset(t *testing.T) {
	spec, err := gridSpecFromConfig(viper.New())
	if err != nil {
		t.Fatal(err)
	}
	// Zero-valued options mean unspecified, leaving derivation to the
	// grid parameter resolver.
	if spec.XMin != nil || spec.XRes != nil || spec.Width != nil {
		t.Errorf("spec = %+v; want all grid parameters nil", spec)
	}
	if spec.CRS != "" || spec.Interpolation != "" {
		t.Errorf("spec = %+v; want empty CRS and interpolation", spec)
	}
}

func TestGridSpecFromConfigMessageOverrides(t *testing.T) {
	cfg := viper.New()
	cfg.Set("CRS", "+proj=merc")
	cfg.Set("InputFile", "cli.nc")
	cfg.Set("message", `{"format": {"crs": "+proj=longlat +ellps=WGS84"}}`)

	spec, err := gridSpecFromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if spec.CRS != "+proj=longlat +ellps=WGS84" {
		t.Errorf("CRS = %q; message should override the flag", spec.CRS)
	}
	if spec.InputFile != "cli.nc" {
		t.Errorf("InputFile = %q; a message without granules should not clear it", spec.InputFile)
	}
}
