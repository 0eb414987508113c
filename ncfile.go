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
	"os"
	"strings"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// File provides access to the variables of a NetCDF source granule.
type File struct {
	Path string

	cdf *cdf.File
	f   *os.File

	science  []string
	metadata []string
}

// OpenFile opens a NetCDF granule and classifies its variables. Science
// variables carry a "coordinates" attribute referencing latitude and
// longitude variables; everything else that is not itself a coordinate is
// treated as metadata to be carried through to the merged output.
func OpenFile(path string) (*File, error) {
	ff, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("swathrepr: opening input file: %v", err)
	}
	cf, err := cdf.Open(ff)
	if err != nil {
		ff.Close()
		return nil, fmt.Errorf("swathrepr: parsing input file %s: %v", path, err)
	}
	f := &File{Path: path, cdf: cf, f: ff}
	for _, v := range cf.Header.Variables() {
		switch {
		case isCoordinateName(v):
			// Coordinate variables are carried implicitly by the grid.
		case f.coordinatesAttr(v) != "":
			f.science = append(f.science, v)
		default:
			f.metadata = append(f.metadata, v)
		}
	}
	return f, nil
}

// Close releases the underlying file handle.
func (f *File) Close() error { return f.f.Close() }

// ScienceVariables returns the resamplable variables, in file order.
func (f *File) ScienceVariables() []string { return f.science }

// MetadataVariables returns the variables that are copied unchanged into
// the merged output.
func (f *File) MetadataVariables() []string { return f.metadata }

// coordinatesAttr returns the value of a variable's "coordinates"
// attribute, or the empty string.
func (f *File) coordinatesAttr(v string) string {
	if s, ok := f.cdf.Header.GetAttribute(v, "coordinates").(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// CoordsKey resolves the coordinate key of a science variable from its
// coordinate attribute metadata.
func (f *File) CoordsKey(variable string) (CoordsKey, error) {
	names, err := f.coordinateNames(variable)
	if err != nil {
		return "", err
	}
	return NewCoordsKey(names...), nil
}

func (f *File) coordinateNames(variable string) ([]string, error) {
	attr := f.coordinatesAttr(variable)
	if attr == "" {
		return nil, fmt.Errorf("variable %s has no coordinates attribute", variable)
	}
	names := strings.Fields(attr)
	if len(names) < 2 {
		return nil, fmt.Errorf("variable %s has malformed coordinates attribute %q", variable, attr)
	}
	return names, nil
}

// VariableSwath builds the swath definition referenced by a science
// variable's coordinates attribute.
func (f *File) VariableSwath(variable string) (*Swath, error) {
	names, err := f.coordinateNames(variable)
	if err != nil {
		return nil, err
	}
	var latName, lonName string
	for _, name := range names {
		switch {
		case strings.Contains(name, "lat"):
			latName = name
		case strings.Contains(name, "lon"):
			lonName = name
		}
	}
	if latName == "" || lonName == "" {
		return nil, fmt.Errorf("variable %s: cannot identify latitude and longitude in coordinates %v",
			variable, names)
	}
	lats, _, err := f.Values(latName)
	if err != nil {
		return nil, err
	}
	lons, _, err := f.Values(lonName)
	if err != nil {
		return nil, err
	}
	return NewSwath(NewCoordsKey(names...), lons, lats)
}

// Values reads a variable's full contents as a 2-D dense array, promoting
// the stored type to float64, and reports the stored type.
func (f *File) Values(variable string) (*sparse.DenseArray, DataType, error) {
	lengths := f.cdf.Header.Lengths(variable)
	if len(lengths) != 2 {
		return nil, 0, fmt.Errorf("variable %s is not 2-D; dimensions are %v", variable, lengths)
	}
	r := f.cdf.Reader(variable, nil, nil)
	buf := r.Zero(-1)
	if _, err := r.Read(buf); err != nil {
		return nil, 0, fmt.Errorf("reading variable %s: %v", variable, err)
	}
	elems, dtype, err := toFloat64s(buf)
	if err != nil {
		return nil, 0, fmt.Errorf("variable %s: %v", variable, err)
	}
	data := sparse.ZerosDense(lengths...)
	copy(data.Elements, elems)
	return data, dtype, nil
}

// FillValue returns a variable's declared numeric fill value, if any.
func (f *File) FillValue(variable string) (float64, bool) {
	return numericAttr(f.cdf.Header.GetAttribute(variable, "_FillValue"))
}

// isCoordinateName reports whether a variable name identifies a
// geographic coordinate array.
func isCoordinateName(name string) bool {
	return strings.Contains(name, "lat") || strings.Contains(name, "lon")
}

// toFloat64s converts a typed NetCDF buffer to float64 values.
func toFloat64s(buf interface{}) ([]float64, DataType, error) {
	switch b := buf.(type) {
	case []float64:
		return b, Float64, nil
	case []float32:
		out := make([]float64, len(b))
		for i, v := range b {
			out[i] = float64(v)
		}
		return out, Float32, nil
	case []int32:
		out := make([]float64, len(b))
		for i, v := range b {
			out[i] = float64(v)
		}
		return out, Int32, nil
	case []int16:
		out := make([]float64, len(b))
		for i, v := range b {
			out[i] = float64(v)
		}
		return out, Int16, nil
	case []uint8:
		out := make([]float64, len(b))
		for i, v := range b {
			out[i] = float64(v)
		}
		return out, UInt8, nil
	}
	return nil, 0, fmt.Errorf("unsupported data type %T", buf)
}

// numericAttr extracts the first numeric value from an attribute, which
// the underlying reader returns as a typed slice.
func numericAttr(attr interface{}) (float64, bool) {
	switch a := attr.(type) {
	case []float64:
		if len(a) > 0 {
			return a[0], true
		}
	case []float32:
		if len(a) > 0 {
			return float64(a[0]), true
		}
	case []int32:
		if len(a) > 0 {
			return float64(a[0]), true
		}
	case []int16:
		if len(a) > 0 {
			return float64(a[0]), true
		}
	case []uint8:
		if len(a) > 0 {
			return float64(a[0]), true
		}
	}
	return math.NaN(), false
}
