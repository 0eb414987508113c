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

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// DataType identifies the storage type of a raster band.
type DataType int

// The supported raster band storage types.
const (
	Float64 DataType = iota
	Float32
	Int32
	Int16
	UInt8
)

// bandVariable is the variable name of the single band in a raster file.
const bandVariable = "Band1"

// defaultIntFill substitutes for unmapped cells when narrowing to an
// integer band without a declared fill value.
const defaultIntFill = -9999

// zeroValue returns a length-one slice of the storage type, used to
// declare the band variable's type in the file header.
func (d DataType) zeroValue() interface{} {
	switch d {
	case Float32:
		return []float32{0}
	case Int32:
		return []int32{0}
	case Int16:
		return []int16{0}
	case UInt8:
		return []uint8{0}
	}
	return []float64{0}
}

// convert narrows float64 elements to the storage type, substituting fill
// for NaN where the storage type cannot represent it.
func (d DataType) convert(elements []float64, fill float64) interface{} {
	intFill := fill
	if math.IsNaN(intFill) {
		intFill = defaultIntFill
	}
	switch d {
	case Float32:
		out := make([]float32, len(elements))
		for i, v := range elements {
			out[i] = float32(v)
		}
		return out
	case Int32:
		out := make([]int32, len(elements))
		for i, v := range elements {
			if math.IsNaN(v) {
				v = intFill
			}
			out[i] = int32(v)
		}
		return out
	case Int16:
		out := make([]int16, len(elements))
		for i, v := range elements {
			if math.IsNaN(v) {
				v = intFill
			}
			out[i] = int16(v)
		}
		return out
	case UInt8:
		out := make([]uint8, len(elements))
		for i, v := range elements {
			if math.IsNaN(v) {
				v = intFill
			}
			out[i] = uint8(v)
		}
		return out
	}
	out := make([]float64, len(elements))
	copy(out, elements)
	return out
}

// fillAttr returns the fill value as a length-one slice of the storage
// type, suitable for a _FillValue attribute.
func (d DataType) fillAttr(fill float64) interface{} {
	intFill := fill
	if math.IsNaN(intFill) {
		intFill = defaultIntFill
	}
	switch d {
	case Float32:
		return []float32{float32(fill)}
	case Int32:
		return []int32{int32(intFill)}
	case Int16:
		return []int16{int16(intFill)}
	case UInt8:
		return []uint8{uint8(intFill)}
	}
	return []float64{fill}
}

// WriteRaster serializes one resampled 2-D array to a single-band
// NetCDF-classic raster file whose band carries the target projection and
// affine geo-transform as attributes. Any underlying failure is wrapped
// in a RasterWriteError and is not retried.
func WriteRaster(path string, data *sparse.DenseArray, area *AreaDef, dtype DataType, fill float64) error {
	if len(data.Shape) != 2 {
		return &RasterWriteError{Path: path, Err: fmt.Errorf("array is not 2-D: shape %v", data.Shape)}
	}
	ny, nx := data.Shape[0], data.Shape[1]

	h := cdf.NewHeader([]string{"y", "x"}, []int{ny, nx})
	h.AddVariable(bandVariable, []string{"y", "x"}, dtype.zeroValue())
	h.AddAttribute(bandVariable, "_FillValue", dtype.fillAttr(fill))
	h.AddAttribute(bandVariable, "crs_proj4", area.ProjString)
	h.AddAttribute(bandVariable, "GeoTransform", area.Transform[:])
	h.Define()
	for _, err := range h.Check() {
		return &RasterWriteError{Path: path, Err: err}
	}

	ff, err := os.Create(path)
	if err != nil {
		return &RasterWriteError{Path: path, Err: err}
	}
	defer ff.Close()
	f, err := cdf.Create(ff, h)
	if err != nil {
		return &RasterWriteError{Path: path, Err: err}
	}
	w := f.Writer(bandVariable, []int{0, 0}, []int{ny, nx})
	if _, err := w.Write(dtype.convert(data.Elements, fill)); err != nil {
		return &RasterWriteError{Path: path, Err: err}
	}
	return nil
}

// ReadRaster reads back a single-band raster written by WriteRaster.
func ReadRaster(path string) (data *sparse.DenseArray, dtype DataType, fill float64, transform Affine, projString string, err error) {
	ff, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, Affine{}, "", fmt.Errorf("swathrepr: opening raster %s: %v", path, err)
	}
	defer ff.Close()
	f, err := cdf.Open(ff)
	if err != nil {
		return nil, 0, 0, Affine{}, "", fmt.Errorf("swathrepr: parsing raster %s: %v", path, err)
	}

	lengths := f.Header.Lengths(bandVariable)
	if len(lengths) != 2 {
		return nil, 0, 0, Affine{}, "", fmt.Errorf("swathrepr: raster %s band is not 2-D", path)
	}
	r := f.Reader(bandVariable, nil, nil)
	buf := r.Zero(-1)
	if _, err := r.Read(buf); err != nil {
		return nil, 0, 0, Affine{}, "", fmt.Errorf("swathrepr: reading raster %s: %v", path, err)
	}
	elems, dtype, err := toFloat64s(buf)
	if err != nil {
		return nil, 0, 0, Affine{}, "", fmt.Errorf("swathrepr: raster %s: %v", path, err)
	}
	data = sparse.ZerosDense(lengths...)
	copy(data.Elements, elems)

	fill, _ = numericAttr(f.Header.GetAttribute(bandVariable, "_FillValue"))
	projString, _ = f.Header.GetAttribute(bandVariable, "crs_proj4").(string)
	if gt, ok := f.Header.GetAttribute(bandVariable, "GeoTransform").([]float64); ok && len(gt) == 6 {
		copy(transform[:], gt)
	}
	return data, dtype, fill, transform, projString, nil
}
