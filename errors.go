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
	"errors"
	"fmt"
)

// Fatal pre-flight and post-flight job errors.
var (
	// ErrConflictingGridSpec means both a grid resolution and grid pixel
	// dimensions were requested, over-determining the target grid.
	ErrConflictingGridSpec = errors.New("swathrepr: resolution and width/height cannot be specified at the same time")

	// ErrIncompleteExtent means only part of the extent, or only one of
	// width and height, was specified.
	ErrIncompleteExtent = errors.New("swathrepr: incomplete extent or pixel size specification")

	// ErrExtentOrder means the requested extent is inverted, for example a
	// geographic extent crossing the antimeridian, which is unsupported.
	ErrExtentOrder = errors.New("swathrepr: extent minimum must be less than maximum; wrapped extents are unsupported")

	// ErrNoScienceVariables means the input file contains no variables
	// that can be resampled.
	ErrNoScienceVariables = errors.New("swathrepr: no science variables found in input file")

	// ErrNoVariablesResampled means every science variable failed to
	// resample; this is distinct from the input containing no variables.
	ErrNoVariablesResampled = errors.New("swathrepr: no variables could be resampled")
)

// InvalidInterpolationError is returned before any variable processing
// begins when the requested interpolation method is not recognized.
type InvalidInterpolationError struct {
	Method string
}

func (e *InvalidInterpolationError) Error() string {
	return fmt.Sprintf("swathrepr: invalid interpolation method %q; must be one of %q, %q, %q, %q",
		e.Method, "bilinear", "ewa", "ewa-nn", "near")
}

// RasterWriteError wraps a failure to serialize a resampled grid to a
// raster file. It is not retried; it propagates to the dispatcher's
// per-variable failure handling.
type RasterWriteError struct {
	Path string
	Err  error
}

func (e *RasterWriteError) Error() string {
	return fmt.Sprintf("swathrepr: writing raster %s: %v", e.Path, e.Err)
}

func (e *RasterWriteError) Unwrap() error { return e.Err }

// VariableError records the failure of a single variable during
// resampling. Variable failures are recoverable: the dispatcher logs them
// and continues with the next variable.
type VariableError struct {
	Variable string
	Err      error
}

func (e *VariableError) Error() string {
	return fmt.Sprintf("swathrepr: resampling %s: %v", e.Variable, e.Err)
}

func (e *VariableError) Unwrap() error { return e.Err }
