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
	"context"
	"fmt"
	"log"
	"math"
	"path/filepath"
	"strings"

	"github.com/ctessum/sparse"
)

// Search parameters for reprojection information computation.
const (
	// RadiusOfInfluence is the maximum distance, in projected units,
	// beyond which a source sample cannot contribute to a target cell.
	RadiusOfInfluence = 50000.

	// Epsilon is the distance slack allowed when searching for nearby
	// source samples.
	Epsilon = 0.5

	// Neighbors is the number of candidate source samples considered for
	// each target cell during bilinear precomputation.
	Neighbors = 16
)

// InterpolationDefault is the resampling method used when a request does
// not specify one.
const InterpolationDefault = "ewa-nn"

// Method identifies one of the supported interpolation methods. The set
// of methods is closed and known at compile time.
type Method int

// The supported interpolation methods.
const (
	MethodBilinear Method = iota
	MethodEWA
	MethodEWANearest
	MethodNearest
)

// ParseMethod converts an interpolation method name from a request into a
// Method. The empty string yields the default method. Unrecognized names
// return an InvalidInterpolationError.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "":
		return ParseMethod(InterpolationDefault)
	case "bilinear":
		return MethodBilinear, nil
	case "ewa":
		return MethodEWA, nil
	case "ewa-nn":
		return MethodEWANearest, nil
	case "near":
		return MethodNearest, nil
	}
	return -1, &InvalidInterpolationError{Method: s}
}

func (m Method) String() string {
	switch m {
	case MethodBilinear:
		return "bilinear"
	case MethodEWA:
		return "ewa"
	case MethodEWANearest:
		return "ewa-nn"
	case MethodNearest:
		return "near"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// family returns the reprojection-information family shared by methods
// that use the same precomputed mapping.
func (m Method) family() string {
	switch m {
	case MethodEWA, MethodEWANearest:
		return "ewa"
	default:
		return m.String()
	}
}

// valid reports whether m is one of the supported methods.
func (m Method) valid() bool {
	return m >= MethodBilinear && m <= MethodNearest
}

// A Job resamples the science variables of one input granule onto a
// resolved target grid. The job owns a coordinate-mapping cache scoped to
// its own lifetime; nothing is shared between jobs.
type Job struct {
	File    *File
	Area    *AreaDef
	Method  Method
	TempDir string

	// Log receives progress and per-variable failure messages. If nil,
	// the standard logger is used.
	Log *log.Logger

	cache *MappingCache
}

// NewJob prepares a resampling job. Per-variable output rasters are
// written into tempDir; the caller owns tempDir and is responsible for
// cleaning it up on both success and failure.
func NewJob(file *File, area *AreaDef, method Method, tempDir string) *Job {
	return &Job{
		File:    file,
		Area:    area,
		Method:  method,
		TempDir: tempDir,
		cache:   NewMappingCache(),
	}
}

func (j *Job) logf(format string, args ...interface{}) {
	if j.Log != nil {
		j.Log.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

// VariableOutputPath returns the deterministic path of the temporary
// raster for the given variable identifier.
func VariableOutputPath(tempDir, variable, extension string) string {
	name := strings.Replace(strings.TrimPrefix(variable, "/"), "/", "_", -1)
	return filepath.Join(tempDir, name+"_repr"+extension)
}

// Run resamples every science variable in the input file, in order,
// writing one raster per variable. The requested method is validated
// before any variable is touched. A failure while processing a single
// variable is logged and recorded but does not stop the job; the variable
// is simply omitted from the succeeded list. Run returns
// ErrNoVariablesResampled if every variable fails.
func (j *Job) Run(ctx context.Context) (succeeded []string, failed []*VariableError, err error) {
	if !j.Method.valid() {
		return nil, nil, &InvalidInterpolationError{Method: j.Method.String()}
	}

	variables := j.File.ScienceVariables()
	if len(variables) == 0 {
		return nil, nil, ErrNoScienceVariables
	}
	j.logf("input file %s has %d science variables", j.File.Path, len(variables))

	for _, variable := range variables {
		outPath := VariableOutputPath(j.TempDir, variable, ".nc")
		if verr := j.resampleVariable(ctx, variable, outPath); verr != nil {
			j.logf("cannot reproject %s: %v", variable, verr)
			failed = append(failed, &VariableError{Variable: variable, Err: verr})
			continue
		}
		j.logf("reprojected %s to %s", variable, outPath)
		succeeded = append(succeeded, variable)
	}

	if len(succeeded) == 0 {
		return nil, failed, ErrNoVariablesResampled
	}
	return succeeded, failed, nil
}

// resampleVariable reprojects a single science variable and writes the
// result to outPath.
func (j *Job) resampleVariable(ctx context.Context, variable, outPath string) error {
	values, dtype, err := j.File.Values(variable)
	if err != nil {
		return err
	}
	swath, err := j.File.VariableSwath(variable)
	if err != nil {
		return err
	}
	srows, scols := swath.Shape()
	if len(values.Shape) != 2 || values.Shape[0] != srows || values.Shape[1] != scols {
		return fmt.Errorf("variable shape %v does not match swath shape (%d, %d)",
			values.Shape, srows, scols)
	}
	fill, hasFill := j.File.FillValue(variable)

	mapping, err := j.cache.Get(ctx, swath, j.Area, j.Method)
	if err != nil {
		return err
	}

	var grid *sparse.DenseArray
	switch j.Method {
	case MethodBilinear:
		grid = sampleBilinear(values, mapping.(*BilinearInfo), j.Area)
	case MethodEWA:
		grid = sampleEWA(values, mapping.(*EWAInfo), j.Area, false)
	case MethodEWANearest:
		grid = sampleEWA(values, mapping.(*EWAInfo), j.Area, true)
	case MethodNearest:
		grid = sampleNearest(values, mapping.(*NearestInfo), j.Area, fillOrNaN(fill, hasFill))
	}

	// Unmapped cells carry NaN internally; substitute the variable's own
	// fill value where one is declared.
	if hasFill {
		for i, v := range grid.Elements {
			if math.IsNaN(v) {
				grid.Elements[i] = fill
			}
		}
	}

	// EWA accumulates weighted averages, so its output is always
	// floating point regardless of the source type.
	if j.Method == MethodEWA || j.Method == MethodEWANearest {
		dtype = Float64
	}
	return WriteRaster(outPath, grid, j.Area, dtype, fillOrNaN(fill, hasFill))
}

func fillOrNaN(fill float64, ok bool) float64 {
	if ok {
		return fill
	}
	return math.NaN()
}
