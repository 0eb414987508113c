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
	"context"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/swathrepr"
	"github.com/spf13/cast"
)

// Reproject runs a reprojection request configured by cfg: it opens the
// input granule, resolves the target grid, resamples every science
// variable, and merges the results into a single output file.
func Reproject(cfg *viper.Viper) error {
	spec, err := gridSpecFromConfig(cfg)
	if err != nil {
		return err
	}
	if spec.InputFile == "" {
		return fmt.Errorf("swathrepr: no input file specified; use --InputFile or a message granule")
	}
	if _, err := os.Stat(spec.InputFile); err != nil {
		return fmt.Errorf("swathrepr: input file: %v", err)
	}
	outputPath := cfg.GetString("OutputFile")
	if outputPath == "" {
		outputPath = defaultOutputPath(spec.InputFile)
	}

	method, err := swathrepr.ParseMethod(spec.Interpolation)
	if err != nil {
		return err
	}
	logger.Infof("reprojecting %s with method %s", spec.InputFile, method)

	file, err := swathrepr.OpenFile(spec.InputFile)
	if err != nil {
		return err
	}
	defer file.Close()

	variables := file.ScienceVariables()
	if len(variables) == 0 {
		return swathrepr.ErrNoScienceVariables
	}
	swath, err := file.VariableSwath(variables[0])
	if err != nil {
		return fmt.Errorf("swathrepr: building swath for %s: %v", variables[0], err)
	}
	area, err := swathrepr.ResolveGridParams(spec, swath)
	if err != nil {
		return err
	}
	logger.Infof("target grid is %d x %d cells at (%g, %g) resolution",
		area.Ny, area.Nx, area.Dx, area.Dy)

	// The temporary directory holding the per-variable rasters is removed
	// whether or not the job succeeds.
	tempDir, err := ioutil.TempDir("", "swathrepr")
	if err != nil {
		return fmt.Errorf("swathrepr: creating temporary directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	job := swathrepr.NewJob(file, area, method, tempDir)
	job.Log = log.New(logger.Writer(), "", 0)
	succeeded, failed, err := job.Run(context.Background())
	for _, verr := range failed {
		logger.WithError(verr).Warnf("variable %s omitted from output", verr.Variable)
	}
	if err != nil {
		return err
	}

	if err := swathrepr.CreateOutput(file, outputPath, tempDir, succeeded, area); err != nil {
		return err
	}
	logger.Infof("wrote %d of %d variables to %s", len(succeeded), len(variables), outputPath)

	if cfg.GetBool("WriteGridShp") {
		dir, base := filepath.Split(outputPath)
		name := strings.TrimSuffix(base, filepath.Ext(base)) + "_grid"
		if dir == "" {
			dir = "."
		}
		if err := area.WriteShp(dir, name); err != nil {
			return fmt.Errorf("swathrepr: writing grid shapefile: %v", err)
		}
	}
	return nil
}

// gridSpecFromConfig builds a grid specification from the command-line
// and configuration-file options, then overlays the request message, if
// one was given, on top.
func gridSpecFromConfig(cfg *viper.Viper) (*swathrepr.GridSpec, error) {
	spec := &swathrepr.GridSpec{
		CRS:           cfg.GetString("CRS"),
		Interpolation: cfg.GetString("Interpolation"),
		InputFile:     cfg.GetString("InputFile"),
	}
	if extent := cfg.GetString("ScaleExtent"); extent != "" {
		vals, err := parseExtent(extent)
		if err != nil {
			return nil, err
		}
		spec.XMin, spec.YMin, spec.XMax, spec.YMax = &vals[0], &vals[1], &vals[2], &vals[3]
	}
	if xres := cfg.GetFloat64("XRes"); xres != 0 {
		spec.XRes = &xres
	}
	if yres := cfg.GetFloat64("YRes"); yres != 0 {
		spec.YRes = &yres
	}
	if width := cfg.GetInt("Width"); width != 0 {
		spec.Width = &width
	}
	if height := cfg.GetInt("Height"); height != 0 {
		spec.Height = &height
	}

	if msg := cfg.GetString("message"); msg != "" {
		m, err := ParseMessage([]byte(msg))
		if err != nil {
			return nil, err
		}
		m.Apply(spec)
	}
	return spec, nil
}

// parseExtent parses an 'xmin,ymin,xmax,ymax' extent string.
func parseExtent(s string) ([4]float64, error) {
	var vals [4]float64
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return vals, fmt.Errorf("swathrepr: extent %q must have the form xmin,ymin,xmax,ymax", s)
	}
	for i, p := range parts {
		v, err := cast.ToFloat64E(strings.TrimSpace(p))
		if err != nil {
			return vals, fmt.Errorf("swathrepr: parsing extent %q: %v", s, err)
		}
		vals[i] = v
	}
	return vals, nil
}

// defaultOutputPath places the merged output next to the input file with
// a '_repr' suffix.
func defaultOutputPath(inputFile string) string {
	ext := filepath.Ext(inputFile)
	return strings.TrimSuffix(inputFile, ext) + "_repr" + ext
}
