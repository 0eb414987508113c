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

// Package swathrepr resamples irregularly gridded (swath) geophysical
// measurements onto a regular target grid.
//
// A reprojection job reads the science variables from a source NetCDF
// granule, derives a fully determined target grid from a partially
// specified request, resamples each variable with one of several
// interpolation methods (bilinear, elliptical weighted averaging in
// weighted-average or maximum-weight mode, or nearest neighbor), writes
// each result to its own single-band raster, and merges the results into
// one output file. Reprojection information is computed once per distinct
// source coordinate grid and reused for every variable that shares it,
// and the failure of a single variable does not abort the job.
package swathrepr
