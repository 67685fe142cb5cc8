/*
Copyright © 2024 the NCView authors.
This file is part of NCView.

NCView is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

NCView is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with NCView.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package ncview explores gridded scientific simulation output stored in
// NetCDF (classic CDF) files: structure inspection, statistics, two-file
// comparison, and empirical convergence-order analysis across a family of
// grid refinements.
package ncview

// Version gives the version number.
const Version = "1.1.0"

// Config holds the heuristics and defaults used when interpreting datasets.
// The zero value is not useful; start from DefaultConfig.
type Config struct {
	// TimeDimNames are the dimension names that are recognized as a time
	// axis when the dataset does not declare a record dimension. They are
	// tried in order.
	TimeDimNames []string

	// XDimNames and YDimNames are the dimension names that are recognized
	// as horizontal spatial axes. Matching is case-insensitive.
	XDimNames []string
	YDimNames []string

	// DefaultNorm is the error norm used when none is requested.
	DefaultNorm Norm
}

// DefaultConfig returns the default dataset-interpretation heuristics.
func DefaultConfig() Config {
	return Config{
		TimeDimNames: []string{"time", "t", "iter"},
		XDimNames:    []string{"x", "lon", "longitude"},
		YDimNames:    []string{"y", "lat", "latitude"},
		DefaultNorm:  NormL1,
	}
}
