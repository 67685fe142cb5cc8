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

package ncview

import "fmt"

// IncompatibleGridError indicates that a sample grid cannot be aligned with
// the reference grid: the sample is not strictly coarser, or the reference
// size is not an exact multiple of the sample size. It aborts the whole
// analysis.
type IncompatibleGridError struct {
	Dim          string
	NRef, NSample int
	Reason       string
}

func (e *IncompatibleGridError) Error() string {
	return fmt.Sprintf("ncview: incompatible grid for dimension %s (reference=%d, sample=%d): %s",
		e.Dim, e.NRef, e.NSample, e.Reason)
}

// InvalidRefinementError indicates a refinement ratio that is not a positive
// whole number.
type InvalidRefinementError struct {
	Ratio float64
}

func (e *InvalidRefinementError) Error() string {
	return fmt.Sprintf("ncview: invalid refinement ratio %g: must be a positive whole number", e.Ratio)
}

// UnsupportedShapeError indicates a field of a rank that coarsening does not
// support.
type UnsupportedShapeError struct {
	Shape []int
}

func (e *UnsupportedShapeError) Error() string {
	return fmt.Sprintf("ncview: unsupported field shape %v: only rank 1 and 2 fields can be coarsened", e.Shape)
}

// UnsupportedNormError indicates an unrecognized error-norm token.
type UnsupportedNormError struct {
	Norm string
}

func (e *UnsupportedNormError) Error() string {
	return fmt.Sprintf("ncview: unsupported norm %q: must be one of '1', '2' or 'inf'", e.Norm)
}

// NoSpatialDimensionError indicates that a dataset has no recognizable
// spatial dimensions.
type NoSpatialDimensionError struct {
	File string
}

func (e *NoSpatialDimensionError) Error() string {
	return fmt.Sprintf("ncview: could not detect spatial dimensions in %s", e.File)
}

// MissingDimensionError indicates that a sample file is missing a spatial
// dimension that the reference file has.
type MissingDimensionError struct {
	File string
	Dim  string
}

func (e *MissingDimensionError) Error() string {
	return fmt.Sprintf("ncview: file %s is missing dimension %q", e.File, e.Dim)
}

// TimeIndexOutOfRangeError indicates a requested time index outside the
// dataset's time axis.
type TimeIndexOutOfRangeError struct {
	Index, Size int
}

func (e *TimeIndexOutOfRangeError) Error() string {
	return fmt.Sprintf("ncview: time index %d out of range [0, %d]", e.Index, e.Size-1)
}

// UnresolvableFieldError indicates that a variable or expression could not
// be resolved against a dataset. During convergence analysis this degrades
// a single (sample, field) entry to NaN instead of aborting the run.
type UnresolvableFieldError struct {
	Field string
	File  string
	Err   error
}

func (e *UnresolvableFieldError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("ncview: cannot resolve %q in %s", e.Field, e.File)
	}
	return fmt.Sprintf("ncview: cannot resolve %q in %s: %v", e.Field, e.File, e.Err)
}

func (e *UnresolvableFieldError) Unwrap() error { return e.Err }
