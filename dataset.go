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

import (
	"fmt"
	"math"
	"os"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// Dataset is a scoped handle to an open NetCDF file. The caller that opens a
// Dataset owns its lifetime and must Close it.
type Dataset struct {
	path string
	f    *os.File
	cf   *cdf.File
	size int64
}

// OpenDataset opens the NetCDF file at path for reading.
func OpenDataset(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("ncview: file not found: %s", path)
		}
		return nil, fmt.Errorf("ncview: opening %s: %v", path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("ncview: opening %s: %v", path, err)
	}
	cf, err := cdf.Open(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("ncview: reading %s: %v", path, err)
	}
	return &Dataset{path: path, f: f, cf: cf, size: fi.Size()}, nil
}

// Close releases the underlying file handle.
func (d *Dataset) Close() error { return d.f.Close() }

// Path returns the path the dataset was opened from.
func (d *Dataset) Path() string { return d.path }

// Dimensions returns the names of all dimensions in the dataset.
func (d *Dataset) Dimensions() []string { return d.cf.Header.Dimensions("") }

// HasDimension reports whether the dataset has a dimension named dim.
func (d *Dataset) HasDimension(dim string) bool {
	for _, name := range d.cf.Header.Dimensions("") {
		if name == dim {
			return true
		}
	}
	return false
}

// DimLen returns the length of the named dimension. For the record
// dimension, the length is the number of records currently in the file.
func (d *Dataset) DimLen(dim string) (int, bool) {
	names := d.cf.Header.Dimensions("")
	lengths := d.cf.Header.Lengths("")
	for i, name := range names {
		if name != dim {
			continue
		}
		if lengths[i] == 0 {
			return int(d.cf.Header.NumRecs(d.size)), true
		}
		return lengths[i], true
	}
	return 0, false
}

// RecordDimension returns the name of the dataset's declared record
// (unlimited) dimension, if it has one.
func (d *Dataset) RecordDimension() (string, bool) {
	names := d.cf.Header.Dimensions("")
	lengths := d.cf.Header.Lengths("")
	for i, name := range names {
		if lengths[i] == 0 {
			return name, true
		}
	}
	return "", false
}

// Variables returns the names of all variables in the dataset, including
// coordinate variables.
func (d *Dataset) Variables() []string { return d.cf.Header.Variables() }

// DataVariables returns the names of the non-coordinate variables: those
// whose name does not match a dimension name.
func (d *Dataset) DataVariables() []string {
	var out []string
	for _, v := range d.cf.Header.Variables() {
		if !d.HasDimension(v) {
			out = append(out, v)
		}
	}
	return out
}

// HasVariable reports whether the dataset contains a variable named v.
func (d *Dataset) HasVariable(v string) bool {
	return d.cf.Header.Lengths(v) != nil
}

// VarDims returns the dimension names of variable v, or nil if v does not
// exist.
func (d *Dataset) VarDims(v string) []string { return d.cf.Header.Dimensions(v) }

// VarShape returns the lengths of the dimensions of variable v, with the
// record dimension resolved to the current number of records.
func (d *Dataset) VarShape(v string) []int {
	lengths := d.cf.Header.Lengths(v)
	if lengths == nil {
		return nil
	}
	shape := make([]int, len(lengths))
	copy(shape, lengths)
	if d.cf.Header.IsRecordVariable(v) {
		shape[0] = int(d.cf.Header.NumRecs(d.size))
	}
	return shape
}

// Attributes returns the attribute names of variable v, or the global
// attributes if v is empty.
func (d *Dataset) Attributes(v string) []string { return d.cf.Header.Attributes(v) }

// Attribute returns the value of attribute a of variable v (global if v is
// empty), or nil if it does not exist.
func (d *Dataset) Attribute(v, a string) interface{} { return d.cf.Header.GetAttribute(v, a) }

// Coord returns the values of the coordinate variable associated with the
// named dimension. If the dimension has no coordinate variable, Coord
// returns nil and no error.
func (d *Dataset) Coord(dim string) ([]float64, error) {
	if !d.HasVariable(dim) {
		return nil, nil
	}
	arr, err := d.ReadVar(dim)
	if err != nil {
		return nil, err
	}
	return arr.Elements, nil
}

// Spacing returns the element spacing of the named dimension, derived from
// the first two coordinate values. It is 1.0 when the dimension has fewer
// than two points or no coordinate variable.
func (d *Dataset) Spacing(dim string) (float64, error) {
	coords, err := d.Coord(dim)
	if err != nil {
		return 0, err
	}
	if len(coords) < 2 {
		return 1.0, nil
	}
	return math.Abs(coords[1] - coords[0]), nil
}

// ReadVar reads the full contents of variable v as a float64 dense array.
func (d *Dataset) ReadVar(v string) (*sparse.DenseArray, error) {
	shape := d.VarShape(v)
	if shape == nil {
		return nil, &UnresolvableFieldError{Field: v, File: d.path}
	}
	n := 1
	for _, l := range shape {
		n *= l
	}
	if d.cf.Header.IsRecordVariable(v) {
		// The default (nil) end corner is undefined for record variables.
		begin := make([]int, len(shape))
		end := make([]int, len(shape))
		end[0] = shape[0]
		return d.read(v, begin, end, n, shape)
	}
	return d.read(v, nil, nil, n, shape)
}

// ReadVarAt reads variable v with the named time dimension pinned to index t.
// If v does not carry the time dimension (or timeDim is empty), the whole
// variable is read. The time axis is dropped from the result shape.
func (d *Dataset) ReadVarAt(v, timeDim string, t int) (*sparse.DenseArray, error) {
	dims := d.VarDims(v)
	if dims == nil {
		return nil, &UnresolvableFieldError{Field: v, File: d.path}
	}
	timeAxis := -1
	for i, dim := range dims {
		if timeDim != "" && dim == timeDim {
			timeAxis = i
			break
		}
	}
	if timeAxis < 0 {
		return d.ReadVar(v)
	}
	shape := d.VarShape(v)
	if t < 0 || t >= shape[timeAxis] {
		return nil, &TimeIndexOutOfRangeError{Index: t, Size: shape[timeAxis]}
	}
	if timeAxis == 0 {
		// One record is a contiguous slab; read it directly.
		n := 1
		outShape := shape[1:]
		for _, l := range outShape {
			n *= l
		}
		if len(outShape) == 0 {
			outShape = []int{1}
		}
		begin := make([]int, len(shape))
		end := make([]int, len(shape))
		begin[0], end[0] = t, t+1
		return d.read(v, begin, end, n, outShape)
	}
	// An inner time axis is not contiguous on disk; read everything and
	// slice in memory.
	full, err := d.ReadVar(v)
	if err != nil {
		return nil, err
	}
	return sliceAxis(full, timeAxis, t), nil
}

// read extracts n elements of variable v starting at the corner begin and
// bounded by the corner end (both in the flat row-major sense used by cdf)
// into a dense array of the given shape.
func (d *Dataset) read(v string, begin, end []int, n int, shape []int) (*sparse.DenseArray, error) {
	r := d.cf.Reader(v, begin, end)
	if r == nil {
		return nil, &UnresolvableFieldError{Field: v, File: d.path}
	}
	buf := r.Zero(n)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("ncview: reading variable %s from %s: %v", v, d.path, err)
	}
	vals, err := toFloat64(buf)
	if err != nil {
		return nil, fmt.Errorf("ncview: variable %s in %s: %v", v, d.path, err)
	}
	arr := sparse.ZerosDense(shape...)
	copy(arr.Elements, vals)
	return arr, nil
}

// sliceAxis extracts the idx'th hyperplane of arr along the given axis,
// dropping that axis from the shape.
func sliceAxis(arr *sparse.DenseArray, axis, idx int) *sparse.DenseArray {
	var outShape []int
	for i, n := range arr.Shape {
		if i != axis {
			outShape = append(outShape, n)
		}
	}
	if len(outShape) == 0 {
		outShape = []int{1}
	}
	out := sparse.ZerosDense(outShape...)

	// Row-major strides of the input.
	strides := make([]int, len(arr.Shape))
	s := 1
	for i := len(arr.Shape) - 1; i >= 0; i-- {
		strides[i] = s
		s *= arr.Shape[i]
	}

	index := make([]int, len(arr.Shape))
	index[axis] = idx
	for j := range out.Elements {
		// Decompose j into the input index, skipping the pinned axis.
		rem := j
		for i := len(arr.Shape) - 1; i >= 0; i-- {
			if i == axis {
				continue
			}
			index[i] = rem % arr.Shape[i]
			rem /= arr.Shape[i]
		}
		flat := 0
		for i, ix := range index {
			flat += ix * strides[i]
		}
		out.Elements[j] = arr.Elements[flat]
	}
	return out
}

// toFloat64 converts a buffer returned by a cdf Reader to float64 values.
func toFloat64(buf interface{}) ([]float64, error) {
	switch b := buf.(type) {
	case []float64:
		return b, nil
	case []float32:
		out := make([]float64, len(b))
		for i, v := range b {
			out[i] = float64(v)
		}
		return out, nil
	case []int32:
		out := make([]float64, len(b))
		for i, v := range b {
			out[i] = float64(v)
		}
		return out, nil
	case []int16:
		out := make([]float64, len(b))
		for i, v := range b {
			out[i] = float64(v)
		}
		return out, nil
	case []uint8:
		out := make([]float64, len(b))
		for i, v := range b {
			out[i] = float64(v)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("non-numeric data type %T", buf)
	}
}
