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
	"strings"

	"github.com/GaryBoone/GoStats/stats"
)

// Info returns a structural description of the dataset: dimensions (the
// record dimension flagged), variables with their shapes, and global
// attributes.
func Info(ds *Dataset) string {
	var b strings.Builder
	fmt.Fprintf(&b, "File: %s\n", ds.Path())

	recDim, _ := ds.RecordDimension()
	fmt.Fprintf(&b, "\nDimensions (%d):\n", len(ds.Dimensions()))
	for _, dim := range ds.Dimensions() {
		n, _ := ds.DimLen(dim)
		if dim == recDim {
			fmt.Fprintf(&b, "  %s = %d (record)\n", dim, n)
		} else {
			fmt.Fprintf(&b, "  %s = %d\n", dim, n)
		}
	}

	fmt.Fprintf(&b, "\nVariables (%d):\n", len(ds.Variables()))
	for _, v := range ds.Variables() {
		fmt.Fprintf(&b, "  %s(%s) shape=%v\n", v, strings.Join(ds.VarDims(v), ", "), ds.VarShape(v))
	}

	if attrs := ds.Attributes(""); len(attrs) > 0 {
		fmt.Fprintf(&b, "\nGlobal attributes (%d):\n", len(attrs))
		for _, a := range attrs {
			fmt.Fprintf(&b, "  %s = %v\n", a, ds.Attribute("", a))
		}
	}
	return b.String()
}

// Dims returns a listing of the dataset's dimensions and sizes.
func Dims(ds *Dataset) string {
	var b strings.Builder
	recDim, _ := ds.RecordDimension()
	for _, dim := range ds.Dimensions() {
		n, _ := ds.DimLen(dim)
		if dim == recDim {
			fmt.Fprintf(&b, "%s = %d (record)\n", dim, n)
		} else {
			fmt.Fprintf(&b, "%s = %d\n", dim, n)
		}
	}
	return b.String()
}

// Vars returns a listing of the dataset's variables with their dimensions
// and attributes.
func Vars(ds *Dataset) string {
	var b strings.Builder
	for _, v := range ds.Variables() {
		fmt.Fprintf(&b, "%s(%s)\n", v, strings.Join(ds.VarDims(v), ", "))
		for _, a := range ds.Attributes(v) {
			fmt.Fprintf(&b, "  %s = %v\n", a, ds.Attribute(v, a))
		}
	}
	return b.String()
}

// Summary returns a statistical summary (count, min, max, mean, standard
// deviation) of the named variable, or of every non-coordinate variable when
// varName is empty.
func Summary(ds *Dataset, varName string) (string, error) {
	var names []string
	if varName != "" {
		if !ds.HasVariable(varName) {
			return "", &UnresolvableFieldError{Field: varName, File: ds.Path()}
		}
		names = []string{varName}
	} else {
		names = ds.DataVariables()
	}
	if len(names) == 0 {
		return "", fmt.Errorf("ncview: no variables to summarize in %s", ds.Path())
	}

	w := 8
	for _, v := range names {
		if len(v) > w {
			w = len(v)
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-*s %10s %15s %15s %15s %15s\n", w, "variable", "count", "min", "max", "mean", "stdev")
	b.WriteString(strings.Repeat("-", w+10+4*15+5))
	b.WriteByte('\n')
	for _, v := range names {
		arr, err := ds.ReadVar(v)
		if err != nil {
			return "", err
		}
		var d stats.Stats
		d.UpdateArray(arr.Elements)
		if d.Count() < 2 {
			fmt.Fprintf(&b, "%-*s %10d %15.6e %15.6e %15.6e %15s\n",
				w, v, d.Count(), d.Min(), d.Max(), d.Mean(), "N/A")
			continue
		}
		fmt.Fprintf(&b, "%-*s %10d %15.6e %15.6e %15.6e %15.6e\n",
			w, v, d.Count(), d.Min(), d.Max(), d.Mean(), d.SampleStandardDeviation())
	}
	return b.String(), nil
}
