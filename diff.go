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
	"strings"

	"github.com/sirupsen/logrus"
)

// DiffReport holds the per-field errors between two same-resolution files.
type DiffReport struct {
	File1, File2 string
	Dims         []string
	Sizes        []int
	Norm         Norm
	TimeDim      string
	TimeIndex    int
	Fields       []string
	Errors       map[string]float64
}

// CompareFiles computes the error between two files of identical spatial
// resolution, with no coarsening. Both files must carry the same spatial
// dimensions with equal sizes. fields, timeIndex and norm behave as in
// ComputeTable.
func (a *Analyzer) CompareFiles(file1, file2 string, fields []string, timeIndex int, norm Norm) (*DiffReport, error) {
	if norm == "" {
		norm = a.Config.DefaultNorm
	}
	if _, err := ParseNorm(string(norm)); err != nil {
		return nil, err
	}

	var open []*Dataset
	defer func() {
		for _, d := range open {
			d.Close()
		}
	}()

	ds1, err := OpenDataset(file1)
	if err != nil {
		return nil, err
	}
	open = append(open, ds1)
	ds2, err := OpenDataset(file2)
	if err != nil {
		return nil, err
	}
	open = append(open, ds2)

	timeDim, spatialDims, err := a.detectDims(ds1)
	if err != nil {
		return nil, err
	}

	sizes := make([]int, len(spatialDims))
	cellVolume := 1.0
	for i, dim := range spatialDims {
		if !ds2.HasDimension(dim) {
			return nil, &MissingDimensionError{File: file2, Dim: dim}
		}
		n1, _ := ds1.DimLen(dim)
		n2, _ := ds2.DimLen(dim)
		if n1 != n2 {
			return nil, &IncompatibleGridError{Dim: dim, NRef: n1, NSample: n2,
				Reason: "grids must have identical resolution for direct comparison"}
		}
		sizes[i] = n1
		dx, err := ds1.Spacing(dim)
		if err != nil {
			return nil, err
		}
		cellVolume *= dx
	}

	if timeDim != "" {
		nT, _ := ds1.DimLen(timeDim)
		if timeIndex < 0 {
			timeIndex = nT - 1
		} else if timeIndex >= nT {
			return nil, &TimeIndexOutOfRangeError{Index: timeIndex, Size: nT}
		}
	} else {
		timeIndex = -1
	}

	if fields == nil {
		fields = ds1.DataVariables()
		fields = withoutName(fields, timeDim)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("ncview: no fields to compare in %s", file1)
	}

	errs := make(map[string]float64, len(fields))
	for _, field := range fields {
		e, err := a.pairError(ds1, ds2, field, timeDim, timeIndex, cellVolume, norm)
		if err != nil {
			a.log().WithFields(logrus.Fields{"field": field}).
				Warnf("✗ entry degraded to NaN: %v", err)
			e = math.NaN()
		}
		errs[field] = e
	}

	return &DiffReport{
		File1: file1, File2: file2,
		Dims:  spatialDims,
		Sizes: sizes,
		Norm:  norm,
		TimeDim: timeDim, TimeIndex: timeIndex,
		Fields: fields,
		Errors: errs,
	}, nil
}

func (a *Analyzer) pairError(ds1, ds2 *Dataset, field, timeDim string, timeIndex int, cellVolume float64, norm Norm) (float64, error) {
	v1, err := a.Eval.Eval(ds1, field, timeDim, timeIndex)
	if err != nil {
		return 0, err
	}
	v2, err := a.Eval.Eval(ds2, field, timeDim, timeIndex)
	if err != nil {
		return 0, err
	}
	return Error(v1, v2, cellVolume, norm)
}

// Render formats the report as a two-column field/error listing.
func (r *DiffReport) Render() string {
	var b strings.Builder
	w := 5
	for _, field := range r.Fields {
		if len(field) > w {
			w = len(field)
		}
	}
	b.WriteString(fmt.Sprintf("%-*s %15s\n", w, "field", "error"))
	b.WriteString(strings.Repeat("-", w+16))
	b.WriteByte('\n')
	for _, field := range r.Fields {
		e := r.Errors[field]
		if math.IsNaN(e) {
			b.WriteString(fmt.Sprintf("%-*s %15s\n", w, field, "N/A"))
		} else {
			b.WriteString(fmt.Sprintf("%-*s %15.6e\n", w, field, e))
		}
	}
	return b.String()
}
