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

	"github.com/ctessum/sparse"
	"github.com/sirupsen/logrus"
)

// Analyzer compares a family of coarse-grid sample solutions against a
// fine-grid reference and estimates the empirical order of convergence.
type Analyzer struct {
	Config Config
	Eval   *Evaluator

	// Log receives progress and per-entry degradation messages. If nil,
	// the logrus standard logger is used.
	Log logrus.FieldLogger
}

// NewAnalyzer creates an Analyzer with the given configuration and the
// default expression evaluator.
func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{Config: cfg, Eval: NewEvaluator(nil)}
}

func (a *Analyzer) log() logrus.FieldLogger {
	if a.Log != nil {
		return a.Log
	}
	return logrus.StandardLogger()
}

// Level describes one sample grid in a convergence table.
type Level struct {
	File string

	// Sizes holds the cell counts of the spatial axes, y before x in 2-D.
	Sizes []int

	// Ratios holds the per-axis refinement ratios relative to the
	// reference grid, in the same order as Sizes.
	Ratios []int

	// Spacing holds the per-axis coordinate spacings, in the same order
	// as Sizes.
	Spacing []float64
}

// CellVolume returns the per-cell integration weight of the level: the
// product of the axis spacings.
func (l Level) CellVolume() float64 {
	v := 1.0
	for _, dx := range l.Spacing {
		v *= dx
	}
	return v
}

// Table holds the error and convergence-order series of a grid-refinement
// study.
type Table struct {
	// Dims are the spatial dimension names, y before x in 2-D.
	Dims []string

	// Norm is the error norm the table was computed with.
	Norm Norm

	// TimeDim is the name of the time dimension, or empty if the fields
	// were compared as static snapshots. TimeIndex and TimeValue give the
	// slice position and its coordinate value (TimeValue is NaN when the
	// time axis has no coordinate variable).
	TimeDim   string
	TimeIndex int
	TimeValue float64

	// Fields are the analyzed variable names or expressions, in request
	// order. Levels are the sample grids, in input order.
	Fields []string
	Levels []Level

	// Errors maps each field to its per-level error series. NaN marks an
	// entry whose field could not be resolved in that sample.
	Errors map[string][]float64

	// Orders maps each field to its pairwise convergence-order series.
	// Entry i compares levels i-1 and i; entry 0 is always undefined, and
	// NaN marks any undefined entry. For anisotropic 2-D refinement the
	// grid-spacing ratio is approximated by the arithmetic mean of the
	// per-axis ratios.
	Orders map[string][]float64
}

// ComputeTable compares each sample file against the reference file and
// returns the per-field error and convergence-order series.
//
// fields may be nil, in which case every non-coordinate variable of the
// reference is analyzed; expressions are only evaluated when explicitly
// requested. timeIndex == -1 selects the last index of the time axis, if
// one is detected. norm may be empty to use the configured default.
//
// Grid-compatibility and time-index validation failures abort the whole
// run; a field that cannot be resolved in one sample only degrades that
// entry to NaN.
func (a *Analyzer) ComputeTable(sampleFiles []string, refFile string, fields []string, timeIndex int, norm Norm) (*Table, error) {
	if norm == "" {
		norm = a.Config.DefaultNorm
	}
	if _, err := ParseNorm(string(norm)); err != nil {
		return nil, err
	}
	if len(sampleFiles) == 0 {
		return nil, fmt.Errorf("ncview: at least one sample file is required")
	}

	// Every dataset opened below is registered here and released on all
	// exit paths.
	var open []*Dataset
	defer func() {
		for _, d := range open {
			d.Close()
		}
	}()

	ref, err := OpenDataset(refFile)
	if err != nil {
		return nil, err
	}
	open = append(open, ref)

	timeDim, spatialDims, err := a.detectDims(ref)
	if err != nil {
		return nil, err
	}
	a.log().WithFields(logrus.Fields{"file": refFile, "spatial": strings.Join(spatialDims, ","), "time": timeDim}).
		Infof("grid type: %dD", len(spatialDims))

	refSizes := make([]int, len(spatialDims))
	for i, dim := range spatialDims {
		refSizes[i], _ = ref.DimLen(dim)
	}

	timeValue := math.NaN()
	if timeDim != "" {
		nT, _ := ref.DimLen(timeDim)
		if timeIndex < 0 {
			timeIndex = nT - 1
		} else if timeIndex >= nT {
			return nil, &TimeIndexOutOfRangeError{Index: timeIndex, Size: nT}
		}
		if coords, err := ref.Coord(timeDim); err == nil && timeIndex < len(coords) {
			timeValue = coords[timeIndex]
		}
	} else {
		timeIndex = -1
	}

	if fields == nil {
		fields = ref.DataVariables()
		// The time coordinate may be stored as a data variable when the
		// record dimension has no coordinate variable of its own name.
		fields = withoutName(fields, timeDim)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("ncview: no fields to analyze in %s", refFile)
	}

	// Validate every sample against the reference before touching any
	// field data, so an incompatible grid never yields a partial table.
	levels := make([]Level, 0, len(sampleFiles))
	samples := make([]*Dataset, 0, len(sampleFiles))
	for _, file := range sampleFiles {
		ds, err := OpenDataset(file)
		if err != nil {
			return nil, err
		}
		open = append(open, ds)
		samples = append(samples, ds)

		level := Level{File: file}
		for i, dim := range spatialDims {
			if !ds.HasDimension(dim) {
				return nil, &MissingDimensionError{File: file, Dim: dim}
			}
			n, _ := ds.DimLen(dim)
			r, err := RefinementRatio(dim, refSizes[i], n)
			if err != nil {
				return nil, err
			}
			dx, err := ds.Spacing(dim)
			if err != nil {
				return nil, err
			}
			level.Sizes = append(level.Sizes, n)
			level.Ratios = append(level.Ratios, r)
			level.Spacing = append(level.Spacing, dx)
		}
		a.log().WithFields(logrus.Fields{"file": file, "sizes": level.Sizes, "ratios": level.Ratios}).
			Info("✓ sample grid validated")
		levels = append(levels, level)
	}

	// Extract each reference field exactly once; it is reused across all
	// samples. A field that cannot be resolved in the reference is dropped
	// from the table entirely.
	refData := make(map[string]*sparse.DenseArray)
	var kept []string
	for _, field := range fields {
		arr, err := a.Eval.Eval(ref, field, timeDim, timeIndex)
		if err != nil {
			a.log().WithFields(logrus.Fields{"field": field, "file": refFile}).
				Warnf("✗ skipping field: %v", err)
			continue
		}
		refData[field] = arr
		kept = append(kept, field)
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("ncview: no valid fields to analyze in %s", refFile)
	}
	fields = kept

	errs := make(map[string][]float64, len(fields))
	for i, ds := range samples {
		for _, field := range fields {
			e, err := a.sampleError(ds, field, refData[field], levels[i], timeDim, timeIndex, norm)
			if err != nil {
				if _, fatal := err.(*UnsupportedShapeError); fatal {
					return nil, err
				}
				a.log().WithFields(logrus.Fields{"field": field, "file": ds.Path()}).
					Warnf("✗ entry degraded to NaN: %v", err)
				e = math.NaN()
			}
			errs[field] = append(errs[field], e)
		}
	}

	return &Table{
		Dims:      spatialDims,
		Norm:      norm,
		TimeDim:   timeDim,
		TimeIndex: timeIndex,
		TimeValue: timeValue,
		Fields:    fields,
		Levels:    levels,
		Errors:    errs,
		Orders:    pairwiseOrders(fields, levels, errs),
	}, nil
}

// sampleError extracts one field from one sample, projects the cached
// reference field onto the sample's grid, and computes the error between
// them.
func (a *Analyzer) sampleError(ds *Dataset, field string, refField *sparse.DenseArray, level Level, timeDim string, timeIndex int, norm Norm) (float64, error) {
	sampleField, err := a.Eval.Eval(ds, field, timeDim, timeIndex)
	if err != nil {
		return 0, err
	}
	projected, err := Coarsen(refField, level.Ratios)
	if err != nil {
		return 0, err
	}
	return Error(sampleField, projected, level.CellVolume(), norm)
}

// pairwiseOrders derives the convergence-order series from the error series.
// Entry i compares consecutive levels i-1 and i in input order; it is
// undefined (NaN) when either error is NaN, zero or negative, or when the
// two levels have the same resolution.
func pairwiseOrders(fields []string, levels []Level, errs map[string][]float64) map[string][]float64 {
	orders := make(map[string][]float64, len(fields))
	for _, field := range fields {
		e := errs[field]
		o := make([]float64, len(levels))
		o[0] = math.NaN()
		for i := 1; i < len(levels); i++ {
			o[i] = math.NaN()
			if math.IsNaN(e[i-1]) || math.IsNaN(e[i]) || e[i-1] <= 0 || e[i] <= 0 {
				continue
			}
			hRatio := resolutionRatio(levels[i-1], levels[i])
			if hRatio == 1 {
				continue
			}
			o[i] = math.Log(e[i-1]/e[i]) / math.Log(hRatio)
		}
		orders[field] = o
	}
	return orders
}

// resolutionRatio returns the ratio of grid resolutions between two levels:
// the cell count of b divided by that of a, averaged over the spatial axes
// in 2-D. Averaging is an approximation when the two axes refine by
// different factors.
func resolutionRatio(a, b Level) float64 {
	r := 0.
	for k := range a.Sizes {
		r += float64(b.Sizes[k]) / float64(a.Sizes[k])
	}
	return r / float64(len(a.Sizes))
}

// detectDims identifies the time dimension (declared record dimension
// first, then the configured name heuristics) and the spatial dimensions
// (y before x in 2-D) of a dataset.
func (a *Analyzer) detectDims(ds *Dataset) (timeDim string, spatialDims []string, err error) {
	timeDim, ok := ds.RecordDimension()
	if !ok {
		for _, name := range a.Config.TimeDimNames {
			if ds.HasDimension(name) {
				timeDim = name
				break
			}
		}
	}

	var xDim, yDim string
	for _, dim := range ds.Dimensions() {
		if dim == timeDim {
			continue
		}
		switch {
		case matchesName(dim, a.Config.XDimNames):
			xDim = dim
		case matchesName(dim, a.Config.YDimNames):
			yDim = dim
		}
	}
	switch {
	case xDim != "" && yDim == "":
		return timeDim, []string{xDim}, nil
	case xDim != "" && yDim != "":
		return timeDim, []string{yDim, xDim}, nil
	default:
		return "", nil, &NoSpatialDimensionError{File: ds.Path()}
	}
}

func matchesName(dim string, names []string) bool {
	for _, name := range names {
		if strings.EqualFold(dim, name) {
			return true
		}
	}
	return false
}

func withoutName(s []string, name string) []string {
	if name == "" {
		return s
	}
	var out []string
	for _, v := range s {
		if v != name {
			out = append(out, v)
		}
	}
	return out
}
