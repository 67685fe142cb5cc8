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

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Snapshot1D renders the given fields of a 1-D dataset at one time index as
// a line plot and saves it to output (the format follows the file
// extension, e.g. .png or .pdf).
func (a *Analyzer) Snapshot1D(file string, fields []string, timeIndex int, output string) error {
	ds, err := OpenDataset(file)
	if err != nil {
		return err
	}
	defer ds.Close()

	timeDim, spatialDims, err := a.detectDims(ds)
	if err != nil {
		return err
	}
	if len(spatialDims) != 1 {
		return fmt.Errorf("ncview: snapshot plotting requires a 1-D grid, but %s is %d-D",
			file, len(spatialDims))
	}
	xDim := spatialDims[0]

	if timeDim != "" {
		nT, _ := ds.DimLen(timeDim)
		if timeIndex < 0 {
			timeIndex = nT - 1
		} else if timeIndex >= nT {
			return &TimeIndexOutOfRangeError{Index: timeIndex, Size: nT}
		}
	} else {
		timeIndex = -1
	}

	xs, err := ds.Coord(xDim)
	if err != nil {
		return err
	}

	p, err := plot.New()
	if err != nil {
		return err
	}
	p.Title.Text = fmt.Sprintf("%s (t=%d)", file, timeIndex)
	p.X.Label.Text = xDim

	for i, field := range fields {
		arr, err := a.Eval.Eval(ds, field, timeDim, timeIndex)
		if err != nil {
			return err
		}
		if len(arr.Shape) != 1 {
			return fmt.Errorf("ncview: field %q has shape %v, want a 1-D field", field, arr.Shape)
		}
		xys := make(plotter.XYs, len(arr.Elements))
		for j, v := range arr.Elements {
			if xs != nil && j < len(xs) {
				xys[j].X = xs[j]
			} else {
				xys[j].X = float64(j)
			}
			xys[j].Y = v
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		l.Color = plotutil.Color(i)
		p.Add(l)
		p.Legend.Add(field, l)
	}

	return p.Save(8*vg.Inch, 5*vg.Inch, output)
}
