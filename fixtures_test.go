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
	"os"
	"sort"
	"testing"

	"github.com/ctessum/cdf"
)

// writeTimeFile1D creates a NetCDF file with an x coordinate, a record time
// axis, and one record per time step for each variable in vars.
func writeTimeFile1D(t *testing.T, path string, xs, times []float64, vars map[string][][]float64) {
	t.Helper()
	h := cdf.NewHeader([]string{"time", "x"}, []int{0, len(xs)})
	h.AddVariable("time", []string{"time"}, []float64{})
	h.AddVariable("x", []string{"x"}, []float64{})
	for _, name := range sortedKeys2(vars) {
		h.AddVariable(name, []string{"time", "x"}, []float64{})
	}
	h.Define()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cf, err := cdf.Create(f, h)
	if err != nil {
		t.Fatal(err)
	}
	writeFull(t, cf, "x", xs)
	for i, tv := range times {
		writeRecord(t, cf, "time", i, []float64{tv})
		for name, records := range vars {
			writeRecord(t, cf, name, i, records[i])
		}
	}
	if err := cdf.UpdateNumRecs(f); err != nil {
		t.Fatal(err)
	}
}

// writeTimeFile2D is like writeTimeFile1D but with y and x coordinates;
// each record is flattened in (y, x) order.
func writeTimeFile2D(t *testing.T, path string, ys, xs, times []float64, vars map[string][][]float64) {
	t.Helper()
	h := cdf.NewHeader([]string{"time", "y", "x"}, []int{0, len(ys), len(xs)})
	h.AddVariable("time", []string{"time"}, []float64{})
	h.AddVariable("y", []string{"y"}, []float64{})
	h.AddVariable("x", []string{"x"}, []float64{})
	for _, name := range sortedKeys2(vars) {
		h.AddVariable(name, []string{"time", "y", "x"}, []float64{})
	}
	h.Define()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cf, err := cdf.Create(f, h)
	if err != nil {
		t.Fatal(err)
	}
	writeFull(t, cf, "y", ys)
	writeFull(t, cf, "x", xs)
	for i, tv := range times {
		writeRecord(t, cf, "time", i, []float64{tv})
		for name, records := range vars {
			writeRecord(t, cf, name, i, records[i])
		}
	}
	if err := cdf.UpdateNumRecs(f); err != nil {
		t.Fatal(err)
	}
}

// writeStaticFile1D creates a NetCDF file with a single spatial dimension
// named dim (with coordinate values xs) and no time axis.
func writeStaticFile1D(t *testing.T, path, dim string, xs []float64, vars map[string][]float64) {
	t.Helper()
	h := cdf.NewHeader([]string{dim}, []int{len(xs)})
	h.AddVariable(dim, []string{dim}, []float64{})
	for _, name := range sortedKeys1(vars) {
		h.AddVariable(name, []string{dim}, []float64{})
	}
	h.AddAttribute("", "title", "ncview test data")
	h.Define()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cf, err := cdf.Create(f, h)
	if err != nil {
		t.Fatal(err)
	}
	writeFull(t, cf, dim, xs)
	for name, vals := range vars {
		writeFull(t, cf, name, vals)
	}
}

// writeInnerTimeFile creates a file whose time-like dimension is not the
// outermost axis: u has dimensions (x, iter).
func writeInnerTimeFile(t *testing.T, path string, nx, nIter int, u []float64) {
	t.Helper()
	h := cdf.NewHeader([]string{"x", "iter"}, []int{nx, nIter})
	h.AddVariable("u", []string{"x", "iter"}, []float64{})
	h.Define()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cf, err := cdf.Create(f, h)
	if err != nil {
		t.Fatal(err)
	}
	writeFull(t, cf, "u", u)
}

func writeFull(t *testing.T, cf *cdf.File, name string, vals []float64) {
	t.Helper()
	end := cf.Header.Lengths(name)
	start := make([]int, len(end))
	w := cf.Writer(name, start, end)
	if _, err := w.Write(vals); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func writeRecord(t *testing.T, cf *cdf.File, name string, record int, vals []float64) {
	t.Helper()
	dims := cf.Header.Dimensions(name)
	begin := make([]int, len(dims))
	end := make([]int, len(dims))
	begin[0], end[0] = record, record+1
	w := cf.Writer(name, begin, end)
	if _, err := w.Write(vals); err != nil {
		t.Fatalf("writing %s record %d: %v", name, record, err)
	}
}

func sortedKeys1(m map[string][]float64) []string {
	var keys []string
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeys2(m map[string][][]float64) []string {
	var keys []string
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// constant returns a slice of n copies of v.
func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// ramp returns the values start, start+step, ... of length n.
func ramp(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}
