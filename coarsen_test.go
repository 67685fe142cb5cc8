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
	"testing"

	"github.com/ctessum/sparse"
)

func dense1d(vals ...float64) *sparse.DenseArray {
	a := sparse.ZerosDense(len(vals))
	copy(a.Elements, vals)
	return a
}

func dense2d(ny, nx int, vals ...float64) *sparse.DenseArray {
	a := sparse.ZerosDense(ny, nx)
	copy(a.Elements, vals)
	return a
}

func TestRefinementRatio(t *testing.T) {
	tests := []struct {
		nRef, nSample int
		ratio         int
		wantErr       bool
	}{
		{16, 8, 2, false},
		{16, 4, 4, false},
		{10, 3, 0, true},  // not an exact multiple
		{5, 10, 0, true},  // sample finer than reference
		{8, 8, 0, true},   // not strictly coarser
	}
	for _, test := range tests {
		r, err := RefinementRatio("x", test.nRef, test.nSample)
		if test.wantErr {
			if err == nil {
				t.Errorf("RefinementRatio(%d, %d): expected error", test.nRef, test.nSample)
			} else if _, ok := err.(*IncompatibleGridError); !ok {
				t.Errorf("RefinementRatio(%d, %d): error type %T, want *IncompatibleGridError",
					test.nRef, test.nSample, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("RefinementRatio(%d, %d): %v", test.nRef, test.nSample, err)
		} else if r != test.ratio {
			t.Errorf("RefinementRatio(%d, %d) = %d, want %d", test.nRef, test.nSample, r, test.ratio)
		}
	}
}

func TestCoarsen1D(t *testing.T) {
	fine := dense1d(1, 3, 2, 6, 0, 4, 10, 2)
	coarse, err := Coarsen(fine, []int{2})
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{2, 4, 2, 6}
	if len(coarse.Elements) != len(want) {
		t.Fatalf("coarse length = %d, want %d", len(coarse.Elements), len(want))
	}
	for i, w := range want {
		if coarse.Elements[i] != w {
			t.Errorf("coarse[%d] = %g, want %g", i, coarse.Elements[i], w)
		}
	}
}

func TestCoarsenConstant(t *testing.T) {
	fine := sparse.ZerosDense(16)
	for i := range fine.Elements {
		fine.Elements[i] = 3.0
	}
	for _, r := range []int{1, 2, 4, 8, 16} {
		coarse, err := Coarsen(fine, []int{r})
		if err != nil {
			t.Fatalf("ratio %d: %v", r, err)
		}
		if len(coarse.Elements) != 16/r {
			t.Fatalf("ratio %d: length = %d, want %d", r, len(coarse.Elements), 16/r)
		}
		for i, v := range coarse.Elements {
			if v != 3.0 {
				t.Errorf("ratio %d: coarse[%d] = %g, want 3", r, i, v)
			}
		}
	}
}

func TestCoarsenIdentity(t *testing.T) {
	fine := dense1d(1, 2, 3, 4)
	coarse, err := Coarsen(fine, []int{1})
	if err != nil {
		t.Fatal(err)
	}
	for i := range fine.Elements {
		if coarse.Elements[i] != fine.Elements[i] {
			t.Errorf("element %d changed under ratio 1: %g != %g", i, coarse.Elements[i], fine.Elements[i])
		}
	}
}

func TestCoarsenLinearity(t *testing.T) {
	a := dense1d(1, 2, 3, 4, 5, 6, 7, 8)
	b := dense1d(2, 0, -1, 3, 7, 1, 0, 4)
	sum := sparse.ZerosDense(8)
	for i := range sum.Elements {
		sum.Elements[i] = a.Elements[i] + b.Elements[i]
	}
	ca, err := Coarsen(a, []int{4})
	if err != nil {
		t.Fatal(err)
	}
	cb, err := Coarsen(b, []int{4})
	if err != nil {
		t.Fatal(err)
	}
	csum, err := Coarsen(sum, []int{4})
	if err != nil {
		t.Fatal(err)
	}
	for i := range csum.Elements {
		if got, want := csum.Elements[i], ca.Elements[i]+cb.Elements[i]; got != want {
			t.Errorf("coarsen(a+b)[%d] = %g, coarsen(a)+coarsen(b) = %g", i, got, want)
		}
	}
}

func TestCoarsen2D(t *testing.T) {
	// 4x4 field whose 2x2 blocks average to 1, 2, 3, 4.
	fine := dense2d(4, 4,
		0, 2, 1, 3,
		1, 1, 2, 2,
		2, 4, 3, 5,
		3, 3, 4, 4,
	)
	coarse, err := Coarsen(fine, []int{2, 2})
	if err != nil {
		t.Fatal(err)
	}
	if coarse.Shape[0] != 2 || coarse.Shape[1] != 2 {
		t.Fatalf("coarse shape = %v, want [2 2]", coarse.Shape)
	}
	want := []float64{1, 2, 3, 4}
	for i, w := range want {
		if coarse.Elements[i] != w {
			t.Errorf("coarse[%d] = %g, want %g", i, coarse.Elements[i], w)
		}
	}
}

func TestCoarsenAnisotropic(t *testing.T) {
	fine := dense2d(4, 2,
		1, 2,
		3, 4,
		5, 6,
		7, 8,
	)
	coarse, err := Coarsen(fine, []int{4, 1})
	if err != nil {
		t.Fatal(err)
	}
	if coarse.Shape[0] != 1 || coarse.Shape[1] != 2 {
		t.Fatalf("coarse shape = %v, want [1 2]", coarse.Shape)
	}
	if coarse.Elements[0] != 4 || coarse.Elements[1] != 5 {
		t.Errorf("coarse = %v, want [4 5]", coarse.Elements)
	}
}

func TestCoarsenErrors(t *testing.T) {
	if _, err := Coarsen(dense1d(1, 2, 3), []int{2}); err == nil {
		t.Error("expected error for non-divisible grid")
	} else if _, ok := err.(*IncompatibleGridError); !ok {
		t.Errorf("error type %T, want *IncompatibleGridError", err)
	}

	if _, err := Coarsen(dense1d(1, 2, 3, 4), []int{0}); err == nil {
		t.Error("expected error for non-positive ratio")
	} else if _, ok := err.(*InvalidRefinementError); !ok {
		t.Errorf("error type %T, want *InvalidRefinementError", err)
	}

	rank3 := sparse.ZerosDense(2, 2, 2)
	if _, err := Coarsen(rank3, []int{2, 2, 2}); err == nil {
		t.Error("expected error for rank-3 field")
	} else if _, ok := err.(*UnsupportedShapeError); !ok {
		t.Errorf("error type %T, want *UnsupportedShapeError", err)
	}
}

func TestIntRatios(t *testing.T) {
	got, err := IntRatios([]float64{2, 4})
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 2 || got[1] != 4 {
		t.Errorf("IntRatios([2, 4]) = %v", got)
	}
	for _, bad := range [][]float64{{2.5}, {0}, {-2}} {
		if _, err := IntRatios(bad); err == nil {
			t.Errorf("IntRatios(%v): expected error", bad)
		} else if _, ok := err.(*InvalidRefinementError); !ok {
			t.Errorf("IntRatios(%v): error type %T, want *InvalidRefinementError", bad, err)
		}
	}
}
