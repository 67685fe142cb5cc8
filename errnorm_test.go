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
	"math"
	"testing"
)

func TestParseNorm(t *testing.T) {
	for _, s := range []string{"1", "2", "inf"} {
		if _, err := ParseNorm(s); err != nil {
			t.Errorf("ParseNorm(%q): %v", s, err)
		}
	}
	for _, s := range []string{"", "3", "L2", "INF"} {
		if _, err := ParseNorm(s); err == nil {
			t.Errorf("ParseNorm(%q): expected error", s)
		} else if _, ok := err.(*UnsupportedNormError); !ok {
			t.Errorf("ParseNorm(%q): error type %T, want *UnsupportedNormError", s, err)
		}
	}
}

func TestErrorIdentical(t *testing.T) {
	a := dense1d(1, -2, 3.5, 0)
	for _, norm := range []Norm{NormL1, NormL2, NormInf} {
		e, err := Error(a, a, 0.25, norm)
		if err != nil {
			t.Fatalf("norm %s: %v", norm, err)
		}
		if e != 0 {
			t.Errorf("norm %s: error = %g, want 0", norm, e)
		}
	}
}

func TestErrorNorms(t *testing.T) {
	a := dense1d(1, 2, 3, 4)
	b := dense1d(0, 2, 5, 4)
	const vol = 0.5

	e1, err := Error(a, b, vol, NormL1)
	if err != nil {
		t.Fatal(err)
	}
	if want := (1.0 + 0 + 2 + 0) * vol; e1 != want {
		t.Errorf("L1 = %g, want %g", e1, want)
	}

	e2, err := Error(a, b, vol, NormL2)
	if err != nil {
		t.Fatal(err)
	}
	if want := math.Sqrt((1.0 + 0 + 4 + 0) * vol); math.Abs(e2-want) > 1e-15 {
		t.Errorf("L2 = %g, want %g", e2, want)
	}

	einf, err := Error(a, b, vol, NormInf)
	if err != nil {
		t.Fatal(err)
	}
	if einf != 2 {
		t.Errorf("Linf = %g, want 2", einf)
	}
}

func TestErrorNaNPropagation(t *testing.T) {
	a := dense1d(1, math.NaN(), 3)
	b := dense1d(1, 2, 3)
	for _, norm := range []Norm{NormL1, NormL2, NormInf} {
		e, err := Error(a, b, 1, norm)
		if err != nil {
			t.Fatalf("norm %s: %v", norm, err)
		}
		if !math.IsNaN(e) {
			t.Errorf("norm %s: error = %g, want NaN", norm, e)
		}
	}
}

func TestErrorShapeMismatch(t *testing.T) {
	if _, err := Error(dense1d(1, 2), dense1d(1, 2, 3), 1, NormL1); err == nil {
		t.Error("expected error for mismatched shapes")
	}
	if _, err := Error(dense1d(1, 2, 3, 4), dense2d(2, 2, 1, 2, 3, 4), 1, NormL1); err == nil {
		t.Error("expected error for mismatched ranks")
	}
}

func TestErrorUnsupportedNorm(t *testing.T) {
	if _, err := Error(dense1d(1), dense1d(1), 1, Norm("max")); err == nil {
		t.Error("expected error for unsupported norm")
	} else if _, ok := err.(*UnsupportedNormError); !ok {
		t.Errorf("error type %T, want *UnsupportedNormError", err)
	}
}
