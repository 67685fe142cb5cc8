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

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/floats"
)

// Norm identifies an error norm.
type Norm string

// The supported error norms.
const (
	NormL1  Norm = "1"
	NormL2  Norm = "2"
	NormInf Norm = "inf"
)

// ParseNorm converts a norm token to a Norm.
func ParseNorm(s string) (Norm, error) {
	switch Norm(s) {
	case NormL1, NormL2, NormInf:
		return Norm(s), nil
	}
	return "", &UnsupportedNormError{Norm: s}
}

// Error computes the scalar error between two equal-shape fields under the
// given norm. cellVolume is the per-cell integration weight (length in 1-D,
// area in 2-D; 1.0 when no spacing is known); the L∞ norm ignores it. NaN
// values in either input propagate to the result.
func Error(a, b *sparse.DenseArray, cellVolume float64, norm Norm) (float64, error) {
	if len(a.Shape) != len(b.Shape) {
		return 0, fmt.Errorf("ncview: field shapes %v and %v do not match", a.Shape, b.Shape)
	}
	for i := range a.Shape {
		if a.Shape[i] != b.Shape[i] {
			return 0, fmt.Errorf("ncview: field shapes %v and %v do not match", a.Shape, b.Shape)
		}
	}
	diff := make([]float64, len(a.Elements))
	for i := range diff {
		diff[i] = math.Abs(a.Elements[i] - b.Elements[i])
	}
	switch norm {
	case NormL1:
		return floats.Sum(diff) * cellVolume, nil
	case NormL2:
		sq := 0.
		for _, v := range diff {
			sq += v * v
		}
		return math.Sqrt(sq * cellVolume), nil
	case NormInf:
		max := math.Inf(-1)
		for _, v := range diff {
			if math.IsNaN(v) {
				return math.NaN(), nil
			}
			if v > max {
				max = v
			}
		}
		return max, nil
	default:
		return 0, &UnsupportedNormError{Norm: string(norm)}
	}
}
