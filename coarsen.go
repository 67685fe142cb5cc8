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

	"github.com/ctessum/sparse"
)

// RefinementRatio returns the integer factor by which a sample grid axis of
// nSample cells must be refined to reach the reference axis of nRef cells.
// The sample must be strictly coarser than the reference and the reference
// size must be an exact multiple of the sample size.
func RefinementRatio(dim string, nRef, nSample int) (int, error) {
	if nRef <= nSample {
		return 0, &IncompatibleGridError{Dim: dim, NRef: nRef, NSample: nSample,
			Reason: "sample grid is not coarser than reference"}
	}
	if nRef%nSample != 0 {
		return 0, &IncompatibleGridError{Dim: dim, NRef: nRef, NSample: nSample,
			Reason: "reference size is not divisible by sample size"}
	}
	return nRef / nSample, nil
}

// IntRatios converts refinement ratios given as floating point numbers to
// integers, rejecting any that are not positive whole numbers.
func IntRatios(ratios []float64) ([]int, error) {
	out := make([]int, len(ratios))
	for i, r := range ratios {
		if r < 1 || r != math.Trunc(r) {
			return nil, &InvalidRefinementError{Ratio: r}
		}
		out[i] = int(r)
	}
	return out, nil
}

// Coarsen projects a fine-grid field onto a coarser grid by averaging
// contiguous blocks of rx (1-D) or ry×rx (2-D) cells, aligned at index 0.
// The block mean preserves the field's mean, so the projection is
// conservative. Fields of rank 3 or higher are not supported.
func Coarsen(fine *sparse.DenseArray, ratios []int) (*sparse.DenseArray, error) {
	for _, r := range ratios {
		if r < 1 {
			return nil, &InvalidRefinementError{Ratio: float64(r)}
		}
	}
	switch len(fine.Shape) {
	case 1:
		return coarsen1d(fine, ratios)
	case 2:
		return coarsen2d(fine, ratios)
	default:
		return nil, &UnsupportedShapeError{Shape: fine.Shape}
	}
}

func coarsen1d(fine *sparse.DenseArray, ratios []int) (*sparse.DenseArray, error) {
	if len(ratios) != 1 {
		return nil, &UnsupportedShapeError{Shape: fine.Shape}
	}
	n, r := fine.Shape[0], ratios[0]
	if n%r != 0 {
		return nil, &IncompatibleGridError{Dim: "x", NRef: n, NSample: n / r,
			Reason: "grid size not divisible by refinement ratio"}
	}
	out := sparse.ZerosDense(n / r)
	for i := range out.Elements {
		sum := 0.
		for j := i * r; j < (i+1)*r; j++ {
			sum += fine.Elements[j]
		}
		out.Elements[i] = sum / float64(r)
	}
	return out, nil
}

func coarsen2d(fine *sparse.DenseArray, ratios []int) (*sparse.DenseArray, error) {
	if len(ratios) != 2 {
		return nil, &UnsupportedShapeError{Shape: fine.Shape}
	}
	ny, nx := fine.Shape[0], fine.Shape[1]
	ry, rx := ratios[0], ratios[1]
	if ny%ry != 0 {
		return nil, &IncompatibleGridError{Dim: "y", NRef: ny, NSample: ny / ry,
			Reason: "grid size not divisible by refinement ratio"}
	}
	if nx%rx != 0 {
		return nil, &IncompatibleGridError{Dim: "x", NRef: nx, NSample: nx / rx,
			Reason: "grid size not divisible by refinement ratio"}
	}
	out := sparse.ZerosDense(ny/ry, nx/rx)
	block := float64(ry * rx)
	for iy := 0; iy < ny/ry; iy++ {
		for ix := 0; ix < nx/rx; ix++ {
			sum := 0.
			for jy := iy * ry; jy < (iy+1)*ry; jy++ {
				for jx := ix * rx; jx < (ix+1)*rx; jx++ {
					sum += fine.Elements[jy*nx+jx]
				}
			}
			out.Set(sum/block, iy, ix)
		}
	}
	return out, nil
}
