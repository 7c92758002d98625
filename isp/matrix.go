// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package isp

import (
	"fmt"
	"math/bits"

	"gonum.org/v1/gonum/mat"
)

// maxScaleBits bounds the coefficient scale so that accumulations of
// working-format samples stay inside int64.
const maxScaleBits = 24

// Matrix is a color correction matrix with integer coefficients and a
// power-of-two scale.
//
// Rows[c] holds the coefficients producing output channel c:
//
//	out[c] = (Rows[c][0]*r + Rows[c][1]*g + Rows[c][2]*b) / 2^ScaleBits
type Matrix struct {
	Rows      [3][3]int32
	ScaleBits uint
}

// NewMatrix builds a matrix from the coefficients of the corrected red, green
// and blue outputs. scale must be a power of two, e.g. 1024.
func NewMatrix(red, green, blue [3]int32, scale int) (Matrix, error) {
	if scale <= 0 || scale&(scale-1) != 0 {
		return Matrix{}, fmt.Errorf("%w: got %d", ErrMatrixScale, scale)
	}
	m := Matrix{
		Rows:      [3][3]int32{red, green, blue},
		ScaleBits: uint(bits.TrailingZeros(uint(scale))),
	}
	return m, m.Validate()
}

// IdentityMatrix returns the identity scaled by 2^scaleBits.
func IdentityMatrix(scaleBits uint) Matrix {
	s := int32(1) << scaleBits
	return Matrix{
		Rows:      [3][3]int32{{s, 0, 0}, {0, s, 0}, {0, 0, s}},
		ScaleBits: scaleBits,
	}
}

// Validate checks the scale bound.
func (m Matrix) Validate() error {
	if m.ScaleBits > maxScaleBits {
		return fmt.Errorf("%w: scale 2^%d exceeds 2^%d", ErrMatrixScale, m.ScaleBits, maxScaleBits)
	}
	return nil
}

// Scale returns 2^ScaleBits.
func (m Matrix) Scale() int64 {
	return int64(1) << m.ScaleBits
}

// At returns the coefficient weighting input channel k in output channel c.
func (m Matrix) At(k, c int) int32 {
	return m.Rows[c][k]
}

// Dense returns the unscaled coefficients as a 3x3 gonum matrix with the
// same row layout as Rows.
func (m Matrix) Dense() *mat.Dense {
	d := mat.NewDense(3, 3, nil)
	for c, row := range m.Rows {
		for k, v := range row {
			d.Set(c, k, float64(v))
		}
	}
	return d
}
