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
	"math"

	"github.com/ajroetker/go-isp/hwy"
	"gonum.org/v1/gonum/mat"
)

// refCorrectRows applies m to rows [y0, y1) of rgb, one pixel at a time.
func refCorrectRows(rgb *RGBFrame, out *OutputFrame, f Format, m Matrix, y0, y1 int) {
	for y := y0; y < y1; y++ {
		refCorrectSpan(rgb, out, f, m, y, 0)
	}
}

// refCorrectSpan corrects row y from column x0 on:
//
//	out[c] = clamp(((Σ_k in[k]·Rows[c][k]) / Scale) >> FracBits, 0, MaxSample)
//
// The division truncates toward zero; results below zero clamp to 0 either
// way, so a floor shift computes the same output.
func refCorrectSpan(rgb *RGBFrame, out *OutputFrame, f Format, m Matrix, y, x0 int) {
	w := rgb.Width()
	in := [3][]uint32{rgb.PlaneRow(0, y), rgb.PlaneRow(1, y), rgb.PlaneRow(2, y)}
	dst := [3][]uint16{out.PlaneRow(0, y), out.PlaneRow(1, y), out.PlaneRow(2, y)}
	scale := m.Scale()
	maxSample := int64(f.MaxSample())

	for x := x0; x < w; x++ {
		for c := range 3 {
			var acc int64
			for k := range 3 {
				acc += int64(in[k][x]) * int64(m.Rows[c][k])
			}
			v := (acc / scale) >> f.FracBits
			dst[c][x] = uint16(min(max(v, 0), maxSample))
		}
	}
}

// vecCorrectRows is refCorrectRows on int64 lanes.
func vecCorrectRows(rgb *RGBFrame, out *OutputFrame, f Format, m Matrix, y0, y1 int) {
	lanes := hwy.MaxLanes[int64]()
	shift := int(m.ScaleBits) + f.FracBits
	lo, hi := hwy.Zero[int64](), hwy.Set(int64(f.MaxSample()))

	var coef [3][3]hwy.Vec[int64]
	for c, row := range m.Rows {
		for k, v := range row {
			coef[c][k] = hwy.Set(int64(v))
		}
	}

	w := rgb.Width()
	for y := y0; y < y1; y++ {
		r, g, b := rgb.PlaneRow(0, y), rgb.PlaneRow(1, y), rgb.PlaneRow(2, y)
		x := 0
		for ; x+lanes <= w; x += lanes {
			vr := hwy.PromoteU32ToI64(hwy.Load(r[x : x+lanes]))
			vg := hwy.PromoteU32ToI64(hwy.Load(g[x : x+lanes]))
			vb := hwy.PromoteU32ToI64(hwy.Load(b[x : x+lanes]))
			for c := range 3 {
				acc := hwy.Mul(vr, coef[c][0])
				acc = hwy.Add(acc, hwy.Mul(vg, coef[c][1]))
				acc = hwy.Add(acc, hwy.Mul(vb, coef[c][2]))
				v := hwy.Clamp(hwy.ShiftRight(acc, shift), lo, hi)
				hwy.Store(hwy.DemoteI64ToU16(v), out.PlaneRow(c, y)[x:])
			}
		}
		if x < w {
			refCorrectSpan(rgb, out, f, m, y, x)
		}
	}
}

// gonumCorrectRows computes each row as the 3x3 by 3xW product of m and the
// row's planes. Integer operands below 2^53 keep the float products exact,
// and flooring the scaled result matches the shift of vecCorrectRows.
func gonumCorrectRows(rgb *RGBFrame, out *OutputFrame, f Format, m Matrix, y0, y1 int) {
	w := rgb.Width()
	coef := m.Dense()
	in := mat.NewDense(3, w, nil)
	prod := mat.NewDense(3, w, nil)
	div := math.Ldexp(1, int(m.ScaleBits)+f.FracBits)
	maxSample := float64(f.MaxSample())
	buf := make([]float64, w)

	for y := y0; y < y1; y++ {
		for k := range 3 {
			for x, v := range rgb.PlaneRow(k, y)[:w] {
				buf[x] = float64(v)
			}
			in.SetRow(k, buf)
		}
		prod.Mul(coef, in)
		for c := range 3 {
			dst := out.PlaneRow(c, y)
			for x, v := range mat.Row(buf, c, prod) {
				dst[x] = uint16(min(max(math.Floor(v/div), 0), maxSample))
			}
		}
	}
}
