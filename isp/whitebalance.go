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
	"github.com/ajroetker/go-isp/fxp"
	"github.com/ajroetker/go-isp/hwy"
)

// refBalanceRows writes rows [y0, y1) of out from raw with one fxp product
// per sample.
func refBalanceRows(raw *RawFrame, out *MosaicFrame, f Format, rGain, bGain fxp.Number, y0, y1 int) {
	for y := y0; y < y1; y++ {
		refBalanceSpan(raw.RowSlice(y), out.RowSlice(y), f, y, rGain, bGain, 0)
	}
}

// refBalanceSpan balances in[x0:] of row y into dst.
//
// R sits at odd x of even rows and B at even x of odd rows. Gained samples
// are the full-precision product U(SampleBits+GainIntBits, GainFracBits)
// rescaled to the working format; green samples are only rescaled.
func refBalanceSpan(in []uint16, dst []uint32, f Format, y int, rGain, bGain fxp.Number, x0 int) {
	gain, phase := rGain, 1
	if y&1 == 1 {
		gain, phase = bGain, 0
	}
	nInt := f.SampleBits + f.GainIntBits
	for x := x0; x < len(in); x++ {
		v := f.Sample(in[x])
		if x&1 == phase {
			v = fxp.Product(v, gain)
		}
		dst[x] = uint32(v.Rescale(nInt, f.FracBits).Stored)
	}
}

// vecBalanceRows is refBalanceRows on uint32 lanes: every lane computes both
// the gained and the green value and the row parity mask picks one.
func vecBalanceRows(raw *RawFrame, out *MosaicFrame, f Format, rGain, bGain fxp.Number, y0, y1 int) {
	lanes := hwy.MaxLanes[uint32]()
	oddLanes := hwy.TestBit(hwy.Iota[uint32](), 0)
	rVec := hwy.Set(uint32(rGain.Stored))
	bVec := hwy.Set(uint32(bGain.Stored))
	shift := f.gainShift()

	for y := y0; y < y1; y++ {
		in, dst := raw.RowSlice(y), out.RowSlice(y)
		gain := rVec
		if y&1 == 1 {
			gain = bVec
		}

		x := 0
		for ; x+lanes <= len(in); x += lanes {
			v := hwy.PromoteU16ToU32(hwy.Load(in[x : x+lanes]))
			green := hwy.ShiftLeft(v, f.FracBits)
			gained := hwy.ShiftRight(hwy.Mul(v, gain), shift)
			if y&1 == 0 {
				hwy.Store(hwy.IfThenElse(oddLanes, gained, green), dst[x:])
			} else {
				hwy.Store(hwy.IfThenElse(oddLanes, green, gained), dst[x:])
			}
		}
		if x < len(in) {
			refBalanceSpan(in, dst, f, y, rGain, bGain, x)
		}
	}
}
