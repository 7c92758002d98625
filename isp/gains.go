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
	"math"

	"github.com/ajroetker/go-isp/fxp"
	"github.com/ajroetker/go-isp/hwy"
)

// GainPair holds white balance gains relative to green: a gain above 1 boosts
// its channel toward the green reference.
type GainPair struct {
	R float64
	B float64
}

// Valid reports whether both gains are finite and positive.
func (g GainPair) Valid() bool {
	ok := func(v float64) bool { return v > 0 && !math.IsInf(v, 0) }
	return ok(g.R) && ok(g.B)
}

// Fixed encodes the gains as U(GainIntBits, GainFracBits), truncating.
// It fails with ErrNonFiniteGain for invalid gains and ErrGainRange for gains
// that do not fit the integer bits.
func (g GainPair) Fixed(f Format) (r, b fxp.Number, err error) {
	if !g.Valid() {
		return r, b, fmt.Errorf("%w: r=%v b=%v", ErrNonFiniteGain, g.R, g.B)
	}
	if limit := math.Ldexp(1, f.GainIntBits); g.R >= limit || g.B >= limit {
		return r, b, fmt.Errorf("%w: r=%v b=%v exceed %d integer bits", ErrGainRange, g.R, g.B, f.GainIntBits)
	}
	enc := fxp.U(f.GainIntBits, f.GainFracBits)
	return enc(g.R), enc(g.B), nil
}

// channelSums accumulates the four Bayer channels over whole 2x2 blocks.
// Integer sums are exact, so partial sums from any split of the frame merge
// to the same totals.
type channelSums struct {
	gr, r, b, gb uint64
	blocks       uint64
}

func (s *channelSums) merge(o channelSums) {
	s.gr += o.gr
	s.r += o.r
	s.b += o.b
	s.gb += o.gb
	s.blocks += o.blocks
}

// gains finalizes the sums. All backends share this float sequence.
func (s channelSums) gains() GainPair {
	n := float64(s.blocks)
	return gainsFromMeans(float64(s.gr)/n, float64(s.r)/n, float64(s.b)/n, float64(s.gb)/n)
}

func gainsFromMeans(gr, r, b, gb float64) GainPair {
	green := (gr + gb) / 2
	return GainPair{R: green / r, B: green / b}
}

// refSumRows sums the blocks of rows [y0, y1); y0 and y1 are even.
func refSumRows(raw *RawFrame, y0, y1 int) channelSums {
	var s channelSums
	for y := y0; y < y1; y += 2 {
		top, bottom := raw.RowSlice(y), raw.RowSlice(y+1)
		for x := 0; x < len(top); x += 2 {
			s.gr += uint64(top[x])
			s.r += uint64(top[x+1])
			s.b += uint64(bottom[x])
			s.gb += uint64(bottom[x+1])
		}
		s.blocks += uint64(len(top) / 2)
	}
	return s
}

// vecSumRows is refSumRows on hwy lanes: each row is split into its even and
// odd samples with a lane parity mask.
func vecSumRows(raw *RawFrame, y0, y1 int) channelSums {
	var s channelSums
	for y := y0; y < y1; y += 2 {
		e, o := vecSumParity(raw.RowSlice(y))
		s.gr += e
		s.r += o
		e, o = vecSumParity(raw.RowSlice(y + 1))
		s.b += e
		s.gb += o
		s.blocks += uint64(raw.Width() / 2)
	}
	return s
}

// vecSumParity returns the sums of the even-indexed and odd-indexed samples
// of row, whose length is even.
func vecSumParity(row []uint16) (even, odd uint64) {
	lanes := hwy.MaxLanes[uint32]()
	oddLanes := hwy.TestBit(hwy.Iota[uint32](), 0)
	zero := hwy.Zero[uint32]()

	x := 0
	for ; x+lanes <= len(row); x += lanes {
		v := hwy.PromoteU16ToU32(hwy.Load(row[x : x+lanes]))
		even += uint64(hwy.ReduceSum(hwy.IfThenElse(oddLanes, zero, v)))
		odd += uint64(hwy.ReduceSum(hwy.IfThenElseZero(oddLanes, v)))
	}
	for ; x < len(row); x += 2 {
		even += uint64(row[x])
		odd += uint64(row[x+1])
	}
	return even, odd
}
