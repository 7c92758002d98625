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

import "github.com/ajroetker/go-isp/hwy"

// demosaicMargin is the border, in samples, left unprocessed on every edge.
// Every read of the block kernels then stays inside the frame.
const demosaicMargin = 2

// refDemosaicRows interpolates the 2x2 blocks whose top rows lie in [y0, y1).
func refDemosaicRows(m *MosaicFrame, out *RGBFrame, y0, y1 int) {
	for i := y0; i < y1; i += 2 {
		refDemosaicPair(m, out, i, demosaicMargin, m.Width()-demosaicMargin)
	}
}

// refDemosaicPair interpolates the blocks with top-left corner (i, j) for
// even j in [x0, x1). Around a block:
//
//	      j-1 j   j+1 j+2
//	i-1:  Gb  B   Gb  B
//	i:    R   Gr  R   Gr
//	i+1:  Gb  B   Gb  B
//	i+2:  R   Gr  R   Gr
//
// Averages truncate.
func refDemosaicPair(m *MosaicFrame, out *RGBFrame, i, x0, x1 int) {
	up, top, bot, down := m.Row(i-1), m.Row(i), m.Row(i+1), m.Row(i+2)
	r0, g0, b0 := out.PlaneRow(0, i), out.PlaneRow(1, i), out.PlaneRow(2, i)
	r1, g1, b1 := out.PlaneRow(0, i+1), out.PlaneRow(1, i+1), out.PlaneRow(2, i+1)

	for j := x0; j < x1; j += 2 {
		r0[j] = (top[j-1] + top[j+1]) >> 1
		r0[j+1] = top[j+1]
		r1[j] = (top[j-1] + top[j+1] + down[j-1] + down[j+1]) >> 2
		r1[j+1] = (top[j+1] + down[j+1]) >> 1

		g0[j], g0[j+1] = top[j], top[j]
		g1[j], g1[j+1] = bot[j+1], bot[j+1]

		b0[j] = (up[j] + bot[j]) >> 1
		b0[j+1] = (up[j] + up[j+2] + bot[j] + bot[j+2]) >> 2
		b1[j] = bot[j]
		b1[j+1] = (bot[j] + bot[j+2]) >> 1
	}
}

// vecDemosaicRows is refDemosaicRows on uint32 lanes. Vectors start at an
// even column, so even lanes hold the left column of a block and odd lanes
// the right one. Each output row is a select between two interpolations of
// the neighbors loaded at offsets -1, 0 and +1.
func vecDemosaicRows(m *MosaicFrame, out *RGBFrame, y0, y1 int) {
	lanes := hwy.MaxLanes[uint32]()
	oddLanes := hwy.TestBit(hwy.Iota[uint32](), 0)
	x1 := m.Width() - demosaicMargin

	for i := y0; i < y1; i += 2 {
		up, top, bot, down := m.Row(i-1), m.Row(i), m.Row(i+1), m.Row(i+2)
		r0, g0, b0 := out.PlaneRow(0, i), out.PlaneRow(1, i), out.PlaneRow(2, i)
		r1, g1, b1 := out.PlaneRow(0, i+1), out.PlaneRow(1, i+1), out.PlaneRow(2, i+1)

		x := demosaicMargin
		for ; x+lanes <= x1; x += lanes {
			ul, uc, ur := hwy.Load(up[x-1:]), hwy.Load(up[x:]), hwy.Load(up[x+1:])
			tl, tc, tr := hwy.Load(top[x-1:]), hwy.Load(top[x:]), hwy.Load(top[x+1:])
			bl, bc, br := hwy.Load(bot[x-1:]), hwy.Load(bot[x:]), hwy.Load(bot[x+1:])
			dl, dc, dr := hwy.Load(down[x-1:]), hwy.Load(down[x:]), hwy.Load(down[x+1:])

			// Row i: Gr in even lanes, R in odd lanes.
			hwy.Store(hwy.IfThenElse(oddLanes, tc, avg2(tl, tr)), r0[x:])
			hwy.Store(hwy.IfThenElse(oddLanes, tl, tc), g0[x:])
			hwy.Store(hwy.IfThenElse(oddLanes, avg4(ul, ur, bl, br), avg2(uc, bc)), b0[x:])

			// Row i+1: B in even lanes, Gb in odd lanes.
			hwy.Store(hwy.IfThenElse(oddLanes, avg2(tc, dc), avg4(tl, tr, dl, dr)), r1[x:])
			hwy.Store(hwy.IfThenElse(oddLanes, bc, br), g1[x:])
			hwy.Store(hwy.IfThenElse(oddLanes, avg2(bl, br), bc), b1[x:])
		}
		if x < x1 {
			refDemosaicPair(m, out, i, x, x1)
		}
	}
}

func avg2(a, b hwy.Vec[uint32]) hwy.Vec[uint32] {
	return hwy.ShiftRight(hwy.Add(a, b), 1)
}

func avg4(a, b, c, d hwy.Vec[uint32]) hwy.Vec[uint32] {
	return hwy.ShiftRight(hwy.Add(hwy.Add(a, b), hwy.Add(c, d)), 2)
}
