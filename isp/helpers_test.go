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
	"math/rand/v2"
	"testing"

	"github.com/ajroetker/go-isp/hwy"
	"github.com/ajroetker/go-isp/hwy/contrib/image"
	"github.com/ajroetker/go-isp/hwy/contrib/workerpool"
)

// Frame sizes covering exact vector multiples, vector tails and frames with
// no demosaic interior.
var testSizes = []struct{ w, h int }{
	{4, 4},
	{8, 8},
	{64, 16},
	{70, 38},
	{130, 6},
	{2*hwy.MaxLanes[uint32]() + 6, 10},
}

func sizeName(w, h int) string {
	return fmt.Sprintf("%dx%d", w, h)
}

// awbFrame is a 4x4 GRBG frame with channel means Gr=107, R=207, B=57,
// Gb=127.
func awbFrame() *RawFrame {
	return image.FromSlice([]uint16{
		100, 200, 110, 210,
		50, 120, 60, 130,
		104, 204, 114, 214,
		54, 124, 64, 134,
	}, 4, 4)
}

// randomRaw returns a frame of 10-bit samples in [1, 1023], so that no
// channel mean is zero.
func randomRaw(w, h int, seed uint64) *RawFrame {
	rng := rand.New(rand.NewPCG(seed, seed^0x5eed))
	data := make([]uint16, w*h)
	for i := range data {
		data[i] = uint16(1 + rng.IntN(1023))
	}
	return image.FromSlice(data, w, h)
}

// rampMosaic returns a working-format mosaic with m(y, x) = step*y + x.
func rampMosaic(w, h int, step uint32) *MosaicFrame {
	m := image.NewImage[uint32](w, h)
	for y := range h {
		row := m.RowSlice(y)
		for x := range row {
			row[x] = step*uint32(y) + uint32(x)
		}
	}
	return m
}

// pixels copies the visible samples of img, dropping row padding.
func pixels[T hwy.Lanes](img *image.Image[T]) [][]T {
	out := make([][]T, img.Height())
	for y := range out {
		out[y] = append([]T(nil), img.RowSlice(y)...)
	}
	return out
}

func planes[T hwy.Lanes](img *image.Image3[T]) [3][][]T {
	return [3][][]T{pixels(img.Plane(0)), pixels(img.Plane(1)), pixels(img.Plane(2))}
}

// testBackends returns every backend, with parallel variants on pools of
// several sizes.
func testBackends(t testing.TB) []Backend {
	t.Helper()
	f := DefaultFormat()
	backends := []Backend{ReferenceBackend(f), VectorBackend(f), GonumBackend(f)}
	for _, workers := range []int{1, 3, 8} {
		pool := workerpool.New(workers)
		t.Cleanup(pool.Close)
		backends = append(backends, ParallelBackend(f, pool))
	}
	return backends
}

// testMatrix is a typical sensor-to-sRGB matrix scaled by 1024.
func testMatrix(t testing.TB) Matrix {
	t.Helper()
	m, err := NewMatrix(
		[3]int32{1660, -527, -109},
		[3]int32{-194, 1505, -287},
		[3]int32{-34, -458, 1516},
		1024,
	)
	if err != nil {
		t.Fatalf("NewMatrix: %v", err)
	}
	return m
}
