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
	"testing"

	"github.com/ajroetker/go-isp/hwy/contrib/image"
	"github.com/google/go-cmp/cmp"
)

func TestDemosaicKnownBlock(t *testing.T) {
	// m(y, x) = 16y + x. Block (2, 2):
	//   (2,2) Gr=34  (2,3) R=35
	//   (3,2) B=50   (3,3) Gb=51
	m := rampMosaic(8, 8, 16)
	want := map[[2]int][3]uint32{
		{2, 2}: {34, 34, 34},
		{3, 2}: {35, 34, 35},
		{2, 3}: {50, 51, 50},
		{3, 3}: {51, 51, 51},
	}
	for _, b := range testBackends(t) {
		rgb, err := b.Demosaic(m, GRBG, nil)
		if err != nil {
			t.Fatalf("%s: %v", b.Name(), err)
		}
		for xy, px := range want {
			if got := rgb.At(xy[0], xy[1]); got != px {
				t.Errorf("%s: (%d,%d) = %v, want %v", b.Name(), xy[0], xy[1], got, px)
			}
		}
	}
}

func TestDemosaicBilinearAverages(t *testing.T) {
	m := image.NewImage[uint32](8, 8)
	for y := range 8 {
		for x := range 8 {
			m.Set(x, y, uint32((x*7+y*13)%31))
		}
	}
	rgb, err := ReferenceBackend(DefaultFormat()).Demosaic(m, GRBG, nil)
	if err != nil {
		t.Fatal(err)
	}
	at := m.At
	i, j := 4, 2
	want := map[[2]int][3]uint32{
		{j, i}: {
			(at(j-1, i) + at(j+1, i)) / 2,
			at(j, i),
			(at(j, i-1) + at(j, i+1)) / 2,
		},
		{j + 1, i}: {
			at(j+1, i),
			at(j, i),
			(at(j, i-1) + at(j+2, i-1) + at(j, i+1) + at(j+2, i+1)) / 4,
		},
		{j, i + 1}: {
			(at(j-1, i) + at(j+1, i) + at(j-1, i+2) + at(j+1, i+2)) / 4,
			at(j+1, i+1),
			at(j, i+1),
		},
		{j + 1, i + 1}: {
			(at(j+1, i) + at(j+1, i+2)) / 2,
			at(j+1, i+1),
			(at(j, i+1) + at(j+2, i+1)) / 2,
		},
	}
	for xy, px := range want {
		if got := rgb.At(xy[0], xy[1]); got != px {
			t.Errorf("(%d,%d) = %v, want %v", xy[0], xy[1], got, px)
		}
	}
}

func TestDemosaicLinearRamp(t *testing.T) {
	// Bilinear interpolation of a linear ramp is exact, so the R and B planes
	// reproduce the ramp everywhere inside the margin.
	const w, h, step = 70, 38, 100
	m := rampMosaic(w, h, step)
	for _, b := range testBackends(t) {
		rgb, err := b.Demosaic(m, GRBG, nil)
		if err != nil {
			t.Fatalf("%s: %v", b.Name(), err)
		}
		for y := demosaicMargin; y < h-demosaicMargin; y++ {
			for x := demosaicMargin; x < w-demosaicMargin; x++ {
				v := m.At(x, y)
				if got := rgb.Plane(0).At(x, y); got != v {
					t.Fatalf("%s: R(%d,%d) = %d, want %d", b.Name(), x, y, got, v)
				}
				if got := rgb.Plane(2).At(x, y); got != v {
					t.Fatalf("%s: B(%d,%d) = %d, want %d", b.Name(), x, y, got, v)
				}
			}
		}
	}
}

func TestDemosaicGreenIsNativeSample(t *testing.T) {
	for _, size := range testSizes {
		m := rampMosaic(size.w, size.h, 1000)
		for _, b := range testBackends(t) {
			rgb, err := b.Demosaic(m, GRBG, nil)
			if err != nil {
				t.Fatalf("%s: %v", b.Name(), err)
			}
			g := rgb.Plane(1)
			for i := demosaicMargin; i < size.h-demosaicMargin; i += 2 {
				for j := demosaicMargin; j < size.w-demosaicMargin; j += 2 {
					gr, gb := m.At(j, i), m.At(j+1, i+1)
					if g.At(j, i) != gr || g.At(j+1, i) != gr {
						t.Errorf("%s %s: top row of block (%d,%d) = %d %d, want Gr %d",
							b.Name(), sizeName(size.w, size.h), i, j, g.At(j, i), g.At(j+1, i), gr)
					}
					if g.At(j, i+1) != gb || g.At(j+1, i+1) != gb {
						t.Errorf("%s %s: bottom row of block (%d,%d) = %d %d, want Gb %d",
							b.Name(), sizeName(size.w, size.h), i, j, g.At(j, i+1), g.At(j+1, i+1), gb)
					}
				}
			}
		}
	}
}

func TestDemosaicLeavesMargin(t *testing.T) {
	const w, h = 70, 38
	m := rampMosaic(w, h, 100)
	for _, b := range testBackends(t) {
		rgb, err := b.Demosaic(m, GRBG, nil)
		if err != nil {
			t.Fatalf("%s: %v", b.Name(), err)
		}
		for y := range h {
			for x := range w {
				inside := x >= demosaicMargin && x < w-demosaicMargin && y >= demosaicMargin && y < h-demosaicMargin
				if px := rgb.At(x, y); !inside && px != [3]uint32{} {
					t.Fatalf("%s: margin pixel (%d,%d) = %v, want zero", b.Name(), x, y, px)
				}
			}
		}
	}
}

func TestDemosaicSmallFrameHasNoInterior(t *testing.T) {
	m := rampMosaic(4, 4, 16)
	for _, b := range testBackends(t) {
		rgb, err := b.Demosaic(m, GRBG, nil)
		if err != nil {
			t.Fatalf("%s: %v", b.Name(), err)
		}
		want := planes(image.NewImage3[uint32](4, 4))
		if diff := cmp.Diff(want, planes(rgb)); diff != "" {
			t.Errorf("%s: 4x4 frame written (-want +got):\n%s", b.Name(), diff)
		}
	}
}
