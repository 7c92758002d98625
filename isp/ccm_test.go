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
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/ajroetker/go-isp/hwy/contrib/image"
)

// workingRGB returns planes whose working-format values are
// (sample << FracBits) + frac, for samples drawn from [0, maxSample].
func workingRGB(w, h int, f Format, maxSample int, seed uint64) (*RGBFrame, *OutputFrame) {
	rng := rand.New(rand.NewPCG(seed, 0xcc3))
	rgb := image.NewImage3[uint32](w, h)
	samples := image.NewImage3[uint16](w, h)
	for y := range h {
		for x := range w {
			var px [3]uint32
			var s [3]uint16
			for c := range 3 {
				s[c] = uint16(rng.IntN(maxSample + 1))
				px[c] = uint32(s[c])<<f.FracBits + uint32(rng.IntN(1<<f.FracBits))
			}
			rgb.Set(x, y, px)
			samples.Set(x, y, s)
		}
	}
	return rgb, samples
}

func TestColorCorrectIdentity(t *testing.T) {
	f := DefaultFormat()
	rgb, want := workingRGB(70, 6, f, int(f.MaxSample()), 1)
	for _, b := range testBackends(t) {
		out, err := b.ColorCorrect(rgb, IdentityMatrix(10), nil)
		if err != nil {
			t.Fatalf("%s: %v", b.Name(), err)
		}
		for y := range 6 {
			for x := range 70 {
				if got := out.At(x, y); got != want.At(x, y) {
					t.Fatalf("%s: (%d,%d) = %v, want %v", b.Name(), x, y, got, want.At(x, y))
				}
			}
		}
	}
}

func TestColorCorrectExact(t *testing.T) {
	m, err := NewMatrix(
		[3]int32{512, 512, 0},
		[3]int32{0, 1024, 0},
		[3]int32{256, 0, 1536},
		1024,
	)
	if err != nil {
		t.Fatal(err)
	}
	rgb := image.NewImage3[uint32](4, 2)
	rgb.Set(1, 1, [3]uint32{100 << 6, 200 << 6, 300 << 6})

	for _, b := range testBackends(t) {
		out, err := b.ColorCorrect(rgb, m, nil)
		if err != nil {
			t.Fatalf("%s: %v", b.Name(), err)
		}
		// r = (100+200)/2, g = 200, b = 100/4 + 300*1.5
		if got, want := out.At(1, 1), [3]uint16{150, 200, 475}; got != want {
			t.Errorf("%s: got %v, want %v", b.Name(), got, want)
		}
		if got := out.At(0, 0); got != [3]uint16{} {
			t.Errorf("%s: black pixel = %v", b.Name(), got)
		}
	}
}

func TestColorCorrectClamps(t *testing.T) {
	f := DefaultFormat()
	rgb := image.NewImage3[uint32](2, 2)
	rgb.Set(0, 0, [3]uint32{1000 << 6, 10 << 6, 10 << 6})
	rgb.Set(1, 0, [3]uint32{10 << 6, 1000 << 6, 10 << 6})
	rgb.Set(0, 1, [3]uint32{3000 << 6, 3000 << 6, 3000 << 6})

	for _, b := range testBackends(t) {
		out, err := b.ColorCorrect(rgb, testMatrix(t), nil)
		if err != nil {
			t.Fatalf("%s: %v", b.Name(), err)
		}
		for y := range 2 {
			for x := range 2 {
				for c, v := range out.At(x, y) {
					if uint32(v) > f.MaxSample() {
						t.Errorf("%s: (%d,%d)[%d] = %d above MaxSample", b.Name(), x, y, c, v)
					}
				}
			}
		}
		// Strong red drives green and blue negative.
		if got := out.At(0, 0); got[1] != 0 || got[2] != 0 {
			t.Errorf("%s: red pixel = %v, want zero green and blue", b.Name(), got)
		}
		if got := out.At(0, 1); got != [3]uint16{1023, 1023, 1023} {
			t.Errorf("%s: bright pixel = %v, want saturated", b.Name(), got)
		}
	}
}

// Odd sizes leave a vector tail for every lane count.
func TestColorCorrectInRangeMatchesFormula(t *testing.T) {
	f := DefaultFormat()
	m := testMatrix(t)
	const w, h = 33, 5
	rgb, _ := workingRGB(w, h, f, 600, 7)
	for _, b := range testBackends(t) {
		out, err := b.ColorCorrect(rgb, m, nil)
		if err != nil {
			t.Fatalf("%s: %v", b.Name(), err)
		}
		for y := range h {
			for x := range w {
				in := rgb.At(x, y)
				for c := range 3 {
					var acc int64
					for k := range 3 {
						acc += int64(in[k]) * int64(m.At(k, c))
					}
					want := acc / m.Scale() >> f.FracBits
					if want < 0 || want > int64(f.MaxSample()) {
						continue
					}
					if got := int64(out.Plane(c).At(x, y)); got != want {
						t.Errorf("%s: (%d,%d)[%d] = %d, want %d", b.Name(), x, y, c, got, want)
					}
				}
			}
		}
	}
}

func TestColorCorrectShape(t *testing.T) {
	b := VectorBackend(DefaultFormat())
	for _, rgb := range []*RGBFrame{nil, image.NewImage3[uint32](0, 0)} {
		if _, err := b.ColorCorrect(rgb, IdentityMatrix(10), nil); !errors.Is(err, ErrFrameShape) {
			t.Errorf("ColorCorrect(empty) error = %v, want ErrFrameShape", err)
		}
	}
	if _, err := b.ColorCorrect(image.NewImage3[uint32](3, 1), IdentityMatrix(10), nil); err != nil {
		t.Errorf("ColorCorrect(3x1) = %v", err)
	}
}

func TestNewMatrix(t *testing.T) {
	m := testMatrix(t)
	if m.ScaleBits != 10 || m.Scale() != 1024 {
		t.Errorf("scale = 2^%d (%d), want 1024", m.ScaleBits, m.Scale())
	}
	if m.At(1, 0) != -527 || m.At(0, 1) != -194 {
		t.Errorf("At(k, c) does not index Rows[c][k]")
	}
	d := m.Dense()
	if got := d.At(2, 1); got != -458 {
		t.Errorf("Dense().At(2, 1) = %v, want -458", got)
	}

	for _, scale := range []int{0, -1024, 1000, 3} {
		if _, err := NewMatrix([3]int32{}, [3]int32{}, [3]int32{}, scale); !errors.Is(err, ErrMatrixScale) {
			t.Errorf("NewMatrix(scale=%d) error = %v, want ErrMatrixScale", scale, err)
		}
	}
	if _, err := NewMatrix([3]int32{}, [3]int32{}, [3]int32{}, 1<<30); !errors.Is(err, ErrMatrixScale) {
		t.Errorf("NewMatrix(scale=2^30) error = %v, want ErrMatrixScale", err)
	}
	if err := IdentityMatrix(10).Validate(); err != nil {
		t.Errorf("IdentityMatrix(10).Validate() = %v", err)
	}
}
