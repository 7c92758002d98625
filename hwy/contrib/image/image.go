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

package image

import (
	"unsafe"

	"github.com/ajroetker/go-isp/hwy"
)

// Image is a single-channel 2D array with vector-aligned rows.
// Each row is padded to a multiple of the vector width, so kernels can load
// a full vector at any in-row offset up to the padded stride.
type Image[T hwy.Lanes] struct {
	data        []T
	width       int
	height      int
	stride      int // elements per row (includes padding)
	bytesPerRow int
}

// NewImage creates a zeroed image with the specified dimensions.
// Non-positive dimensions produce an empty 0x0 image.
func NewImage[T hwy.Lanes](width, height int) *Image[T] {
	if width <= 0 || height <= 0 {
		return &Image[T]{}
	}

	lanes := hwy.MaxLanes[T]()
	stride := ((width + lanes - 1) / lanes) * lanes

	var zero T
	return &Image[T]{
		data:        make([]T, stride*height),
		width:       width,
		height:      height,
		stride:      stride,
		bytesPerRow: stride * int(unsafe.Sizeof(zero)),
	}
}

// FromSlice creates an image from a flat, row-major buffer of width*height
// samples, as delivered by sensor readout. The samples are copied into
// aligned rows; src is not retained. It returns nil if src is too short.
func FromSlice[T hwy.Lanes](src []T, width, height int) *Image[T] {
	if width <= 0 || height <= 0 || len(src) < width*height {
		return nil
	}
	img := NewImage[T](width, height)
	for y := range height {
		copy(img.RowSlice(y), src[y*width:(y+1)*width])
	}
	return img
}

// Width returns the image width in pixels.
func (img *Image[T]) Width() int {
	return img.width
}

// Height returns the image height in pixels.
func (img *Image[T]) Height() int {
	return img.height
}

// Stride returns the number of elements per row (including padding).
func (img *Image[T]) Stride() int {
	return img.stride
}

// BytesPerRow returns the number of bytes per row.
func (img *Image[T]) BytesPerRow() int {
	return img.bytesPerRow
}

// Row returns a mutable slice for the specified row.
// The slice includes padding elements beyond the image width.
// These can be safely read/written but are not part of the image.
func (img *Image[T]) Row(y int) []T {
	if y < 0 || y >= img.height || img.data == nil {
		return nil
	}
	start := y * img.stride
	return img.data[start : start+img.stride]
}

// RowSlice returns a mutable slice for the specified row,
// limited to the actual image width (excluding padding).
func (img *Image[T]) RowSlice(y int) []T {
	if y < 0 || y >= img.height || img.data == nil {
		return nil
	}
	start := y * img.stride
	return img.data[start : start+img.width]
}

// At returns the value at position (x, y), or zero outside the image.
func (img *Image[T]) At(x, y int) T {
	if x < 0 || x >= img.width || y < 0 || y >= img.height || img.data == nil {
		var zero T
		return zero
	}
	return img.data[y*img.stride+x]
}

// Set sets the value at position (x, y). Writes outside the image are ignored.
func (img *Image[T]) Set(x, y int, value T) {
	if x < 0 || x >= img.width || y < 0 || y >= img.height || img.data == nil {
		return
	}
	img.data[y*img.stride+x] = value
}

// SameSize returns true if both images have the same dimensions.
func SameSize[T, U hwy.Lanes](a *Image[T], b *Image[U]) bool {
	return a.width == b.width && a.height == b.height
}

// Clone creates a deep copy of the image.
func (img *Image[T]) Clone() *Image[T] {
	clone := *img
	clone.data = make([]T, len(img.data))
	copy(clone.data, img.data)
	return &clone
}

// Fill sets all pixels (and padding) to the specified value.
func (img *Image[T]) Fill(value T) {
	for i := range img.data {
		img.data[i] = value
	}
}

// Image3 bundles three same-sized Image instances.
// The ISP uses it for planar R, G, B frames.
type Image3[T hwy.Lanes] struct {
	planes [3]*Image[T]
}

// NewImage3 creates a new 3-plane image with the specified dimensions.
func NewImage3[T hwy.Lanes](width, height int) *Image3[T] {
	return &Image3[T]{
		planes: [3]*Image[T]{
			NewImage[T](width, height),
			NewImage[T](width, height),
			NewImage[T](width, height),
		},
	}
}

// Plane returns the specified plane (0, 1, or 2).
func (img *Image3[T]) Plane(i int) *Image[T] {
	if i < 0 || i > 2 {
		return nil
	}
	return img.planes[i]
}

// PlaneRow returns a row from the specified plane.
func (img *Image3[T]) PlaneRow(plane, y int) []T {
	if plane < 0 || plane > 2 {
		return nil
	}
	return img.planes[plane].Row(y)
}

// Width returns the image width (all planes have the same size).
func (img *Image3[T]) Width() int {
	return img.planes[0].Width()
}

// Height returns the image height.
func (img *Image3[T]) Height() int {
	return img.planes[0].Height()
}

// At returns the three plane values at (x, y).
func (img *Image3[T]) At(x, y int) [3]T {
	return [3]T{img.planes[0].At(x, y), img.planes[1].At(x, y), img.planes[2].At(x, y)}
}

// Set writes the three plane values at (x, y).
func (img *Image3[T]) Set(x, y int, px [3]T) {
	for c := range 3 {
		img.planes[c].Set(x, y, px[c])
	}
}

// Fill sets every pixel of every plane to value.
func (img *Image3[T]) Fill(value T) {
	for _, p := range img.planes {
		p.Fill(value)
	}
}
