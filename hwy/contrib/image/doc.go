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

// Package image provides vector-friendly 2D image types.
//
// Image[T] is a single-channel image and Image3[T] bundles three same-sized
// planes (R, G, B). Rows are padded to the vector width so that row kernels
// can load full vectors without bounds checks.
//
// # Usage Example
//
//	// Wrap a sensor readout of 10-bit samples in 16-bit cells.
//	raw := image.FromSlice(samples, 2592, 1536)
//
//	// Planar output buffer.
//	rgb := image.NewImage3[uint32](raw.Width(), raw.Height())
//	for y := 0; y < raw.Height(); y++ {
//	    in := raw.Row(y)
//	    out := rgb.PlaneRow(0, y)
//	    // Process row with hwy operations
//	}
package image
