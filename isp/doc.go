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

// Package isp implements a Bayer-domain image signal processing pipeline:
// automatic white-balance gain estimation, white balance, bilinear
// demosaicing and color-correction-matrix application.
//
// Samples stay in integer or fixed-point form from the sensor to the output.
// A raw frame holds SampleBits-wide samples in 16-bit cells; white balance
// moves them into the working format U(SampleBits+GainIntBits, FracBits) held
// in 32-bit cells; color correction narrows back to SampleBits.
//
// Every stage has several interchangeable implementations, bundled as a
// Backend:
//
//   - ReferenceBackend: plain nested loops, the definition of the numerics.
//   - VectorBackend: the same arithmetic on hwy lanes.
//   - ParallelBackend: the vector kernels split over a workerpool.Pool by
//     pairs of rows.
//   - GonumBackend: gain means via gonum/stat and the color matrix via
//     gonum/mat.
//
// All backends produce bit-identical buffers for the same input; the tests
// enforce it.
//
// # Bayer layout
//
// Only GRBG is supported:
//
//	x:   0  1  2  3
//	y=0: Gr R  Gr R
//	y=1: B  Gb B  Gb
//
// Other layouts are recognized by ParsePattern but every stage rejects them
// with ErrUnsupportedPattern.
//
// # Usage Example
//
//	raw := image.FromSlice(samples, 2592, 1536)
//	ccm, _ := isp.NewMatrix(red, green, blue, 1024)
//
//	p := isp.New(isp.VectorBackend(isp.DefaultFormat()))
//	res, err := p.Run(raw, isp.GRBG, ccm)
//	if err != nil {
//	    return err
//	}
//	rgb := res.Output // *image.Image3[uint16], 10-bit samples
package isp
