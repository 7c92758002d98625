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

	"github.com/ajroetker/go-isp/fxp"
	"github.com/ajroetker/go-isp/hwy/contrib/image"
)

// Frame types flowing between the stages.
type (
	// RawFrame is a Bayer mosaic of SampleBits-wide sensor samples.
	RawFrame = image.Image[uint16]
	// MosaicFrame is a white-balanced mosaic in the working format.
	MosaicFrame = image.Image[uint32]
	// RGBFrame holds demosaiced R, G, B planes in the working format.
	RGBFrame = image.Image3[uint32]
	// OutputFrame holds color-corrected planes narrowed to SampleBits.
	OutputFrame = image.Image3[uint16]
)

// Format describes the fixed-point layout of the pipeline.
//
// Raw samples are U(SampleBits, 0). Gains are U(GainIntBits, GainFracBits).
// The working format of MosaicFrame and RGBFrame is
// U(SampleBits+GainIntBits, FracBits).
type Format struct {
	SampleBits   int
	FracBits     int
	GainIntBits  int
	GainFracBits int
}

// DefaultFormat returns the layout for 10-bit sensors: 6 fractional working
// bits and U(6, 10) gains.
func DefaultFormat() Format {
	return Format{SampleBits: 10, FracBits: 6, GainIntBits: 6, GainFracBits: 10}
}

// Validate checks that the layout fits the 32-bit working cells, including
// the sample-times-gain product and the four-sample sums of the demosaicer.
func (f Format) Validate() error {
	switch {
	case f.SampleBits < 1 || f.SampleBits > 16:
		return fmt.Errorf("%w: sample bits %d not in [1, 16]", ErrFormat, f.SampleBits)
	case f.FracBits < 0:
		return fmt.Errorf("%w: negative frac bits %d", ErrFormat, f.FracBits)
	case f.GainIntBits < 1:
		return fmt.Errorf("%w: gain int bits %d < 1", ErrFormat, f.GainIntBits)
	case f.GainFracBits < f.FracBits:
		return fmt.Errorf("%w: gain frac bits %d < frac bits %d", ErrFormat, f.GainFracBits, f.FracBits)
	case f.SampleBits+f.GainIntBits+f.GainFracBits > 32:
		return fmt.Errorf("%w: sample-gain product needs %d bits", ErrFormat, f.SampleBits+f.GainIntBits+f.GainFracBits)
	case f.WorkingBits() > 30:
		return fmt.Errorf("%w: working format needs %d bits", ErrFormat, f.WorkingBits())
	}
	return nil
}

// MaxSample returns the largest raw and output sample, 2^SampleBits - 1.
func (f Format) MaxSample() uint32 {
	return 1<<f.SampleBits - 1
}

// WorkingBits returns the width of working-format values.
func (f Format) WorkingBits() int {
	return f.SampleBits + f.GainIntBits + f.FracBits
}

// Working converts a working-format cell to fxp.
func (f Format) Working(v uint32) fxp.Number {
	return fxp.Number{Stored: int64(v), NInt: f.SampleBits + f.GainIntBits, NFrac: f.FracBits}
}

// Sample converts a raw sample to fxp.
func (f Format) Sample(s uint16) fxp.Number {
	return fxp.Number{Stored: int64(s), NInt: f.SampleBits}
}

// gainShift is the right shift taking a sample-times-gain product to the
// working format.
func (f Format) gainShift() int {
	return f.GainFracBits - f.FracBits
}
