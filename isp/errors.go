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

import "errors"

var (
	// ErrUnsupportedPattern is returned for any Bayer layout other than GRBG.
	ErrUnsupportedPattern = errors.New("isp: unsupported bayer pattern")

	// ErrFrameShape is returned for frames with zero or odd dimensions, or
	// frames whose size does not match the stage input.
	ErrFrameShape = errors.New("isp: invalid frame shape")

	// ErrNonFiniteGain is returned when the estimated gains are NaN, infinite
	// or not positive, as happens for a frame with an all-zero channel.
	ErrNonFiniteGain = errors.New("isp: non-finite white balance gain")

	// ErrGainRange is returned when a gain does not fit GainIntBits.
	ErrGainRange = errors.New("isp: white balance gain out of range")

	// ErrMatrixScale is returned for color matrices whose scale is not a
	// positive power of two.
	ErrMatrixScale = errors.New("isp: color matrix scale must be a power of two")

	// ErrFormat is returned by Format.Validate.
	ErrFormat = errors.New("isp: invalid sample format")

	// ErrUnknownBackend is returned by NewBackend for unregistered names.
	ErrUnknownBackend = errors.New("isp: unknown backend")
)
