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

package hwy

import "math"

// Promotions widen every lane of v; the result has the same lane count as the
// input, so callers load MaxLanes of the wider type from the narrow slice.

// PromoteU16ToU32 zero-extends uint16 lanes to uint32.
func PromoteU16ToU32(v Vec[uint16]) Vec[uint32] {
	result := make([]uint32, len(v.data))
	for i, x := range v.data {
		result[i] = uint32(x)
	}
	return Vec[uint32]{data: result}
}

// PromoteU32ToI64 zero-extends uint32 lanes into signed 64-bit lanes, so that
// products with negative coefficients can be accumulated.
func PromoteU32ToI64(v Vec[uint32]) Vec[int64] {
	result := make([]int64, len(v.data))
	for i, x := range v.data {
		result[i] = int64(x)
	}
	return Vec[int64]{data: result}
}

// DemoteI64ToU16 narrows int64 lanes to uint16 with saturation:
// negative values become 0 and values above 65535 become 65535.
func DemoteI64ToU16(v Vec[int64]) Vec[uint16] {
	result := make([]uint16, len(v.data))
	for i, x := range v.data {
		switch {
		case x < 0:
			result[i] = 0
		case x > math.MaxUint16:
			result[i] = math.MaxUint16
		default:
			result[i] = uint16(x)
		}
	}
	return Vec[uint16]{data: result}
}
