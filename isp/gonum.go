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

import "gonum.org/v1/gonum/stat"

// GonumBackend estimates gains with gonum/stat means and applies the color
// matrix as gonum/mat products; white balance and demosaic use the vector
// kernels.
//
// The channel samples are integers and the means divide exact sums, so the
// gains equal those of the integer-sum backends bit for bit.
func GonumBackend(f Format) Backend {
	k := vecKernels
	k.gains = gonumGains
	k.correct = gonumCorrectRows
	return &stages{name: "gonum", format: f, k: k}
}

func gonumGains(raw *RawFrame) GainPair {
	n := (raw.Width() / 2) * (raw.Height() / 2)
	gr := make([]float64, 0, n)
	r := make([]float64, 0, n)
	b := make([]float64, 0, n)
	gb := make([]float64, 0, n)

	for y := 0; y < raw.Height(); y += 2 {
		top, bottom := raw.RowSlice(y), raw.RowSlice(y+1)
		for x := 0; x < len(top); x += 2 {
			gr = append(gr, float64(top[x]))
			r = append(r, float64(top[x+1]))
			b = append(b, float64(bottom[x]))
			gb = append(gb, float64(bottom[x+1]))
		}
	}
	return gainsFromMeans(stat.Mean(gr, nil), stat.Mean(r, nil), stat.Mean(b, nil), stat.Mean(gb, nil))
}
