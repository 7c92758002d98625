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

	"github.com/ajroetker/go-isp/hwy/contrib/workerpool"
)

const benchWidth, benchHeight = 1296, 768

func BenchmarkPipeline(b *testing.B) {
	raw := randomRaw(benchWidth, benchHeight, 1)
	m := testMatrix(b)
	pool := workerpool.New(0)
	defer pool.Close()

	for _, name := range BackendNames() {
		backend, err := NewBackend(name, DefaultFormat(), pool)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(name, func(b *testing.B) {
			p := New(backend)
			b.SetBytes(int64(benchWidth * benchHeight * 2))
			for b.Loop() {
				if _, err := p.Run(raw, GRBG, m); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDemosaic(b *testing.B) {
	m := rampMosaic(benchWidth, benchHeight, 3)
	cache := NewBufferCache()
	for _, backend := range []Backend{ReferenceBackend(DefaultFormat()), VectorBackend(DefaultFormat())} {
		b.Run(backend.Name(), func(b *testing.B) {
			for b.Loop() {
				if _, err := backend.Demosaic(m, GRBG, cache); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
