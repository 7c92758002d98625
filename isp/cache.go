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

import "github.com/ajroetker/go-isp/hwy/contrib/image"

// Stage names used as BufferCache keys.
const (
	StageWhiteBalance = "wb"
	StageDemosaic     = "demos"
	StageColorCorrect = "ccm"
)

// BufferCache keeps one output buffer per stage so that repeated runs on
// same-sized frames allocate nothing. Buffers are created on first use and
// live until Reset.
//
// The cache does not check shapes: after switching to a frame of another
// size, call Reset before the next run. A BufferCache is not safe for
// concurrent use; give each Pipeline its own.
//
// A nil *BufferCache is valid and allocates a fresh buffer on every request.
type BufferCache struct {
	mosaics     map[string]*MosaicFrame
	planes      map[string]*RGBFrame
	outputs     map[string]*OutputFrame
	allocations int
}

// NewBufferCache returns an empty cache.
func NewBufferCache() *BufferCache {
	return &BufferCache{
		mosaics: make(map[string]*MosaicFrame),
		planes:  make(map[string]*RGBFrame),
		outputs: make(map[string]*OutputFrame),
	}
}

func lookup[B any](c *BufferCache, m map[string]*B, stage string, alloc func() *B) *B {
	if c == nil {
		return alloc()
	}
	if buf, ok := m[stage]; ok {
		return buf
	}
	buf := alloc()
	m[stage] = buf
	c.allocations++
	return buf
}

// Mosaic returns the single-plane working buffer for stage.
func (c *BufferCache) Mosaic(stage string, width, height int) *MosaicFrame {
	var m map[string]*MosaicFrame
	if c != nil {
		m = c.mosaics
	}
	return lookup(c, m, stage, func() *MosaicFrame {
		return image.NewImage[uint32](width, height)
	})
}

// Planes returns the three-plane working buffer for stage.
func (c *BufferCache) Planes(stage string, width, height int) *RGBFrame {
	var m map[string]*RGBFrame
	if c != nil {
		m = c.planes
	}
	return lookup(c, m, stage, func() *RGBFrame {
		return image.NewImage3[uint32](width, height)
	})
}

// Output returns the three-plane output buffer for stage.
func (c *BufferCache) Output(stage string, width, height int) *OutputFrame {
	var m map[string]*OutputFrame
	if c != nil {
		m = c.outputs
	}
	return lookup(c, m, stage, func() *OutputFrame {
		return image.NewImage3[uint16](width, height)
	})
}

// Len returns the number of cached buffers.
func (c *BufferCache) Len() int {
	if c == nil {
		return 0
	}
	return len(c.mosaics) + len(c.planes) + len(c.outputs)
}

// Allocations returns the number of buffers allocated since the cache was
// created. It is not reset by Reset.
func (c *BufferCache) Allocations() int {
	if c == nil {
		return 0
	}
	return c.allocations
}

// Reset drops every cached buffer.
func (c *BufferCache) Reset() {
	if c == nil {
		return
	}
	clear(c.mosaics)
	clear(c.planes)
	clear(c.outputs)
}
