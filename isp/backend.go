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
	"slices"
	"strings"
	"sync"

	"github.com/ajroetker/go-isp/fxp"
	"github.com/ajroetker/go-isp/hwy/contrib/workerpool"
	"github.com/samber/lo"
)

// GainEstimator computes white balance gains from a raw mosaic.
// Zero channel means yield non-finite gains; callers validate the result.
type GainEstimator interface {
	EstimateGains(raw *RawFrame, p Pattern) (GainPair, error)
}

// WhiteBalancer applies gains to the R and B samples of a raw mosaic and
// moves every sample into the working format. The raw frame is not modified;
// the result is the cache's StageWhiteBalance buffer, rewritten in full on
// every call.
type WhiteBalancer interface {
	WhiteBalance(raw *RawFrame, g GainPair, p Pattern, cache *BufferCache) (*MosaicFrame, error)
}

// Demosaicer reconstructs R, G, B planes by per-block bilinear interpolation
// into the cache's StageDemosaic buffer. A two-sample margin on every edge is
// left unwritten.
type Demosaicer interface {
	Demosaic(m *MosaicFrame, p Pattern, cache *BufferCache) (*RGBFrame, error)
}

// ColorCorrector applies a color matrix to every pixel and clamps the result
// to [0, MaxSample] in the cache's StageColorCorrect buffer.
type ColorCorrector interface {
	ColorCorrect(rgb *RGBFrame, m Matrix, cache *BufferCache) (*OutputFrame, error)
}

// Backend bundles one implementation of every stage. All backends produce
// identical buffers for identical inputs.
type Backend interface {
	Name() string
	Format() Format
	GainEstimator
	WhiteBalancer
	Demosaicer
	ColorCorrector
}

// Row kernels. Row ranges of sums and demos start on an even row and cover
// whole pairs.
type kernels struct {
	sums    func(raw *RawFrame, y0, y1 int) channelSums
	gains   func(raw *RawFrame) GainPair // replaces sums when set
	balance func(raw *RawFrame, out *MosaicFrame, f Format, rGain, bGain fxp.Number, y0, y1 int)
	demos   func(m *MosaicFrame, out *RGBFrame, y0, y1 int)
	correct func(rgb *RGBFrame, out *OutputFrame, f Format, m Matrix, y0, y1 int)
}

// stages implements Backend by running kernels over row ranges, either
// inline or split across a worker pool.
type stages struct {
	name   string
	format Format
	pool   *workerpool.Pool
	k      kernels
}

var (
	refKernels = kernels{
		sums:    refSumRows,
		balance: refBalanceRows,
		demos:   refDemosaicRows,
		correct: refCorrectRows,
	}
	vecKernels = kernels{
		sums:    vecSumRows,
		balance: vecBalanceRows,
		demos:   vecDemosaicRows,
		correct: vecCorrectRows,
	}
)

// ReferenceBackend returns the scalar loop implementation. It defines the
// numerics every other backend reproduces.
func ReferenceBackend(f Format) Backend {
	return &stages{name: "reference", format: f, k: refKernels}
}

// VectorBackend returns the hwy lane implementation.
func VectorBackend(f Format) Backend {
	return &stages{name: "vector", format: f, k: vecKernels}
}

// ParallelBackend runs the vector kernels on pool, splitting every stage by
// pairs of rows. The pool is borrowed; the caller closes it. A nil pool runs
// everything on the calling goroutine.
func ParallelBackend(f Format, pool *workerpool.Pool) Backend {
	return &stages{name: "parallel", format: f, pool: pool, k: vecKernels}
}

func (s *stages) Name() string   { return s.name }
func (s *stages) Format() Format { return s.format }

func (s *stages) rows(first, last int, fn func(y0, y1 int)) {
	if s.pool == nil {
		fn(first, last)
		return
	}
	s.pool.ParallelRows(first, last, 2, fn)
}

func checkShape(width, height int) error {
	if width <= 0 || height <= 0 || width%2 != 0 || height%2 != 0 {
		return fmt.Errorf("%w: %dx%d, want positive even dimensions", ErrFrameShape, width, height)
	}
	return nil
}

func checkRaw(raw *RawFrame, p Pattern) error {
	if err := checkPattern(p); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("%w: nil frame", ErrFrameShape)
	}
	return checkShape(raw.Width(), raw.Height())
}

func (s *stages) EstimateGains(raw *RawFrame, p Pattern) (GainPair, error) {
	if err := checkRaw(raw, p); err != nil {
		return GainPair{}, err
	}
	if s.k.gains != nil {
		return s.k.gains(raw), nil
	}

	var (
		mu    sync.Mutex
		total channelSums
	)
	s.rows(0, raw.Height(), func(y0, y1 int) {
		part := s.k.sums(raw, y0, y1)
		mu.Lock()
		total.merge(part)
		mu.Unlock()
	})
	return total.gains(), nil
}

func (s *stages) WhiteBalance(raw *RawFrame, g GainPair, p Pattern, cache *BufferCache) (*MosaicFrame, error) {
	if err := checkRaw(raw, p); err != nil {
		return nil, err
	}
	if err := s.format.Validate(); err != nil {
		return nil, err
	}
	rGain, bGain, err := g.Fixed(s.format)
	if err != nil {
		return nil, err
	}

	out := cache.Mosaic(StageWhiteBalance, raw.Width(), raw.Height())
	s.rows(0, raw.Height(), func(y0, y1 int) {
		s.k.balance(raw, out, s.format, rGain, bGain, y0, y1)
	})
	return out, nil
}

func (s *stages) Demosaic(m *MosaicFrame, p Pattern, cache *BufferCache) (*RGBFrame, error) {
	if err := checkPattern(p); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: nil frame", ErrFrameShape)
	}
	if err := checkShape(m.Width(), m.Height()); err != nil {
		return nil, err
	}

	out := cache.Planes(StageDemosaic, m.Width(), m.Height())
	s.rows(demosaicMargin, m.Height()-demosaicMargin, func(y0, y1 int) {
		s.k.demos(m, out, y0, y1)
	})
	return out, nil
}

func (s *stages) ColorCorrect(rgb *RGBFrame, m Matrix, cache *BufferCache) (*OutputFrame, error) {
	// Planes carry no Bayer blocks, so any positive size is accepted.
	if rgb == nil || rgb.Width() <= 0 || rgb.Height() <= 0 {
		return nil, fmt.Errorf("%w: empty frame", ErrFrameShape)
	}
	if err := s.format.Validate(); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	out := cache.Output(StageColorCorrect, rgb.Width(), rgb.Height())
	s.rows(0, rgb.Height(), func(y0, y1 int) {
		s.k.correct(rgb, out, s.format, m, y0, y1)
	})
	return out, nil
}

// BackendFactory builds a backend. Factories that do not run in parallel
// ignore pool.
type BackendFactory func(f Format, pool *workerpool.Pool) Backend

var registry = map[string]BackendFactory{
	"reference": func(f Format, _ *workerpool.Pool) Backend { return ReferenceBackend(f) },
	"vector":    func(f Format, _ *workerpool.Pool) Backend { return VectorBackend(f) },
	"parallel":  ParallelBackend,
	"gonum":     func(f Format, _ *workerpool.Pool) Backend { return GonumBackend(f) },
}

// BackendNames returns the registered backend names, sorted.
func BackendNames() []string {
	names := lo.Keys(registry)
	slices.Sort(names)
	return names
}

// NewBackend returns the named backend for format f. pool is used by the
// parallel backend only.
func NewBackend(name string, f Format, pool *workerpool.Pool) (Backend, error) {
	factory, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownBackend, name, strings.Join(BackendNames(), ", "))
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return factory(f, pool), nil
}
