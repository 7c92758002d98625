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
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// StageGains names the gain estimation stage in logs and observer calls;
// the other stages use their cache keys.
const StageGains = "awb"

// Pipeline sequences the four stages over one backend and owns the buffer
// cache they write into. A Pipeline must not run concurrently with itself;
// separate Pipelines are independent.
type Pipeline struct {
	backend Backend
	cache   *BufferCache
	log     logrus.FieldLogger
	observe func(stage string, elapsed time.Duration)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. Stage timings are logged at debug level.
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// WithObserver registers fn to receive the duration of every successful
// stage, e.g. a timing.Recorder's Observe method.
func WithObserver(fn func(stage string, elapsed time.Duration)) Option {
	return func(p *Pipeline) {
		p.observe = fn
	}
}

// New returns a pipeline running b with a fresh BufferCache.
func New(b Backend, opts ...Option) *Pipeline {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	p := &Pipeline{
		backend: b,
		cache:   NewBufferCache(),
		log:     discard,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result holds the output of every stage of one run. The frames are the
// pipeline's cached buffers and are overwritten by the next Run.
type Result struct {
	RunID    uuid.UUID
	Gains    GainPair
	Balanced *MosaicFrame
	RGB      *RGBFrame
	Output   *OutputFrame
}

// Run processes one raw frame: gains, white balance, demosaic and color
// correction, in that order. The frame must have positive even dimensions
// and the estimated gains must be finite and positive.
func (p *Pipeline) Run(raw *RawFrame, pattern Pattern, m Matrix) (*Result, error) {
	if raw == nil {
		return nil, fmt.Errorf("isp: run: %w: nil frame", ErrFrameShape)
	}
	if err := checkShape(raw.Width(), raw.Height()); err != nil {
		return nil, fmt.Errorf("isp: run: %w", err)
	}
	if err := checkPattern(pattern); err != nil {
		return nil, fmt.Errorf("isp: run: %w", err)
	}

	res := &Result{RunID: uuid.New()}
	log := p.log.WithFields(logrus.Fields{
		"run":     res.RunID.String(),
		"backend": p.backend.Name(),
		"width":   raw.Width(),
		"height":  raw.Height(),
	})

	err := p.stage(log, StageGains, func() (err error) {
		res.Gains, err = p.backend.EstimateGains(raw, pattern)
		if err == nil && !res.Gains.Valid() {
			err = fmt.Errorf("%w: r=%v b=%v", ErrNonFiniteGain, res.Gains.R, res.Gains.B)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if err := p.stage(log, StageWhiteBalance, func() (err error) {
		res.Balanced, err = p.backend.WhiteBalance(raw, res.Gains, pattern, p.cache)
		return err
	}); err != nil {
		return nil, err
	}
	if err := p.stage(log, StageDemosaic, func() (err error) {
		res.RGB, err = p.backend.Demosaic(res.Balanced, pattern, p.cache)
		return err
	}); err != nil {
		return nil, err
	}
	if err := p.stage(log, StageColorCorrect, func() (err error) {
		res.Output, err = p.backend.ColorCorrect(res.RGB, m, p.cache)
		return err
	}); err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{"r_gain": res.Gains.R, "b_gain": res.Gains.B}).Debug("frame processed")
	return res, nil
}

func (p *Pipeline) stage(log logrus.FieldLogger, name string, fn func() error) error {
	start := time.Now()
	if err := fn(); err != nil {
		log.WithError(err).WithField("stage", name).Warn("stage failed")
		return fmt.Errorf("isp: %s: %w", name, err)
	}
	elapsed := time.Since(start)
	log.WithFields(logrus.Fields{"stage": name, "elapsed": elapsed}).Debug("stage done")
	if p.observe != nil {
		p.observe(name, elapsed)
	}
	return nil
}

// Reset drops the cached stage buffers. Call it before running frames of a
// different size.
func (p *Pipeline) Reset() {
	p.cache.Reset()
}

// Cache returns the pipeline's buffer cache.
func (p *Pipeline) Cache() *BufferCache {
	return p.cache
}

// Backend returns the backend the pipeline runs.
func (p *Pipeline) Backend() Backend {
	return p.backend
}
