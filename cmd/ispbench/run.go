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

package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ajroetker/go-isp/hwy/contrib/image"
	"github.com/ajroetker/go-isp/hwy/contrib/workerpool"
	"github.com/ajroetker/go-isp/internal/config"
	"github.com/ajroetker/go-isp/internal/timing"
	"github.com/ajroetker/go-isp/isp"
)

type runOptions struct {
	rawPath    string
	configPath string
	synthetic  string
	backend    string
	workers    int
	iterations int
	resetEvery bool
}

func newRunCmd(log *logrus.Logger) *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the pipeline and print stage timings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, log, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.rawPath, "raw", "", "raw frame of little-endian uint16 samples")
	f.StringVar(&opts.configPath, "config", "", "dataset configuration (default: <raw stem>-configs.yml)")
	f.StringVar(&opts.synthetic, "synthetic", "", "use a synthetic WxH frame instead of --raw, e.g. 1920x1080")
	f.StringVar(&opts.backend, "backend", "", "backend name (default: from config, else vector)")
	f.IntVar(&opts.workers, "workers", -1, "parallel backend workers (default: from config; 0 = GOMAXPROCS)")
	f.IntVarP(&opts.iterations, "iterations", "n", 0, "number of runs (default: from config)")
	f.BoolVar(&opts.resetEvery, "reset", false, "reset the buffer cache before every run")
	cmd.MarkFlagsMutuallyExclusive("raw", "synthetic")
	cmd.MarkFlagsOneRequired("raw", "synthetic")
	return cmd
}

func run(cmd *cobra.Command, log *logrus.Logger, opts runOptions) error {
	cfg, raw, err := loadInput(opts)
	if err != nil {
		return err
	}
	if opts.backend != "" {
		cfg.Pipeline.Backend = opts.backend
	}
	if opts.workers >= 0 {
		cfg.Pipeline.Workers = opts.workers
	}
	if opts.iterations > 0 {
		cfg.Pipeline.Iterations = opts.iterations
	}

	pattern, err := cfg.Pattern()
	if err != nil {
		return err
	}
	matrix, err := cfg.Matrix()
	if err != nil {
		return err
	}

	pool := workerpool.New(cfg.Pipeline.Workers)
	defer pool.Close()

	backend, err := isp.NewBackend(cfg.Pipeline.Backend, cfg.Format(), pool)
	if err != nil {
		return err
	}

	rec := timing.NewRecorder()
	p := isp.New(backend, isp.WithLogger(log), isp.WithObserver(rec.Observe))

	log.WithFields(logrus.Fields{
		"backend":    backend.Name(),
		"width":      raw.Width(),
		"height":     raw.Height(),
		"pattern":    pattern.String(),
		"iterations": cfg.Pipeline.Iterations,
		"workers":    pool.NumWorkers(),
	}).Info("starting benchmark")

	var last *isp.Result
	start := time.Now()
	for range cfg.Pipeline.Iterations {
		if opts.resetEvery {
			p.Reset()
		}
		stop := rec.Time("total")
		last, err = p.Run(raw, pattern, matrix)
		stop()
		if err != nil {
			return err
		}
	}
	elapsed := time.Since(start)

	frameBytes := uint64(raw.Width() * raw.Height() * 2)
	perSecond := float64(cfg.Pipeline.Iterations) / elapsed.Seconds()
	log.WithFields(logrus.Fields{
		"r_gain":       last.Gains.R,
		"b_gain":       last.Gains.B,
		"allocations":  p.Cache().Allocations(),
		"frames_per_s": fmt.Sprintf("%.2f", perSecond),
		"throughput":   humanize.Bytes(uint64(float64(frameBytes)*perSecond)) + "/s",
	}).Info("benchmark done")

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s backend, %dx%d frame (%s), %s runs, units: ms\n",
		backend.Name(), raw.Width(), raw.Height(), humanize.Bytes(frameBytes), humanize.Comma(int64(cfg.Pipeline.Iterations)))
	return timing.WriteTable(out, rec.Summaries())
}

func loadInput(opts runOptions) (*config.Config, *isp.RawFrame, error) {
	if opts.synthetic != "" {
		var w, h int
		if _, err := fmt.Sscanf(opts.synthetic, "%dx%d", &w, &h); err != nil {
			return nil, nil, fmt.Errorf("invalid --synthetic %q: want WxH", opts.synthetic)
		}
		cfg, err := syntheticConfig(w, h)
		if err != nil {
			return nil, nil, err
		}
		return cfg, syntheticFrame(w, h, cfg.Format().MaxSample()), nil
	}

	cfgPath := opts.configPath
	if cfgPath == "" {
		cfgPath = config.ConfigPath(opts.rawPath)
	}
	return config.Dataset{RawPath: opts.rawPath, ConfigPath: cfgPath}.Load()
}

func syntheticConfig(w, h int) (*config.Config, error) {
	cfg := &config.Config{
		SensorInfo: config.SensorInfo{Width: w, Height: h, BayerPattern: "GRBG"},
		ColorMatrix: config.ColorMatrix{
			CorrectedRed:   []int32{1660, -527, -109},
			CorrectedGreen: []int32{-194, 1505, -287},
			CorrectedBlue:  []int32{-34, -458, 1516},
		},
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// syntheticFrame is a noisy diagonal gradient with a warm cast: red sits
// above green and blue below it.
func syntheticFrame(w, h int, maxSample uint32) *isp.RawFrame {
	rng := rand.New(rand.NewPCG(uint64(w), uint64(h)))
	frame := image.NewImage[uint16](w, h)
	for y := range h {
		row := frame.RowSlice(y)
		for x := range row {
			level := float64(x+y) / float64(w+h)
			switch {
			case y%2 == 0 && x%2 == 1:
				level *= 1.3
			case y%2 == 1 && x%2 == 0:
				level *= 0.6
			}
			v := level*0.8*float64(maxSample) + float64(rng.IntN(16))
			row[x] = uint16(min(v, float64(maxSample)))
		}
	}
	return frame
}

func newDatasetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets DIR",
		Short: "List raw frames with a paired configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			datasets, err := config.FindDatasets(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, d := range datasets {
				size := "?"
				if st, err := os.Stat(d.RawPath); err == nil {
					size = humanize.Bytes(uint64(st.Size()))
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", d.Name, size, d.ConfigPath)
			}
			return nil
		},
	}
}
