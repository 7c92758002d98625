// Package timing records per-stage durations across repeated pipeline runs
// and summarizes them.
package timing

import (
	"fmt"
	"io"
	"math"
	"slices"
	"sync"
	"text/tabwriter"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Recorder collects durations by stage name. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	order   []string
	samples map[string][]time.Duration
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{samples: make(map[string][]time.Duration)}
}

// Observe records one duration for stage. Its signature matches
// isp.WithObserver.
func (r *Recorder) Observe(stage string, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.samples[stage]; !ok {
		r.order = append(r.order, stage)
	}
	r.samples[stage] = append(r.samples[stage], d)
}

// Time starts timing name and returns the function that stops it:
//
//	defer rec.Time("frame")()
func (r *Recorder) Time(name string) func() {
	start := time.Now()
	return func() {
		r.Observe(name, time.Since(start))
	}
}

// Stages returns the stage names in order of first observation.
func (r *Recorder) Stages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.order)
}

// Samples returns a copy of the durations recorded for stage.
func (r *Recorder) Samples(stage string) []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.samples[stage])
}

// Reset drops all recorded samples.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = nil
	clear(r.samples)
}

// Summary describes the durations of one stage, in milliseconds.
type Summary struct {
	Stage string
	Count int
	Mean  float64
	Std   float64 // sample standard deviation; 0 for a single sample
	Min   float64
	P25   float64
	P50   float64
	P75   float64
	Max   float64
}

// Summaries returns one Summary per stage, in order of first observation.
// Quantiles are empirical: the smallest sample at or above the fraction.
func (r *Recorder) Summaries() []Summary {
	var out []Summary
	for _, stage := range r.Stages() {
		out = append(out, Summarize(stage, r.Samples(stage)))
	}
	return out
}

// Summarize computes a Summary of samples.
func Summarize(stage string, samples []time.Duration) Summary {
	s := Summary{Stage: stage, Count: len(samples)}
	if len(samples) == 0 {
		return s
	}

	ms := make([]float64, len(samples))
	for i, d := range samples {
		ms[i] = float64(d) / float64(time.Millisecond)
	}
	slices.Sort(ms)

	s.Mean = stat.Mean(ms, nil)
	if len(ms) > 1 {
		s.Std = stat.StdDev(ms, nil)
	}
	s.Min = floats.Min(ms)
	s.Max = floats.Max(ms)
	s.P25 = stat.Quantile(0.25, stat.Empirical, ms, nil)
	s.P50 = stat.Quantile(0.50, stat.Empirical, ms, nil)
	s.P75 = stat.Quantile(0.75, stat.Empirical, ms, nil)
	return s
}

// WriteTable prints summaries as an aligned table, in milliseconds.
func WriteTable(w io.Writer, summaries []Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "stage\tcount\tmean\tstd\tmin\t25%\t50%\t75%\tmax\t")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			s.Stage, s.Count, ms(s.Mean), ms(s.Std), ms(s.Min), ms(s.P25), ms(s.P50), ms(s.P75), ms(s.Max))
	}
	return tw.Flush()
}

func ms(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.3f", v)
}
