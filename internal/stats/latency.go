// Package stats records request latencies in an HDR histogram.
package stats

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Histogram range: 1 microsecond to 1 hour, 3 significant figures.
const (
	histogramMin     = 1
	histogramMax     = int64(time.Hour / time.Microsecond)
	histogramSigFigs = 3
)

// Recorder collects latencies and outcome counts.
// Recorder is safe for concurrent use.
type Recorder struct {
	mu        sync.Mutex
	hist      *hdrhistogram.Histogram
	successes int64
	failures  int64
}

// Summary is a snapshot of a Recorder.
type Summary struct {
	Count     int64
	Successes int64
	Failures  int64
	Min       time.Duration
	Max       time.Duration
	Mean      time.Duration
	P50       time.Duration
	P90       time.Duration
	P99       time.Duration
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		hist: hdrhistogram.New(histogramMin, histogramMax, histogramSigFigs),
	}
}

// Record adds one observation. Latencies outside the histogram range are
// clamped to it.
func (r *Recorder) Record(latency time.Duration, success bool) {
	us := latency.Microseconds()
	if us < histogramMin {
		us = histogramMin
	}
	if us > histogramMax {
		us = histogramMax
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_ = r.hist.RecordValue(us)
	if success {
		r.successes++
	} else {
		r.failures++
	}
}

// Summary returns the current statistics.
func (r *Recorder) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Summary{
		Count:     r.hist.TotalCount(),
		Successes: r.successes,
		Failures:  r.failures,
	}
	if s.Count == 0 {
		return s
	}

	s.Min = micros(r.hist.Min())
	s.Max = micros(r.hist.Max())
	s.Mean = time.Duration(r.hist.Mean() * float64(time.Microsecond))
	s.P50 = micros(r.hist.ValueAtQuantile(50))
	s.P90 = micros(r.hist.ValueAtQuantile(90))
	s.P99 = micros(r.hist.ValueAtQuantile(99))
	return s
}

// Reset clears all observations.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.hist.Reset()
	r.successes = 0
	r.failures = 0
}

func micros(v int64) time.Duration {
	return time.Duration(v) * time.Microsecond
}
