// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"time"
)

// Summary describes a set of timing samples, in seconds.
type Summary struct {
	N        int
	Mean     float64
	Variance float64 // unbiased; 0 when N < 2
	StdDev   float64
	Min      float64
	Max      float64
}

// Seconds converts durations to float seconds.
func Seconds(samples []time.Duration) []float64 {
	out := make([]float64, len(samples))
	for i, d := range samples {
		out[i] = d.Seconds()
	}
	return out
}

// RunningMeans returns the mean of the first i+1 samples at each index i.
func RunningMeans(xs []float64) []float64 {
	means := make([]float64, len(xs))
	var cur float64
	for i, x := range xs {
		cur = (cur*float64(i) + x) / float64(i+1)
		means[i] = cur
	}
	return means
}

// Summarize computes mean, variance and range of xs using Welford's method.
func Summarize(xs []float64) Summary {
	s := Summary{N: len(xs)}
	if s.N == 0 {
		return s
	}
	s.Min, s.Max = xs[0], xs[0]
	var m2 float64
	for i, x := range xs {
		delta := x - s.Mean
		s.Mean += delta / float64(i+1)
		m2 += delta * (x - s.Mean)
		s.Min = min(s.Min, x)
		s.Max = max(s.Max, x)
	}
	if s.N > 1 {
		s.Variance = m2 / float64(s.N-1)
	}
	s.StdDev = math.Sqrt(s.Variance)
	return s
}

// Dump writes one sample per line in seconds, readable by numpy.loadtxt.
func Dump(w io.Writer, samples []time.Duration) error {
	bw := bufio.NewWriter(w)
	for _, d := range samples {
		if _, err := fmt.Fprintf(bw, "%.9f\n", d.Seconds()); err != nil {
			return err
		}
	}
	return bw.Flush()
}
