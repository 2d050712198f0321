// Package stats summarizes score samples from autoplay runs.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Statistic is a running mean and variance (Welford's algorithm), for
// samples that arrive one at a time and are not kept.
type Statistic struct {
	n    int
	last float64
	mean float64
	m2   float64
}

func (s *Statistic) Push(val float64) {
	s.last = val
	s.n++
	delta := val - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (val - s.mean)
}

func (s *Statistic) Mean() float64 {
	return s.mean
}

func (s *Statistic) Variance() float64 {
	if s.n <= 1 {
		return 0.0
	}
	return s.m2 / float64(s.n-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

func (s *Statistic) Last() float64 {
	return s.last
}

// StandardError returns the standard error of the mean.
func (s *Statistic) StandardError() float64 {
	if s.n == 0 {
		return 0.0
	}
	return math.Sqrt(s.Variance() / float64(s.n))
}

func (s *Statistic) Iterations() int {
	return s.n
}

// Description is a summary of a complete sample.
type Description struct {
	N      int     `yaml:"n" json:"n"`
	Mean   float64 `yaml:"mean" json:"mean"`
	Stdev  float64 `yaml:"stdev" json:"stdev"`
	Min    float64 `yaml:"min" json:"min"`
	Max    float64 `yaml:"max" json:"max"`
	Median float64 `yaml:"median" json:"median"`
}

// Describe summarizes values. It does not modify the slice.
func Describe(values []float64) Description {
	if len(values) == 0 {
		return Description{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	d := Description{
		N:      len(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
	}
	if len(sorted) == 1 {
		d.Mean = sorted[0]
		return d
	}
	d.Mean, d.Stdev = stat.MeanStdDev(sorted, nil)
	return d
}
