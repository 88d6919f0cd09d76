// Package stats accumulates the run-time observables spec.md §4.7 and §6
// ask the simulator to report: online mean/variance, positional histograms,
// transition-path traces, a drift/diffusion estimator, and the file writer
// that drives them all from a sim.Propagator run. Grounded on
// original_source/src/Statistics.cpp, Histogram.cpp, TransitionPath.cpp and
// ActinDynamicsEstimate.cpp.
package stats

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Statistics is Welford's online mean/variance accumulator, ported from
// Statistics::addValue. Unlike the two-pass formula, it never revisits a
// sample, which matters here because a run can accumulate many millions of
// them.
type Statistics struct {
	nSamples              int64
	mean                  float64
	accumulatedSquaredDev float64
}

// AddValue folds one more sample into the running mean and variance.
func (s *Statistics) AddValue(value float64) {
	s.nSamples++
	previousMean := s.mean
	s.mean += (value - previousMean) / float64(s.nSamples)
	s.accumulatedSquaredDev += (value - s.mean) * (value - previousMean)
}

// NumberOfSamples returns the count of values folded in so far.
func (s *Statistics) NumberOfSamples() int64 { return s.nSamples }

// Mean panics if no sample has been added, mirroring
// Statistics::getMean's exception on an empty accumulator.
func (s *Statistics) Mean() float64 {
	if s.nSamples == 0 {
		chk.Panic("stats: Mean() called with no samples")
	}
	return s.mean
}

// Variance panics with fewer than two samples: a single sample carries no
// variance information.
func (s *Statistics) Variance() float64 {
	if s.nSamples < 2 {
		chk.Panic("stats: Variance() called with insufficient samples (%d)", s.nSamples)
	}
	return s.accumulatedSquaredDev / float64(s.nSamples-1)
}

// SEM is the standard error of the mean, sqrt(Variance/N).
func (s *Statistics) SEM() float64 {
	return math.Sqrt(s.Variance() / float64(s.nSamples))
}

// CanReportStatistics reports whether Variance (and hence SEM) would
// succeed without panicking.
func (s *Statistics) CanReportStatistics() bool { return s.nSamples > 1 }
