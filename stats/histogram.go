package stats

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Histogram bins values from lowestValue to highestValue into left-closed,
// right-open bins of width binSize, plus two extremal bins collecting
// everything below lowestValue and at-or-above the true highest value (the
// constructor widens highestValue up to the next whole multiple of binSize,
// same as Histogram::Histogram's alternativeIntCeil). It also keeps the
// Statistics of every value ever added, since mean/variance describe the
// distribution in a way no finite binning can. Grounded on
// original_source/src/Histogram.cpp.
type Histogram struct {
	Statistics

	binSize      float64
	lowestValue  float64
	numberOfBins int
	highestValue float64
	bins         []int64
}

// NewHistogram builds a Histogram covering [lowestValue, highestValue) in
// steps of binSize, panicking on a non-positive bin size or an empty range.
func NewHistogram(binSize, lowestValue, highestValue float64) *Histogram {
	if binSize <= 0 || lowestValue >= highestValue {
		chk.Panic("stats: NewHistogram called with irregular parameters (binSize=%g, lowest=%g, highest=%g)", binSize, lowestValue, highestValue)
	}
	n := int(math.Ceil((highestValue - lowestValue) / binSize))
	return &Histogram{
		binSize:      binSize,
		lowestValue:  lowestValue,
		numberOfBins: n,
		highestValue: lowestValue + float64(n)*binSize,
		bins:         make([]int64, n+2),
	}
}

// AddValue folds value into both the running Statistics and the bin it
// falls in, redefining Histogram::addValue's dual behaviour.
func (h *Histogram) AddValue(value float64) {
	h.Statistics.AddValue(value)

	var binNumber int
	switch {
	case value < h.lowestValue:
		binNumber = 0
	case value >= h.highestValue:
		binNumber = h.numberOfBins + 1
	default:
		binNumber = int(math.Floor((value-h.lowestValue)/h.binSize)) + 1
	}
	h.bins[binNumber]++
}

// NumberOfBins is the count of non-extremal bins.
func (h *Histogram) NumberOfBins() int { return h.numberOfBins }

// BinCount returns the raw count in binNumber, where 0 and NumberOfBins()+1
// are the two extremal bins.
func (h *Histogram) BinCount(binNumber int) int64 {
	return h.bins[binNumber]
}

// BinBounds returns the [lower, upper) bounds of binNumber, with the two
// extremal bins reported as open-ended via math.Inf.
func (h *Histogram) BinBounds(binNumber int) (lower, upper float64) {
	switch {
	case binNumber == 0:
		return math.Inf(-1), h.lowestValue
	case binNumber == h.numberOfBins+1:
		return h.highestValue, math.Inf(1)
	default:
		lower = float64(binNumber-1)*h.binSize + h.lowestValue
		return lower, lower + h.binSize
	}
}

// BinFraction returns BinCount(binNumber) as a fraction of the total sample
// count, matching the final column of Histogram::operator<<.
func (h *Histogram) BinFraction(binNumber int) float64 {
	if h.NumberOfSamples() == 0 {
		return 0
	}
	return float64(h.bins[binNumber]) / float64(h.NumberOfSamples())
}
