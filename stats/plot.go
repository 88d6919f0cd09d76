package stats

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
)

// PlotHistogram renders the positional histogram's bin fractions against
// their lower bound, the two open-ended extremal bins clipped to the
// plotted range rather than drawn at +-Inf. Optional: called only when a
// run is asked to produce figures alongside its text output, grounded on
// mreten/plot.go's Plot/PlotEnd pair (LinSpace-free here since the bins
// are already discrete).
func (h *Histogram) PlotHistogram(args, label string) {
	n := h.NumberOfBins() + 2
	x := make([]float64, n)
	y := make([]float64, n)
	for b := 0; b < n; b++ {
		lo, _ := h.BinBounds(b)
		x[b] = lo
		y[b] = h.BinFraction(b)
	}
	// the two extremal bins have infinite bounds; clamp them to their
	// nearest regular neighbour so the plotted x-axis stays finite.
	if n >= 2 {
		x[0] = x[1]
		x[n-1] = x[n-2]
	}
	plt.Plot(x, y, io.Sf("%s, label='%s'", args, label))
}

// PlotDynamicsEstimate renders drift velocity against
// position-relative-to-tip for every bin with enough samples to report.
func (d *DynamicsEstimate) PlotDynamicsEstimate(args, label string) {
	var x, y []float64
	for b := 0; b < d.NumberOfBins(); b++ {
		if !d.CanReport(b) {
			continue
		}
		lo, _ := d.BinBounds(b)
		x = append(x, lo)
		y = append(y, d.DriftVelocity(b))
	}
	plt.Plot(x, y, io.Sf("%s, label='%s'", args, label))
}

// PlotEnd finalises a figure the way mreten.PlotEnd does: axis labels,
// a crosshair at the origin, and an optional on-screen show.
func PlotEnd(xlabel, ylabel string, show bool) {
	plt.Cross()
	plt.Gll(xlabel, ylabel, "")
	if show {
		plt.Show()
	}
}
