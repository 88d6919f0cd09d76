package stats

import (
	"math"
	"testing"
)

func Test_Statistics_mean_and_variance(tst *testing.T) {
	var s Statistics
	for _, v := range []float64{1, 2, 3, 4, 5} {
		s.AddValue(v)
	}
	if s.NumberOfSamples() != 5 {
		tst.Fatalf("expected 5 samples, got %d", s.NumberOfSamples())
	}
	if math.Abs(s.Mean()-3.0) > 1e-12 {
		tst.Fatalf("expected mean 3, got %g", s.Mean())
	}
	if math.Abs(s.Variance()-2.5) > 1e-12 {
		tst.Fatalf("expected variance 2.5, got %g", s.Variance())
	}
	if !s.CanReportStatistics() {
		tst.Fatalf("5 samples should allow reporting")
	}
}

func Test_Statistics_single_sample_cannot_report_variance(tst *testing.T) {
	var s Statistics
	s.AddValue(1.0)
	if s.CanReportStatistics() {
		tst.Fatalf("a single sample should not allow reporting variance")
	}
}

func Test_Histogram_extremal_bins_are_open_ended(tst *testing.T) {
	h := NewHistogram(1.0, 0.0, 5.0)
	lo, _ := h.BinBounds(0)
	if !math.IsInf(lo, -1) {
		tst.Fatalf("expected lower extremal bin to start at -Inf, got %g", lo)
	}
	_, hi := h.BinBounds(h.NumberOfBins() + 1)
	if !math.IsInf(hi, 1) {
		tst.Fatalf("expected upper extremal bin to end at +Inf, got %g", hi)
	}
}

func Test_Histogram_bins_values_correctly(tst *testing.T) {
	h := NewHistogram(1.0, 0.0, 5.0)
	h.AddValue(-1.0) // below range -> bin 0
	h.AddValue(0.5)  // bin 1
	h.AddValue(4.9)  // last regular bin
	h.AddValue(10.0) // above range -> last extremal bin
	if h.BinCount(0) != 1 {
		tst.Fatalf("expected 1 value in lower extremal bin, got %d", h.BinCount(0))
	}
	if h.BinCount(h.NumberOfBins()+1) != 1 {
		tst.Fatalf("expected 1 value in upper extremal bin, got %d", h.BinCount(h.NumberOfBins()+1))
	}
	if h.BinFraction(1) <= 0 {
		tst.Fatalf("expected a nonzero fraction in bin 1")
	}
}

func Test_DynamicsEstimate_reports_drift_and_diffusion(tst *testing.T) {
	d := NewDynamicsEstimate(1.0, 0.1, 5.0)
	for i := 0; i < 10; i++ {
		d.AddSample(2.5, 0.01)
	}
	bin := d.binFor(2.5)
	if !d.CanReport(bin) {
		tst.Fatalf("expected bin %d to be reportable after 10 identical samples", bin)
	}
	if math.Abs(d.DriftVelocity(bin)-0.1) > 1e-9 {
		tst.Fatalf("expected drift velocity 0.1, got %g", d.DriftVelocity(bin))
	}
}

func Test_DynamicsEstimate_extremal_bins(tst *testing.T) {
	d := NewDynamicsEstimate(1.0, 0.1, 5.0)
	if d.binFor(-1.0) != 0 {
		tst.Fatalf("expected a negative position to land in bin 0")
	}
	if d.binFor(100.0) != d.NumberOfBins()-1 {
		tst.Fatalf("expected a far-out-of-range position to land in the last bin")
	}
}

func Test_Output_AddBookkeepingValue_accumulates_by_name(tst *testing.T) {
	o := NewOutput(tst.TempDir(), "testrun", 1e-3, 8e-3, 1e-2, 1e-1, 50.0, 1)
	o.AddBookkeepingValue("foo", 1.0)
	o.AddBookkeepingValue("foo", 3.0)
	o.AddBookkeepingValue("bar", 10.0)
	if len(o.namedKeys) != 2 {
		tst.Fatalf("expected 2 distinct bookkeeping names, got %d", len(o.namedKeys))
	}
	if o.named["foo"].NumberOfSamples() != 2 {
		tst.Fatalf("expected 2 samples for foo, got %d", o.named["foo"].NumberOfSamples())
	}
	if math.Abs(o.named["foo"].Mean()-2.0) > 1e-12 {
		tst.Fatalf("expected mean 2 for foo, got %g", o.named["foo"].Mean())
	}
}

func Test_Output_Close_writes_all_artefacts(tst *testing.T) {
	dir := tst.TempDir()
	o := NewOutput(dir, "testrun", 1e-3, 8e-3, 1e-2, 1e-1, 50.0, 1)
	o.AddBookkeepingValue("tipFrontPosition", 1.23)
	o.Close()
}

func Test_Output_PlotAll(tst *testing.T) {
	dir := tst.TempDir()
	o := NewOutput(dir, "testrun", 1e-3, 8e-3, 1e-2, 1e-1, 50.0, 1)
	for i := 0; i < 20; i++ {
		o.AddPositionAndConfiguration(float64(i%8)*1e-3, 0)
		o.AddDynamicsSample(2.0, 0.01)
	}
	o.PlotAll()
}
