package initial

import (
	"testing"

	"github.com/cpmech/filasliding/container"
	"github.com/cpmech/filasliding/lattice"
	"github.com/cpmech/filasliding/microtubule"
	"github.com/cpmech/filasliding/state"
)

// sequenceRNG feeds back fixed values so the initial sampling pass is
// deterministic: it always "binds fully" (Bernoulli false on the
// partial-given-bound coin) and never shuffles (UniformInt picks the
// identity permutation when called with (0, i) by always returning i).
type sequenceRNG struct {
	bernoulliAnswers []bool
	bi               int
}

func (r *sequenceRNG) Float64() float64 { return 1.0 }
func (r *sequenceRNG) UniformInt(lo, hi int) int {
	return hi
}
func (r *sequenceRNG) Bernoulli(p float64) bool {
	if r.bi >= len(r.bernoulliAnswers) {
		return false
	}
	v := r.bernoulliAnswers[r.bi]
	r.bi++
	return v
}

func newTestState() *state.SystemState {
	fixed := microtubule.NewFixed(20, 1.0)
	mobile := microtubule.NewMobile(20, 1.0, 0.0)
	containers := [3]*container.LinkerContainer{
		container.New(lattice.Passive, 10),
		container.New(lattice.Dual, 5),
		container.New(lattice.Active, 5),
	}
	return state.New(fixed, mobile, containers, 5.0, 1.0, state.BarrierFree{})
}

// Test_nEachTypeToConnect_S6 mirrors scenario S6: 0.4+0.2 connected
// fraction over a 20-site overlap (ceil(0.6*20)=12), split proportional
// to free-linker counts with a largest-remainder tiebreak.
func Test_nEachTypeToConnect_S6(tst *testing.T) {
	nFree := [3]int{10, 5, 5}
	out := nEachTypeToConnect(12, 20, nFree)
	total := out[0] + out[1] + out[2]
	if total != 12 {
		tst.Fatalf("nEachTypeToConnect total = %d, want 12", total)
	}
	// exact: 10*12/20=6 r0, 5*12/20=3 r0, 5*12/20=3 r0 -> already sums to 12
	if out[0] != 6 || out[1] != 3 || out[2] != 3 {
		tst.Fatalf("nEachTypeToConnect = %v, want [6 3 3]", out)
	}
}

func Test_nEachTypeToConnect_remainder_tiebreak(tst *testing.T) {
	nFree := [3]int{1, 1, 1}
	out := nEachTypeToConnect(2, 3, nFree)
	total := out[0] + out[1] + out[2]
	if total != 2 {
		tst.Fatalf("total = %d, want 2", total)
	}
}

func Test_Initialiser_seeds_overlap_without_crossing(tst *testing.T) {
	s := newTestState()
	ini := New(Params{
		ProbPartiallyConnectedTip:           0.2,
		ProbFullyConnectedTip:               0.4,
		ProbPartialBoundOnTipOutsideOverlap: 0.0,
		ProbTipUnblocked:                    1.0,
		TipLengthSites:                      5,
		Stochastic:                          false,
	})
	rng := &sequenceRNG{bernoulliAnswers: []bool{false, false, false, false, false, false}}
	ini.initialiseCrosslinkers(s, rng)

	if err := s.CheckInternalConsistency(); err != nil {
		tst.Fatalf("initial crosslinker seeding violated an invariant: %v", err)
	}
}

func Test_Initialiser_deterministic_blocking_boundary(tst *testing.T) {
	s := newTestState()
	ini := New(Params{
		ProbFullyConnectedTip:         1.0,
		ProbFullyConnectedBlocked:     1.0,
		ProbPartiallyConnectedTip:     0.0,
		ProbPartiallyConnectedBlocked: 0.0,
		ProbTipUnblocked:              1.0,
		TipLengthSites:                5,
		Stochastic:                    false,
	})
	rng := &sequenceRNG{}
	ini.initialiseBlockedSites(s, rng)

	nSites := s.Fixed.NSites()
	for pos := 0; pos < nSites; pos++ {
		wantBlocked := pos < nSites-5
		if s.Fixed.Sites[pos].Blocked != wantBlocked {
			tst.Fatalf("site %d blocked=%v, want %v", pos, s.Fixed.Sites[pos].Blocked, wantBlocked)
		}
	}
	if err := s.CheckInternalConsistency(); err != nil {
		tst.Fatal(err)
	}
}
