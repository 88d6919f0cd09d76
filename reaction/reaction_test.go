package reaction

import (
	"math"
	"testing"

	"github.com/cpmech/filasliding/container"
	"github.com/cpmech/filasliding/lattice"
	"github.com/cpmech/filasliding/microtubule"
	"github.com/cpmech/filasliding/state"
)

// fakeRNG returns fixed, caller-set values so tests can exercise specific
// branches of the categorical/Bernoulli draws deterministically.
type fakeRNG struct {
	f64  float64
	ints []int
	bern []bool
}

func (r *fakeRNG) Float64() float64 { return r.f64 }

func (r *fakeRNG) UniformInt(lo, hi int) int {
	if len(r.ints) == 0 {
		return lo
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v
}

func (r *fakeRNG) Bernoulli(p float64) bool {
	if len(r.bern) == 0 {
		return false
	}
	v := r.bern[0]
	r.bern = r.bern[1:]
	return v
}

func newReactionTestState(maxStretch float64) *state.SystemState {
	fixed := microtubule.NewFixed(20, 1.0)
	mobile := microtubule.NewMobile(20, 1.0, 0.0)
	containers := [3]*container.LinkerContainer{
		container.New(lattice.Passive, 3),
		container.New(lattice.Dual, 1),
		container.New(lattice.Active, 1),
	}
	return state.New(fixed, mobile, containers, maxStretch, 4.0, state.BarrierFree{})
}

// Test_BindFree_rate_S3 mirrors scenario S3's formula: the total rate is
// k_bind times the combined free-site count (17 sites at k_bind=2.0 would
// give 34.0 s^-1).
func Test_BindFree_rate_S3(tst *testing.T) {
	s := newReactionTestState(2.0)
	// the fixture's two 20-site filaments give 40 free sites; the formula
	// is checked against whatever NFreeSites the fixture reports rather
	// than against S3's 17-site count.
	n := s.Fixed.NFreeSites() + s.Mobile.NFreeSites()
	r := NewBindFree(lattice.Passive, 2.0, 0.0)
	r.SetCurrentRate(s)
	want := 2.0 * float64(n)
	if math.Abs(r.CurrentRate()-want) > 1e-9 {
		tst.Fatalf("BindFree rate = %g, want %g", r.CurrentRate(), want)
	}
	// zero bias energy must give an even-odds head/tail coin.
	if math.Abs(r.ProbHeadBinds-0.5) > 1e-12 {
		tst.Fatalf("ProbHeadBinds = %g, want 0.5 at zero bias", r.ProbHeadBinds)
	}
}

// Test_BindPartial_weight_S4 mirrors scenario S4: k_spring=4.0 and
// ext=0.5 gives a spring weight factor of exp(-0.25) ~= 0.7788.
func Test_BindPartial_weight_S4(tst *testing.T) {
	s := newReactionTestState(5.0)
	// shift the Mobile filament by half a site so (Fixed 10, Mobile 10)
	// has extension 0.5; at x=0 every extension would be a whole number.
	s.UpdateMobilePosition(0.5)
	id := s.ConnectFreeLinker(lattice.Passive, lattice.Tail, lattice.SiteLocation{Filament: lattice.Fixed, Position: 10})

	r := NewBindPartial(lattice.Passive, 1.0, 0.0, 4.0)
	r.SetCurrentRate(s)
	cands := s.ContainerFor(lattice.Passive).PossibleFullConnections()
	found := false
	for i, c := range cands {
		if c.Partial != id {
			continue
		}
		if math.Abs(c.Extension-0.5) < 1e-12 {
			found = true
			want := 1.0 * math.Exp(-4.0*0.25*0.25) * r.HeadFactor
			if math.Abs(r.rates[i]-want) > 1e-9 {
				tst.Fatalf("BindPartial rate[ext=0.5] = %g, want %g", r.rates[i], want)
			}
			if math.Abs(math.Exp(-0.25)-0.7788) > 1e-3 {
				tst.Fatalf("sanity: exp(-0.25) drifted from expected constant")
			}
		}
	}
	if !found {
		tst.Fatalf("expected a candidate at ext=0.5 among %d candidates", len(cands))
	}
}

func Test_UnbindPartial_head_tail_split(tst *testing.T) {
	s := newReactionTestState(5.0)
	headID := s.ConnectFreeLinker(lattice.Passive, lattice.Head, lattice.SiteLocation{Filament: lattice.Fixed, Position: 3})
	s.ConnectFreeLinker(lattice.Passive, lattice.Tail, lattice.SiteLocation{Filament: lattice.Fixed, Position: 7})

	r := NewUnbindPartial(lattice.Passive, 1.0, 0.0)
	r.SetCurrentRate(s)
	want := 1.0 * (1*r.HeadFactor + 1*r.TailFactor)
	if math.Abs(r.CurrentRate()-want) > 1e-9 {
		tst.Fatalf("UnbindPartial rate = %g, want %g", r.CurrentRate(), want)
	}

	rng := &fakeRNG{bern: []bool{true}, ints: []int{0}}
	r.PerformReaction(s, rng)
	l := s.ContainerFor(lattice.Passive).At(headID)
	if !l.IsFree() {
		tst.Fatalf("expected head-bound linker to be disconnected back to free")
	}
}

func Test_UnbindFull_weight(tst *testing.T) {
	s := newReactionTestState(5.0)
	id := s.ConnectFreeLinker(lattice.Passive, lattice.Tail, lattice.SiteLocation{Filament: lattice.Fixed, Position: 5})
	s.FullyConnectPartialLinker(id, lattice.SiteLocation{Filament: lattice.Mobile, Position: 5})

	r := NewUnbindFull(lattice.Passive, 1.0, 0.0, 4.0)
	r.SetCurrentRate(s)
	fc := s.ContainerFor(lattice.Passive).FullConnections()
	if len(fc) != 1 {
		tst.Fatalf("expected 1 full connection, got %d", len(fc))
	}
	want := 1.0 * math.Exp(4.0*fc[0].Extension*fc[0].Extension*0.25)
	if math.Abs(r.rates[0]-want) > 1e-9 {
		tst.Fatalf("UnbindFull rate = %g, want %g", r.rates[0], want)
	}

	rng := &fakeRNG{f64: 0, bern: []bool{true}}
	r.PerformReaction(s, rng)
	if !s.ContainerFor(lattice.Passive).At(id).IsPartial() {
		tst.Fatalf("expected full linker to drop to partial after UnbindFull")
	}
}

func Test_HopPartial_cooperative_bias_multiplies_rate(tst *testing.T) {
	row := container.PossiblePartialHop{Direction: lattice.Forward, Terminus: lattice.Head, AwayFromNeighbour: true}
	r := NewHopPartial(lattice.Passive, 1.0, 1.0, 0.0, 0.0, 0.5)
	got := r.rateFor(row)
	want := r.headPlus * math.Exp(-0.5)
	if math.Abs(got-want) > 1e-9 {
		tst.Fatalf("HopPartial cooperative-biased rate = %g, want %g", got, want)
	}

	rowNoBias := row
	rowNoBias.AwayFromNeighbour = false
	gotNoBias := r.rateFor(rowNoBias)
	if math.Abs(gotNoBias-r.headPlus) > 1e-9 {
		tst.Fatalf("HopPartial rate without neighbour bias = %g, want %g", gotNoBias, r.headPlus)
	}
}

func Test_HopFull_spring_factor(tst *testing.T) {
	row := container.PossibleFullHop{OldExtension: 1.0, NewExtension: 0.5, Direction: lattice.Forward, Terminus: lattice.Head}
	r := NewHopFull(lattice.Passive, 1.0, 1.0, 0.0, 0.0, 0.0, 4.0)
	got := r.rateFor(row)
	want := r.headPlus * math.Exp(0.25*4.0*(1.0*1.0-0.5*0.5))
	if math.Abs(got-want) > 1e-9 {
		tst.Fatalf("HopFull spring-scaled rate = %g, want %g", got, want)
	}
}
