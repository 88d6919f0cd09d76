package state

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/filasliding/container"
	"github.com/cpmech/filasliding/lattice"
	"github.com/cpmech/filasliding/microtubule"
)

func newTestState(maxStretch float64) *SystemState {
	fixed := microtubule.NewFixed(10, 1.0)
	mobile := microtubule.NewMobile(10, 1.0, 0.0)
	containers := [3]*container.LinkerContainer{
		container.New(lattice.Passive, 2),
		container.New(lattice.Dual, 1),
		container.New(lattice.Active, 1),
	}
	return New(fixed, mobile, containers, maxStretch, 1.0, BarrierFree{})
}

// Test_systemstate_S1 mirrors scenario S1: bind a passive linker tail at
// (Fixed, 5), then head at (Mobile, 5); with x_mobile initially 0 the
// extension must equal x_mobile exactly.
func Test_systemstate_S1(tst *testing.T) {
	s := newTestState(1.4)

	id := s.ConnectFreeLinker(lattice.Passive, lattice.Tail, lattice.SiteLocation{Filament: lattice.Fixed, Position: 5})
	s.FullyConnectPartialLinker(id, lattice.SiteLocation{Filament: lattice.Mobile, Position: 5})

	fc := s.ContainerFor(lattice.Passive).FullConnections()
	if len(fc) != 1 {
		tst.Fatalf("expected 1 full connection, got %d", len(fc))
	}
	if math.Abs(fc[0].Extension-0) > 1e-12 {
		tst.Fatalf("ext should equal x_mobile=0, got %g", fc[0].Extension)
	}

	if err := s.CheckInternalConsistency(); err != nil {
		tst.Fatal(err)
	}
}

// Test_systemstate_roundtrip exercises L1: connect then disconnect
// restores the filament's free-site counts.
func Test_systemstate_roundtrip(tst *testing.T) {
	s := newTestState(5.0)
	before := s.Fixed.NFreeTip()

	id := s.ConnectFreeLinker(lattice.Passive, lattice.Head, lattice.SiteLocation{Filament: lattice.Fixed, Position: 2})
	chk.IntAssert(s.Fixed.NFreeTip(), before-1)

	s.DisconnectPartialLinker(id)
	chk.IntAssert(s.Fixed.NFreeTip(), before)

	if err := s.CheckInternalConsistency(); err != nil {
		tst.Fatal(err)
	}
}

// Test_systemstate_barrier_crossed_boundary is B3: exactly one lattice
// spacing away from the attractor must NOT count as crossed.
func Test_systemstate_barrier_crossed_boundary(tst *testing.T) {
	s := newTestState(5.0)
	s.Mobile.X = 1.0 // exactly one δ from attractor 0
	if d := s.BarrierCrossed(1.0); d != 0 {
		tst.Fatalf("exact-boundary position must not cross, got %d", d)
	}
	s.Mobile.X = 1.0 + 1e-9
	if d := s.BarrierCrossed(1.0); d != 1 {
		tst.Fatalf("past-boundary position must cross forward, got %d", d)
	}
}

func Test_systemstate_movement_borders_unbounded_without_full_linkers(tst *testing.T) {
	s := newTestState(2.0)
	lo, hi := s.MovementBorders()
	if !math.IsInf(lo, -1) || !math.IsInf(hi, 1) {
		tst.Fatalf("with no Full linkers the movement borders should be unbounded, got (%g,%g)", lo, hi)
	}
}
