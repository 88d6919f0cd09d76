package sim

import (
	"math"
	"testing"

	"github.com/cpmech/filasliding/container"
	"github.com/cpmech/filasliding/lattice"
	"github.com/cpmech/filasliding/microtubule"
	"github.com/cpmech/filasliding/state"
)

func newTestSystem() *state.SystemState {
	fixed := microtubule.NewFixed(30, 1.0)
	mobile := microtubule.NewMobile(30, 1.0, 5.0)
	containers := [3]*container.LinkerContainer{
		container.New(lattice.Passive, 10),
		container.New(lattice.Dual, 5),
		container.New(lattice.Active, 5),
	}
	return state.New(fixed, mobile, containers, 5.0, 4.0, state.BarrierFree{})
}

func testParams() Params {
	return Params{
		NEquilibrationBlocks:                   1,
		NRunBlocks:                              1,
		NTimeSteps:                              5,
		CalcTimeStep:                            1e-4,
		PositionProbePeriod:                     1,
		DiffusionConstantMicrotubule:            0.01,
		SpringConstant:                          4.0,
		LatticeSpacing:                          1.0,
		RatePassivePartialHop:                   1.0,
		RatePassiveFullHop:                      1.0,
		BaseRateActivePartialHop:                1.0,
		BaseRateActiveFullHop:                   1.0,
		ActiveHopToPlusBiasEnergy:               0.5,
		NeighbourBiasEnergy:                     0.2,
		BaseRateZeroToOneExtremitiesConnected:   1.0,
		BaseRateOneToZeroExtremitiesConnected:   1.0,
		BaseRateOneToTwoExtremitiesConnected:    1.0,
		BaseRateTwoToOneExtremitiesConnected:    1.0,
		BindPassiveLinkers:                      true,
		BindDualLinkers:                         true,
		BindActiveLinkers:                       true,
		HeadBindingBiasEnergy:                   0.0,
	}
}

// Test_NewPropagator_rejects_too_coarse_a_time_step mirrors the
// constructor's deviationMicrotubule > 0.1*latticeSpacing guard.
func Test_NewPropagator_rejects_too_coarse_a_time_step(tst *testing.T) {
	defer func() {
		if recover() == nil {
			tst.Fatalf("expected a panic for an overly coarse time step")
		}
	}()
	p := testParams()
	p.CalcTimeStep = 1000.0
	NewPropagator(p, NewRNG(1))
}

// Test_moveMicrotubule_deterministic_N0 mirrors boundary case B1: with no
// Full crosslinkers, the deterministic step reduces to the bare external
// force term and never panics on a division by zero.
func Test_moveMicrotubule_deterministic_N0(tst *testing.T) {
	s := newTestSystem()
	if s.NFullCrosslinkers() != 0 {
		tst.Fatalf("fixture should start with zero Full crosslinkers, got %d", s.NFullCrosslinkers())
	}
	prop := NewPropagator(testParams(), NewRNG(7))
	rng := NewRNG(42)
	before := s.Mobile.X
	prop.moveMicrotubule(s, rng)
	if s.Mobile.X == before {
		tst.Fatalf("expected the mobile position to change")
	}
}

// Test_inBasinOfAttraction_edges checks both halves of the basin
// definition directly against the formula in Propagator::inBasinOfAttraction.
func Test_inBasinOfAttraction_edges(tst *testing.T) {
	prop := &Propagator{p: Params{LatticeSpacing: 1.0}, basinOfAttractionHalfWidth: 0.3}
	if !prop.inBasinOfAttraction(0.1, 1, 3) {
		tst.Fatalf("expected near-zero remainder with <=1 right-pulling linkers to be in the basin")
	}
	if prop.inBasinOfAttraction(0.1, 2, 3) {
		tst.Fatalf("expected near-zero remainder with 2 right-pulling linkers (of 3) to NOT be in the basin")
	}
	if !prop.inBasinOfAttraction(0.95, 2, 3) {
		tst.Fatalf("expected near-spacing remainder with nRightPulling>=nFull-1 to be in the basin")
	}
	if prop.inBasinOfAttraction(0.5, 0, 3) {
		tst.Fatalf("expected mid-cell remainder to never be in the basin")
	}
}

func Test_floorMod_always_nonnegative(tst *testing.T) {
	got := floorMod(-0.3, 1.0)
	if got < 0 || math.Abs(got-0.7) > 1e-9 {
		tst.Fatalf("floorMod(-0.3,1.0) = %g, want 0.7", got)
	}
}
