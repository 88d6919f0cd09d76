package sim

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/filasliding/lattice"
	"github.com/cpmech/filasliding/reaction"
	"github.com/cpmech/filasliding/state"
)

// Sink is the output contract of spec.md §4.7: the set of calls a
// propagateBlock time step makes to report on the run. Reconstructed
// from the call sites in the newer revision of
// original_source/src/Propagator.cpp (writeMicrotubulePosition,
// addPositionAndConfiguration, ...), since the matching newer
// Output.hpp/.cpp did not survive retrieval — only the older
// writePositionsAndCrosslinkerNumbers/addPosition interface did, which
// Propagator.cpp no longer calls.
type Sink interface {
	WriteMicrotubulePosition(time float64, s *state.SystemState)
	AddPositionAndConfiguration(xModSpacing float64, nFullRightPulling int)
	AddTimeStepToPeakAnalysis(xModSpacing float64, nFullRightPulling int)
	IsTrackingPath() bool
	ToggleTracking()
	AddPointTransitionPath(time, position float64, nFullRightPulling int)
	CleanTransitionPath()
	WriteTransitionPath(latticeSpacing float64)
	WriteBarrierCrossingTime(time float64, direction int)
	NewBlock(blockNumber int)

	// AddDynamicsSample feeds the drift/diffusion estimator of spec.md
	// §4.7: delta is the displacement just applied to the Mobile
	// filament, binned by positionRelativeToTip — the actin-front
	// position at the start of the step, grounded on
	// ActinDynamicsEstimate::addPositionRelativeToTipBegin (whose single
	// argument is itself a displacement sample, binned by the
	// object's own implicit position tracking).
	AddDynamicsSample(positionRelativeToTip, delta float64)
}

// Params mirrors the Propagator constructor parameters of
// original_source/include/filament-sliding/Propagator.hpp, grouped by
// concern rather than carried as one 25-argument constructor call.
type Params struct {
	NEquilibrationBlocks int
	NRunBlocks           int
	NTimeSteps           int
	CalcTimeStep         float64
	PositionProbePeriod  int

	DiffusionConstantMicrotubule float64
	SpringConstant               float64
	LatticeSpacing                float64

	RatePassivePartialHop                  float64
	RatePassiveFullHop                     float64
	BaseRateActivePartialHop               float64
	BaseRateActiveFullHop                  float64
	ActiveHopToPlusBiasEnergy               float64
	NeighbourBiasEnergy                     float64
	BaseRateZeroToOneExtremitiesConnected   float64
	BaseRateOneToZeroExtremitiesConnected   float64
	BaseRateOneToTwoExtremitiesConnected    float64
	BaseRateTwoToOneExtremitiesConnected    float64
	BindPassiveLinkers                      bool
	BindDualLinkers                         bool
	BindActiveLinkers                       bool
	HeadBindingBiasEnergy                   float64

	SamplePositionalDistribution bool
	RecordTransitionPaths        bool
	TransitionPathProbePeriod    int
	EstimateTimeEvolutionAtPeak  bool
	EstimateActinDynamics        bool
}

// Propagator advances a SystemState through time: Gillespie-style
// reaction selection (action accumulated each step, compared against a
// resampled threshold) plus a deterministic+diffusive Langevin step of
// the Mobile filament. Grounded on original_source/src/Propagator.cpp.
type Propagator struct {
	p Params

	deviationMicrotubule float64

	currentTime                  float64
	currentReactionRateThreshold float64

	nDeterministicBoundaryCrossings int
	nStochasticBoundaryCrossings    int

	basinOfAttractionHalfWidth float64
	previousBasinOfAttraction  int

	reactions []reaction.Reaction
}

// NewPropagator builds the eighteen per-type reactions (six kinds times
// three linker types) from p, matching the Propagator constructor's
// m_reactions population, and draws the first reaction-rate threshold.
func NewPropagator(p Params, rng *RNG) *Propagator {
	dev := math.Sqrt(2 * p.DiffusionConstantMicrotubule * p.CalcTimeStep)
	if dev > 0.1*p.LatticeSpacing {
		chk.Panic("sim: calc time step too large: microtubule movement deviation %g exceeds 0.1*latticeSpacing=%g", dev, 0.1*p.LatticeSpacing)
	}

	rateToOneSite := func(bind bool) float64 {
		if bind {
			return p.BaseRateZeroToOneExtremitiesConnected
		}
		return 0
	}

	prop := &Propagator{
		p:                          p,
		deviationMicrotubule:       dev,
		currentTime:                -float64(p.NEquilibrationBlocks) * float64(p.NTimeSteps) * p.CalcTimeStep,
		basinOfAttractionHalfWidth: 0.3 * p.LatticeSpacing,
	}

	bindEnabled := map[lattice.LinkerType]bool{
		lattice.Passive: p.BindPassiveLinkers,
		lattice.Dual:    p.BindDualLinkers,
		lattice.Active:  p.BindActiveLinkers,
	}

	for _, t := range lattice.AllLinkerTypes {
		prop.reactions = append(prop.reactions,
			reaction.NewBindFree(t, rateToOneSite(bindEnabled[t]), p.HeadBindingBiasEnergy),
			reaction.NewBindPartial(t, p.BaseRateOneToTwoExtremitiesConnected, p.HeadBindingBiasEnergy, p.SpringConstant),
			reaction.NewUnbindPartial(t, p.BaseRateOneToZeroExtremitiesConnected, p.HeadBindingBiasEnergy),
			reaction.NewUnbindFull(t, p.BaseRateTwoToOneExtremitiesConnected, p.HeadBindingBiasEnergy, p.SpringConstant),
		)
	}

	// HopPartial/HopFull carry per-type base rates and bias energies:
	// Passive has no directional bias at all, Dual is biased only on its
	// Active-like terminus, Active is biased on both.
	prop.reactions = append(prop.reactions,
		reaction.NewHopPartial(lattice.Passive, p.RatePassivePartialHop, p.RatePassivePartialHop, 0, 0, p.NeighbourBiasEnergy),
		reaction.NewHopPartial(lattice.Dual, p.BaseRateActivePartialHop, p.RatePassivePartialHop, p.ActiveHopToPlusBiasEnergy, 0, p.NeighbourBiasEnergy),
		reaction.NewHopPartial(lattice.Active, p.BaseRateActivePartialHop, p.BaseRateActivePartialHop, p.ActiveHopToPlusBiasEnergy, p.ActiveHopToPlusBiasEnergy, p.NeighbourBiasEnergy),
		reaction.NewHopFull(lattice.Passive, p.RatePassiveFullHop, p.RatePassiveFullHop, 0, 0, p.NeighbourBiasEnergy, p.SpringConstant),
		reaction.NewHopFull(lattice.Dual, p.BaseRateActiveFullHop, p.RatePassiveFullHop, p.ActiveHopToPlusBiasEnergy, 0, p.NeighbourBiasEnergy, p.SpringConstant),
		reaction.NewHopFull(lattice.Active, p.BaseRateActiveFullHop, p.BaseRateActiveFullHop, p.ActiveHopToPlusBiasEnergy, p.ActiveHopToPlusBiasEnergy, p.NeighbourBiasEnergy, p.SpringConstant),
	)

	prop.setNewReactionRateThreshold(rng.Probability())
	return prop
}

func (prop *Propagator) setNewReactionRateThreshold(probability float64) {
	prop.currentReactionRateThreshold = -math.Log(probability) / prop.p.CalcTimeStep
}

func (prop *Propagator) totalAction() float64 {
	sum := 0.0
	for _, r := range prop.reactions {
		sum += r.Action()
	}
	return sum
}

func (prop *Propagator) totalRate() float64 {
	sum := 0.0
	for _, r := range prop.reactions {
		sum += r.CurrentRate()
	}
	return sum
}

func (prop *Propagator) setRates(s *state.SystemState) {
	for _, r := range prop.reactions {
		r.SetCurrentRate(s)
	}
}

func (prop *Propagator) updateAction() {
	for _, r := range prop.reactions {
		r.UpdateAction()
	}
}

func (prop *Propagator) resetAction() {
	for _, r := range prop.reactions {
		r.ResetAction()
	}
}

// reactionToHappen picks among prop.reactions with probability
// proportional to CurrentRate, walking the cumulative sum so a draw
// landing exactly on a boundary resolves to the later reaction (the same
// tie-break Propagator::getReactionToHappen documents).
func (prop *Propagator) reactionToHappen(rng *RNG) reaction.Reaction {
	total := prop.totalRate()
	u := rng.Float64() * total
	accum := 0.0
	for _, r := range prop.reactions {
		accum += r.CurrentRate()
		if accum > u {
			return r
		}
	}
	chk.Panic("sim: reactionToHappen found no reaction for accumulated rate %g (total %g)", accum, total)
	return nil
}

func (prop *Propagator) performReaction(s *state.SystemState, rng *RNG) {
	prop.reactionToHappen(rng).PerformReaction(s, rng)
	prop.resetAction()
	prop.setNewReactionRateThreshold(rng.Probability())
	s.UpdateForceAndEnergy()
}

// moveMicrotubule applies one time step's displacement to the Mobile
// filament: a deterministic Langevin drift via the closed-form expm1
// solution (justifying the gosl/ode drop — see DESIGN.md), clamped at
// the MaxStretch-derived movement borders, followed by a Gaussian
// diffusive kick reflected at those same borders.
func (prop *Propagator) moveMicrotubule(s *state.SystemState, rng *RNG) {
	lower, upper := s.MovementBorders()

	totalExtension := s.TotalExtension
	nFull := s.NFullCrosslinkers()

	var deterministicChange float64
	if nFull != 0 {
		n := float64(nFull)
		deterministicChange = (totalExtension - s.ExternalForceValue()/s.SpringK) / n *
			math.Expm1(-n*s.SpringK*prop.p.DiffusionConstantMicrotubule*prop.p.CalcTimeStep)
	} else {
		deterministicChange = s.ExternalForceValue() * prop.p.DiffusionConstantMicrotubule * prop.p.CalcTimeStep
	}

	if deterministicChange <= lower {
		deterministicChange = math.Nextafter(lower, upper)
		prop.nDeterministicBoundaryCrossings++
	} else if deterministicChange >= upper {
		deterministicChange = math.Nextafter(upper, lower)
		prop.nDeterministicBoundaryCrossings++
	}

	lower -= deterministicChange
	upper -= deterministicChange

	randomChange := rng.Gaussian(0, prop.deviationMicrotubule)
	const maxReflections = 1000
	for i := 0; (randomChange <= lower || randomChange >= upper); i++ {
		if i >= maxReflections {
			chk.Panic("sim: moveMicrotubule failed to reflect the random change within %d tries", maxReflections)
		}
		if randomChange <= lower {
			randomChange = 2*lower - randomChange
		}
		if randomChange >= upper {
			randomChange = 2*upper - randomChange
		}
		prop.nStochasticBoundaryCrossings++
	}

	s.UpdateMobilePosition(deterministicChange + randomChange)
	s.UpdateForceAndEnergy()
}

func (prop *Propagator) advanceTimeStep(s *state.SystemState, rng *RNG) {
	prop.setRates(s)
	prop.updateAction()
	if prop.totalAction() > prop.currentReactionRateThreshold {
		prop.performReaction(s, rng)
	}
	prop.moveMicrotubule(s, rng)
	prop.currentTime += prop.p.CalcTimeStep
}

// floorMod is MathematicalFunctions::mod: a remainder that is always in
// [0, m), unlike math.Mod's sign-follows-dividend behaviour.
func floorMod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}

// inBasinOfAttraction reports whether the Mobile filament sits near a
// lattice site with the right-pulling linker imbalance a metastable well
// requires (spec.md Glossary "Basin of attraction").
func (prop *Propagator) inBasinOfAttraction(mobilePosition float64, nRightPulling, nFull int) bool {
	remainder := floorMod(mobilePosition, prop.p.LatticeSpacing)
	return (remainder < prop.basinOfAttractionHalfWidth && nRightPulling <= 1) ||
		(remainder > prop.p.LatticeSpacing-prop.basinOfAttractionHalfWidth && nRightPulling >= nFull-1)
}

func (prop *Propagator) propagateBlock(s *state.SystemState, rng *RNG, sink Sink, writeOutput bool, nTimeSteps int) {
	for step := 0; step < nTimeSteps; step++ {
		if writeOutput {
			if step%prop.p.PositionProbePeriod == 0 {
				sink.WriteMicrotubulePosition(prop.currentTime, s)
			}
			nRightPulling := s.NFullRightPullingCrosslinkers()
			xmod := floorMod(s.Mobile.X, prop.p.LatticeSpacing)
			if prop.p.SamplePositionalDistribution {
				sink.AddPositionAndConfiguration(xmod, nRightPulling)
			}
			if prop.p.EstimateTimeEvolutionAtPeak {
				sink.AddTimeStepToPeakAnalysis(xmod, nRightPulling)
			}
			if prop.p.RecordTransitionPaths {
				nFull := s.NFullCrosslinkers()
				if !prop.inBasinOfAttraction(s.Mobile.X, nRightPulling, nFull) {
					if !sink.IsTrackingPath() {
						sink.ToggleTracking()
						prop.previousBasinOfAttraction = int(math.Floor(s.Mobile.X/prop.p.LatticeSpacing + 0.5))
					}
					sink.AddPointTransitionPath(prop.currentTime, s.Mobile.X, nRightPulling)
				} else if sink.IsTrackingPath() {
					if int(math.Floor(s.Mobile.X/prop.p.LatticeSpacing+0.5)) == prop.previousBasinOfAttraction {
						sink.CleanTransitionPath()
					} else {
						sink.WriteTransitionPath(prop.p.LatticeSpacing)
					}
					sink.ToggleTracking()
				}
			}
		}

		var positionRelativeToTip, mobileBefore float64
		if writeOutput && prop.p.EstimateActinDynamics {
			positionRelativeToTip = s.ActinFrontPositionRelativeToTip()
			mobileBefore = s.Mobile.X
		}

		prop.advanceTimeStep(s, rng)

		if writeOutput && prop.p.EstimateActinDynamics {
			sink.AddDynamicsSample(positionRelativeToTip, s.Mobile.X-mobileBefore)
		}

		if direction := s.BarrierCrossed(prop.p.LatticeSpacing); direction != 0 && writeOutput {
			sink.WriteBarrierCrossingTime(prop.currentTime, direction)
		}
	}
}

// Equilibrate runs NEquilibrationBlocks blocks without writing output,
// Propagator::equilibrate.
func (prop *Propagator) Equilibrate(s *state.SystemState, rng *RNG) {
	for b := 0; b < prop.p.NEquilibrationBlocks; b++ {
		prop.propagateBlock(s, rng, discardSink{}, false, prop.p.NTimeSteps)
	}
}

// Run executes NRunBlocks output-writing blocks, Propagator::run.
func (prop *Propagator) Run(s *state.SystemState, rng *RNG, sink Sink) {
	for b := 0; b < prop.p.NRunBlocks; b++ {
		sink.NewBlock(b + 1)
		prop.propagateBlock(s, rng, sink, true, prop.p.NTimeSteps)
	}
}

// StepInterval advances nTimeSteps, tagging the interval as one output
// block, the graphics-coupled driver of Propagator::propagateGraphicsInterval.
func (prop *Propagator) StepInterval(s *state.SystemState, rng *RNG, sink Sink, nTimeSteps, intervalNumber int) {
	sink.NewBlock(intervalNumber)
	prop.propagateBlock(s, rng, sink, true, nTimeSteps)
}

// discardSink satisfies Sink for Equilibrate, whose propagateBlock calls
// never read writeOutput==false's argument (every method is unreachable
// when writeOutput is false) but need a concrete value to pass through.
type discardSink struct{}

func (discardSink) WriteMicrotubulePosition(float64, *state.SystemState)    {}
func (discardSink) AddPositionAndConfiguration(float64, int)                {}
func (discardSink) AddTimeStepToPeakAnalysis(float64, int)                  {}
func (discardSink) IsTrackingPath() bool                                    { return false }
func (discardSink) ToggleTracking()                                         {}
func (discardSink) AddPointTransitionPath(float64, float64, int)            {}
func (discardSink) CleanTransitionPath()                                    {}
func (discardSink) WriteTransitionPath(float64)                             {}
func (discardSink) WriteBarrierCrossingTime(float64, int)                   {}
func (discardSink) NewBlock(int)                                            {}
func (discardSink) AddDynamicsSample(float64, float64)                      {}
