// Package inp implements the parameter-file and CLI-override layer of
// spec.md §6: a whitespace-column NAME/VALUE/UNIT/TYPE table, read and
// written in a fixed parameter order, plus the closed `-N/-LM/-NP/-K/-GV`
// command-line override set. Grounded on original_source's
// ParameterMap.hpp/.cpp, GenericValue.hpp/.cpp, DefaultParameterMap.cpp
// and CommandArgumentHandler.hpp/.cpp.
package inp

// Parameters holds every run parameter spec.md §6 and SPEC_FULL.md §2.3/
// §5.4 name, in the fixed order the parameter file is read and written
// in. Field grouping follows the component each parameter ultimately
// configures (run/block control, filament geometry, linker population,
// reaction rates, initial condition, output).
type Parameters struct {
	RunName                  string
	NumberEquilibrationBlocks int
	NumberRunBlocks          int
	NumberTimeStepsPerBlock  int
	CalcTimeStep             float64
	PositionProbePeriod      int
	RandomSeed               int

	LengthMobileMicrotubule      float64
	LengthFixedMicrotubule       float64
	LatticeSpacing               float64
	DiffusionConstantMicrotubule float64
	RhoMaxStretch                float64
	TipLengthSites               int
	GrowthVelocity                float64

	NumberActiveCrosslinkers  int
	NumberDualCrosslinkers    int
	NumberPassiveCrosslinkers int
	SpringConstant            float64

	RatePassivePartialHop                float64
	RatePassiveFullHop                   float64
	BaseRateActivePartialHop             float64
	BaseRateActiveFullHop                float64
	ActiveHopToPlusBiasEnergy            float64
	NeighbourBiasEnergy                  float64
	BaseRateZeroToOneExtremitiesConnected float64
	BaseRateOneToZeroExtremitiesConnected float64
	BaseRateOneToTwoExtremitiesConnected  float64
	BaseRateTwoToOneExtremitiesConnected  float64
	HeadBindingBiasEnergy                float64
	BindPassiveLinkers                   bool
	BindDualLinkers                      bool
	BindActiveLinkers                    bool

	ProbPartiallyConnectedTip           float64
	ProbFullyConnectedTip               float64
	ProbPartiallyConnectedBlocked       float64
	ProbFullyConnectedBlocked           float64
	ProbPartialBoundOnTipOutsideOverlap float64
	ProbTipUnblocked                    float64
	StochasticTip                       bool

	ExternalForceType      string
	ExternalForceAmplitude float64
	ExternalForcePeriod    float64
	ExternalForcePhase     float64
	ExternalForceConstant  float64

	HistogramBinSize            float64
	DynamicsBinSize              float64
	EstimateTimeStep             float64
	PathWriteFrequency           int
	SamplePositionalDistribution bool
	RecordTransitionPaths        bool
	EstimateTimeEvolutionAtPeak  bool
	EstimateActinDynamics        bool
}

// Default returns the parameter set original_source/Input/
// DefaultParameterMap.cpp writes when asked to create a default input
// file, extended with the newer rate/bias/output parameters the
// complete `include/filament-sliding` headers also copy out of the
// parameter map (spec.md §6's "non-exhaustive" list).
func Default() *Parameters {
	return &Parameters{
		RunName:                   "run",
		NumberEquilibrationBlocks: 50,
		NumberRunBlocks:           100,
		NumberTimeStepsPerBlock:   1000,
		CalcTimeStep:              1.0e-3,
		PositionProbePeriod:       10,
		RandomSeed:                1,

		LengthMobileMicrotubule:      50.0,
		LengthFixedMicrotubule:       50.0,
		LatticeSpacing:               8.0e-3,
		DiffusionConstantMicrotubule: 10.0,
		RhoMaxStretch:                1.4,
		TipLengthSites:               50,
		GrowthVelocity:               0.0,

		NumberActiveCrosslinkers:  0,
		NumberDualCrosslinkers:    0,
		NumberPassiveCrosslinkers: 1000,
		SpringConstant:            1.0,

		RatePassivePartialHop:                 1.0,
		RatePassiveFullHop:                    1.0,
		BaseRateActivePartialHop:              1.0,
		BaseRateActiveFullHop:                 1.0,
		ActiveHopToPlusBiasEnergy:             0.0,
		NeighbourBiasEnergy:                   0.0,
		BaseRateZeroToOneExtremitiesConnected: 1.0,
		BaseRateOneToZeroExtremitiesConnected: 1.0,
		BaseRateOneToTwoExtremitiesConnected:  1.0,
		BaseRateTwoToOneExtremitiesConnected:  1.0,
		HeadBindingBiasEnergy:                 0.0,
		BindPassiveLinkers:                    true,
		BindDualLinkers:                       true,
		BindActiveLinkers:                     true,

		ProbPartiallyConnectedTip:           0.2,
		ProbFullyConnectedTip:               0.4,
		ProbPartiallyConnectedBlocked:       0.1,
		ProbFullyConnectedBlocked:           0.1,
		ProbPartialBoundOnTipOutsideOverlap: 0.0,
		ProbTipUnblocked:                    1.0,
		StochasticTip:                       false,

		ExternalForceType:      "BarrierFree",
		ExternalForceAmplitude: 0.0,
		ExternalForcePeriod:    1.0,
		ExternalForcePhase:     0.0,
		ExternalForceConstant:  0.0,

		HistogramBinSize:              1.0e-3,
		DynamicsBinSize:               1.0e-2,
		EstimateTimeStep:              1.0e-1,
		PathWriteFrequency:            1,
		SamplePositionalDistribution:  true,
		RecordTransitionPaths:         false,
		EstimateTimeEvolutionAtPeak:   false,
		EstimateActinDynamics:         false,
	}
}

// MaxStretch is rho*delta (spec.md §3's "max_stretch = rho . delta").
func (p *Parameters) MaxStretch() float64 { return p.RhoMaxStretch * p.LatticeSpacing }

// ApplyOverrides composes CLI overrides onto a parameter set read from
// file, original_source/Input.cpp's "first from the input file, then
// from the command line arguments" ordering.
func (p *Parameters) ApplyOverrides(o *CommandOverrides) {
	if o == nil {
		return
	}
	if o.RunName != nil {
		p.RunName = *o.RunName
	}
	if o.MobileLength != nil {
		p.LengthMobileMicrotubule = *o.MobileLength
	}
	if o.NumberPassive != nil {
		p.NumberPassiveCrosslinkers = *o.NumberPassive
	}
	if o.SpringConstant != nil {
		p.SpringConstant = *o.SpringConstant
	}
	if o.GrowthVelocity != nil {
		p.GrowthVelocity = *o.GrowthVelocity
	}
}
