package inp

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// kind is GenericValue's AllowedTypes (TEXT/INTEGER/REAL), restricted to
// the three column values spec.md §6 allows.
type kind int

const (
	kindText kind = iota
	kindInteger
	kindReal
)

func (k kind) String() string {
	switch k {
	case kindInteger:
		return "integer"
	case kindReal:
		return "real"
	default:
		return "text"
	}
}

// field is one row of the parameter table: a name, a unit, a type, and
// get/set closures bound to a *Parameters field. Grounded on
// ParameterMap::defineParameter's (name, value, unit) triple, generalised
// here into typed accessors since Go has no GenericValue-style tagged
// union to store them in directly.
type field struct {
	name, unit, possible string
	k                    kind
	get                  func(*Parameters) string
	set                  func(*Parameters, string) error
}

func boolField(name, unit string, get func(*Parameters) bool, set func(*Parameters, bool)) field {
	return field{
		name: name, unit: unit, k: kindInteger, possible: "0,1",
		get: func(p *Parameters) string {
			if get(p) {
				return "1"
			}
			return "0"
		},
		set: func(p *Parameters, s string) error {
			n, err := strconv.Atoi(s)
			if err != nil {
				return chk.Err("inp: parameter %s: %q is not an integer: %v", name, s, err)
			}
			set(p, n != 0)
			return nil
		},
	}
}

func intField(name, unit string, get func(*Parameters) int, set func(*Parameters, int)) field {
	return field{
		name: name, unit: unit, k: kindInteger, possible: "all",
		get: func(p *Parameters) string { return strconv.Itoa(get(p)) },
		set: func(p *Parameters, s string) error {
			n, err := strconv.Atoi(s)
			if err != nil {
				return chk.Err("inp: parameter %s: %q is not an integer: %v", name, s, err)
			}
			set(p, n)
			return nil
		},
	}
}

func realField(name, unit string, get func(*Parameters) float64, set func(*Parameters, float64)) field {
	return field{
		name: name, unit: unit, k: kindReal, possible: "all",
		get: func(p *Parameters) string { return io.Sf("%.15e", get(p)) },
		set: func(p *Parameters, s string) error {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return chk.Err("inp: parameter %s: %q is not a real number: %v", name, s, err)
			}
			set(p, v)
			return nil
		},
	}
}

func textField(name, unit, possible string, get func(*Parameters) string, set func(*Parameters, string)) field {
	return field{
		name: name, unit: unit, k: kindText, possible: possible,
		get: get,
		set: func(p *Parameters, s string) error { set(p, s); return nil },
	}
}

// fieldTable lists every parameter in the fixed order the file is read
// and written in. Reordering this slice changes the file format; the
// reader enforces that the file matches this exact order (spec.md §6:
// "out-of-order input is a fatal error").
func fieldTable() []field {
	return []field{
		textField("runName", "unitless", "all", func(p *Parameters) string { return p.RunName }, func(p *Parameters, v string) { p.RunName = v }),
		intField("numberEquilibrationBlocks", "blocks", func(p *Parameters) int { return p.NumberEquilibrationBlocks }, func(p *Parameters, v int) { p.NumberEquilibrationBlocks = v }),
		intField("numberRunBlocks", "blocks", func(p *Parameters) int { return p.NumberRunBlocks }, func(p *Parameters, v int) { p.NumberRunBlocks = v }),
		intField("numberTimeStepsPerBlock", "steps", func(p *Parameters) int { return p.NumberTimeStepsPerBlock }, func(p *Parameters, v int) { p.NumberTimeStepsPerBlock = v }),
		realField("calcTimeStep", "seconds", func(p *Parameters) float64 { return p.CalcTimeStep }, func(p *Parameters, v float64) { p.CalcTimeStep = v }),
		intField("positionProbePeriod", "steps", func(p *Parameters) int { return p.PositionProbePeriod }, func(p *Parameters, v int) { p.PositionProbePeriod = v }),
		intField("randomSeed", "unitless", func(p *Parameters) int { return p.RandomSeed }, func(p *Parameters, v int) { p.RandomSeed = v }),

		realField("lengthMobileMicrotubule", "micrometer", func(p *Parameters) float64 { return p.LengthMobileMicrotubule }, func(p *Parameters, v float64) { p.LengthMobileMicrotubule = v }),
		realField("lengthFixedMicrotubule", "micrometer", func(p *Parameters) float64 { return p.LengthFixedMicrotubule }, func(p *Parameters, v float64) { p.LengthFixedMicrotubule = v }),
		realField("latticeSpacing", "micrometer", func(p *Parameters) float64 { return p.LatticeSpacing }, func(p *Parameters, v float64) { p.LatticeSpacing = v }),
		realField("diffusionConstantMicrotubule", "micrometer^(2)*second^(-1)", func(p *Parameters) float64 { return p.DiffusionConstantMicrotubule }, func(p *Parameters, v float64) { p.DiffusionConstantMicrotubule = v }),
		realField("rhoMaxStretch", "unitless", func(p *Parameters) float64 { return p.RhoMaxStretch }, func(p *Parameters, v float64) { p.RhoMaxStretch = v }),
		intField("tipLengthSites", "sites", func(p *Parameters) int { return p.TipLengthSites }, func(p *Parameters, v int) { p.TipLengthSites = v }),
		realField("growthVelocity", "micrometer*second^(-1)", func(p *Parameters) float64 { return p.GrowthVelocity }, func(p *Parameters, v float64) { p.GrowthVelocity = v }),

		intField("numberActiveCrosslinkers", "crosslinkers", func(p *Parameters) int { return p.NumberActiveCrosslinkers }, func(p *Parameters, v int) { p.NumberActiveCrosslinkers = v }),
		intField("numberDualCrosslinkers", "crosslinkers", func(p *Parameters) int { return p.NumberDualCrosslinkers }, func(p *Parameters, v int) { p.NumberDualCrosslinkers = v }),
		intField("numberPassiveCrosslinkers", "crosslinkers", func(p *Parameters) int { return p.NumberPassiveCrosslinkers }, func(p *Parameters, v int) { p.NumberPassiveCrosslinkers = v }),
		realField("springConstant", "kT*micrometer^(-2)", func(p *Parameters) float64 { return p.SpringConstant }, func(p *Parameters, v float64) { p.SpringConstant = v }),

		realField("ratePassivePartialHop", "second^(-1)", func(p *Parameters) float64 { return p.RatePassivePartialHop }, func(p *Parameters, v float64) { p.RatePassivePartialHop = v }),
		realField("ratePassiveFullHop", "second^(-1)", func(p *Parameters) float64 { return p.RatePassiveFullHop }, func(p *Parameters, v float64) { p.RatePassiveFullHop = v }),
		realField("baseRateActivePartialHop", "second^(-1)", func(p *Parameters) float64 { return p.BaseRateActivePartialHop }, func(p *Parameters, v float64) { p.BaseRateActivePartialHop = v }),
		realField("baseRateActiveFullHop", "second^(-1)", func(p *Parameters) float64 { return p.BaseRateActiveFullHop }, func(p *Parameters, v float64) { p.BaseRateActiveFullHop = v }),
		realField("activeHopToPlusBiasEnergy", "kT", func(p *Parameters) float64 { return p.ActiveHopToPlusBiasEnergy }, func(p *Parameters, v float64) { p.ActiveHopToPlusBiasEnergy = v }),
		realField("neighbourBiasEnergy", "kT", func(p *Parameters) float64 { return p.NeighbourBiasEnergy }, func(p *Parameters, v float64) { p.NeighbourBiasEnergy = v }),
		realField("baseRateZeroToOneExtremitiesConnected", "second^(-1)", func(p *Parameters) float64 { return p.BaseRateZeroToOneExtremitiesConnected }, func(p *Parameters, v float64) { p.BaseRateZeroToOneExtremitiesConnected = v }),
		realField("baseRateOneToZeroExtremitiesConnected", "second^(-1)", func(p *Parameters) float64 { return p.BaseRateOneToZeroExtremitiesConnected }, func(p *Parameters, v float64) { p.BaseRateOneToZeroExtremitiesConnected = v }),
		realField("baseRateOneToTwoExtremitiesConnected", "second^(-1)", func(p *Parameters) float64 { return p.BaseRateOneToTwoExtremitiesConnected }, func(p *Parameters, v float64) { p.BaseRateOneToTwoExtremitiesConnected = v }),
		realField("baseRateTwoToOneExtremitiesConnected", "second^(-1)", func(p *Parameters) float64 { return p.BaseRateTwoToOneExtremitiesConnected }, func(p *Parameters, v float64) { p.BaseRateTwoToOneExtremitiesConnected = v }),
		realField("headBindingBiasEnergy", "kT", func(p *Parameters) float64 { return p.HeadBindingBiasEnergy }, func(p *Parameters, v float64) { p.HeadBindingBiasEnergy = v }),
		boolField("bindPassiveLinkers", "unitless", func(p *Parameters) bool { return p.BindPassiveLinkers }, func(p *Parameters, v bool) { p.BindPassiveLinkers = v }),
		boolField("bindDualLinkers", "unitless", func(p *Parameters) bool { return p.BindDualLinkers }, func(p *Parameters, v bool) { p.BindDualLinkers = v }),
		boolField("bindActiveLinkers", "unitless", func(p *Parameters) bool { return p.BindActiveLinkers }, func(p *Parameters, v bool) { p.BindActiveLinkers = v }),

		realField("probabilityPartiallyConnectedTip", "unitless", func(p *Parameters) float64 { return p.ProbPartiallyConnectedTip }, func(p *Parameters, v float64) { p.ProbPartiallyConnectedTip = v }),
		realField("probabilityFullyConnectedTip", "unitless", func(p *Parameters) float64 { return p.ProbFullyConnectedTip }, func(p *Parameters, v float64) { p.ProbFullyConnectedTip = v }),
		realField("probabilityPartiallyConnectedBlocked", "unitless", func(p *Parameters) float64 { return p.ProbPartiallyConnectedBlocked }, func(p *Parameters, v float64) { p.ProbPartiallyConnectedBlocked = v }),
		realField("probabilityFullyConnectedBlocked", "unitless", func(p *Parameters) float64 { return p.ProbFullyConnectedBlocked }, func(p *Parameters, v float64) { p.ProbFullyConnectedBlocked = v }),
		realField("probabilityPartialBoundOnTipOutsideOverlap", "unitless", func(p *Parameters) float64 { return p.ProbPartialBoundOnTipOutsideOverlap }, func(p *Parameters, v float64) { p.ProbPartialBoundOnTipOutsideOverlap = v }),
		realField("probabilityTipUnblocked", "unitless", func(p *Parameters) float64 { return p.ProbTipUnblocked }, func(p *Parameters, v float64) { p.ProbTipUnblocked = v }),
		boolField("stochasticTip", "unitless", func(p *Parameters) bool { return p.StochasticTip }, func(p *Parameters, v bool) { p.StochasticTip = v }),

		textField("externalForceType", "unitless", "BarrierFree,Sinus,Constant", func(p *Parameters) string { return p.ExternalForceType }, func(p *Parameters, v string) { p.ExternalForceType = v }),
		realField("externalForceAmplitude", "kT*micrometer^(-1)", func(p *Parameters) float64 { return p.ExternalForceAmplitude }, func(p *Parameters, v float64) { p.ExternalForceAmplitude = v }),
		realField("externalForcePeriod", "micrometer", func(p *Parameters) float64 { return p.ExternalForcePeriod }, func(p *Parameters, v float64) { p.ExternalForcePeriod = v }),
		realField("externalForcePhase", "radian", func(p *Parameters) float64 { return p.ExternalForcePhase }, func(p *Parameters, v float64) { p.ExternalForcePhase = v }),
		realField("externalForceConstant", "kT*micrometer^(-1)", func(p *Parameters) float64 { return p.ExternalForceConstant }, func(p *Parameters, v float64) { p.ExternalForceConstant = v }),

		realField("histogramBinSize", "micrometer", func(p *Parameters) float64 { return p.HistogramBinSize }, func(p *Parameters, v float64) { p.HistogramBinSize = v }),
		realField("dynamicsBinSize", "micrometer", func(p *Parameters) float64 { return p.DynamicsBinSize }, func(p *Parameters, v float64) { p.DynamicsBinSize = v }),
		realField("estimateTimeStep", "seconds", func(p *Parameters) float64 { return p.EstimateTimeStep }, func(p *Parameters, v float64) { p.EstimateTimeStep = v }),
		intField("pathWriteFrequency", "unitless", func(p *Parameters) int { return p.PathWriteFrequency }, func(p *Parameters, v int) { p.PathWriteFrequency = v }),
		boolField("samplePositionalDistribution", "unitless", func(p *Parameters) bool { return p.SamplePositionalDistribution }, func(p *Parameters, v bool) { p.SamplePositionalDistribution = v }),
		boolField("recordTransitionPaths", "unitless", func(p *Parameters) bool { return p.RecordTransitionPaths }, func(p *Parameters, v bool) { p.RecordTransitionPaths = v }),
		boolField("estimateTimeEvolutionAtPeak", "unitless", func(p *Parameters) bool { return p.EstimateTimeEvolutionAtPeak }, func(p *Parameters, v bool) { p.EstimateTimeEvolutionAtPeak = v }),
		boolField("estimateActinDynamics", "unitless", func(p *Parameters) bool { return p.EstimateActinDynamics }, func(p *Parameters, v bool) { p.EstimateActinDynamics = v }),
	}
}

const (
	nameWidth  = 44
	valueWidth = 26
	unitWidth  = 28
	typeWidth  = 10
)

// WriteParameterFile writes p to path in the whitespace-column NAME
// VALUE UNIT TYPE POSSIBLE_VALUES format (spec.md §6), mirroring
// ParameterMap::operator<<'s left-justified, fixed-width columns.
func WriteParameterFile(path string, p *Parameters) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%-*s%-*s%-*s%-*s%s\n", nameWidth, "NAME", valueWidth, "VALUE", unitWidth, "UNIT", typeWidth, "TYPE", "POSSIBLE_VALUES")
	for _, f := range fieldTable() {
		fmt.Fprintf(&b, "%-*s%-*s%-*s%-*s%s\n", nameWidth, f.name, valueWidth, f.get(p), unitWidth, f.unit, typeWidth, f.k.String(), f.possible)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return chk.Err("inp: could not write parameter file %s: %v", path, err)
	}
	return nil
}

// WriteDefaultParameterFile writes the built-in default parameter set to
// path, original_source/Input::produceDefault's "create default?" action
// (the interactive prompt itself is the caller's responsibility — see
// ReadParameterFile's doc comment).
func WriteDefaultParameterFile(path string) error {
	return WriteParameterFile(path, Default())
}

// ReadParameterFile reads and validates a whitespace-column parameter
// file, requiring every field of fieldTable() in exactly that order
// (spec.md §6: "out-of-order input is a fatal error"). It returns an
// error rather than aborting — InputMalformed per spec.md §7 — so the
// caller (main.go) can decide whether to offer writing a default file,
// matching original_source/Input.cpp's catch-then-produceDefault flow.
func ReadParameterFile(path string) (*Parameters, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, chk.Err("inp: parameter file %s could not be opened: %v", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return nil, chk.Err("inp: parameter file %s is empty", path)
	} // discard header line

	p := Default()
	for _, fld := range fieldTable() {
		line, ok := nextNonBlank(scanner)
		if !ok {
			return nil, chk.Err("inp: parameter file %s ended before parameter %q was read", path, fld.name)
		}
		toks := strings.Fields(line)
		if len(toks) < 4 {
			return nil, chk.Err("inp: parameter file %s: line %q has fewer than 4 columns", path, line)
		}
		if toks[0] != fld.name {
			return nil, chk.Err("inp: parameter file %s is out of order or missing a parameter: expected %q, found %q", path, fld.name, toks[0])
		}
		if toks[3] != fld.k.String() {
			return nil, chk.Err("inp: parameter %s has type %q, expected %q", fld.name, toks[3], fld.k.String())
		}
		if err := fld.set(p, toks[1]); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, chk.Err("inp: error reading parameter file %s: %v", path, err)
	}
	return p, nil
}

func nextNonBlank(scanner *bufio.Scanner) (string, bool) {
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) != "" {
			return scanner.Text(), true
		}
	}
	return "", false
}

// FileExists mirrors original_source/Input::fileExists, used by the
// caller to decide whether to offer creating a default parameter file.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
