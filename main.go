// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"math"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/filasliding/container"
	"github.com/cpmech/filasliding/inp"
	"github.com/cpmech/filasliding/initial"
	"github.com/cpmech/filasliding/lattice"
	"github.com/cpmech/filasliding/microtubule"
	"github.com/cpmech/filasliding/sim"
	"github.com/cpmech/filasliding/simlog"
	"github.com/cpmech/filasliding/state"
	"github.com/cpmech/filasliding/stats"
)

func main() {
	exitCode := 0

	// catch errors the way gofem/main.go does: a deferred recover prints
	// caller frames and a red diagnostic instead of a raw Go panic trace.
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
			exitCode = 1
		}
		os.Exit(exitCode)
	}()

	// positional driver options, io.ArgToXxx the way gofem/main.go reads
	// its own non-override arguments.
	paramFile, _ := io.ArgToFilename(0, "", ".params.txt", true)
	dirOut := io.ArgToString(1, ".")
	verbose := io.ArgToBool(2, true)
	plot := io.ArgToBool(3, false)

	if verbose {
		io.PfWhite("\nfilasliding -- stochastic filament-sliding simulator\n\n")
	}

	// the closed -N/-LM/-NP/-K/-GV override set, if any, follows the
	// four positional arguments above.
	var overrideArgs []string
	if len(os.Args) > 5 {
		overrideArgs = os.Args[5:]
	}
	overrides, err := inp.ParseCommandArgs(overrideArgs)
	if err != nil {
		io.Pfyel("warning: %v\n", err)
		overrides = &inp.CommandOverrides{}
	}

	params, err := loadParameters(paramFile, verbose)
	if err != nil {
		chk.Panic("could not obtain a usable parameter file: %v", err)
	}
	params.ApplyOverrides(overrides)

	if verbose {
		io.Pf("\n%v\n", io.ArgsTable(
			"parameter file", "paramFile", paramFile,
			"output directory", "dirOut", dirOut,
			"run name", "runName", params.RunName,
		))
	}

	log := simlog.New(dirOut, params.RunName)
	defer log.Close()

	s := buildSystemState(params)
	ini := initial.New(initial.Params{
		ProbPartiallyConnectedTip:           params.ProbPartiallyConnectedTip,
		ProbFullyConnectedTip:               params.ProbFullyConnectedTip,
		ProbPartiallyConnectedBlocked:       params.ProbPartiallyConnectedBlocked,
		ProbFullyConnectedBlocked:           params.ProbFullyConnectedBlocked,
		ProbPartialBoundOnTipOutsideOverlap: params.ProbPartialBoundOnTipOutsideOverlap,
		ProbTipUnblocked:                    params.ProbTipUnblocked,
		TipLengthSites:                      params.TipLengthSites,
		Stochastic:                          params.StochasticTip,
	})

	rng := sim.NewRNG(int64(params.RandomSeed))
	ini.Initialise(s, rng)

	prop := sim.NewPropagator(propagatorParams(params), rng)

	out := stats.NewOutput(dirOut, params.RunName,
		params.HistogramBinSize, params.LatticeSpacing,
		params.DynamicsBinSize, params.EstimateTimeStep,
		float64(params.TipLengthSites)*params.LatticeSpacing,
		params.PathWriteFrequency)
	defer out.Close()

	log.Message("equilibrating %d blocks of %d steps", params.NumberEquilibrationBlocks, params.NumberTimeStepsPerBlock)
	prop.Equilibrate(s, rng)

	log.Message("running %d blocks of %d steps", params.NumberRunBlocks, params.NumberTimeStepsPerBlock)
	prop.Run(s, rng, out)

	log.WriteBoundaryProtocolAppearance()
	if plot {
		out.PlotAll()
	}
	if verbose {
		io.Pfcyan("\ndone: %s\n", params.RunName)
	}
}

// loadParameters reads paramFile, writing (and then reading back) a
// default parameter file when it is missing, the Go-side analogue of
// original_source/Input.cpp's catch-then-produceDefault flow
// (InputMalformed, spec.md §7) — adapted to be non-interactive since this
// port has no terminal prompt loop.
func loadParameters(paramFile string, verbose bool) (*inp.Parameters, error) {
	if !inp.FileExists(paramFile) {
		if verbose {
			io.Pfyel("parameter file %s not found, writing defaults\n", paramFile)
		}
		if err := inp.WriteDefaultParameterFile(paramFile); err != nil {
			return nil, err
		}
	}
	return inp.ReadParameterFile(paramFile)
}

func buildSystemState(p *inp.Parameters) *state.SystemState {
	nSitesFixed := nSitesFor(p.LengthFixedMicrotubule, p.LatticeSpacing)
	nSitesMobile := nSitesFor(p.LengthMobileMicrotubule, p.LatticeSpacing)

	fixed := microtubule.NewFixed(nSitesFixed, p.LatticeSpacing)
	mobile := microtubule.NewMobile(nSitesMobile, p.LatticeSpacing, 0)

	containers := [3]*container.LinkerContainer{
		container.New(lattice.Passive, p.NumberPassiveCrosslinkers),
		container.New(lattice.Dual, p.NumberDualCrosslinkers),
		container.New(lattice.Active, p.NumberActiveCrosslinkers),
	}

	force := externalForceFrom(p)
	return state.New(fixed, mobile, containers, p.MaxStretch(), p.SpringConstant, force)
}

func nSitesFor(length, latticeSpacing float64) int {
	n := int(math.Round(length/latticeSpacing)) + 1
	if n < 1 {
		n = 1
	}
	return n
}

func externalForceFrom(p *inp.Parameters) state.ExternalForce {
	switch p.ExternalForceType {
	case "Sinus":
		return state.Sinus{Amplitude: p.ExternalForceAmplitude, Period: p.ExternalForcePeriod, Phase: p.ExternalForcePhase}
	case "Constant":
		return state.Constant{Force: p.ExternalForceConstant}
	default:
		return state.BarrierFree{}
	}
}

func propagatorParams(p *inp.Parameters) sim.Params {
	return sim.Params{
		NEquilibrationBlocks: p.NumberEquilibrationBlocks,
		NRunBlocks:           p.NumberRunBlocks,
		NTimeSteps:           p.NumberTimeStepsPerBlock,
		CalcTimeStep:         p.CalcTimeStep,
		PositionProbePeriod:  p.PositionProbePeriod,

		DiffusionConstantMicrotubule: p.DiffusionConstantMicrotubule,
		SpringConstant:               p.SpringConstant,
		LatticeSpacing:               p.LatticeSpacing,

		RatePassivePartialHop:                 p.RatePassivePartialHop,
		RatePassiveFullHop:                    p.RatePassiveFullHop,
		BaseRateActivePartialHop:              p.BaseRateActivePartialHop,
		BaseRateActiveFullHop:                 p.BaseRateActiveFullHop,
		ActiveHopToPlusBiasEnergy:             p.ActiveHopToPlusBiasEnergy,
		NeighbourBiasEnergy:                   p.NeighbourBiasEnergy,
		BaseRateZeroToOneExtremitiesConnected: p.BaseRateZeroToOneExtremitiesConnected,
		BaseRateOneToZeroExtremitiesConnected: p.BaseRateOneToZeroExtremitiesConnected,
		BaseRateOneToTwoExtremitiesConnected:  p.BaseRateOneToTwoExtremitiesConnected,
		BaseRateTwoToOneExtremitiesConnected:  p.BaseRateTwoToOneExtremitiesConnected,
		BindPassiveLinkers:                    p.BindPassiveLinkers,
		BindDualLinkers:                       p.BindDualLinkers,
		BindActiveLinkers:                     p.BindActiveLinkers,
		HeadBindingBiasEnergy:                 p.HeadBindingBiasEnergy,

		SamplePositionalDistribution: p.SamplePositionalDistribution,
		RecordTransitionPaths:        p.RecordTransitionPaths,
		TransitionPathProbePeriod:    p.PathWriteFrequency,
		EstimateTimeEvolutionAtPeak:  p.EstimateTimeEvolutionAtPeak,
		EstimateActinDynamics:        p.EstimateActinDynamics,
	}
}
