// Package reaction implements the six Reaction kinds of spec.md §4.5:
// BindFree, BindPartial, UnbindPartial, UnbindFull, HopPartial, HopFull.
// Grounded on original_source's six matching classes
// (BindFreeCrosslinker, BindPartialCrosslinker, UnbindPartialCrosslinker,
// UnbindFullCrosslinker, HopPartial, HopFull) and Reaction.hpp/.cpp for
// the shared rate/action bookkeeping every Reaction carries.
package reaction

import "github.com/cpmech/filasliding/state"

// RNG is the draw surface a Reaction needs. sim.RNG, a math/rand-backed
// wrapper, satisfies it; defining it here (rather than importing sim)
// avoids a cycle, since sim itself drives Reactions.
type RNG interface {
	Float64() float64                   // uniform [0,1)
	UniformInt(lo, hi int) int          // uniform over the inclusive range [lo,hi]
	Bernoulli(p float64) bool
}

// Reaction is the common interface of all six kinds, matching
// Reaction.hpp's pure-virtual surface.
type Reaction interface {
	SetCurrentRate(s *state.SystemState)
	CurrentRate() float64
	UpdateAction()
	ResetAction()
	Action() float64
	PerformReaction(s *state.SystemState, rng RNG)
}

// base holds the action/currentRate bookkeeping common to every Reaction
// (Reaction.cpp: resetAction/getAction/updateAction/getCurrentRate).
type base struct {
	currentRate float64
	action      float64
}

func (b *base) CurrentRate() float64 { return b.currentRate }
func (b *base) Action() float64      { return b.action }
func (b *base) UpdateAction()        { b.action += b.currentRate }
func (b *base) ResetAction()         { b.action = 0 }

// categoricalPick returns the index i such that cumsum(rates[:i]) <= u <
// cumsum(rates[:i+1]), the pattern every *Crosslinker::whichTo*/whichHop
// original method uses: draw u uniformly in [0,sum), walk the cumulative
// sum, return on the first entry that exceeds it.
func categoricalPick(rates []float64, u float64) int {
	sum := 0.0
	for i, r := range rates {
		sum += r
		if sum > u {
			return i
		}
	}
	return -1
}
