package reaction

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/filasliding/container"
	"github.com/cpmech/filasliding/lattice"
	"github.com/cpmech/filasliding/state"
)

// HopPartial implements spec.md §4.5's HopPartial: a partial linker's
// bound terminus teleports to an adjacent free site, rate biased by
// terminus, direction, and (if the destination is not already adjacent
// to a same-type occupant) a cooperative-binding factor. Grounded on
// both revisions of original_source/HopPartial.cpp: the newer one (with
// the cooperative bias term) is the one implemented.
type HopPartial struct {
	base
	Type                                      lattice.LinkerType
	headPlus, headMinus, tailPlus, tailMinus float64
	coopFactor                                float64

	rates []float64
}

func NewHopPartial(t lattice.LinkerType, baseRateHead, baseRateTail, headBiasEnergy, tailBiasEnergy, coopBiasEnergy float64) *HopPartial {
	return &HopPartial{
		Type:       t,
		headPlus:   baseRateHead * math.Exp(headBiasEnergy*0.5),
		headMinus:  baseRateHead * math.Exp(-headBiasEnergy*0.5),
		tailPlus:   baseRateTail * math.Exp(tailBiasEnergy*0.5),
		tailMinus:  baseRateTail * math.Exp(-tailBiasEnergy*0.5),
		coopFactor: math.Exp(-coopBiasEnergy),
	}
}

func (r *HopPartial) rateFor(row container.PossiblePartialHop) float64 {
	var rate float64
	switch {
	case row.Terminus == lattice.Head && row.Direction == lattice.Forward:
		rate = r.headPlus
	case row.Terminus == lattice.Head && row.Direction == lattice.Backward:
		rate = r.headMinus
	case row.Terminus == lattice.Tail && row.Direction == lattice.Forward:
		rate = r.tailPlus
	default:
		rate = r.tailMinus
	}
	if row.AwayFromNeighbour {
		rate *= r.coopFactor
	}
	return rate
}

func (r *HopPartial) SetCurrentRate(s *state.SystemState) {
	rows := s.ContainerFor(r.Type).PossiblePartialHops()
	r.rates = r.rates[:0]
	sum := 0.0
	for _, row := range rows {
		rate := r.rateFor(row)
		r.rates = append(r.rates, rate)
		sum += rate
	}
	r.currentRate = sum
}

func (r *HopPartial) PerformReaction(s *state.SystemState, rng RNG) {
	rows := s.ContainerFor(r.Type).PossiblePartialHops()
	if len(rows) == 0 {
		chk.Panic("reaction: HopPartial fired for type %v with no possible hop", r.Type)
	}
	u := rng.Float64() * r.currentRate
	i := categoricalPick(r.rates, u)
	if i < 0 {
		chk.Panic("reaction: HopPartial categorical selection exhausted all %d candidates", len(rows))
	}
	row := rows[i]
	s.HopPartialLinker(row.Partial, row.Terminus, row.Target)
}
