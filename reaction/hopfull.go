package reaction

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/filasliding/container"
	"github.com/cpmech/filasliding/lattice"
	"github.com/cpmech/filasliding/state"
)

// HopFull implements spec.md §4.5's HopFull(type, k_spring): like
// HopPartial, but the base per-terminus/direction rate is additionally
// scaled by the spring-energy change the hop would cause. Grounded on
// original_source/HopFull.cpp for the base rates and the spring factor;
// the cooperative-bias factor is carried over from
// original_source/src/HopPartial.cpp per spec.md §4.5's "like HopPartial"
// wording, even though the retrieved HopFull.cpp revision predates that
// term (see SPEC_FULL.md §9's recorded decision).
type HopFull struct {
	base
	Type                                      lattice.LinkerType
	headPlus, headMinus, tailPlus, tailMinus float64
	coopFactor                                float64
	SpringK                                   float64

	rates []float64
}

func NewHopFull(t lattice.LinkerType, baseRateHead, baseRateTail, headBiasEnergy, tailBiasEnergy, coopBiasEnergy, springK float64) *HopFull {
	return &HopFull{
		Type:       t,
		headPlus:   baseRateHead * math.Exp(headBiasEnergy*0.5),
		headMinus:  baseRateHead * math.Exp(-headBiasEnergy*0.5),
		tailPlus:   baseRateTail * math.Exp(tailBiasEnergy*0.5),
		tailMinus:  baseRateTail * math.Exp(-tailBiasEnergy*0.5),
		coopFactor: math.Exp(-coopBiasEnergy),
		SpringK:    springK,
	}
}

func (r *HopFull) rateFor(row container.PossibleFullHop) float64 {
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
	rate *= math.Exp(0.25 * r.SpringK * (row.OldExtension*row.OldExtension - row.NewExtension*row.NewExtension))
	if row.AwayFromNeighbour {
		rate *= r.coopFactor
	}
	return rate
}

func (r *HopFull) SetCurrentRate(s *state.SystemState) {
	rows := s.ContainerFor(r.Type).PossibleFullHops()
	r.rates = r.rates[:0]
	sum := 0.0
	for _, row := range rows {
		rate := r.rateFor(row)
		r.rates = append(r.rates, rate)
		sum += rate
	}
	r.currentRate = sum
}

func (r *HopFull) PerformReaction(s *state.SystemState, rng RNG) {
	rows := s.ContainerFor(r.Type).PossibleFullHops()
	if len(rows) == 0 {
		chk.Panic("reaction: HopFull fired for type %v with no possible hop", r.Type)
	}
	u := rng.Float64() * r.currentRate
	i := categoricalPick(r.rates, u)
	if i < 0 {
		chk.Panic("reaction: HopFull categorical selection exhausted all %d candidates", len(rows))
	}
	row := rows[i]
	s.HopFullLinker(row.Full, row.Terminus, row.Target)
}
