package reaction

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/filasliding/lattice"
	"github.com/cpmech/filasliding/state"
)

// BindPartial implements spec.md §4.5's BindPartial(type, k_spring):
// categorical selection over every PossibleFullConnection, weighted by
// the spring energy of the candidate extension and by which terminus
// would complete the connection. Grounded on
// original_source/BindPartialCrosslinker.cpp.
type BindPartial struct {
	base
	Type                     lattice.LinkerType
	RateOneTerminusToOneSite float64
	SpringK                  float64
	HeadFactor               float64
	TailFactor               float64

	rates []float64
}

func NewBindPartial(t lattice.LinkerType, rateOneTerminusToOneSite, headBiasEnergy, springK float64) *BindPartial {
	headFactor := 2 / (1 + math.Exp(-headBiasEnergy))
	return &BindPartial{
		Type:                     t,
		RateOneTerminusToOneSite: rateOneTerminusToOneSite,
		SpringK:                  springK,
		HeadFactor:               headFactor,
		TailFactor:               2 - headFactor,
	}
}

func (r *BindPartial) SetCurrentRate(s *state.SystemState) {
	c := s.ContainerFor(r.Type)
	candidates := c.PossibleFullConnections()
	r.rates = r.rates[:0]
	sum := 0.0
	for _, cand := range candidates {
		rate := r.RateOneTerminusToOneSite * math.Exp(-r.SpringK*cand.Extension*cand.Extension*0.25)
		if c.At(cand.Partial).FreeTerminusWhenPartial() == lattice.Head {
			rate *= r.HeadFactor
		} else {
			rate *= r.TailFactor
		}
		r.rates = append(r.rates, rate)
		sum += rate
	}
	r.currentRate = sum
}

func (r *BindPartial) PerformReaction(s *state.SystemState, rng RNG) {
	candidates := s.ContainerFor(r.Type).PossibleFullConnections()
	if len(candidates) == 0 {
		chk.Panic("reaction: BindPartial fired for type %v with no possible full connection", r.Type)
	}
	u := rng.Float64() * r.currentRate
	i := categoricalPick(r.rates, u)
	if i < 0 {
		chk.Panic("reaction: BindPartial categorical selection exhausted all %d candidates", len(candidates))
	}
	s.FullyConnectPartialLinker(candidates[i].Partial, candidates[i].Location)
}
