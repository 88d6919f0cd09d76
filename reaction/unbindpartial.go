package reaction

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/filasliding/lattice"
	"github.com/cpmech/filasliding/state"
)

// UnbindPartial implements spec.md §4.5's UnbindPartial(type): rate
// weighted by how many partial linkers are bound with head vs. tail,
// selection a two-stage Bernoulli-then-uniform draw. Grounded on
// original_source/UnbindPartialCrosslinker.cpp. The head/tail exponent
// sign is the literal one from the source (see SPEC_FULL.md §9's
// recorded Open Question decision), not harmonised with BindFree's.
type UnbindPartial struct {
	base
	Type                         lattice.LinkerType
	RateOneTerminusDisconnects   float64
	HeadFactor                   float64
	TailFactor                   float64
}

func NewUnbindPartial(t lattice.LinkerType, rateOneTerminusDisconnects, headBiasEnergy float64) *UnbindPartial {
	headFactor := 2 / (1 + math.Exp(headBiasEnergy))
	return &UnbindPartial{
		Type:                       t,
		RateOneTerminusDisconnects: rateOneTerminusDisconnects,
		HeadFactor:                 headFactor,
		TailFactor:                 2 - headFactor,
	}
}

func (r *UnbindPartial) SetCurrentRate(s *state.SystemState) {
	c := s.ContainerFor(r.Type)
	nHead := len(c.PartialLinkersBoundWithHead())
	nTail := len(c.PartialLinkersBoundWithTail())
	r.currentRate = r.RateOneTerminusDisconnects * (float64(nHead)*r.HeadFactor + float64(nTail)*r.TailFactor)
}

func (r *UnbindPartial) PerformReaction(s *state.SystemState, rng RNG) {
	c := s.ContainerFor(r.Type)
	headSet := c.PartialLinkersBoundWithHead()
	tailSet := c.PartialLinkersBoundWithTail()
	if len(headSet) == 0 && len(tailSet) == 0 {
		chk.Panic("reaction: UnbindPartial fired for type %v with no partial linker", r.Type)
	}
	probHead := 0.0
	if r.currentRate > 0 {
		probHead = r.RateOneTerminusDisconnects * float64(len(headSet)) * r.HeadFactor / r.currentRate
	}
	chosen := tailSet
	if rng.Bernoulli(probHead) {
		chosen = headSet
	}
	if len(chosen) == 0 {
		chk.Panic("reaction: UnbindPartial selected an empty terminus set")
	}
	idx := rng.UniformInt(0, len(chosen)-1)
	s.DisconnectPartialLinker(chosen[idx])
}
