package reaction

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/filasliding/lattice"
	"github.com/cpmech/filasliding/state"
)

// UnbindFull implements spec.md §4.5's UnbindFull(type, k_spring):
// categorical selection over every FullConnection weighted by the spring
// energy of its extension, terminus chosen independently by a Bernoulli
// draw. Grounded on original_source/UnbindFullCrosslinker.cpp.
type UnbindFull struct {
	base
	Type                 lattice.LinkerType
	RateOneLinkerUnbinds float64
	SpringK              float64
	ProbHeadUnbinds      float64

	rates []float64
}

func NewUnbindFull(t lattice.LinkerType, rateOneLinkerUnbinds, headBiasEnergy, springK float64) *UnbindFull {
	return &UnbindFull{
		Type:                 t,
		RateOneLinkerUnbinds: rateOneLinkerUnbinds,
		SpringK:              springK,
		ProbHeadUnbinds:      1 / (1 + math.Exp(-headBiasEnergy)),
	}
}

func (r *UnbindFull) SetCurrentRate(s *state.SystemState) {
	fullConnections := s.ContainerFor(r.Type).FullConnections()
	r.rates = r.rates[:0]
	sum := 0.0
	for _, fc := range fullConnections {
		rate := r.RateOneLinkerUnbinds * math.Exp(r.SpringK*fc.Extension*fc.Extension*0.25)
		r.rates = append(r.rates, rate)
		sum += rate
	}
	r.currentRate = sum
}

func (r *UnbindFull) PerformReaction(s *state.SystemState, rng RNG) {
	fullConnections := s.ContainerFor(r.Type).FullConnections()
	if len(fullConnections) == 0 {
		chk.Panic("reaction: UnbindFull fired for type %v with no full connection", r.Type)
	}
	u := rng.Float64() * r.currentRate
	i := categoricalPick(r.rates, u)
	if i < 0 {
		chk.Panic("reaction: UnbindFull categorical selection exhausted all %d candidates", len(fullConnections))
	}
	term := lattice.Tail
	if rng.Bernoulli(r.ProbHeadUnbinds) {
		term = lattice.Head
	}
	s.DisconnectFullLinker(fullConnections[i].Full, term)
}
