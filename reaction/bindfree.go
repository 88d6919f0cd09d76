package reaction

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/filasliding/lattice"
	"github.com/cpmech/filasliding/state"
)

// BindFree implements spec.md §4.5's BindFree(type): a Free linker binds
// one terminus to a uniformly chosen free site on either filament.
// Grounded on original_source/BindFreeCrosslinker.cpp.
type BindFree struct {
	base
	Type          lattice.LinkerType
	RateToOneSite float64
	ProbHeadBinds float64
}

func NewBindFree(t lattice.LinkerType, rateToOneSite, headBiasEnergy float64) *BindFree {
	return &BindFree{
		Type:          t,
		RateToOneSite: rateToOneSite,
		ProbHeadBinds: 1 / (1 + math.Exp(-headBiasEnergy)),
	}
}

func (r *BindFree) SetCurrentRate(s *state.SystemState) {
	n := s.Fixed.NFreeSites() + s.Mobile.NFreeSites()
	r.currentRate = r.RateToOneSite * float64(n)
}

func (r *BindFree) PerformReaction(s *state.SystemState, rng RNG) {
	if s.ContainerFor(r.Type).NFree() == 0 {
		chk.Panic("reaction: BindFree fired for type %v but no free linker remains", r.Type)
	}
	nFixed := s.Fixed.NFreeSites()
	nMobile := s.Mobile.NFreeSites()
	total := nFixed + nMobile
	if total == 0 {
		chk.Panic("reaction: BindFree fired but no free sites remain")
	}
	label := rng.UniformInt(0, total-1)
	var loc lattice.SiteLocation
	if label < nFixed {
		loc = lattice.SiteLocation{Filament: lattice.Fixed, Position: s.Fixed.FreeSitePositionCombined(label)}
	} else {
		loc = lattice.SiteLocation{Filament: lattice.Mobile, Position: s.Mobile.FreeSitePositionCombined(label - nFixed)}
	}
	term := lattice.Tail
	if rng.Bernoulli(r.ProbHeadBinds) {
		term = lattice.Head
	}
	s.ConnectFreeLinker(r.Type, term, loc)
}
