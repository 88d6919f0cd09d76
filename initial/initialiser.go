// Package initial builds a starting SystemState configuration: an
// overlap region seeded with a mix of partially and fully connected
// cross-linkers, plus a blocked-site mask on the Fixed filament, sampled
// from its plus-end tip inward. Grounded on
// original_source/Initialiser.hpp/.cpp.
package initial

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/filasliding/lattice"
	"github.com/cpmech/filasliding/reaction"
	"github.com/cpmech/filasliding/state"
)

// Params mirrors the Initialiser constructor parameters of
// original_source/Initialiser.hpp.
type Params struct {
	ProbPartiallyConnectedTip           float64
	ProbFullyConnectedTip               float64
	ProbPartiallyConnectedBlocked       float64
	ProbFullyConnectedBlocked           float64
	ProbPartialBoundOnTipOutsideOverlap float64
	ProbTipUnblocked                    float64
	TipLengthSites                      int
	Stochastic                          bool // microtubule dynamics: geometric tip decay vs. a fixed boundary
}

// Initialiser samples the starting configuration of a SystemState: first
// the cross-linker connections within and around the overlap, then the
// blocked-site mask.
type Initialiser struct {
	Params
}

func New(p Params) *Initialiser {
	return &Initialiser{Params: p}
}

// Initialise runs both sampling passes in the order the original
// performs them: crosslinkers first (against the as-yet-unblocked
// lattice), then the blocked-site mask (which may disconnect some of the
// linkers just placed).
func (ini *Initialiser) Initialise(s *state.SystemState, rng reaction.RNG) {
	ini.initialiseCrosslinkers(s, rng)
	ini.initialiseBlockedSites(s, rng)
}

func overlapSiteRange(s *state.SystemState) (fixedFirst, fixedLast, mobileFirst, mobileLast int) {
	lo, hi := s.OverlapRange()
	fixedFirst = s.Fixed.FirstPosCloseTo(lo, 0)
	fixedLast = s.Fixed.LastPosCloseTo(hi, 0)
	mobileFirst = s.Mobile.FirstPosCloseTo(lo-s.Mobile.X, 0)
	mobileLast = s.Mobile.LastPosCloseTo(hi-s.Mobile.X, 0)
	return
}

func (ini *Initialiser) initialiseCrosslinkers(s *state.SystemState, rng reaction.RNG) {
	fixedFirst, fixedLast, mobileFirst, mobileLast := overlapSiteRange(s)
	nOverlapFixed := fixedLast - fixedFirst + 1
	nOverlapMobile := mobileLast - mobileFirst + 1
	nSitesOverlap := nOverlapFixed
	if nOverlapMobile < nSitesOverlap {
		nSitesOverlap = nOverlapMobile
	}
	if nSitesOverlap <= 0 {
		return
	}

	positions := make([]int, nSitesOverlap)
	for i := range positions {
		positions[i] = i
	}
	shuffle(positions, rng)

	fractionConnected := ini.ProbPartiallyConnectedTip + ini.ProbFullyConnectedTip
	if fractionConnected > 1.0 {
		chk.Panic("initial: probabilityPartiallyConnectedTip+probabilityFullyConnectedTip must not exceed 1, got %g", fractionConnected)
	}
	// the small tolerance keeps a product that lands one rounding error
	// above a whole number, such as (0.2+0.4)*20, from rounding up past it
	nSitesToConnect := int(math.Ceil(fractionConnected*float64(nSitesOverlap) - 1e-9))
	if nSitesToConnect > nSitesOverlap {
		nSitesToConnect = nSitesOverlap
	}

	nFree := [3]int{}
	nFreeTotal := 0
	for _, t := range lattice.AllLinkerTypes {
		n := s.ContainerFor(t).NFree()
		nFree[t] = n
		nFreeTotal += n
	}
	if nFreeTotal < nSitesToConnect {
		chk.Panic("initial: only %d free linkers available, need %d to seed the overlap", nFreeTotal, nSitesToConnect)
	}

	nToConnect := nEachTypeToConnect(nSitesToConnect, nFreeTotal, nFree)

	probPartialGivenBound := 0.0
	if fractionConnected > 0 {
		probPartialGivenBound = ini.ProbPartiallyConnectedTip / fractionConnected
	}

	connectedSoFar := 0
	for _, t := range lattice.AllLinkerTypes {
		for i := 0; i < nToConnect[t]; i, connectedSoFar = i+1, connectedSoFar+1 {
			offset := positions[connectedSoFar]
			fixedLoc := lattice.SiteLocation{Filament: lattice.Fixed, Position: fixedFirst + offset}
			mobileLoc := lattice.SiteLocation{Filament: lattice.Mobile, Position: mobileFirst + offset}
			id := s.ConnectFreeLinker(t, lattice.Tail, fixedLoc)
			if !rng.Bernoulli(probPartialGivenBound) {
				s.FullyConnectPartialLinker(id, mobileLoc)
			}
		}
	}

	for pos := 0; pos < s.Fixed.NSites(); pos++ {
		if pos >= fixedFirst && pos <= fixedLast {
			continue
		}
		if !rng.Bernoulli(ini.ProbPartialBoundOnTipOutsideOverlap) {
			continue
		}
		if s.ContainerFor(lattice.Passive).NFree() == 0 {
			chk.Panic("initial: no free Passive linker available to seed outside-overlap binding")
		}
		s.ConnectFreeLinker(lattice.Passive, lattice.Tail, lattice.SiteLocation{Filament: lattice.Fixed, Position: pos})
	}
}

// nEachTypeToConnect distributes nToConnect total connections across the
// three linker types proportional to each type's free-linker count,
// using integer division plus a largest-remainder tiebreak to make up
// the shortfall (scenario S6).
func nEachTypeToConnect(nToConnect, nFreeTotal int, nFree [3]int) [3]int {
	var out [3]int
	var remainder [3]int
	if nFreeTotal == 0 {
		return out
	}
	total := 0
	for _, t := range lattice.AllLinkerTypes {
		out[t] = (nFree[t] * nToConnect) / nFreeTotal
		remainder[t] = (nFree[t] * nToConnect) % nFreeTotal
		total += out[t]
	}
	for total < nToConnect {
		best := 0
		for t := 1; t < 3; t++ {
			if remainder[t] > remainder[best] {
				best = t
			}
		}
		remainder[best] -= nFreeTotal
		out[best]++
		total++
	}
	return out
}

func (ini *Initialiser) initialiseBlockedSites(s *state.SystemState, rng reaction.RNG) {
	s.Fixed.SetTipSize(ini.TipLengthSites)
	if ini.Stochastic && ini.ProbTipUnblocked == 1.0 {
		return
	}
	fixedFirst, fixedLast, _, _ := overlapSiteRange(s)

	denomInOverlap := ini.ProbFullyConnectedTip
	disconnectInOverlap := 0.0
	if denomInOverlap != 0 {
		disconnectInOverlap = 1 - ini.ProbFullyConnectedBlocked/denomInOverlap
	}
	denomOutOfOverlap := (1 - ini.ProbFullyConnectedBlocked) * ini.ProbPartiallyConnectedTip
	disconnectOutOfOverlap := 0.0
	if denomOutOfOverlap != 0 {
		disconnectOutOfOverlap = 1 - (ini.ProbPartiallyConnectedBlocked*(1-ini.ProbFullyConnectedTip))/denomOutOfOverlap
	}

	labelFirstUnblocked := s.Fixed.NSites() - ini.TipLengthSites
	localUnblockedProbability := ini.ProbTipUnblocked
	for fixedLabel := s.Fixed.NSites() - 1; fixedLabel >= 0; fixedLabel-- {
		becomesBlocked := false
		if ini.Stochastic {
			becomesBlocked = rng.Float64() >= localUnblockedProbability
		} else {
			becomesBlocked = fixedLabel < labelFirstUnblocked
		}
		if becomesBlocked {
			site := s.Fixed.Sites[fixedLabel]
			if site.Bound {
				p := disconnectOutOfOverlap
				if fixedLabel >= fixedFirst && fixedLabel <= fixedLast {
					p = disconnectInOverlap
				}
				if rng.Bernoulli(p) {
					disconnectAt(s, site.Linker, site.Terminus)
				}
			}
			if !s.Fixed.Sites[fixedLabel].Blocked {
				s.Block(lattice.SiteLocation{Filament: lattice.Fixed, Position: fixedLabel})
			}
		}
		localUnblockedProbability *= ini.ProbTipUnblocked
	}
}

// disconnectAt removes whichever connection id currently has, partial or
// full, regardless of which terminus term names (a full linker's other
// terminus is left untouched).
func disconnectAt(s *state.SystemState, id lattice.LinkerID, term lattice.Terminus) {
	c := s.ContainerFor(id.Type)
	l := c.At(id)
	if l.IsFull() {
		s.DisconnectFullLinker(id, term)
		return
	}
	s.DisconnectPartialLinker(id)
}

// shuffle is a Fisher-Yates shuffle driven by rng.UniformInt, the
// deterministic-given-seed replacement for std::shuffle +
// generator.getBareGenerator() in original_source/Initialiser.cpp.
func shuffle(positions []int, rng reaction.RNG) {
	for i := len(positions) - 1; i > 0; i-- {
		j := rng.UniformInt(0, i)
		positions[i], positions[j] = positions[j], positions[i]
	}
}
