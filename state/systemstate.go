// Package state implements SystemState, the sole mutator of spec.md §4.4:
// every filament/linker mutation in the simulator goes through one of its
// methods, which enforce the three-step order (linker state, filament
// site, container event-table refresh) and the cross-type broadcast the
// crossing filter depends on. Grounded on
// original_source/include/filament-sliding/SystemState.hpp — the newer,
// complete interface (ExternalForceType, barrierCrossed,
// movementBordersSetByFullLinkers, updateForceAndEnergy,
// findExternalForce) — and on gofem/fem/domain.go's façade idiom: one
// struct owning sub-structures, exported methods as the only mutation
// surface.
package state

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/filasliding/container"
	"github.com/cpmech/filasliding/lattice"
	"github.com/cpmech/filasliding/microtubule"
)

// SystemState owns the two filaments and the three per-type containers.
type SystemState struct {
	Fixed      *microtubule.Filament
	Mobile     *microtubule.Filament
	containers [3]*container.LinkerContainer
	MaxStretch float64
	SpringK    float64
	Force      ExternalForce

	Attractor      int
	TotalExtension float64
	NetForce       float64

	NDeterministicClamps int
	NReflections         int
}

// New builds a SystemState from the two filaments and one container per
// linker type (indexed in lattice.AllLinkerTypes order), then runs an
// initial Refresh so every event table starts consistent with whatever
// connections the caller has already wired into the containers.
func New(fixed, mobile *microtubule.Filament, containers [3]*container.LinkerContainer, maxStretch, springK float64, force ExternalForce) *SystemState {
	s := &SystemState{
		Fixed:      fixed,
		Mobile:     mobile,
		containers: containers,
		MaxStretch: maxStretch,
		SpringK:    springK,
		Force:      force,
	}
	s.refreshAll()
	s.UpdateForceAndEnergy()
	return s
}

func (s *SystemState) ContainerFor(t lattice.LinkerType) *container.LinkerContainer {
	return s.containers[t]
}

func (s *SystemState) filamentFor(k lattice.FilamentKind) *microtubule.Filament {
	if k == lattice.Fixed {
		return s.Fixed
	}
	return s.Mobile
}

func (s *SystemState) allFull() []container.GlobalFull {
	var out []container.GlobalFull
	for _, t := range lattice.AllLinkerTypes {
		c := s.ContainerFor(t)
		for _, fc := range c.FullConnections() {
			l := c.At(fc.Full)
			fixedLoc := l.LocationOfFullOn(lattice.Fixed)
			mobileLoc := l.LocationOfFullOn(lattice.Mobile)
			out = append(out, container.GlobalFull{Linker: fc.Full, FixedPos: fixedLoc.Position, MobilePos: mobileLoc.Position})
		}
	}
	return out
}

func (s *SystemState) eventContext() container.EventContext {
	return container.EventContext{
		Fixed:      s.Fixed,
		Mobile:     s.Mobile,
		MaxStretch: s.MaxStretch,
		AllFull:    s.allFull(),
	}
}

func (s *SystemState) refreshAll() {
	ctx := s.eventContext()
	for _, t := range lattice.AllLinkerTypes {
		s.ContainerFor(t).Refresh(ctx)
	}
}

// ConnectFreeLinker performs BindFree's state transition: an arbitrary
// Free linker of t connects its free terminus at loc.
func (s *SystemState) ConnectFreeLinker(t lattice.LinkerType, term lattice.Terminus, loc lattice.SiteLocation) lattice.LinkerID {
	c := s.ContainerFor(t)
	id := c.AnyFreeLinker()
	c.At(id).ConnectFromFree(term, loc)
	s.filamentFor(loc.Filament).Connect(loc.Position, id, term)
	c.MarkFreeToPartial(id)
	s.refreshAll()
	return id
}

// FullyConnectPartialLinker performs BindPartial's state transition.
func (s *SystemState) FullyConnectPartialLinker(id lattice.LinkerID, newLoc lattice.SiteLocation) {
	c := s.ContainerFor(id.Type)
	l := c.At(id)
	freeTerm := l.FreeTerminusWhenPartial()
	l.FullyConnectFromPartial(newLoc)
	s.filamentFor(newLoc.Filament).Connect(newLoc.Position, id, freeTerm)
	c.MarkPartialToFull(id)
	s.refreshAll()
}

// DisconnectPartialLinker performs UnbindPartial's state transition.
func (s *SystemState) DisconnectPartialLinker(id lattice.LinkerID) {
	c := s.ContainerFor(id.Type)
	l := c.At(id)
	loc := l.BoundLocationWhenPartial()
	l.DisconnectFromPartial()
	s.filamentFor(loc.Filament).Disconnect(loc.Position)
	c.MarkPartialToFree(id)
	s.refreshAll()
}

// DisconnectFullLinker performs UnbindFull's state transition.
func (s *SystemState) DisconnectFullLinker(id lattice.LinkerID, term lattice.Terminus) {
	c := s.ContainerFor(id.Type)
	l := c.At(id)
	loc := l.SiteLocationOf(term)
	l.DisconnectFromFull(term)
	s.filamentFor(loc.Filament).Disconnect(loc.Position)
	c.MarkFullToPartial(id)
	s.refreshAll()
}

// HopPartialLinker performs HopPartial's state transition: a
// disconnect-then-reconnect of the linker's one bound terminus.
func (s *SystemState) HopPartialLinker(id lattice.LinkerID, term lattice.Terminus, target lattice.SiteLocation) {
	c := s.ContainerFor(id.Type)
	l := c.At(id)
	oldLoc := l.SiteLocationOf(term)
	s.filamentFor(oldLoc.Filament).Disconnect(oldLoc.Position)
	l.ChangePosition(term, target)
	s.filamentFor(target.Filament).Connect(target.Position, id, term)
	s.refreshAll()
}

// HopFullLinker performs HopFull's state transition.
func (s *SystemState) HopFullLinker(id lattice.LinkerID, term lattice.Terminus, target lattice.SiteLocation) {
	s.HopPartialLinker(id, term, target)
}

// Block and Unblock mutate a single site's blocked flag.
func (s *SystemState) Block(loc lattice.SiteLocation) {
	s.filamentFor(loc.Filament).Block(loc.Position)
	s.refreshAll()
}

func (s *SystemState) Unblock(loc lattice.SiteLocation) {
	s.filamentFor(loc.Filament).Unblock(loc.Position)
	s.refreshAll()
}

// Grow appends one site to the Fixed filament.
func (s *SystemState) Grow() {
	s.Fixed.Grow()
	s.refreshAll()
}

// MovementBorders returns the tightest Δx window that keeps every Full
// connection, of any type, strictly within MaxStretch.
func (s *SystemState) MovementBorders() (lower, upper float64) {
	lower, upper = math.Inf(-1), math.Inf(1)
	for _, t := range lattice.AllLinkerTypes {
		l, u := s.ContainerFor(t).MovementBorders(s.MaxStretch)
		if l > lower {
			lower = l
		}
		if u < upper {
			upper = u
		}
	}
	return
}

// UpdateMobilePosition applies a displacement already known to lie within
// MovementBorders and refreshes every container's event tables.
func (s *SystemState) UpdateMobilePosition(delta float64) {
	s.Mobile.X += delta
	s.refreshAll()
}

// BarrierCrossed implements spec.md B3: strict inequality, so a position
// sitting exactly one lattice spacing from the attractor does not cross.
func (s *SystemState) BarrierCrossed(latticeSpacing float64) int {
	d := s.Mobile.X - float64(s.Attractor)*latticeSpacing
	switch {
	case d > latticeSpacing:
		s.Attractor++
		return 1
	case d < -latticeSpacing:
		s.Attractor--
		return -1
	default:
		return 0
	}
}

// UpdateForceAndEnergy sums signed extensions across all three Full
// connection tables and recomputes the net spring + external force.
func (s *SystemState) UpdateForceAndEnergy() {
	total := 0.0
	for _, t := range lattice.AllLinkerTypes {
		for _, fc := range s.ContainerFor(t).FullConnections() {
			total += fc.Extension
		}
	}
	s.TotalExtension = total
	fext := 0.0
	if s.Force != nil {
		fext = s.Force.Value(s.Mobile.X)
	}
	s.NetForce = -s.SpringK*total + fext
}

// ExternalForceValue evaluates Force at the Mobile filament's current
// position, the bare external-force term moveMicrotubule's deterministic
// step needs on its own (i.e. before folding it into NetForce alongside
// the spring contribution).
func (s *SystemState) ExternalForceValue() float64 {
	if s.Force == nil {
		return 0
	}
	return s.Force.Value(s.Mobile.X)
}

// NFullCrosslinkers sums the Full-connection count across all three
// linker types.
func (s *SystemState) NFullCrosslinkers() int {
	n := 0
	for _, t := range lattice.AllLinkerTypes {
		n += s.ContainerFor(t).NFull()
	}
	return n
}

// NFullRightPullingCrosslinkers sums each container's NFullRightPulling,
// the input the Propagator's basin-of-attraction check and the output
// sink both consume.
func (s *SystemState) NFullRightPullingCrosslinkers() int {
	n := 0
	for _, t := range lattice.AllLinkerTypes {
		n += s.ContainerFor(t).NFullRightPulling()
	}
	return n
}

// PositionOfTip returns the coordinate of the boundary between the
// Fixed filament's unblocked tip region and the rest of the lattice.
func (s *SystemState) PositionOfTip() float64 {
	return s.Fixed.PositionOfTip()
}

// ActinFrontPositionRelativeToTip returns the Mobile filament's leading
// edge position measured relative to the Fixed filament's tip boundary:
// positive when the Mobile filament's front has advanced past the tip.
func (s *SystemState) ActinFrontPositionRelativeToTip() float64 {
	return s.Mobile.X + s.Mobile.Length() - s.Fixed.Length() + s.Fixed.TipSize()
}

// OverlapRange returns the interval of Fixed-frame coordinates where the
// two filaments overlap.
func (s *SystemState) OverlapRange() (lo, hi float64) {
	lo = math.Max(0, s.Mobile.X)
	hi = math.Min(s.Fixed.Length(), s.Mobile.Length()+s.Mobile.X)
	return
}

// OverlapSiteRange returns the Fixed-filament site-index window nearest
// the overlap interval, widened by MaxStretch the same way the
// event-table windows are.
func (s *SystemState) OverlapSiteRange() (first, last int) {
	lo, hi := s.OverlapRange()
	first = s.Fixed.FirstPosCloseTo(lo, s.MaxStretch)
	last = s.Fixed.LastPosCloseTo(hi, s.MaxStretch)
	return
}

// CheckInternalConsistency checks P1 on both filaments, the
// free/partial/full partition of every container, P3 and P4. It does not
// check the site back-references of P2 or recompute the event tables
// for P5.
func (s *SystemState) CheckInternalConsistency() error {
	if err := s.Fixed.CheckInternalConsistency(); err != nil {
		return err
	}
	if err := s.Mobile.CheckInternalConsistency(); err != nil {
		return err
	}
	for _, t := range lattice.AllLinkerTypes {
		if err := s.ContainerFor(t).CheckInternalConsistency(); err != nil {
			return err
		}
	}
	for _, t := range lattice.AllLinkerTypes {
		c := s.ContainerFor(t)
		for _, fc := range c.FullConnections() {
			if math.Abs(fc.Extension) >= s.MaxStretch {
				return chk.Err("state: full linker %v has |ext|=%g >= max_stretch=%g", fc.Full, math.Abs(fc.Extension), s.MaxStretch)
			}
		}
	}
	full := s.allFull()
	for i := range full {
		for j := i + 1; j < len(full); j++ {
			df, dm := full[i].FixedPos-full[j].FixedPos, full[i].MobilePos-full[j].MobilePos
			if (df > 0) != (dm > 0) || (df < 0) != (dm < 0) {
				return chk.Err("state: full linkers %v and %v cross", full[i].Linker, full[j].Linker)
			}
		}
	}
	return nil
}
