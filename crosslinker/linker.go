// Package crosslinker implements the elastic cross-linker object of
// spec.md §3: a Linker with two Extremities ("head", "tail"), each free or
// bound. Grounded on original_source's Crosslinker.hpp/.cpp: pure state
// transition methods that only touch the linker's own two extremities and
// enforce the derived-state invariants (Free/Partial/Full). All methods
// panic on precondition violation (spec.md §4.2).
package crosslinker

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/filasliding/lattice"
)

// Linker is a cross-linker of a fixed Type with two Extremities.
type Linker struct {
	linkerType lattice.LinkerType
	head       Extremity
	tail       Extremity
}

// New returns a new, fully free Linker of the given type.
func New(t lattice.LinkerType) *Linker {
	return &Linker{linkerType: t}
}

func (l *Linker) Type() lattice.LinkerType { return l.linkerType }

func (l *Linker) IsFree() bool { return !l.head.IsConnected() && !l.tail.IsConnected() }

func (l *Linker) IsPartial() bool {
	return l.head.IsConnected() != l.tail.IsConnected()
}

func (l *Linker) IsFull() bool {
	return l.head.IsConnected() && l.tail.IsConnected()
}

func (l *Linker) extremity(term lattice.Terminus) *Extremity {
	if term == lattice.Head {
		return &l.head
	}
	return &l.tail
}

// SiteLocationOf returns the location a connected terminus is bound to.
func (l *Linker) SiteLocationOf(term lattice.Terminus) lattice.SiteLocation {
	e := l.extremity(term)
	if !e.IsConnected() {
		chk.Panic("crosslinker: SiteLocationOf(%v) called on a disconnected terminus", term)
	}
	return e.Location()
}

// ConnectFromFree binds term at connectAt. Precondition: the
// linker must currently be Free.
func (l *Linker) ConnectFromFree(term lattice.Terminus, connectAt lattice.SiteLocation) {
	if !l.IsFree() {
		chk.Panic("crosslinker: ConnectFromFree called on a non-free linker")
	}
	l.extremity(term).connect(connectAt)
}

// DisconnectFromPartial frees the one connected terminus. Precondition:
// the linker must be Partial.
func (l *Linker) DisconnectFromPartial() {
	if !l.IsPartial() {
		chk.Panic("crosslinker: DisconnectFromPartial called on a non-partial linker")
	}
	l.extremity(l.BoundTerminusWhenPartial()).disconnect()
}

// FullyConnectFromPartial binds the free terminus at connectAt, making the
// linker Full. Precondition: Partial, and connectAt must be on the
// filament opposite the already-bound terminus (no linker may connect
// twice to the same filament).
func (l *Linker) FullyConnectFromPartial(connectAt lattice.SiteLocation) {
	if !l.IsPartial() {
		chk.Panic("crosslinker: FullyConnectFromPartial called on a non-partial linker")
	}
	bound := l.BoundLocationWhenPartial()
	if bound.Filament == connectAt.Filament {
		chk.Panic("crosslinker: FullyConnectFromPartial would connect both termini to filament %v", connectAt.Filament)
	}
	l.extremity(l.FreeTerminusWhenPartial()).connect(connectAt)
}

// DisconnectFromFull frees term, making the linker
// Partial. Precondition: Full.
func (l *Linker) DisconnectFromFull(term lattice.Terminus) {
	if !l.IsFull() {
		chk.Panic("crosslinker: DisconnectFromFull called on a non-full linker")
	}
	l.extremity(term).disconnect()
}

// ChangePosition repositions an already-connected terminus on the same
// filament, used to implement hops (disconnect-then-reconnect, spec.md
// §4.5).
func (l *Linker) ChangePosition(term lattice.Terminus, newLoc lattice.SiteLocation) {
	e := l.extremity(term)
	if !e.IsConnected() {
		chk.Panic("crosslinker: ChangePosition called on a disconnected terminus")
	}
	if e.Location().Filament != newLoc.Filament {
		chk.Panic("crosslinker: ChangePosition may not move a terminus to a different filament")
	}
	e.changePosition(newLoc)
}

// FreeTerminusWhenPartial and BoundTerminusWhenPartial identify which
// terminus is which. Precondition: Partial.
func (l *Linker) FreeTerminusWhenPartial() lattice.Terminus {
	return l.BoundTerminusWhenPartial().Other()
}

func (l *Linker) BoundTerminusWhenPartial() lattice.Terminus {
	if !l.IsPartial() {
		chk.Panic("crosslinker: BoundTerminusWhenPartial called on a non-partial linker")
	}
	if l.head.IsConnected() {
		return lattice.Head
	}
	return lattice.Tail
}

// BoundLocationWhenPartial returns the location of the one connected
// terminus. Precondition: Partial.
func (l *Linker) BoundLocationWhenPartial() lattice.SiteLocation {
	return l.SiteLocationOf(l.BoundTerminusWhenPartial())
}

// TerminusOfFullOn returns which terminus is connected to the named
// filament. Precondition: Full.
func (l *Linker) TerminusOfFullOn(f lattice.FilamentKind) lattice.Terminus {
	if !l.IsFull() {
		chk.Panic("crosslinker: TerminusOfFullOn called on a non-full linker")
	}
	if l.head.Location().Filament == f {
		return lattice.Head
	}
	return lattice.Tail
}

// LocationOfFullOn returns the site location on the named filament.
// Precondition: Full.
func (l *Linker) LocationOfFullOn(f lattice.FilamentKind) lattice.SiteLocation {
	return l.SiteLocationOf(l.TerminusOfFullOn(f))
}

// OneBoundLocationWhenFullyConnected returns the location of the given
// terminus. Precondition: Full.
func (l *Linker) OneBoundLocationWhenFullyConnected(term lattice.Terminus) lattice.SiteLocation {
	if !l.IsFull() {
		chk.Panic("crosslinker: OneBoundLocationWhenFullyConnected called on a non-full linker")
	}
	return l.SiteLocationOf(term)
}
