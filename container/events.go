package container

import (
	"math"

	"github.com/cpmech/filasliding/lattice"
	"github.com/cpmech/filasliding/microtubule"
)

// EventContext carries the ambient geometry a container needs to rebuild
// its event tables: both filaments, the binding-reach cutoff, and a
// filament-position view of every Full connection in the system
// (across all three linker types), needed for the crossing filter of
// spec.md §3, which is not restricted to a single linker type.
type EventContext struct {
	Fixed      *microtubule.Filament
	Mobile     *microtubule.Filament
	MaxStretch float64
	AllFull    []GlobalFull
}

func (ctx EventContext) filament(k lattice.FilamentKind) *microtubule.Filament {
	if k == lattice.Fixed {
		return ctx.Fixed
	}
	return ctx.Mobile
}

func (ctx EventContext) extensionOf(fixedPos, mobilePos int) float64 {
	return float64(mobilePos)*ctx.Mobile.LatticeSpacing + ctx.Mobile.X - float64(fixedPos)*ctx.Fixed.LatticeSpacing
}

func (ctx EventContext) crossesAnyFull(fixedPos, mobilePos int, excluding lattice.LinkerID) bool {
	for _, gf := range ctx.AllFull {
		if gf.Linker == excluding {
			continue
		}
		if crosses(fixedPos, mobilePos, gf.FixedPos, gf.MobilePos) {
			return true
		}
	}
	return false
}

// isAvailable reports whether pos on fil may be the target of a full
// connection or a hop: free and not blocked. Blocked and bound are
// orthogonal attributes; a free blocked site can still receive a linker
// through BindFree, but never through a full connection or a hop.
func isAvailable(fil *microtubule.Filament, pos int) bool {
	s := fil.Sites[pos]
	return !s.Bound && !s.Blocked
}

// Refresh rebuilds all four event tables of c from scratch, scanning
// only c's own partial and full linkers (never the full lattice of
// either filament). Call after any mutation that could affect this
// container's tables: a partition change in any of the three
// containers, a Grow, a Block/Unblock, or a mobile displacement change.
func (c *LinkerContainer) Refresh(ctx EventContext) {
	c.rebuildFullConnections(ctx)
	c.rebuildPossibleFullConnections(ctx)
	c.rebuildPartialHops(ctx)
	c.rebuildFullHops(ctx)
}

func (c *LinkerContainer) rebuildFullConnections(ctx EventContext) {
	c.fullConnections = c.fullConnections[:0]
	for _, idx := range c.full {
		id := lattice.LinkerID{Type: c.linkerType, Index: idx}
		l := c.arena[idx]
		fixedLoc := l.LocationOfFullOn(lattice.Fixed)
		mobileLoc := l.LocationOfFullOn(lattice.Mobile)
		ext := ctx.extensionOf(fixedLoc.Position, mobileLoc.Position)
		c.fullConnections = append(c.fullConnections, FullConnection{Full: id, Extension: ext})
	}
}

func (c *LinkerContainer) rebuildPossibleFullConnections(ctx EventContext) {
	c.possibleFullConnections = c.possibleFullConnections[:0]
	for _, idx := range c.partial {
		id := lattice.LinkerID{Type: c.linkerType, Index: idx}
		l := c.arena[idx]
		boundLoc := l.BoundLocationWhenPartial()
		oppKind := otherFilament(boundLoc.Filament)
		oppFil := ctx.filament(oppKind)

		var center float64
		if boundLoc.Filament == lattice.Fixed {
			center = float64(boundLoc.Position)*ctx.Fixed.LatticeSpacing - ctx.Mobile.X
		} else {
			center = float64(boundLoc.Position)*ctx.Mobile.LatticeSpacing + ctx.Mobile.X
		}
		first := oppFil.FirstPosCloseTo(center, ctx.MaxStretch)
		last := oppFil.LastPosCloseTo(center, ctx.MaxStretch)

		for p := first; p <= last; p++ {
			if !isAvailable(oppFil, p) {
				continue
			}
			var fixedPos, mobilePos int
			if boundLoc.Filament == lattice.Fixed {
				fixedPos, mobilePos = boundLoc.Position, p
			} else {
				fixedPos, mobilePos = p, boundLoc.Position
			}
			ext := ctx.extensionOf(fixedPos, mobilePos)
			if math.Abs(ext) >= ctx.MaxStretch {
				continue
			}
			if ctx.crossesAnyFull(fixedPos, mobilePos, lattice.NoLinker) {
				continue
			}
			c.possibleFullConnections = append(c.possibleFullConnections, PossibleFullConnection{
				Partial:   id,
				Location:  lattice.SiteLocation{Filament: oppKind, Position: p},
				Extension: ext,
			})
		}
	}
}

// awayFromNeighbour reports whether target's neighbour one step further
// in direction dir is unoccupied by a linker of this container's type.
// Cooperative binding couples hop rates of a type to its own occupancy,
// not to other types' (see the decision recorded in SPEC_FULL.md §9).
func (c *LinkerContainer) awayFromNeighbour(fil *microtubule.Filament, k lattice.FilamentKind, target int, dir lattice.HopDirection) bool {
	adj := target + hopStep(k, dir)
	if adj < 0 || adj >= fil.NSites() {
		return true
	}
	s := fil.Sites[adj]
	if !s.Bound {
		return true
	}
	return s.Linker.Type != c.linkerType
}

func (c *LinkerContainer) rebuildPartialHops(ctx EventContext) {
	c.possiblePartialHops = c.possiblePartialHops[:0]
	for _, idx := range c.partial {
		id := lattice.LinkerID{Type: c.linkerType, Index: idx}
		l := c.arena[idx]
		term := l.BoundTerminusWhenPartial()
		loc := l.BoundLocationWhenPartial()
		fil := ctx.filament(loc.Filament)
		for _, dir := range [2]lattice.HopDirection{lattice.Forward, lattice.Backward} {
			target := loc.Position + hopStep(loc.Filament, dir)
			if target < 0 || target >= fil.NSites() || !isAvailable(fil, target) {
				continue
			}
			c.possiblePartialHops = append(c.possiblePartialHops, PossiblePartialHop{
				Partial:           id,
				Terminus:          term,
				Target:            lattice.SiteLocation{Filament: loc.Filament, Position: target},
				Direction:         dir,
				AwayFromNeighbour: c.awayFromNeighbour(fil, loc.Filament, target, dir),
			})
		}
	}
}

func (c *LinkerContainer) rebuildFullHops(ctx EventContext) {
	c.possibleFullHops = c.possibleFullHops[:0]
	for _, idx := range c.full {
		id := lattice.LinkerID{Type: c.linkerType, Index: idx}
		l := c.arena[idx]
		fixedLoc := l.LocationOfFullOn(lattice.Fixed)
		mobileLoc := l.LocationOfFullOn(lattice.Mobile)
		oldExt := ctx.extensionOf(fixedLoc.Position, mobileLoc.Position)

		for _, term := range [2]lattice.Terminus{lattice.Head, lattice.Tail} {
			loc := l.OneBoundLocationWhenFullyConnected(term)
			fil := ctx.filament(loc.Filament)
			for _, dir := range [2]lattice.HopDirection{lattice.Forward, lattice.Backward} {
				target := loc.Position + hopStep(loc.Filament, dir)
				if target < 0 || target >= fil.NSites() || !isAvailable(fil, target) {
					continue
				}
				var newFixed, newMobile int
				if loc.Filament == lattice.Fixed {
					newFixed, newMobile = target, mobileLoc.Position
				} else {
					newFixed, newMobile = fixedLoc.Position, target
				}
				newExt := ctx.extensionOf(newFixed, newMobile)
				if math.Abs(newExt) >= ctx.MaxStretch {
					continue
				}
				if ctx.crossesAnyFull(newFixed, newMobile, id) {
					continue
				}
				c.possibleFullHops = append(c.possibleFullHops, PossibleFullHop{
					Full:              id,
					Terminus:          term,
					Target:            lattice.SiteLocation{Filament: loc.Filament, Position: target},
					Direction:         dir,
					OldExtension:      oldExt,
					NewExtension:      newExt,
					AwayFromNeighbour: c.awayFromNeighbour(fil, loc.Filament, target, dir),
				})
			}
		}
	}
}
