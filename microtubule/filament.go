// Package microtubule implements the ordered lattice of sites making up a
// single filament (spec.md §3 "Filament"), in both its Fixed and Mobile
// flavours. Grounded on original_source's Microtubule/MobileMicrotubule
// (tip/blocked site partitioning, the three position deques) generalised
// to the Go idiom used throughout gofem: one exported struct per concept,
// constructors named New*, fatal errors via chk.Panic.
package microtubule

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/filasliding/lattice"
)

// SiteKind names the free-site deque a free_site_position query targets.
type SiteKind int

const (
	Tip SiteKind = iota
	Blocked
)

// Filament is the ordered lattice of sites of spec.md §3. Kind, NSites and
// LatticeSpacing never change after construction; Grow (Fixed only)
// appends one site and is the sole exception.
type Filament struct {
	Kind           lattice.FilamentKind
	LatticeSpacing float64
	Sites          []Site
	X              float64 // displacement; meaningful only for Mobile
	TipLengthSites int     // unblocked tip-region length at the plus end, in sites; meaningful only for Fixed

	freeTip     []int // free & unblocked positions
	freeBlocked []int // free & blocked positions
	bound       []int // bound positions, blocked or not
}

// NewFixed allocates a Fixed filament of nSites sites, all free and
// unblocked.
func NewFixed(nSites int, latticeSpacing float64) *Filament {
	return newFilament(lattice.Fixed, nSites, latticeSpacing)
}

// NewMobile allocates a Mobile filament of nSites sites at the given
// initial displacement.
func NewMobile(nSites int, latticeSpacing, initialPosition float64) *Filament {
	f := newFilament(lattice.Mobile, nSites, latticeSpacing)
	f.X = initialPosition
	return f
}

func newFilament(kind lattice.FilamentKind, nSites int, latticeSpacing float64) *Filament {
	if nSites <= 0 {
		chk.Panic("microtubule: nSites must be positive, got %d", nSites)
	}
	f := &Filament{
		Kind:           kind,
		LatticeSpacing: latticeSpacing,
		Sites:          make([]Site, nSites),
		freeTip:        make([]int, nSites),
	}
	for i := range f.Sites {
		f.Sites[i] = newSite()
		f.freeTip[i] = i
	}
	return f
}

// NSites returns the current number of sites.
func (f *Filament) NSites() int { return len(f.Sites) }

// Length returns the physical span from site 0 to the last site.
func (f *Filament) Length() float64 { return f.LatticeSpacing * float64(len(f.Sites)-1) }

// SetTipSize records the unblocked tip-region length at the plus end, in
// sites. Used by the Fixed filament only.
func (f *Filament) SetTipSize(nSites int) { f.TipLengthSites = nSites }

// TipSize returns the unblocked tip-region length in coordinate units.
func (f *Filament) TipSize() float64 { return f.LatticeSpacing * float64(f.TipLengthSites) }

// PositionOfTip returns the coordinate of the boundary between the
// unblocked tip region and the rest of the filament.
func (f *Filament) PositionOfTip() float64 { return f.Length() - f.TipSize() }

// NFreeSites, NFreeTip, NFreeBlocked and NBoundSites report deque sizes.
func (f *Filament) NFreeSites() int    { return len(f.freeTip) + len(f.freeBlocked) }
func (f *Filament) NFreeTip() int      { return len(f.freeTip) }
func (f *Filament) NFreeBlocked() int  { return len(f.freeBlocked) }
func (f *Filament) NBoundSites() int   { return len(f.bound) }

// Connect binds sitePosition to linker at terminus. Precondition: the site
// must be free.
func (f *Filament) Connect(sitePosition int, linker lattice.LinkerID, terminus lattice.Terminus) {
	s := f.siteAt(sitePosition)
	if s.Bound {
		chk.Panic("microtubule: Connect called on already-bound site %d", sitePosition)
	}
	if s.Blocked {
		f.freeBlocked = removeInt(f.freeBlocked, sitePosition)
	} else {
		f.freeTip = removeInt(f.freeTip, sitePosition)
	}
	f.bound = append(f.bound, sitePosition)
	s.Bound = true
	s.Linker = linker
	s.Terminus = terminus
	f.Sites[sitePosition] = *s
}

// Disconnect frees sitePosition, returning the linker and terminus that
// had been bound there. Precondition: the site must be bound.
func (f *Filament) Disconnect(sitePosition int) (lattice.LinkerID, lattice.Terminus) {
	s := f.siteAt(sitePosition)
	if !s.Bound {
		chk.Panic("microtubule: Disconnect called on free site %d", sitePosition)
	}
	id, term := s.Linker, s.Terminus
	f.bound = removeInt(f.bound, sitePosition)
	if s.Blocked {
		f.freeBlocked = append(f.freeBlocked, sitePosition)
	} else {
		f.freeTip = append(f.freeTip, sitePosition)
	}
	s.Bound = false
	s.Linker = lattice.NoLinker
	f.Sites[sitePosition] = *s
	return id, term
}

// Block marks sitePosition as blocked, moving it between the appropriate
// deques. Does not change whether the site is bound.
func (f *Filament) Block(sitePosition int) {
	s := f.siteAt(sitePosition)
	if s.Blocked {
		chk.Panic("microtubule: Block called on already-blocked site %d", sitePosition)
	}
	if !s.Bound {
		f.freeTip = removeInt(f.freeTip, sitePosition)
		f.freeBlocked = append(f.freeBlocked, sitePosition)
	}
	s.Blocked = true
	f.Sites[sitePosition] = *s
}

// Unblock marks sitePosition as unblocked (tip), moving it between the
// appropriate deques.
func (f *Filament) Unblock(sitePosition int) {
	s := f.siteAt(sitePosition)
	if !s.Blocked {
		chk.Panic("microtubule: Unblock called on already-unblocked site %d", sitePosition)
	}
	if !s.Bound {
		f.freeBlocked = removeInt(f.freeBlocked, sitePosition)
		f.freeTip = append(f.freeTip, sitePosition)
	}
	s.Blocked = false
	f.Sites[sitePosition] = *s
}

// Grow appends one free, unblocked site at the plus end. Only valid on a
// Fixed filament.
func (f *Filament) Grow() {
	if f.Kind != lattice.Fixed {
		chk.Panic("microtubule: Grow is only valid on the Fixed filament")
	}
	pos := len(f.Sites)
	f.Sites = append(f.Sites, newSite())
	f.freeTip = append(f.freeTip, pos)
}

// FreeSitePosition returns the k-th entry of the free-tip or free-blocked
// deque, as requested by kind.
func (f *Filament) FreeSitePosition(kind SiteKind, k int) int {
	switch kind {
	case Tip:
		return f.freeTip[k]
	case Blocked:
		return f.freeBlocked[k]
	default:
		chk.Panic("microtubule: invalid SiteKind %v", kind)
		return -1
	}
}

// FreeSitePositionCombined addresses the free-tip and free-blocked deques
// as one flat sequence (tip entries first), the addressing BindFree uses
// to pick uniformly among every free site regardless of blocked status.
func (f *Filament) FreeSitePositionCombined(k int) int {
	if k < len(f.freeTip) {
		return f.freeTip[k]
	}
	return f.freeBlocked[k-len(f.freeTip)]
}

// FirstPosCloseTo and LastPosCloseTo return the clamped [0,nSites-1]
// window of site indices whose coordinate (position*latticeSpacing) could
// lie within maxStretch of coord, the opposite anchor's coordinate
// expressed in this filament's own frame (i.e. already shifted by X for a
// Mobile filament). These localize the event-table rescans of spec.md
// §4.3 to O(window) instead of O(nSites).
func (f *Filament) FirstPosCloseTo(coord, maxStretch float64) int {
	p := intCeil((coord - maxStretch) / f.LatticeSpacing)
	return utl.Imax(0, utl.Imin(p, len(f.Sites)-1))
}

func (f *Filament) LastPosCloseTo(coord, maxStretch float64) int {
	p := intFloor((coord + maxStretch) / f.LatticeSpacing)
	return utl.Imax(0, utl.Imin(p, len(f.Sites)-1))
}

// CheckInternalConsistency verifies P1 (spec.md §8): the three deques
// partition 0..nSites-1 consistently with each site's own state.
func (f *Filament) CheckInternalConsistency() error {
	seen := make([]int, len(f.Sites))
	mark := func(list []int, tag int) error {
		for _, p := range list {
			if p < 0 || p >= len(f.Sites) {
				return chk.Err("microtubule: deque holds out-of-range position %d", p)
			}
			seen[p]++
			_ = tag
		}
		return nil
	}
	if err := mark(f.freeTip, 0); err != nil {
		return err
	}
	if err := mark(f.freeBlocked, 0); err != nil {
		return err
	}
	if err := mark(f.bound, 0); err != nil {
		return err
	}
	for i, s := range f.Sites {
		if seen[i] != 1 {
			return chk.Err("microtubule: site %d appears in %d deques, want exactly 1", i, seen[i])
		}
		inBound := s.Bound
		foundInBound := contains(f.bound, i)
		if inBound != foundInBound {
			return chk.Err("microtubule: site %d bound=%v inconsistent with deque membership", i, inBound)
		}
		if !s.Bound && s.Blocked != contains(f.freeBlocked, i) {
			return chk.Err("microtubule: site %d blocked=%v inconsistent with deque membership", i, s.Blocked)
		}
	}
	return nil
}

func (f *Filament) siteAt(pos int) *Site {
	if pos < 0 || pos >= len(f.Sites) {
		chk.Panic("microtubule: site position %d out of range [0,%d)", pos, len(f.Sites))
	}
	return &f.Sites[pos]
}

func removeInt(list []int, v int) []int {
	for i, x := range list {
		if x == v {
			list[i] = list[len(list)-1]
			return list[:len(list)-1]
		}
	}
	chk.Panic("microtubule: value %d not found in deque during removal", v)
	return list
}

func contains(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func intCeil(x float64) int  { return int(math.Ceil(x)) }
func intFloor(x float64) int { return int(math.Floor(x)) }
