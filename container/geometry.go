package container

import "github.com/cpmech/filasliding/lattice"

func otherFilament(k lattice.FilamentKind) lattice.FilamentKind {
	if k == lattice.Fixed {
		return lattice.Mobile
	}
	return lattice.Fixed
}

// hopStep gives the site-index delta of one hop in direction dir on
// filament kind k. The filaments are antiparallel: the Fixed filament's
// plus end is its high-index end, the Mobile filament's plus end is its
// low-index end.
func hopStep(k lattice.FilamentKind, dir lattice.HopDirection) int {
	switch {
	case k == lattice.Fixed && dir == lattice.Forward:
		return 1
	case k == lattice.Fixed && dir == lattice.Backward:
		return -1
	case k == lattice.Mobile && dir == lattice.Forward:
		return -1
	default:
		return 1
	}
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// crosses reports whether two Full connections, named by their fixed and
// mobile site positions, cross (spec.md §3): the order of their fixed
// anchors and the order of their mobile anchors disagree.
func crosses(fixedA, mobileA, fixedB, mobileB int) bool {
	return sign(fixedA-fixedB) != sign(mobileA-mobileB)
}
