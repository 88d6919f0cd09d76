package container

import "github.com/cpmech/filasliding/lattice"

// PossibleFullConnection is a candidate for a partial linker to complete
// into a Full connection (spec.md §3).
type PossibleFullConnection struct {
	Partial   lattice.LinkerID
	Location  lattice.SiteLocation // candidate site on the filament opposite the partial's bound terminus
	Extension float64
}

// PossiblePartialHop is a candidate teleport of a partial linker's one
// connected terminus to an adjacent free site.
type PossiblePartialHop struct {
	Partial           lattice.LinkerID
	Terminus          lattice.Terminus
	Target            lattice.SiteLocation
	Direction         lattice.HopDirection
	AwayFromNeighbour bool
}

// PossibleFullHop is a candidate teleport of one terminus of a full
// linker to an adjacent free site on the same filament.
type PossibleFullHop struct {
	Full              lattice.LinkerID
	Terminus          lattice.Terminus
	Target            lattice.SiteLocation
	Direction         lattice.HopDirection
	OldExtension      float64
	NewExtension      float64
	AwayFromNeighbour bool
}

// FullConnection records the signed extension of a Full linker.
type FullConnection struct {
	Full      lattice.LinkerID
	Extension float64
}

// GlobalFull is a filament-position view of a Full connection of any
// linker type, used for the crossing filter (spec.md §3's crossing rule
// is type-agnostic: any two Full connections, of any types, must not
// cross).
type GlobalFull struct {
	Linker    lattice.LinkerID
	FixedPos  int
	MobilePos int
}
