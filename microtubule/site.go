package microtubule

import "github.com/cpmech/filasliding/lattice"

// Site is one lattice position on a Filament. Blocked and bound are
// orthogonal attributes (spec.md §3): a site can be free-and-unblocked,
// free-and-blocked, bound-and-unblocked, or bound-and-blocked.
type Site struct {
	Blocked  bool
	Bound    bool
	Linker   lattice.LinkerID
	Terminus lattice.Terminus // meaningful only when Bound
}

func newSite() Site {
	return Site{Linker: lattice.NoLinker}
}

func (s Site) IsFree() bool { return !s.Bound }
