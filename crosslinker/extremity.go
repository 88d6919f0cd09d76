package crosslinker

import "github.com/cpmech/filasliding/lattice"

// Extremity is one end of a Linker (spec.md §3). Grounded on
// original_source's Extremity.hpp/.cpp.
type Extremity struct {
	connected bool
	location  lattice.SiteLocation
}

func (e *Extremity) IsConnected() bool { return e.connected }

func (e *Extremity) Location() lattice.SiteLocation {
	return e.location
}

func (e *Extremity) connect(loc lattice.SiteLocation) {
	e.connected = true
	e.location = loc
}

func (e *Extremity) disconnect() {
	e.connected = false
}

// changePosition moves an already-connected extremity to a new site on
// the same filament, used by hop reactions (disconnect-then-reconnect is
// equivalent to this teleport, spec.md §4.5).
func (e *Extremity) changePosition(loc lattice.SiteLocation) {
	e.location = loc
}
