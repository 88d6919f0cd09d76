package crosslinker

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/filasliding/lattice"
)

func Test_linker_free_partial_full_roundtrip(tst *testing.T) {
	l := New(lattice.Passive)
	if !l.IsFree() {
		tst.Fatal("new linker should be free")
	}

	fixedLoc := lattice.SiteLocation{Filament: lattice.Fixed, Position: 5}
	l.ConnectFromFree(lattice.Tail, fixedLoc)
	if !l.IsPartial() {
		tst.Fatal("linker should be partial after one connection")
	}
	chk.IntAssert(int(l.BoundTerminusWhenPartial()), int(lattice.Tail))
	chk.IntAssert(int(l.FreeTerminusWhenPartial()), int(lattice.Head))

	mobileLoc := lattice.SiteLocation{Filament: lattice.Mobile, Position: 5}
	l.FullyConnectFromPartial(mobileLoc)
	if !l.IsFull() {
		tst.Fatal("linker should be full after second connection")
	}
	chk.IntAssert(l.OneBoundLocationWhenFullyConnected(lattice.Tail).Position, 5)
	chk.IntAssert(l.OneBoundLocationWhenFullyConnected(lattice.Head).Position, 5)

	// L1: disconnect restores free state
	l.DisconnectFromFull(lattice.Head)
	if !l.IsPartial() {
		tst.Fatal("linker should be partial after disconnecting one terminus of a full")
	}
	l.DisconnectFromPartial()
	if !l.IsFree() {
		tst.Fatal("linker should be free again (L1 round-trip)")
	}
}

func Test_linker_cannot_connect_same_filament_twice(tst *testing.T) {
	defer func() {
		if recover() == nil {
			tst.Fatal("expected panic when both termini would connect to the same filament")
		}
	}()
	l := New(lattice.Active)
	l.ConnectFromFree(lattice.Head, lattice.SiteLocation{Filament: lattice.Fixed, Position: 1})
	l.FullyConnectFromPartial(lattice.SiteLocation{Filament: lattice.Fixed, Position: 2})
}
