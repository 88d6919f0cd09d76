package microtubule

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/filasliding/lattice"
)

func Test_filament_connect_disconnect_roundtrip(tst *testing.T) {
	f := NewFixed(10, 1.0)
	chk.IntAssert(f.NFreeTip(), 10)
	chk.IntAssert(f.NBoundSites(), 0)

	f.Connect(5, lattice.LinkerID{Type: lattice.Passive, Index: 0}, lattice.Tail)
	chk.IntAssert(f.NFreeTip(), 9)
	chk.IntAssert(f.NBoundSites(), 1)
	if !f.Sites[5].Bound {
		tst.Fatal("site 5 should be bound")
	}

	id, term := f.Disconnect(5)
	chk.IntAssert(int(id.Type), int(lattice.Passive))
	chk.IntAssert(int(term), int(lattice.Tail))
	chk.IntAssert(f.NFreeTip(), 10)
	chk.IntAssert(f.NBoundSites(), 0)

	if err := f.CheckInternalConsistency(); err != nil {
		tst.Fatal(err)
	}
}

func Test_filament_block_unblock(tst *testing.T) {
	f := NewFixed(10, 1.0)
	f.Block(3)
	chk.IntAssert(f.NFreeTip(), 9)
	chk.IntAssert(f.NFreeBlocked(), 1)

	// a blocked site can still be bound (blocked/bound are orthogonal)
	f.Connect(3, lattice.LinkerID{Type: lattice.Dual, Index: 0}, lattice.Head)
	chk.IntAssert(f.NFreeBlocked(), 0)
	chk.IntAssert(f.NBoundSites(), 1)

	f.Disconnect(3)
	chk.IntAssert(f.NFreeBlocked(), 1)

	f.Unblock(3)
	chk.IntAssert(f.NFreeTip(), 10)
	chk.IntAssert(f.NFreeBlocked(), 0)

	if err := f.CheckInternalConsistency(); err != nil {
		tst.Fatal(err)
	}
}

func Test_filament_grow(tst *testing.T) {
	f := NewFixed(5, 1.0)
	f.Grow()
	chk.IntAssert(f.NSites(), 6)
	chk.IntAssert(f.NFreeTip(), 6)
	if err := f.CheckInternalConsistency(); err != nil {
		tst.Fatal(err)
	}
}

func Test_filament_close_to_window(tst *testing.T) {
	f := NewFixed(20, 1.0)
	// ρ = 1.4 (scenario S1), coord 10.0
	first := f.FirstPosCloseTo(10.0, 1.4)
	last := f.LastPosCloseTo(10.0, 1.4)
	if first > 9 || last < 10 {
		tst.Fatalf("window [%d,%d] should bracket position 10", first, last)
	}
}
