package state

import "math"

// ExternalForce is a pure function of the mobile filament's displacement,
// the enumerated `{BarrierFree, Sinus, Constant}` family of spec.md §4.4.
//
// The corpus's numerical ecosystem (github.com/cpmech/gosl/fun) exposes a
// Func interface driven the same way (implementations observed only ever
// call `.F(t, x)`), but its full method set is not present anywhere in
// the retrieval pack (gosl itself ships no source here, only call sites).
// Rather than implement types against an interface we cannot verify, this
// package defines the minimal interface actually needed and used
// consistently by state and sim — see DESIGN.md's dropped-dependency
// entry for gosl/fun.
type ExternalForce interface {
	Value(xMobile float64) float64
}

// BarrierFree applies no external force at all.
type BarrierFree struct{}

func (BarrierFree) Value(float64) float64 { return 0 }

// Sinus applies a sinusoidal force in xMobile, amplitude and period given
// in the same length units as the lattice spacing.
type Sinus struct {
	Amplitude float64
	Period    float64
	Phase     float64
}

func (s Sinus) Value(xMobile float64) float64 {
	return s.Amplitude * math.Sin(2*math.Pi*xMobile/s.Period+s.Phase)
}

// Constant applies a fixed force regardless of position.
type Constant struct {
	Force float64
}

func (c Constant) Value(float64) float64 { return c.Force }
