// Package sim drives a SystemState through time: the Gillespie-style
// reaction selection and the Langevin displacement of the Mobile
// filament, grounded on original_source/src/Propagator.cpp.
package sim

import "math/rand"

// RNG wraps a math/rand.Rand, seeded deterministically the way
// katalvlaran-lvlath/tsp/rng.go seeds its heuristic solvers
// (rand.New(rand.NewSource(seed))). It satisfies reaction.RNG and adds
// the Gaussian draw the deterministic+diffusive Langevin step needs;
// original_source/RandomGenerator.cpp's getUniform/getGaussian/
// getProbability is the semantic grounding (not gosl/rnd — see
// DESIGN.md's dropped-dependency entry).
type RNG struct {
	r *rand.Rand
}

// NewRNG seeds a new RNG. A zero seed is accepted verbatim: callers
// wanting the package's reproducible default should pass a fixed
// nonzero seed explicitly, matching this repo's "no hidden time-based
// sources" policy.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// Float64 draws uniformly from [0,1), RandomGenerator::getUniform(0,1).
func (g *RNG) Float64() float64 { return g.r.Float64() }

// UniformInt draws uniformly from the inclusive range [lo,hi].
func (g *RNG) UniformInt(lo, hi int) int {
	if hi < lo {
		panic("sim: UniformInt called with hi < lo")
	}
	return lo + g.r.Intn(hi-lo+1)
}

// Bernoulli returns true with probability p, RandomGenerator's coin-flip
// idiom used throughout the initial-condition sampler and the
// head/tail-choosing reactions.
func (g *RNG) Bernoulli(p float64) bool { return g.r.Float64() < p }

// Gaussian draws from a Normal(mean, std) distribution,
// RandomGenerator::getGaussian, the diffusive kick applied to the Mobile
// filament's displacement each time step.
func (g *RNG) Gaussian(mean, std float64) float64 { return mean + std*g.r.NormFloat64() }

// Probability draws uniformly from the open interval (0,1), excluding 0
// so -ln(probability) never diverges — RandomGenerator::getProbability.
func (g *RNG) Probability() float64 {
	p := g.r.Float64()
	for p == 0 {
		p = g.r.Float64()
	}
	return p
}
