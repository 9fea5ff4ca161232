package simulate

import "math/rand"

// PRNG draws uniform(0, 1) floats for a single worker's rolls. Each worker
// owns its own PRNG instance, seeded independently, so no synchronization is
// needed across shards.
type PRNG interface {
	Float64() float64
}

// MathRandPRNG wraps the standard library's math/rand generator.
type MathRandPRNG struct {
	r *rand.Rand
}

// NewMathRandPRNG builds a MathRandPRNG seeded with seed.
func NewMathRandPRNG(seed int64) *MathRandPRNG {
	return &MathRandPRNG{r: rand.New(rand.NewSource(seed))}
}

// Float64 returns the next uniform(0, 1) draw.
func (p *MathRandPRNG) Float64() float64 { return p.r.Float64() }

// Xorshift32PRNG is a minimal, fast, non-cryptographic PRNG — useful when a
// simulation run needs to be cheaply reproducible across platforms without
// depending on math/rand's algorithm staying fixed across Go versions.
type Xorshift32PRNG struct {
	state uint32
}

// NewXorshift32PRNG builds a Xorshift32PRNG seeded with seed. A zero seed is
// remapped to 1, since the all-zero state is a fixed point of the generator.
func NewXorshift32PRNG(seed int64) *Xorshift32PRNG {
	state := uint32(seed)
	if state == 0 {
		state = 1
	}
	return &Xorshift32PRNG{state: state}
}

// Float64 returns the next uniform(0, 1) draw.
func (p *Xorshift32PRNG) Float64() float64 {
	p.state ^= p.state << 13
	p.state ^= p.state >> 17
	p.state ^= p.state << 5
	return float64(p.state) / 4294967296.0
}

var (
	_ PRNG = (*MathRandPRNG)(nil)
	_ PRNG = (*Xorshift32PRNG)(nil)
)

// UniformRoller adapts a PRNG to season.UniformRoller.
func UniformRoller(p PRNG) func() float64 { return p.Float64 }

// BinaryRoller adapts a PRNG to season.BinaryRoller: a draw succeeds when
// the next uniform(0, 1) value falls below p.
func BinaryRoller(prng PRNG) func(p float64) bool {
	return func(p float64) bool { return prng.Float64() < p }
}
