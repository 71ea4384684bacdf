package core

import "math/rand/v2"

// Rand is a small xorshift64* generator. It is not safe for concurrent use;
// give every goroutine its own instance.
type Rand struct {
	state uint64
}

// NewRand creates a generator from the provided seed. A zero seed picks a
// random one, since the xorshift state must never be zero.
func NewRand(seed int64) *Rand {
	s := uint64(seed)
	if s == 0 {
		s = rand.Uint64() | 1
	}
	return &Rand{state: s}
}

// Seed resets the generator state.
func (r *Rand) Seed(seed int64) {
	s := uint64(seed)
	if s == 0 {
		s = 0x9e3779b97f4a7c15
	}
	r.state = s
}

// Uint64 returns the next pseudo-random value.
func (r *Rand) Uint64() uint64 {
	x := r.state
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.state = x
	return x * 0x2545f4914f6cdd1d
}

// Intn returns a value in [0, n). It returns 0 when n <= 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int((r.Uint64() >> 33) % uint64(n))
}

// Bool returns a random boolean value.
func (r *Rand) Bool() bool {
	return r.Uint64()>>63 == 1
}

// Float64 returns a value in [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.Uint64()>>11) / (1 << 53)
}

// Chance reports true with probability p.
func (r *Rand) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.Float64() < p
}

// Derive returns a generator whose seed is mixed from this one and the
// given stream index. Used to hand each worker its own sequence.
func Derive(seed int64, stream int) *Rand {
	mixed := uint64(seed) ^ (uint64(stream+1) * 0x9e3779b97f4a7c15)
	mixed ^= mixed >> 31
	if mixed == 0 {
		mixed = 1
	}
	return &Rand{state: mixed}
}
