package game

// rng is a deterministic pseudo-random number generator (xorshift64).
// The engine never touches math/rand so that identical seeds replay
// identical runs across Go versions.
type rng struct {
	state uint64
}

func newRNG(seed int64) *rng {
	if seed == 0 {
		seed = 88172645463325252
	}
	return &rng{state: uint64(seed)}
}

func (r *rng) next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Float returns a random float64 in [0, 1).
func (r *rng) Float() float64 {
	return float64(r.next()&0x7FFFFFFFFFFFFFFF) / float64(0x8000000000000000)
}

// Intn returns a random int in [0, n).
func (r *rng) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.next() % uint64(n))
}

// Range returns a random float64 in [min, max).
func (r *rng) Range(min, max float64) float64 {
	return min + r.Float()*(max-min)
}

// Sign returns -1.0 or +1.0 with equal probability.
func (r *rng) Sign() float64 {
	if r.next()&1 == 0 {
		return -1
	}
	return 1
}
