package vmath

// FastRand is a xorshift64 generator for reproducible scenes and benchmarks
// Not safe for concurrent use
type FastRand struct {
	state uint64
}

// NewFastRand seeds the generator; zero is replaced since xorshift sticks at 0
func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a value in [0, 1) from the top 53 bits
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Range returns a value in [lo, hi)
func (r *FastRand) Range(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// V2In returns a point uniformly inside [lo, hi)
func (r *FastRand) V2In(lo, hi Vec2) Vec2 {
	return V2(r.Range(lo.X, hi.X), r.Range(lo.Y, hi.Y))
}
