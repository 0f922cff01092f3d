package vmath

// FastRand is a xorshift64 generator
// Every scatter decision in a simulation draws from one instance, so a fixed seed replays bit for bit
type FastRand struct {
	state uint64
}

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

// Float01 returns a value in [0, 1) built from the top 24 bits, exact in float32
func (r *FastRand) Float01() float32 {
	return float32(r.Next()>>40) / (1 << 24)
}

// FloatM11 returns a value in [-1, 1)
func (r *FastRand) FloatM11() float32 {
	return r.Float01()*2 - 1
}

// State exposes the generator position for snapshots
func (r *FastRand) State() uint64 { return r.state }
