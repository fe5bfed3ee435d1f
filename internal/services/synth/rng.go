package synth

import "math"

// Rand is a mulberry32 generator. Its output sequence is fully determined by
// the seed, which is what lets two runs of the dashboard agree record for
// record.
type Rand struct {
	state uint32
}

// NewRand seeds a generator.
func NewRand(seed uint32) *Rand {
	return &Rand{state: seed}
}

// Float64 returns a value in [0, 1).
func (r *Rand) Float64() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return float64(t^t>>14) / 4294967296
}

// Norm returns a standard normal draw using Box-Muller. Zero uniforms are
// redrawn so the logarithm stays finite.
func (r *Rand) Norm() float64 {
	u := 0.0
	for u == 0 {
		u = r.Float64()
	}
	v := 0.0
	for v == 0 {
		v = r.Float64()
	}
	return math.Sqrt(-2*math.Log(u)) * math.Cos(2*math.Pi*v)
}

// Beta approximates a Beta(alpha, beta) draw for integer shapes as the ratio
// of two gamma sums of exponential draws.
func (r *Rand) Beta(alpha, beta int) float64 {
	var a, b float64
	for i := 0; i < alpha; i++ {
		a += -math.Log(r.Float64())
	}
	for i := 0; i < beta; i++ {
		b += -math.Log(r.Float64())
	}
	return a / (a + b)
}
