package nsmc

import (
	"math"
	"math/rand/v2"
)

// Stream is the single logical RNG owned by a sampler run. spec.md §5/§9
// require replacing any process-wide PRNG with an explicit seeded stream
// threaded through every draw, so that identical seed+configuration yields
// identical log Z, H, and posterior sample. Grounded on the teacher's own
// use of math/rand/v2 (datatable_sampling.go), generalized from a package
// level call to an owned, seedable instance.
type Stream struct {
	r *rand.Rand
}

// NewStream seeds a deterministic stream from a 64-bit seed.
func NewStream(seed uint64) *Stream {
	return &Stream{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Sub derives an independent, deterministic child stream. Used to give
// concurrent initial-draw workers (spec.md §5, optional parallelism point a)
// their own sub-stream without sharing a *rand.Rand across goroutines.
func (s *Stream) Sub(tag uint64) *Stream {
	a := s.r.Uint64()
	b := s.r.Uint64() ^ tag
	return &Stream{r: rand.New(rand.NewPCG(a, b))}
}

// Float64 returns a uniform draw in [0,1).
func (s *Stream) Float64() float64 { return s.r.Float64() }

// NormFloat64 returns a standard-normal draw.
func (s *Stream) NormFloat64() float64 { return s.r.NormFloat64() }

// IntN returns a uniform draw in [0,n).
func (s *Stream) IntN(n int) int { return s.r.IntN(n) }

// Perm returns a random permutation of [0,n).
func (s *Stream) Perm(n int) []int { return s.r.Perm(n) }

// UnitSphere draws a direction uniformly on the (d-1)-sphere by normalizing
// d independent standard-normal coordinates (spec.md §4.1 DrawUniform).
func (s *Stream) UnitSphere(d int) []float64 {
	v := make([]float64, d)
	norm := 0.0
	for i := range v {
		v[i] = s.r.NormFloat64()
		norm += v[i] * v[i]
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		v[0] = 1
		return v
	}
	for i := range v {
		v[i] /= norm
	}
	return v
}
