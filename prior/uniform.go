package prior

import (
	"math"

	"nsmc"
)

// Uniform is a single-dimension uniform prior on [Min,Max].
type Uniform struct {
	Min, Max float64
}

var _ Dimension = Uniform{}

func (u Uniform) LogPdf(x float64) float64 {
	if x < u.Min || x > u.Max {
		return negInf
	}
	return -math.Log(u.Max - u.Min)
}

func (u Uniform) Draw(s *nsmc.Stream) float64 {
	return u.Min + s.Float64()*(u.Max-u.Min)
}

func (u Uniform) SupportsUnitCube() bool { return true }

func (u Uniform) MapFromUnitCube(c float64) float64 {
	return u.Min + c*(u.Max-u.Min)
}

func (u Uniform) Bounds() (lo, hi float64) { return u.Min, u.Max }

func (u Uniform) MaxLogPdf() float64 { return -math.Log(u.Max - u.Min) }

// NewUniformJoint builds a D-dimensional joint prior with independent
// per-dimension [mins[i],maxs[i]] bounds — the common case for scenarios 1-3
// of spec.md §8 (box priors on the plane).
func NewUniformJoint(mins, maxs []float64) (*Joint, error) {
	if len(mins) != len(maxs) {
		return nil, nsmc.NewError(nsmc.ErrInvalidPriorBounds, "prior.NewUniformJoint", nil)
	}
	dims := make([]Dimension, len(mins))
	for i := range mins {
		dims[i] = Uniform{Min: mins[i], Max: maxs[i]}
	}
	return NewJoint(dims)
}
