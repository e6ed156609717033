package prior

import (
	"math"

	"nsmc"
)

// GridUniform is a discretized uniform prior over NPoints equally spaced
// values on [Min,Max] — the third named prior kind of spec.md §3/§9. It is
// uniform in the same sense as Uniform but its support is a finite set, so
// MapFromUnitCube splits [0,1) into NPoints equal shares and returns the grid
// point of the share u falls in, instead of interpolating continuously.
type GridUniform struct {
	Min, Max float64
	NPoints  int
}

var _ Dimension = GridUniform{}

func (g GridUniform) step() float64 {
	if g.NPoints <= 1 {
		return 0
	}
	return (g.Max - g.Min) / float64(g.NPoints-1)
}

func (g GridUniform) nearestIndex(x float64) int {
	step := g.step()
	if step == 0 {
		return 0
	}
	idx := int(math.Round((x - g.Min) / step))
	if idx < 0 {
		idx = 0
	}
	if idx > g.NPoints-1 {
		idx = g.NPoints - 1
	}
	return idx
}

func (g GridUniform) LogPdf(x float64) float64 {
	if g.NPoints <= 0 || x < g.Min || x > g.Max {
		return negInf
	}
	step := g.step()
	if step > 0 {
		nearest := g.Min + float64(g.nearestIndex(x))*step
		if math.Abs(x-nearest) > 1e-9*step {
			return negInf
		}
	}
	return -math.Log(float64(g.NPoints))
}

func (g GridUniform) Draw(s *nsmc.Stream) float64 {
	idx := s.IntN(g.NPoints)
	return g.Min + float64(idx)*g.step()
}

func (g GridUniform) SupportsUnitCube() bool { return true }

func (g GridUniform) MapFromUnitCube(u float64) float64 {
	idx := int(u * float64(g.NPoints))
	if idx >= g.NPoints {
		idx = g.NPoints - 1
	}
	return g.Min + float64(idx)*g.step()
}

func (g GridUniform) Bounds() (lo, hi float64) { return g.Min, g.Max }

func (g GridUniform) MaxLogPdf() float64 { return -math.Log(float64(g.NPoints)) }

// NewGridUniformJoint builds a D-dimensional joint prior of independent
// discretized-uniform grids.
func NewGridUniformJoint(mins, maxs []float64, nPoints []int) (*Joint, error) {
	if len(mins) != len(maxs) || len(mins) != len(nPoints) {
		return nil, nsmc.NewError(nsmc.ErrInvalidPriorBounds, "prior.NewGridUniformJoint", nil)
	}
	dims := make([]Dimension, len(mins))
	for i := range mins {
		if nPoints[i] < 1 {
			return nil, nsmc.NewError(nsmc.ErrInvalidPriorBounds, "prior.NewGridUniformJoint", nil)
		}
		dims[i] = GridUniform{Min: mins[i], Max: maxs[i], NPoints: nPoints[i]}
	}
	return NewJoint(dims)
}
