package prior

import (
	"gonum.org/v1/gonum/stat/distuv"

	"nsmc"
)

// Normal is a single-dimension normal prior N(Mu, Sigma^2), backed by
// gonum's stat/distuv the way the teacher's stats package leans on distuv
// for its hypothesis-test distributions (stats/ttest.go, stats/ftest.go).
type Normal struct {
	Mu, Sigma float64
}

var _ Dimension = Normal{}

func (n Normal) dist() distuv.Normal {
	return distuv.Normal{Mu: n.Mu, Sigma: n.Sigma}
}

func (n Normal) LogPdf(x float64) float64 {
	return n.dist().LogProb(x)
}

func (n Normal) Draw(s *nsmc.Stream) float64 {
	return n.Mu + n.Sigma*s.NormFloat64()
}

func (n Normal) SupportsUnitCube() bool { return true }

func (n Normal) MapFromUnitCube(u float64) float64 {
	return n.dist().Quantile(u)
}

// Bounds returns a 10-sigma box: the interval NewJoint validates, and the
// rejection-sampling fallback bounding box (spec.md §6) when a caller
// declines the unit-cube map.
func (n Normal) Bounds() (lo, hi float64) {
	return n.Mu - 10*n.Sigma, n.Mu + 10*n.Sigma
}

// MaxLogPdf is the density at the mode x=Mu.
func (n Normal) MaxLogPdf() float64 { return n.dist().LogProb(n.Mu) }

// NewNormalJoint builds a D-dimensional joint prior of independent normals.
func NewNormalJoint(mus, sigmas []float64) (*Joint, error) {
	if len(mus) != len(sigmas) {
		return nil, nsmc.NewError(nsmc.ErrInvalidPriorBounds, "prior.NewNormalJoint", nil)
	}
	dims := make([]Dimension, len(mus))
	for i := range mus {
		if sigmas[i] <= 0 {
			return nil, nsmc.NewError(nsmc.ErrInvalidPriorBounds, "prior.NewNormalJoint", nil)
		}
		dims[i] = Normal{Mu: mus[i], Sigma: sigmas[i]}
	}
	return NewJoint(dims)
}
