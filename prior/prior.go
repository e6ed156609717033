// Package prior implements the Prior plug-in contract of spec.md §3/§6: a
// joint PDF evaluator, a forward-draw operator, and (where the prior kind
// supports it) a unit-cube-to-parameter-space map. Concrete kinds are a
// closed variant set per spec.md §9: Uniform, Normal, GridUniform, composed
// dimension-wise via Joint.
package prior

import (
	"math"

	"nsmc"
)

// Dimension is a single-dimension prior: PDF, forward draw, and the
// optional unit-cube map. Joint combines D of these into the D-dimensional
// prior spec.md §3 describes.
type Dimension interface {
	// LogPdf returns log π(x) for a scalar coordinate, or -Inf outside support.
	LogPdf(x float64) float64
	// Draw produces one sample distributed according to this dimension's prior.
	Draw(s *nsmc.Stream) float64
	// SupportsUnitCube reports whether MapFromUnitCube is implemented.
	SupportsUnitCube() bool
	// MapFromUnitCube maps u in [0,1) to parameter space. Only valid when
	// SupportsUnitCube reports true.
	MapFromUnitCube(u float64) float64
	// Bounds returns a finite bounding interval used for rejection sampling
	// when no unit-cube map is available (spec.md §6 prior interface note).
	Bounds() (lo, hi float64)
	// MaxLogPdf returns log(pi_max), the supremum of this dimension's
	// density, used by the accept-reject weighting of spec.md §4.4's
	// constrained sampling contract (pi(p)/pi_max).
	MaxLogPdf() float64
}

// Joint composes D independent Dimension priors into the D-dimensional
// prior of spec.md §3: "priors combine dimension-wise independently; their
// joint PDF is the product."
type Joint struct {
	Dims []Dimension
}

// NewJoint validates and wraps a slice of per-dimension priors.
func NewJoint(dims []Dimension) (*Joint, error) {
	if len(dims) == 0 {
		return nil, nsmc.NewError(nsmc.ErrInvalidPriorBounds, "prior.NewJoint", nil)
	}
	for _, d := range dims {
		lo, hi := d.Bounds()
		if !(lo < hi) {
			return nil, nsmc.NewError(nsmc.ErrInvalidPriorBounds, "prior.NewJoint", nil)
		}
	}
	return &Joint{Dims: dims}, nil
}

// Ndimensions is D.
func (j *Joint) Ndimensions() int { return len(j.Dims) }

// LogPdf is the sum of per-dimension log-pdfs (product in linear space).
func (j *Joint) LogPdf(theta []float64) float64 {
	total := 0.0
	for i, d := range j.Dims {
		lp := d.LogPdf(theta[i])
		if lp == negInf {
			return negInf
		}
		total += lp
	}
	return total
}

// Draw produces a full D-vector forward-sampled from the joint prior.
func (j *Joint) Draw(s *nsmc.Stream) []float64 {
	theta := make([]float64, len(j.Dims))
	for i, d := range j.Dims {
		theta[i] = d.Draw(s)
	}
	return theta
}

// SupportsUnitCube reports whether every dimension implements the map; the
// core uses it only when this holds for the whole joint prior.
func (j *Joint) SupportsUnitCube() bool {
	for _, d := range j.Dims {
		if !d.SupportsUnitCube() {
			return false
		}
	}
	return true
}

// MapFromUnitCube applies each dimension's inverse map independently.
func (j *Joint) MapFromUnitCube(u []float64) []float64 {
	theta := make([]float64, len(j.Dims))
	for i, d := range j.Dims {
		theta[i] = d.MapFromUnitCube(u[i])
	}
	return theta
}

// MaxLogPdf returns log(pi_max) for the joint prior: the sum of each
// dimension's maximum log-density, since the joint pdf is their product.
func (j *Joint) MaxLogPdf() float64 {
	total := 0.0
	for _, d := range j.Dims {
		total += d.MaxLogPdf()
	}
	return total
}

// BoundingBox returns the per-dimension [lo,hi] used for rejection sampling
// fallback when the joint prior has no unit-cube map.
func (j *Joint) BoundingBox() (lo, hi []float64) {
	lo = make([]float64, len(j.Dims))
	hi = make([]float64, len(j.Dims))
	for i, d := range j.Dims {
		lo[i], hi[i] = d.Bounds()
	}
	return lo, hi
}

var negInf = math.Inf(-1)
