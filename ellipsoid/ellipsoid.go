// Package ellipsoid implements the axis-aligned covariance decomposition,
// enlargement, containment test, and uniform interior draw of spec.md §4.1.
// It is the core's principal numerics and is built on gonum's mat package
// for symmetric eigendecomposition, the same linear-algebra foundation the
// teacher uses for PCA (stats/pca.go: mat.SymDense + mat.EigenSym).
package ellipsoid

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"nsmc"
)

// minEigenvalue is the clamp floor of spec.md §4.1: "negative or zero
// eigenvalues are clamped to a small positive epsilon to guarantee
// positive-definiteness."
const minEigenvalue = 1e-10

// Ellipsoid is the covariance decomposition E = { c + V*diag(sqrt(f*lambda))*u : |u|<=1 }
// of spec.md §3/§4.1.
type Ellipsoid struct {
	Center       []float64
	Eigenvalues  []float64 // clamped > 0
	Eigenvectors *mat.Dense // D x D, orthonormal columns
	Enlargement  float64    // f >= 0
	Degenerate   bool       // eigendecomposition failed to converge
	N            int        // number of points used to build this ellipsoid (m_k of spec.md §4.4)
}

// Build fits an Ellipsoid to a point set (each row is one D-vector) with
// the given enlargement factor f, per spec.md §4.1: center is the mean,
// covariance is the (biased) sample covariance, eigenvalues/vectors come
// from a symmetric eigendecomposition, and non-positive eigenvalues are
// clamped.
func Build(points [][]float64, f float64) (*Ellipsoid, error) {
	m := len(points)
	if m == 0 {
		return nil, nsmc.NewError(nsmc.ErrNumericalDegeneracy, "ellipsoid.Build", nil)
	}
	d := len(points[0])

	center := make([]float64, d)
	for _, p := range points {
		for j := 0; j < d; j++ {
			center[j] += p[j]
		}
	}
	for j := range center {
		center[j] /= float64(m)
	}

	cov := mat.NewSymDense(d, nil)
	for a := 0; a < d; a++ {
		for b := a; b < d; b++ {
			sum := 0.0
			for _, p := range points {
				sum += (p[a] - center[a]) * (p[b] - center[b])
			}
			cov.SetSym(a, b, sum/float64(m))
		}
	}

	var eig mat.EigenSym
	ok := eig.Factorize(cov, true)
	e := &Ellipsoid{Center: center, Enlargement: f, N: m}
	if !ok {
		e.Degenerate = true
		nsmc.LogWarning("ellipsoid.Build: eigendecomposition did not converge, marking degenerate")
		return e, nil
	}

	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	clamped := false
	for i, v := range values {
		if v < minEigenvalue {
			values[i] = minEigenvalue
			clamped = true
		}
	}
	if clamped {
		nsmc.LogWarning("ellipsoid.Build: clamped %d non-positive eigenvalue(s) to %g", countClamped(values), minEigenvalue)
	}

	e.Eigenvalues = values
	e.Eigenvectors = &vectors
	return e, nil
}

func countClamped(values []float64) int {
	n := 0
	for _, v := range values {
		if v == minEigenvalue {
			n++
		}
	}
	return n
}

// dims returns D.
func (e *Ellipsoid) dims() int { return len(e.Center) }

// Contains implements spec.md §4.1 Contains: u = V^-1(theta-c) in the
// eigenbasis (V is orthonormal so V^-1 = V^T); true iff
// sum_j u_j^2/(f*lambda_j) <= 1.
func (e *Ellipsoid) Contains(theta []float64) bool {
	if e.Degenerate {
		return false
	}
	d := e.dims()
	diff := make([]float64, d)
	for i := range diff {
		diff[i] = theta[i] - e.Center[i]
	}
	total := 0.0
	for j := 0; j < d; j++ {
		u := 0.0
		for i := 0; i < d; i++ {
			u += e.Eigenvectors.At(i, j) * diff[i]
		}
		total += (u * u) / (e.Enlargement * e.Eigenvalues[j])
	}
	return total <= 1.0
}

// DrawUniform implements spec.md §4.1 DrawUniform: a direction uniform on
// the (D-1)-sphere, radius r = U^(1/D), mapped through the enlarged
// eigenbasis back to parameter space.
func (e *Ellipsoid) DrawUniform(s *nsmc.Stream) []float64 {
	d := e.dims()
	dir := s.UnitSphere(d)
	r := math.Pow(s.Float64(), 1.0/float64(d))

	point := make([]float64, d)
	copy(point, e.Center)
	for j := 0; j < d; j++ {
		axis := math.Sqrt(e.Enlargement * e.Eigenvalues[j])
		coeff := r * dir[j] * axis
		for i := 0; i < d; i++ {
			point[i] += e.Eigenvectors.At(i, j) * coeff
		}
	}
	return point
}

// logUnitBallVolume returns log(V_unit(D)), the volume of the D-dimensional
// unit ball: pi^(D/2) / Gamma(D/2 + 1).
func logUnitBallVolume(d int) float64 {
	return float64(d)/2*math.Log(math.Pi) - lgamma(float64(d)/2+1)
}

func lgamma(x float64) float64 {
	v, _ := math.Lgamma(x)
	return v
}

// LogVolume is spec.md §4.1's Volume: V_unit(D) * f^(D/2) * sqrt(prod_j lambda_j),
// computed in log-domain to avoid under/overflow across >10 dimensions.
func (e *Ellipsoid) LogVolume() float64 {
	if e.Degenerate {
		return math.Inf(-1)
	}
	d := e.dims()
	logDet := 0.0
	for _, v := range e.Eigenvalues {
		logDet += math.Log(v)
	}
	return logUnitBallVolume(d) + float64(d)/2*math.Log(e.Enlargement) + 0.5*logDet
}
