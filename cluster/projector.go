package cluster

import (
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"nsmc"
)

// PCAProjector re-expresses the live-point cloud along its principal axes
// before clustering, per spec.md §4.2. Adapted from the teacher's
// stats.PCA (stats/pca.go): z-score each column, eigendecompose the
// covariance matrix with mat.EigenSym, and project onto the top
// NComponents eigenvectors ordered by descending eigenvalue. Unlike the
// teacher's DataTable-oriented version this operates directly on
// [][]float64 and returns only the projected coordinates, since the core
// has no use for an explained-variance report.
type PCAProjector struct {
	NComponents int // 0 means "all dimensions"
}

func (p PCAProjector) Project(points [][]float64) [][]float64 {
	m := len(points)
	if m == 0 {
		return points
	}
	d := len(points[0])
	nComp := p.NComponents
	if nComp <= 0 || nComp > d {
		nComp = d
	}

	data := mat.NewDense(m, d, nil)
	for i, p := range points {
		for j, v := range p {
			data.Set(i, j, v)
		}
	}
	for j := 0; j < d; j++ {
		col := mat.Col(nil, j, data)
		mean, std := stat.MeanStdDev(col, nil)
		if std == 0 {
			std = 1
		}
		for i := 0; i < m; i++ {
			data.Set(i, j, (data.At(i, j)-mean)/std)
		}
	}

	cov := mat.NewSymDense(d, nil)
	stat.CovarianceMatrix(cov, data, nil)

	var eig mat.EigenSym
	if !eig.Factorize(cov, true) {
		nsmc.LogWarning("cluster.PCAProjector: eigendecomposition failed, falling back to unprojected points")
		return points
	}
	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	order := make([]int, d)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return values[order[i]] > values[order[j]] })

	out := make([][]float64, m)
	for i := 0; i < m; i++ {
		row := make([]float64, nComp)
		for c := 0; c < nComp; c++ {
			col := order[c]
			sum := 0.0
			for j := 0; j < d; j++ {
				sum += data.At(i, j) * vectors.At(j, col)
			}
			row[c] = sum
		}
		out[i] = row
	}
	return out
}
