package cluster

import (
	"math"

	"nsmc"
)

// XMeans selects k in [kMin,kMax] by running k-means at every candidate k
// and scoring each with a Bayesian Information Criterion, the algorithm
// spec.md §4.2/§9 names: "the source uses X-means; the range [k_min,k_max]
// and BIC criterion are specified but tie-breaking between candidate k's is
// not." This implementation's tie-breaking rule (spec.md §9 open question):
// among candidate k's within Epsilon of the best BIC, the smallest k wins —
// preferring the simpler model, and pinning determinism.
type XMeans struct {
	Metric  Metric
	Stream  *nsmc.Stream
	Epsilon float64 // BIC tie tolerance; 0 disables ties (strict max wins)
}

func NewXMeans(s *nsmc.Stream) *XMeans {
	return &XMeans{Metric: EuclideanMetric{}, Stream: s, Epsilon: 1e-6}
}

func (x *XMeans) Cluster(points [][]float64, kMin, kMax int) (Result, error) {
	n := len(points)
	if n == 0 {
		return Result{}, nsmc.NewError(nsmc.ErrClusteringFailed, "cluster.XMeans.Cluster", nil)
	}
	if kMin < 1 {
		kMin = 1
	}
	if kMax > n {
		kMax = n
	}
	if kMax < kMin {
		kMax = kMin
	}

	metric := x.Metric
	if metric == nil {
		metric = EuclideanMetric{}
	}

	type candidate struct {
		k           int
		bic         float64
		assignments []int
		centers     [][]float64
	}
	var best *candidate

	for k := kMin; k <= kMax; k++ {
		assignments, centers := lloyd(points, k, metric, x.Stream)
		bic := bicScore(points, assignments, centers, k, metric)
		if math.IsNaN(bic) {
			continue
		}
		if best == nil || bic > best.bic+x.Epsilon {
			best = &candidate{k: k, bic: bic, assignments: assignments, centers: centers}
		}
		// within epsilon of the current best: keep the smaller k (best.k < k
		// always holds here since k increases monotonically), so no update.
	}

	if best == nil {
		nsmc.LogWarning("cluster.XMeans.Cluster: no viable candidate in [%d,%d], falling back to K=1", kMin, kMax)
		return singleCluster(points), nil
	}
	return Result{K: best.k, Assignments: best.assignments, Centers: best.centers}, nil
}

func singleCluster(points [][]float64) Result {
	n := len(points)
	d := len(points[0])
	center := make([]float64, d)
	for _, p := range points {
		for j := range p {
			center[j] += p[j]
		}
	}
	for j := range center {
		center[j] /= float64(n)
	}
	assignments := make([]int, n)
	return Result{K: 1, Assignments: assignments, Centers: [][]float64{center}}
}

// bicScore is a standard simplified X-means BIC (Pelleg & Moore 2000): a
// pooled within-cluster variance stands in for each cluster's covariance,
// and the free-parameter count is k*(d+1) means+mixing weights plus one
// shared variance term.
func bicScore(points [][]float64, assignments []int, centers [][]float64, k int, metric Metric) float64 {
	n := len(points)
	d := len(points[0])
	if n <= k {
		return math.NaN()
	}

	counts := make([]int, k)
	rss := 0.0
	for i, p := range points {
		c := assignments[i]
		counts[c]++
		dist := metric.Distance(p, centers[c])
		rss += dist * dist
	}
	for _, c := range counts {
		if c == 0 {
			return math.NaN() // an empty cluster invalidates this k
		}
	}

	variance := rss / float64(n-k)
	if variance <= 0 {
		variance = 1e-12
	}

	logL := 0.0
	for _, nj := range counts {
		njf := float64(nj)
		logL += njf*math.Log(njf) - njf*math.Log(float64(n))
		logL += -njf/2*math.Log(2*math.Pi*variance) - (njf-1)/2
	}

	freeParams := float64(k)*(float64(d)+1) + 1
	return logL - freeParams/2*math.Log(float64(n))
}
