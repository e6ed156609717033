// Package cluster implements the Clusterer plug-in contract of spec.md
// §4.2/§6: partition a live-point matrix into k clusters with a chosen k,
// plus the Metric and Projector collaborators named in spec.md §4.2. No
// clusterer or PCA implementation is present anywhere in the retrieval
// pack, so XMeans and PCAProjector are built from scratch here (see
// DESIGN.md) on top of the same gonum linear-algebra the teacher uses for
// its own PCA (stats/pca.go).
package cluster

// Metric is the pluggable distance function of spec.md §4.2.
type Metric interface {
	Distance(a, b []float64) float64
}

// Projector optionally re-expresses the live-point cloud (e.g. via PCA)
// before clustering, per spec.md §4.2.
type Projector interface {
	Project(points [][]float64) [][]float64
}

// Result is what a Clusterer hands back to the core: the chosen k, a
// per-point cluster assignment, and per-cluster centers.
type Result struct {
	K           int
	Assignments []int
	Centers     [][]float64
}

// Clusterer is the external interface of spec.md §4.2: "given the
// live-point matrix ... and a search range [k_min,k_max], return the chosen
// k, per-point cluster index, and per-cluster center." Implementations must
// tolerate duplicate points and undersized clusters; the core merges or
// drops clusters smaller than D+1 (see ellipsoid set construction).
type Clusterer interface {
	Cluster(points [][]float64, kMin, kMax int) (Result, error)
}
