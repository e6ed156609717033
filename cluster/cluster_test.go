package cluster_test

import (
	"testing"

	"nsmc"
	"nsmc/cluster"
)

func twoBlobs() [][]float64 {
	pts := make([][]float64, 0, 40)
	for i := 0; i < 20; i++ {
		pts = append(pts, []float64{-5 + float64(i%5)*0.1, 0})
	}
	for i := 0; i < 20; i++ {
		pts = append(pts, []float64{5 + float64(i%5)*0.1, 0})
	}
	return pts
}

func TestXMeansFindsTwoWellSeparatedBlobs(t *testing.T) {
	s := nsmc.NewStream(1)
	x := cluster.NewXMeans(s)
	result, err := x.Cluster(twoBlobs(), 1, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.K != 2 {
		t.Errorf("K = %d, want 2 for two well-separated blobs", result.K)
	}
	if len(result.Assignments) != 40 {
		t.Fatalf("expected 40 assignments, got %d", len(result.Assignments))
	}
	leftLabel := result.Assignments[0]
	for i := 0; i < 20; i++ {
		if result.Assignments[i] != leftLabel {
			t.Errorf("point %d not grouped with the rest of its blob", i)
		}
	}
}

func TestXMeansSingleClusterFallback(t *testing.T) {
	result := cluster.Result{}
	s := nsmc.NewStream(2)
	x := cluster.NewXMeans(s)
	var err error
	result, err = x.Cluster([][]float64{{0, 0}}, 1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.K != 1 {
		t.Errorf("K = %d, want 1 for a single point", result.K)
	}
}

func TestPCAProjectorPreservesPointCount(t *testing.T) {
	pts := twoBlobs()
	proj := cluster.PCAProjector{NComponents: 1}
	out := proj.Project(pts)
	if len(out) != len(pts) {
		t.Fatalf("got %d projected points, want %d", len(out), len(pts))
	}
	if len(out[0]) != 1 {
		t.Errorf("projected dimensionality = %d, want 1", len(out[0]))
	}
}

func TestEuclideanMetric(t *testing.T) {
	m := cluster.EuclideanMetric{}
	if got := m.Distance([]float64{0, 0}, []float64{3, 4}); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
}
