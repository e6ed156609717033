package ellipsoid_test

import (
	"math"
	"testing"

	"nsmc"
	"nsmc/cluster"
	"nsmc/ellipsoid"
)

type constUniformPrior struct{ lo, hi []float64 }

func (c constUniformPrior) LogPdf(theta []float64) float64 {
	for i, x := range theta {
		if x < c.lo[i] || x > c.hi[i] {
			return math.Inf(-1)
		}
	}
	return 0 // constant density within bounds; doesn't need to be normalized for this test
}
func (c constUniformPrior) MaxLogPdf() float64 { return 0 }

type thresholdLikelihood struct{ cx, cy, r float64 }

func (t thresholdLikelihood) LogL(theta []float64) float64 {
	dx, dy := theta[0]-t.cx, theta[1]-t.cy
	if dx*dx+dy*dy < t.r*t.r {
		return 1.0
	}
	return -1.0
}

func buildTwoBlobSet(t *testing.T) (*ellipsoid.Set, [][]float64) {
	t.Helper()
	var pts [][]float64
	var assignments []int
	s := nsmc.NewStream(5)
	for i := 0; i < 60; i++ {
		dir := s.UnitSphere(2)
		p := []float64{-5 + dir[0]*0.5, dir[1] * 0.5}
		pts = append(pts, p)
		assignments = append(assignments, 0)
	}
	for i := 0; i < 60; i++ {
		dir := s.UnitSphere(2)
		p := []float64{5 + dir[0]*0.5, dir[1] * 0.5}
		pts = append(pts, p)
		assignments = append(assignments, 1)
	}
	result := cluster.Result{K: 2, Assignments: assignments}
	policy := ellipsoid.EnlargementPolicy{InitialFraction: 4.0, ShrinkingRate: 0.0, NLive: 120, NLive0: 120, Iteration: 0}
	set, err := ellipsoid.BuildSet(pts, result, policy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return set, pts
}

func TestBuildSetCoversAllLivePoints(t *testing.T) {
	set, pts := buildTwoBlobSet(t)
	for i, p := range pts {
		if !set.Contains(p) {
			t.Errorf("live point %d (%v) not contained in any ellipsoid of the set", i, p)
		}
	}
}

func TestDrawUniformStaysInUnion(t *testing.T) {
	set, _ := buildTwoBlobSet(t)
	s := nsmc.NewStream(99)
	for i := 0; i < 500; i++ {
		p := set.DrawUniform(s)
		if !set.Contains(p) {
			t.Fatalf("draw %v outside the ellipsoid union", p)
		}
	}
}

func TestDrawConstrainedRespectsLikelihoodFloor(t *testing.T) {
	set, _ := buildTwoBlobSet(t)
	s := nsmc.NewStream(123)
	pr := constUniformPrior{lo: []float64{-10, -10}, hi: []float64{10, 10}}
	like := thresholdLikelihood{cx: -5, cy: 0, r: 1.0}

	theta, logL, err := set.DrawConstrained(0.0, 20000, s, pr, like)
	if err != nil {
		t.Fatalf("unexpected draw exhaustion: %v", err)
	}
	if logL <= 0.0 {
		t.Errorf("accepted point has logL=%v, want > 0", logL)
	}
	if !set.Contains(theta) {
		t.Errorf("accepted point %v not in the ellipsoid union", theta)
	}
}

func TestDrawConstrainedExhaustsOnImpossibleFloor(t *testing.T) {
	set, _ := buildTwoBlobSet(t)
	s := nsmc.NewStream(321)
	pr := constUniformPrior{lo: []float64{-10, -10}, hi: []float64{10, 10}}
	like := thresholdLikelihood{cx: -5, cy: 0, r: 1.0}

	_, _, err := set.DrawConstrained(1000.0, 50, s, pr, like)
	if err == nil {
		t.Fatal("expected DRAW_ATTEMPTS_EXHAUSTED error")
	}
	nerr, ok := err.(*nsmc.Error)
	if !ok || nerr.Kind != nsmc.ErrDrawAttemptsExhausted {
		t.Fatalf("expected ErrDrawAttemptsExhausted, got %v", err)
	}
}
