package likelihood_test

import (
	"math"
	"testing"

	"nsmc/likelihood"
)

func TestCircleAtOrigin(t *testing.T) {
	c := likelihood.Circle{}
	want := -math.Log(2 * math.Pi)
	if got := c.LogL([]float64{0, 0}); math.Abs(got-want) > 1e-12 {
		t.Errorf("LogL(0,0) = %v, want %v", got, want)
	}
}

func TestRosenbrockPeaksAtOneOne(t *testing.T) {
	r := likelihood.NewRosenbrock()
	if got := r.LogL([]float64{1, 1}); got != 0 {
		t.Errorf("LogL(1,1) = %v, want 0 (global maximum)", got)
	}
	if got := r.LogL([]float64{0, 0}); got >= 0 {
		t.Errorf("LogL(0,0) = %v, want < 0", got)
	}
}

func TestEggboxIsSymmetric(t *testing.T) {
	e := likelihood.Eggbox{}
	a := e.LogL([]float64{1.0, 2.0})
	b := e.LogL([]float64{-1.0, -2.0})
	if math.Abs(a-b) > 1e-9 {
		t.Errorf("eggbox should be even in x,y: got %v vs %v", a, b)
	}
}

func TestNormalLikelihoodPerfectFit(t *testing.T) {
	model := likelihood.LorentzianPeak{}
	theta := []float64{5.0, 10.0, 1.0}
	obs := []likelihood.Observation{
		{Covariate: 4.5, Value: model.Eval(4.5, theta), Sigma: 0.1},
		{Covariate: 5.0, Value: model.Eval(5.0, theta), Sigma: 0.1},
		{Covariate: 5.5, Value: model.Eval(5.5, theta), Sigma: 0.1},
	}
	n := likelihood.Normal{Model: model, Observations: obs}
	// A perfect fit's log-likelihood is the sum of the Gaussian normalizing
	// constants only (residuals are all zero).
	want := 0.0
	for _, o := range obs {
		want += -math.Log(o.Sigma * math.Sqrt(2*math.Pi))
	}
	if got := n.LogL(theta); math.Abs(got-want) > 1e-9 {
		t.Errorf("LogL at truth = %v, want %v", got, want)
	}

	off := []float64{5.0, 20.0, 1.0}
	if n.LogL(off) >= n.LogL(theta) {
		t.Error("likelihood at wrong amplitude should be lower than at truth")
	}
}
