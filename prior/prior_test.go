package prior_test

import (
	"math"
	"testing"

	"nsmc"
	"nsmc/prior"
)

func TestUniformLogPdf(t *testing.T) {
	u := prior.Uniform{Min: -10, Max: 10}
	want := -math.Log(20)
	if got := u.LogPdf(0); math.Abs(got-want) > 1e-12 {
		t.Errorf("LogPdf(0) = %v, want %v", got, want)
	}
	if got := u.LogPdf(11); !math.IsInf(got, -1) {
		t.Errorf("LogPdf(11) = %v, want -Inf", got)
	}
}

func TestUniformMapFromUnitCube(t *testing.T) {
	u := prior.Uniform{Min: 2, Max: 6}
	if got := u.MapFromUnitCube(0.5); got != 4 {
		t.Errorf("MapFromUnitCube(0.5) = %v, want 4", got)
	}
}

func TestJointLogPdfIsProductInLogSpace(t *testing.T) {
	j, err := prior.NewUniformJoint([]float64{-1, -1}, []float64{1, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := -math.Log(2) - math.Log(2)
	if got := j.LogPdf([]float64{0, 0}); math.Abs(got-want) > 1e-12 {
		t.Errorf("joint LogPdf = %v, want %v", got, want)
	}
	if got := j.LogPdf([]float64{5, 0}); !math.IsInf(got, -1) {
		t.Errorf("joint LogPdf outside support = %v, want -Inf", got)
	}
}

func TestNewJointRejectsInvalidBounds(t *testing.T) {
	_, err := prior.NewUniformJoint([]float64{1}, []float64{1})
	if err == nil {
		t.Fatal("expected error for min == max")
	}
	var nerr *nsmc.Error
	if !assignable(err, &nerr) {
		t.Fatalf("expected *nsmc.Error, got %T", err)
	}
	if nerr.Kind != nsmc.ErrInvalidPriorBounds {
		t.Errorf("got kind %v, want ErrInvalidPriorBounds", nerr.Kind)
	}
}

func assignable(err error, target **nsmc.Error) bool {
	if e, ok := err.(*nsmc.Error); ok {
		*target = e
		return true
	}
	return false
}

func TestGridUniformRoundTrips(t *testing.T) {
	g := prior.GridUniform{Min: 0, Max: 10, NPoints: 11}
	for i := 0; i < 11; i++ {
		x := float64(i)
		if lp := g.LogPdf(x); math.IsInf(lp, -1) {
			t.Errorf("grid point %v should be in support", x)
		}
	}
	if lp := g.LogPdf(0.5); !math.IsInf(lp, -1) {
		t.Errorf("off-grid point should be -Inf, got %v", lp)
	}
}

func TestNormalUnitCubeMedianIsMu(t *testing.T) {
	n := prior.Normal{Mu: 1, Sigma: 2}
	if got := n.MapFromUnitCube(0.5); math.Abs(got-1) > 1e-9 {
		t.Errorf("median of N(1,2) = %v, want 1", got)
	}
}
