package reducer_test

import (
	"testing"

	"nsmc/reducer"
)

func TestPowerlawWithholdsUntilThreshold(t *testing.T) {
	p := reducer.NewPowerlaw()
	s := reducer.State{
		LogZ:              -1,
		LogRemainingZ:     1, // ratio >> terminationFactor
		NLive:             500,
		NLiveMin:          50,
		Iteration:         10,
		TerminationFactor: 0.01,
	}
	if got := p.NextRemoval(s); got != 0 {
		t.Errorf("NextRemoval = %d, want 0 before threshold is crossed", got)
	}

	s.LogRemainingZ = -10 // now well below termination factor
	if got := p.NextRemoval(s); got < 1 {
		t.Errorf("NextRemoval = %d, want >= 1 once threshold crossed", got)
	}
}

func TestPowerlawNeverBelowFloor(t *testing.T) {
	p := reducer.Powerlaw{Exponent: 2, Tolerance: 10}
	s := reducer.State{
		LogZ:              -1,
		LogRemainingZ:     -100,
		NLive:             55,
		NLiveMin:          50,
		Iteration:         1000,
		TerminationFactor: 0.01,
	}
	got := p.NextRemoval(s)
	if s.NLive-got < s.NLiveMin {
		t.Errorf("NextRemoval %d would drop NLive below floor %d", got, s.NLiveMin)
	}
}

func TestFerozMonotonicInRemainingRatio(t *testing.T) {
	f := reducer.NewFeroz()
	base := reducer.State{LogZ: 0, NLive: 1000, NLiveMin: 10, TerminationFactor: 0.01}

	small := base
	small.LogRemainingZ = -0.02
	large := base
	large.LogRemainingZ = -5

	rSmall := f.NextRemoval(small)
	rLarge := f.NextRemoval(large)
	if rLarge < rSmall {
		t.Errorf("expected removal to grow as remaining evidence shrinks: got %d (small gap) vs %d (large gap)", rSmall, rLarge)
	}
}

func TestFerozRespectsFloor(t *testing.T) {
	f := reducer.Feroz{Rate: 1.0}
	s := reducer.State{LogZ: 0, LogRemainingZ: -50, NLive: 20, NLiveMin: 15, TerminationFactor: 0.01}
	got := f.NextRemoval(s)
	if s.NLive-got < s.NLiveMin {
		t.Errorf("NextRemoval %d would drop NLive below floor %d", got, s.NLiveMin)
	}
}
