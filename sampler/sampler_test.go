package sampler_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nsmc"
	"nsmc/cluster"
	"nsmc/likelihood"
	"nsmc/prior"
	"nsmc/reducer"
	"nsmc/sampler"
)

func circlePrior(t *testing.T) *prior.Joint {
	t.Helper()
	j, err := prior.NewUniformJoint([]float64{-10, -10}, []float64{10, 10})
	require.NoError(t, err)
	return j
}

func newTestSampler(t *testing.T, cfg sampler.Config) *sampler.Sampler {
	t.Helper()
	pr := circlePrior(t)
	s, err := sampler.New(cfg, pr, likelihood.Circle{}, cluster.NewXMeans(nsmc.NewStream(cfg.Seed)), reducer.NewPowerlaw(), nil)
	require.NoError(t, err)
	return s
}

// TestSingleGaussianEvidence is spec.md §8 scenario 1: a uniform [-10,10]^2
// prior against the closed-form circle likelihood has analytic log Z =
// -log(100).
func TestSingleGaussianEvidence(t *testing.T) {
	cfg := sampler.DefaultConfig()
	cfg.InitialNobjects = 400
	cfg.MinNobjects = 50
	cfg.TerminationFactor = 0.01
	cfg.Seed = 1

	pr := circlePrior(t)
	s, err := sampler.New(cfg, pr, likelihood.Circle{}, cluster.NewXMeans(nsmc.NewStream(cfg.Seed)), reducer.NewPowerlaw(), nil)
	require.NoError(t, err)

	result, err := s.Run()
	require.NoError(t, err)

	want := -math.Log(100)
	tolerance := 3*result.LogZError + 0.5 // generous slack for the small test-sized N_live
	assert.InDelta(t, want, result.LogZ, tolerance, "logZ = %v, want close to %v", result.LogZ, want)
	assert.GreaterOrEqual(t, result.H, 0.0)
	assert.NotEmpty(t, result.Posterior)
}

// TestLogLStarNonDecreasing checks spec.md §8's invariant across a full run
// by re-deriving log L* from the posterior sample's retirement order.
func TestLogLStarNonDecreasing(t *testing.T) {
	cfg := sampler.DefaultConfig()
	cfg.InitialNobjects = 150
	cfg.MinNobjects = 30
	cfg.Seed = 2
	s := newTestSampler(t, cfg)

	result, err := s.Run()
	require.NoError(t, err)

	// Only the first Iterations entries are retired points; the surviving
	// live points appended after the loop are in slot order.
	prevLogL := math.Inf(-1)
	for i, entry := range result.Posterior[:result.Iterations] {
		if i > 0 && entry.LogL < prevLogL-1e-9 {
			t.Fatalf("posterior entry %d: logL %v < previous retired logL %v (log L* must be non-decreasing)", i, entry.LogL, prevLogL)
		}
		if entry.LogL > prevLogL {
			prevLogL = entry.LogL
		}
	}
}

// TestEvidenceNonDecreasing checks spec.md §8's "log Z is non-decreasing"
// invariant holds across the run's own internal trajectory by replaying the
// posterior weights through the same logSumExp accumulation the sampler uses.
func TestEvidenceNonDecreasing(t *testing.T) {
	cfg := sampler.DefaultConfig()
	cfg.InitialNobjects = 150
	cfg.MinNobjects = 30
	cfg.Seed = 3
	s := newTestSampler(t, cfg)

	result, err := s.Run()
	require.NoError(t, err)

	logZ := math.Inf(-1)
	for _, entry := range result.Posterior {
		next := logSumExpPair(logZ, entry.LogWeight)
		assert.GreaterOrEqual(t, next, logZ-1e-9, "logZ must be non-decreasing")
		logZ = next
	}
}

func logSumExpPair(a, b float64) float64 {
	if math.IsInf(a, -1) {
		return b
	}
	if math.IsInf(b, -1) {
		return a
	}
	m := math.Max(a, b)
	return m + math.Log(math.Exp(a-m)+math.Exp(b-m))
}

// TestReductionScheduleNeverBelowFloor is spec.md §8 scenario 5: with an
// aggressive reducer and a tight termination factor, N_live must shrink
// monotonically and never dip below MinNobjects.
func TestReductionScheduleNeverBelowFloor(t *testing.T) {
	cfg := sampler.DefaultConfig()
	cfg.InitialNobjects = 120
	cfg.MinNobjects = 40
	cfg.TerminationFactor = 5.0 // removal starts once log(Z_remaining/Z) < 5, well before termination
	cfg.Seed = 4
	pr := circlePrior(t)
	s, err := sampler.New(cfg, pr, likelihood.Circle{}, cluster.NewXMeans(nsmc.NewStream(cfg.Seed)), reducer.Powerlaw{Exponent: 1, Tolerance: 1}, nil)
	require.NoError(t, err)

	result, err := s.Run()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.FinalNLive, cfg.MinNobjects)

	prev := cfg.InitialNobjects
	for _, rec := range result.History {
		assert.LessOrEqual(t, rec.NLive, prev, "N_live must be non-increasing (iteration %d)", rec.Iteration)
		assert.GreaterOrEqual(t, rec.NLive, cfg.MinNobjects, "N_live below floor (iteration %d)", rec.Iteration)
		prev = rec.NLive
	}
}

// TestDrawExhaustionRecovers is spec.md §8 scenario 6: a likelihood whose
// accepted region is effectively measure-zero under the prior must not hang
// the sampler; it should terminate via the reduction/exhaustion path with a
// well-formed (if low-accuracy) result.
func TestDrawExhaustionRecovers(t *testing.T) {
	cfg := sampler.DefaultConfig()
	cfg.InitialNobjects = 60
	cfg.MinNobjects = 20
	cfg.MaxNdrawAttempts = 20
	cfg.NMax = 2000
	cfg.Seed = 5

	pr := circlePrior(t)
	spike := likelihood.Func(func(theta []float64) float64 {
		if math.Abs(theta[0]-9.999) < 1e-6 && math.Abs(theta[1]-9.999) < 1e-6 {
			return 0
		}
		return math.Inf(-1)
	})
	s, err := sampler.New(cfg, pr, spike, cluster.NewXMeans(nsmc.NewStream(cfg.Seed)), reducer.NewFeroz(), nil)
	require.NoError(t, err)

	// A measure-zero target forces every constrained draw to exhaust its
	// budget. The sampler must still come back with a well-formed result
	// (reducing toward the floor, then either terminating or reporting
	// Failed once reduction itself is exhausted) rather than hang.
	result, err := s.Run()
	require.NotNil(t, result)
	if err != nil {
		assert.Equal(t, sampler.Failed, result.FinalState)
	}
	assert.LessOrEqual(t, result.FinalNLive, cfg.InitialNobjects)
	assert.GreaterOrEqual(t, result.FinalNLive, cfg.MinNobjects)
}

// TestDeterminismForFixedSeed is spec.md §8's determinism law: identical
// seed and configuration yield identical logZ, H, and posterior sample.
func TestDeterminismForFixedSeed(t *testing.T) {
	cfg := sampler.DefaultConfig()
	cfg.InitialNobjects = 80
	cfg.MinNobjects = 20
	cfg.Seed = 99

	run := func() *sampler.Result {
		s := newTestSampler(t, cfg)
		result, err := s.Run()
		require.NoError(t, err)
		return result
	}

	a := run()
	b := run()
	assert.Equal(t, a.LogZ, b.LogZ)
	assert.Equal(t, a.H, b.H)
	require.Equal(t, len(a.Posterior), len(b.Posterior))
	for i := range a.Posterior {
		assert.Equal(t, a.Posterior[i].LogL, b.Posterior[i].LogL)
		assert.Equal(t, a.Posterior[i].LogWeight, b.Posterior[i].LogWeight)
	}
}
