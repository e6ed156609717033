package sampler

import "nsmc"

// State is the run state machine of spec.md §4.5: "UNINITIALIZED ->
// INITIALIZED -> (RUNNING <-> CLUSTERING) -> TERMINATED | FAILED."
type State int

const (
	Uninitialized State = iota
	Initialized
	Running
	Clustering
	Terminated
	Failed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "UNINITIALIZED"
	case Initialized:
		return "INITIALIZED"
	case Running:
		return "RUNNING"
	case Clustering:
		return "CLUSTERING"
	case Terminated:
		return "TERMINATED"
	case Failed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// PosteriorEntry is one (theta, logL, logWeight) triple of spec.md §3.
type PosteriorEntry struct {
	Theta     []float64
	LogL      float64
	LogWeight float64
}

// IterationRecord is one row of the convergence trace: the run state
// immediately after iteration Iteration completed its step, consumed by
// output.WriteConvergenceChart to plot evidence/log-width convergence.
type IterationRecord struct {
	Iteration int
	LogZ      float64
	LogWidth  float64
	LogLStar  float64
	NLive     int
}

// Result is everything a completed run hands back to its caller: the
// evidence, its uncertainty, information gain, the posterior sample, and
// bookkeeping needed for reporting.
type Result struct {
	LogZ            float64
	LogZError       float64
	H               float64
	Iterations      int
	Posterior       []PosteriorEntry
	History         []IterationRecord
	FinalState      State
	FinalNLive      int
}

// Config enumerates the configuration surface of spec.md §6, plus the
// iteration cap NMax and the RNG Seed.
type Config struct {
	InitialNobjects                     int
	MinNobjects                         int
	MaxNdrawAttempts                    int
	NinitialIterationsWithoutClustering int
	NiterationsWithSameClustering       int
	InitialEnlargementFraction          float64
	ShrinkingRate                       float64
	TerminationFactor                   float64
	MinNclusters                        int
	MaxNclusters                        int
	NMax                                int // iteration cap (N_max of spec.md §4.5 step 12)
	Seed                                uint64
}

// DefaultConfig mirrors the teacher's SetDefaultConfig pattern (config.go):
// one call site for reasonable defaults, all overridable.
func DefaultConfig() Config {
	return Config{
		InitialNobjects:                     500,
		MinNobjects:                         50,
		MaxNdrawAttempts:                    10000,
		NinitialIterationsWithoutClustering: 0,
		NiterationsWithSameClustering:       50,
		InitialEnlargementFraction:          0.3,
		ShrinkingRate:                       0.2,
		TerminationFactor:                   0.01,
		MinNclusters:                        1,
		MaxNclusters:                        10,
		NMax:                                200000,
		Seed:                                1,
	}
}

// Validate rejects invalid configuration before the first iteration
// (spec.md §7 propagation policy).
func (c Config) Validate() error {
	switch {
	case c.InitialNobjects < 1:
		return nsmc.NewError(nsmc.ErrInvalidPriorBounds, "sampler.Config.Validate", nil)
	case c.MinNobjects < 1 || c.MinNobjects > c.InitialNobjects:
		return nsmc.NewError(nsmc.ErrInvalidPriorBounds, "sampler.Config.Validate", nil)
	case c.MaxNdrawAttempts < 1:
		return nsmc.NewError(nsmc.ErrInvalidPriorBounds, "sampler.Config.Validate", nil)
	case c.NiterationsWithSameClustering < 1:
		return nsmc.NewError(nsmc.ErrInvalidPriorBounds, "sampler.Config.Validate", nil)
	case c.InitialEnlargementFraction <= 0:
		return nsmc.NewError(nsmc.ErrInvalidPriorBounds, "sampler.Config.Validate", nil)
	case c.ShrinkingRate < 0 || c.ShrinkingRate > 1:
		return nsmc.NewError(nsmc.ErrInvalidPriorBounds, "sampler.Config.Validate", nil)
	case c.TerminationFactor <= 0:
		return nsmc.NewError(nsmc.ErrInvalidPriorBounds, "sampler.Config.Validate", nil)
	case c.MinNclusters < 1 || c.MaxNclusters < c.MinNclusters:
		return nsmc.NewError(nsmc.ErrInvalidPriorBounds, "sampler.Config.Validate", nil)
	case c.NMax < 1:
		return nsmc.NewError(nsmc.ErrInvalidPriorBounds, "sampler.Config.Validate", nil)
	}
	return nil
}

// livePoint is one slot of the live-point set of spec.md §3.
type livePoint struct {
	Theta []float64
	LogL  float64
}
