// Package sampler implements the NestedSampler core loop of spec.md §4.5:
// live-point maintenance, the per-iteration evidence/information-gain
// update, clustering cadence, constrained replacement draws, the reducer
// consult, and termination. It is the 40%-share component of spec.md §2 and
// the reason every other package in this module exists.
package sampler

import (
	"math"
	"runtime"

	"gonum.org/v1/gonum/floats"

	"nsmc"
	"nsmc/cluster"
	"nsmc/ellipsoid"
	"nsmc/internal/parallel"
	"nsmc/likelihood"
	"nsmc/prior"
	"nsmc/reducer"
)

// Sampler drives the nested-sampling run described by spec.md §3/§4.5. It
// owns the single RNG stream (spec.md §9 "global RNG" resolution) and is
// not safe for concurrent use by multiple goroutines; internal parallelism
// (internal/parallel) is confined to points where spec.md §5 explicitly
// permits it and is folded back deterministically before returning control.
type Sampler struct {
	cfg        Config
	prior      *prior.Joint
	likelihood likelihood.Likelihood
	clusterer  cluster.Clusterer
	reducer    reducer.Reducer
	projector  cluster.Projector // optional; nil means "cluster on raw coordinates"
	stream     *nsmc.Stream

	state State
	live  []livePoint
	set   *ellipsoid.Set

	logZ            float64
	h               float64
	logWidth        float64
	iteration       int
	lastClusterIter int
	nLive0          int

	posterior []PosteriorEntry
	history   []IterationRecord
}

// New constructs a Sampler from the plug-in collaborators of spec.md §6.
// The projector is optional; pass nil to cluster on raw coordinates.
func New(cfg Config, pr *prior.Joint, like likelihood.Likelihood, clusterer cluster.Clusterer, red reducer.Reducer, proj cluster.Projector) (*Sampler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if pr.Ndimensions() < 1 {
		return nil, nsmc.NewError(nsmc.ErrInvalidPriorBounds, "sampler.New", nil)
	}
	return &Sampler{
		cfg:        cfg,
		prior:      pr,
		likelihood: like,
		clusterer:  clusterer,
		reducer:    red,
		projector:  proj,
		stream:     nsmc.NewStream(cfg.Seed),
		state:      Uninitialized,
	}, nil
}

// State reports the current run state (spec.md §4.5 state machine).
func (s *Sampler) State() State { return s.state }

// Initialize draws the initial live-point ensemble from the joint prior
// (spec.md §4.5 "Initialization"), evaluating log L for each in parallel
// (spec.md §5 optional parallelism point a) and folding results back in
// index order for determinism.
func (s *Sampler) Initialize() error {
	n := s.cfg.InitialNobjects
	substreams := make([]*nsmc.Stream, n)
	for i := range substreams {
		substreams[i] = s.stream.Sub(uint64(i))
	}
	s.live = parallel.Map(n, runtime.GOMAXPROCS(0), func(i int) livePoint {
		theta := s.prior.Draw(substreams[i])
		return livePoint{Theta: theta, LogL: s.likelihood.LogL(theta)}
	})
	for i := range s.live {
		if math.IsNaN(s.live[i].LogL) || s.live[i].LogL == math.Inf(1) {
			s.state = Failed
			return nsmc.NewError(nsmc.ErrNonFiniteLikelihood, "sampler.Initialize", nil)
		}
	}

	s.nLive0 = n
	s.logZ = math.Inf(-1)
	s.h = 0
	s.logWidth = math.Log(-math.Expm1(-1 / float64(n)))
	s.iteration = 0
	s.lastClusterIter = 0
	s.posterior = nil
	s.history = nil

	set, err := s.rebuildEllipsoidSet(true)
	if err != nil {
		s.state = Failed
		return err
	}
	s.set = set

	s.state = Initialized
	return nil
}

// Run executes iterations until termination (spec.md §4.5 step 12), then
// appends the surviving live points to the posterior sample and computes
// the evidence error, per spec.md §4.5 "Post-loop."
func (s *Sampler) Run() (*Result, error) {
	if s.state == Uninitialized {
		if err := s.Initialize(); err != nil {
			return nil, err
		}
	}
	s.state = Running

	for {
		terminate, err := s.step()
		if err != nil {
			s.state = Failed
			return s.snapshotResult(), err
		}
		if terminate {
			break
		}
	}

	s.state = Terminated
	s.finalizePosterior()

	return s.snapshotResult(), nil
}

// step executes one iteration of spec.md §4.5's per-iteration sequence and
// reports whether the run should terminate afterward.
func (s *Sampler) step() (terminate bool, err error) {
	worst := s.worstIndex()
	logLw := s.live[worst].LogL
	logWn := s.logWidth + logLw

	logZNew := logSumExp(s.logZ, logWn)
	hNew := s.informationGain(logWn, logLw, logZNew)

	s.posterior = append(s.posterior, PosteriorEntry{
		Theta:     append([]float64(nil), s.live[worst].Theta...),
		LogL:      logLw,
		LogWeight: logWn,
	})
	logLStar := logLw

	if s.shouldRebuildEllipsoids() {
		set, buildErr := s.rebuildEllipsoidSet(false)
		if buildErr == nil {
			s.set = set
		}
		s.lastClusterIter = s.iteration
		s.state = Clustering
	}
	s.state = Running

	theta, logL, drawErr := s.set.DrawConstrained(logLStar, s.cfg.MaxNdrawAttempts, s.stream, s.prior, s.likelihood)
	if drawErr != nil {
		nsmc.LogWarning("sampler.step: draw attempts exhausted at iteration %d, falling back to reduction", s.iteration)
	}

	snapshot := reducer.State{
		LogZ:              s.logZ,
		LogWidth:          s.logWidth,
		NLive:             len(s.live),
		NLiveMin:          s.cfg.MinNobjects,
		Iteration:         s.iteration,
		TerminationFactor: s.cfg.TerminationFactor,
		LogRemainingZ:     s.logRemainingEvidence(),
	}
	removal := s.reducer.NextRemoval(snapshot)
	if drawErr != nil && removal < 1 {
		removal = 1
	}
	if removal > len(s.live)-s.cfg.MinNobjects {
		removal = len(s.live) - s.cfg.MinNobjects
	}

	switch {
	case removal >= 1:
		s.live = append(s.live[:worst], s.live[worst+1:]...)
	case drawErr != nil:
		// removal capped to 0 by the floor above, yet the draw that would
		// have supplied the replacement failed: spec.md §7 escalates
		// DRAW_ATTEMPTS_EXHAUSTED to fatal only when reduction is at its floor.
		return false, drawErr
	default:
		s.live[worst] = livePoint{Theta: theta, LogL: logL}
	}

	nLiveCurrent := len(s.live)
	s.logWidth -= 1 / float64(nLiveCurrent)
	s.logZ = logZNew
	s.h = hNew
	s.iteration++

	s.history = append(s.history, IterationRecord{
		Iteration: s.iteration,
		LogZ:      s.logZ,
		LogWidth:  s.logWidth,
		LogLStar:  logLStar,
		NLive:     nLiveCurrent,
	})

	return s.terminationReached(), nil
}

// worstIndex implements spec.md §4.5 step 1: argmin log L, lowest index on
// ties (spec.md §9's pinned tie-break).
func (s *Sampler) worstIndex() int {
	worst := 0
	for i := 1; i < len(s.live); i++ {
		if s.live[i].LogL < s.live[worst].LogL {
			worst = i
		}
	}
	return worst
}

// informationGain implements spec.md §4.5 step 4, with the first-iteration
// special case from spec.md §9's open question: when log Z_old = -Inf, H is
// defined as log L_1 - log Z_new instead of evaluating the general formula
// (whose second term multiplies exp(-Inf) = 0 by H + log Z = -Inf, giving NaN).
func (s *Sampler) informationGain(logWn, logLw, logZNew float64) float64 {
	if math.IsInf(s.logZ, -1) {
		if math.IsInf(logZNew, -1) {
			// No finite evidence has accumulated yet (every live point is
			// still at log L = -Inf); information gain is not yet defined.
			return 0
		}
		h := logLw - logZNew
		if h < 0 {
			h = 0
		}
		return h
	}
	a := math.Exp(logWn-logZNew) * logLw
	b := math.Exp(s.logZ-logZNew) * (s.h + s.logZ)
	h := a + b - logZNew
	if h < 0 {
		// spec.md §4.5 step 4: "clamp to >=0 if numerical underflow
		// produces small negatives."
		h = 0
	}
	return h
}

// shouldRebuildEllipsoids implements spec.md §4.5 step 7's cadence gate.
func (s *Sampler) shouldRebuildEllipsoids() bool {
	if s.iteration < s.cfg.NinitialIterationsWithoutClustering {
		return false
	}
	return s.iteration-s.lastClusterIter >= s.cfg.NiterationsWithSameClustering
}

// rebuildEllipsoidSet clusters the current live points (forcing K=1 during
// the initial no-clustering prefix, or on outright clustering failure per
// spec.md §7 CLUSTERING_FAILED) and builds an EllipsoidalSet from the
// result.
func (s *Sampler) rebuildEllipsoidSet(forceSingle bool) (*ellipsoid.Set, error) {
	points := make([][]float64, len(s.live))
	for i, lp := range s.live {
		points[i] = lp.Theta
	}

	var result cluster.Result
	if forceSingle || s.cfg.NinitialIterationsWithoutClustering > s.iteration {
		result = singleClusterResult(points)
	} else {
		clusterInput := points
		if s.projector != nil {
			clusterInput = s.projector.Project(points)
		}
		r, err := s.clusterer.Cluster(clusterInput, s.cfg.MinNclusters, s.cfg.MaxNclusters)
		if err != nil {
			nsmc.LogWarning("sampler.rebuildEllipsoidSet: clustering failed (%v), falling back to K=1", err)
			result = singleClusterResult(points)
		} else {
			result = r
		}
	}

	policy := ellipsoid.EnlargementPolicy{
		InitialFraction: s.cfg.InitialEnlargementFraction,
		ShrinkingRate:   s.cfg.ShrinkingRate,
		NLive:           len(s.live),
		NLive0:          s.nLive0,
		Iteration:       s.iteration,
	}
	return ellipsoid.BuildSet(points, result, policy)
}

func singleClusterResult(points [][]float64) cluster.Result {
	assignments := make([]int, len(points))
	d := 0
	if len(points) > 0 {
		d = len(points[0])
	}
	center := make([]float64, d)
	for _, p := range points {
		for j, v := range p {
			center[j] += v
		}
	}
	if len(points) > 0 {
		for j := range center {
			center[j] /= float64(len(points))
		}
	}
	return cluster.Result{K: 1, Assignments: assignments, Centers: [][]float64{center}}
}

// logRemainingEvidence estimates log(max(L_live) * X_remaining), used both
// by the reducer snapshot and the termination check of spec.md §4.5 step 12.
func (s *Sampler) logRemainingEvidence() float64 {
	maxLogL := math.Inf(-1)
	for _, lp := range s.live {
		if lp.LogL > maxLogL {
			maxLogL = lp.LogL
		}
	}
	xRemaining := -float64(s.iteration) / float64(s.nLive0)
	return maxLogL + xRemaining
}

// terminationReached implements spec.md §4.5 step 12. The "N_live at floor
// and the same condition holds" disjunct is logically subsumed by the bare
// convergence check (both test the same ratio), so the two collapse to one
// comparison; N_max remains a separate hard cap.
func (s *Sampler) terminationReached() bool {
	if s.iteration >= s.cfg.NMax {
		return true
	}
	logRemaining := s.logRemainingEvidence()
	return logRemaining-s.logZ < -s.cfg.TerminationFactor
}

// finalizePosterior implements spec.md §4.5 "Post-loop": surviving live
// points are added to the posterior sample with equal weight
// X_remaining/N_live.
func (s *Sampler) finalizePosterior() {
	xRemaining := math.Exp(-float64(s.iteration) / float64(s.nLive0))
	n := len(s.live)
	if n == 0 {
		return
	}
	logWeight := math.Log(xRemaining / float64(n))
	for _, lp := range s.live {
		s.posterior = append(s.posterior, PosteriorEntry{
			Theta:     append([]float64(nil), lp.Theta...),
			LogL:      lp.LogL,
			LogWeight: logWeight + lp.LogL,
		})
	}
}

func (s *Sampler) snapshotResult() *Result {
	return &Result{
		LogZ:       s.logZ,
		LogZError:  math.Sqrt(s.h / float64(s.nLive0)),
		H:          s.h,
		Iterations: s.iteration,
		Posterior:  s.posterior,
		History:    s.history,
		FinalState: s.state,
		FinalNLive: len(s.live),
	}
}

// logSumExp is spec.md §9's mandated log-domain accumulation primitive,
// delegated to gonum/floats (the same reduction helper the teacher's
// stats package leans on for numerically stable aggregation).
func logSumExp(a, b float64) float64 {
	return floats.LogSumExp([]float64{a, b})
}
