package ellipsoid

import (
	"math"

	"nsmc"
	"nsmc/cluster"
)

// PriorSupport is the slice of the Prior plug-in contract (spec.md §6) that
// constrained sampling needs: density plus its supremum for accept-reject
// weighting. Defined structurally here (rather than importing package
// prior) so the ellipsoid package stays a leaf of the plug-in graph; any
// *prior.Joint already satisfies this.
type PriorSupport interface {
	LogPdf(theta []float64) float64
	MaxLogPdf() float64
}

// LikelihoodFunc is the slice of the Likelihood contract constrained
// sampling needs. Any likelihood.Likelihood already satisfies this.
type LikelihoodFunc interface {
	LogL(theta []float64) float64
}

// member records, for overlap accounting, which ellipsoid a live point was
// assigned to by the clusterer.
type member struct {
	point     []float64
	ellipsoid int
}

// Set is the EllipsoidalSet of spec.md §3/§4.4: an ordered sequence of
// enlarged ellipsoids built from clustered live points, with per-ellipsoid
// volume and overlap-count bookkeeping, supporting a uniform draw from
// their union and a constrained (likelihood-floor) draw.
type Set struct {
	Ellipsoids []*Ellipsoid
	members    []member
	logVolumes []float64 // log V_k, same order as Ellipsoids
	effLogVols []float64 // log(V_k/(1+n_k)); not read by DrawUniform, which weights by logVolumes
}

// EnlargementPolicy carries the parameters of spec.md §4.4's enlargement
// formula: f_k = f0 * (X_remaining)^s * sqrt(N_live/m_k).
type EnlargementPolicy struct {
	InitialFraction float64 // f0
	ShrinkingRate   float64 // s
	NLive           int     // current live-point count
	NLive0          int     // initial live-point count
	Iteration       int     // n
}

func (p EnlargementPolicy) xRemaining() float64 {
	return math.Exp(-float64(p.Iteration) / float64(p.NLive0))
}

func (p EnlargementPolicy) factor(mk int) float64 {
	if mk <= 0 {
		mk = 1
	}
	return p.InitialFraction * math.Pow(p.xRemaining(), p.ShrinkingRate) * math.Sqrt(float64(p.NLive)/float64(mk))
}

// minClusterSize is "fewer than D+1 members" from spec.md §4.2.
func minClusterSize(d int) int { return d + 1 }

// BuildSet partitions livePoints per the clusterer's Result, merging or
// dropping undersized clusters (spec.md §4.2's tolerance contract), builds
// one enlarged Ellipsoid per surviving cluster, and computes overlap
// accounting (spec.md §4.4).
func BuildSet(livePoints [][]float64, result cluster.Result, policy EnlargementPolicy) (*Set, error) {
	n := len(livePoints)
	if n == 0 {
		return nil, nsmc.NewError(nsmc.ErrNumericalDegeneracy, "ellipsoid.BuildSet", nil)
	}
	d := len(livePoints[0])
	minSize := minClusterSize(d)

	groups := regroup(livePoints, result.Assignments, result.K, minSize)

	set := &Set{}
	for _, g := range groups {
		f := policy.factor(len(g))
		e, err := Build(pointsOf(g), f)
		if err != nil {
			return nil, err
		}
		if e.Degenerate {
			nsmc.LogWarning("ellipsoid.BuildSet: dropping degenerate ellipsoid built from %d points", len(g))
			continue
		}
		idx := len(set.Ellipsoids)
		set.Ellipsoids = append(set.Ellipsoids, e)
		for _, p := range g {
			set.members = append(set.members, member{point: p, ellipsoid: idx})
		}
	}

	if len(set.Ellipsoids) == 0 {
		// Every cluster degenerated; fall back to one ellipsoid over all
		// live points so the "every live point in >=1 ellipsoid" invariant
		// (spec.md §3) still has a chance to hold.
		e, err := Build(livePoints, policy.factor(n))
		if err != nil {
			return nil, err
		}
		set.Ellipsoids = []*Ellipsoid{e}
		for _, p := range livePoints {
			set.members = append(set.members, member{point: p, ellipsoid: 0})
		}
	}

	set.computeVolumesAndOverlap()
	return set, nil
}

func pointsOf(g [][]float64) [][]float64 { return g }

// regroup assigns each point to its cluster, folding undersized clusters
// into their nearest eligible neighbor by center distance, or into one
// another if none is eligible.
func regroup(points [][]float64, assignments []int, k, minSize int) [][][]float64 {
	groups := make([][][]float64, k)
	for i, p := range points {
		c := assignments[i]
		groups[c] = append(groups[c], p)
	}

	eligible := make([]bool, k)
	for c, g := range groups {
		eligible[c] = len(g) >= minSize
	}

	anyEligible := false
	for _, e := range eligible {
		if e {
			anyEligible = true
			break
		}
	}
	if !anyEligible {
		// Nothing meets the size floor: everything collapses to one group.
		var all [][]float64
		for _, g := range groups {
			all = append(all, g...)
		}
		return [][][]float64{all}
	}

	centers := make([][]float64, k)
	for c, g := range groups {
		centers[c] = mean(g)
	}

	out := make([][][]float64, 0, k)
	keepIndex := make(map[int]int)
	for c, g := range groups {
		if eligible[c] {
			keepIndex[c] = len(out)
			out = append(out, g)
		}
	}
	for c, g := range groups {
		if eligible[c] || len(g) == 0 {
			continue
		}
		nearest := nearestEligible(centers[c], centers, eligible)
		dst := keepIndex[nearest]
		out[dst] = append(out[dst], g...)
	}
	return out
}

func mean(points [][]float64) []float64 {
	if len(points) == 0 {
		return nil
	}
	d := len(points[0])
	m := make([]float64, d)
	for _, p := range points {
		for j := 0; j < d; j++ {
			m[j] += p[j]
		}
	}
	for j := range m {
		m[j] /= float64(len(points))
	}
	return m
}

func nearestEligible(from []float64, centers [][]float64, eligible []bool) int {
	best, bestDist := -1, math.Inf(1)
	for c, center := range centers {
		if !eligible[c] || center == nil {
			continue
		}
		dist := 0.0
		for j := range from {
			diff := from[j] - center[j]
			dist += diff * diff
		}
		if dist < bestDist {
			best, bestDist = c, dist
		}
	}
	return best
}

// computeVolumesAndOverlap fills logVolumes and effLogVols per spec.md §4.4:
// "for each point currently assigned to ellipsoid k, count how many other
// ellipsoids also contain it; let n_k be the average."
func (s *Set) computeVolumesAndOverlap() {
	k := len(s.Ellipsoids)
	s.logVolumes = make([]float64, k)
	for i, e := range s.Ellipsoids {
		s.logVolumes[i] = e.LogVolume()
	}

	overlapSum := make([]float64, k)
	memberCount := make([]int, k)
	for _, m := range s.members {
		memberCount[m.ellipsoid]++
		other := 0
		for j, e := range s.Ellipsoids {
			if j == m.ellipsoid {
				continue
			}
			if e.Contains(m.point) {
				other++
			}
		}
		overlapSum[m.ellipsoid] += float64(other)
	}

	s.effLogVols = make([]float64, k)
	for i := range s.Ellipsoids {
		nk := 0.0
		if memberCount[i] > 0 {
			nk = overlapSum[i] / float64(memberCount[i])
		}
		s.effLogVols[i] = s.logVolumes[i] - math.Log1p(nk)
	}
}

// Contains reports whether theta lies in at least one ellipsoid of the set
// (the spec.md §3 live-point invariant).
func (s *Set) Contains(theta []float64) bool {
	for _, e := range s.Ellipsoids {
		if e.Contains(theta) {
			return true
		}
	}
	return false
}

// membershipCount is q in spec.md §4.4 step 3: the number of ellipsoids
// (including e itself) that contain p.
func (s *Set) membershipCount(p []float64) int {
	q := 0
	for _, e := range s.Ellipsoids {
		if e.Contains(p) {
			q++
		}
	}
	return q
}

// DrawUniform implements spec.md §4.4's uniform union draw: pick an
// ellipsoid with probability proportional to its volume, draw uniformly
// from it, then accept with probability 1/q (q = number of ellipsoids
// containing the draw) to compensate for overlap via inclusion-exclusion.
func (s *Set) DrawUniform(stream *nsmc.Stream) []float64 {
	weights := softmax(s.logVolumes)
	for {
		k := sampleDiscrete(weights, stream)
		p := s.Ellipsoids[k].DrawUniform(stream)
		q := s.membershipCount(p)
		if q <= 1 || stream.Float64() < 1.0/float64(q) {
			return p
		}
	}
}

func softmax(logWeights []float64) []float64 {
	maxLW := math.Inf(-1)
	for _, lw := range logWeights {
		if lw > maxLW {
			maxLW = lw
		}
	}
	weights := make([]float64, len(logWeights))
	sum := 0.0
	for i, lw := range logWeights {
		weights[i] = math.Exp(lw - maxLW)
		sum += weights[i]
	}
	for i := range weights {
		weights[i] /= sum
	}
	return weights
}

func sampleDiscrete(weights []float64, stream *nsmc.Stream) int {
	u := stream.Float64()
	cum := 0.0
	for i, w := range weights {
		cum += w
		if u <= cum {
			return i
		}
	}
	return len(weights) - 1
}

// DrawConstrained implements spec.md §4.4's constrained sampling contract:
// draw from the union, reject outside prior support, accept-reject against
// pi(p)/pi_max, evaluate the likelihood, and accept once log L(p) > logLStar.
// Returns ErrDrawAttemptsExhausted after maxAttempts rejections.
func (s *Set) DrawConstrained(logLStar float64, maxAttempts int, stream *nsmc.Stream, pr PriorSupport, like LikelihoodFunc) (theta []float64, logL float64, err error) {
	priorMax := pr.MaxLogPdf()
	for attempt := 0; attempt < maxAttempts; attempt++ {
		p := s.DrawUniform(stream)
		logPi := pr.LogPdf(p)
		if math.IsInf(logPi, -1) {
			continue
		}
		if stream.Float64() >= math.Exp(logPi-priorMax) {
			continue
		}
		ll := like.LogL(p)
		if ll > logLStar {
			return p, ll, nil
		}
	}
	return nil, 0, nsmc.NewError(nsmc.ErrDrawAttemptsExhausted, "ellipsoid.Set.DrawConstrained", nil)
}
