package reducer

import "math"

// Powerlaw implements spec.md §4.3's PowerlawReducer: removal only begins
// once the estimated remaining-evidence ratio drops below TerminationFactor,
// and once it does, the removal count grows as Tolerance * n^Exponent.
type Powerlaw struct {
	Exponent  float64
	Tolerance float64
}

func NewPowerlaw() Powerlaw { return Powerlaw{Exponent: 1.0, Tolerance: 0.01} }

func (p Powerlaw) NextRemoval(s State) int {
	if s.NLive <= s.NLiveMin {
		return 0
	}
	logRatio := s.LogRemainingZ - s.LogZ
	if math.IsNaN(logRatio) || logRatio >= s.TerminationFactor {
		// NaN arises from -Inf - (-Inf) before any evidence has accumulated
		// (e.g. every live point still at log L = -Inf); withhold until the
		// ratio is well-defined rather than risk an undefined float->int
		// conversion downstream.
		return 0
	}
	count := p.Tolerance * math.Pow(float64(s.Iteration), p.Exponent)
	n := int(math.Floor(count))
	if n < 1 {
		n = 1
	}
	if s.NLive-n < s.NLiveMin {
		n = s.NLive - s.NLiveMin
	}
	return n
}
