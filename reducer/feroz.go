package reducer

import "math"

// Feroz implements spec.md §4.3's FerozReducer: "removal proportional to
// expected remaining evidence." The remaining-evidence ratio
// exp(LogRemainingZ - LogZ) estimates how much of the total evidence is
// still outstanding; Feroz scales the live-point count down in proportion
// to how small that ratio has become, at rate Rate per iteration.
type Feroz struct {
	Rate float64
}

func NewFeroz() Feroz { return Feroz{Rate: 0.02} }

func (f Feroz) NextRemoval(s State) int {
	if s.NLive <= s.NLiveMin {
		return 0
	}
	logRatio := s.LogRemainingZ - s.LogZ
	if math.IsNaN(logRatio) || logRatio >= s.TerminationFactor {
		// NaN arises from -Inf - (-Inf) before any evidence has accumulated;
		// withhold until the ratio is well-defined.
		return 0
	}
	ratio := math.Exp(clampToZero(logRatio))
	// As the remaining-evidence ratio shrinks toward 0, (1-ratio) grows
	// toward 1 and the removal fraction saturates at Rate.
	fraction := f.Rate * (1 - ratio)
	n := int(math.Floor(fraction * float64(s.NLive)))
	if n < 1 {
		n = 1
	}
	if s.NLive-n < s.NLiveMin {
		n = s.NLive - s.NLiveMin
	}
	return n
}

func clampToZero(x float64) float64 {
	if x > 0 {
		return 0
	}
	return x
}
