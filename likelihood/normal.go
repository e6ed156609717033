package likelihood

import "math"

// ForwardModel maps a covariate and parameter vector to a predicted
// observation, as consumed by Normal below.
type ForwardModel interface {
	Eval(covariate float64, theta []float64) float64
}

// Observation is one row of the three-column input table of spec.md §6
// (covariate, observation, uncertainty).
type Observation struct {
	Covariate, Value, Sigma float64
}

// Normal is the independent-Gaussian-noise likelihood of spec.md §3/§8
// scenario 4: log L(theta) = sum_i -0.5*((y_i - model(x_i,theta))/sigma_i)^2
// - log(sigma_i*sqrt(2*pi)). Used with LorentzianPeak as the forward model.
type Normal struct {
	Model        ForwardModel
	Observations []Observation
}

func (n Normal) LogL(theta []float64) float64 {
	total := 0.0
	for _, o := range n.Observations {
		resid := o.Value - n.Model.Eval(o.Covariate, theta)
		z := resid / o.Sigma
		total += -0.5*z*z - math.Log(o.Sigma*math.Sqrt(2*math.Pi))
	}
	return total
}

// MeanNormal aggregates all residuals into a single Gaussian term instead of
// summing one term per observation — the "mean-normal" likelihood kind
// named in spec.md §1's scope list, useful when observations should be
// treated as repeated measurements of one quantity rather than a spectrum.
type MeanNormal struct {
	Model        ForwardModel
	Observations []Observation
}

func (m MeanNormal) LogL(theta []float64) float64 {
	if len(m.Observations) == 0 {
		return 0
	}
	meanResid, meanSigma := 0.0, 0.0
	for _, o := range m.Observations {
		meanResid += o.Value - m.Model.Eval(o.Covariate, theta)
		meanSigma += o.Sigma
	}
	n := float64(len(m.Observations))
	meanResid /= n
	meanSigma /= n
	z := meanResid / meanSigma
	return -0.5*z*z - math.Log(meanSigma*math.Sqrt(2*math.Pi))
}
