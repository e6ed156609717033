package likelihood

// LorentzianPeak is the forward model for spec.md §8 scenario 4 (one-peak
// synthetic spectrum peak bagging): a single Lorentzian profile parameterized
// by centroid, amplitude, and linewidth (gamma).
//
//	model(nu) = amplitude * gamma^2 / ((nu-centroid)^2 + gamma^2)
type LorentzianPeak struct{}

// Eval evaluates the model at covariate nu for parameters
// theta = [centroid, amplitude, gamma].
func (LorentzianPeak) Eval(nu float64, theta []float64) float64 {
	centroid, amplitude, gamma := theta[0], theta[1], theta[2]
	d := nu - centroid
	return amplitude * gamma * gamma / (d*d + gamma*gamma)
}

// NParams is the dimensionality of LorentzianPeak's parameter vector.
func (LorentzianPeak) NParams() int { return 3 }
