// Package likelihood implements the Likelihood plug-in contract of
// spec.md §3/§6 — a pure function theta -> log L(theta), possibly -Inf —
// plus a handful of concrete likelihoods and forward models used by the
// seeded end-to-end scenarios of spec.md §8.
package likelihood

// Likelihood computes the log-likelihood of a parameter vector. Must be
// pure: identical theta must always yield an identical log L (spec.md §3).
type Likelihood interface {
	LogL(theta []float64) float64
}

// Func adapts a plain function to the Likelihood interface.
type Func func(theta []float64) float64

func (f Func) LogL(theta []float64) float64 { return f(theta) }
