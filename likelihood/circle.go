package likelihood

import "math"

// Circle implements the closed-form 2D Gaussian of spec.md §8 scenario 1:
// L(x,y) = exp(-(x^2+y^2)/2) / (2*pi), whose analytic evidence against a
// uniform [-10,10]^2 prior is log Z = -log(100).
type Circle struct{}

func (Circle) LogL(theta []float64) float64 {
	x, y := theta[0], theta[1]
	return -(x*x+y*y)/2 - math.Log(2*math.Pi)
}
