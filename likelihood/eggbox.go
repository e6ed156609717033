package likelihood

import "math"

// Eggbox implements the classic multi-modal test likelihood of spec.md §8
// scenario 2: log L(x,y) = (2 + cos(x/2)*cos(y/2))^5, on a uniform
// [0,10*pi]^2 prior. Its 18 well-separated modes exercise the
// multi-ellipsoidal clustering machinery.
type Eggbox struct{}

func (Eggbox) LogL(theta []float64) float64 {
	x, y := theta[0], theta[1]
	base := 2 + math.Cos(x/2)*math.Cos(y/2)
	return math.Pow(base, 5)
}
