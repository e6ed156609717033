package cluster

import "nsmc"

const kmeansMaxIterations = 100

// lloyd runs a fixed-iteration-budget Lloyd's algorithm: repeatedly assign
// each point to its nearest center, then recompute centers as the mean of
// their assigned points. Centers are seeded from k distinct points chosen
// via a random permutation (k-means++ style seeding is not implemented, and
// XMeans in xmeans.go runs this once per candidate k, without restarts).
func lloyd(points [][]float64, k int, metric Metric, s *nsmc.Stream) (assignments []int, centers [][]float64) {
	n := len(points)
	d := len(points[0])

	perm := s.Perm(n)
	centers = make([][]float64, k)
	for i := 0; i < k; i++ {
		src := points[perm[i%n]]
		c := make([]float64, d)
		copy(c, src)
		centers[i] = c
	}

	assignments = make([]int, n)
	for iter := 0; iter < kmeansMaxIterations; iter++ {
		changed := false
		for i, p := range points {
			best, bestDist := 0, metric.Distance(p, centers[0])
			for c := 1; c < k; c++ {
				dist := metric.Distance(p, centers[c])
				if dist < bestDist {
					best, bestDist = c, dist
				}
			}
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}

		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := 0; c < k; c++ {
			sums[c] = make([]float64, d)
		}
		for i, p := range points {
			c := assignments[i]
			counts[c]++
			for j := 0; j < d; j++ {
				sums[c][j] += p[j]
			}
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				continue // keep previous center; an empty cluster is dropped by the caller
			}
			for j := 0; j < d; j++ {
				centers[c][j] = sums[c][j] / float64(counts[c])
			}
		}

		if !changed {
			break
		}
	}
	return assignments, centers
}
