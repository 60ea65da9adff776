// Package scoring holds the pure rating, progression and affinity math. It
// performs no I/O and never mutates its inputs.
package scoring

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Stats aggregates a rating history.
type Stats struct {
	Average float64
	Matches int
	StdDev  float64
}

// Average is the arithmetic mean, 0 for an empty history.
func Average(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// StdDev is the population standard deviation, 0 below two samples.
func StdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return math.Sqrt(stat.PopVariance(xs, nil))
}

// ComputeStats summarizes a rating history; an empty history is all zeros.
func ComputeStats(xs []float64) Stats {
	return Stats{
		Average: Average(xs),
		Matches: len(xs),
		StdDev:  StdDev(xs),
	}
}
