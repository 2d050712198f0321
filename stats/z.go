package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ZVal returns the two-tailed Z-value associated with a specific confidence interval.
// The interval is a number from 0 to 100 percent.
func ZVal(confidenceInterval float64) float64 {
	dist := distuv.Normal{
		Mu:    0,
		Sigma: 1,
	}
	return dist.Quantile((1 + (confidenceInterval / 100)) / 2)
}

// MarginOfError is the half-width of the confidence interval around the
// mean of d.
func MarginOfError(d Description, confidenceInterval float64) float64 {
	if d.N < 2 {
		return 0
	}
	return ZVal(confidenceInterval) * d.Stdev / math.Sqrt(float64(d.N))
}
