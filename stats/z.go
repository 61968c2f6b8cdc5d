package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ZVal returns the two-tailed Z-value for a confidence level given in
// percent, e.g. 95 gives about 1.96.
func ZVal(confidence float64) float64 {
	dist := distuv.UnitNormal
	return dist.Quantile((1 + confidence/100) / 2)
}

// Proportion is a binomial tally, such as wins out of games played.
type Proportion struct {
	Hits  int
	Total int
}

func (p Proportion) Value() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Hits) / float64(p.Total)
}

// Margin returns the normal-approximation half-width of the confidence
// interval around Value.
func (p Proportion) Margin(confidence float64) float64 {
	if p.Total == 0 {
		return 0
	}
	v := p.Value()
	return ZVal(confidence) * math.Sqrt(v*(1-v)/float64(p.Total))
}
