package chance

import (
	"math"
	"sort"
)

// Stats summarizes an integer sample, e.g. rounds per game.
type Stats struct {
	Count  int
	Mean   float64
	Var    float64
	StdDev float64
	Min    int
	Max    int
	P50    float64
	P90    float64
	P99    float64
}

// Distribution computes mean/variance/percentiles for integer samples.
func Distribution(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	// mean
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	// variance (population)
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]int(nil), xs...)
	sort.Ints(cp)

	return Stats{
		Count:  n,
		Mean:   mean,
		Var:    variance,
		StdDev: math.Sqrt(variance),
		Min:    cp[0],
		Max:    cp[n-1],
		P50:    percentile(cp, 0.50),
		P90:    percentile(cp, 0.90),
		P99:    percentile(cp, 0.99),
	}
}

// percentile interpolates linearly between closest ranks of a sorted sample.
func percentile(sorted []int, p float64) float64 {
	n := len(sorted)
	if n == 1 || p <= 0 {
		return float64(sorted[0])
	}
	if p >= 1 {
		return float64(sorted[n-1])
	}
	pos := p * float64(n-1)
	i := int(math.Floor(pos))
	f := pos - float64(i)
	if i+1 >= n {
		return float64(sorted[i])
	}
	return float64(sorted[i])*(1-f) + float64(sorted[i+1])*f
}
