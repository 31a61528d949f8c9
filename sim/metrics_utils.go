// sim/metrics_utils.go
package sim

import (
	"math"
	"sort"
)

// Distribution captures statistical summary of a metric.
type Distribution struct {
	Mean  float64 `yaml:"mean"`
	P50   float64 `yaml:"p50"`
	P95   float64 `yaml:"p95"`
	P99   float64 `yaml:"p99"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Count int     `yaml:"count"`
}

// NewDistribution computes a Distribution from raw values.
// Returns zero-value Distribution for empty input.
func NewDistribution(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return Distribution{
		Mean:  CalculateMean(sorted),
		P50:   CalculatePercentile(sorted, 50),
		P95:   CalculatePercentile(sorted, 95),
		P99:   CalculatePercentile(sorted, 99),
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
		Count: len(sorted),
	}
}

type IntOrFloat64 interface {
	int | int64 | float64
}

// CalculatePercentile computes the p-th percentile using linear interpolation.
// Input must be sorted.
func CalculatePercentile[T IntOrFloat64](sorted []T, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return float64(sorted[0])
	}
	rank := p / 100.0 * float64(n-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return float64(sorted[lower])
	}
	frac := rank - float64(lower)
	return float64(sorted[lower]) + frac*float64(sorted[upper]-sorted[lower])
}

// CalculateMean is a util function that calculates the mean of a data list.
func CalculateMean[T IntOrFloat64](numbers []T) float64 {
	if len(numbers) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, number := range numbers {
		sum += float64(number)
	}

	return sum / float64(len(numbers))
}
