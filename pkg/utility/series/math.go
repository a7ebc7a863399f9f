package series

import "math"

// Excess returns a new slice holding every value minus rate.
func Excess(values []float64, rate float64) []float64 {
	excess := make([]float64, len(values))
	for i, value := range values {
		excess[i] = value - rate
	}
	return excess
}

// Mean is the arithmetic mean. An empty slice yields NaN.
func Mean(values []float64) float64 {
	sum := 0.0
	for _, value := range values {
		sum += value
	}
	return sum / float64(len(values))
}

// SampleStdDev is the Bessel corrected (n-1) standard deviation around mean.
// A single value yields NaN because the n-1 denominator is zero.
func SampleStdDev(values []float64, mean float64) float64 {
	return math.Sqrt(sumOfSquares(values, mean) / float64(len(values)-1))
}

func sumOfSquares(values []float64, mean float64) float64 {
	sum := 0.0
	for _, value := range values {
		diff := value - mean
		sum += diff * diff
	}
	return sum
}
