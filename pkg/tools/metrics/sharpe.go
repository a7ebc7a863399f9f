package metrics

import (
	"math"

	"github.com/peter-kozarec/riskblend/pkg/utility/series"
)

const (
	// TradingDaysPerYear annualizes a daily ratio by its square root.
	TradingDaysPerYear = 252

	// DefaultRiskFreeRate is a per-period rate, same periodicity as the returns.
	DefaultRiskFreeRate = 0.02
)

// SharpeRatio computes the annualized Sharpe ratio of daily returns:
//
//	sqrt(252) * mean(returns - riskFreeRate) / stdev(returns - riskFreeRate)
//
// The deviation is Bessel corrected (n-1). Nothing is guarded: a single
// return yields NaN and a constant series divides by zero following IEEE 754.
func SharpeRatio(returns []float64, riskFreeRate float64) float64 {
	excess := series.Excess(returns, riskFreeRate)
	mean := series.Mean(excess)
	volatility := series.SampleStdDev(excess, mean)
	return math.Sqrt(TradingDaysPerYear) * mean / volatility
}
