package risk

import "github.com/peter-kozarec/riskblend/pkg/tools/metrics"

// DefaultSharpeRatioWeight gives the Sharpe ratio and the existing score equal say.
const DefaultSharpeRatioWeight = 0.5

// BlendScore combines an existing risk score with the annualized Sharpe ratio
// of returns:
//
//	(1 - sharpeRatioWeight) * existingRiskScore + sharpeRatioWeight * sharpe
//
// The Sharpe ratio always uses metrics.DefaultRiskFreeRate. The weight is not
// clamped, so values outside [0, 1] extrapolate. A NaN or infinite Sharpe
// ratio leaks into the result even at weight 0, since 0 * Inf is NaN.
func BlendScore(returns []float64, existingRiskScore, sharpeRatioWeight float64) float64 {
	sharpe := metrics.SharpeRatio(returns, metrics.DefaultRiskFreeRate)
	return (1-sharpeRatioWeight)*existingRiskScore + sharpeRatioWeight*sharpe
}
