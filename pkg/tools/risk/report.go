package risk

import (
	"go.uber.org/zap"

	"github.com/peter-kozarec/riskblend/pkg/tools/metrics"
)

// ScoreReport extends the Sharpe report of one run with the blended score.
type ScoreReport struct {
	metrics.Report

	ExistingRiskScore float64
	SharpeRatioWeight float64
	UpdatedRiskScore  float64
}

func NewScoreReport(returns []float64, existingRiskScore, sharpeRatioWeight float64) ScoreReport {
	return ScoreReport{
		Report:            metrics.NewReport(returns, metrics.DefaultRiskFreeRate),
		ExistingRiskScore: existingRiskScore,
		SharpeRatioWeight: sharpeRatioWeight,
		UpdatedRiskScore:  BlendScore(returns, existingRiskScore, sharpeRatioWeight),
	}
}

func (r ScoreReport) Print(logger *zap.Logger) {
	if r.SharpeRatioWeight < 0 || r.SharpeRatioWeight > 1 {
		logger.Warn("sharpe ratio weight outside [0, 1], blend extrapolates",
			zap.Float64("sharpe_ratio_weight", r.SharpeRatioWeight))
	}
	r.Report.Print(logger)
	logger.Info("risk score updated",
		zap.String("run_id", r.RunID.String()),
		zap.String("existing_risk_score", metrics.FormatFloat(r.ExistingRiskScore, metrics.ReportScale)),
		zap.String("sharpe_ratio_weight", metrics.FormatFloat(r.SharpeRatioWeight, metrics.ReportScale)),
		zap.String("updated_risk_score", metrics.FormatFloat(r.UpdatedRiskScore, metrics.ReportScale)))
}
