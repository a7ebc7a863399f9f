package metrics

import (
	"math"

	"go.uber.org/zap"

	"github.com/peter-kozarec/riskblend/pkg/utility"
	"github.com/peter-kozarec/riskblend/pkg/utility/series"
)

// ReportScale is the number of decimals report and monitor values are rounded to.
const ReportScale = 5

type Report struct {
	RunID                utility.RunID
	Observations         int
	RiskFreeRate         float64
	MeanExcess           float64
	StdExcess            float64
	AnnualizedVolatility float64
	SharpeRatio          float64
}

func NewReport(returns []float64, riskFreeRate float64) Report {
	excess := series.Excess(returns, riskFreeRate)
	mean := series.Mean(excess)
	std := series.SampleStdDev(excess, mean)

	return Report{
		RunID:                utility.GetRunID(),
		Observations:         len(returns),
		RiskFreeRate:         riskFreeRate,
		MeanExcess:           mean,
		StdExcess:            std,
		AnnualizedVolatility: std * math.Sqrt(TradingDaysPerYear),
		SharpeRatio:          SharpeRatio(returns, riskFreeRate),
	}
}

func (r Report) Fields() []zap.Field {
	return []zap.Field{
		zap.String("run_id", r.RunID.String()),
		zap.Int("observations", r.Observations),
		zap.String("risk_free_rate", FormatFloat(r.RiskFreeRate, ReportScale)),
		zap.String("mean_excess", FormatFloat(r.MeanExcess, ReportScale)),
		zap.String("std_excess", FormatFloat(r.StdExcess, ReportScale)),
		zap.String("annualized_volatility", FormatFloat(r.AnnualizedVolatility, ReportScale)),
		zap.String("sharpe_ratio", FormatFloat(r.SharpeRatio, ReportScale)),
	}
}

func (r Report) Print(logger *zap.Logger) {
	if r.Observations < 2 {
		logger.Warn("too few returns for a sample deviation", zap.Int("observations", r.Observations))
	}
	logger.Info("sharpe report", r.Fields()...)
}
