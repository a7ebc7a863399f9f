package risk

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/peter-kozarec/riskblend/pkg/tools/metrics"
)

func TestRisk_NewScoreReport(t *testing.T) {
	report := NewScoreReport(finiteReturns, 2, DefaultSharpeRatioWeight)

	if report.RiskFreeRate != metrics.DefaultRiskFreeRate {
		t.Errorf("Expected risk free rate %v, got %v", metrics.DefaultRiskFreeRate, report.RiskFreeRate)
	}
	if report.SharpeRatio != metrics.SharpeRatio(finiteReturns, metrics.DefaultRiskFreeRate) {
		t.Errorf("Report sharpe %v differs from SharpeRatio", report.SharpeRatio)
	}
	if report.UpdatedRiskScore != BlendScore(finiteReturns, 2, DefaultSharpeRatioWeight) {
		t.Errorf("Report score %v differs from BlendScore", report.UpdatedRiskScore)
	}
}

func TestRisk_ScoreReportPrint(t *testing.T) {
	tests := []struct {
		name     string
		weight   float64
		warnings int
		want     string
	}{
		{"default weight", DefaultSharpeRatioWeight, 0, "6.01996"},
		{"extrapolated weight", 1.5, 1, "14.05988"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.InfoLevel)

			NewScoreReport(finiteReturns, 2, tt.weight).Print(zap.New(core))

			if n := logs.FilterLevelExact(zap.WarnLevel).Len(); n != tt.warnings {
				t.Errorf("Expected %d warnings, got %d", tt.warnings, n)
			}
			entries := logs.FilterMessage("risk score updated").All()
			if len(entries) != 1 {
				t.Fatalf("Expected 1 score entry, got %d", len(entries))
			}
			if got := entries[0].ContextMap()["updated_risk_score"]; got != tt.want {
				t.Errorf("Expected updated_risk_score %s, got %v", tt.want, got)
			}
		})
	}
}

func TestRisk_ScoreReportUsesReportScale(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	NewScoreReport(finiteReturns, 2, DefaultSharpeRatioWeight).Print(zap.New(core))

	entries := logs.FilterMessage("risk score updated").All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 score entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["existing_risk_score"] != "2.00000" {
		t.Errorf("Expected existing_risk_score 2.00000, got %v", fields["existing_risk_score"])
	}
	if fields["sharpe_ratio_weight"] != metrics.FormatFloat(DefaultSharpeRatioWeight, metrics.ReportScale) {
		t.Errorf("Unexpected sharpe_ratio_weight %v", fields["sharpe_ratio_weight"])
	}
}
