package metrics

import (
	"math"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/peter-kozarec/riskblend/pkg/utility"
)

func TestMetrics_FormatFloat(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		scale int
		want  string
	}{
		{"sharpe value", 10.039920318408905, 5, "10.03992"},
		{"padded", 0.5, 2, "0.50"},
		{"rounded", 1.23456, 2, "1.23"},
		{"negative", -23.158930739360557, 3, "-23.159"},
		{"NaN", math.NaN(), 5, "NaN"},
		{"positive infinity", math.Inf(1), 5, "+Inf"},
		{"negative infinity", math.Inf(-1), 5, "-Inf"},
		{"beyond decimal range", 1e30, 5, "1e+30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatFloat(tt.value, tt.scale); got != tt.want {
				t.Errorf("FormatFloat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMetrics_NewReport(t *testing.T) {
	returns := []float64{0.01, 0.02, 0.03, 0.04, 0.05}
	report := NewReport(returns, DefaultRiskFreeRate)

	if report.RunID != utility.GetRunID() {
		t.Errorf("Expected run id %v, got %v", utility.GetRunID(), report.RunID)
	}
	if report.Observations != 5 {
		t.Errorf("Expected 5 observations, got %d", report.Observations)
	}
	if report.SharpeRatio != SharpeRatio(returns, DefaultRiskFreeRate) {
		t.Errorf("Report sharpe %v differs from SharpeRatio", report.SharpeRatio)
	}
	if math.Abs(report.MeanExcess-0.01) > 1e-12 {
		t.Errorf("Expected mean excess 0.01, got %v", report.MeanExcess)
	}
	if math.Abs(report.StdExcess-math.Sqrt(0.001/4)) > 1e-12 {
		t.Errorf("Expected std excess %v, got %v", math.Sqrt(0.001/4), report.StdExcess)
	}
	if math.Abs(report.AnnualizedVolatility-report.StdExcess*math.Sqrt(252)) > 1e-12 {
		t.Errorf("Unexpected annualized volatility %v", report.AnnualizedVolatility)
	}
}

func TestMetrics_ReportPrint(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	NewReport([]float64{0.03, 0.03, 0.03}, DefaultRiskFreeRate).Print(logger)

	entries := logs.FilterMessage("sharpe report").All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 report entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["sharpe_ratio"] != "+Inf" {
		t.Errorf("Expected sharpe_ratio +Inf, got %v", fields["sharpe_ratio"])
	}
	if fields["observations"] != int64(3) {
		t.Errorf("Expected 3 observations, got %v", fields["observations"])
	}
}

func TestMetrics_ReportPrintWarnsOnShortSeries(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	NewReport([]float64{0.05}, DefaultRiskFreeRate).Print(logger)

	if n := logs.FilterLevelExact(zap.WarnLevel).Len(); n != 1 {
		t.Errorf("Expected 1 warning, got %d", n)
	}
	fields := logs.FilterMessage("sharpe report").All()[0].ContextMap()
	if fields["sharpe_ratio"] != "NaN" {
		t.Errorf("Expected sharpe_ratio NaN, got %v", fields["sharpe_ratio"])
	}
}
