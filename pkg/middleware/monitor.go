package middleware

import (
	"go.uber.org/zap"

	"github.com/peter-kozarec/riskblend/pkg/tools/metrics"
	"github.com/peter-kozarec/riskblend/pkg/transport/ws"
)

type MonitorFlags uint16

//goland:noinspection GoUnusedConst
const (
	MonitorNone MonitorFlags = 1 << iota
	MonitorAll
	MonitorSharpe
	MonitorBlend
	MonitorErrors
	MonitorDegenerate
)

// Monitor logs the requests selected by its flags.
type Monitor struct {
	logger *zap.Logger
	flags  MonitorFlags
}

func NewMonitor(logger *zap.Logger, flags MonitorFlags) *Monitor {
	return &Monitor{
		logger: logger,
		flags:  flags,
	}
}

func (m *Monitor) WithScore(handler ws.HandlerFunc) ws.HandlerFunc {
	return func(req ws.Request) ws.Response {
		resp := handler(req)
		if m.selected(resp) {
			m.logger.Info("score",
				zap.String("id", resp.ID),
				zap.String("op", resp.Op),
				zap.Int("observations", len(req.Returns)),
				zap.String("sharpe_ratio", metrics.FormatFloat(resp.SharpeRatio, metrics.ReportScale)),
				zap.String("updated_risk_score", metrics.FormatFloat(resp.UpdatedRiskScore, metrics.ReportScale)),
				zap.String("error", resp.Error))
		}
		return resp
	}
}

func (m *Monitor) selected(resp ws.Response) bool {
	switch {
	case m.flags&MonitorAll != 0:
		return true
	case resp.Error != "":
		return m.flags&MonitorErrors != 0
	case m.flags&MonitorDegenerate != 0 && isDegenerate(resp.SharpeRatio):
		return true
	case resp.Op == ws.OpSharpe:
		return m.flags&MonitorSharpe != 0
	case resp.Op == ws.OpBlend:
		return m.flags&MonitorBlend != 0
	}
	return false
}
