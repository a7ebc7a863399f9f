package middleware

import (
	"math"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/peter-kozarec/riskblend/pkg/transport/ws"
)

// Telemetry counts scoring requests and the time spent answering them. It is
// shared by every connection, so all counters are atomic.
type Telemetry struct {
	sharpeCounter     atomic.Int64
	blendCounter      atomic.Int64
	rejectedCounter   atomic.Int64
	degenerateCounter atomic.Int64

	totalSharpeDur atomic.Int64
	totalBlendDur  atomic.Int64
}

func NewTelemetry() *Telemetry {
	return &Telemetry{}
}

func (t *Telemetry) WithScore(handler ws.HandlerFunc) ws.HandlerFunc {
	return func(req ws.Request) ws.Response {
		startTime := time.Now()
		resp := handler(req)
		elapsed := int64(time.Since(startTime))

		switch {
		case resp.Error != "":
			t.rejectedCounter.Add(1)
			return resp
		case resp.Op == ws.OpSharpe:
			t.sharpeCounter.Add(1)
			t.totalSharpeDur.Add(elapsed)
		case resp.Op == ws.OpBlend:
			t.blendCounter.Add(1)
			t.totalBlendDur.Add(elapsed)
		}

		if isDegenerate(resp.SharpeRatio) {
			t.degenerateCounter.Add(1)
		}
		return resp
	}
}

func (t *Telemetry) PrintStatistics(logger *zap.Logger) {
	fields := []zap.Field{
		zap.Int64("sharpe_requests", t.sharpeCounter.Load()),
		zap.Int64("blend_requests", t.blendCounter.Load()),
		zap.Int64("rejected_requests", t.rejectedCounter.Load()),
		zap.Int64("degenerate_results", t.degenerateCounter.Load()),
	}

	if n := t.sharpeCounter.Load(); n > 0 {
		fields = append(fields, zap.Duration("sharpe_avg_duration", time.Duration(t.totalSharpeDur.Load()/n)))
	}
	if n := t.blendCounter.Load(); n > 0 {
		fields = append(fields, zap.Duration("blend_avg_duration", time.Duration(t.totalBlendDur.Load()/n)))
	}

	logger.Info("scoring statistics", fields...)
}

func isDegenerate(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
