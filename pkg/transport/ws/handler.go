package ws

import (
	"fmt"
	"strconv"

	"github.com/peter-kozarec/riskblend/pkg/tools/metrics"
	"github.com/peter-kozarec/riskblend/pkg/tools/risk"
	"github.com/peter-kozarec/riskblend/pkg/utility"
)

// Handle computes the response for a decoded request. Degenerate ratios are
// results, not errors; only malformed requests produce an error response.
func Handle(req Request) Response {
	resp := Response{ID: req.ID, Op: req.Op}
	if resp.ID == "" {
		resp.ID = strconv.FormatUint(utility.NewRequestID(), 10)
	}
	if req.Err != nil {
		resp.Error = req.Err.Error()
		return resp
	}

	switch req.Op {
	case OpSharpe:
		riskFreeRate := metrics.DefaultRiskFreeRate
		if req.RiskFreeRate != nil {
			riskFreeRate = *req.RiskFreeRate
		}
		resp.SharpeRatio = metrics.SharpeRatio(req.Returns, riskFreeRate)

	case OpBlend:
		if req.ExistingRiskScore == nil {
			resp.Error = fmt.Errorf("%w: %s", ErrMissingField, fieldExistingRiskScore).Error()
			return resp
		}
		if req.RiskFreeRate != nil {
			resp.Error = fmt.Errorf("%w: %s is not accepted by %s", ErrInvalidField, fieldRiskFreeRate, OpBlend).Error()
			return resp
		}
		weight := risk.DefaultSharpeRatioWeight
		if req.SharpeRatioWeight != nil {
			weight = *req.SharpeRatioWeight
		}
		resp.SharpeRatio = metrics.SharpeRatio(req.Returns, metrics.DefaultRiskFreeRate)
		resp.UpdatedRiskScore = risk.BlendScore(req.Returns, *req.ExistingRiskScore, weight)

	default:
		resp.Error = fmt.Errorf("%w: %q", ErrUnknownOperation, req.Op).Error()
	}

	return resp
}
