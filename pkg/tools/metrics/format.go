package metrics

import (
	"math"
	"strconv"

	"github.com/govalues/decimal"
)

// FormatFloat renders v with a fixed number of decimal places. Values the
// decimal type cannot hold (NaN, infinities, very large magnitudes) fall back
// to their float spelling.
func FormatFloat(v float64, scale int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}

	d, err := decimal.NewFromFloat64(v)
	if err != nil {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return d.Rescale(scale).String()
}
