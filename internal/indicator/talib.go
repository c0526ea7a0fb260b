package indicator

import (
	"fmt"

	talib "github.com/markcheno/go-talib"
)

// classicRSI is the textbook Wilder RSI on absolute price differences.
// TA-Lib emits its first value at index window and reports 0 whenever
// avgGain+avgLoss drops below its 1e-14 epsilon. That happens on the leading
// all-flat stretch, which follows the flat-price policy, and again after a
// long run of unchanged closes decays both averages. An unchanged close
// leaves the gain/loss ratio as it was, so the previous value carries over.
func classicRSI(prices []float64, window int, flat FlatPolicy) ([]float64, error) {
	if window < 2 {
		return nil, fmt.Errorf("%w: absolute method needs window >= 2, got %d", ErrInvalidInput, window)
	}
	raw := talib.Rsi(prices, window)
	out := make([]float64, len(prices)-window)
	copy(out, raw[window:])

	flatUntil := 0
	for flatUntil+1 < len(prices) && prices[flatUntil+1] == prices[0] {
		flatUntil++
	}
	for i := range out {
		bar := window + i
		if bar <= flatUntil {
			if flat == FlatUndefined {
				return nil, fmt.Errorf("bar %d: %w", bar, ErrUndefined)
			}
			out[i] = Neutral
			continue
		}
		if out[i] == 0 && i > 0 && prices[bar] == prices[bar-1] {
			out[i] = out[i-1]
			continue
		}
		out[i] = clamp(out[i])
	}
	return out, nil
}
