// Package indicator computes the Relative Strength Index over a closing price
// series using Wilder's smoothed moving average.
//
// All functions are pure: the input slice is never modified and no state is
// shared between calls, so they are safe to call concurrently.
package indicator

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInsufficientData is returned when the series is shorter than window+1.
	ErrInsufficientData = errors.New("indicator: insufficient data")
	// ErrInvalidInput is returned for a non-positive window or a price that is
	// not a positive finite number.
	ErrInvalidInput = errors.New("indicator: invalid input")
	// ErrUndefined is returned for a flat series when Options.Flat is FlatUndefined.
	ErrUndefined = errors.New("indicator: rsi undefined for flat prices")
)

// Neutral is the RSI reported when average gain and average loss are both zero.
const Neutral = 50.0

// Method selects how a bar-to-bar change is measured.
type Method int

const (
	// MethodPercent measures each change as a percentage of the previous close.
	MethodPercent Method = iota
	// MethodAbsolute measures each change as a price difference (classic Wilder).
	MethodAbsolute
)

func (m Method) String() string {
	switch m {
	case MethodPercent:
		return "percent"
	case MethodAbsolute:
		return "absolute"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// ParseMethod maps a config value to a Method. Empty means MethodPercent.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "percent", "pct":
		return MethodPercent, nil
	case "absolute", "abs", "classic":
		return MethodAbsolute, nil
	default:
		return 0, fmt.Errorf("%w: unknown rsi method %q", ErrInvalidInput, s)
	}
}

// FlatPolicy decides what a 0/0 average ratio produces.
type FlatPolicy int

const (
	// FlatNeutral reports Neutral.
	FlatNeutral FlatPolicy = iota
	// FlatUndefined fails with ErrUndefined.
	FlatUndefined
)

// Options tunes Compute. The zero value is the percentage method with the
// neutral flat-price policy.
type Options struct {
	Method Method
	Flat   FlatPolicy
}

// ComputeRSI returns the percentage-change RSI series for prices (oldest
// first) with the neutral flat-price policy. The result holds
// len(prices)-window values, oldest first.
func ComputeRSI(prices []float64, window int) ([]float64, error) {
	return Compute(prices, window, Options{})
}

// ComputeRSIWith is ComputeRSI with an explicit flat-price policy.
func ComputeRSIWith(prices []float64, window int, flat FlatPolicy) ([]float64, error) {
	return Compute(prices, window, Options{Flat: flat})
}

// Compute dispatches on opts.Method.
func Compute(prices []float64, window int, opts Options) ([]float64, error) {
	if err := validate(prices, window); err != nil {
		return nil, err
	}
	switch opts.Method {
	case MethodPercent:
		return percentRSI(prices, window, opts.Flat)
	case MethodAbsolute:
		return classicRSI(prices, window, opts.Flat)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, opts.Method)
	}
}

// Latest returns the newest value of an RSI series.
func Latest(series []float64) (float64, bool) {
	if len(series) == 0 {
		return 0, false
	}
	return series[len(series)-1], true
}

func validate(prices []float64, window int) error {
	if window < 1 {
		return fmt.Errorf("%w: window must be >= 1, got %d", ErrInvalidInput, window)
	}
	if len(prices) < window+1 {
		return fmt.Errorf("%w: window %d needs %d prices, got %d", ErrInsufficientData, window, window+1, len(prices))
	}
	for i, p := range prices {
		if math.IsNaN(p) || math.IsInf(p, 0) || p <= 0 {
			return fmt.Errorf("%w: price[%d]=%v", ErrInvalidInput, i, p)
		}
	}
	return nil
}

func percentRSI(prices []float64, window int, flat FlatPolicy) ([]float64, error) {
	n := float64(window)
	out := make([]float64, 0, len(prices)-window)

	var gains, losses float64
	for i := 1; i <= window; i++ {
		g, l := split(percentChange(prices[i-1], prices[i]))
		gains += g
		losses += l
	}
	avgGain, avgLoss := gains/n, losses/n
	v, err := rsiFromAverages(avgGain, avgLoss, flat)
	if err != nil {
		return nil, fmt.Errorf("bar %d: %w", window, err)
	}
	out = append(out, v)

	for i := window + 1; i < len(prices); i++ {
		g, l := split(percentChange(prices[i-1], prices[i]))
		avgGain = (avgGain*(n-1) + g) / n
		avgLoss = (avgLoss*(n-1) + l) / n
		v, err := rsiFromAverages(avgGain, avgLoss, flat)
		if err != nil {
			return nil, fmt.Errorf("bar %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func percentChange(prev, cur float64) float64 {
	return 100*(cur/prev) - 100
}

func split(change float64) (gain, loss float64) {
	if change > 0 {
		return change, 0
	}
	return 0, -change
}

// rsiFromAverages maps Wilder averages to a value in [0,100].
func rsiFromAverages(avgGain, avgLoss float64, flat FlatPolicy) (float64, error) {
	switch {
	case avgGain == 0 && avgLoss == 0:
		if flat == FlatUndefined {
			return 0, ErrUndefined
		}
		return Neutral, nil
	case avgLoss == 0:
		return 100, nil
	}
	rsi := 100 - 100/(1+avgGain/avgLoss)
	return clamp(rsi), nil
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
