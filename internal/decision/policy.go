// Package decision maps an RSI reading to a trading action and builds the
// order intent handed to the execution layer. Nothing here performs I/O.
package decision

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrOutOfRange is returned for an RSI that is NaN or outside [0,100].
	ErrOutOfRange = errors.New("decision: rsi out of range")
	// ErrInvalidThresholds is returned unless 0 <= Low <= High <= 100.
	ErrInvalidThresholds = errors.New("decision: invalid thresholds")
)

// Action is the outcome of the policy.
type Action int

// Hold is the zero value, so an unset Action never trades.
const (
	Hold Action = iota
	Buy
	Sell
)

func (a Action) String() string {
	switch a {
	case Hold:
		return "hold"
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Side is the exchange order side, empty for Hold.
func (a Action) Side() string {
	switch a {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return ""
	}
}

// Thresholds are the two band edges. Both edges belong to the hold band.
type Thresholds struct {
	Low  float64 `toml:"low"`
	High float64 `toml:"high"`
}

// DefaultThresholds is the 20/60 band the bot has always traded on.
func DefaultThresholds() Thresholds {
	return Thresholds{Low: 20, High: 60}
}

// Validate checks 0 <= Low <= High <= 100.
func (t Thresholds) Validate() error {
	if math.IsNaN(t.Low) || math.IsNaN(t.High) || t.Low < 0 || t.High > 100 || t.Low > t.High {
		return fmt.Errorf("%w: low=%v high=%v", ErrInvalidThresholds, t.Low, t.High)
	}
	return nil
}

// Decide returns Buy below Low, Sell above High and Hold in between.
func Decide(rsi float64, th Thresholds) (Action, error) {
	if err := th.Validate(); err != nil {
		return Hold, err
	}
	if math.IsNaN(rsi) || rsi < 0 || rsi > 100 {
		return Hold, fmt.Errorf("%w: %v", ErrOutOfRange, rsi)
	}
	switch {
	case rsi < th.Low:
		return Buy, nil
	case rsi > th.High:
		return Sell, nil
	default:
		return Hold, nil
	}
}
