package decision

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"rsibot/internal/pkg/format"
)

// ErrInvalidIntent is returned when a Buy/Sell intent lacks a usable symbol,
// quantity or price.
var ErrInvalidIntent = errors.New("decision: invalid trade intent")

// TradeIntent is one limit order the caller may submit. An intent whose
// Action is Hold carries no order.
type TradeIntent struct {
	Symbol   string
	Action   Action
	Quantity float64
	Price    float64
}

// NoAction returns the hold intent for symbol.
func NoAction(symbol string) TradeIntent {
	return TradeIntent{Symbol: symbol, Action: Hold}
}

// NewIntent builds the intent for action. Quantity and price are ignored for Hold.
func NewIntent(symbol string, action Action, quantity, price float64) (TradeIntent, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	switch action {
	case Hold:
		return NoAction(symbol), nil
	case Buy, Sell:
	default:
		return TradeIntent{}, fmt.Errorf("%w: unknown action %s", ErrInvalidIntent, action)
	}
	if symbol == "" {
		return TradeIntent{}, fmt.Errorf("%w: empty symbol", ErrInvalidIntent)
	}
	if !positive(quantity) {
		return TradeIntent{}, fmt.Errorf("%w: quantity %v", ErrInvalidIntent, quantity)
	}
	if !positive(price) {
		return TradeIntent{}, fmt.Errorf("%w: price %v", ErrInvalidIntent, price)
	}
	return TradeIntent{Symbol: symbol, Action: action, Quantity: quantity, Price: price}, nil
}

// Actionable reports whether the intent should be submitted.
func (t TradeIntent) Actionable() bool {
	return t.Action == Buy || t.Action == Sell
}

// Side is the exchange side of the order.
func (t TradeIntent) Side() string { return t.Action.Side() }

func (t TradeIntent) String() string {
	if !t.Actionable() {
		return fmt.Sprintf("%s no action", t.Symbol)
	}
	return fmt.Sprintf("%s LIMIT %s qty=%s price=%s", t.Symbol, t.Side(),
		format.Float(t.Quantity, 8), format.Float(t.Price, 8))
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
