package decision

// Engine holds the caller-supplied parameters of the policy: the band edges
// and the fixed order quantity. It is a value type and safe to share.
type Engine struct {
	Thresholds Thresholds
	Quantity   float64
}

// Result pairs the action with the intent built for it.
type Result struct {
	RSI    float64
	Action Action
	Intent TradeIntent
}

// Evaluate decides on rsi and, for Buy/Sell, prices the intent at price.
func (e Engine) Evaluate(symbol string, rsi, price float64) (Result, error) {
	action, err := Decide(rsi, e.Thresholds)
	if err != nil {
		return Result{RSI: rsi}, err
	}
	intent, err := NewIntent(symbol, action, e.Quantity, price)
	if err != nil {
		return Result{RSI: rsi, Action: action}, err
	}
	return Result{RSI: rsi, Action: action, Intent: intent}, nil
}
