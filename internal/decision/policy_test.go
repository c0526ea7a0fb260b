package decision

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestDecide_Bands(t *testing.T) {
	th := Thresholds{Low: 20, High: 60}
	tests := []struct {
		rsi  float64
		want Action
	}{
		{15, Buy},
		{40, Hold},
		{75, Sell},
		{20, Hold},
		{60, Hold},
		{0, Buy},
		{100, Sell},
		{19.999, Buy},
		{60.001, Sell},
	}
	for _, tt := range tests {
		got, err := Decide(tt.rsi, th)
		if err != nil {
			t.Fatalf("rsi=%v: unexpected error: %v", tt.rsi, err)
		}
		if got != tt.want {
			t.Errorf("rsi=%v: got %s, want %s", tt.rsi, got, tt.want)
		}
	}
}

func TestDecide_OutOfRange(t *testing.T) {
	for _, rsi := range []float64{-0.1, 100.5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := Decide(rsi, DefaultThresholds()); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("rsi=%v: expected ErrOutOfRange, got %v", rsi, err)
		}
	}
}

func TestThresholds_Validate(t *testing.T) {
	bad := []Thresholds{{Low: 70, High: 30}, {Low: -1, High: 50}, {Low: 10, High: 101}, {Low: math.NaN(), High: 50}}
	for _, th := range bad {
		if err := th.Validate(); !errors.Is(err, ErrInvalidThresholds) {
			t.Errorf("%+v: expected ErrInvalidThresholds, got %v", th, err)
		}
		if _, err := Decide(50, th); !errors.Is(err, ErrInvalidThresholds) {
			t.Errorf("%+v: Decide expected ErrInvalidThresholds, got %v", th, err)
		}
	}
	if err := (Thresholds{Low: 50, High: 50}).Validate(); err != nil {
		t.Fatalf("equal edges should be valid: %v", err)
	}
}

func TestNewIntent(t *testing.T) {
	in, err := NewIntent(" btcusdt ", Buy, 0.001, 64000.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Symbol != "BTCUSDT" || in.Side() != "BUY" || !in.Actionable() {
		t.Fatalf("unexpected intent: %+v", in)
	}
	if s := in.String(); !strings.Contains(s, "LIMIT BUY qty=0.001 price=64000.5") {
		t.Fatalf("unexpected String(): %s", s)
	}

	hold, err := NewIntent("BTCUSDT", Hold, 0, 0)
	if err != nil {
		t.Fatalf("hold should not fail: %v", err)
	}
	if hold.Actionable() || hold.Side() != "" {
		t.Fatalf("hold intent must not be actionable: %+v", hold)
	}
}

func TestNewIntent_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		symbol string
		action Action
		qty    float64
		price  float64
	}{
		{"empty symbol", "  ", Sell, 1, 1},
		{"zero quantity", "ETHUSDT", Buy, 0, 10},
		{"zero price", "ETHUSDT", Sell, 1, 0},
		{"nan price", "ETHUSDT", Sell, 1, math.NaN()},
		{"inf quantity", "ETHUSDT", Buy, math.Inf(1), 10},
		{"unknown action", "ETHUSDT", Action(9), 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewIntent(tt.symbol, tt.action, tt.qty, tt.price); !errors.Is(err, ErrInvalidIntent) {
				t.Fatalf("expected ErrInvalidIntent, got %v", err)
			}
		})
	}
}

func TestEngine_Evaluate(t *testing.T) {
	e := Engine{Thresholds: DefaultThresholds(), Quantity: 0.001}

	res, err := e.Evaluate("BTCUSDT", 75, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Action != Sell || res.Intent.Price != 100 || res.Intent.Quantity != 0.001 {
		t.Fatalf("unexpected result: %+v", res)
	}

	res, err = e.Evaluate("BTCUSDT", 40, 0)
	if err != nil {
		t.Fatalf("hold without a price should not fail: %v", err)
	}
	if res.Intent.Actionable() {
		t.Fatalf("expected no action, got %+v", res.Intent)
	}

	if _, err := e.Evaluate("BTCUSDT", 10, 0); !errors.Is(err, ErrInvalidIntent) {
		t.Fatalf("buy without a price: expected ErrInvalidIntent, got %v", err)
	}
}

func TestAction_ZeroValueHolds(t *testing.T) {
	var a Action
	if a != Hold || a.Side() != "" {
		t.Fatalf("zero Action = %s side %q, want hold with no side", a, a.Side())
	}
	in, err := NewIntent("btcusdt", a, 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Actionable() {
		t.Fatalf("zero Action produced an order: %s", in)
	}
}
