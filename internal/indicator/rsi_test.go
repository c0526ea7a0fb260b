package indicator

import (
	"errors"
	"math"
	"testing"
)

func assertClose(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %.12f, want %.12f (tol=%g)", label, got, want, tol)
	}
}

var golden = []float64{44, 44.25, 44.5, 43.75, 44.65, 45.12, 45.0}

func TestComputeRSI_GoldenSeed(t *testing.T) {
	// seed from the first six percentage changes:
	// avgGain = 0.707154667614077, avgLoss = 0.325225117539245
	out, err := ComputeRSI(golden, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 value, got %d", len(out))
	}
	assertClose(t, "seed", out[0], 68.4975314107933, 1e-9)
}

func TestComputeRSI_GoldenMatchesFormula(t *testing.T) {
	var gains, losses float64
	for i := 1; i < len(golden); i++ {
		c := 100*(golden[i]/golden[i-1]) - 100
		if c > 0 {
			gains += c
		} else {
			losses -= c
		}
	}
	want := 100 - 100/(1+(gains/6)/(losses/6))

	out, err := ComputeRSI(golden, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertClose(t, "formula", out[0], want, 1e-9)
}

func TestComputeRSI_Smoothing(t *testing.T) {
	prices := append(append([]float64(nil), golden...), 44.8, 45.3)
	want := []float64{68.4975314107933, 63.06737038008573, 70.18887696202552}

	out, err := ComputeRSI(prices, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(out))
	}
	for i := range want {
		assertClose(t, "smoothed", out[i], want[i], 1e-9)
	}
}

func TestComputeRSI_StrictlyIncreasing(t *testing.T) {
	prices := []float64{10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}
	out, err := ComputeRSI(prices, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != len(prices)-4 {
		t.Fatalf("expected %d values, got %d", len(prices)-4, len(out))
	}
	for i, v := range out {
		if v != 100 {
			t.Fatalf("rsi[%d]=%v, want 100", i, v)
		}
	}
}

func TestComputeRSI_StrictlyDecreasing(t *testing.T) {
	prices := []float64{20, 19, 18, 17, 16, 15, 14, 13}
	out, err := ComputeRSI(prices, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range out {
		if v != 0 {
			t.Fatalf("rsi[%d]=%v, want 0", i, v)
		}
	}
}

func TestComputeRSI_FlatIsNeutral(t *testing.T) {
	prices := []float64{7, 7, 7, 7, 7, 7}
	out, err := ComputeRSI(prices, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range out {
		if v != Neutral {
			t.Fatalf("rsi[%d]=%v, want %v", i, v, Neutral)
		}
	}
}

func TestComputeRSIWith_FlatUndefined(t *testing.T) {
	_, err := ComputeRSIWith([]float64{7, 7, 7, 7}, 3, FlatUndefined)
	if !errors.Is(err, ErrUndefined) {
		t.Fatalf("expected ErrUndefined, got %v", err)
	}
}

func TestComputeRSI_FlatThenMove(t *testing.T) {
	// once a loss enters the window the averages are no longer 0/0
	out, err := ComputeRSI([]float64{5, 5, 5, 4}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0] != Neutral {
		t.Fatalf("rsi[0]=%v, want %v", out[0], Neutral)
	}
	if out[1] != 0 {
		t.Fatalf("rsi[1]=%v, want 0", out[1])
	}
}

func TestComputeRSI_OutputLength(t *testing.T) {
	for w := 1; w <= 8; w++ {
		prices := make([]float64, w+1)
		for i := range prices {
			prices[i] = 100 + float64(i%3)
		}
		out, err := ComputeRSI(prices, w)
		if err != nil {
			t.Fatalf("window %d: unexpected error: %v", w, err)
		}
		if len(out) != 1 {
			t.Fatalf("window %d: expected 1 value, got %d", w, len(out))
		}
	}
}

func TestComputeRSI_Bounded(t *testing.T) {
	prices := []float64{100, 103, 99, 101, 98, 97, 105, 110, 104, 102, 102, 108, 95, 96}
	out, err := ComputeRSI(prices, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range out {
		if math.IsNaN(v) || v < 0 || v > 100 {
			t.Fatalf("rsi[%d]=%v out of [0,100]", i, v)
		}
	}
}

func TestComputeRSI_DoesNotModifyInput(t *testing.T) {
	prices := []float64{3, 4, 2, 5}
	before := append([]float64(nil), prices...)
	if _, err := ComputeRSI(prices, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range prices {
		if prices[i] != before[i] {
			t.Fatalf("input changed at %d", i)
		}
	}
}

func TestComputeRSI_Errors(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
		window int
		want   error
	}{
		{"short series", []float64{1, 2, 3}, 3, ErrInsufficientData},
		{"empty series", nil, 1, ErrInsufficientData},
		{"zero window", []float64{1, 2}, 0, ErrInvalidInput},
		{"negative window", []float64{1, 2}, -2, ErrInvalidInput},
		{"zero price", []float64{1, 0, 2}, 2, ErrInvalidInput},
		{"negative price", []float64{1, -1, 2}, 2, ErrInvalidInput},
		{"nan price", []float64{1, math.NaN(), 2}, 2, ErrInvalidInput},
		{"inf price", []float64{1, math.Inf(1), 2}, 2, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeRSI(tt.prices, tt.window)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParseMethod(t *testing.T) {
	cases := map[string]Method{"": MethodPercent, "percent": MethodPercent, "ABSOLUTE": MethodAbsolute, " classic ": MethodAbsolute}
	for in, want := range cases {
		got, err := ParseMethod(in)
		if err != nil || got != want {
			t.Fatalf("ParseMethod(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseMethod("ema"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLatest(t *testing.T) {
	if _, ok := Latest(nil); ok {
		t.Fatal("expected no value for empty series")
	}
	v, ok := Latest([]float64{10, 20, 30})
	if !ok || v != 30 {
		t.Fatalf("Latest = %v, %v; want 30, true", v, ok)
	}
}
