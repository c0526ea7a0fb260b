// Package market holds the price data model and the contracts the decision
// cycle uses to read from an exchange.
package market

import (
	"context"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrUnorderedBars is returned when bars are not strictly oldest-first.
	ErrUnorderedBars = errors.New("market: bars not in ascending time order")
	// ErrShortSeries is returned when fewer bars than requested came back.
	ErrShortSeries = errors.New("market: fewer bars than requested")
	// ErrBadPrice is returned for a close that is not a positive finite number.
	ErrBadPrice = errors.New("market: invalid price")
)

// BarSource returns the count most recent closes, oldest first.
type BarSource interface {
	RecentCloses(ctx context.Context, symbol, interval string, count int) (PriceSeries, error)
}

// QuoteSource returns the last traded price of a symbol.
type QuoteSource interface {
	LastPrice(ctx context.Context, symbol string) (float64, error)
}

// Candle is one bar. Times are unix milliseconds.
type Candle struct {
	OpenTime  int64
	CloseTime int64
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// Candles wraps a slice of Candle for helper methods.
type Candles []Candle

// Closes returns the close prices in slice order.
func (cs Candles) Closes() []float64 {
	out := make([]float64, len(cs))
	for i, c := range cs {
		out[i] = c.Close
	}
	return out
}

// PriceSeries is an immutable run of closing prices. Index 0 is the OLDEST bar.
type PriceSeries struct {
	Symbol   string
	Interval string
	closes   []float64
	times    []int64
}

// NewPriceSeries builds a series from candles, keeping their order, and
// validates it.
func NewPriceSeries(symbol, interval string, cs Candles) (PriceSeries, error) {
	s := PriceSeries{
		Symbol:   symbol,
		Interval: interval,
		closes:   cs.Closes(),
		times:    make([]int64, len(cs)),
	}
	for i, c := range cs {
		s.times[i] = c.OpenTime
	}
	if err := s.Validate(); err != nil {
		return PriceSeries{}, err
	}
	return s, nil
}

// SeriesOf builds an untimed series from closes already known to be oldest first.
func SeriesOf(symbol, interval string, closes ...float64) PriceSeries {
	return PriceSeries{Symbol: symbol, Interval: interval, closes: append([]float64(nil), closes...)}
}

// Validate rejects empty series, bad prices and timestamps that do not
// strictly increase.
func (s PriceSeries) Validate() error {
	if len(s.closes) == 0 {
		return fmt.Errorf("%s %s: %w: empty series", s.Symbol, s.Interval, ErrShortSeries)
	}
	for i, p := range s.closes {
		if math.IsNaN(p) || math.IsInf(p, 0) || p <= 0 {
			return fmt.Errorf("%s %s: %w: close[%d]=%v", s.Symbol, s.Interval, ErrBadPrice, i, p)
		}
	}
	for i := 1; i < len(s.times); i++ {
		if s.times[i] <= s.times[i-1] {
			return fmt.Errorf("%s %s: %w: bar %d at %d after %d", s.Symbol, s.Interval, ErrUnorderedBars, i, s.times[i], s.times[i-1])
		}
	}
	return nil
}

// Len is the number of bars.
func (s PriceSeries) Len() int { return len(s.closes) }

// Closes returns a copy of the closes, oldest first.
func (s PriceSeries) Closes() []float64 {
	return append([]float64(nil), s.closes...)
}

// Times returns a copy of the bar open times, nil for an untimed series.
func (s PriceSeries) Times() []int64 {
	if s.times == nil {
		return nil
	}
	return append([]int64(nil), s.times...)
}

// Last returns the newest close.
func (s PriceSeries) Last() (float64, bool) {
	if len(s.closes) == 0 {
		return 0, false
	}
	return s.closes[len(s.closes)-1], true
}

// FetchError reports a failed read from a BarSource or QuoteSource.
type FetchError struct {
	Op     string
	Symbol string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s %s: %v", e.Op, e.Symbol, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
