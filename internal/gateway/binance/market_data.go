package binance

import (
	"context"
	"fmt"

	"rsibot/internal/logger"
	"rsibot/internal/market"
)

// RecentCloses fetches the count most recent klines. Binance returns them
// oldest first; the order is verified rather than assumed. The newest bar may
// still be open.
func (g *Gateway) RecentCloses(ctx context.Context, symbol, interval string, count int) (market.PriceSeries, error) {
	fail := func(err error) (market.PriceSeries, error) {
		return market.PriceSeries{}, &market.FetchError{Op: "klines", Symbol: symbol, Err: err}
	}
	if count < 1 || count > maxKlines {
		return fail(fmt.Errorf("count %d outside [1,%d]", count, maxKlines))
	}
	klines, err := g.client.NewKlinesService().
		Symbol(symbol).
		Interval(interval).
		Limit(count).
		Do(ctx)
	if err != nil {
		if code, ok := apiCode(err); ok {
			return fail(fmt.Errorf("binance code=%d: %w", code, err))
		}
		return fail(err)
	}
	if len(klines) < count {
		return fail(fmt.Errorf("%w: want %d, got %d", market.ErrShortSeries, count, len(klines)))
	}
	klines = klines[len(klines)-count:]

	cs := make(market.Candles, 0, len(klines))
	for i, k := range klines {
		if k == nil {
			return fail(fmt.Errorf("kline %d missing", i))
		}
		closePx, err := parseDecimal("close", k.Close)
		if err != nil {
			return fail(err)
		}
		cs = append(cs, market.Candle{
			OpenTime:  k.OpenTime,
			CloseTime: k.CloseTime,
			Open:      optionalDecimal(symbol, i, "open", k.Open),
			High:      optionalDecimal(symbol, i, "high", k.High),
			Low:       optionalDecimal(symbol, i, "low", k.Low),
			Close:     closePx,
			Volume:    optionalDecimal(symbol, i, "volume", k.Volume),
		})
	}
	series, err := market.NewPriceSeries(symbol, interval, cs)
	if err != nil {
		return fail(err)
	}
	return series, nil
}

// optionalDecimal parses a kline field the cycle does not depend on. A bad
// value is logged and left as 0.
func optionalDecimal(symbol string, bar int, field, raw string) float64 {
	v, err := parseDecimal(field, raw)
	if err != nil {
		logger.Debugf("%s kline %d: %v", symbol, bar, err)
		return 0
	}
	return v
}

// LastPrice fetches the latest ticker price.
func (g *Gateway) LastPrice(ctx context.Context, symbol string) (float64, error) {
	fail := func(err error) (float64, error) {
		return 0, &market.FetchError{Op: "price", Symbol: symbol, Err: err}
	}
	prices, err := g.client.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		if code, ok := apiCode(err); ok {
			return fail(fmt.Errorf("binance code=%d: %w", code, err))
		}
		return fail(err)
	}
	for _, p := range prices {
		if p == nil || p.Symbol != symbol {
			continue
		}
		v, err := parseDecimal("price", p.Price)
		if err != nil {
			return fail(err)
		}
		if v <= 0 {
			return fail(fmt.Errorf("%w: %v", market.ErrBadPrice, v))
		}
		return v, nil
	}
	return fail(fmt.Errorf("no price returned"))
}
