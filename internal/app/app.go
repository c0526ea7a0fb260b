package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"rsibot/internal/config"
	"rsibot/internal/decision"
	"rsibot/internal/executor"
	"rsibot/internal/indicator"
	"rsibot/internal/logger"
	"rsibot/internal/market"
	"rsibot/internal/pkg/format"
	"rsibot/internal/report"
)

// App runs decision cycles: fetch bars and a quote, compute RSI, decide,
// and submit at most one limit order.
type App struct {
	cfg    *config.Config
	bars   market.BarSource
	quotes market.QuoteSource
	sink   executor.OrderSink
	engine decision.Engine
}

// Cycle is the record of one run.
type Cycle struct {
	Series       market.PriceSeries
	RSI          []float64
	Latest       float64
	Action       decision.Action
	Intent       decision.TradeIntent
	Price        float64 // zero when the quote failed on a hold
	Confirmation *executor.Confirmation
}

// NewApp builds the application from a validated config.
func NewApp(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	logger.SetLevel(cfg.App.LogLevel)
	return buildAppWithWire(cfg)
}

// New assembles an App from its collaborators.
func New(cfg *config.Config, bars market.BarSource, quotes market.QuoteSource, sink executor.OrderSink, engine decision.Engine) *App {
	return &App{cfg: cfg, bars: bars, quotes: quotes, sink: sink, engine: engine}
}

// Run executes one cycle, or one per app.every_seconds until ctx ends.
// In periodic mode a failed cycle is logged and the loop continues.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.cfg == nil {
		return fmt.Errorf("app not initialized")
	}
	every := time.Duration(a.cfg.App.EverySeconds) * time.Second
	if every <= 0 {
		_, err := a.RunOnce(ctx)
		return err
	}

	logger.Infof("periodic mode: one cycle every %s, ctrl+c to stop", format.Duration(every))
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		if _, err := a.RunOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.Errorf("cycle failed: %v", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// RunOnce performs a single cycle. Each collaborator is called at most once.
func (a *App) RunOnce(ctx context.Context) (Cycle, error) {
	var cycle Cycle
	st := a.cfg.Strategy
	started := time.Now()

	var quoteErr error
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		s, err := a.bars.RecentCloses(gctx, st.Symbol, st.Interval, a.cfg.BarCount())
		if err != nil {
			return fmt.Errorf("fetch bars: %w", err)
		}
		cycle.Series = s
		return nil
	})
	group.Go(func() error {
		// a failed quote only matters if the decision needs a price
		cycle.Price, quoteErr = a.quotes.LastPrice(gctx, st.Symbol)
		return nil
	})
	if err := group.Wait(); err != nil {
		return cycle, err
	}
	if err := cycle.Series.Validate(); err != nil {
		return cycle, err
	}
	logger.Debugf("%s %s: %s", st.Symbol, st.Interval, cycle.Series.Summary())
	if quoteErr != nil {
		cycle.Price = 0
		logger.Warnf("%s last price unavailable: %v", st.Symbol, quoteErr)
	} else {
		logger.Infof("%s reference price %s", st.Symbol, format.Float(cycle.Price, 8))
	}

	rsi, err := indicator.Compute(cycle.Series.Closes(), st.Window, a.cfg.RSIOptions())
	if err != nil {
		return cycle, fmt.Errorf("rsi(%d): %w", st.Window, err)
	}
	cycle.RSI = rsi
	cycle.Latest, _ = indicator.Latest(rsi)
	logger.Debugf("rsi tail %s", format.Series(rsi[max(0, len(rsi)-5):]))

	cycle.Action, err = decision.Decide(cycle.Latest, a.engine.Thresholds)
	if err != nil {
		return cycle, err
	}
	logger.Infof("window=%d rsi=%s decision=%s", st.Window, format.Float(cycle.Latest, 4), cycle.Action)
	a.writeChart(cycle)

	if cycle.Action == decision.Hold {
		cycle.Intent = decision.NoAction(st.Symbol)
		logger.Debugf("cycle done in %s, nothing to submit", format.Duration(time.Since(started)))
		return cycle, nil
	}
	if quoteErr != nil {
		return cycle, fmt.Errorf("price %s order: %w", cycle.Action, quoteErr)
	}
	res, err := a.engine.Evaluate(st.Symbol, cycle.Latest, cycle.Price)
	if err != nil {
		return cycle, err
	}
	cycle.Intent = res.Intent
	logger.Infof("submitting %s", cycle.Intent)

	conf, err := a.sink.SubmitLimitOrder(ctx, cycle.Intent)
	if err != nil {
		return cycle, err
	}
	cycle.Confirmation = &conf
	logger.Infof("%s (in %s)", conf, format.Duration(time.Since(started)))
	return cycle, nil
}

func (a *App) writeChart(c Cycle) {
	path := a.cfg.Report.ChartPath
	if path == "" {
		return
	}
	chart := report.Chart{
		Series:     c.Series,
		RSI:        c.RSI,
		Window:     a.cfg.Strategy.Window,
		Thresholds: a.engine.Thresholds,
		Action:     c.Action,
	}
	if err := chart.WriteFile(path); err != nil {
		logger.Warnf("chart not written: %v", err)
		return
	}
	logger.Debugf("chart written to %s", path)
}
