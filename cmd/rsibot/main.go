package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"rsibot/internal/app"
	"rsibot/internal/config"
	"rsibot/internal/logger"
)

// Entry point:
// 1) load the TOML config ($RSIBOT_CONFIG or configs/config.toml)
// 2) apply command-line overrides and validate again
// 3) run one cycle, or loop every app.every_seconds until interrupted
func main() {
	if err := run(os.Args[1:]); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("rsibot", flag.ContinueOnError)
	cfgPath := fs.String("config", config.PathFromEnv(), "path to the TOML config")
	symbol := fs.String("symbol", "", "trading pair, e.g. BTCUSDT")
	interval := fs.String("interval", "", "bar interval, e.g. 1d or 4h")
	window := fs.Int("window", 0, "RSI window in bars")
	testnet := fs.Bool("testnet", false, "use the Binance spot testnet")
	dryRun := fs.Bool("dry-run", false, "log orders instead of sending them")
	once := fs.Bool("once", false, "run a single cycle even if app.every_seconds is set")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Read(*cfgPath)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if *symbol != "" {
		cfg.Strategy.Symbol = *symbol
	}
	if *interval != "" {
		cfg.Strategy.Interval = *interval
	}
	if *window > 0 {
		cfg.Strategy.Window = *window
	}
	if *testnet {
		cfg.Exchange.Testnet = true
	}
	if *dryRun {
		cfg.Exchange.DryRun = true
	}
	if *once {
		cfg.App.EverySeconds = 0
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	a, err := app.NewApp(cfg)
	if err != nil {
		return err
	}
	logger.Infof("rsibot started (env=%s, %s %s, window=%d, method=%s, testnet=%v, dry_run=%v)",
		cfg.App.Env, cfg.Strategy.Symbol, cfg.Strategy.Interval, cfg.Strategy.Window,
		cfg.Strategy.Method, cfg.Exchange.Testnet, cfg.Exchange.DryRun)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.Run(ctx)
}
