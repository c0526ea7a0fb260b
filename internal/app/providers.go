package app

import (
	"time"

	"rsibot/internal/config"
	"rsibot/internal/decision"
	"rsibot/internal/executor"
	"rsibot/internal/gateway/binance"
	"rsibot/internal/logger"
)

func provideGateway(cfg *config.Config) *binance.Gateway {
	return binance.New(binance.Config{
		APIKey:     cfg.Exchange.APIKey,
		APISecret:  cfg.Exchange.APISecret,
		Testnet:    cfg.Exchange.Testnet,
		BaseURL:    cfg.Exchange.BaseURL,
		RecvWindow: cfg.Exchange.RecvWindowMs,
		Timeout:    time.Duration(cfg.Exchange.TimeoutSeconds) * time.Second,
		Debug:      logger.CurrentLevel() == logger.LevelDebug,
	})
}

// provideSink picks where orders go. Market data always comes from the
// gateway, dry run or not.
func provideSink(cfg *config.Config, gw *binance.Gateway) executor.OrderSink {
	if cfg.Exchange.DryRun {
		logger.Infof("dry run: orders are logged, not sent to %s", gw.Endpoint())
		return executor.NewDryRunSink()
	}
	logger.Infof("live orders go to %s", gw.Endpoint())
	return gw
}

func provideEngine(cfg *config.Config) decision.Engine {
	return decision.Engine{Thresholds: cfg.Strategy.Thresholds, Quantity: cfg.Strategy.Quantity}
}
