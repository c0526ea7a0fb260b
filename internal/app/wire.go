//go:build wireinject

package app

import (
	"github.com/google/wire"

	"rsibot/internal/config"
	"rsibot/internal/gateway/binance"
	"rsibot/internal/market"
)

func buildAppWithWire(cfg *config.Config) (*App, error) {
	wire.Build(
		provideGateway,
		wire.Bind(new(market.BarSource), new(*binance.Gateway)),
		wire.Bind(new(market.QuoteSource), new(*binance.Gateway)),
		provideSink,
		provideEngine,
		New,
	)
	return nil, nil
}
