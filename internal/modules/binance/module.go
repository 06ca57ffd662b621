package binance

import (
	"pump_bot/internal/modules/binance/service"
	"pump_bot/internal/modules/config"

	"github.com/adshao/go-binance/v2/futures"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("binance",
		fx.Provide(
			func(cfg *config.Config) *futures.Client {
				return service.NewClient(cfg.Binance.BaseURL)
			},
		),
		fx.Provide(
			service.NewMarket, // *service.Market
		),
	)
}
