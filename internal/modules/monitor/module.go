package monitor

import (
	binancesvc "pump_bot/internal/modules/binance/service"
	"pump_bot/internal/modules/config"
	"pump_bot/internal/modules/monitor/service"
	settingssvc "pump_bot/internal/modules/settings/service"
	"pump_bot/internal/notify"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("monitor",
		// Адаптеры конкретных сервисов к границам сканера
		fx.Provide(
			func(m *binancesvc.Market) service.Market {
				return m
			},
		),
		fx.Provide(
			func(n *notify.Telegram) service.Notifier {
				return n
			},
		),
		fx.Provide(
			func(market service.Market, notifier service.Notifier, store *settingssvc.Store, cfg *config.Config) *service.Scanner {
				return service.NewScanner(market, notifier, store, cfg.ExcludedKeywords, cfg.ScanConcurrency)
			},
		),
	)
}
