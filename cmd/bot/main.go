package main

import (
	"context"
	"log"

	"pump_bot/internal/modules/binance"
	"pump_bot/internal/modules/charts"
	"pump_bot/internal/modules/config"
	"pump_bot/internal/modules/monitor"
	"pump_bot/internal/modules/scheduler"
	"pump_bot/internal/modules/settings"
	settingssvc "pump_bot/internal/modules/settings/service"
	"pump_bot/internal/notify"
	"pump_bot/pkg/logger"
	"pump_bot/pkg/tracing"

	telegram "pump_bot/internal/modules/telegram_bot"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

func main() {
	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}
	logger.SetServiceName("pump_bot")
	tracing.SetServiceName("pump_bot")

	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		fx.Provide(newBotAPI),
		fx.Provide(notify.NewTelegram),
		config.Module(),
		settings.Module(),
		binance.Module(),
		charts.Module(),
		scheduler.Module(),
		monitor.Module(),
		telegram.Module(),
		fx.Invoke(initTracing),
		fx.Invoke(func(lc fx.Lifecycle) {
			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					logger.Sync()
					return nil
				},
			})
		}),
	)
	app.Run()
}

// newBotAPI: токен берём из персистентных настроек, окружение перекрывает.
// Без токена нотификации невозможны, поэтому не стартуем.
func newBotAPI(cfg *config.Config, store *settingssvc.Store) (*tgbot.BotAPI, error) {
	token := store.Snapshot().TelegramToken
	if cfg.Telegram.Token != "" {
		token = cfg.Telegram.Token
	}
	if token == "" {
		return nil, errors.New("telegram token не задан: telegram_token в настройках или TELEGRAM_TOKEN в окружении")
	}

	bot, err := tgbot.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "telegram bot init")
	}
	return bot, nil
}

func initTracing(lc fx.Lifecycle, cfg *config.Config) error {
	if cfg.Jaeger.Host == "" {
		return nil
	}
	_, closeTracer, err := tracing.InitTracer(tracing.Config{
		Host: cfg.Jaeger.Host,
		Port: cfg.Jaeger.Port,
	})
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			closeTracer()
			return nil
		},
	})
	return nil
}
