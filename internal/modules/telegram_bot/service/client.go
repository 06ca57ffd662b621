package service

import (
	"context"
	"fmt"

	"pump_bot/internal/modules/config"
	monitorsvc "pump_bot/internal/modules/monitor/service"
	schedulersvc "pump_bot/internal/modules/scheduler/service"
	settingssvc "pump_bot/internal/modules/settings/service"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/fx"
)

// Идентификатор задачи мониторинга: один на процесс, повторный запуск
// заменяет задачу в планировщике.
const monitorJobID = "monitor"

// Код выхода, по которому внешний супервизор перезапускает процесс.
const restartExitCode = 42

// Telegram — командная поверхность бота: клавиатура, await-состояния,
// запуск и остановка мониторинга.
type Telegram struct {
	bot     *tgbot.BotAPI
	cfg     *config.Config
	store   *settingssvc.Store
	sched   *schedulersvc.Scheduler
	scanner *monitorsvc.Scanner
	shut    fx.Shutdowner
	await   *awaitStore
}

func NewTelegram(
	bot *tgbot.BotAPI,
	cfg *config.Config,
	store *settingssvc.Store,
	sched *schedulersvc.Scheduler,
	scanner *monitorsvc.Scanner,
	shut fx.Shutdowner,
) *Telegram {
	return &Telegram{
		bot:     bot,
		cfg:     cfg,
		store:   store,
		sched:   sched,
		scanner: scanner,
		shut:    shut,
		await:   newAwaitStore(),
	}
}

func (t *Telegram) Send(ctx context.Context, chatID int64, msg string) (tgbot.Message, error) {
	return t.bot.Send(tgbot.NewMessage(chatID, msg))
}

func (t *Telegram) SendF(ctx context.Context, chatID int64, format string, args ...any) (tgbot.Message, error) {
	return t.Send(ctx, chatID, fmt.Sprintf(format, args...))
}

func (t *Telegram) SendMessage(_ context.Context, message tgbot.MessageConfig) (tgbot.Message, error) {
	return t.bot.Send(message)
}

// Start крутит long-poll цикл, пока не закроют канал апдейтов.
func (t *Telegram) Start(ctx context.Context) error {
	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	updates := t.bot.GetUpdatesChan(u)
	for update := range updates {
		t.handleUpdate(ctx, update)
	}
	return nil
}

func (t *Telegram) Stop() {
	t.bot.StopReceivingUpdates()
}
