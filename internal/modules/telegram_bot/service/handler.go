package service

import (
	"context"
	"strconv"
	"strings"

	"pump_bot/internal/helper"
	"pump_bot/pkg/logger"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/fx"
)

func (t *Telegram) handleUpdate(ctx context.Context, update tgbot.Update) {
	msg := update.Message
	if msg == nil {
		// inline-режим и callback-и не используем
		return
	}

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			t.handleStart(ctx, msg.Chat.ID)
		default:
		}
		return
	}

	t.handleTextMessage(ctx, msg)
}

// handleStart отдаёт главную клавиатуру.
func (t *Telegram) handleStart(ctx context.Context, chatID int64) {
	replyKb := tgbot.NewReplyKeyboard(
		tgbot.NewKeyboardButtonRow(
			tgbot.NewKeyboardButton("Start Monitor"),
			tgbot.NewKeyboardButton("Stop Monitor"),
		),
		tgbot.NewKeyboardButtonRow(
			tgbot.NewKeyboardButton("Set Timeframe"),
			tgbot.NewKeyboardButton("Set Volume"),
		),
		tgbot.NewKeyboardButtonRow(
			tgbot.NewKeyboardButton("Set Change"),
			tgbot.NewKeyboardButton("Toggle Change"),
		),
		tgbot.NewKeyboardButtonRow(
			tgbot.NewKeyboardButton("Status"),
			tgbot.NewKeyboardButton("Reload Bot"),
		),
	)
	replyKb.ResizeKeyboard = true

	out := tgbot.NewMessage(chatID, "Бот готов к работе.")
	out.ReplyMarkup = replyKb
	if _, err := t.SendMessage(ctx, out); err != nil {
		logger.Error("handleStart error: %v", err)
	}
}

func (t *Telegram) handleTextMessage(ctx context.Context, msg *tgbot.Message) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	switch text {
	case "Start Monitor":
		if err := t.store.SetBotStatus(true); err != nil {
			logger.Error("save bot_status error: %v", err)
		}
		// Add заменяет существующую задачу monitor, стекирования нет
		t.sched.Add(ctx, monitorJobID, t.cfg.ScanInterval, func(runCtx context.Context) {
			t.scanner.Run(runCtx)
		})
		_, _ = t.Send(ctx, chatID, "Мониторинг запущен")
		return

	case "Stop Monitor":
		if err := t.store.SetBotStatus(false); err != nil {
			logger.Error("save bot_status error: %v", err)
		}
		t.sched.RemoveAll()
		_, _ = t.Send(ctx, chatID, "Мониторинг остановлен")
		return

	case "Set Timeframe":
		_, _ = t.Send(ctx, chatID, "Введите таймфрейм (1m, 5m, 15m):")
		t.setAwait(chatID, awaitTimeframe)
		return

	case "Set Volume":
		_, _ = t.Send(ctx, chatID, "Введите фильтр объема (например, 100K, 2M, 1B):")
		t.setAwait(chatID, awaitVolume)
		return

	case "Set Change":
		_, _ = t.Send(ctx, chatID, "Введите порог изменения цены в % (например, 5.0):")
		t.setAwait(chatID, awaitChange)
		return

	case "Toggle Change":
		state, err := t.store.TogglePriceChangeFilter()
		if err != nil {
			logger.Error("toggle price_change_filter error: %v", err)
		}
		label := "выключен"
		if state {
			label = "включен"
		}
		_, _ = t.SendF(ctx, chatID, "Фильтр изменения: %s", label)
		return

	case "Status":
		_, _ = t.Send(ctx, chatID, StatusText(t.store.Snapshot()))
		return

	case "Reload Bot":
		username := msg.From.UserName
		if username == "" {
			username = msg.From.FirstName
		}
		logger.Info("Перезагрузка запрошена пользователем @%s", username)
		_, _ = t.Send(ctx, chatID, "Перезагрузка бота...")
		t.reload()
		return
	}

	t.handleAwaited(ctx, chatID, text)
}

// handleAwaited потребляет await-состояние чата; состояние снимается
// в любом случае, даже если ввод кривой.
func (t *Telegram) handleAwaited(ctx context.Context, chatID int64, text string) {
	key, ok := t.popAwait(chatID)
	if !ok {
		return
	}

	switch key {
	case awaitTimeframe:
		tf := helper.NormTF(text)
		if err := t.store.SetTimeframe(tf); err != nil {
			logger.Error("save timeframe error: %v", err)
		}
		_, _ = t.SendF(ctx, chatID, "Таймфрейм обновлён: %s", tf)

	case awaitVolume:
		volume, err := helper.ParseHumanNumber(text)
		if err != nil {
			_, _ = t.Send(ctx, chatID, err.Error())
			return
		}
		if err = t.store.SetVolumeFilter(volume); err != nil {
			logger.Error("save volume_filter error: %v", err)
		}
		_, _ = t.SendF(ctx, chatID, "Фильтр объема обновлён: %s", helper.HumanReadableNumber(int64(volume)))

	case awaitChange:
		threshold, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			_, _ = t.Send(ctx, chatID, "Неверный формат порога. Пример: 5.0")
			return
		}
		if err = t.store.SetPriceChangeThreshold(threshold); err != nil {
			_, _ = t.Send(ctx, chatID, err.Error())
			return
		}
		_, _ = t.SendF(ctx, chatID, "Порог изменения обновлён: %s%%", text)
	}
}

// reload останавливает все задачи и завершает процесс с рестарт-кодом,
// который супервизор трактует как "перезапусти меня".
func (t *Telegram) reload() {
	logger.Info("Выполняется перезагрузка бота...")
	t.sched.RemoveAll()
	if err := t.shut.Shutdown(fx.ExitCode(restartExitCode)); err != nil {
		logger.Error("shutdown error: %v", err)
	}
}
