package service

import (
	"fmt"

	"pump_bot/internal/helper"
	"pump_bot/internal/models"
)

// StatusText собирает ответ на кнопку Status.
func StatusText(cfg models.Settings) string {
	status := "выключен"
	if cfg.BotStatus {
		status = "включен"
	}
	return fmt.Sprintf(
		"Таймфрейм: %s\n"+
			"Фильтр объема: %s\n"+
			"Фильтр изменения: %v (%g%%)\n"+
			"Статус бота: %s",
		cfg.Timeframe,
		helper.HumanReadableNumber(int64(cfg.VolumeFilter)),
		cfg.PriceChangeFilter, cfg.PriceChangeThreshold,
		status,
	)
}
