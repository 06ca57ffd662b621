package service

import (
	"fmt"
	"math"

	"pump_bot/internal/models"

	"github.com/pkg/errors"
)

var ErrNotEnoughCandles = errors.New("недостаточно данных: нужно минимум 2 свечи")

// Analyze решает, считается ли последняя свеча сигналом.
// Чистая функция: не мутирует настройки, детерминирована.
func Analyze(candles []models.Candle, cfg models.Settings) (bool, string, error) {
	if len(candles) < 2 {
		return false, "", ErrNotEnoughCandles
	}

	last := candles[len(candles)-1].Close
	prev := candles[len(candles)-2].Close
	tfChange := math.Abs((last - prev) / prev * 100)

	// Отсечка строго "<": изменение ровно в порог проходит.
	if cfg.PriceChangeFilter && tfChange < cfg.PriceChangeThreshold {
		return false, "Условия не выполнены", nil
	}
	return true, fmt.Sprintf("🚀 Сигнал | tf_change=%.2f%%", tfChange), nil
}
