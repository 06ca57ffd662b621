package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"pump_bot/internal/models"
	"pump_bot/pkg/logger"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/samber/lo"
)

const (
	// Сколько свечей тянем под анализ и под график.
	EvalLimit  = 100
	ChartLimit = 200

	quoteSuffix = "USDT"
)

// Карта таймфреймов бота в интервалы биржи. Неизвестное значение — 1m.
var intervalMap = map[string]string{
	"1m":  "1m",
	"5m":  "5m",
	"15m": "15m",
}

// Market — клиент рыночных данных USDT-M фьючерсов. Сетевые и парсинговые
// ошибки гасятся на этой границе: наружу уходит пустой срез и запись в лог.
type Market struct {
	cli *futures.Client
}

func NewMarket(cli *futures.Client) *Market {
	return &Market{cli: cli}
}

// NewClient собирает futures-клиент; baseURL непустой — для тестов/прокси.
func NewClient(baseURL string) *futures.Client {
	cli := futures.NewClient("", "")
	if baseURL != "" {
		cli.BaseURL = baseURL
	}
	return cli
}

// Tickers возвращает все торгуемые тикеры с котировкой USDT
// из суточной сводки /fapi/v1/ticker/24hr.
func (m *Market) Tickers(ctx context.Context) []string {
	stats, err := m.cli.NewListPriceChangeStatsService().Do(ctx)
	if err != nil {
		logger.Error("Ошибка получения тикеров: %v", err)
		return nil
	}

	tickers := lo.FilterMap(stats, func(item *futures.PriceChangeStats, _ int) (string, bool) {
		return item.Symbol, strings.HasSuffix(item.Symbol, quoteSuffix)
	})
	logger.Info("Всего тикеров: %d", len(tickers))
	return tickers
}

// Candles тянет limit последних свечей symbol на заданном таймфрейме.
func (m *Market) Candles(ctx context.Context, symbol, timeframe string, limit int) []models.Candle {
	interval, ok := intervalMap[timeframe]
	if !ok {
		interval = "1m"
	}

	klines, err := m.cli.NewKlinesService().
		Symbol(symbol).
		Interval(interval).
		Limit(limit).
		Do(ctx)
	if err != nil {
		logger.Error("Ошибка получения OHLCV для %s: %v", symbol, err)
		return nil
	}
	if len(klines) == 0 {
		logger.Info("%s - данные OHLCV пусты", symbol)
		return nil
	}

	candles := make([]models.Candle, 0, len(klines))
	for _, k := range klines {
		c, err := convertKline(k)
		if err != nil {
			logger.Error("Ошибка разбора свечи %s: %v", symbol, err)
			return nil
		}
		candles = append(candles, c)
	}
	return candles
}

func convertKline(k *futures.Kline) (models.Candle, error) {
	open, err := strconv.ParseFloat(k.Open, 64)
	if err != nil {
		return models.Candle{}, err
	}
	high, err := strconv.ParseFloat(k.High, 64)
	if err != nil {
		return models.Candle{}, err
	}
	low, err := strconv.ParseFloat(k.Low, 64)
	if err != nil {
		return models.Candle{}, err
	}
	closePx, err := strconv.ParseFloat(k.Close, 64)
	if err != nil {
		return models.Candle{}, err
	}
	volume, err := strconv.ParseFloat(k.Volume, 64)
	if err != nil {
		return models.Candle{}, err
	}
	return models.Candle{
		Time:   time.UnixMilli(k.OpenTime),
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePx,
		Volume: volume,
	}, nil
}
