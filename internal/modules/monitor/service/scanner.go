package service

import (
	"context"
	"strings"
	"sync"

	"pump_bot/internal/models"
	binancesvc "pump_bot/internal/modules/binance/service"
	settingssvc "pump_bot/internal/modules/settings/service"
	"pump_bot/pkg/logger"

	"github.com/opentracing/opentracing-go"
	"github.com/samber/lo"
)

// Market — граница рыночных данных. Ошибки гасятся внутри реализации,
// наружу приходит пустой срез.
type Market interface {
	Tickers(ctx context.Context) []string
	Candles(ctx context.Context, symbol, timeframe string, limit int) []models.Candle
}

// Notifier доставляет найденный сигнал. Свои ошибки изолирует сам.
type Notifier interface {
	SendSignal(ctx context.Context, symbol string, candles []models.Candle, info string)
}

// Stats — итог одного прогона. Нигде не сохраняется.
type Stats struct {
	Total   int
	Signals int
}

// Scanner — один проход: тикеры -> фильтр -> параллельный fetch+analyze
// под гейтом -> нотификации. Всё состояние прогона живёт внутри Run,
// перекрывающиеся прогоны делят только гейт.
type Scanner struct {
	market   Market
	notifier Notifier
	store    *settingssvc.Store
	excluded []string
	gate     chan struct{}
}

func NewScanner(market Market, notifier Notifier, store *settingssvc.Store, excluded []string, concurrency int) *Scanner {
	if concurrency <= 0 {
		concurrency = 10
	}
	return &Scanner{
		market:   market,
		notifier: notifier,
		store:    store,
		excluded: excluded,
		gate:     make(chan struct{}, concurrency),
	}
}

func (s *Scanner) Run(ctx context.Context) Stats {
	span, ctx := opentracing.StartSpanFromContext(ctx, "monitor.scan")
	defer span.Finish()

	tickers := s.market.Tickers(ctx)
	tickers = lo.Reject(tickers, func(t string, _ int) bool {
		return s.isExcluded(t)
	})
	logger.Info("Всего тикеров после фильтра: %d", len(tickers))

	if len(tickers) == 0 {
		logger.Info("Тикеры не найдены, проверка остановлена.")
		return Stats{}
	}

	var (
		mu    sync.Mutex
		stats Stats
		wg    sync.WaitGroup
	)

	for _, symbol := range tickers {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()

			s.gate <- struct{}{}
			defer func() { <-s.gate }()

			// каждый воркер берёт свой снимок: мутация настроек посреди
			// прогона видна неатомарно, как в исходной логике
			cfg := s.store.Snapshot()

			candles := s.market.Candles(ctx, symbol, cfg.Timeframe, binancesvc.EvalLimit)
			if len(candles) == 0 {
				logger.Info("[%s] свечи не получены", symbol)
				return
			}

			// обработанным символ считается до анализа: упавший
			// анализ счётчик не откатывает
			mu.Lock()
			stats.Total++
			mu.Unlock()

			isSignal, info, err := Analyze(candles, cfg)
			if err != nil {
				logger.Error("Ошибка %s: %v", symbol, err)
				return
			}

			if !isSignal {
				logger.Info("[%s] Условия не выполнены", symbol)
				return
			}

			mu.Lock()
			stats.Signals++
			mu.Unlock()
			s.notifier.SendSignal(ctx, symbol, candles, info)
		}(symbol)
	}

	wg.Wait()

	span.SetTag("total", stats.Total)
	span.SetTag("signals", stats.Signals)
	logger.Info("Обработано: %d, Сигналов: %d", stats.Total, stats.Signals)
	return stats
}

func (s *Scanner) isExcluded(ticker string) bool {
	up := strings.ToUpper(ticker)
	for _, k := range s.excluded {
		if strings.Contains(up, strings.ToUpper(k)) {
			return true
		}
	}
	return false
}
