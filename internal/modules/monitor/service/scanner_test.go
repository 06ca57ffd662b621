package service

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"pump_bot/internal/models"
	settingssvc "pump_bot/internal/modules/settings/service"
	"pump_bot/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeMarket struct {
	tickers []string
	candles map[string][]models.Candle

	// блокировка воркеров для проверки гейта
	block   chan struct{}
	mu      sync.Mutex
	inUse   int
	maxSeen int
}

func (f *fakeMarket) Tickers(ctx context.Context) []string {
	return f.tickers
}

func (f *fakeMarket) Candles(ctx context.Context, symbol, timeframe string, limit int) []models.Candle {
	if f.block != nil {
		f.mu.Lock()
		f.inUse++
		if f.inUse > f.maxSeen {
			f.maxSeen = f.inUse
		}
		f.mu.Unlock()

		<-f.block

		f.mu.Lock()
		f.inUse--
		f.mu.Unlock()
	}
	return f.candles[symbol]
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeNotifier) SendSignal(ctx context.Context, symbol string, candles []models.Candle, info string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, symbol)
}

func newTestStore(t *testing.T, cfg models.Settings) *settingssvc.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	st := settingssvc.NewStore(path)
	require.NoError(t, st.SetTimeframe(cfg.Timeframe))
	if cfg.PriceChangeFilter {
		_, err := st.TogglePriceChangeFilter()
		require.NoError(t, err)
	}
	require.NoError(t, st.SetPriceChangeThreshold(cfg.PriceChangeThreshold))
	return st
}

// Сквозной сценарий: денилист убирает 1000ALPHAUSDT, BTC даёт 6% при пороге
// 5% — один сигнал, ETH с 1% — нет; итог processed=2, signals=1.
func TestScannerEndToEnd(t *testing.T) {
	market := &fakeMarket{
		tickers: []string{"BTCUSDT", "ETHUSDT", "1000ALPHAUSDT"},
		candles: map[string][]models.Candle{
			"BTCUSDT":       candlesWithCloses(100, 106),
			"ETHUSDT":       candlesWithCloses(100, 101),
			"1000ALPHAUSDT": candlesWithCloses(100, 200),
		},
	}
	notifier := &fakeNotifier{}
	store := newTestStore(t, models.Settings{
		Timeframe:            "1m",
		PriceChangeFilter:    true,
		PriceChangeThreshold: 5,
	})

	s := NewScanner(market, notifier, store, []string{"ALPHA", "WEB3", "AI", "BOT"}, 10)
	stats := s.Run(context.Background())

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Signals)
	assert.Equal(t, []string{"BTCUSDT"}, notifier.calls)
}

func TestScannerDenylistCaseInsensitive(t *testing.T) {
	market := &fakeMarket{
		tickers: []string{"BTCUSDT", "web3USDT", "SuperAiUSDT"},
		candles: map[string][]models.Candle{
			"BTCUSDT": candlesWithCloses(100, 100),
		},
	}
	notifier := &fakeNotifier{}
	store := newTestStore(t, models.Settings{Timeframe: "1m"})

	s := NewScanner(market, notifier, store, []string{"ALPHA", "WEB3", "AI", "BOT"}, 10)
	stats := s.Run(context.Background())

	// уцелел только BTCUSDT
	assert.Equal(t, 1, stats.Total)
}

func TestScannerEmptyUniverse(t *testing.T) {
	market := &fakeMarket{tickers: nil}
	notifier := &fakeNotifier{}
	store := newTestStore(t, models.Settings{Timeframe: "1m"})

	s := NewScanner(market, notifier, store, nil, 10)
	stats := s.Run(context.Background())

	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.Signals)
	assert.Empty(t, notifier.calls)
}

// Пустая серия — символ пропущен и не попадает в processed;
// серия из одной свечи — fetch успешен (processed++), но анализ падает,
// прогон продолжается.
func TestScannerFanOutIsolation(t *testing.T) {
	market := &fakeMarket{
		tickers: []string{"AUSDT", "BUSDT", "CUSDT"},
		candles: map[string][]models.Candle{
			"AUSDT": candlesWithCloses(100, 103),
			"BUSDT": candlesWithCloses(100), // анализатор вернёт ошибку
			// CUSDT: свечей нет вовсе
		},
	}
	notifier := &fakeNotifier{}
	store := newTestStore(t, models.Settings{Timeframe: "1m"})

	s := NewScanner(market, notifier, store, nil, 10)
	stats := s.Run(context.Background())

	assert.Equal(t, 2, stats.Total) // AUSDT + BUSDT, CUSDT пропущен
	assert.Equal(t, 1, stats.Signals)
	assert.Equal(t, []string{"AUSDT"}, notifier.calls)
}

// Гейт: 25 висящих юнитов, одновременно внутри не больше 10.
func TestScannerConcurrencyGate(t *testing.T) {
	tickers := make([]string, 25)
	for i := range tickers {
		tickers[i] = string(rune('A'+i)) + "USDT"
	}
	market := &fakeMarket{
		tickers: tickers,
		candles: map[string][]models.Candle{},
		block:   make(chan struct{}),
	}
	notifier := &fakeNotifier{}
	store := newTestStore(t, models.Settings{Timeframe: "1m"})

	s := NewScanner(market, notifier, store, nil, 10)

	done := make(chan Stats, 1)
	go func() {
		done <- s.Run(context.Background())
	}()

	// даём фан-ауту набиться в гейт
	require.Eventually(t, func() bool {
		market.mu.Lock()
		defer market.mu.Unlock()
		return market.inUse == 10
	}, 2*time.Second, 10*time.Millisecond)

	market.mu.Lock()
	assert.Equal(t, 10, market.maxSeen)
	market.mu.Unlock()

	close(market.block)
	<-done

	market.mu.Lock()
	assert.LessOrEqual(t, market.maxSeen, 10)
	market.mu.Unlock()
}
