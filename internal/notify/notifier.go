package notify

import (
	"context"
	"fmt"
	"math"
	"strings"

	"pump_bot/internal/models"
	binancesvc "pump_bot/internal/modules/binance/service"
	chartssvc "pump_bot/internal/modules/charts/service"
	settingssvc "pump_bot/internal/modules/settings/service"
	"pump_bot/pkg/logger"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram доставляет сигнал в настроенный чат: HTML-сообщение плюс,
// если получилось отрисовать, график. chat_id читается из настроек
// в момент отправки.
type Telegram struct {
	bot      *tgbot.BotAPI
	store    *settingssvc.Store
	market   *binancesvc.Market
	renderer *chartssvc.Renderer
}

func NewTelegram(bot *tgbot.BotAPI, store *settingssvc.Store, market *binancesvc.Market, renderer *chartssvc.Renderer) *Telegram {
	return &Telegram{
		bot:      bot,
		store:    store,
		market:   market,
		renderer: renderer,
	}
}

// SendSignal никогда не возвращает ошибку наружу: падение рендера деградирует
// до текста, падение отправки — одна повторная попытка и запись в лог.
func (t *Telegram) SendSignal(ctx context.Context, symbol string, candles []models.Candle, info string) {
	cfg := t.store.Snapshot()
	html := BuildMessage(symbol, candles, info, cfg.PriceChangeThreshold)

	var chart []byte
	chartCandles := t.market.Candles(ctx, symbol, cfg.Timeframe, binancesvc.ChartLimit)
	if len(chartCandles) > 0 {
		img, err := t.renderer.Render(chartCandles, symbol, cfg.Timeframe)
		if err != nil {
			logger.Error("Ошибка генерации графика для %s: %v", symbol, err)
		} else {
			chart = img
		}
	}

	if len(chart) > 0 {
		photo := tgbot.NewPhoto(cfg.ChatID, tgbot.FileBytes{Name: symbol + ".png", Bytes: chart})
		photo.Caption = html
		photo.ParseMode = tgbot.ModeHTML
		if _, err := t.bot.Send(photo); err != nil {
			logger.Error("Ошибка отправки %s: %v", symbol, err)
			t.sendTextFallback(cfg.ChatID, symbol, html)
			return
		}
		logger.Info("[%s] Сигнал + график отправлены", symbol)
		return
	}

	msg := tgbot.NewMessage(cfg.ChatID, html)
	msg.ParseMode = tgbot.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		logger.Error("Ошибка отправки %s: %v", symbol, err)
		t.sendTextFallback(cfg.ChatID, symbol, html)
		return
	}
	logger.Info("[%s] Сигнал отправлен (без графика)", symbol)
}

// sendTextFallback — единственная повторная попытка; дальше сигнал теряется.
func (t *Telegram) sendTextFallback(chatID int64, symbol, html string) {
	msg := tgbot.NewMessage(chatID, html)
	msg.ParseMode = tgbot.ModeHTML
	if _, err := t.bot.Send(msg); err != nil {
		logger.Error("Повторная отправка %s не удалась, сигнал потерян: %v", symbol, err)
	}
}

// BuildMessage собирает HTML-текст сигнала.
// Серия короче двух свечей даёт нулевое изменение и ветку ДАМП.
func BuildMessage(symbol string, candles []models.Candle, info string, threshold float64) string {
	tfChange, _ := models.LastChangePct(candles)

	signalType := "ДАМП"
	if tfChange > 0 {
		signalType = "ПАМП"
	}

	briefInfo := "Движение есть, требуется дополнительный анализ."
	if math.Abs(tfChange) >= math.Max(2.0, threshold) {
		if tfChange > 0 {
			briefInfo = "Резкий рост! Возможен памп"
		} else {
			briefInfo = "Резкое падение. Возможен дамп"
		}
	}

	var lastClose float64
	if len(candles) > 0 {
		lastClose = candles[len(candles)-1].Close
	}

	symbolTV := strings.NewReplacer("/", "", ":", "").Replace(symbol)
	tradingviewURL := fmt.Sprintf("https://www.tradingview.com/chart/?symbol=BINANCE:%s.P", symbolTV)

	return fmt.Sprintf(
		"<b>%s</b> | <b>%.2f%%</b>\n"+
			"Монета: <code>%s</code>\n"+
			"Цена сейчас: <b>%.6f USDT</b>\n"+
			"%s\n\n"+
			"<a href=\"%s\">Открыть полный график на TradingView</a>\n\n"+
			"<i>Доп. инфо:</i> %s",
		signalType, tfChange, symbol, lastClose, briefInfo, tradingviewURL, info,
	)
}
