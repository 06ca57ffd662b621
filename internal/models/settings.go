package models

// Settings — состояние бота, которое переживает рестарт.
// Пишется целиком на каждое изменение (см. settings/service.Store).
type Settings struct {
	TelegramToken        string  `json:"telegram_token"`
	ChatID               int64   `json:"chat_id"`
	Timeframe            string  `json:"timeframe"`
	VolumeFilter         float64 `json:"volume_filter"`
	PriceChangeFilter    bool    `json:"price_change_filter"`
	PriceChangeThreshold float64 `json:"price_change_threshold"`
	BotStatus            bool    `json:"bot_status"`
}
