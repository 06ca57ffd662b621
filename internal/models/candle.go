package models

import "time"

// Candle — одна свеча OHLCV с биржи.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// LastChangePct — изменение закрытия последней свечи к предыдущей, в процентах.
// Для серии короче двух свечей возвращает 0 и false.
func LastChangePct(candles []Candle) (float64, bool) {
	if len(candles) < 2 {
		return 0, false
	}
	prev := candles[len(candles)-2].Close
	if prev == 0 {
		return 0, false
	}
	last := candles[len(candles)-1].Close
	return (last - prev) / prev * 100, true
}
