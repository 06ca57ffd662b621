package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"

	"pump_bot/internal/models"
	"pump_bot/pkg/logger"

	"github.com/pkg/errors"
)

const smaPeriod = 20

var (
	colorBg     = color.RGBA{255, 255, 255, 255}
	colorUp     = color.RGBA{38, 166, 91, 255}
	colorDown   = color.RGBA{214, 69, 65, 255}
	colorSMA    = color.RGBA{255, 165, 0, 255}
	colorVolume = color.RGBA{120, 144, 156, 255}
	colorGrid   = color.RGBA{230, 230, 230, 255}
)

// Renderer рисует свечной график с SMA и объёмами в PNG.
// Падение рендера никогда не блокирует отправку сигнала — нотифайер
// уходит в текстовый вариант.
type Renderer struct {
	width  int
	height int
}

func NewRenderer() *Renderer {
	return &Renderer{width: 1120, height: 800}
}

func (r *Renderer) Render(candles []models.Candle, symbol, timeframe string) ([]byte, error) {
	if len(candles) < 2 {
		return nil, errors.Errorf("недостаточно данных для графика %s: %d свечей", symbol, len(candles))
	}
	logger.Info("Создание графика для %s, свечей: %d", symbol, len(candles))

	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	fillRect(img, 0, 0, r.width, r.height, colorBg)

	const margin = 40
	plotW := r.width - 2*margin
	priceTop := margin
	priceBottom := margin + (r.height-3*margin)*7/10
	volTop := priceBottom + margin
	volBottom := r.height - margin

	lo, hi := priceRange(candles)
	if hi <= lo {
		hi = lo + 1e-8
	}
	maxVol := maxVolume(candles)
	if maxVol <= 0 {
		maxVol = 1
	}

	priceY := func(p float64) int {
		return priceBottom - int(float64(priceBottom-priceTop)*(p-lo)/(hi-lo))
	}
	volY := func(v float64) int {
		return volBottom - int(float64(volBottom-volTop)*v/maxVol)
	}

	// сетка по ценовой панели
	for i := 0; i <= 4; i++ {
		y := priceTop + (priceBottom-priceTop)*i/4
		drawLine(img, margin, y, margin+plotW, y, colorGrid)
	}

	slot := float64(plotW) / float64(len(candles))
	bodyW := int(slot * 0.7)
	if bodyW < 1 {
		bodyW = 1
	}

	for i, c := range candles {
		x := margin + int(slot*float64(i)+slot/2)

		// тень
		drawLine(img, x, priceY(c.High), x, priceY(c.Low), candleColor(c))

		// тело
		top, bottom := priceY(c.Open), priceY(c.Close)
		if top > bottom {
			top, bottom = bottom, top
		}
		if bottom == top {
			bottom = top + 1
		}
		fillRect(img, x-bodyW/2, top, bodyW, bottom-top, candleColor(c))

		// объём
		fillRect(img, x-bodyW/2, volY(c.Volume), bodyW, volBottom-volY(c.Volume), colorVolume)
	}

	// SMA поверх свечей
	sma := smaSeries(candles, smaPeriod)
	prevX, prevY := -1, -1
	for i, v := range sma {
		if math.IsNaN(v) {
			continue
		}
		x := margin + int(slot*float64(i)+slot/2)
		y := priceY(v)
		if prevX >= 0 {
			drawLine(img, prevX, prevY, x, y, colorSMA)
		}
		prevX, prevY = x, y
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrapf(err, "png encode %s", symbol)
	}
	logger.Info("График %s (%s) создан", symbol, timeframe)
	return buf.Bytes(), nil
}

func candleColor(c models.Candle) color.RGBA {
	if c.Close >= c.Open {
		return colorUp
	}
	return colorDown
}

func priceRange(candles []models.Candle) (lo, hi float64) {
	lo, hi = candles[0].Low, candles[0].High
	for _, c := range candles[1:] {
		if c.Low < lo {
			lo = c.Low
		}
		if c.High > hi {
			hi = c.High
		}
	}
	return lo, hi
}

func maxVolume(candles []models.Candle) float64 {
	var m float64
	for _, c := range candles {
		if c.Volume > m {
			m = c.Volume
		}
	}
	return m
}

// smaSeries — простая скользящая; первые period-1 точек NaN.
func smaSeries(candles []models.Candle, period int) []float64 {
	out := make([]float64, len(candles))
	var sum float64
	for i, c := range candles {
		sum += c.Close
		if i >= period {
			sum -= candles[i-period].Close
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

func fillRect(img *image.RGBA, x, y, w, h int, c color.RGBA) {
	b := img.Bounds()
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			px, py := x+dx, y+dy
			if px >= b.Min.X && px < b.Max.X && py >= b.Min.Y && py < b.Max.Y {
				img.SetRGBA(px, py, c)
			}
		}
	}
}

// drawLine — целочисленный Брезенхэм.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	b := img.Bounds()
	for {
		if x0 >= b.Min.X && x0 < b.Max.X && y0 >= b.Min.Y && y0 < b.Max.Y {
			img.SetRGBA(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
