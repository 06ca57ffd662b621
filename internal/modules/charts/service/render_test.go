package service

import (
	"bytes"
	"image/png"
	"math/rand"
	"os"
	"testing"
	"time"

	"pump_bot/internal/models"
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

func genCandles(n int) []models.Candle {
	rnd := rand.New(rand.NewSource(1))
	out := make([]models.Candle, n)
	price := 100.0
	base := time.Unix(1_700_000_000, 0)
	for i := range out {
		open := price
		price += (rnd.Float64() - 0.5) * 2
		high := open
		if price > high {
			high = price
		}
		low := open
		if price < low {
			low = price
		}
		out[i] = models.Candle{
			Time:   base.Add(time.Duration(i) * time.Minute),
			Open:   open,
			High:   high + rnd.Float64()*0.3,
			Low:    low - rnd.Float64()*0.3,
			Close:  price,
			Volume: rnd.Float64() * 1000,
		}
	}
	return out
}

func TestRenderProducesDecodablePNG(t *testing.T) {
	r := NewRenderer()

	data, err := r.Render(genCandles(200), "BTCUSDT", "1m")
	require.NoError(t, err)
	require.NotEmpty(t, data)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1120, img.Bounds().Dx())
	assert.Equal(t, 800, img.Bounds().Dy())
}

func TestRenderFewCandles(t *testing.T) {
	r := NewRenderer()

	// двух свечей достаточно
	data, err := r.Render(genCandles(2), "BTCUSDT", "1m")
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	_, err = r.Render(genCandles(1), "BTCUSDT", "1m")
	require.Error(t, err)

	_, err = r.Render(nil, "BTCUSDT", "1m")
	require.Error(t, err)
}

// Вырожденная серия (одна цена, нулевой объём) не должна ронять рендер.
func TestRenderFlatSeries(t *testing.T) {
	r := NewRenderer()

	flat := make([]models.Candle, 10)
	for i := range flat {
		flat[i] = models.Candle{Open: 1, High: 1, Low: 1, Close: 1}
	}

	data, err := r.Render(flat, "XUSDT", "1m")
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
