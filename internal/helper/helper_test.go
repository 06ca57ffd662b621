package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHumanNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"100K", 100_000},
		{"2.5M", 2_500_000},
		{"1B", 1_000_000_000},
		{"100k", 100_000},
		{" 2m ", 2_000_000},
		{"42", 42},
		{"0.5", 0.5},
	}
	for _, c := range cases {
		got, err := ParseHumanNumber(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestParseHumanNumberRejectsGarbage(t *testing.T) {
	for _, in := range []string{"abc", "", "K", "1.2.3M", "10Х"} {
		_, err := ParseHumanNumber(in)
		require.Error(t, err, in)
	}
}

func TestHumanReadableNumber(t *testing.T) {
	assert.Equal(t, "100.00K", HumanReadableNumber(100_000))
	assert.Equal(t, "2.50M", HumanReadableNumber(2_500_000))
	assert.Equal(t, "1.00B", HumanReadableNumber(1_000_000_000))
	assert.Equal(t, "999", HumanReadableNumber(999))
}

func TestNormTF(t *testing.T) {
	assert.Equal(t, "1m", NormTF(" 1M "))
	assert.Equal(t, "5m", NormTF("5min"))
	assert.Equal(t, "15m", NormTF("15"))
	assert.Equal(t, "1m", NormTF("1"))
	// неизвестное значение не трогаем, его примет дефолт клиента данных
	assert.Equal(t, "4h", NormTF("4h"))
}
