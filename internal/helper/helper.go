package helper

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// NormTF приводит пользовательский ввод таймфрейма к поддерживаемому виду.
func NormTF(raw string) string {
	s := strings.TrimSpace(strings.ToLower(raw))
	switch s {
	case "1m", "5m", "15m":
		return s
	case "1", "1min":
		return "1m"
	case "5", "5min":
		return "5m"
	case "15", "15min":
		return "15m"
	default:
		return s
	}
}

// ParseHumanNumber разбирает "100K", "2.5M", "1B" в число.
// Кривой ввод — явная ошибка, а не тихий ноль.
func ParseHumanNumber(value string) (float64, error) {
	v := strings.ToUpper(strings.TrimSpace(value))
	multiplier := 1.0

	switch {
	case strings.HasSuffix(v, "K"):
		multiplier = 1_000
		v = strings.TrimSuffix(v, "K")
	case strings.HasSuffix(v, "M"):
		multiplier = 1_000_000
		v = strings.TrimSuffix(v, "M")
	case strings.HasSuffix(v, "B"):
		multiplier = 1_000_000_000
		v = strings.TrimSuffix(v, "B")
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.New("Неверный формат числа. Используйте: 100K, 2.5M, 1B")
	}
	return f * multiplier, nil
}

// HumanReadableNumber — обратная операция для вывода в статусе.
func HumanReadableNumber(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.2fB", float64(n)/1_000_000_000)
	case n >= 1_000_000:
		return fmt.Sprintf("%.2fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.2fK", float64(n)/1_000)
	default:
		return strconv.FormatInt(n, 10)
	}
}
