package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"pump_bot/pkg/logger"

	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	settingsFileENV   = "SETTINGS_FILE"
)

// Config — статическая конфигурация процесса: читается один раз при старте
// из configs/<file>.yaml с перекрытием из окружения. Изменяемое состояние
// бота живёт отдельно, в settings.Store.
type Config struct {
	Telegram struct {
		Token string `yaml:"token"`
	} `yaml:"telegram"`

	// Файл с персистентными настройками бота (JSON).
	SettingsFile string `yaml:"settings_file"`

	Binance struct {
		BaseURL string `yaml:"base_url"` // пусто => дефолт клиента (fapi.binance.com)
	} `yaml:"binance"`

	Jaeger struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"jaeger"`

	// Период запуска сканера и ширина гейта параллельных запросов.
	// Как и дефолты раннера у исходного сервиса — только через окружение.
	ScanInterval    time.Duration
	ScanConcurrency int

	// Тикеры с этими подстроками не сканируем (левереджные/экспериментальные).
	ExcludedKeywords []string
}

func NewConfig() (*Config, error) {
	config := Config{
		SettingsFile:     getenvDefault(settingsFileENV, "config.json"),
		ScanInterval:     durationFromEnv("SCAN_INTERVAL", "1m"),
		ScanConcurrency:  intFromEnv("SCAN_CONCURRENCY", 10),
		ExcludedKeywords: listFromEnv("EXCLUDED_KEYWORDS", []string{"ALPHA", "WEB3", "AI", "BOT"}),
	}

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}
	file, err := os.Open("configs/" + configFileName)
	if err != nil {
		// Нет файла — работаем на дефолтах и окружении.
		logger.Info("config file configs/%s not found, using defaults", configFileName)
	} else {
		defer func() {
			_ = file.Close()
		}()
		if err = yaml.NewDecoder(file).Decode(&config); err != nil {
			return nil, err
		}
	}

	token := os.Getenv(tokenTelegramENV)
	if token != "" {
		config.Telegram.Token = token
	}

	if config.ScanInterval <= 0 {
		config.ScanInterval = time.Minute
	}
	if config.ScanConcurrency <= 0 {
		config.ScanConcurrency = 10
	}

	return &config, nil
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func listFromEnv(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func durationFromEnv(key, def string) time.Duration {
	val := getenvDefault(key, def)
	d, err := time.ParseDuration(val)
	if err != nil {
		d, _ = time.ParseDuration(def)
	}
	return d
}
