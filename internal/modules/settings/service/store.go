package service

import (
	"os"
	"sync"

	"pump_bot/internal/models"
	"pump_bot/pkg/logger"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// Store — персистентные настройки бота. Снимок читают все воркеры скана,
// мутации приходят только из телеграм-команд и сразу пишутся на диск.
type Store struct {
	mu   sync.RWMutex
	path string
	cur  models.Settings
}

func NewStore(path string) *Store {
	s := &Store{path: path}
	s.load()
	return s
}

// load: битый или отсутствующий файл — это пустые настройки, не ошибка старта.
func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		logger.Info("settings file %s not readable, starting empty: %v", s.path, err)
		return
	}
	var cfg models.Settings
	if err = sonic.Unmarshal(data, &cfg); err != nil {
		logger.Error("settings file %s is corrupt, starting empty: %v", s.path, err)
		return
	}
	s.cur = cfg
}

// Snapshot возвращает копию настроек. Разные воркеры одного скана могут
// увидеть разные снимки при мутации посреди прогона — это допустимо.
func (s *Store) Snapshot() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

func (s *Store) SetTimeframe(tf string) error {
	return s.update(func(c *models.Settings) { c.Timeframe = tf })
}

func (s *Store) SetVolumeFilter(v float64) error {
	return s.update(func(c *models.Settings) { c.VolumeFilter = v })
}

func (s *Store) SetPriceChangeThreshold(v float64) error {
	if v < 0 {
		return errors.New("порог изменения цены должен быть неотрицательным")
	}
	return s.update(func(c *models.Settings) { c.PriceChangeThreshold = v })
}

// TogglePriceChangeFilter возвращает новое значение флага.
func (s *Store) TogglePriceChangeFilter() (bool, error) {
	var state bool
	err := s.update(func(c *models.Settings) {
		c.PriceChangeFilter = !c.PriceChangeFilter
		state = c.PriceChangeFilter
	})
	return state, err
}

func (s *Store) SetBotStatus(on bool) error {
	return s.update(func(c *models.Settings) { c.BotStatus = on })
}

// update мутирует настройки и тут же пишет файл целиком.
func (s *Store) update(mutate func(*models.Settings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cur
	mutate(&next)

	data, err := sonic.ConfigStd.MarshalIndent(next, "", "    ")
	if err != nil {
		return errors.Wrap(err, "marshal settings")
	}
	if err = os.WriteFile(s.path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write settings to %s", s.path)
	}

	s.cur = next
	return nil
}
