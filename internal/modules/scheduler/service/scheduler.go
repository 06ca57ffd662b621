package service

import (
	"context"
	"sync"
	"time"

	"pump_bot/pkg/logger"
)

// Scheduler управляет периодическими задачами по строковым id.
// Повторный Add с тем же id заменяет задачу, а не дублирует её.
type Scheduler struct {
	mu   sync.Mutex
	jobs map[string]chan struct{}
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		jobs: make(map[string]chan struct{}),
	}
}

// Add запускает fn каждые every. Каждый тик уходит в свою горутину:
// медленный прогон не задерживает следующий, состояние прогона целиком его.
func (s *Scheduler) Add(ctx context.Context, id string, every time.Duration, fn func(context.Context)) {
	s.mu.Lock()
	if stop, ok := s.jobs[id]; ok {
		close(stop)
	}
	stop := make(chan struct{})
	s.jobs[id] = stop
	s.mu.Unlock()

	go func() {
		t := time.NewTicker(every)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ctx.Done():
				return
			case <-t.C:
				go s.runOnce(ctx, id, fn)
			}
		}
	}()
}

// runOnce изолирует панику колбэка: упавший прогон не снимает задачу.
func (s *Scheduler) runOnce(ctx context.Context, id string, fn func(context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("job %s panicked: %v", id, r)
		}
	}()
	fn(ctx)
}

func (s *Scheduler) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stop, ok := s.jobs[id]; ok {
		close(stop)
		delete(s.jobs, id)
	}
}

func (s *Scheduler) RemoveAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, stop := range s.jobs {
		close(stop)
		delete(s.jobs, id)
	}
}

func (s *Scheduler) Active(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.jobs[id]
	return ok
}

func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}
