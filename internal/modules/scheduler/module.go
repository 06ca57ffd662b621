package scheduler

import (
	"context"
	"pump_bot/internal/modules/scheduler/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("scheduler",
		fx.Provide(
			service.NewScheduler, // *service.Scheduler
		),
		fx.Invoke(
			func(lc fx.Lifecycle, s *service.Scheduler) {
				lc.Append(fx.Hook{
					OnStop: func(_ context.Context) error {
						s.RemoveAll()
						return nil
					},
				})
			},
		),
	)
}
