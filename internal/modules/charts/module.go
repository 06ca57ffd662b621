package charts

import (
	"pump_bot/internal/modules/charts/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("charts",
		fx.Provide(
			service.NewRenderer, // *service.Renderer
		),
	)
}
