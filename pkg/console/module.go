package console

import (
	"context"

	"go.uber.org/fx"
)

// Module provides *Service and starts/stops it with the fx lifecycle.
//
// rest.Client, auth.Session and Config should be provided elsewhere.
var Module = fx.Module(
	"console",
	fx.Provide(New),
	fx.Invoke(func(lc fx.Lifecycle, service *Service) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return service.Start(ctx)
			},
			OnStop: func(ctx context.Context) error {
				return service.Stop(ctx)
			},
		})
	}),
)
