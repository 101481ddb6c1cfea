package reconcile

import (
	"context"

	"github.com/neighborhq/memberdesk/internal/reconcile/service"
	"github.com/neighborhq/memberdesk/internal/reconcile/worker"
	"go.uber.org/fx"
)

var Module = fx.Module("reconcile.service",
	fx.Provide(service.New),
	fx.Provide(worker.DefaultConfig),
	fx.Provide(worker.NewWorker),
	fx.Invoke(runWorker),
)

func runWorker(lc fx.Lifecycle, w *worker.Worker) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ctx, cancel := context.WithCancel(context.Background())

			go w.RunForever(ctx)

			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					cancel()
					return nil
				},
			})

			return nil
		},
	})
}
