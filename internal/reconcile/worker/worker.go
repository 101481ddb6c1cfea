// Package worker runs the best-membership linking pass on a timer. The
// pass is convergent, so overlapping or repeated runs are harmless.
package worker

import (
	"context"
	"time"

	"github.com/neighborhq/memberdesk/internal/clock"
	"github.com/neighborhq/memberdesk/internal/reconcile/domain"
	"github.com/neighborhq/memberdesk/pkg/telemetry"
	"github.com/neighborhq/memberdesk/pkg/telemetry/correlation"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Svc     domain.Service
	Clock   clock.Clock
	Metrics *telemetry.Metrics `optional:"true"`
	Config  Config             `optional:"true"`
}

type Worker struct {
	log     *zap.Logger
	svc     domain.Service
	clock   clock.Clock
	metrics *telemetry.Metrics
	cfg     Config
}

func NewWorker(p Params) *Worker {
	return &Worker{
		log:     p.Log.Named("reconcile.worker"),
		svc:     p.Svc,
		clock:   p.Clock,
		metrics: p.Metrics,
		cfg:     p.Config.withDefaults(),
	}
}

func (w *Worker) RunForever(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if err := w.RunOnce(ctx); err != nil {
			w.log.Warn("link pass failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (w *Worker) RunOnce(parentCtx context.Context) error {
	ctx, cancel := context.WithTimeout(parentCtx, w.cfg.RunTimeout)
	defer cancel()

	ctx, runID := correlation.EnsureCorrelationID(ctx)
	started := w.clock.Now()

	report, err := w.svc.LinkBestMemberships(ctx)
	if err != nil {
		w.metrics.RecordLinkPass("worker", "failed")
		return err
	}

	w.metrics.RecordLinkPass("worker", "ok")
	w.log.Info("scheduled link pass",
		zap.String("run_id", runID),
		zap.Int("linked", report.Linked),
		zap.Int("updated", report.Updated),
		zap.Int("skipped", report.Skipped),
		zap.Duration("elapsed", w.clock.Now().Sub(started)),
	)
	return nil
}
