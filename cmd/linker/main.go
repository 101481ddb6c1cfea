// Command linker runs one best-membership linking pass and exits. It
// shares the service wiring with the server's background worker, so a
// cron-driven run and the in-process schedule behave identically.
package main

import (
	"context"
	"os"

	"github.com/bwmarrin/snowflake"
	"github.com/neighborhq/memberdesk/internal/clock"
	"github.com/neighborhq/memberdesk/internal/config"
	"github.com/neighborhq/memberdesk/internal/logger"
	membershiprepo "github.com/neighborhq/memberdesk/internal/membership/repository"
	personrepo "github.com/neighborhq/memberdesk/internal/person/repository"
	reconciledomain "github.com/neighborhq/memberdesk/internal/reconcile/domain"
	reconcileservice "github.com/neighborhq/memberdesk/internal/reconcile/service"
	"github.com/neighborhq/memberdesk/pkg/db"
	"github.com/neighborhq/memberdesk/pkg/telemetry/correlation"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	var exitCode int

	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		fx.Provide(membershiprepo.Provide),
		fx.Provide(personrepo.Provide),
		fx.Provide(reconcileservice.New),
		fx.Invoke(func(lc fx.Lifecycle, shutdowner fx.Shutdowner, log *zap.Logger, svc reconciledomain.Service) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					go func() {
						runCtx, runID := correlation.EnsureCorrelationID(context.Background())
						report, err := svc.LinkBestMemberships(runCtx)
						if err != nil {
							log.Error("link pass failed", zap.String("run_id", runID), zap.Error(err))
							exitCode = 1
						} else {
							log.Info("link pass complete",
								zap.String("run_id", runID),
								zap.Int("linked", report.Linked),
								zap.Int("updated", report.Updated),
								zap.Int("skipped", report.Skipped),
							)
						}
						_ = shutdowner.Shutdown()
					}()
					return nil
				},
			})
		}),
	)

	app.Run()
	os.Exit(exitCode)
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
