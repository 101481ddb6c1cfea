package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/neighborhq/memberdesk/internal/clock"
	"github.com/neighborhq/memberdesk/internal/config"
	"github.com/neighborhq/memberdesk/internal/logger"
	"github.com/neighborhq/memberdesk/internal/migration"
	"github.com/neighborhq/memberdesk/internal/server"
	"github.com/neighborhq/memberdesk/pkg/db"
	"github.com/neighborhq/memberdesk/pkg/telemetry"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		telemetry.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
