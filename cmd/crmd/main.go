package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/crmd/internal/clock"
	"github.com/smallbiznis/crmd/internal/config"
	"github.com/smallbiznis/crmd/internal/logger"
	"github.com/smallbiznis/crmd/internal/migration"
	"github.com/smallbiznis/crmd/internal/server"
	"github.com/smallbiznis/crmd/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(newSnowflakeNode),
		clock.Module,
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func newSnowflakeNode(cfg config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.SnowflakeNode)
}
