package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/smallbiznis/compass/internal/analytics"
	"github.com/smallbiznis/compass/internal/clock"
	"github.com/smallbiznis/compass/internal/config"
	"github.com/smallbiznis/compass/internal/logger"
	"github.com/smallbiznis/compass/internal/migration"
	"github.com/smallbiznis/compass/internal/observability"
	"github.com/smallbiznis/compass/internal/order"
	"github.com/smallbiznis/compass/internal/product"
	"github.com/smallbiznis/compass/internal/ratelimit"
	"github.com/smallbiznis/compass/internal/server"
	"github.com/smallbiznis/compass/internal/user"
	"github.com/smallbiznis/compass/pkg/db"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		ratelimit.Module,

		// Functional domains
		user.Module,
		product.Module,
		order.Module,
		analytics.Module,

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
