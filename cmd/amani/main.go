package main

import (
	"github.com/amani-hq/amani/internal/config"
	"github.com/amani-hq/amani/internal/identifier"
	"github.com/amani-hq/amani/internal/migration"
	"github.com/amani-hq/amani/internal/restream"
	"github.com/amani-hq/amani/internal/sequence"
	"github.com/amani-hq/amani/internal/server"
	"github.com/amani-hq/amani/pkg/db"
	"github.com/amani-hq/amani/pkg/log"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,

		// Domain
		identifier.Module,
		sequence.Module,
		restream.Module,
		migration.Module,
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
