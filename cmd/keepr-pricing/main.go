package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/joshuahuffman02/Keepr-sub014/internal/clock"
	"github.com/joshuahuffman02/Keepr-sub014/internal/config"
	"github.com/joshuahuffman02/Keepr-sub014/internal/migration"
	"github.com/joshuahuffman02/Keepr-sub014/internal/observability"
	"github.com/joshuahuffman02/Keepr-sub014/internal/pricingrule"
	"github.com/joshuahuffman02/Keepr-sub014/internal/ratequote"
	"github.com/joshuahuffman02/Keepr-sub014/internal/server"
	"github.com/joshuahuffman02/Keepr-sub014/pkg/db"
	"github.com/joshuahuffman02/Keepr-sub014/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		log.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// Functional domains
		pricingrule.Module,
		ratequote.Module,

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
