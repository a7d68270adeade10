package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/dmitrijs2005/ledgerbook/internal/server"
	"github.com/dmitrijs2005/ledgerbook/internal/server/config"
)

func main() {
	var cfg config.Config
	kctx := kong.Parse(&cfg,
		kong.Name("ledgerbook-server"),
		kong.Description("In-memory ledger backend for local development."),
	)

	app, err := server.NewApp(&cfg)
	kctx.FatalIfErrorf(err)

	kctx.FatalIfErrorf(app.Run(context.Background()))
}
