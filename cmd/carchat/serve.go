package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/ryuvi/carchat/chat/catalog"
	chatserver "github.com/ryuvi/carchat/chat/server"
	"github.com/ryuvi/carchat/core/bootstrap"
	corecmd "github.com/ryuvi/carchat/core/cmd"
	coreconfig "github.com/ryuvi/carchat/core/config"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the vehicle-search chat server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return corecmd.Run(configFlag, runServer)
		},
	}
}

func runServer(ctx context.Context, cfg *coreconfig.Config) error {
	result, err := bootstrap.Run(ctx, bootstrap.Options{
		Config: cfg,
		Seeders: []bootstrap.Seeder{
			func(ctx context.Context, db *sqlx.DB) error {
				return catalog.Seed(ctx, db, cfg.Server.SeedCount)
			},
		},
	})
	if err != nil {
		return err
	}
	defer result.DB.Close()

	cat, err := catalog.NewRepository(result.DB).Load(ctx)
	if err != nil {
		return err
	}

	srv := chatserver.New(cfg.Server, cat)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
