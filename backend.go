package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/user/bloglist-go/config"
	"github.com/user/bloglist-go/db"
	"github.com/user/bloglist-go/store"
	"github.com/user/bloglist-go/store/mongo"
	"github.com/user/bloglist-go/store/postgres"
	"github.com/user/bloglist-go/store/sqlite"
)

// openStore connects the backend selected by DB_DRIVER. Postgres migrations
// are applied first when migrate is set; the other backends manage their
// schema on open.
func openStore(ctx context.Context, cfg *config.DatabaseConfig, migrate bool) (store.Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		if migrate {
			if err := db.RunMigrations(cfg.Postgres, cfg.MigrationsDir); err != nil {
				return nil, err
			}
		}
		pool, err := db.NewPool(cfg.Postgres)
		if err != nil {
			return nil, err
		}
		return postgres.New(pool), nil

	case config.DriverMongo:
		client, err := db.ConnectMongo(cfg.Mongo)
		if err != nil {
			return nil, err
		}
		st, err := mongo.New(ctx, client, cfg.Mongo.Database)
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return st, nil

	case config.DriverSQLite:
		st, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.SQLite.Path).Msg("opened sqlite database")
		return st, nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

func closeStore(st store.Store) {
	if err := st.Close(); err != nil {
		log.Warn().Err(err).Msg("error closing store")
	}
}
