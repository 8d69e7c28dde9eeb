package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/user/bloglist-go/config"
	"github.com/user/bloglist-go/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending Postgres migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig.Database
		if cfg.Driver != config.DriverPostgres {
			log.Info().Str("driver", cfg.Driver).Msg("nothing to migrate; this backend applies its schema on open")
			return nil
		}
		return db.RunMigrations(cfg.Postgres, cfg.MigrationsDir)
	},
}
